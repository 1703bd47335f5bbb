// Package devicecontext derives coarse device metadata from an inbound HTTP
// request: a device classification label, the client IP address, and the raw
// user-agent string. The output is informational, intended for audit trails
// and "your devices" views. It must never feed authorization decisions.
//
// Extraction is a pure function with no error path: unparseable input
// degrades to "Unknown Device" or an empty IP rather than failing.
//
// Trust assumption: the X-Forwarded-For and X-Real-IP headers are honored
// unconditionally. That is correct only when a trusted reverse proxy sets
// them. If the service is exposed directly to untrusted clients, any client
// can claim any IP through these headers; whether to strip them belongs to
// the deployment topology, not to this package.
package devicecontext
