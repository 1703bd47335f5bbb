package devicecontext

import "net/http"

// Context holds the device metadata extracted from a single request.
type Context struct {
	DeviceInfo string
	IPAddress  string
	UserAgent  string
}

// Extract derives device metadata from the request. It never fails: missing
// or malformed headers degrade to "Unknown Device" and an empty IP.
func Extract(r *http.Request) Context {
	ua := r.UserAgent()
	return Context{
		DeviceInfo: ClassifyDevice(ua),
		IPAddress:  ClientIP(r),
		UserAgent:  ua,
	}
}
