// Package redis bootstraps the Redis client used by the optional
// Redis-backed session store: connection with startup retries and a health
// check closure for readiness endpoints.
package redis
