// Package pg bootstraps the PostgreSQL connection pool the session store
// runs on: pool creation with startup retries, a health check closure for
// readiness endpoints, and goose-driven schema migrations over the same pool.
package pg
