// Package session implements the session lifecycle core of the
// case-management backend: issuing, validating, renewing, revoking, and
// sweeping authenticated user sessions.
//
// A session binds a hashed bearer token to a user together with device
// metadata and two expiry clocks: a hard ceiling fixed at creation
// (CreatedAt + SessionTimeout, never extended) and a sliding idle window
// (InactivityTimeout since the last validated use). A session dies at the
// hard ceiling no matter what, and dies earlier if unused for the idle
// window. Every successful validation refreshes LastActivity; there is no
// separate touch operation.
//
// The raw bearer token is never persisted. The store holds only its SHA-256
// digest, so database read access is not enough to replay a session.
//
// Three store implementations are provided: PostgresStore for the relational
// store the backend already runs on, RedisStore for deployments that keep the
// session hot path off the relational database, and MemoryStore for tests.
//
// Basic usage:
//
//	store := session.NewPostgresStore(pool)
//	svc := session.NewService(store, cfg, logger)
//
//	// on successful login
//	sess, err := svc.Create(ctx, userID, rawToken, r)
//
//	// on each authenticated request
//	sess, err := svc.Validate(ctx, svc.HashToken(rawToken))
//
// The Cleaner runs the periodic hard-delete sweep:
//
//	cleaner := session.NewCleaner(svc, cfg.CleanupInterval, logger)
//	go cleaner.Start(ctx)
package session
