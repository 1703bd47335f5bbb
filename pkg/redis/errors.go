package redis

import "errors"

var (
	ErrFailedToParseConnString = errors.New("redis.parse_conn_string_failed")
	ErrNotReady                = errors.New("redis.not_ready")
	ErrHealthcheckFailed       = errors.New("redis.healthcheck_failed")
)
