package usecase

import "time"

const (
	// ReportCacheTTL bounds staleness of cached report payloads. Reports are
	// invalidated on every mutation; the TTL covers writes from other
	// service instances.
	ReportCacheTTL = 30 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
