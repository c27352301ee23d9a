package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvKafkaBrokers           = "KAFKA_BROKERS"
	EnvKafkaBookingTopic      = "KAFKA_BOOKING_TOPIC"
	EnvKafkaConsumerGroup     = "KAFKA_CONSUMER_GROUP"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvSlotLockTTL     = "SLOT_LOCK_TTL"
	EnvSweeperSchedule = "SWEEPER_SCHEDULE"
	EnvStalePendingTTL = "STALE_PENDING_TTL"

	EnvAvailabilityBaseURL = "AVAILABILITY_BASE_URL"

	EnvDefaultOpenTime        = "DEFAULT_OPEN_TIME"
	EnvDefaultCloseTime       = "DEFAULT_CLOSE_TIME"
	EnvDefaultSlotDurationMin = "DEFAULT_SLOT_DURATION_MIN"
	EnvDefaultTimeZone        = "DEFAULT_TIME_ZONE"

	EnvRecurringMaxWeeks = "RECURRING_MAX_WEEKS"
)
