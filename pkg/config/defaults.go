package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "courtops"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultKafkaBrokers       = "localhost:9092"
	DefaultKafkaBookingTopic  = "booking-events"
	DefaultKafkaConsumerGroup = "courtops-notifier"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultSlotLockTTL     = 30 * time.Second
	DefaultSweeperSchedule = "*/5 * * * *"
	DefaultStalePendingTTL = 30 * time.Minute

	DefaultAvailabilityBaseURL = "http://localhost:8080"

	DefaultDefaultOpenTime        = "08:00"
	DefaultDefaultCloseTime       = "23:30"
	DefaultDefaultSlotDurationMin = 90
	DefaultDefaultTimeZone        = "America/Argentina/Buenos_Aires"

	DefaultRecurringMaxWeeks = 52

	DefaultPaginationLimit = 100
)
