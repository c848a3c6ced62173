package kafka_client

import "time"

const (
	KAFKA_TOPIC_RAW_CASTS        = "raw-casts"        // raw cast records from the hub tailer
	KAFKA_TOPIC_RAW_REACTIONS    = "raw-reactions"    // raw reaction records
	KAFKA_TOPIC_RAW_USER_UPDATES = "raw-user-updates" // raw user-data updates

	KAFKA_TOPIC_ITEMS        = "normalized-items"        // canonical items
	KAFKA_TOPIC_INTERACTIONS = "normalized-interactions" // canonical edges
	KAFKA_TOPIC_USERS        = "normalized-users"        // canonical users
)

const (
	BATCH_SIZE    = 100
	BATCH_TIMEOUT = 5 * time.Second
	MAX_RETRIES   = 5
	RETRY_DELAY   = 2 * time.Second
)
