package blast

import (
	"time"
)

const (
	// DefaultThreads is a default number of concurrent workers.
	DefaultThreads = 10

	// DefaultCount is a default number of queries issued by each worker.
	DefaultCount = 100

	// DefaultDomainFile is a default path to the file with domain names to query.
	DefaultDomainFile = "domains.txt"

	// DefaultRecordType is a default type for queries if no other is specified.
	DefaultRecordType = "A"

	// DefaultTimeout is a default per-request response timeout.
	DefaultTimeout = 500 * time.Millisecond
)

const (
	connectTimeout = time.Second
	writeTimeout   = time.Second

	histMin       = 100 * time.Microsecond
	histMax       = 4 * time.Second
	histPrecision = 1

	eventBuffer = 1024
)
