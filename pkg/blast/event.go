package blast

// Status classifies the outcome of a single send or receive step of a worker.
type Status int

const (
	// StatusSent means the query payload was handed to the endpoint.
	StatusSent Status = iota
	// StatusSuccess means a reply with a matching transaction ID arrived in time.
	StatusSuccess
	// StatusTimeout means no matching reply arrived within the configured timeout.
	StatusTimeout
	// StatusFailed means the send, receive or decode step failed.
	StatusFailed
	// StatusWorkerDone means the worker finished all its iterations.
	StatusWorkerDone
)

func (s Status) String() string {
	switch s {
	case StatusSent:
		return "sent"
	case StatusSuccess:
		return "success"
	case StatusTimeout:
		return "timeout"
	case StatusFailed:
		return "failed"
	case StatusWorkerDone:
		return "done"
	default:
		return "unknown"
	}
}

// Event is a single status report of a worker, consumed exactly once by the
// aggregation loop. Events of a single worker arrive in production order.
type Event struct {
	Status Status
	Worker uint32
}
