package blast

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// ResultStats is a representation of latency results of a single worker.
type ResultStats struct {
	Hist     *hdrhistogram.Histogram
	Timings  []Datapoint
	Counters *Counters
}

// Counters represents various counters of a single worker.
type Counters struct {
	Total      int64
	Sent       int64
	Success    int64
	Timeout    int64
	IOError    int64
	IDmismatch int64
}

// Datapoint one datapoint of the run (single successful DNS request).
type Datapoint struct {
	Duration float64
	Start    time.Time
}

func newResultStats() *ResultStats {
	return &ResultStats{
		Hist:     hdrhistogram.New(histMin.Nanoseconds(), histMax.Nanoseconds(), histPrecision),
		Counters: &Counters{},
	}
}

func (r *ResultStats) record(start time.Time, timing time.Duration) {
	r.Hist.RecordValue(timing.Nanoseconds())
	r.Timings = append(r.Timings, Datapoint{float64(timing.Milliseconds()), start})
}
