package reporter

import (
	"sort"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/tantalor93/dnsblast/pkg/blast"
)

const (
	// bounds cover the per-worker histograms, so merging drops nothing
	mergedHistMin       = time.Microsecond
	mergedHistMax       = time.Minute
	mergedHistPrecision = 1
)

// ResultTotals represents merged per-worker results of the blast.Blast execution.
type ResultTotals struct {
	Hist     *hdrhistogram.Histogram
	Timings  []blast.Datapoint
	Counters blast.Counters
}

// Merge takes results of the executed blast.Blast and merges them. The
// merged histogram is always allocated, even for a run without workers.
func Merge(stats []*blast.ResultStats) ResultTotals {
	totals := ResultTotals{
		Hist: hdrhistogram.New(mergedHistMin.Nanoseconds(), mergedHistMax.Nanoseconds(), mergedHistPrecision),
	}

	for _, s := range stats {
		totals.Hist.Merge(s.Hist)
		totals.Timings = append(totals.Timings, s.Timings...)
		if s.Counters != nil {
			totals.Counters = blast.Counters{
				Total:      totals.Counters.Total + s.Counters.Total,
				Sent:       totals.Counters.Sent + s.Counters.Sent,
				Success:    totals.Counters.Success + s.Counters.Success,
				Timeout:    totals.Counters.Timeout + s.Counters.Timeout,
				IOError:    totals.Counters.IOError + s.Counters.IOError,
				IDmismatch: totals.Counters.IDmismatch + s.Counters.IDmismatch,
			}
		}
	}

	// sort data points from the oldest to the earliest so the throughput
	// buckets are built in time order
	sort.SliceStable(totals.Timings, func(i, j int) bool {
		return totals.Timings[i].Start.Before(totals.Timings[j].Start)
	})
	return totals
}
