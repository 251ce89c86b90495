package reporter

import (
	"io"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/tantalor93/dnsblast/pkg/blast"
	"github.com/tantalor93/dnsblast/pkg/printutils"
)

// printThroughput summarizes successful responses per second over the run by
// bucketing datapoints into one second windows from the run start.
func printThroughput(w io.Writer, start time.Time, timings []blast.Datapoint) {
	if len(timings) == 0 {
		return
	}

	buckets := make(map[int64]float64)
	for _, dp := range timings {
		offset := int64(dp.Start.Sub(start) / time.Second)
		if offset < 0 {
			offset = 0
		}
		buckets[offset]++
	}

	series := make([]float64, 0, len(buckets))
	for _, v := range buckets {
		series = append(series, v)
	}

	mean, err := stats.Mean(series)
	if err != nil {
		return
	}
	median, err := stats.Median(series)
	if err != nil {
		return
	}
	peak, err := stats.Max(series)
	if err != nil {
		return
	}

	printutils.NeutralFprintf(w, "Responses per second:\t%s\n",
		printutils.HighlightSprintf("mean %0.1f, median %0.1f, peak %0.0f", mean, median, peak))
}
