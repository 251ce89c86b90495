package reporter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/olekukonko/tablewriter"
	"github.com/tantalor93/dnsblast/pkg/blast"
	"github.com/tantalor93/dnsblast/pkg/printutils"
)

// PrintReport prints formatted results of the load generation run to the
// writer configured on the Blast instance.
func PrintReport(b *blast.Blast, progress blast.Progress, stats []*blast.ResultStats, dur time.Duration) {
	if b.Silent {
		return
	}
	w := b.Writer
	totals := Merge(stats)

	total := b.TotalQueries()
	var percent int64
	if total > 0 {
		percent = 100 * progress.Sent / total
	}

	printutils.NeutralFprintf(w, "\nTotal iterations:\t%d\n", total)
	printutils.NeutralFprintf(w, "Queries sent:\t\t%d\n", progress.Sent)
	if progress.Success > 0 {
		printutils.SuccessFprintf(w, "Success:\t\t%d\n", progress.Success)
	}
	if progress.Timeout > 0 {
		printutils.ErrFprintf(w, "Timeouts:\t\t%d\n", progress.Timeout)
	}
	if progress.Failed > 0 {
		printutils.ErrFprintf(w, "Failed:\t\t\t%d\n", progress.Failed)
	}
	if totals.Counters.IDmismatch > 0 {
		printutils.ErrFprintf(w, "ID mismatch replies:\t%d\n", totals.Counters.IDmismatch)
	}
	printutils.NeutralFprintf(w, "Workers finished:\t%d\n", progress.WorkersDone)

	printutils.NeutralFprintf(w, "\nTime taken for tests:\t%s\n",
		printutils.HighlightSprint(roundDuration(dur)))
	printutils.NeutralFprintf(w, "Questions per second:\t%s\n",
		printutils.HighlightSprintf("%0.1f", float64(progress.Sent)/dur.Seconds()))

	printThroughput(w, progress.Start, totals.Timings)

	if tc := totals.Hist.TotalCount(); tc > 0 {
		min := time.Duration(totals.Hist.Min())
		mean := time.Duration(totals.Hist.Mean())
		sd := time.Duration(totals.Hist.StdDev())
		max := time.Duration(totals.Hist.Max())
		p99 := time.Duration(totals.Hist.ValueAtQuantile(99))
		p95 := time.Duration(totals.Hist.ValueAtQuantile(95))
		p90 := time.Duration(totals.Hist.ValueAtQuantile(90))
		p75 := time.Duration(totals.Hist.ValueAtQuantile(75))
		p50 := time.Duration(totals.Hist.ValueAtQuantile(50))

		printutils.NeutralFprintf(w, "\nDNS timings, %d datapoints\n", tc)
		printutils.NeutralFprintf(w, "\t min:\t\t%s\n", roundDuration(min))
		printutils.NeutralFprintf(w, "\t mean:\t\t%s\n", roundDuration(mean))
		printutils.NeutralFprintf(w, "\t [+/-sd]:\t%s\n", roundDuration(sd))
		printutils.NeutralFprintf(w, "\t max:\t\t%s\n", roundDuration(max))
		printutils.NeutralFprintf(w, "\t p99:\t\t%s\n", roundDuration(p99))
		printutils.NeutralFprintf(w, "\t p95:\t\t%s\n", roundDuration(p95))
		printutils.NeutralFprintf(w, "\t p90:\t\t%s\n", roundDuration(p90))
		printutils.NeutralFprintf(w, "\t p75:\t\t%s\n", roundDuration(p75))
		printutils.NeutralFprintf(w, "\t p50:\t\t%s\n", roundDuration(p50))

		if tc > 1 {
			printutils.NeutralFprintf(w, "\nDNS distribution, %d datapoints\n", tc)
			printBars(w, totals.Hist.Distribution())
		}
	}

	fmt.Fprintf(w, "\nALLDONE sent: %d, success: %d, timeout: %d, failed: %d, workers finished: %d, percent: %d%%, time: %.2fs\n",
		progress.Sent, progress.Success, progress.Timeout, progress.Failed,
		progress.WorkersDone, percent, dur.Seconds())
}

func printBars(w io.Writer, bars []hdrhistogram.Bar) {
	counts := make([]int64, 0, len(bars))
	lines := make([][]string, 0, len(bars))
	added := false
	var max int64

	for _, b := range bars {
		if b.Count == 0 && !added {
			// trim the start
			continue
		}
		if b.Count > max {
			max = b.Count
		}

		added = true

		line := make([]string, 3)
		lines = append(lines, line)
		counts = append(counts, b.Count)

		line[0] = time.Duration(b.To/2 + b.From/2).String()
		line[2] = strconv.FormatInt(b.Count, 10)
	}

	for i, l := range lines {
		l[1] = makeBar(counts[i], max)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Latency", "", "Count"})
	table.SetBorder(false)
	table.AppendBulk(lines)
	table.Render()
}

func makeBar(c int64, max int64) string {
	if c == 0 {
		return ""
	}
	t := int((43 * float64(c) / float64(max)) + 0.5)
	return strings.Repeat("▄", t)
}
