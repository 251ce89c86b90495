package blast

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/miekg/dns"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/ratelimit"
)

// Blast is a representation of a load generation scenario.
type Blast struct {
	// Server is the target resolver address, ":53" is appended when no port is given.
	Server string
	// RecordType is the query type, "A" or "AAAA".
	RecordType string
	// Threads is the number of concurrent workers, each owning one UDP endpoint.
	Threads uint32
	// Count is the number of queries each worker issues.
	Count int64
	// Timeout bounds the wait for a matching reply of each query.
	Timeout time.Duration
	// Rate limits queries per second across all workers, 0 disables limiting.
	Rate int
	// Debug level, 0: progress bar only, 1: progress line per event, 2: print all info.
	Debug int
	// Silent disables all output of the run.
	Silent bool
	// Domains is the pool of names to query, shared read-only by all workers.
	Domains []string
	// Writer used for printing progress and reports, defaults to os.Stdout.
	Writer io.Writer

	qtype uint16
	limit ratelimit.Limiter
}

// Progress holds aggregate counters of a run. The counters are owned by the
// aggregation loop and are monotonically non-decreasing until the run ends.
type Progress struct {
	Sent        int64
	Success     int64
	Timeout     int64
	Failed      int64
	WorkersDone int64
	Start       time.Time
}

// TotalQueries reports how many queries the run will attempt in total.
func (b *Blast) TotalQueries() int64 {
	return int64(b.Threads) * b.Count
}

func (b *Blast) normalize() error {
	if b.Writer == nil {
		b.Writer = os.Stdout
	}

	if len(b.Domains) == 0 {
		return errors.New("domain pool is empty")
	}

	if b.Threads == 0 {
		return errors.New("thread count must be positive")
	}

	if b.Count < 0 {
		return fmt.Errorf("invalid query count %d", b.Count)
	}

	switch b.RecordType {
	case "A":
		b.qtype = dns.TypeA
	case "AAAA":
		b.qtype = dns.TypeAAAA
	default:
		return fmt.Errorf("unsupported record type %q", b.RecordType)
	}

	if !strings.Contains(b.Server, ":") {
		b.Server += ":53"
	}

	if b.Timeout <= 0 {
		b.Timeout = DefaultTimeout
	}

	if b.Rate > 0 {
		b.limit = ratelimit.New(b.Rate)
	}
	return nil
}

// Run executes the load generation run. It spawns the configured number of
// workers and consumes their status events on the calling goroutine until
// every worker has reported completion. Run blocks until then and returns the
// aggregate counters together with per-worker latency stats. An error is
// returned only for startup failures, before any worker is spawned.
func (b *Blast) Run(ctx context.Context) (Progress, []*ResultStats, error) {
	if err := b.normalize(); err != nil {
		return Progress{}, nil, err
	}

	// every worker owns its endpoint exclusively, a dial failure aborts the
	// run before anything is spawned
	conns := make([]*dns.Conn, b.Threads)
	for i := range conns {
		co, err := dns.DialTimeout("udp", b.Server, connectTimeout)
		if err != nil {
			for _, c := range conns[:i] {
				c.Close()
			}
			return Progress{}, nil, fmt.Errorf("failed to open endpoint for worker %d: %w", i, err)
		}
		conns[i] = co
	}

	start := time.Now()

	txid := &txidAllocator{}
	events := make(chan Event, eventBuffer)
	stats := make([]*ResultStats, b.Threads)

	var wg sync.WaitGroup
	for i := uint32(0); i < b.Threads; i++ {
		st := newResultStats()
		stats[i] = st

		w := &worker{
			id:     i,
			blast:  b,
			conn:   conns[i],
			txid:   txid,
			events: events,
			stats:  st,
			// lock free rand source per worker
			rnd: rand.New(rand.NewSource(time.Now().UnixNano() + int64(i))),
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			w.run(ctx)
		}()
	}

	progress := b.aggregate(events, start)

	wg.Wait()
	for _, co := range conns {
		co.Close()
	}
	return progress, stats, nil
}

// aggregate is the sole consumer of the event channel. It folds every event
// into the counters and ends exactly when all workers have reported done.
func (b *Blast) aggregate(events <-chan Event, start time.Time) Progress {
	progress := Progress{Start: start}
	total := b.TotalQueries()

	var bar *progressbar.ProgressBar
	if b.Debug == 0 && !b.Silent {
		bar = progressbar.NewOptions64(total,
			progressbar.OptionSetDescription("firing queries"),
			progressbar.OptionSetWriter(b.Writer),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for progress.WorkersDone < int64(b.Threads) {
		ev := <-events

		switch ev.Status {
		case StatusSent:
			progress.Sent++
			if bar != nil {
				_ = bar.Add(1)
			}
		case StatusSuccess:
			progress.Success++
		case StatusTimeout:
			progress.Timeout++
		case StatusFailed:
			progress.Failed++
		case StatusWorkerDone:
			progress.WorkersDone++
		}

		if b.Debug >= 1 && !b.Silent {
			percent := int64(0)
			if total > 0 {
				percent = 100 * progress.Sent / total
			}
			fmt.Fprintf(b.Writer, "worker %d %s: sent: %d, success: %d, timeout: %d, failed: %d, workers finished: %d, percent: %d%%, time: %.2fs\n",
				ev.Worker, ev.Status, progress.Sent, progress.Success, progress.Timeout, progress.Failed,
				progress.WorkersDone, percent, time.Since(start).Seconds())
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}
	return progress
}
