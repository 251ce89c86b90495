package blast

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net"
	"time"

	"github.com/miekg/dns"
)

// worker drives one endpoint through a fixed number of query/response cycles.
// The endpoint is never shared, so no locking is needed around send/receive.
type worker struct {
	id     uint32
	blast  *Blast
	conn   *dns.Conn
	txid   *txidAllocator
	events chan<- Event
	stats  *ResultStats
	rnd    *rand.Rand
}

func (w *worker) run(ctx context.Context) {
	for i := int64(0); i < w.blast.Count; i++ {
		if ctx.Err() != nil {
			break
		}
		w.query()
	}
	w.emit(StatusWorkerDone)
}

// query performs one request/response cycle. Every failure is classified into
// exactly one terminal event, the worker simply proceeds to its next
// iteration afterwards.
func (w *worker) query() {
	id := w.txid.Next()
	qname := w.blast.Domains[w.rnd.Intn(len(w.blast.Domains))]
	if w.blast.Debug >= 2 {
		log.Printf("worker:[%d] selected domain:[%s]", w.id, qname)
	}

	m := new(dns.Msg)
	m.Id = id
	m.RecursionDesired = true
	m.Question = []dns.Question{{Name: qname, Qtype: w.blast.qtype, Qclass: dns.ClassINET}}

	w.stats.Counters.Total++
	if w.blast.limit != nil {
		w.blast.limit.Take()
	}

	start := time.Now()
	w.conn.SetWriteDeadline(start.Add(writeTimeout))
	if err := w.conn.WriteMsg(m); err != nil {
		w.stats.Counters.IOError++
		w.emit(StatusFailed)
		return
	}
	w.stats.Counters.Sent++
	w.emit(StatusSent)

	// a single deadline covers all receive attempts of this iteration,
	// replies carrying a foreign transaction ID are drained without
	// re-arming the timeout, so a reply flood cannot stall the iteration
	// past the configured timeout
	w.conn.SetReadDeadline(start.Add(w.blast.Timeout))
	for {
		r, err := w.conn.ReadMsg()
		if err != nil {
			var nerr net.Error
			if errors.As(err, &nerr) && nerr.Timeout() {
				w.stats.Counters.Timeout++
				w.emit(StatusTimeout)
			} else {
				w.stats.Counters.IOError++
				w.emit(StatusFailed)
			}
			return
		}
		if r.Id != id {
			w.stats.Counters.IDmismatch++
			continue
		}

		dur := time.Since(start)
		w.stats.record(start, dur)
		w.stats.Counters.Success++
		if w.blast.Debug >= 2 {
			logResponse(w.id, m, r, dur)
		}
		w.emit(StatusSuccess)
		return
	}
}

func (w *worker) emit(s Status) {
	w.events <- Event{Status: s, Worker: w.id}
}
