package blast

import (
	"context"
	"math/rand"
	"net"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerSendFailuresAreClassifiedFailed(t *testing.T) {
	s := NewServer(func(dns.ResponseWriter, *dns.Msg) {})
	defer s.Close()

	b := testBlast(s.Addr, 2, 5)
	require.NoError(t, b.normalize())

	events := make(chan Event, 64)
	for id := uint32(0); id < b.Threads; id++ {
		w := newTestWorker(t, b, id, events)
		// closed endpoint makes every send fail
		w.conn.Close()
		w.run(context.Background())
	}

	progress := b.aggregate(events, time.Now())

	assert.Zero(t, progress.Sent)
	assert.Equal(t, int64(10), progress.Failed)
	assert.Zero(t, progress.Success)
	assert.Zero(t, progress.Timeout)
	assert.Equal(t, int64(2), progress.WorkersDone)
}

func TestWorkerMalformedReplyIsClassifiedFailed(t *testing.T) {
	// raw UDP responder echoing garbage that cannot be decoded as DNS
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()
	go func() {
		buf := make([]byte, 512)
		for {
			_, addr, err := pc.ReadFrom(buf)
			if err != nil {
				return
			}
			pc.WriteTo([]byte{0xde, 0xad, 0xbe}, addr)
		}
	}()

	b := testBlast(pc.LocalAddr().String(), 1, 3)
	require.NoError(t, b.normalize())

	events := make(chan Event, 64)
	w := newTestWorker(t, b, 0, events)
	defer w.conn.Close()
	w.run(context.Background())

	progress := b.aggregate(events, time.Now())

	assert.Equal(t, int64(3), progress.Sent)
	assert.Equal(t, int64(3), progress.Failed)
	assert.Zero(t, progress.Timeout)
	assert.Zero(t, progress.Success)
	assert.Equal(t, int64(3), w.stats.Counters.IOError)
	assert.Equal(t, int64(1), progress.WorkersDone)
}

func TestWorkerSentPrecedesTerminalEvent(t *testing.T) {
	s := NewServer(func(w dns.ResponseWriter, r *dns.Msg) {
		ret := new(dns.Msg)
		ret.SetReply(r)
		ret.Answer = append(ret.Answer, A("example.org. IN A 127.0.0.1"))
		w.WriteMsg(ret)
	})
	defer s.Close()

	b := testBlast(s.Addr, 1, 5)
	require.NoError(t, b.normalize())

	events := make(chan Event, 64)
	w := newTestWorker(t, b, 0, events)
	defer w.conn.Close()
	w.run(context.Background())

	var seen []Status
	for {
		ev := <-events
		seen = append(seen, ev.Status)
		assert.Equal(t, uint32(0), ev.Worker)
		if ev.Status == StatusWorkerDone {
			break
		}
	}

	// every iteration is either a lone Failed or a Sent followed by exactly
	// one terminal event, WorkerDone comes last
	iterations := 0
	for i := 0; i < len(seen)-1; i++ {
		switch seen[i] {
		case StatusFailed:
			iterations++
		case StatusSent:
			require.Less(t, i+1, len(seen)-1, "Sent without terminal event")
			terminal := seen[i+1]
			assert.Contains(t, []Status{StatusSuccess, StatusTimeout, StatusFailed}, terminal)
			iterations++
			i++
		default:
			t.Fatalf("unexpected event %v at position %d", seen[i], i)
		}
	}
	assert.Equal(t, 5, iterations)
	assert.Equal(t, StatusWorkerDone, seen[len(seen)-1])
}

func newTestWorker(t *testing.T, b *Blast, id uint32, events chan Event) *worker {
	t.Helper()
	co, err := dns.DialTimeout("udp", b.Server, connectTimeout)
	require.NoError(t, err)
	return &worker{
		id:     id,
		blast:  b,
		conn:   co,
		txid:   &txidAllocator{},
		events: events,
		stats:  newResultStats(),
		rnd:    rand.New(rand.NewSource(1)),
	}
}
