package blast

import (
	"net"

	"github.com/miekg/dns"
)

// Server represents simple DNS server for tests.
type Server struct {
	Addr  string
	inner *dns.Server
}

// Close shuts down running DNS server instance.
func (s *Server) Close() {
	s.inner.Shutdown()
}

// NewServer creates and starts new UDP DNS server instance.
func NewServer(f dns.HandlerFunc) *Server {
	var pc net.PacketConn
	for i := 0; i < 10; i++ {
		pc, _ = net.ListenPacket("udp", "127.0.0.1:0")
		if pc != nil {
			break
		}
	}
	if pc == nil {
		panic("failed to create test server")
	}

	s := &dns.Server{PacketConn: pc, Handler: f}

	ch := make(chan bool)
	s.NotifyStartedFunc = func() { close(ch) }
	go func() {
		s.ActivateAndServe()
	}()

	<-ch
	return &Server{inner: s, Addr: pc.LocalAddr().String()}
}

// A returns an A record from rr. It panics on errors.
func A(rr string) *dns.A {
	r, err := dns.NewRR(rr)
	if err != nil {
		panic(err)
	}
	return r.(*dns.A)
}
