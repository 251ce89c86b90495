package blast

import (
	"log"
	"time"

	"github.com/miekg/dns"
)

func logResponse(workerID uint32, req *dns.Msg, resp *dns.Msg, dur time.Duration) {
	log.Printf("worker:[%d] reqid:[%d] qname:[%s] qtype:[%s] rcode:[%s] answers:[%d] respflags:[%s] duration:[%v]",
		workerID, req.Id, req.Question[0].Name, dns.TypeToString[req.Question[0].Qtype],
		dns.RcodeToString[resp.Rcode], len(resp.Answer), getFlags(resp), dur)
}

func getFlags(resp *dns.Msg) string {
	respflags := ""
	if resp.Response {
		respflags += "qr"
	}
	if resp.Authoritative {
		respflags += " aa"
	}
	if resp.Truncated {
		respflags += " tc"
	}
	if resp.RecursionDesired {
		respflags += " rd"
	}
	if resp.RecursionAvailable {
		respflags += " ra"
	}
	if resp.Zero {
		respflags += " z"
	}
	if resp.AuthenticatedData {
		respflags += " ad"
	}
	if resp.CheckingDisabled {
		respflags += " cd"
	}
	return respflags
}
