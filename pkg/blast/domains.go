package blast

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/miekg/dns"
)

// LoadDomainFile reads a newline-delimited list of domain names and returns
// them in file order, canonicalized to fully qualified form. Blank lines are
// skipped and lines that are not a well-formed domain name are dropped
// silently. An unreadable file is an error.
func LoadDomainFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open domain file: %w", err)
	}
	defer f.Close()

	var domains []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !validDomainName(line) {
			continue
		}
		domains = append(domains, dns.Fqdn(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read domain file: %w", err)
	}
	return domains, nil
}

func validDomainName(name string) bool {
	if strings.ContainsAny(name, " \t") {
		return false
	}
	_, ok := dns.IsDomainName(name)
	return ok
}
