package pipeline

import (
	"net"
	"strings"
)

// NormalizeHost lower-cases host and strips any port and trailing dot.
func NormalizeHost(host string) string {
	host = strings.TrimSpace(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.TrimSuffix(strings.ToLower(host), ".")
}

// ValidateHost checks that host is a subdomain of one of domains.
func ValidateHost(host string, domains []string) error {
	host = NormalizeHost(host)
	for _, domain := range domains {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain != "" && strings.HasSuffix(host, "."+domain) {
			return nil
		}
	}
	return &NotFoundError{Host: host}
}

// ExtractUsername returns the first label of a host with at least three labels.
func ExtractUsername(host string) (string, error) {
	host = NormalizeHost(host)
	labels := strings.Split(host, ".")
	if len(labels) < 3 || labels[0] == "" {
		return "", &BadRequestError{Host: host}
	}
	return labels[0], nil
}
