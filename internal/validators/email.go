package validators

import (
	"net"
	"net/mail"
	"strings"
)

// IsValidEmail checks the address shape. Used for the optional staff email
// field; empty is handled by the caller.
func IsValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// EmailDomainResolves does a best-effort DNS check on the domain. Intended
// for create flows only; lookup latency makes it unsuitable per-request.
func EmailDomainResolves(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}
	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}
	return false
}
