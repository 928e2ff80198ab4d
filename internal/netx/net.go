// Package netx classifies transport failures for logs and error details.
package netx

import (
	"context"
	"errors"
	"net"
	"net/http"
	"syscall"
)

// Failure reasons reported by Reason.
const (
	ReasonTimeout  = "timeout"
	ReasonCanceled = "canceled"
	ReasonRefused  = "connection refused"
	ReasonDNS      = "dns lookup failed"
	ReasonNetwork  = "network error"
)

// Reason maps an error returned by http.Client.Do to a short human label.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) {
		return ReasonCanceled
	}
	if IsTimeout(err) {
		return ReasonTimeout
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return ReasonRefused
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ReasonDNS
	}
	return ReasonNetwork
}

// IsTimeout reports whether err is a deadline or network timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// IsSuccess reports whether status is in the 2xx range.
func IsSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
