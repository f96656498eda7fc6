//internal/paypal/retry_policy.go

package paypal

import (
	"context"
	"errors"
	"net"
	"syscall"

	"github.com/Tanmoy095/LogiSynapse/ipn-service/internal/ipn"
)

// IsRetryableError tells a caller whether acknowledging again later can succeed.
// The ipn package never retries on its own; the listener uses this to choose between
// asking PayPal to redeliver (5xx) and giving up.
func IsRetryableError(err error) bool {
	if err == nil { // No error, no retry needed
		return false
	}
	// PayPal answered, but with something we cannot read. Retrying will not fix our parser.
	if errors.Is(err, ipn.ErrMalformedUpstreamResponse) {
		return false
	}
	return isRetryableStatus(err) || isRetryableNetworkError(err) || isRetryableSystemError(err)
}

func isRetryableStatus(err error) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	// HTTP 500-599: PayPal down -> RETRY
	// HTTP 429: throttled -> RETRY
	// anything else (400, 403...) -> STOP
	return statusErr.StatusCode >= 500 || statusErr.StatusCode == 429
}

func isRetryableNetworkError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) { //that means it's a network error
		if netErr.Timeout() {
			return true
		}
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsTemporary {
		return true
	}
	return false
}

func isRetryableSystemError(err error) bool {
	//Connection Refused / Reset
	return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET)
}
