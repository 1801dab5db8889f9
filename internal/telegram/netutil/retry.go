// Package netutil classifies transport errors from the Telegram API so the
// HTTP client can decide whether another attempt makes sense.
package netutil

import (
	"context"
	"errors"
	"net"
	"net/url"
	"syscall"
)

// Transient reports whether err is a short-lived network failure worth
// retrying: timeouts, refused or reset connections, failed dials. Context
// cancellation is never transient; the caller asked to stop.
func Transient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// net/http wraps transport failures in *url.Error; classify the cause.
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil && !errors.Is(urlErr.Err, err) {
		return urlErr.Timeout() || Transient(urlErr.Err)
	}

	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
