package store

import (
	"context"
	"errors"
	"net"
	"syscall"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"github.com/AnshRaj112/natpac-travel-backend/internal/errs"
)

// ShouldUseFallback reports whether err is an infrastructure failure
// (unreachable server, DNS, timeout) rather than a domain error such as a
// duplicate key or a missing record.
func ShouldUseFallback(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, errs.ErrUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var sel topology.ServerSelectionError
	if errors.As(err, &sel) {
		return true
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
