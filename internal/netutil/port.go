// Package netutil picks a listenable bind address for the web front-end.
package netutil

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
)

// SelectBindAddr returns the preferred address when it can be listened on.
// When it is busy and autoFallback allows it, the candidate list is walked in
// order and the first free address wins.
func SelectBindAddr(preferred string, candidates []string, autoFallback bool) (string, error) {
	if preferred != "" {
		ok, err := isAddrAvailable(preferred)
		if err != nil {
			return "", err
		}
		if ok {
			return preferred, nil
		}
		if !autoFallback {
			return "", fmt.Errorf("preferred bind address in use: %s", preferred)
		}
		slog.Warn("preferred bind address in use, trying candidates",
			"preferred", preferred, "candidates", candidates)
	}

	for _, addr := range candidates {
		ok, err := isAddrAvailable(addr)
		if err != nil {
			return "", err
		}
		if ok {
			return addr, nil
		}
	}

	return "", errors.New("no available bind addresses")
}

// isAddrAvailable probes addr with a short-lived listener. A failed listen
// means busy, not an error; only a failed close is surfaced.
func isAddrAvailable(addr string) (bool, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return false, nil
	}
	if closeErr := ln.Close(); closeErr != nil {
		return false, closeErr
	}
	return true, nil
}
