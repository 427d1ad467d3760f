package netutil

import (
	"net"
	"testing"
)

func TestSelectBindAddrPrefersAvailablePreferred(t *testing.T) {
	got, err := SelectBindAddr("127.0.0.1:0", nil, false)
	if err != nil {
		t.Fatalf("SelectBindAddr() error = %v", err)
	}
	if got != "127.0.0.1:0" {
		t.Fatalf("SelectBindAddr() = %q, want the preferred address", got)
	}
}

func TestSelectBindAddrFallsBackWhenPreferredBusy(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer func() { _ = ln.Close() }()
	busy := ln.Addr().String()

	got, err := SelectBindAddr(busy, []string{"127.0.0.1:0"}, true)
	if err != nil {
		t.Fatalf("SelectBindAddr() error = %v", err)
	}
	if got != "127.0.0.1:0" {
		t.Fatalf("SelectBindAddr() = %q, want the fallback candidate", got)
	}
}

func TestSelectBindAddrNoFallbackErrorsWhenBusy(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer func() { _ = ln.Close() }()
	busy := ln.Addr().String()

	if _, err := SelectBindAddr(busy, []string{"127.0.0.1:0"}, false); err == nil {
		t.Fatal("SelectBindAddr() expected error with fallback disabled")
	}
}

func TestSelectBindAddrAllBusy(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer func() { _ = ln.Close() }()
	busy := ln.Addr().String()

	if _, err := SelectBindAddr(busy, []string{busy}, true); err == nil {
		t.Fatal("SelectBindAddr() expected error when every candidate is busy")
	}
}
