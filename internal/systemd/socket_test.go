package systemd

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestGetListeners_NotActivated(t *testing.T) {
	t.Setenv("LISTEN_PID", "")
	t.Setenv("LISTEN_FDS", "")

	l, err := GetListeners()
	if err != nil {
		t.Fatalf("GetListeners() error = %v", err)
	}
	if l.Activated || l.API != nil || l.Metrics != nil {
		t.Errorf("GetListeners() = %+v, want empty", l)
	}
}

func TestAssign(t *testing.T) {
	api, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer api.Close()

	var l Listeners
	l.assign(map[string][]net.Listener{NameAPI: {api}, "other": {api}})

	if l.API != api {
		t.Errorf("API listener not assigned")
	}
	if l.Metrics != nil {
		t.Errorf("Metrics = %v, want nil", l.Metrics)
	}
}

func TestIsSystemdService(t *testing.T) {
	t.Setenv("NOTIFY_SOCKET", "")
	if IsSystemdService() {
		t.Errorf("IsSystemdService() = true without NOTIFY_SOCKET")
	}
	t.Setenv("NOTIFY_SOCKET", "/run/systemd/notify")
	if !IsSystemdService() {
		t.Errorf("IsSystemdService() = false with NOTIFY_SOCKET")
	}
}

func TestRunWatchdog_Disabled(t *testing.T) {
	t.Setenv("WATCHDOG_USEC", "")

	done := make(chan struct{})
	go func() {
		RunWatchdog(context.Background(), zerolog.Nop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunWatchdog did not return without a watchdog")
	}
}
