package daemon

import (
	"context"
	"testing"

	"snapid/internal/logging"
)

func TestNewRequiresDependencies(t *testing.T) {
	if _, err := New(nil, &fakeRecognizer{}, nil, logging.NewNop()); err == nil {
		t.Fatal("expected error when config missing")
	}
	if _, err := New(testConfig(t), nil, nil, logging.NewNop()); err == nil {
		t.Fatal("expected error when recognizer missing")
	}
}

func TestDaemonLockPreventsSecondInstance(t *testing.T) {
	cfg := testConfig(t)
	cfg.Paths.APIBind = "127.0.0.1:0"

	first, err := New(cfg, &fakeRecognizer{}, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	t.Cleanup(first.Stop)

	second, err := New(cfg, &fakeRecognizer{}, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := second.Start(context.Background()); err == nil {
		second.Stop()
		t.Fatal("expected second instance to fail on lock")
	}
}

func TestDaemonStartStop(t *testing.T) {
	cfg := testConfig(t)
	cfg.Paths.APIBind = "127.0.0.1:0"

	d, err := New(cfg, &fakeRecognizer{}, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	status := d.Status(context.Background())
	if !status.Running {
		t.Fatal("expected running status")
	}

	d.Stop()
	if d.Status(context.Background()).Running {
		t.Fatal("expected stopped status")
	}

	// Restart must work after a clean stop.
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("restart returned error: %v", err)
	}
	d.Stop()
}
