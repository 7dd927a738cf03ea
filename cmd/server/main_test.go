package main

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards the log output shared with the server goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"HTTP_ADDR", "SERVE_ROOT", "SPA_INDEX", "SPA_ROUTES", "HITS_DB", "DOCS_ENABLED", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("writing index: %v", err)
	}
	t.Setenv("SERVE_ROOT", dir)
	t.Setenv("HTTP_ADDR", "127.0.0.1:0")
	t.Setenv("HITS_DB", filepath.Join(dir, "hits.db"))

	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() { done <- run(ctx, out) }()

	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(out.String(), "navigate to a route") {
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("server never reported its url; output:\n%s", out.String())
		}
		time.Sleep(10 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned %v, want nil", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("run did not return after cancel")
	}

	logs := out.String()
	for _, want := range []string{`"url":"http://127.0.0.1:`, "/dashboard", "recording hits", "shutting down http server"} {
		if !strings.Contains(logs, want) {
			t.Errorf("output missing %q:\n%s", want, logs)
		}
	}
}

func TestRunStartupErrors(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserving port: %v", err)
	}
	defer taken.Close()

	file := filepath.Join(t.TempDir(), "index.html")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "address in use",
			env:     map[string]string{"SERVE_ROOT": t.TempDir(), "HTTP_ADDR": taken.Addr().String()},
			wantErr: "listening on",
		},
		{
			name:    "missing root",
			env:     map[string]string{"SERVE_ROOT": filepath.Join(t.TempDir(), "nope"), "HTTP_ADDR": "127.0.0.1:0"},
			wantErr: "serving root",
		},
		{
			name:    "root is a file",
			env:     map[string]string{"SERVE_ROOT": file, "HTTP_ADDR": "127.0.0.1:0"},
			wantErr: "not a directory",
		},
		{
			name:    "bad routes",
			env:     map[string]string{"SERVE_ROOT": t.TempDir(), "SPA_ROUTES": "dashboard"},
			wantErr: "loading config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := run(context.Background(), &syncBuffer{})
			if err == nil {
				t.Fatal("run succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
