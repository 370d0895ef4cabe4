package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"testing"
)

type closeRecorder struct {
	closed bool
	err    error
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return c.err
}

func TestCloseAll(t *testing.T) {
	a, b := &closeRecorder{err: errors.New("already closed")}, &closeRecorder{}
	closeAll([]io.Closer{a, b})
	if !a.closed || !b.closed {
		t.Fatalf("closers not closed: %v %v", a.closed, b.closed)
	}
}

func TestOpenApp_ClosesGELFOnFailure(t *testing.T) {
	t.Setenv("PORTAL_GELF_ADDR", "127.0.0.1:12201")
	t.Setenv("PORTAL_BLOB_BACKEND", "local")
	// A file where the database directory should be makes db.Open fail
	// after the GELF writer is open.
	blocker := t.TempDir() + "/blocker"
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORTAL_DB_PATH", blocker+"/portal.db")
	t.Setenv("PORTAL_BLOB_DIR", t.TempDir())

	if _, err := openApp(context.Background(), ""); err == nil {
		t.Fatal("expected database error")
	}
	if w := log.Writer(); w != os.Stderr {
		t.Fatalf("log output still points at the closed GELF writer: %T", w)
	}
}
