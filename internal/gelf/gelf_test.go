package gelf

import (
	"encoding/json"
	"net"
	"testing"
	"time"
)

func TestLevel(t *testing.T) {
	tests := map[string]int{
		"Stored RAS submission x":      6,
		"Warning: orphaned blobs: a":   4,
		"PANIC: GET /: boom":           3,
		"Fatal error opening database": 3,
	}
	for line, want := range tests {
		if got := Level(line); got != want {
			t.Errorf("Level(%q) = %d, want %d", line, got, want)
		}
	}
}

func TestWriter(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("udp unavailable: %v", err)
	}
	defer pc.Close()

	w, err := New(pc.LocalAddr().String(), "aco-portal")
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	line := "2025/03/07 14:05:09 Warning: request r1 not saved\n"
	if n, err := w.Write([]byte(line)); err != nil || n != len(line) {
		t.Fatalf("write: %d %v", n, err)
	}

	buf := make([]byte, 4096)
	pc.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := pc.ReadFrom(buf)
	if err != nil {
		t.Fatal(err)
	}
	var msg map[string]any
	if err := json.Unmarshal(buf[:n], &msg); err != nil {
		t.Fatal(err)
	}
	if msg["short_message"] != "Warning: request r1 not saved" || msg["level"] != float64(4) || msg["_service"] != "aco-portal" {
		t.Fatalf("unexpected message %v", msg)
	}
}
