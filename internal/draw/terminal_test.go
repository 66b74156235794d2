package draw

import (
	"strings"
	"testing"
)

func TestChunkWriterWriteAtAppliesOffset(t *testing.T) {
	var out strings.Builder
	cw := NewChunkWriter(&out, 3, 2)

	cw.WriteAt(5, 1, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got, want := out.String(), "\033[3;8Hhi"; got != want {
		t.Fatalf("flushed %q, want %q", got, want)
	}
}

func TestChunkWriterFlushPreservesLargePayload(t *testing.T) {
	var out strings.Builder
	cw := NewChunkWriter(&out, 0, 0)

	// Several chunks plus a ragged tail.
	payload := strings.Repeat("x", maxChunkSize*3+17)
	cw.WriteString(payload)
	if err := cw.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if out.String() != payload {
		t.Fatalf("flushed %d bytes, want %d intact", out.Len(), len(payload))
	}

	// Buffer resets between flushes.
	cw.WriteString("tail")
	if err := cw.Flush(); err != nil {
		t.Fatalf("second flush: %v", err)
	}
	if got, want := out.String(), payload+"tail"; got != want {
		t.Fatalf("second flush appended %q", got[len(payload):])
	}
}
