package input

import "testing"

func TestParseMouseEventPress(t *testing.T) {
	buf := []byte("\x1b[<0;13;8M")
	ev, consumed, ok := parseMouseEvent(buf, 0)
	if !ok {
		t.Fatal("expected complete sequence")
	}
	if consumed != len(buf) {
		t.Fatalf("consumed %d, want %d", consumed, len(buf))
	}
	if !ev.press || ev.release || ev.motion {
		t.Fatalf("expected press event, got %+v", ev)
	}
	if ev.x != 12 || ev.y != 7 {
		t.Fatalf("expected 0-based (12,7), got (%d,%d)", ev.x, ev.y)
	}
}

func TestParseMouseEventRelease(t *testing.T) {
	ev, _, ok := parseMouseEvent([]byte("\x1b[<0;1;1m"), 0)
	if !ok || !ev.release {
		t.Fatalf("expected release, got ok=%v ev=%+v", ok, ev)
	}
	if ev.x != 0 || ev.y != 0 {
		t.Fatalf("expected origin, got (%d,%d)", ev.x, ev.y)
	}
}

func TestParseMouseEventMotion(t *testing.T) {
	ev, _, ok := parseMouseEvent([]byte("\x1b[<35;40;20M"), 0)
	if !ok || !ev.motion {
		t.Fatalf("expected motion, got ok=%v ev=%+v", ok, ev)
	}
	if ev.press || ev.release {
		t.Fatalf("motion should not press or release: %+v", ev)
	}
}

func TestParseMouseEventPartial(t *testing.T) {
	_, consumed, ok := parseMouseEvent([]byte("\x1b[<0;13"), 0)
	if ok {
		t.Fatal("partial sequence should not parse")
	}
	if consumed != 0 {
		t.Fatalf("partial sequence should consume 0 bytes, got %d", consumed)
	}
}

func TestParseMouseEventAtOffset(t *testing.T) {
	buf := []byte("xx\x1b[<0;5;6Myy")
	ev, consumed, ok := parseMouseEvent(buf, 2)
	if !ok {
		t.Fatal("expected complete sequence at offset")
	}
	if consumed != len("\x1b[<0;5;6M") {
		t.Fatalf("consumed %d", consumed)
	}
	if ev.x != 4 || ev.y != 5 {
		t.Fatalf("got (%d,%d)", ev.x, ev.y)
	}
}
