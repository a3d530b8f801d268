package debug

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestDebugDisabled(t *testing.T) {
	// Ensure debug is disabled
	SetEnabled(false)
	defer SetEnabled(false)

	var buf bytes.Buffer
	sink := NewJSONSink(&buf)
	session := NewSession(sink)

	// Should return nil when disabled
	if session != nil {
		t.Error("NewSession should return nil when disabled")
	}

	// Emit should be no-op on nil session
	session.Emit("test", "Event", nil)

	if buf.Len() > 0 {
		t.Error("Events emitted when debug disabled")
	}
}

func TestDebugEnabled(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)

	var buf bytes.Buffer
	sink := NewJSONSink(&buf)
	session := NewSession(sink)

	if session == nil {
		t.Fatal("NewSession should return non-nil when enabled")
	}

	// Emit test event
	session.Emit("test", "TestEvent", map[string]string{
		"key": "value",
	})

	if err := session.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Parse and verify JSON lines
	output := buf.String()
	lines := strings.Split(strings.TrimSpace(output), "\n")

	if len(lines) < 3 { // Start, TestEvent, End
		t.Fatalf("Expected at least 3 lines, got %d", len(lines))
	}

	// Verify first event is session start
	var startEvent Event
	if err := json.Unmarshal([]byte(lines[0]), &startEvent); err != nil {
		t.Fatalf("Failed to parse start event: %v", err)
	}
	if startEvent.Phase != "session" || startEvent.Event != "Start" {
		t.Errorf("Expected session/Start, got %s/%s", startEvent.Phase, startEvent.Event)
	}

	// Verify test event
	var testEvent Event
	if err := json.Unmarshal([]byte(lines[1]), &testEvent); err != nil {
		t.Fatalf("Failed to parse test event: %v", err)
	}
	if testEvent.Phase != "test" || testEvent.Event != "TestEvent" {
		t.Errorf("Expected test/TestEvent, got %s/%s", testEvent.Phase, testEvent.Event)
	}
	if testEvent.SessionID == "" {
		t.Error("Session ID should not be empty")
	}

	// Verify last event is session end
	var endEvent Event
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &endEvent); err != nil {
		t.Fatalf("Failed to parse end event: %v", err)
	}
	if endEvent.Phase != "session" || endEvent.Event != "End" {
		t.Errorf("Expected session/End, got %s/%s", endEvent.Phase, endEvent.Event)
	}
}

func TestJSONSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONSink(&buf)

	event := Event{
		Timestamp: "2025-01-01T00:00:00Z",
		SessionID: "abc123",
		Phase:     "test",
		Event:     "TestEvent",
		Data:      map[string]int{"count": 42},
	}

	if err := sink.Write(event); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := sink.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	var parsed Event
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if parsed.Phase != "test" || parsed.Event != "TestEvent" {
		t.Errorf("Unexpected event: %+v", parsed)
	}
}

func TestPrettySink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewPrettySink(&buf)

	event := Event{
		Timestamp: "2025-01-01T00:00:00Z",
		SessionID: "abc123",
		Phase:     "export",
		Event:     "Cell",
		Data: CellData{
			DisplayIndex: 0,
			LogicalIndex: 7,
			Row:          0,
			Col:          0,
			Kind:         "checkerboard",
			Rotation:     90,
		},
	}

	if err := sink.Write(event); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := sink.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "-> logical: 7") {
		t.Errorf("Pretty output should show index mapping, got: %s", output)
	}
	if !strings.Contains(output, "checkerboard") {
		t.Errorf("Pretty output should show the kind, got: %s", output)
	}
	if !strings.Contains(output, "4x4 alternating sub-grid") {
		t.Errorf("Pretty output should describe the kind, got: %s", output)
	}
}

func TestDescribeKind(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{"solid", "flat fill"},
		{"horizontal", "5 bands, top to bottom"},
		{"vertical", "5 bands, left to right"},
		{"diagonal", "5 bands at 45 degrees"},
		{"checkerboard", "4x4 alternating sub-grid"},
		{"quartersquare", "4 triangles, apex at centre"},
		{"ninepatch", "3x3 wrapping sub-grid"},
		{"pinwheel", "8 triangles, apex at centre"},
		{"flyinggeese", "2 geese over 4 corners"},
		{"paisley", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			if got := DescribeKind(tt.kind); got != tt.want {
				t.Errorf("DescribeKind(%q) = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestClassifyPaint(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{"solid", "fill"},
		{"horizontal", "stripes"},
		{"vertical", "stripes"},
		{"diagonal", "stripes"},
		{"checkerboard", "pieced"},
		{"quartersquare", "pieced"},
		{"ninepatch", "pieced"},
		{"pinwheel", "pieced"},
		{"flyinggeese", "pieced"},
		{"paisley", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			if got := ClassifyPaint(tt.kind); got != tt.want {
				t.Errorf("ClassifyPaint(%q) = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestSessionID(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)

	var buf bytes.Buffer
	sink := NewJSONSink(&buf)
	session := NewSession(sink)

	if session == nil {
		t.Fatal("NewSession should return non-nil when enabled")
	}

	id := session.SessionID()
	if id == "" {
		t.Error("SessionID should not be empty")
	}
	if len(id) != 8 { // 4 bytes hex encoded = 8 characters
		t.Errorf("SessionID should be 8 characters, got %d", len(id))
	}

	session.Close()
}

func TestNilSessionSafety(t *testing.T) {
	// All operations on nil session should be safe
	var session *Session

	// Should not panic
	session.Emit("test", "Event", nil)

	if err := session.Close(); err != nil {
		t.Errorf("Close on nil session should return nil, got %v", err)
	}

	if id := session.SessionID(); id != "" {
		t.Errorf("SessionID on nil session should return empty, got %v", id)
	}
}
