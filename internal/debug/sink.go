package debug

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// Sink is the interface for debug output destinations.
type Sink interface {
	Write(event Event) error
	Flush() error
	Close() error
}

// JSONSink writes events in JSON Lines format.
type JSONSink struct {
	w       *bufio.Writer
	encoder *json.Encoder
}

// NewJSONSink creates a new JSON Lines sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	bw := bufio.NewWriter(w)
	return &JSONSink{
		w:       bw,
		encoder: json.NewEncoder(bw),
	}
}

// Write encodes and writes an event as a JSON line.
func (s *JSONSink) Write(event Event) error {
	return s.encoder.Encode(event)
}

// Flush writes any buffered data to the underlying writer.
func (s *JSONSink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *JSONSink) Close() error {
	return s.Flush()
}

// PrettySink writes events in human-readable format.
type PrettySink struct {
	w *bufio.Writer
}

// NewPrettySink creates a new pretty-format sink writing to w.
func NewPrettySink(w io.Writer) *PrettySink {
	return &PrettySink{
		w: bufio.NewWriter(w),
	}
}

// Write formats and writes an event in human-readable format.
func (s *PrettySink) Write(event Event) error {
	fmt.Fprintf(s.w, "[%s] [%s/%s] session=%s\n", event.Timestamp, event.Phase, event.Event, event.SessionID)

	switch d := event.Data.(type) {
	case ExportStartData:
		s.writeExportStart(d)
	case CellData:
		s.writeCell(d)
	case ExportEndData:
		s.writeExportEnd(d)
	case SnapshotData:
		s.writeSnapshot(d)
	case map[string]interface{}:
		s.writeMap(d)
	case map[string]int64:
		s.writeMapInt64(d)
	default:
		fmt.Fprintf(s.w, "  data: %+v\n", d)
	}

	return nil
}

func (s *PrettySink) writeExportStart(d ExportStartData) {
	fmt.Fprintf(s.w, "  display: %dx%d, cell_size: %d\n", d.Rows, d.Cols, d.CellSize)
	if d.Transposed {
		fmt.Fprintf(s.w, "  transposed: true\n")
	}
}

func (s *PrettySink) writeCell(d CellData) {
	fmt.Fprintf(s.w, "  display: %d (row=%d, col=%d) -> logical: %d\n",
		d.DisplayIndex, d.Row, d.Col, d.LogicalIndex)
	fmt.Fprintf(s.w, "  pattern: %s (%s), rotation: %d\n", d.Kind, DescribeKind(d.Kind), d.Rotation)
}

func (s *PrettySink) writeExportEnd(d ExportEndData) {
	fmt.Fprintf(s.w, "  cells: %d, size: %dx%d\n", d.Cells, d.Width, d.Height)
	fmt.Fprintf(s.w, "  elapsed_ms: %d\n", d.ElapsedMs)
}

func (s *PrettySink) writeSnapshot(d SnapshotData) {
	fmt.Fprintf(s.w, "  action: %s\n", d.Action)
	fmt.Fprintf(s.w, "  patterns: %d, library: %d, grid: %dx%d\n",
		d.Patterns, d.Library, d.Rows, d.Cols)
}

func (s *PrettySink) writeMap(d map[string]interface{}) {
	for k, v := range d {
		fmt.Fprintf(s.w, "  %s: %v\n", k, v)
	}
}

func (s *PrettySink) writeMapInt64(d map[string]int64) {
	for k, v := range d {
		fmt.Fprintf(s.w, "  %s: %d\n", k, v)
	}
}

// Flush writes any buffered data to the underlying writer.
func (s *PrettySink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *PrettySink) Close() error {
	return s.Flush()
}
