package observer

import (
	"bufio"
	"fmt"
	"os"

	"github.com/bioshell-go/bioshell/internal/bioshelllog"
	"github.com/bioshell-go/bioshell/internal/system"
)

// LineWriter writes one line per observed cycle to a file, formatted
// by a caller-supplied function (spec.md §6: "Observer outputs:
// line-oriented text files, one sample per line").
//
// Grounded on the teacher's validation package's per-step diagnostic
// writer, which opened a file once and appended a formatted line per
// iteration; generalized here behind the Observer interface so any
// number of these can be registered independently with their own lag
// times.
type LineWriter struct {
	Lag    int
	Format func(sys *system.System, cycle int) string

	file   *os.File
	writer *bufio.Writer
}

// NewLineWriter creates (or truncates) path and writes one formatted
// line per Observe call; lag is reported by LagTime for a Dispatch.
func NewLineWriter(path string, lag int, format func(sys *system.System, cycle int) string) (*LineWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("observer: opening %s: %w", path, err)
	}
	return &LineWriter{
		Lag:    lag,
		Format: format,
		file:   f,
		writer: bufio.NewWriter(f),
	}, nil
}

// LagTime implements Observer.
func (w *LineWriter) LagTime() int { return w.Lag }

// Observe implements Observer.
func (w *LineWriter) Observe(sys *system.System, cycle int) {
	line := w.Format(sys, cycle)
	if _, err := fmt.Fprintln(w.writer, line); err != nil {
		bioshelllog.Logger().WithField("observer", "LineWriter").WithField("error", err).Warn("write failed")
	}
}

// Close implements Observer: flushes the buffered writer and closes
// the file handle, per spec.md §5's deterministic-release requirement.
func (w *LineWriter) Close() error {
	if err := w.writer.Flush(); err != nil {
		return err
	}
	return w.file.Close()
}
