package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger captures everything written through its logger so tests can
// assert on log output, e.g. that a load dropped an entity or a publish
// aborted with the paths it had already written.
type TestLogger struct {
	*zerolog.Logger
	Buffer *bytes.Buffer
}

// NewTestLogger returns a logger writing into an in-memory buffer. The
// global level is raised to trace for the test and restored on cleanup.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()

	old := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(old) })

	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).
		Level(zerolog.TraceLevel).
		With().
		Timestamp().
		Logger()

	return &TestLogger{Logger: &logger, Buffer: buf}
}

// Output returns everything captured so far.
func (tl *TestLogger) Output() string {
	return tl.Buffer.String()
}

// Lines returns one captured entry per element.
func (tl *TestLogger) Lines() []string {
	out := strings.TrimSpace(tl.Output())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// Contains reports whether the captured output contains substr.
func (tl *TestLogger) Contains(substr string) bool {
	return strings.Contains(tl.Output(), substr)
}

// ContainsAll reports whether the captured output contains every substring.
func (tl *TestLogger) ContainsAll(substrs ...string) bool {
	for _, substr := range substrs {
		if !tl.Contains(substr) {
			return false
		}
	}
	return true
}

// Count returns the number of captured entries.
func (tl *TestLogger) Count() int {
	return len(tl.Lines())
}

// Clear discards everything captured so far.
func (tl *TestLogger) Clear() {
	tl.Buffer.Reset()
}

// AssertContains fails the test when substr is absent from the output.
func (tl *TestLogger) AssertContains(t testing.TB, substr string) {
	t.Helper()
	if !tl.Contains(substr) {
		t.Errorf("log output does not contain %q\noutput:\n%s", substr, tl.Output())
	}
}

// AssertCount fails the test when the number of entries differs from want.
func (tl *TestLogger) AssertCount(t testing.TB, want int) {
	t.Helper()
	if got := tl.Count(); got != want {
		t.Errorf("expected %d log entries, got %d\noutput:\n%s", want, got, tl.Output())
	}
}

// CaptureLoggingForTest swaps the package default logger for a capturing one
// and restores the original on cleanup. Code paths that log without a
// context, like the publish abort log, can be observed this way.
func CaptureLoggingForTest(t testing.TB) *TestLogger {
	t.Helper()

	original := Default()
	tl := NewTestLogger(t)
	SetDefault(*tl.Logger)
	t.Cleanup(func() { SetDefault(*original) })

	return tl
}
