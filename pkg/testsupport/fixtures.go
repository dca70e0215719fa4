// Package testsupport holds helpers shared by package tests: golden files,
// fixed clocks and a scripted picker.
package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// FixedClock returns a clock that always reports the given wall time on
// 2024-05-01 UTC.
func FixedClock(hour, minute, second int) func() time.Time {
	at := time.Date(2024, 5, 1, hour, minute, second, 0, time.UTC)
	return func() time.Time { return at }
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// AssertGolden compares got with the golden file at path, rewriting the file
// instead when UPDATE_GOLDENS is set.
func AssertGolden(t *testing.T, path string, got []byte) {
	t.Helper()
	if WriteMaybeGolden(t, path, got) {
		return
	}
	want := MustReadGolden(t, path)
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}

// Pick is one scripted picker answer.
type Pick struct {
	Path string
	OK   bool
	Err  error
}

// Picker replays scripted answers and records the start directories it was
// opened with. It satisfies form.Picker.
type Picker struct {
	mu      sync.Mutex
	answers []Pick
	Starts  []string
	Modes   []string
}

// NewPicker returns a Picker answering with picks in order. Once exhausted it
// reports a cancellation.
func NewPicker(picks ...Pick) *Picker {
	return &Picker{answers: picks}
}

// PickDirectory returns the next scripted answer.
func (p *Picker) PickDirectory(_ context.Context, start string) (string, bool, error) {
	return p.next("directory", start)
}

// PickFile returns the next scripted answer.
func (p *Picker) PickFile(_ context.Context, start string) (string, bool, error) {
	return p.next("file", start)
}

func (p *Picker) next(mode, start string) (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Starts = append(p.Starts, start)
	p.Modes = append(p.Modes, mode)
	if len(p.answers) == 0 {
		return "", false, nil
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer.Path, answer.OK, answer.Err
}
