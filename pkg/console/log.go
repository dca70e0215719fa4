// Package console implements the append-only output log shown next to a form
// and the io.Writer that mirrors program output into it.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Follower is notified of every appended line, in append order. It is the
// hook frontends use to keep the newest entry in view. Errors and panics from
// a follower are swallowed; a follower must not append to the log it follows.
type Follower func(line string) error

// Log is an ordered, append-only sequence of lines. It grows for the whole
// session and is never truncated or edited. Safe for concurrent use.
type Log struct {
	notify sync.Mutex

	mu        sync.RWMutex
	lines     []string
	followers map[int]Follower
	nextID    int
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{followers: make(map[int]Follower)}
}

// Append adds one line.
func (l *Log) Append(line string) {
	l.notify.Lock()
	defer l.notify.Unlock()

	l.mu.Lock()
	l.lines = append(l.lines, line)
	followers := make([]Follower, 0, len(l.followers))
	for id := 0; id < l.nextID; id++ {
		if fn, ok := l.followers[id]; ok {
			followers = append(followers, fn)
		}
	}
	l.mu.Unlock()

	for _, fn := range followers {
		deliver(fn, line)
	}
}

// Appendf formats and appends one line.
func (l *Log) Appendf(format string, args ...any) {
	l.Append(fmt.Sprintf(format, args...))
}

func deliver(fn Follower, line string) {
	defer func() {
		_ = recover()
	}()
	_ = fn(line)
}

// Follow registers fn and returns a function that unregisters it.
func (l *Log) Follow(fn Follower) (stop func()) {
	if fn == nil {
		return func() {}
	}
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.followers[id] = fn
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.followers, id)
			l.mu.Unlock()
		})
	}
}

// Len reports the number of lines.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.lines)
}

// Lines returns a copy of every line.
func (l *Log) Lines() []string {
	return l.Since(0)
}

// Since returns a copy of the lines appended at or after index n.
func (l *Log) Since(n int) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n < 0 {
		n = 0
	}
	if n >= len(l.lines) {
		return nil
	}
	return append([]string(nil), l.lines[n:]...)
}

// String renders the log as text, each line terminated by a newline.
func (l *Log) String() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var b strings.Builder
	for _, line := range l.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Echo returns a follower that writes every line to w.
func Echo(w io.Writer) Follower {
	return func(line string) error {
		_, err := io.WriteString(w, line+"\n")
		return err
	}
}
