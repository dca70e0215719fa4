// Package demo holds the sample schema and callback used by argform-demo.
package demo

import (
	"context"
	"time"

	"github.com/goliatone/go-argform/pkg/dispatch"
	"github.com/goliatone/go-argform/pkg/schema"
)

const (
	// Name is the demo program name.
	Name = "argform_demo"

	StreamInterval = 500 * time.Millisecond
	StreamCount    = 60
)

// IpsumLines are streamed round-robin by the demo callback.
var IpsumLines = []string{
	"Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
	"Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.",
	"Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris.",
	"Duis aute irure dolor in reprehenderit in voluptate velit esse cillum.",
	"Excepteur sint occaecat cupidatat non proident, sunt in culpa.",
}

// Schema declares one argument of every kind a form can edit.
func Schema() *schema.Schema {
	return schema.New(Name).
		Positional("positional", "a required positional", schema.Default("defaultpositionalvalue")).
		String("choices", "pick one of a fixed set", schema.Choices("a", "b", "c")).
		DirPath("input_dir", "a folder to read from").
		FilePath("input_file", "a file to read").
		Bool("storetrue", "a store-true switch").
		Bool("boolean", "a plain boolean").
		String("string", "free text").
		Int("int", "an integer").
		Float("float", "a floating point number")
}

// Streamer is the demo callback: it announces a stream and then writes one
// ipsum line per tick from a background job.
type Streamer struct {
	Interval time.Duration
	Count    int
	Now      func() time.Time
}

// NewStreamer returns a Streamer with the demo timing.
func NewStreamer() *Streamer {
	return &Streamer{Interval: StreamInterval, Count: StreamCount, Now: time.Now}
}

// OnRun returns immediately after scheduling the stream.
func (s *Streamer) OnRun(_ context.Context, run *dispatch.Run) error {
	total := time.Duration(s.Count) * s.Interval
	run.Printf("Streaming ipsum every %gs for %gs…\n", s.Interval.Seconds(), total.Seconds())
	run.Println()

	_, err := run.Every(s.Interval, s.Count, func(i int) {
		run.Printf("  [%s] %s\n", s.now().Format("15:04:05"), IpsumLines[i%len(IpsumLines)])
		if i == s.Count-1 {
			run.Println()
			run.Println("Ipsum stream finished.")
		}
	})
	return err
}

func (s *Streamer) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
