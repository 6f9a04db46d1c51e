// Package progress provides imgpick.Observer implementations for the shell:
// a logger-backed observer, a terminal progress bar and a fan-out.
package progress

import (
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/vvka-141/imgpick/pkg/imgpick"
)

// LogObserver reports per-file events through a Logger.
// Copies and misses are verbose; failures are errors.
type LogObserver struct {
	logger imgpick.Logger
}

// NewLogObserver creates a LogObserver. Panics on a nil logger.
func NewLogObserver(logger imgpick.Logger) *LogObserver {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) Start(total int) {
	o.logger.Verbose("Resolving %d filenames", total)
}

func (o *LogObserver) Copied(name string) {
	o.logger.Verbose("Copied %s", name)
}

func (o *LogObserver) NotFound(name string) {
	o.logger.Verbose("Not found: %s", name)
}

func (o *LogObserver) Failed(name string, err error) {
	o.logger.Error("%s: %v", name, err)
}

// Retrying implements imgpick.RetryObserver.
func (o *LogObserver) Retrying(name string, attempt int, err error, delay time.Duration) {
	o.logger.Verbose("Retrying %s (attempt %d) in %s: %v", name, attempt, delay.Round(time.Millisecond), err)
}

// BarObserver draws a progress bar sized on Start and advanced on every event.
type BarObserver struct {
	mu          sync.Mutex
	out         io.Writer
	description string
	bar         *progressbar.ProgressBar
}

// NewBarObserver creates a bar that renders to out once Start is called.
func NewBarObserver(out io.Writer, description string) *BarObserver {
	return &BarObserver{out: out, description: description}
}

func (o *BarObserver) Start(total int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(o.out),
		progressbar.OptionSetDescription(o.description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(0),
		progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(o.out, "\n") }),
	)
}

func (o *BarObserver) Copied(string)        { o.step() }
func (o *BarObserver) NotFound(string)      { o.step() }
func (o *BarObserver) Failed(string, error) { o.step() }

// Finish completes the bar. Safe to call when Start never ran.
func (o *BarObserver) Finish() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.bar != nil {
		_ = o.bar.Finish()
	}
}

func (o *BarObserver) step() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.bar != nil {
		_ = o.bar.Add(1)
	}
}

// Multi forwards every event to each observer in order.
type Multi []imgpick.Observer

func (m Multi) Start(total int) {
	for _, o := range m {
		o.Start(total)
	}
}

func (m Multi) Copied(name string) {
	for _, o := range m {
		o.Copied(name)
	}
}

func (m Multi) NotFound(name string) {
	for _, o := range m {
		o.NotFound(name)
	}
}

func (m Multi) Failed(name string, err error) {
	for _, o := range m {
		o.Failed(name, err)
	}
}

// Retrying forwards to the observers that implement imgpick.RetryObserver.
func (m Multi) Retrying(name string, attempt int, err error, delay time.Duration) {
	for _, o := range m {
		if ro, ok := o.(imgpick.RetryObserver); ok {
			ro.Retrying(name, attempt, err, delay)
		}
	}
}

var (
	_ imgpick.Observer      = (*LogObserver)(nil)
	_ imgpick.Observer      = (*BarObserver)(nil)
	_ imgpick.Observer      = Multi(nil)
	_ imgpick.RetryObserver = (*LogObserver)(nil)
	_ imgpick.RetryObserver = Multi(nil)
)
