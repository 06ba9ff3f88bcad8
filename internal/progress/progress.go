package progress

import (
	"log"
	"sync"
)

type SpinnerProgressTracker interface {
	SetMessage(msg string)
	SetDone(n int)
	SetError(err error)
	MarkFinished()
}

type NoopSpinnerProgressTracker struct{}

var _ SpinnerProgressTracker = NoopSpinnerProgressTracker{}

func (n NoopSpinnerProgressTracker) SetMessage(msg string) {}
func (n NoopSpinnerProgressTracker) SetDone(n2 int)        {}
func (n NoopSpinnerProgressTracker) SetError(err error)    {}
func (n NoopSpinnerProgressTracker) MarkFinished()         {}

type BarProgressTracker interface {
	SetMessage(msg string)
	SetTotal(total int64)
	SetDone(n int)
	SetError(err error)
	MarkFinished()
}

type NoopBarProgressTracker struct{}

var _ BarProgressTracker = NoopBarProgressTracker{}

func (n NoopBarProgressTracker) SetMessage(msg string) {}
func (n NoopBarProgressTracker) SetTotal(total int64)  {}
func (n NoopBarProgressTracker) SetDone(n2 int)        {}
func (n NoopBarProgressTracker) SetError(err error)    {}
func (n NoopBarProgressTracker) MarkFinished()         {}

// LogProgressTracker writes progress lines to a logger. SetDone logs when n
// is a multiple of every.
type LogProgressTracker struct {
	mu     sync.Mutex
	logger *log.Logger
	every  int
	msg    string
	total  int64
	done   int
}

var (
	_ SpinnerProgressTracker = (*LogProgressTracker)(nil)
	_ BarProgressTracker     = (*LogProgressTracker)(nil)
)

func NewLogProgressTracker(logger *log.Logger, every int) *LogProgressTracker {
	if every < 1 {
		every = 1
	}
	return &LogProgressTracker{logger: logger, every: every}
}

func (t *LogProgressTracker) SetMessage(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.msg = msg
}

func (t *LogProgressTracker) SetTotal(total int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total = total
}

func (t *LogProgressTracker) SetDone(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done = n
	if n%t.every == 0 {
		t.report()
	}
}

func (t *LogProgressTracker) SetError(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logger.Printf("%s: error: %v", t.msg, err)
}

func (t *LogProgressTracker) MarkFinished() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.report()
}

// Done returns the last value passed to SetDone.
func (t *LogProgressTracker) Done() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

func (t *LogProgressTracker) report() {
	if t.total > 0 {
		t.logger.Printf("%s: %d/%d", t.msg, t.done, t.total)
		return
	}
	t.logger.Printf("%s: %d", t.msg, t.done)
}
