package services

import (
	"strings"
	"sync"
)

// Trace accumulates a transcript of the command in flight (stage) and a
// cumulative log. Failed commands are flushed into the log by the router;
// successful ones only when the caller asks for it with AppendSuccess.
type Trace struct {
	mu      sync.Mutex
	stage   strings.Builder
	log     strings.Builder
	onFlush func(text string)
}

func NewTrace() *Trace {
	return &Trace{}
}

// OnFlush registers fn to receive the text appended to the log on each flush.
func (t *Trace) OnFlush(fn func(text string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onFlush = fn
}

func (t *Trace) BeginCommand() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stage.Reset()
}

func (t *Trace) AppendStage(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stage.WriteString(line)
	t.stage.WriteByte('\n')
}

// FlushOnFailure appends the stage to the log.
func (t *Trace) FlushOnFailure() {
	t.mu.Lock()
	text := t.stage.String()
	t.log.WriteString(text)
	fn := t.onFlush
	t.mu.Unlock()

	if fn != nil && text != "" {
		fn(text)
	}
}

// AppendSuccess appends the stage followed by line to the log.
func (t *Trace) AppendSuccess(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.log.WriteString(t.stage.String())
	t.log.WriteString(line)
	t.log.WriteByte('\n')
}

func (t *Trace) Stage() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stage.String()
}

func (t *Trace) Log() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.log.String()
}
