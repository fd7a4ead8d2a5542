package numeric

import (
	"fmt"
	"sync"
)

const maxWarnings = 20

// Recorder collects the messages of recovered evaluation failures.
// Identical messages are kept once.
type Recorder struct {
	mu       sync.Mutex
	seen     map[string]struct{}
	messages []string
	count    int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{seen: make(map[string]struct{})}
}

func (r *Recorder) record(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
	msg := err.Error()
	if _, ok := r.seen[msg]; ok || len(r.messages) >= maxWarnings {
		return
	}
	r.seen[msg] = struct{}{}
	r.messages = append(r.messages, msg)
}

// Count is the number of failures recorded, duplicates included.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Messages returns the distinct messages in the order first seen.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	if r.count > len(r.messages) && len(r.messages) == maxWarnings {
		out = append(out, fmt.Sprintf("... %d failures in total", r.count))
	}
	return out
}

// Recover wraps f so that evaluation errors and non-finite results yield def
// instead. Every substitution is reported to rec when rec is non-nil.
// The returned Func never fails.
func Recover(f Func, def float64, rec *Recorder) Func {
	return func(x float64) (float64, error) {
		v, err := f(x)
		if err == nil && !IsFinite(v) {
			err = &EvalError{At: x, Err: ErrNonFinite}
		}
		if err != nil {
			if rec != nil {
				rec.record(err)
			}
			return def, nil
		}
		return v, nil
	}
}
