package scan

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"

	"rollcall/internal/common"
	"rollcall/internal/session"
)

type TeacherState string

const (
	TeacherIdle       TeacherState = "idle"
	TeacherScanning   TeacherState = "scanning"
	TeacherDecoding   TeacherState = "decoding"
	TeacherValidating TeacherState = "validating"
	TeacherConfirmed  TeacherState = "confirmed"
	TeacherRejected   TeacherState = "rejected"
	TeacherMalformed  TeacherState = "malformed"
)

// Outcome is where one scan ended up, State is one of Confirmed,
// Rejected or Malformed
type Outcome struct {
	Sequence int
	Text     string
	State    TeacherState
	Payload  *Payload
	Result   *Result
	Err      error
}

// Stats counts scan outcomes over the life of a TeacherFlow
type Stats struct {
	Scanned       int `json:"scanned" yaml:"scanned"`
	Recorded      int `json:"recorded" yaml:"recorded"`
	AlreadyMarked int `json:"alreadyMarked" yaml:"alreadyMarked"`
	Rejected      int `json:"rejected" yaml:"rejected"`
	Malformed     int `json:"malformed" yaml:"malformed"`
}

// TeacherFlow reads scans and submits them. A malformed scan is
// reported and the flow keeps scanning
type TeacherFlow struct {
	client *Client
	store  *session.Store

	// OnTransition, when set, is called as each scan changes state
	OnTransition func(sequence int, state TeacherState)

	mutex    sync.Mutex
	state    TeacherState
	sequence int
	stats    Stats
}

func NewTeacherFlow(client *Client, store *session.Store) *TeacherFlow {
	return &TeacherFlow{
		client: client,
		store:  store,
		state:  TeacherIdle,
	}
}

func (f *TeacherFlow) State() TeacherState {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.state
}

func (f *TeacherFlow) Stats() Stats {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.stats
}

// Process takes one scan through decoding and validation
func (f *TeacherFlow) Process(ctx context.Context, text string) Outcome {
	f.mutex.Lock()
	f.sequence++
	sequence := f.sequence
	f.stats.Scanned++
	f.mutex.Unlock()
	payload, err := f.decode(sequence, text)
	if err != nil {
		return f.finish(Outcome{Sequence: sequence, Text: text, State: TeacherMalformed, Err: err})
	}
	return f.validate(ctx, f.store.Current(), sequence, text, payload)
}

// Run reads one scan per line from `input` and sends each outcome to
// `outcomes` in the order they complete. Submissions run concurrently
// so a slow tracker never holds up scanning. It returns nil at the end
// of input, session.ErrNoSession when the session ends, or the context's
// error when it is cancelled. Submissions in flight are always waited
// for and reported
func (f *TeacherFlow) Run(ctx context.Context, input io.Reader, outcomes chan<- Outcome) error {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	sess := f.store.Current()
	if sess == nil {
		return session.ErrNoSession
	}
	unsubscribe := f.store.Subscribe(func(current *session.Session) {
		if current == nil || current.Id != sess.Id {
			cancel(session.ErrNoSession)
		}
	})
	defer unsubscribe()
	if !f.store.IsCurrent(sess.Id) {
		return session.ErrNoSession
	}

	f.setState(TeacherScanning)
	defer f.setState(TeacherIdle)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(input)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	var submissions sync.WaitGroup
	defer submissions.Wait()
	submitCtx := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case line, ok := <-lines:
			if !ok {
				submissions.Wait()
				select {
				case err := <-readErr:
					return err
				default:
					return context.Cause(ctx)
				}
			}
			if line == "" {
				continue
			}
			f.mutex.Lock()
			f.sequence++
			sequence := f.sequence
			f.stats.Scanned++
			f.mutex.Unlock()

			payload, err := f.decode(sequence, line)
			if err != nil {
				outcomes <- f.finish(Outcome{Sequence: sequence, Text: line, State: TeacherMalformed, Err: err})
				continue
			}
			submissions.Add(1)
			go func(sequence int, text string) {
				defer submissions.Done()
				outcomes <- f.validate(submitCtx, sess, sequence, text, payload)
			}(sequence, line)
		}
	}
}

func (f *TeacherFlow) decode(sequence int, text string) (*Payload, error) {
	f.transition(sequence, TeacherDecoding)
	return Decode(text)
}

func (f *TeacherFlow) validate(ctx context.Context, sess *session.Session, sequence int, text string, payload *Payload) Outcome {
	f.transition(sequence, TeacherValidating)
	outcome := Outcome{Sequence: sequence, Text: text, Payload: payload}
	result, err := f.client.Submit(ctx, sess, payload)
	if err != nil {
		if !errors.Is(err, ErrScanRejected) {
			f.client.serviceLogs <- common.ServiceLogf(common.LogLevelWarn, "scan[%v] failed: %s", sequence, err)
		}
		outcome.State = TeacherRejected
		outcome.Err = err
		return f.finish(outcome)
	}
	outcome.State = TeacherConfirmed
	outcome.Result = result
	return f.finish(outcome)
}

func (f *TeacherFlow) finish(outcome Outcome) Outcome {
	f.mutex.Lock()
	switch outcome.State {
	case TeacherMalformed:
		f.stats.Malformed++
	case TeacherRejected:
		f.stats.Rejected++
	case TeacherConfirmed:
		if outcome.Result.Recorded {
			f.stats.Recorded++
		} else if outcome.Result.AlreadyMarked {
			f.stats.AlreadyMarked++
		}
	}
	f.mutex.Unlock()
	f.transition(outcome.Sequence, outcome.State)
	return outcome
}

func (f *TeacherFlow) transition(sequence int, state TeacherState) {
	if f.OnTransition != nil {
		f.OnTransition(sequence, state)
	}
}

func (f *TeacherFlow) setState(state TeacherState) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.state = state
}
