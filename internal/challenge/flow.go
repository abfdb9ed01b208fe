package challenge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"rollcall/internal/session"
)

type StudentState string

const (
	StudentIdle          StudentState = "idle"
	StudentPasswordEntry StudentState = "password_entry"
	StudentRequesting    StudentState = "requesting"
	StudentDisplaying    StudentState = "displaying"
	StudentConsumed      StudentState = "consumed"
	StudentExpired       StudentState = "expired"
)

// StudentSnapshot is a point-in-time view of a StudentFlow
type StudentSnapshot struct {
	State          StudentState
	ClassSessionId int64
	Payload        *Payload

	// Err is the reason the last request failed, it is cleared by the
	// next request
	Err error
}

// StudentFlow tracks one student's check-in from choosing a class
// session until the challenge is shown and then used or expired
type StudentFlow struct {
	client *Client
	store  *session.Store
	now    func() time.Time

	mutex          sync.Mutex
	state          StudentState
	classSessionId int64
	payload        *Payload
	err            error
	sequence       uint64
}

func NewStudentFlow(client *Client, store *session.Store) *StudentFlow {
	return &StudentFlow{
		client: client,
		store:  store,
		now:    time.Now,
		state:  StudentIdle,
	}
}

// Begin starts password entry for `classSessionId`, any challenge on
// display is dropped
func (f *StudentFlow) Begin(classSessionId int64) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.state == StudentRequesting {
		return fmt.Errorf("%w: a request is in flight", ErrFlowState)
	}
	f.state = StudentPasswordEntry
	f.classSessionId = classSessionId
	f.payload = nil
	f.err = nil
	return nil
}

// Submit requests a challenge with `password`. On success the flow is
// Displaying the new payload, on failure it is back at PasswordEntry
// with the error attached. Starting a new Submit while one is in flight
// supersedes the older one, whose result is discarded
func (f *StudentFlow) Submit(ctx context.Context, password string) (*Payload, error) {
	f.mutex.Lock()
	switch f.state {
	case StudentPasswordEntry, StudentRequesting, StudentDisplaying:
	default:
		state := f.state
		f.mutex.Unlock()
		return nil, fmt.Errorf("%w: cannot submit a password while %s", ErrFlowState, state)
	}
	f.sequence++
	sequence := f.sequence
	classSessionId := f.classSessionId
	f.state = StudentRequesting
	f.payload = nil
	f.err = nil
	f.mutex.Unlock()

	payload, err := f.client.RequestChallenge(ctx, f.store.Current(), classSessionId, password)

	f.mutex.Lock()
	defer f.mutex.Unlock()
	if sequence != f.sequence {
		return nil, ErrRequestSuperseded
	}
	if err != nil {
		f.state = StudentPasswordEntry
		f.err = err
		return nil, err
	}
	f.state = StudentDisplaying
	f.payload = payload
	return payload, nil
}

// Consume marks the displayed challenge as used
func (f *StudentFlow) Consume() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.state != StudentDisplaying {
		return fmt.Errorf("%w: nothing is being displayed", ErrFlowState)
	}
	f.state = StudentConsumed
	return nil
}

// Tick moves a displayed challenge to Expired once its validity has
// elapsed and returns the resulting state
func (f *StudentFlow) Tick() StudentState {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.state == StudentDisplaying && f.payload != nil && !f.now().Before(f.payload.ExpiresAtTime()) {
		f.state = StudentExpired
	}
	return f.state
}

// Reset abandons the flow, an in-flight request is discarded when it
// completes
func (f *StudentFlow) Reset() {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.sequence++
	f.state = StudentIdle
	f.classSessionId = 0
	f.payload = nil
	f.err = nil
}

func (f *StudentFlow) Snapshot() StudentSnapshot {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return StudentSnapshot{
		State:          f.state,
		ClassSessionId: f.classSessionId,
		Payload:        f.payload,
		Err:            f.err,
	}
}
