package challenge

import (
	"errors"
	"fmt"
)

// ErrChallengeRejected is matched by every ChallengeRejectedError
var ErrChallengeRejected = errors.New("challenge_rejected")

// ChallengeRejectedError is returned when the tracker refuses to issue a
// challenge, Reason is the tracker's error code
type ChallengeRejectedError struct {
	Reason string
	err    error
}

func (e *ChallengeRejectedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrChallengeRejected, e.Reason)
}

func (e *ChallengeRejectedError) Is(target error) bool {
	return target == ErrChallengeRejected
}

func (e *ChallengeRejectedError) Unwrap() error {
	return e.err
}

var (
	// ErrFlowState means the student flow was driven out of order
	ErrFlowState = errors.New("flow_state_invalid")

	// ErrRequestSuperseded is returned to a request whose result was
	// discarded because a newer request was started
	ErrRequestSuperseded = errors.New("request_superseded")
)
