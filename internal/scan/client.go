// Package scan submits the challenges teachers scan off students'
// screens.
package scan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rollcall/internal/common"
	"rollcall/internal/session"
	"rollcall/pkg/tracker"
)

type Payload = tracker.ChallengePayload

type Result = tracker.CheckinResult

// Api is the part of the tracker SDK the scan client needs
type Api interface {
	SubmitCheckinV1(ctx context.Context, payload tracker.ChallengePayload) (*tracker.SubmitCheckinV1Output, error)
}

// ApiFactory returns an Api authenticated as the bearer `token`
type ApiFactory func(token string) Api

func TrackerApi(client *tracker.Client) ApiFactory {
	return func(token string) Api {
		return client.WithToken(token)
	}
}

// Decode parses scanned text into a payload. Anything that is not a
// complete payload yields ErrMalformedPayload
func Decode(scannedText string) (*Payload, error) {
	trimmed := strings.TrimSpace(scannedText)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty scan", ErrMalformedPayload)
	}
	parsed, err := tracker.ParseChallengePayload([]byte(trimmed))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return parsed, nil
}

type NewClientOpts struct {
	Store       *session.Store
	Api         ApiFactory
	ServiceLogs chan<- common.ServiceLog
}

type Client struct {
	store       *session.Store
	api         ApiFactory
	serviceLogs chan<- common.ServiceLog
}

func NewClient(opts NewClientOpts) (*Client, error) {
	if opts.Store == nil {
		return nil, errors.New("failed to receive a session store")
	}
	if opts.Api == nil {
		return nil, errors.New("failed to receive a tracker api")
	}
	var serviceLogs chan<- common.ServiceLog = common.GetNoopServiceLog()
	if opts.ServiceLogs != nil {
		serviceLogs = opts.ServiceLogs
	}
	return &Client{store: opts.Store, api: opts.Api, serviceLogs: serviceLogs}, nil
}

var rejectionCodes = []error{
	tracker.ErrorClassSessionInactive,
	tracker.ErrorClassSessionNotFound,
	tracker.ErrorInvalidInput,
	tracker.ErrorNotClassTeacher,
	tracker.ErrorNotEnrolled,
	tracker.ErrorPayloadExpired,
	tracker.ErrorPayloadInvalid,
	tracker.ErrorPayloadSuperseded,
}

// Submit sends `payload` to the tracker to record the student's
// presence. Submitting a payload whose presence is already recorded is
// not an error, the result then has AlreadyMarked set
func (c *Client) Submit(ctx context.Context, sess *session.Session, payload *Payload) (*Result, error) {
	if sess == nil {
		return nil, session.ErrNoSession
	}
	if !sess.Roles().Teacher {
		return nil, fmt.Errorf("%w: submitting a scan requires the teacher role", session.ErrAuthorization)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: no payload", ErrMalformedPayload)
	}
	output, err := c.api(sess.Token).SubmitCheckinV1(ctx, *payload)
	if err = c.store.Settle(sess, err); err != nil {
		for _, code := range rejectionCodes {
			if errors.Is(err, code) {
				c.serviceLogs <- common.ServiceLogf(common.LogLevelInfo, "scan of student[%v] for class session[%v] rejected: %s", payload.StudentId, payload.ClassSessionId, code)
				return nil, &ScanRejectedError{Reason: code.Error(), err: err}
			}
		}
		return nil, err
	}
	result := output.Data
	c.serviceLogs <- common.ServiceLogf(common.LogLevelDebug, "scan of student[%v] for class session[%v]: recorded=%v alreadyMarked=%v", result.StudentId, result.ClassSessionId, result.Recorded, result.AlreadyMarked)
	return &result, nil
}
