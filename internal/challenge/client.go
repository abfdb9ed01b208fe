// Package challenge turns a class password into an attendance challenge
// that a student shows to the teacher as a QR code.
package challenge

import (
	"context"
	"errors"
	"fmt"

	"rollcall/internal/common"
	"rollcall/internal/session"
	"rollcall/pkg/tracker"
)

// Api is the part of the tracker SDK the challenge client needs
type Api interface {
	CreateChallengeV1(ctx context.Context, opts tracker.CreateChallengeV1Input) (*tracker.CreateChallengeV1Output, error)
}

// ApiFactory returns an Api authenticated as the bearer `token`
type ApiFactory func(token string) Api

// TrackerApi adapts a tracker client into an ApiFactory
func TrackerApi(client *tracker.Client) ApiFactory {
	return func(token string) Api {
		return client.WithToken(token)
	}
}

// Payload is an issued challenge along with the exact bytes that are
// encoded into the QR code
type Payload struct {
	tracker.ChallengePayload
	Raw []byte
}

func (p *Payload) String() string {
	return string(p.Raw)
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

// rejectionCodes are the tracker errors that mean the challenge was
// refused rather than that the call failed
var rejectionCodes = []error{
	tracker.ErrorClassSessionInactive,
	tracker.ErrorClassSessionNotFound,
	tracker.ErrorInvalidInput,
	tracker.ErrorInvalidPassword,
	tracker.ErrorNotEnrolled,
	tracker.ErrorRateLimited,
}

// RequestChallenge asks the tracker for a challenge for `classSessionId`
// using `password`. It is not retried, a refusal returns a
// *ChallengeRejectedError and no payload
func (c *Client) RequestChallenge(ctx context.Context, sess *session.Session, classSessionId int64, password string) (*Payload, error) {
	if sess == nil {
		return nil, session.ErrNoSession
	}
	if !sess.Roles().Student {
		return nil, fmt.Errorf("%w: requesting a challenge requires the student role", session.ErrAuthorization)
	}
	c.serviceLogs <- common.ServiceLogf(common.LogLevelDebug, "requesting challenge for class session[%v] as user[%s]", classSessionId, sess.Claims.Subject)
	output, err := c.api(sess.Token).CreateChallengeV1(ctx, tracker.CreateChallengeV1Input{
		ClassSessionId: classSessionId,
		Password:       password,
	})
	if err = c.store.Settle(sess, err); err != nil {
		for _, code := range rejectionCodes {
			if errors.Is(err, code) {
				c.serviceLogs <- common.ServiceLogf(common.LogLevelInfo, "challenge for class session[%v] rejected: %s", classSessionId, code)
				return nil, &ChallengeRejectedError{Reason: code.Error(), err: err}
			}
		}
		return nil, err
	}
	return &Payload{ChallengePayload: output.Data, Raw: output.Raw}, nil
}
