package tracker

import (
	"context"
	"fmt"
	"net/http"
)

type CreateChallengeV1Input struct {
	ClassSessionId int64  `json:"id_aula"`
	Password       string `json:"password"`
}

type CreateChallengeV1Output struct {
	Data ChallengePayload

	// Raw is the payload exactly as the tracker sent it
	Raw []byte

	http.Response
}

// CreateChallengeV1 asks the tracker for an attendance challenge for the
// authenticated student
func (c Client) CreateChallengeV1(ctx context.Context, opts CreateChallengeV1Input) (*CreateChallengeV1Output, error) {
	var rawData rawJson
	outputClient, err := c.do(request{
		Context: ctx,
		Method:  http.MethodPost,
		Path:    "/class/qrcode",
		Data:    opts,
		Output:  &rawData,
	})
	if err != nil {
		if outputClient == nil {
			return nil, err
		}
		return &CreateChallengeV1Output{Response: outputClient.GetResponse()}, err
	}
	output := &CreateChallengeV1Output{
		Raw:      []byte(rawData),
		Response: outputClient.GetResponse(),
	}
	payload, err := ParseChallengePayload(rawData)
	if err != nil {
		return output, fmt.Errorf("%w: %w", ErrorUnexpectedResponse, err)
	}
	output.Data = *payload
	return output, nil
}

type SubmitCheckinV1Output struct {
	Data CheckinResult

	http.Response
}

// SubmitCheckinV1 redeems a scanned payload as the authenticated
// teacher
func (c Client) SubmitCheckinV1(ctx context.Context, payload ChallengePayload) (*SubmitCheckinV1Output, error) {
	var outputData CheckinResult
	outputClient, err := c.do(request{
		Context: ctx,
		Method:  http.MethodPost,
		Path:    "/class/checkin",
		Data:    payload,
		Output:  &outputData,
	})
	if err != nil {
		if outputClient == nil {
			return nil, err
		}
	}
	return &SubmitCheckinV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}

type GetClassPasswordV1Output struct {
	Data ClassPassword

	http.Response
}

// GetClassPasswordV1 returns the password students currently need to
// check in to the class session
func (c Client) GetClassPasswordV1(ctx context.Context, classSessionId int64) (*GetClassPasswordV1Output, error) {
	var outputData ClassPassword
	outputClient, err := c.do(request{
		Context: ctx,
		Method:  http.MethodGet,
		Path:    fmt.Sprintf("/class/%v/password", classSessionId),
		Output:  &outputData,
	})
	if err != nil {
		if outputClient == nil {
			return nil, err
		}
	}
	return &GetClassPasswordV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}

// rawJson keeps response data undecoded
type rawJson []byte

func (r *rawJson) UnmarshalJSON(data []byte) error {
	*r = append((*r)[0:0], data...)
	return nil
}
