package tracker

import (
	"context"
	"net/http"
	"net/url"
)

type LoginV1Input struct {
	Username string
	Password string
}

type LoginV1Output struct {
	Data LoginV1OutputData

	http.Response
}

type LoginV1OutputData struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LoginV1 exchanges a username and password for a bearer token using
// the OAuth2 password grant
func (c Client) LoginV1(ctx context.Context, opts LoginV1Input) (*LoginV1Output, error) {
	var outputData LoginV1OutputData
	outputClient, err := c.do(request{
		Context: ctx,
		Method:  http.MethodPost,
		Path:    "/auth/login",
		Form: url.Values{
			"grant_type": {"password"},
			"username":   {opts.Username},
			"password":   {opts.Password},
		},
		Raw:    true,
		Output: &outputData,
	})
	if err != nil {
		if outputClient == nil {
			return nil, err
		}
	}
	return &LoginV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}
