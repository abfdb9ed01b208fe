package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type request struct {
	Context context.Context
	Method  string
	Path    string

	// Data is sent as a JSON body
	Data any

	// Form is sent as a url-encoded body, it takes precedence over Data
	Form url.Values

	// Raw indicates a successful response is not wrapped in the
	// response envelope
	Raw bool

	// Output receives the response data, it is left alone when nil
	Output any
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Success bool            `json:"success"`
}

type clientOutput struct {
	Response  http.Response
	Message   string
	errorCode string
}

// GetErrorCode returns the error code the tracker responded with as an
// error, an empty error when there was none
func (o *clientOutput) GetErrorCode() error {
	if o == nil {
		return errors.New("")
	}
	return errors.New(o.errorCode)
}

func (o *clientOutput) GetResponse() http.Response {
	if o == nil {
		return http.Response{}
	}
	return o.Response
}

func (c Client) do(req request) (*clientOutput, error) {
	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}
	targetUrl := *c.TrackerUrl
	targetUrl.Path = strings.TrimSuffix(targetUrl.Path, "/") + req.Path

	var body io.Reader
	contentType := ""
	switch {
	case req.Form != nil:
		body = strings.NewReader(req.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case req.Data != nil:
		requestBodyData, err := json.Marshal(req.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal data: %w", err)
		}
		body = bytes.NewBuffer(requestBodyData)
		contentType = "application/json"
	}
	httpRequest, err := http.NewRequestWithContext(ctx, req.Method, targetUrl.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request to %s %s: %w", req.Method, req.Path, err)
	}
	if contentType != "" {
		httpRequest.Header.Add("Content-Type", contentType)
	}
	httpRequest.Header.Add("Accept", "application/json")
	httpRequest.Header.Add("User-Agent", fmt.Sprintf("rollcall/tracker-sdk/client-%s", c.Id))
	if c.BearerAuth != nil && c.BearerAuth.Token != "" {
		httpRequest.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.BearerAuth.Token))
	}

	httpClient := c.HttpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	httpResponse, err := httpClient.Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute http request to %s %s: %w", ErrorConnection, req.Method, req.Path, err)
	}
	defer httpResponse.Body.Close()
	output := &clientOutput{Response: *httpResponse}
	responseBody, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return output, fmt.Errorf("%w: failed to read response body: %w", ErrorConnection, err)
	}
	isSuccess := httpResponse.StatusCode >= 200 && httpResponse.StatusCode < 300

	if req.Raw && isSuccess {
		if req.Output != nil {
			if err := json.Unmarshal(responseBody, req.Output); err != nil {
				return output, fmt.Errorf("%w: failed to parse response from tracker: %w", ErrorUnexpectedResponse, err)
			}
		}
		return output, nil
	}

	var response envelope
	if err := json.Unmarshal(responseBody, &response); err != nil {
		return output, fmt.Errorf("%w: failed to parse response (status code: %v) from tracker: %w", ErrorUnexpectedResponse, httpResponse.StatusCode, err)
	}
	output.Message = response.Message
	if !isSuccess || !response.Success {
		var errorCode string
		_ = json.Unmarshal(response.Data, &errorCode)
		output.errorCode = errorCode
		return output, responseError(httpResponse.StatusCode, errorCode, response.Message)
	}
	if req.Output != nil && len(response.Data) > 0 && string(response.Data) != "null" {
		if err := json.Unmarshal(response.Data, req.Output); err != nil {
			return output, fmt.Errorf("%w: failed to unmarshal response data into output: %w", ErrorUnexpectedResponse, err)
		}
	}
	return output, nil
}

// responseError resolves a failed response into a sentinel, known error
// codes take precedence over the status code
func responseError(statusCode int, errorCode, message string) error {
	sentinel := ErrorFromCode(errorCode)
	if statusCode >= http.StatusInternalServerError {
		if sentinel == nil {
			sentinel = ErrorGeneric
		}
		return fmt.Errorf("%w: %w (status code: %v): %s", ErrorUnexpectedResponse, sentinel, statusCode, message)
	}
	if sentinel != nil {
		return fmt.Errorf("%w: %s", sentinel, message)
	}
	switch statusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrorAuthRequired, message)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrorForbiddenRole, message)
	}
	return fmt.Errorf("%w: failed to receive a successful response (status code: %v): %s", ErrorUnexpectedResponse, statusCode, message)
}
