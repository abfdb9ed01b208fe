package tracker

import "errors"

// error codes sent by the tracker as the `data` of a failed response
var (
	ErrorAuthRequired         = errors.New("auth_required")
	ErrorClassSessionInactive = errors.New("class_session_inactive")
	ErrorClassSessionNotFound = errors.New("class_session_not_found")
	ErrorForbiddenRole        = errors.New("forbidden_role")
	ErrorGeneric              = errors.New("generic_error")
	ErrorInvalidCredentials   = errors.New("invalid_credentials")
	ErrorInvalidInput         = errors.New("invalid_input")
	ErrorInvalidPassword      = errors.New("invalid_password")
	ErrorNotClassTeacher      = errors.New("not_class_teacher")
	ErrorNotEnrolled          = errors.New("not_enrolled")
	ErrorPayloadExpired       = errors.New("payload_expired")
	ErrorPayloadInvalid       = errors.New("payload_invalid")
	ErrorPayloadSuperseded    = errors.New("payload_superseded")
	ErrorRateLimited          = errors.New("rate_limited")
)

// errors raised by the client itself
var (
	ErrorConnection         = errors.New("connection_error")
	ErrorUnexpectedResponse = errors.New("unexpected_response")
)

var errorsByCode = map[string]error{}

func init() {
	for _, err := range []error{
		ErrorAuthRequired,
		ErrorClassSessionInactive,
		ErrorClassSessionNotFound,
		ErrorForbiddenRole,
		ErrorGeneric,
		ErrorInvalidCredentials,
		ErrorInvalidInput,
		ErrorInvalidPassword,
		ErrorNotClassTeacher,
		ErrorNotEnrolled,
		ErrorPayloadExpired,
		ErrorPayloadInvalid,
		ErrorPayloadSuperseded,
		ErrorRateLimited,
	} {
		errorsByCode[err.Error()] = err
	}
}

// ErrorFromCode returns the sentinel for a tracker error code, nil when
// the code is not known to this client
func ErrorFromCode(code string) error {
	return errorsByCode[code]
}
