package tracker

import "errors"

// error codes sent as the `data` of failed responses, these must stay
// in line with pkg/tracker
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

var (
	ErrorMissingChallengeSecret = errors.New("missing_challenge_secret")
	ErrorMissingLedger          = errors.New("missing_ledger")
	ErrorMissingRepository      = errors.New("missing_repository")
	ErrorMissingServiceLog      = errors.New("missing_service_log")
	ErrorMissingSessionSecret   = errors.New("missing_session_secret")
)
