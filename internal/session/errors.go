package session

import "errors"

var (
	// ErrAuth means the credential was rejected by the tracker, the
	// session is cleared before this is returned
	ErrAuth = errors.New("auth_error")

	// ErrAuthorization means the session lacks the role an operation
	// requires, it is advisory and never touches the session
	ErrAuthorization = errors.New("authorization_error")

	// ErrInvalidCredential means a token was refused at login because
	// it is unparseable or already expired
	ErrInvalidCredential = errors.New("invalid_credential")

	// ErrNetwork covers transport failures and unexpected statuses
	ErrNetwork = errors.New("network_error")

	// ErrNoSession is returned when an operation needs a session and
	// there is none
	ErrNoSession = errors.New("no_session")

	// ErrStaleResponse marks a response that arrived after the session
	// it was requested under was replaced or cleared
	ErrStaleResponse = errors.New("stale_response")
)
