package auth

import "errors"

var (
	ErrorEmailInvalidAt             = errors.New("email_invalid_at")
	ErrorEmailMissing               = errors.New("email_missing")
	ErrorEmailDomainInvalid         = errors.New("email_domain_invalid")
	ErrorEmailUserPartInvalidLength = errors.New("email_user_part_invalid_length")
	ErrorEmailUserPartIllegalChar   = errors.New("email_user_part_illegal_char")

	// ErrorJwtTokenExpired indicates the token has expired
	ErrorJwtTokenExpired = errors.New("jwt_token_expired")
	// ErrorJwtTokenSignature indicates token signature validation failed
	ErrorJwtTokenSignature = errors.New("jwt_token_signature")
	// ErrorJwtClaimsInvalid indicates that the claim data couldn't be parsed
	ErrorJwtClaimsInvalid = errors.New("jwt_claims_invalid")

	ErrorTotpSecretInvalid = errors.New("totp_secret_invalid")
)
