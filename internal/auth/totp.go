package auth

import (
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const ClassPasswordPeriod = 30 * time.Second

var totpOpts = totp.ValidateOpts{
	Period:    uint(ClassPasswordPeriod / time.Second),
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// CreateClassSecret generates the seed that class passwords for one
// class session are derived from
func CreateClassSecret(classSessionLabel string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      JwtIssuer,
		AccountName: classSessionLabel,
		Period:      totpOpts.Period,
		Digits:      totpOpts.Digits,
		Algorithm:   totpOpts.Algorithm,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate class secret: %w", err)
	}
	return key.Secret(), nil
}

// GenerateClassPassword returns the password in effect at `at` along
// with the instant it stops being the current one
func GenerateClassPassword(secret string, at time.Time) (string, time.Time, error) {
	code, err := totp.GenerateCodeCustom(secret, at.UTC(), totpOpts)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %w", ErrorTotpSecretInvalid, err)
	}
	validUntil := at.Truncate(ClassPasswordPeriod).Add(ClassPasswordPeriod)
	return code, validUntil, nil
}

// ValidateClassPassword checks `password` against the secret allowing
// one period of skew either way
func ValidateClassPassword(secret, password string, at time.Time) (bool, error) {
	ok, err := totp.ValidateCustom(password, secret, at.UTC(), totpOpts)
	if err != nil {
		if err == otp.ErrValidateInputInvalidLength {
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", ErrorTotpSecretInvalid, err)
	}
	return ok, nil
}
