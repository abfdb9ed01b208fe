package auth

import (
	"errors"
	"regexp"
	"strings"
)

var domainRegex = regexp.MustCompile(
	`^(?i:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?)(?:\.(?i:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?))*\.[a-z]{2,}$`,
)

// IsEmailValid checks that `email` is plausible enough to be used as a
// login username, institutional domains of any TLD are accepted
func IsEmailValid(email string) (bool, error) {
	if len(email) <= 3 {
		return false, ErrorEmailMissing
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at != strings.LastIndexByte(email, '@') {
		return false, ErrorEmailInvalidAt
	}

	errs := []error{}
	user := email[:at]
	domain := email[at+1:]
	if !domainRegex.MatchString(domain) {
		errs = append(errs, ErrorEmailDomainInvalid)
	}
	if len(user) > 64 {
		errs = append(errs, ErrorEmailUserPartInvalidLength)
	}
	for _, r := range user {
		if !(isASCIILetterOrDigit(r) || r == '+' || r == '.' || r == '-' || r == '_') {
			errs = append(errs, ErrorEmailUserPartIllegalChar)
			break
		}
	}
	if len(errs) > 0 {
		return false, errors.Join(errs...)
	}
	return true, nil
}

func isASCIILetterOrDigit(r rune) bool {
	return (r >= 'A' && r <= 'Z') ||
		(r >= 'a' && r <= 'z') ||
		(r >= '0' && r <= '9')
}
