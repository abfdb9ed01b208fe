package cli

import (
	"errors"

	"rollcall/pkg/tracker"
)

var (
	ErrorInvalidInput     = errors.New("invalid_input")
	ErrorNotAuthenticated = errors.New("not_authenticated")
	ErrorPromptCancelled  = errors.New("prompt_cancelled")
	ErrorWrongRole        = errors.New("wrong_role")
)

var trackerErrorDescriptions = map[string]string{
	tracker.ErrorClassSessionInactive.Error(): "the class is not taking place right now",
	tracker.ErrorClassSessionNotFound.Error(): "there is no such class",
	tracker.ErrorInvalidInput.Error():         "the request was incomplete",
	tracker.ErrorInvalidPassword.Error():      "the class password is wrong or has rotated",
	tracker.ErrorNotClassTeacher.Error():      "you do not teach this class",
	tracker.ErrorNotEnrolled.Error():          "the student is not enrolled in this course unit",
	tracker.ErrorPayloadExpired.Error():       "the QR code has expired, ask for a new one",
	tracker.ErrorPayloadInvalid.Error():       "the QR code was not issued by this tracker",
	tracker.ErrorPayloadSuperseded.Error():    "a newer QR code was issued for this student",
	tracker.ErrorRateLimited.Error():          "too many requests, wait a few seconds",
}

// DescribeTrackerError turns a tracker error code into a sentence
func DescribeTrackerError(code string) string {
	if description, ok := trackerErrorDescriptions[code]; ok {
		return description
	}
	return code
}
