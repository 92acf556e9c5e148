package handlers

import (
	"errors"
	"fmt"

	"visapath/visa-advisor/internal/services"
)

const retryLaterHint = "The service might be overloaded. Please try again in a moment."

// exhaustedMessage is the 503 message shown when every completion attempt failed.
func exhaustedMessage(err error) string {
	cause := err
	var exhausted *services.ExhaustedError
	if errors.As(err, &exhausted) && exhausted.Last != nil {
		cause = exhausted.Last
	}
	return fmt.Sprintf("API Error: %v. %s", cause, retryLaterHint)
}

// malformedDetails returns the parse failure without any raw model text.
func malformedDetails(err error) string {
	var malformed *services.MalformedResponseError
	if errors.As(err, &malformed) {
		return malformed.Err.Error()
	}
	return services.ErrMalformedResponse.Error()
}
