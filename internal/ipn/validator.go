// internal/ipn/validator.go
package ipn

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const (
	// ValidateCommand is appended to the endpoint for every validation round-trip.
	ValidateCommand = "cmd=_notify-validate"

	// UserAgent identifies this service to PayPal.
	UserAgent = "LogiSynapse IPN -- https://github.com/Tanmoy095/LogiSynapse"

	responseVerified = "VERIFIED"
	responseInvalid  = "INVALID"
)

// Poster is the outbound HTTP capability the validation round-trip needs:
// POST body to url with headers and hand back the response body.
// internal/paypal.Client is the production implementation.
type Poster interface {
	Post(ctx context.Context, url string, body string, headers map[string]string) (string, error)
}

// Validator sends a notification body back to PayPal and interprets the answer.
type Validator struct {
	endpoint string
	poster   Poster
}

// NewValidator binds a resolved endpoint (production or sandbox) to a Poster.
func NewValidator(endpoint string, poster Poster) *Validator {
	return &Validator{endpoint: endpoint, poster: poster}
}

// URL is the full validation URL, endpoint plus the validate command.
func (v *Validator) URL() string {
	sep := "?"
	if strings.Contains(v.endpoint, "?") {
		sep = "&"
	}
	return v.endpoint + sep + ValidateCommand
}

// Validate posts raw, unmodified, and maps VERIFIED to true and INVALID to false.
// Any other answer is ErrMalformedUpstreamResponse; poster errors are ErrTransportFailure.
func (v *Validator) Validate(ctx context.Context, raw string) (bool, error) {
	headers := map[string]string{
		"Content-Length": strconv.Itoa(len(raw)),
		"User-Agent":     UserAgent,
	}
	response, err := v.poster.Post(ctx, v.URL(), raw, headers)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrTransportFailure, err)
	}
	switch response {
	case responseVerified:
		return true, nil
	case responseInvalid:
		return false, nil
	}
	return false, fmt.Errorf("%w: %q", ErrMalformedUpstreamResponse, response)
}
