package kernel

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"orderflow/internal/pkg/errs"
)

// TrackingNumberLength is the number of decimal digits in a tracking number.
const TrackingNumberLength = 13

var trackingNumberSpace = new(big.Int).Exp(big.NewInt(10), big.NewInt(TrackingNumberLength), nil)

// TrackingNumber is the customer-facing, globally unique package reference.
// Global uniqueness is enforced by the package store; this type only
// guarantees the format.
type TrackingNumber struct {
	value string
}

// NewRandomTrackingNumber draws 13 digits from crypto/rand. Leading zeros
// are kept so every number has the same width.
func NewRandomTrackingNumber() (TrackingNumber, error) {
	n, err := rand.Int(rand.Reader, trackingNumberSpace)
	if err != nil {
		return TrackingNumber{}, fmt.Errorf("read random tracking number: %w", err)
	}
	return TrackingNumber{value: fmt.Sprintf("%0*d", TrackingNumberLength, n)}, nil
}

// ParseTrackingNumber validates a stored or user-supplied tracking number.
func ParseTrackingNumber(s string) (TrackingNumber, error) {
	if len(s) != TrackingNumberLength {
		return TrackingNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"trackingNumber", fmt.Errorf("%q must have %d digits", s, TrackingNumberLength))
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return TrackingNumber{}, errs.NewValueIsInvalidErrorWithCause(
				"trackingNumber", fmt.Errorf("%q must contain digits only", s))
		}
	}
	return TrackingNumber{value: s}, nil
}

func (t TrackingNumber) String() string {
	return t.value
}

func (t TrackingNumber) Validate() error {
	if t.value == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	return nil
}
