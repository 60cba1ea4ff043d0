package kernel_test

import (
	"testing"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRandomTrackingNumber(t *testing.T) {
	t.Run("should produce 13 digits", func(t *testing.T) {
		for range 50 {
			tn, err := kernel.NewRandomTrackingNumber()
			require.NoError(t, err)
			require.NoError(t, tn.Validate())
			assert.Len(t, tn.String(), kernel.TrackingNumberLength)

			parsed, err := kernel.ParseTrackingNumber(tn.String())
			require.NoError(t, err)
			assert.Equal(t, tn, parsed)
		}
	})

	t.Run("should not repeat in a small sample", func(t *testing.T) {
		seen := make(map[string]struct{})
		for range 200 {
			tn, err := kernel.NewRandomTrackingNumber()
			require.NoError(t, err)
			seen[tn.String()] = struct{}{}
		}
		assert.Len(t, seen, 200)
	})
}

func TestParseTrackingNumber(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "thirteen digits", input: "0123456789012", valid: true},
		{name: "too short", input: "123", valid: false},
		{name: "too long", input: "01234567890123", valid: false},
		{name: "letters", input: "01234567890AB", valid: false},
		{name: "empty", input: "", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tn, err := kernel.ParseTrackingNumber(tc.input)
			if tc.valid {
				require.NoError(t, err)
				assert.Equal(t, tc.input, tn.String())
				return
			}
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		})
	}
}

func TestTrackingNumber_ZeroValueIsInvalid(t *testing.T) {
	var tn kernel.TrackingNumber
	require.ErrorIs(t, tn.Validate(), errs.ErrValueIsRequired)
}
