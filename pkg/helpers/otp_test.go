package helpers

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPIssuer_Generate(t *testing.T) {
	issuer := NewOTPIssuer(4, time.Minute)

	for i := 0; i < 200; i++ {
		code, err := issuer.Generate()
		require.NoError(t, err)
		assert.Len(t, code, 4)
		_, convErr := strconv.Atoi(code)
		assert.NoError(t, convErr, "code must be numeric: %q", code)
	}
}

func TestOTPIssuer_Defaults(t *testing.T) {
	issuer := NewOTPIssuer(0, 0)
	assert.Equal(t, DefaultOTPLength, issuer.Length)
	assert.Equal(t, DefaultOTPWindow, issuer.Window)
}

func TestOTPIssuer_Valid(t *testing.T) {
	issuer := NewOTPIssuer(4, 60*time.Second)
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		after time.Duration
		want  bool
	}{
		{"immediately", 0, true},
		{"within window", 59 * time.Second, true},
		{"exactly at window", 60 * time.Second, true},
		{"one millisecond late", 60*time.Second + time.Millisecond, false},
		{"after 61s", 61 * time.Second, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, issuer.Valid(issued, issued.Add(tc.after)))
		})
	}
}

func TestOTPIssuer_Valid_ZeroIssuedAt(t *testing.T) {
	issuer := NewOTPIssuer(4, time.Minute)
	assert.False(t, issuer.Valid(time.Time{}, time.Now()))
}
