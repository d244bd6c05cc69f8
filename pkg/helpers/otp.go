package helpers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	DefaultOTPLength = 4
	DefaultOTPWindow = 60 * time.Second
)

// OTPIssuer generates numeric one-time codes and checks their validity window.
// It has no storage; callers embed the code and issue time in their own records.
type OTPIssuer struct {
	Length int
	Window time.Duration
}

func NewOTPIssuer(length int, window time.Duration) *OTPIssuer {
	if length <= 0 {
		length = DefaultOTPLength
	}
	if window <= 0 {
		window = DefaultOTPWindow
	}
	return &OTPIssuer{Length: length, Window: window}
}

// Generate returns a zero-padded numeric code of Length digits.
func (i *OTPIssuer) Generate() (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(i.Length)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", i.Length, n.Int64()), nil
}

// Valid reports whether a code issued at issuedAt is still usable at now.
// The boundary is inclusive: exactly Window after issuance is still valid.
func (i *OTPIssuer) Valid(issuedAt, now time.Time) bool {
	if issuedAt.IsZero() {
		return false
	}
	return now.Sub(issuedAt) <= i.Window
}
