package kernel

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"

	"transit/internal/pkg/errs"
	"transit/internal/pkg/guard"
)

// OtpLength is the number of digits in a delivery one-time code.
const OtpLength = 6

// ErrOtpIsNotConstructed is returned when attempting to use an improperly
// initialized Otp. Codes must be created via NewOtp or OtpFromString.
var ErrOtpIsNotConstructed = errs.NewValueIsRequiredError(
	"OTP must be created via NewOtp or OtpFromString constructors")

// Otp is the one-time numeric code verifying physical handover at final
// delivery. It is an immutable value object; comparison is exact and
// constant-time, with no fuzzy or partial matching.
//
// The zero value of Otp is invalid and will fail validation - use the
// constructors to create instances.
type Otp struct { //nolint:recvcheck //using for validation
	code  string
	guard guard.ConstructorGuard
}

// NewOtp generates a fresh random 6-digit code using crypto/rand.
// Codes range from 100000 to 999999 so the textual form is always
// exactly OtpLength digits.
func NewOtp() (Otp, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return Otp{}, fmt.Errorf("generating OTP: %w", err)
	}

	return Otp{
		code:  fmt.Sprintf("%06d", n.Int64()+100000),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// OtpFromString reconstructs an Otp from its persisted textual form.
// The input must be exactly OtpLength ASCII digits.
func OtpFromString(code string) (Otp, error) {
	if len(code) != OtpLength {
		return Otp{}, errs.NewValueIsInvalidErrorWithCause("otp",
			fmt.Errorf("code must be %d digits, got %d characters", OtpLength, len(code)))
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return Otp{}, errs.NewValueIsInvalidErrorWithCause("otp",
				fmt.Errorf("code must contain only digits"))
		}
	}

	return Otp{
		code:  code,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Otp was properly constructed using a constructor.
func (o Otp) Validate() error {
	return o.guard.Validate(ErrOtpIsNotConstructed)
}

// String returns the textual form of the code.
// Exposed for persistence and for handing the code to the notification
// collaborator; never logged by the core.
func (o Otp) String() string {
	return o.code
}

// Matches reports whether the supplied code equals this one.
// The comparison is constant-time to avoid leaking digit prefixes
// through timing.
func (o Otp) Matches(supplied string) bool {
	if len(supplied) != len(o.code) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(o.code), []byte(supplied)) == 1
}
