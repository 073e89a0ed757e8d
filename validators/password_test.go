package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordValidator(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		password string
		want     error
	}{
		{"empty", "", ErrPasswordEmpty},
		{"too short", "Ab1!", ErrPasswordTooShort},
		{"too long", "Ab1!" + strings.Repeat("x", 255), ErrPasswordTooLong},
		{"no uppercase", "secure123!", ErrPasswordWeak},
		{"no lowercase", "SECURE123!", ErrPasswordWeak},
		{"no digit", "SecurePass!", ErrPasswordWeak},
		{"no symbol", "Secure1234", ErrPasswordWeak},
		{"valid", "Secure123!", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, PasswordValidator(tc.password), tc.want)
		})
	}
}
