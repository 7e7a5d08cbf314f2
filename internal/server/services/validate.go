package services

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/notevault/internal/common"
)

const maxPasswordBytes = 1024

// normalizeEmail trims surrounding whitespace and accepts only a bare
// address (no display name) whose domain has at least one inner dot.
// Case is preserved: emails are matched exactly.
func normalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", fmt.Errorf("%w: missing email", common.ErrorInvalidInput)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != email {
		return "", fmt.Errorf("%w: invalid email address", common.ErrorInvalidInput)
	}

	at := strings.LastIndexByte(email, '@')
	domain := email[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") ||
		strings.HasSuffix(domain, ".") || strings.Contains(domain, "..") {
		return "", fmt.Errorf("%w: invalid email domain", common.ErrorInvalidInput)
	}
	return email, nil
}

func validatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: missing password", common.ErrorInvalidInput)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password too long", common.ErrorInvalidInput)
	}
	return nil
}
