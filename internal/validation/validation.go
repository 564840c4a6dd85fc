// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"chirp/internal/models"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 30
	minPasswordLength = 6
	maxPasswordLength = 128
)

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if len(username) < minUsernameLength {
		return fmt.Errorf("username must be at least %d characters long", minUsernameLength)
	}
	if len(username) > maxUsernameLength {
		return fmt.Errorf("username must not exceed %d characters", maxUsernameLength)
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("password must not exceed %d characters", maxPasswordLength)
	}
	return nil
}

// ValidatePostContent trims content and enforces the length limit.
// Length is measured in UTF-16 code units so surrogate-pair characters
// (emoji and other non-BMP text) count the same as they do for JavaScript
// clients. Returns the trimmed content on success.
func ValidatePostContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", fmt.Errorf("post content is required")
	}
	if utf16Length(trimmed) > models.MaxPostContentLength {
		return "", fmt.Errorf("post must be %d characters or less", models.MaxPostContentLength)
	}
	return trimmed, nil
}

func utf16Length(s string) int {
	return len(utf16.Encode([]rune(s)))
}
