package user

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLen = 6
	MaxPasswordLen = 128
	MaxNameLen     = 50
	MaxEmailLen    = 128
	MinHandleLen   = 3
	MaxHandleLen   = 20
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9]+[._\-/]?[A-Za-z0-9]+[@]\w+[.]\w{2,3}$`)

// ValidateEmail checks basic address shape.
func ValidateEmail(email string) error {
	if !utf8.ValidString(email) || utf8.RuneCountInString(email) > MaxEmailLen {
		return ErrInvalidEmail
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword checks password length.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLen || n > MaxPasswordLen {
		return ErrPasswordLength
	}
	return nil
}

// ValidateName checks a first or last name.
func ValidateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < 1 || n > MaxNameLen {
		return ErrNameLength
	}
	return nil
}

// ValidateHandle checks a display handle.
func ValidateHandle(handle string) error {
	n := utf8.RuneCountInString(handle)
	if n < MinHandleLen || n > MaxHandleLen || strings.TrimSpace(handle) != handle {
		return ErrHandleLength
	}
	return nil
}

// baseHandle derives the default handle from a user's names.
func baseHandle(first, last string) string {
	h := strings.ToLower(first + last)
	h = strings.Join(strings.Fields(h), "")
	if r := []rune(h); len(r) > MaxHandleLen {
		h = string(r[:MaxHandleLen])
	}
	return h
}
