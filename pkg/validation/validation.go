// Package validation holds the input rules shared by every use case. Each check
// trims and normalizes its input and returns the cleaned value, or an
// *errors.AppError naming the offending field.
package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"unisell/pkg/errors"
)

const (
	MinUsernameLength = 4
	MinPasswordLength = 6
)

var (
	domainPattern   = regexp.MustCompile(`^(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+(?:[a-z]{2}|edu)$`)
	emailPattern    = regexp.MustCompile(`^[a-z0-9!#$%&'*+/=?^_{|}~-]+(?:\.[a-z0-9!#$%&'*+/=?^_{|}~-]+)*@(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+(?:[a-z]{2}|edu)$`)
	alphanumPattern = regexp.MustCompile(`^[a-z0-9]+$`)

	fieldValidator = validator.New()
)

// String trims s and rejects it when nothing is left.
func String(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.Validation(field, field+" is empty or only contains spaces")
	}
	return s, nil
}

// Price parses a non-negative whole number. The trimmed text is returned alongside
// the value since items persist the price as text.
func Price(field, s string) (string, int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", 0, errors.Validation(field, field+" is empty or only contains spaces")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return "", 0, errors.InvalidPrice(field, err)
	}
	if n < 0 {
		return "", 0, errors.InvalidPrice(field, nil)
	}
	return strconv.Itoa(n), n, nil
}

// BidPrice rejects negative bid amounts.
func BidPrice(price int) error {
	if price < 0 {
		return errors.InvalidPrice("price", nil)
	}
	return nil
}

// Rating parses a whole number in [1,5]. Out of range values fail.
func Rating(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Validation("rating", "rating is not a number")
	}
	if err := RatingValue(n); err != nil {
		return 0, err
	}
	return n, nil
}

func RatingValue(n int) error {
	if n < 1 || n > 5 {
		return errors.Validation("rating", "rating must be between 1 and 5")
	}
	return nil
}

// Keywords splits a comma separated list. Every entry must be non-empty after trimming.
func Keywords(csv string) ([]string, error) {
	csv = strings.TrimSpace(csv)
	if csv == "" {
		return nil, errors.Validation("keywords", "keywords is empty or only contains spaces")
	}
	parts := strings.Split(csv, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		kw := strings.TrimSpace(part)
		if kw == "" {
			return nil, errors.Validation("keywords", "keywords contains an empty entry")
		}
		keywords = append(keywords, kw)
	}
	return keywords, nil
}

// SoldFlag accepts only the literals "true" and "false".
func SoldFlag(s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, errors.InvalidSoldValue()
	}
}

func Username(s string) (string, error) {
	s, err := String("username", strings.ToLower(s))
	if err != nil {
		return "", err
	}
	if len(s) < MinUsernameLength {
		return "", errors.Validation("username", "username must be at least 4 characters long")
	}
	if !alphanumPattern.MatchString(s) {
		return "", errors.Validation("username", "username must contain only letters and numbers")
	}
	return s, nil
}

// Password is not trimmed; spaces anywhere are rejected.
func Password(field, s string) (string, error) {
	if s == "" {
		return "", errors.Validation(field, field+" is empty")
	}
	if len(s) < MinPasswordLength {
		return "", errors.Validation(field, field+" must be at least 6 characters long")
	}
	if strings.ContainsAny(s, " \t\r\n") {
		return "", errors.Validation(field, field+" cannot contain spaces")
	}
	return s, nil
}

func PasswordConfirmation(password, confirmation string) error {
	if password != confirmation {
		return errors.Validation("passwordConfirmation", "passwords do not match")
	}
	return nil
}

func Email(s string) (string, error) {
	s, err := String("email", strings.ToLower(s))
	if err != nil {
		return "", err
	}
	if !emailPattern.MatchString(s) {
		return "", errors.Validation("email", "email is not a valid university email")
	}
	return s, nil
}

// EmailDomain returns the part of an already validated email after the last "@".
func EmailDomain(email string) string {
	return email[strings.LastIndex(email, "@")+1:]
}

func Domain(s string) (string, error) {
	s, err := String("emailDomain", strings.ToLower(s))
	if err != nil {
		return "", err
	}
	if !domainPattern.MatchString(s) {
		return "", errors.InvalidDomain("emailDomain")
	}
	return s, nil
}

// ImageURL accepts absolute URLs and site-relative paths.
func ImageURL(s string) (string, error) {
	s, err := String("imageUrl", s)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//") {
		return s, nil
	}
	if err := fieldValidator.Var(s, "url"); err != nil {
		return "", errors.Validation("imageUrl", "imageUrl is not a valid URL")
	}
	return s, nil
}

// OptionalImageURL adopts s when it is a valid image URL and otherwise keeps current.
// It never fails.
func OptionalImageURL(s, current string) string {
	if v, err := ImageURL(s); err == nil {
		return v
	}
	return current
}
