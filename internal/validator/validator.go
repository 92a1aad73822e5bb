// Package validator checks request shapes before they reach the services.
package validator

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MinDisplayNameLength = 2
	MinPasswordLength    = 6
	MaxPasswordBytes     = 72 // bcrypt reads only the first 72 bytes
)

// ValidationErrors maps a request field to a human readable problem.
type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	if _, exists := v[field]; !exists {
		v[field] = message
	}
}

func ValidateSignup(displayName, email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		errs.Add("display_name", "Display name is required")
	} else if utf8.RuneCountInString(displayName) < MinDisplayNameLength {
		errs.Add("display_name", "Display name must be at least 2 characters")
	}

	validateEmail(email, errs)

	if utf8.RuneCountInString(password) < MinPasswordLength {
		errs.Add("password", "Password must be at least 6 characters")
	} else if len(password) > MaxPasswordBytes {
		errs.Add("password", "Password must be at most 72 bytes")
	}

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateCreatePost(title, body string) ValidationErrors {
	errs := make(ValidationErrors)
	requireText("title", "Title", title, errs)
	requireText("body", "Body", body, errs)
	return errs
}

// ValidateUpdatePost checks only the fields that are present.
func ValidateUpdatePost(title, body *string) ValidationErrors {
	errs := make(ValidationErrors)
	if title != nil {
		requireText("title", "Title", *title, errs)
	}
	if body != nil {
		requireText("body", "Body", *body, errs)
	}
	return errs
}

func ValidateComment(body string) ValidationErrors {
	errs := make(ValidationErrors)
	requireText("body", "Body", body, errs)
	return errs
}

// ValidID reports whether id is a well-formed resource identifier.
func ValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// validateEmail accepts a bare address only; "Name <a@b.c>" forms are rejected.
func validateEmail(email string, errs ValidationErrors) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
		return
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		errs.Add("email", "Invalid email address")
	}
}

func requireText(field, label, value string, errs ValidationErrors) {
	if strings.TrimSpace(value) == "" {
		errs.Add(field, label+" is required")
	}
}
