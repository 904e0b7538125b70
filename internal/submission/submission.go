// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package submission turns the "share a hidden gem" form into a mailto link
// addressed to the site's curator. Nothing is persisted; the visitor's mail
// client sends the message.
package submission

import (
	"errors"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Field limits. Mail clients truncate or refuse very long mailto URLs.
const (
	maxNameLen        = 200
	maxLocationLen    = 200
	maxDescriptionLen = 4_000
	maxSubmitterLen   = 200
	maxEmailLen       = 254
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid submission")

// ValidationError carries the user-facing message for the first invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Gem is a visitor's hidden-gem suggestion.
type Gem struct {
	Name           string
	Location       string
	Description    string
	SubmitterName  string
	SubmitterEmail string
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (g Gem) Trimmed() Gem {
	return Gem{
		Name:           strings.TrimSpace(g.Name),
		Location:       strings.TrimSpace(g.Location),
		Description:    strings.TrimSpace(g.Description),
		SubmitterName:  strings.TrimSpace(g.SubmitterName),
		SubmitterEmail: strings.TrimSpace(g.SubmitterEmail),
	}
}

// Validate checks the form inputs and returns the first error found.
func (g Gem) Validate() error {
	g = g.Trimmed()
	switch {
	case g.Name == "":
		return &ValidationError{"name", "Gem name is required."}
	case utf8.RuneCountInString(g.Name) > maxNameLen:
		return &ValidationError{"name", "Gem name is too long (max 200 characters)."}
	case g.Location == "":
		return &ValidationError{"location", "Location is required."}
	case utf8.RuneCountInString(g.Location) > maxLocationLen:
		return &ValidationError{"location", "Location is too long (max 200 characters)."}
	case g.Description == "":
		return &ValidationError{"description", "Description is required."}
	case utf8.RuneCountInString(g.Description) > maxDescriptionLen:
		return &ValidationError{"description", "Description is too long (max 4,000 characters)."}
	case utf8.RuneCountInString(g.SubmitterName) > maxSubmitterLen:
		return &ValidationError{"submitter_name", "Your name is too long (max 200 characters)."}
	case len(g.SubmitterEmail) > maxEmailLen:
		return &ValidationError{"submitter_email", "Email is too long."}
	}
	if g.SubmitterEmail != "" {
		if _, err := mail.ParseAddress(g.SubmitterEmail); err != nil {
			return &ValidationError{"submitter_email", "Email address is not valid."}
		}
	}
	return nil
}

// Subject returns the mail subject line.
func (g Gem) Subject() string {
	return "Hidden Gem Discovery: " + strings.TrimSpace(g.Name)
}

// Body returns the plain-text mail body. Empty optional fields fall back to
// "Anonymous" and "Not provided".
func (g Gem) Body() string {
	g = g.Trimmed()
	submitter := g.SubmitterName
	if submitter == "" {
		submitter = "Anonymous"
	}
	email := g.SubmitterEmail
	if email == "" {
		email = "Not provided"
	}

	var b strings.Builder
	b.WriteString("New Hidden Gem Submission\n\n")
	b.WriteString("Gem Name: " + g.Name + "\n")
	b.WriteString("Location: " + g.Location + "\n\n")
	b.WriteString("Description:\n" + g.Description + "\n\n")
	b.WriteString("Submitted by: " + submitter + "\n")
	b.WriteString("Contact Email: " + email)
	return b.String()
}

// Submission is a validated gem with the reference id it was logged under.
type Submission struct {
	Ref uuid.UUID
	Gem Gem
}

// New validates g and assigns it a reference id.
func New(g Gem) (Submission, error) {
	if err := g.Validate(); err != nil {
		return Submission{}, err
	}
	return Submission{Ref: uuid.New(), Gem: g.Trimmed()}, nil
}

// Body returns the gem body followed by the reference footer.
func (s Submission) Body() string {
	return s.Gem.Body() + "\n\nReference: " + s.Ref.String()
}

// MailtoURL builds the mailto link that opens a pre-filled message to
// recipient.
func (s Submission) MailtoURL(recipient string) string {
	return MailtoURL(recipient, s.Gem.Subject(), s.Body())
}

// MailtoURL builds a mailto link with percent-encoded subject and body.
func MailtoURL(recipient, subject, body string) string {
	return "mailto:" + recipient +
		"?subject=" + encodeComponent(subject) +
		"&body=" + encodeComponent(body)
}

// componentUnescape undoes the escapes QueryEscape applies to characters that
// mail clients expect literally, and writes spaces as %20 rather than "+".
var componentUnescape = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeComponent(s string) string {
	return componentUnescape.Replace(url.QueryEscape(s))
}
