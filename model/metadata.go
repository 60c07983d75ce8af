package model

import (
	"errors"
	"strings"
)

// Metadata validation errors.
var (
	// ErrEmptyTitle is returned when the document title is empty.
	ErrEmptyTitle = errors.New("title must not be empty")

	// ErrEmptyAuthor is returned when the document author is empty.
	ErrEmptyAuthor = errors.New("author must not be empty")
)

// Metadata contains document-level information.
type Metadata struct {
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`
}

// ValidationError lists every metadata field that failed validation. Its
// message is the failures joined by "; ".
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap supports errors.Is against ErrEmptyTitle and ErrEmptyAuthor.
func (e *ValidationError) Unwrap() []error { return e.Errs }

// Validate checks that title and author are non-empty. Whitespace-only
// values count as empty.
func (m Metadata) Validate() error {
	var errs []error
	if strings.TrimSpace(m.Title) == "" {
		errs = append(errs, ErrEmptyTitle)
	}
	if strings.TrimSpace(m.Author) == "" {
		errs = append(errs, ErrEmptyAuthor)
	}
	if len(errs) > 0 {
		return &ValidationError{Errs: errs}
	}
	return nil
}

// PartialMetadata holds the optional metadata an importer may return.
type PartialMetadata struct {
	Title  *string `json:"title,omitempty"`
	Author *string `json:"author,omitempty"`
}

// Merge returns m with every valid field of p applied. Missing or empty
// fields in p are dropped.
func (m Metadata) Merge(p *PartialMetadata) Metadata {
	if p == nil {
		return m
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) != "" {
		m.Title = *p.Title
	}
	if p.Author != nil && strings.TrimSpace(*p.Author) != "" {
		m.Author = *p.Author
	}
	return m
}
