package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxWidgetIDLength bounds widget identifiers accepted from documents.
const maxWidgetIDLength = 256

// ValidateWidgetID checks that a widget identifier is usable by the
// rendering layer: non-empty, bounded, and free of control characters.
//
// Identifiers are otherwise opaque ("builtin:label", "analyze-org-activity").
func ValidateWidgetID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidDocument, "widget id cannot be empty")
	}

	if len(id) > maxWidgetIDLength {
		return New(ErrCodeInvalidDocument, "widget id too long (max %d characters)", maxWidgetIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDocument, "widget id contains invalid control characters")
		}
	}

	return nil
}

// ValidateDimension checks that v is a finite, non-negative number of
// logical pixels. name is used in the error message.
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidSize, "%s must be a finite number", name)
	}
	if v < 0 {
		return New(ErrCodeInvalidSize, "%s cannot be negative (got %g)", name, v)
	}
	return nil
}
