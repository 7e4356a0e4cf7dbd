package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidCertificateInput   = errors.New("invalid certificate input")
	ErrCertificateSourceConflict = errors.New("file_url and link_url cannot both be set")
	ErrNoCertificateUpdates      = errors.New("no updates provided")
	ErrInvalidVerificationInput  = errors.New("invalid verification request input")
)

// IsValidationError reports whether err was caused by caller input rather than
// by the store or the classifier.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidCertificateInput) ||
		errors.Is(err, ErrCertificateSourceConflict) ||
		errors.Is(err, ErrNoCertificateUpdates) ||
		errors.Is(err, ErrInvalidVerificationInput) ||
		errors.Is(err, ErrInvalidSignals)
}

// validate is shared; validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validationError wraps validator failures under sentinel so handlers can map
// them with errors.Is while the message still names the offending fields.
func validationError(sentinel error, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", sentinel, strings.Join(fields, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := toSnake(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func toSnake(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		if upper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
