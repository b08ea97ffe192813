// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/earkms/internal/errors"
)

var (
	// accessKeyIDRegex matches AWS access key ids: a known prefix followed by
	// 16 uppercase alphanumeric characters.
	accessKeyIDRegex = regexp.MustCompile(`^(AKIA|ASIA)[A-Z0-9]{16}$`)

	// regionCodeRegex matches region codes such as "us-west-2".
	regionCodeRegex = regexp.MustCompile(`^[a-z]{2}(-[a-z]+)+-\d$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// AccessKeyID validates that a value is a well-formed AWS access key id.
var AccessKeyID = validation.NewStringRule(
	accessKeyIDRegex.MatchString,
	"must be a valid access key id",
)

// RegionCode validates that a value is a well-formed region code.
var RegionCode = validation.NewStringRule(
	regionCodeRegex.MatchString,
	"must be a valid region code",
)

// SecretAccessKey validates that a value looks like an AWS secret access key:
// 40 characters of base64-style material.
type SecretAccessKey struct{}

// Validate checks the secret access key format.
func (SecretAccessKey) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError(
			"validation_secret_access_key", "secret access key must be a string",
		)
	}
	if len(s) != 40 {
		return validation.NewError(
			"validation_secret_access_key_length", "secret access key must be 40 characters",
		)
	}
	return nil
}
