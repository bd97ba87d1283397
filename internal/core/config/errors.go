package config

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

// Kind distinguishes the structural or referential rule a configuration violated.
type Kind string

const (
	KindMissingContainersSection Kind = "MissingContainersSection"
	KindMissingImage             Kind = "MissingImage"
	KindUnknownLink              Kind = "UnknownLink"
	KindCircularDependency       Kind = "CircularDependency"
	KindInvalidField             Kind = "InvalidField"
	KindInvalidYAML              Kind = "InvalidYAML"
)

var (
	// Structure errors
	ErrMissingContainersSection = errors.New("config must define a containers section")
	ErrInvalidYAML              = errors.New("invalid YAML syntax")

	// Container definition errors
	ErrMissingImage = errors.New("container must define an image")
	ErrInvalidField = errors.New("invalid field value")

	// Link graph errors
	ErrUnknownLink        = errors.New("link to unknown container")
	ErrCircularDependency = errors.New("circular dependency detected")
)

var kindSentinels = map[Kind]error{
	KindMissingContainersSection: ErrMissingContainersSection,
	KindMissingImage:             ErrMissingImage,
	KindUnknownLink:              ErrUnknownLink,
	KindCircularDependency:       ErrCircularDependency,
	KindInvalidField:             ErrInvalidField,
	KindInvalidYAML:              ErrInvalidYAML,
}

// ConfigError is the single error category for every load and resolve failure.
type ConfigError struct {
	Kind      Kind
	Container string // offending container, when applicable
	Field     string // e.g. "containers.web.volumes"
	Message   string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Container != "" {
		return fmt.Sprintf("container %q: %s", e.Container, e.Message)
	}
	return e.Message
}

// Unwrap returns the kind's sentinel together with any detail error, so both
// errors.Is(err, ErrUnknownLink) and checks against the detail work.
func (e *ConfigError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if sentinel, ok := kindSentinels[e.Kind]; ok {
		errs = append(errs, sentinel)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewConfigError creates a new ConfigError.
func NewConfigError(kind Kind, container, message string, err error) *ConfigError {
	return &ConfigError{
		Kind:      kind,
		Container: container,
		Message:   message,
		Err:       err,
	}
}

// fieldError creates a ConfigError scoped to a single container field.
func fieldError(container, field, message string) *ConfigError {
	return &ConfigError{
		Kind:      KindInvalidField,
		Container: container,
		Field:     "containers." + container + "." + field,
		Message:   message,
	}
}

// KindOf returns the Kind of the first ConfigError in err's chain, or "" if
// err is not a configuration error.
func KindOf(err error) Kind {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr.Kind
	}
	return ""
}
