package errors

import (
	"errors"
	"fmt"
	"strings"
)

// MissingRequiredOptionError is raised when a required option has neither a value nor a default
type MissingRequiredOptionError struct {
	Path string
}

func (e *MissingRequiredOptionError) Error() string {
	return fmt.Sprintf("missing required option %q", e.Path)
}

func NewMissingRequiredOption(path string) *MissingRequiredOptionError {
	return &MissingRequiredOptionError{Path: path}
}

// InvalidOptionTypeError is raised when an option value is not one of the allowed types
type InvalidOptionTypeError struct {
	Path     string
	Expected []string
	Actual   string
}

func (e *InvalidOptionTypeError) Error() string {
	return fmt.Sprintf("invalid type for option %q: expected one of [%s], got %s", e.Path, strings.Join(e.Expected, ", "), e.Actual)
}

func NewInvalidOptionType(path string, expected []string, actual string) *InvalidOptionTypeError {
	return &InvalidOptionTypeError{Path: path, Expected: expected, Actual: actual}
}

// UnknownOptionError is raised by strict validation for keys the schema does not declare
type UnknownOptionError struct {
	Path string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option %q", e.Path)
}

func NewUnknownOption(path string) *UnknownOptionError {
	return &UnknownOptionError{Path: path}
}

// UnknownObjectRoleError is raised when a name is requested or updated for a role nobody declared
type UnknownObjectRoleError struct {
	Role string
}

func (e *UnknownObjectRoleError) Error() string {
	return fmt.Sprintf("unknown object role %q", e.Role)
}

func NewUnknownObjectRole(role string) *UnknownObjectRoleError {
	return &UnknownObjectRoleError{Role: role}
}

// UnknownBuildGroupError is raised when a builder is asked for a group it does not declare
type UnknownBuildGroupError struct {
	Group string
}

func (e *UnknownBuildGroupError) Error() string {
	return fmt.Sprintf("unknown build group %q", e.Group)
}

func NewUnknownBuildGroup(group string) *UnknownBuildGroupError {
	return &UnknownBuildGroupError{Group: group}
}

// InvalidConfigurationError is a semantic violation across several options
type InvalidConfigurationError struct {
	msg string
}

func (e *InvalidConfigurationError) Error() string {
	return e.msg
}

func NewInvalidConfiguration(msg string, args ...interface{}) *InvalidConfigurationError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &InvalidConfigurationError{msg: msg}
}

func IsMissingRequiredOption(err error) bool {
	var target *MissingRequiredOptionError
	return errors.As(err, &target)
}

func IsInvalidOptionType(err error) bool {
	var target *InvalidOptionTypeError
	return errors.As(err, &target)
}

func IsUnknownOption(err error) bool {
	var target *UnknownOptionError
	return errors.As(err, &target)
}

func IsUnknownObjectRole(err error) bool {
	var target *UnknownObjectRoleError
	return errors.As(err, &target)
}

func IsUnknownBuildGroup(err error) bool {
	var target *UnknownBuildGroupError
	return errors.As(err, &target)
}

func IsInvalidConfiguration(err error) bool {
	var target *InvalidConfigurationError
	return errors.As(err, &target)
}
