package config

import (
	"fmt"
	"strings"
)

// SchemaError reports a malformed or unknown override shape. It aborts the
// render before any resolution happens.
type SchemaError struct {
	// File is the originating override file, empty for in-memory decodes.
	File string
	Err  error
}

func (e *SchemaError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("invalid override values: %v", e.Err)
	}
	return fmt.Sprintf("invalid override values in %s: %v", e.File, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// ValidationCode identifies a violated invariant.
type ValidationCode string

const (
	CodeMissingPassword          ValidationCode = "MissingPassword"
	CodeInvalidReplicaRange      ValidationCode = "InvalidReplicaRange"
	CodeInvalidAutoscalingRange  ValidationCode = "InvalidAutoscalingRange"
	CodePersistenceWithoutClaims ValidationCode = "PersistenceWithoutClaims"
	CodeEmptySchedule            ValidationCode = "EmptySchedule"
	CodeInvalidSchedule          ValidationCode = "InvalidSchedule"
	CodeInvalidQuantity          ValidationCode = "InvalidQuantity"
	CodeEmptyName                ValidationCode = "EmptyName"
	CodeInvalidJobName           ValidationCode = "InvalidJobName"
	CodeDuplicateName            ValidationCode = "DuplicateName"
	CodeInvalidInstanceName      ValidationCode = "InvalidInstanceName"
)

// ValidationError is a single violated invariant, located by config field path.
type ValidationError struct {
	Code    ValidationCode
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s [%s]", e.Field, e.Message, e.Code)
}

// ValidationErrors collects every invariant violated in one validation pass.
// A failed render reports all of them together, never just the first.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return "validation failed:\n  " + strings.Join(msgs, "\n  ")
}

// Has reports whether any collected error carries the given code.
func (v ValidationErrors) Has(code ValidationCode) bool {
	for _, e := range v {
		if e.Code == code {
			return true
		}
	}
	return false
}
