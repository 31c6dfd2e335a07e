package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInput marks missing or unsupported input media and style files.
	ErrInput = errors.New("input error")
	// ErrAlignment marks an edited transcript that is not a strict
	// subset of its raw transcript.
	ErrAlignment = errors.New("alignment error")
	// ErrCollaborator marks a failure in an external collaborator
	// (speech-to-text, embedding, cutter).
	ErrCollaborator = errors.New("collaborator error")
	// ErrConfiguration marks unusable configuration values.
	ErrConfiguration = errors.New("configuration error")
	// ErrValidation marks internally inconsistent data.
	ErrValidation = errors.New("validation error")
	// ErrTransient marks failures worth retrying, such as resource
	// exhaustion in a collaborator.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether an error should abort the whole batch rather than
// skip the affected recording. Alignment and collaborator failures are
// scoped to one recording; input and configuration problems are not.
func Fatal(err error) bool {
	return errors.Is(err, ErrInput) || errors.Is(err, ErrConfiguration)
}

// Retryable reports whether an error is worth retrying.
func Retryable(err error) bool {
	return errors.Is(err, ErrTransient)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
