// Package services provides shared error classification and context
// annotation helpers used across pipeline components.
//
// Errors are tagged with sentinel markers (ErrInput, ErrAlignment,
// ErrCollaborator, ...) via Wrap so the pipeline and CLI can map failures
// to the right handling policy: input and configuration problems abort a
// run, alignment failures skip a single learning pair, and transient
// collaborator failures are retried a bounded number of times.
package services
