// Package profile defines the frozen style profile and its file-based
// versioned store.
//
// A profile is written once by a learning run and never edited in place;
// new learning runs allocate the next monotonic version under the styles
// directory. Apply runs load one profile read-only, so concurrent readers
// never race with a writer. Version allocation across concurrent learning
// runs is serialized with an advisory file lock.
package profile
