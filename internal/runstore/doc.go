// Package runstore persists pipeline run history in SQLite.
//
// Every learn and apply invocation is recorded as a run, and every
// recording the run touched is recorded with its outcome: completed,
// skipped (with the reason, such as an edited transcript that is not a
// subset of its raw transcript), or failed. The `autocut runs` command
// reads this history back.
//
// Schema changes bump the version in schema.go; users delete the database
// to adopt the new schema.
package runstore
