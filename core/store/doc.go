// Package store implements the on-disk layout shared by every pipeline stage.
//
// The filesystem is the system of record: a directory per font family (named
// by the family's slug), a font_family.json manifest inside it, one binary
// per (variant, format) pair, and derived preview assets alongside. No stage
// keeps authoritative state beyond what is on disk.
//
// # Existence Predicates
//
// Exists and DirExists are the named skip-if-exists predicates the stages
// build their idempotence on: a family directory that already exists is not
// re-fetched, and a preview file that already exists is never regenerated.
//
// # Filesystem Abstraction
//
// The Store wraps an afero.Fs so tests can run against an in-memory
// filesystem without touching real disk.
package store
