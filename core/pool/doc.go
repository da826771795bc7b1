// Package pool provides the bounded worker pool shared by all three pipeline
// stages: a fixed number of workers mapping a function over independent
// items, with per-item failures captured as results instead of aborting the
// run.
package pool
