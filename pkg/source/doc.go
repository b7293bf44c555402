// ABOUTME: Sample source abstractions for the playback pipeline
// ABOUTME: Defines the Source and SpanSource interfaces plus their adaptors
// Package source defines the sample-producing abstractions the playback
// pipeline is built from.
//
// A Source is a lazy, possibly infinite, non-restartable sequence of
// float32 samples with a sample rate and channel count that never change
// for the lifetime of the instance (the runtime-fixed strength). A
// SpanSource relaxes that: its format may change at any span boundary
// (the dynamic strength). The compile-time-fixed strength lives in the
// static subpackage.
//
// Ownership of a source is linear: moving a source into an adaptor
// (mixer, queue, converter) transfers exclusive ownership. Nothing in a
// source's pull path may fail; Next either yields a sample or reports
// end of stream. Errors are resolved at construction or submission time.
package source
