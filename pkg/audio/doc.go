// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format and the sample conventions shared by the pipeline
// Package audio provides fundamental audio types used throughout chorus.
//
// The whole pipeline operates on float32 samples in [-1.0, 1.0],
// interleaved by channel within a frame. A Format pairs a sample rate
// with a channel count; both are always positive. A zero value is a
// construction-time programming error, never a runtime state.
package audio
