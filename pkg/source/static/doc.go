// ABOUTME: Compile-time-fixed format sources
// ABOUTME: Generic sources whose rate and channel count live in the type
// Package static provides the compile-time-fixed source strength: the
// sample rate and channel count are part of a source's static type,
// carried by phantom marker types (Rate44100, Stereo, ...). Mixing or
// queueing sources of different static formats is a type error, not a
// runtime error, and adaptors need no runtime format checks.
//
// Go has no generics over integer constants, so the markers stand in
// for them: the StaticFormat method binds the markers to the generic
// Source interface, which keeps structural typing from erasing the
// distinction. A source with an unlisted format has to fall back to the
// runtime-fixed strength in the parent package.
package static
