// ABOUTME: Format converters for the playback pipeline
// ABOUTME: Channel-count conversion and windowed-sinc resampling
// Package convert provides pure transformations from one source into
// another: channel-count conversion and sample-rate conversion.
//
// Converters exist in two flavours mirroring the source strengths:
// fixed-input variants for runtime-fixed sources, where state can be
// sized once at construction, and span variants for dynamic sources
// whose format may change at any span boundary. ToFixed composes the
// span variants into the standard boundary conversion from the dynamic
// strength down to the runtime-fixed one.
//
// Both converters keep the frame discipline: the number of emitted
// samples is always a whole number of output frames, and a partially
// filled trailing chunk is padded and length-compensated rather than
// dropped.
package convert
