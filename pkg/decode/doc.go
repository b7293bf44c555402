// ABOUTME: Package doc for the file decoding layer
// ABOUTME: Maps audio files onto the sample source interface

// Package decode opens audio files as sample sources.
//
// Open dispatches on the file extension and returns a Decoded source
// that streams float32 samples in the file's native format. Format
// errors surface at open time; the sample pull path never errors. The
// caller owns the source and must Close it when playback ends.
package decode
