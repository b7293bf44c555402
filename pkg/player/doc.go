// ABOUTME: Package doc for the playback composition root
// ABOUTME: Describes the audio goroutine and control-plane split

// Package player binds the sample pipeline to the sound device.
//
// A Player runs one long-lived audio goroutine that owns the device
// and the pull chain: queue, pause, gain, periodic parameter refresh,
// and a format converter when the device format differs from the
// internal pipeline format. Everything else talks to it through the
// queue handle and a small atomic parameter cell; the pull path itself
// never locks or blocks.
package player
