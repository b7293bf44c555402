// ABOUTME: Audio file decoding dispatch
// ABOUTME: Supports MP3, FLAC, WAV and Ogg Vorbis files
package decode

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Chorus-Audio/chorus-go/pkg/source"
)

// Decoded is a sample source backed by an open file.
type Decoded interface {
	source.Source
	io.Closer
}

// Open opens an audio file as a sample source, picking the decoder by
// file extension.
func Open(path string) (Decoded, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var dec Decoded
	switch ext {
	case ".mp3":
		dec, err = newMP3Source(f)
	case ".flac":
		dec, err = newFLACSource(f)
	case ".wav":
		dec, err = newWAVSource(f)
	case ".ogg", ".oga":
		dec, err = newVorbisSource(f)
	default:
		f.Close()
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .flac, .wav, .ogg)", ext)
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	return dec, nil
}
