// ABOUTME: Entry point for the chorus-play command
// ABOUTME: Plays audio files back to back on the default output device
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Chorus-Audio/chorus-go/pkg/decode"
	"github.com/Chorus-Audio/chorus-go/pkg/player"
)

var (
	volume = flag.Float64("volume", 1.0, "Linear playback gain")
	paused = flag.Bool("paused", false, "Start paused")
)

func main() {
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] file [file ...]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	p, err := player.New(float32(*volume), *paused)
	if err != nil {
		log.Fatalf("Failed to start player: %v", err)
	}
	defer p.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for _, file := range files {
		// Probe the duration up front so we know how long to let
		// each track run; adding the next track stops the current
		// one.
		probe, err := decode.Open(file)
		if err != nil {
			log.Fatalf("Cannot play %s: %v", file, err)
		}
		duration, known := probe.TotalDuration()
		probe.Close()

		if err := p.Add(file); err != nil {
			log.Fatalf("Cannot play %s: %v", file, err)
		}
		log.Printf("Playing %s", file)

		if !known {
			log.Printf("Unknown duration for %s, playing for 5 minutes", file)
			duration = 5 * time.Minute
		}
		select {
		case <-time.After(duration):
		case sig := <-sigChan:
			log.Printf("Received %v signal, stopping", sig)
			return
		}
	}
}
