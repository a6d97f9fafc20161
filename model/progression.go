package model

import (
	"time"

	"github.com/jsphweid/chorale/chord"
)

// VoicedChord is the JSON shape of one chord in a progression.
type VoicedChord struct {
	Quality string `json:"quality"`
	Bass    string `json:"bass"`
	Tenor   string `json:"tenor"`
	Alto    string `json:"alto"`
	Soprano string `json:"soprano"`
	// MIDI pitch numbers, bass first
	MIDI []int `json:"midi"`
}

func NewVoicedChord(c chord.Chord) VoicedChord {
	var midi []int
	for _, n := range c.Notes() {
		midi = append(midi, n.MIDINumber())
	}
	return VoicedChord{
		Quality: string(c.Quality()),
		Bass:    c.Bass().String(),
		Tenor:   c.Tenor().String(),
		Alto:    c.Alto().String(),
		Soprano: c.Soprano().String(),
		MIDI:    midi,
	}
}

// ProgressionRecord is what gets persisted for a generated
// progression.
type ProgressionRecord struct {
	ID        string
	Key       string
	Mode      string
	Numerals  []string
	Chords    []string
	CreatedAt time.Time
}
