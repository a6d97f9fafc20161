// Package midi renders chord progressions to standard MIDI files with
// gomidi. Two renderings exist: one track per voice, and a two-track
// piano reduction.
package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jsphweid/chorale/chord"
	"github.com/jsphweid/chorale/constants"
	"github.com/jsphweid/chorale/note"
)

const velocity = 100

// durations returns each chord's length in ticks: one beat per chord,
// with the second-to-last chord held for two.
func durations(numChords int) []uint32 {
	res := make([]uint32, numChords)
	for i := range res {
		res[i] = constants.TicksPerBeat
		if i == numChords-2 {
			res[i] = 2 * constants.TicksPerBeat
		}
	}
	return res
}

func newTrack(name string) smf.Track {
	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(name))
	tr.Add(0, smf.MetaTempo(constants.Tempo))
	return tr
}

func voiceTrack(name string, notes []note.Note, ticks []uint32) smf.Track {
	tr := newTrack(name)
	for i, n := range notes {
		key := uint8(n.MIDINumber())
		tr.Add(0, midi.NoteOn(0, key, velocity))
		tr.Add(ticks[i], midi.NoteOff(0, key))
	}
	tr.Close(0)
	return tr
}

func pairTrack(name string, lower, upper []note.Note, ticks []uint32) smf.Track {
	tr := newTrack(name)
	for i := range lower {
		lo := uint8(lower[i].MIDINumber())
		hi := uint8(upper[i].MIDINumber())
		tr.Add(0, midi.NoteOn(0, lo, velocity))
		tr.Add(0, midi.NoteOn(0, hi, velocity))
		tr.Add(ticks[i], midi.NoteOff(0, lo))
		tr.Add(0, midi.NoteOff(0, hi))
	}
	tr.Close(0)
	return tr
}

func voices(progression []chord.Chord) (bass, tenor, alto, soprano []note.Note) {
	for _, c := range progression {
		bass = append(bass, c.Bass())
		tenor = append(tenor, c.Tenor())
		alto = append(alto, c.Alto())
		soprano = append(soprano, c.Soprano())
	}
	return
}

// WriteVoiceTracks writes the progression as four tracks, soprano
// first, one per voice.
func WriteVoiceTracks(progression []chord.Chord, path string) error {
	if len(progression) == 0 {
		return errors.New("nothing to render: progression is empty")
	}
	bass, tenor, alto, soprano := voices(progression)
	ticks := durations(len(progression))

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(constants.TicksPerBeat)
	s.Add(voiceTrack("Soprano", soprano, ticks))
	s.Add(voiceTrack("Alto", alto, ticks))
	s.Add(voiceTrack("Tenor", tenor, ticks))
	s.Add(voiceTrack("Bass", bass, ticks))
	return s.WriteFile(path)
}

// WritePianoReduction writes the progression as two tracks: alto and
// soprano for the right hand, bass and tenor for the left.
func WritePianoReduction(progression []chord.Chord, path string) error {
	if len(progression) == 0 {
		return errors.New("nothing to render: progression is empty")
	}
	bass, tenor, alto, soprano := voices(progression)
	ticks := durations(len(progression))

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(constants.TicksPerBeat)
	s.Add(pairTrack("Upper Voices", alto, soprano, ticks))
	s.Add(pairTrack("Lower Voices", bass, tenor, ticks))
	return s.WriteFile(path)
}

// ReadFile parses a standard MIDI file.
func ReadFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// the smf parser panics on some malformed files
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, fmt.Errorf("error reading midi file... %s", err.Error())
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("error parsing midi file... %s", err.Error())
	}
	return res, nil
}
