// Package rules scores the transition between two chords against the
// classical voice-leading constraints: small leaps, no voice crossing,
// no wide spacing, no doubled leading tone, no parallel perfect
// fifths or octaves.
package rules

import (
	"github.com/jsphweid/chorale/chord"
	"github.com/jsphweid/chorale/note"
)

// Fixed rule weights, ordered by severity. Parallels are the worst
// fault, leaps the mildest.
const (
	leapWeight                = 1.0 / 100
	crossingPenalty           = 0.1
	gapPenalty                = 0.2
	doubledLeadingTonePenalty = 0.5
	parallelPenalty           = 1.0
)

// LeapCost sums the melodic intervals of the three upper voices moving
// from c1 to c2, tenor to tenor and so on. The bass is excluded. The
// result lies in 0-33.
func LeapCost(c1, c2 chord.Chord) int {
	total := 0
	total += note.Interval(c1.Tenor(), c2.Tenor())
	total += note.Interval(c1.Alto(), c2.Alto())
	total += note.Interval(c1.Soprano(), c2.Soprano())
	return total
}

// HasVoiceCrossing reports whether any voice sounds above the voice
// over it, compared enharmonically.
func HasVoiceCrossing(c chord.Chord) bool {
	bass, tenor, alto, soprano := c.Bass(), c.Tenor(), c.Alto(), c.Soprano()
	return bass.Compare(tenor) > 0 || tenor.Compare(alto) > 0 || alto.Compare(soprano) > 0
}

// HasOctaveGap reports whether adjacent upper voices are spread more
// than an octave apart in absolute semitones. The bass-tenor gap is
// unconstrained.
func HasOctaveGap(c chord.Chord) bool {
	tenor := c.Tenor().MIDINumber()
	alto := c.Alto().MIDINumber()
	soprano := c.Soprano().MIDINumber()
	return soprano-alto > 12 || alto-tenor > 12
}

// HasDoubledLeadingTone reports whether more than one voice carries
// the leading tone of the key, the pitch class a semitone below the
// tonic. The key must be a valid note name; unknown names count no
// voices.
func HasDoubledLeadingTone(c chord.Chord, key string) bool {
	keyNum, ok := note.PitchClass(key)
	if !ok {
		return false
	}
	leadingTone := ((keyNum-1)%12 + 12) % 12

	count := 0
	for _, n := range c.Notes() {
		if n.Number() == leadingTone {
			count++
		}
	}
	return count > 1
}

// HasParallels reports whether any pair of voices moves in parallel
// perfect fifths, octaves or unisons from c1 to c2: the pair holds the
// same interval of exactly 7 or 0 in both chords while both voices
// change pitch. A repeated chord has no parallels; sustained or
// oblique perfect intervals are legal motion, including the oblique
// case where one voice holds and the other is displaced a whole
// octave.
func HasParallels(c1, c2 chord.Chord) bool {
	notes1 := c1.Notes()
	notes2 := c2.Notes()
	for a, noteA := range notes1 {
		for b, noteB := range notes1 {
			if noteA.Equal(noteB) {
				continue
			}
			iv := note.Interval(noteA, noteB)
			if iv != 0 && iv != 7 {
				continue
			}
			if note.Interval(notes2[a], notes2[b]) != iv {
				continue
			}
			moved := noteA.Compare(notes2[a]) != 0 && noteB.Compare(notes2[b]) != 0
			if moved {
				return true
			}
		}
	}
	return false
}

// Score rates the progression from c1 to c2 in the given key. Lower is
// better; zero is a faultless transition.
func Score(c1, c2 chord.Chord, key string) float64 {
	total := 0.0
	// a few small leaps are fine, many large ones are not
	total += float64(LeapCost(c1, c2)) * leapWeight
	if HasVoiceCrossing(c2) {
		total += crossingPenalty
	}
	if HasOctaveGap(c2) {
		total += gapPenalty
	}
	if HasDoubledLeadingTone(c2, key) {
		total += doubledLeadingTonePenalty
	}
	if HasParallels(c1, c2) {
		total += parallelPenalty
	}
	return total
}
