package note

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// pitchNumbers maps every spelled note name to its pitch class
// (C = 0). 35 entries: 7 letters x 5 accidentals.
var pitchNumbers = map[string]int{
	"C": 0, "B#": 0, "Dbb": 0,
	"B##": 1, "C#": 1, "Db": 1,
	"C##": 2, "D": 2, "Ebb": 2,
	"D#": 3, "Eb": 3, "Fbb": 3,
	"D##": 4, "E": 4, "Fb": 4,
	"E#": 5, "F": 5, "Gbb": 5,
	"E##": 6, "F#": 6, "Gb": 6,
	"F##": 7, "G": 7, "Abb": 7,
	"G#": 8, "Ab": 8,
	"G##": 9, "A": 9, "Bbb": 9,
	"A#": 10, "Bb": 10, "Cbb": 10,
	"A##": 11, "B": 11, "Cb": 11,
}

const (
	MinOctave = 0
	MaxOctave = 9
)

var (
	ErrInvalidName   = errors.New("invalid note name")
	ErrInvalidOctave = errors.New("invalid octave")
)

// A Note is a spelled pitch in scientific pitch notation: a name like
// "C", "Eb" or "F##" plus an octave, where middle C is C4. Notes are
// immutable values. Equality is spelling-exact (Eb4 != D#4) while
// ordering is enharmonic, by MIDI number.
type Note struct {
	name   string
	octave int
}

func New(name string, octave int) (Note, error) {
	if _, ok := pitchNumbers[name]; !ok {
		return Note{}, fmt.Errorf("%q is not a valid note name: %w", name, ErrInvalidName)
	}
	if octave < MinOctave || octave > MaxOctave {
		return Note{}, fmt.Errorf("%v is not a valid octave: %w", octave, ErrInvalidOctave)
	}
	return Note{name: name, octave: octave}, nil
}

// Must is New for notes known valid at compile time, e.g. register
// bounds and test fixtures.
func Must(name string, octave int) Note {
	n, err := New(name, octave)
	if err != nil {
		panic(err.Error())
	}
	return n
}

func (n Note) Name() string {
	return n.name
}

func (n Note) Octave() int {
	return n.octave
}

// Number returns the pitch class, 0-11 with C = 0.
func (n Note) Number() int {
	return pitchNumbers[n.name]
}

// MIDINumber returns the absolute pitch index, so C4 is 60.
func (n Note) MIDINumber() int {
	return n.Number() + (n.octave+1)*12
}

// Clone returns an independent copy. Note is a value type so this is
// plain assignment, kept as a method for symmetry with Chord.
func (n Note) Clone() Note {
	return n
}

// Equal reports spelling-exact equality: same name, same octave.
func (n Note) Equal(o Note) bool {
	return n.name == o.name && n.octave == o.octave
}

// Compare orders notes enharmonically: -1, 0 or 1 as n sounds below,
// at or above o. Eb4 and D#4 compare equal.
func (n Note) Compare(o Note) int {
	a, b := n.MIDINumber(), o.MIDINumber()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (n Note) Less(o Note) bool {
	return n.MIDINumber() < o.MIDINumber()
}

func (n Note) String() string {
	return n.name + strconv.Itoa(n.octave)
}

// Interval returns the harmonic interval between two notes as an
// unsigned pitch-class distance 0-11, e.g. 7 for a perfect fifth.
// Enharmonically equal notes are 0 apart regardless of spelling.
func Interval(a, b Note) int {
	if a.Compare(b) == 0 {
		return 0
	}
	hi, lo := a, b
	if a.Less(b) {
		hi, lo = b, a
	}
	d := hi.Number() - lo.Number()
	return ((d % 12) + 12) % 12
}

// Letter returns the note's letter name without accidentals, "A"-"G".
func (n Note) Letter() string {
	return n.name[:1]
}

// StepLetter walks the seven-letter cycle upward from a letter, so
// StepLetter("C", 2) is "E" and StepLetter("B", 1) is "C".
func StepLetter(letter string, steps int) string {
	const letters = "ABCDEFG"
	i := strings.Index(letters, letter)
	if i < 0 {
		return ""
	}
	return string(letters[(i+steps)%7])
}

// NameFor resolves a (letter, pitch class) pair to its unique spelled
// name in the pitch table, e.g. ("C", 11) is "Cb". The second return
// is false when no accidental on that letter reaches the pitch class.
func NameFor(letter string, pitchClass int) (string, bool) {
	for name, num := range pitchNumbers {
		if name[:1] == letter && num == pitchClass {
			return name, true
		}
	}
	return "", false
}

// PitchClass returns the pitch class for a bare note name, with ok
// false for names outside the table.
func PitchClass(name string) (int, bool) {
	num, ok := pitchNumbers[name]
	return num, ok
}
