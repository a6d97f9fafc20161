// Package progression turns roman-numeral harmonic functions into
// fully voiced four-part chords.
package progression

import (
	"errors"
	"fmt"

	"github.com/jsphweid/chorale/chord"
	"github.com/jsphweid/chorale/note"
	"github.com/jsphweid/chorale/util"
	"github.com/jsphweid/chorale/voicing"
)

// Function is what a roman numeral denotes in a key: a chord quality
// rooted some number of semitones above the tonic.
type Function struct {
	Quality chord.Quality
	Degree  int
}

// functions is the closed roman-numeral table.
var functions = map[string]Function{
	"I": {chord.Maj, 0}, "I6": {chord.Maj6, 4}, "I64": {chord.Maj64, 7},
	"i": {chord.Min, 0}, "i6": {chord.Min6, 3}, "i64": {chord.Min64, 7},
	"ii": {chord.Min, 2}, "ii6": {chord.Min6, 5}, "ii64": {chord.Min64, 9},
	"iidim": {chord.Dim, 2}, "iidim6": {chord.Dim6, 5}, "iidim64": {chord.Dim64, 8},
	"III": {chord.Maj, 3}, "III6": {chord.Maj6, 7}, "III64": {chord.Maj64, 10},
	"iii": {chord.Min, 4}, "iii6": {chord.Min6, 7}, "iii64": {chord.Min64, 11},
	"IV": {chord.Maj, 5}, "IV6": {chord.Maj6, 9}, "IV64": {chord.Maj64, 0},
	"iv": {chord.Min, 5}, "iv6": {chord.Min6, 8}, "iv64": {chord.Min64, 0},
	"V": {chord.Maj, 7}, "V6": {chord.Maj6, 11}, "V64": {chord.Maj64, 2},
	"V7": {chord.Dom7, 7}, "V65": {chord.Dom65, 11}, "V43": {chord.Dom43, 2},
	"V42": {chord.Dom42, 5},
	"VI": {chord.Maj, 8}, "VI6": {chord.Maj6, 0}, "VI64": {chord.Maj64, 3},
	"vi": {chord.Min, 9}, "vi6": {chord.Min6, 0}, "vi64": {chord.Min64, 4},
	"viidim": {chord.Dim, 11}, "viidim6": {chord.Dim6, 2}, "viidim64": {chord.Dim64, 5},
}

// degreeLetterSteps maps semitones above the tonic to letter steps
// above the tonic's letter, e.g. 7 semitones is four letters up
// (C to G).
var degreeLetterSteps = map[int]int{
	0: 0, 2: 1, 3: 2, 4: 2, 5: 3, 7: 4, 8: 5, 9: 5, 10: 6, 11: 6,
}

var ErrUnknownFunction = errors.New("unknown harmonic function")

// Lookup resolves a roman numeral against the function table.
func Lookup(numeral string) (Function, error) {
	fn, ok := functions[numeral]
	if !ok {
		return Function{}, fmt.Errorf("%q: %w", numeral, ErrUnknownFunction)
	}
	return fn, nil
}

// Numerals lists every roman numeral the table knows, sorted.
func Numerals() []string {
	return util.SortedKeys(functions)
}

// RootName spells the root of a numeral's chord in a key, picking the
// accidental that puts the diatonic letter on the right pitch class,
// e.g. ("V", "Eb") is "Bb" and ("viidim", "C") is "B".
func RootName(numeral string, key string) (string, error) {
	fn, err := Lookup(numeral)
	if err != nil {
		return "", err
	}
	keyNum, ok := note.PitchClass(key)
	if !ok {
		return "", fmt.Errorf("key %q is not a valid note name: %w", key, note.ErrInvalidName)
	}

	letter := note.StepLetter(key[:1], degreeLetterSteps[fn.Degree])
	name, ok := note.NameFor(letter, (keyNum+fn.Degree)%12)
	if !ok {
		return "", fmt.Errorf("no spelling for %v of %v: %w", numeral, key, note.ErrInvalidName)
	}
	return name, nil
}

// FirstChord opens a progression with the root-position tonic triad:
// bass on the tonic in octave 3, the upper voices placed near fixed
// anchors (tenor by Bb3 on the fifth, alto by F4 on the third, soprano
// by B4 on the root).
func FirstChord(key string, major bool) (chord.Chord, error) {
	quality := chord.Min
	if major {
		quality = chord.Maj
	}

	root, err := note.New(key, 2)
	if err != nil {
		return chord.Chord{}, err
	}
	names, err := voicing.ChordNoteNames(quality, root)
	if err != nil {
		return chord.Chord{}, err
	}

	bass, err := note.New(key, 3)
	if err != nil {
		return chord.Chord{}, err
	}
	tenor, err := voicing.NearestNote(note.Must("Bb", 3), names[2], chord.TenorRange)
	if err != nil {
		return chord.Chord{}, err
	}
	alto, err := voicing.NearestNote(note.Must("F", 4), names[1], chord.AltoRange)
	if err != nil {
		return chord.Chord{}, err
	}
	soprano, err := voicing.NearestNote(note.Must("B", 4), names[0], chord.SopranoRange)
	if err != nil {
		return chord.Chord{}, err
	}

	return chord.New(bass, tenor, alto, soprano, quality)
}

// Build voices a whole numeral sequence in the given key. The first
// numeral is taken as the tonic opening; every following numeral is
// voiced by the selector against the chord before it. Any failure
// aborts the build, no partial progression is returned.
func Build(numerals []string, key string, major bool) ([]chord.Chord, error) {
	if len(numerals) == 0 {
		return nil, nil
	}
	for _, numeral := range numerals {
		if _, err := Lookup(numeral); err != nil {
			return nil, err
		}
	}

	last, err := FirstChord(key, major)
	if err != nil {
		return nil, err
	}
	chords := []chord.Chord{last}

	for _, numeral := range numerals[1:] {
		fn, err := Lookup(numeral)
		if err != nil {
			return nil, err
		}
		rootName, err := RootName(numeral, key)
		if err != nil {
			return nil, err
		}
		last, err = voicing.Next(last, fn.Quality, rootName, key)
		if err != nil {
			return nil, err
		}
		chords = append(chords, last)
	}

	return chords, nil
}
