// Package voicing lays out chords across the four voices. Given the
// chord that is currently sounding and the quality and root of the
// next one, it enumerates every legal assignment of chord members to
// the upper voices and picks the one the voice-leading rules like
// best.
package voicing

import (
	"errors"
	"fmt"

	"github.com/jsphweid/chorale/chord"
	"github.com/jsphweid/chorale/note"
	"github.com/jsphweid/chorale/rules"
)

var (
	ErrNoReachableNote    = errors.New("no reachable note in range")
	ErrNoSpelling         = errors.New("no spelled name for chord member")
	ErrNoCandidateVoicing = errors.New("no candidate voicing")
)

// NearestNote returns the named note spelled in whichever octave lies
// closest to ref: the octave below, at or above ref's, clipped to the
// register boundaries and filtered to rng. Distance is the harmonic
// interval to ref; on a tie the lower octave wins.
func NearestNote(ref note.Note, name string, rng chord.Range) (note.Note, error) {
	octave := ref.Octave()

	var candidates []note.Note
	for _, o := range []int{octave - 1, octave, octave + 1} {
		if o < note.MinOctave || o > note.MaxOctave {
			continue
		}
		n, err := note.New(name, o)
		if err != nil {
			return note.Note{}, err
		}
		candidates = append(candidates, n)
	}

	best := note.Note{}
	bestDist := -1
	for _, n := range candidates {
		if !rng.Contains(n) {
			continue
		}
		d := note.Interval(n, ref)
		if bestDist < 0 || d < bestDist {
			best = n
			bestDist = d
		}
	}
	if bestDist < 0 {
		return note.Note{}, fmt.Errorf("%q near %v in [%v, %v]: %w",
			name, ref, rng.Min, rng.Max, ErrNoReachableNote)
	}
	return best, nil
}

// ChordPitchClasses returns the pitch classes of a chord bass-first:
// the root's class followed by the quality's intervals offset by it.
func ChordPitchClasses(q chord.Quality, root note.Note) ([]int, error) {
	intervals, ok := chord.Intervals(q)
	if !ok {
		return nil, fmt.Errorf("%q: %w", q, chord.ErrUnknownQuality)
	}
	classes := []int{root.Number()}
	for _, iv := range intervals {
		classes = append(classes, (iv+root.Number())%12)
	}
	return classes, nil
}

// Letter steps above the bass for each chord member, by inversion.
var (
	triadSteps   = [][]int{{2, 4}, {2, 5}, {3, 5}}
	seventhSteps = [][]int{{2, 4, 6}, {2, 4, 5}, {2, 3, 5}, {1, 3, 5}}
)

// ChordNoteNames spells the members of a chord built on root,
// bass-first and octave-free, e.g. (Dom7, G) gives [G B D F] and
// (Maj, Gb) gives [Gb Bb Db]. The letter of each member is fixed by
// the inversion's scale steps; the accidental is whichever entry of
// the pitch table lands that letter on the member's pitch class.
func ChordNoteNames(q chord.Quality, root note.Note) ([]string, error) {
	classes, err := ChordPitchClasses(q, root)
	if err != nil {
		return nil, err
	}
	inversion, _ := chord.Inversion(q)

	steps := triadSteps
	if chord.IsSeventh(q) {
		steps = seventhSteps
	}

	letters := []string{root.Letter()}
	for _, s := range steps[inversion] {
		letters = append(letters, note.StepLetter(root.Letter(), s))
	}

	var names []string
	for i, letter := range letters {
		name, ok := note.NameFor(letter, classes[i])
		if !ok {
			return nil, fmt.Errorf("letter %v at pitch class %v: %w", letter, classes[i], ErrNoSpelling)
		}
		names = append(names, name)
	}
	return names, nil
}

// permutations returns every ordering of items, first element varying
// slowest.
func permutations(items []string) [][]string {
	if len(items) <= 1 {
		return [][]string{append([]string{}, items...)}
	}
	var res [][]string
	for i := range items {
		rest := make([]string, 0, len(items)-1)
		rest = append(rest, items[:i]...)
		rest = append(rest, items[i+1:]...)
		for _, p := range permutations(rest) {
			res = append(res, append([]string{items[i]}, p...))
		}
	}
	return res
}

// upperOrderings lists every assignment of chord-member names to
// (tenor, alto, soprano). Sevenths have three distinct names left once
// the bass takes the root, so nothing is doubled: 3! orderings. Triads
// leave two names, so exactly one member (any of the three, the bass's
// included) is doubled: each doubled name is inserted at each of the
// three positions around the 2! orderings of the needed names.
func upperOrderings(names []string) [][]string {
	needed := names[1:]

	if len(needed) == 3 {
		return permutations(needed)
	}

	var res [][]string
	for _, doubled := range names {
		for _, perm := range permutations(needed) {
			for pos := 0; pos < 3; pos++ {
				ordering := make([]string, 0, 3)
				ordering = append(ordering, perm[:pos]...)
				ordering = append(ordering, doubled)
				ordering = append(ordering, perm[pos:]...)
				res = append(res, ordering)
			}
		}
	}
	return res
}

// Enumerate produces every candidate voicing of the next chord. The
// bass takes the root's nearest in-register spelling; each upper voice
// takes its assigned member nearest to the same voice in the current
// chord.
func Enumerate(current chord.Chord, nextQuality chord.Quality, nextRootName string) ([]chord.Chord, error) {
	nextBass, err := NearestNote(current.Bass(), nextRootName, chord.BassRange)
	if err != nil {
		return nil, err
	}

	names, err := ChordNoteNames(nextQuality, nextBass)
	if err != nil {
		return nil, err
	}

	tenor := current.Tenor()
	alto := current.Alto()
	soprano := current.Soprano()

	var res []chord.Chord
	for _, ordering := range upperOrderings(names) {
		nextTenor, err := NearestNote(tenor, ordering[0], chord.TenorRange)
		if err != nil {
			return nil, err
		}
		nextAlto, err := NearestNote(alto, ordering[1], chord.AltoRange)
		if err != nil {
			return nil, err
		}
		nextSoprano, err := NearestNote(soprano, ordering[2], chord.SopranoRange)
		if err != nil {
			return nil, err
		}
		c, err := chord.New(nextBass, nextTenor, nextAlto, nextSoprano, nextQuality)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, nil
}

// Next selects the voicing of the next chord that scores best against
// the current one. Ties keep the first candidate in enumeration order.
func Next(current chord.Chord, nextQuality chord.Quality, nextRootName string, key string) (chord.Chord, error) {
	candidates, err := Enumerate(current, nextQuality, nextRootName)
	if err != nil {
		return chord.Chord{}, err
	}
	if len(candidates) == 0 {
		return chord.Chord{}, fmt.Errorf("%v %v after %v: %w",
			nextQuality, nextRootName, current, ErrNoCandidateVoicing)
	}

	best := candidates[0]
	bestScore := rules.Score(current, best, key)
	for _, c := range candidates[1:] {
		if s := rules.Score(current, c, key); s < bestScore {
			best = c
			bestScore = s
		}
	}
	return best, nil
}
