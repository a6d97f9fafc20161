package chord

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/jsphweid/chorale/note"
)

// Quality labels a triad or seventh chord with its figured-bass
// inversion, e.g. Maj6 is a major triad in first inversion.
type Quality string

const (
	Maj   Quality = "Maj"
	Maj6  Quality = "Maj6"
	Maj64 Quality = "Maj64"
	Min   Quality = "Min"
	Min6  Quality = "Min6"
	Min64 Quality = "Min64"
	Aug   Quality = "Aug"
	Aug6  Quality = "Aug6"
	Aug64 Quality = "Aug64"
	Dim   Quality = "Dim"
	Dim6  Quality = "Dim6"
	Dim64 Quality = "Dim64"
	Dom7  Quality = "Dom7"
	Dom65 Quality = "Dom65"
	Dom43 Quality = "Dom43"
	Dom42 Quality = "Dom42"
)

type structure struct {
	signature int
	inversion int
}

// structures is the closed quality table. The signature is the chord's
// distinct non-root intervals above the bass, sorted ascending and
// concatenated as decimal digits, so Maj is 47 and Dom7 is 4710.
var structures = map[Quality]structure{
	Maj:   {47, 0},
	Maj6:  {38, 1},
	Maj64: {59, 2},
	Min:   {37, 0},
	Min6:  {49, 1},
	Min64: {58, 2},
	Aug:   {48, 0},
	Aug6:  {48, 1},
	Aug64: {48, 2},
	Dim:   {36, 0},
	Dim6:  {39, 1},
	Dim64: {69, 2},
	Dom7:  {4710, 0},
	Dom65: {368, 1},
	Dom43: {359, 2},
	Dom42: {269, 3},
}

var (
	ErrUnknownQuality  = errors.New("unknown chord quality")
	ErrQualityMismatch = errors.New("notes do not match chord quality")
	ErrVoiceOutOfRange = errors.New("note out of range for voice")
)

// Signature returns the interval signature for a quality, with ok
// false for labels outside the table.
func Signature(q Quality) (int, bool) {
	s, ok := structures[q]
	return s.signature, ok
}

// Inversion returns the inversion number for a quality, 0 for root
// position.
func Inversion(q Quality) (int, bool) {
	s, ok := structures[q]
	return s.inversion, ok
}

// Intervals returns the signature split back into its interval values,
// e.g. Dom65 (368) gives [3 6 8]. Dom7 is the one signature holding a
// two-digit interval (4710 means 4-7-10), so it can't be split
// digit-wise.
func Intervals(q Quality) ([]int, bool) {
	s, ok := structures[q]
	if !ok {
		return nil, false
	}
	if q == Dom7 {
		return []int{4, 7, 10}, true
	}
	var res []int
	for _, d := range strconv.Itoa(s.signature) {
		res = append(res, int(d-'0'))
	}
	return res, true
}

// IsSeventh reports whether the quality is a seventh chord: three
// distinct pitch classes above the root rather than two.
func IsSeventh(q Quality) bool {
	intervals, ok := Intervals(q)
	return ok && len(intervals) == 3
}

// Classify computes the interval signature of four notes: each upper
// note's pitch class minus the bass's, mod 12, zeros and duplicates
// dropped, sorted ascending, digits concatenated. {C E G G} and
// {C# E# G# G#} both classify as 47.
func Classify(bass, tenor, alto, soprano note.Note) int {
	root := bass.Number()

	var intervals []int
	for _, n := range []note.Note{tenor, alto, soprano} {
		iv := ((n.Number()-root)%12 + 12) % 12
		if iv == 0 {
			continue
		}
		seen := false
		for _, prev := range intervals {
			if prev == iv {
				seen = true
				break
			}
		}
		if !seen {
			intervals = append(intervals, iv)
		}
	}
	sort.Ints(intervals)

	var digits string
	for _, iv := range intervals {
		digits += strconv.Itoa(iv)
	}
	res, _ := strconv.Atoi(digits)
	return res
}

// Range is a closed register for one voice.
type Range struct {
	Min note.Note
	Max note.Note
}

func (r Range) Contains(n note.Note) bool {
	return n.Compare(r.Min) >= 0 && n.Compare(r.Max) <= 0
}

// Standard 4-part choir registers.
var (
	BassRange    = Range{note.Must("D", 2), note.Must("C", 4)}
	TenorRange   = Range{note.Must("D", 3), note.Must("F", 4)}
	AltoRange    = Range{note.Must("A", 3), note.Must("D", 5)}
	SopranoRange = Range{note.Must("D", 4), note.Must("G", 5)}
)

// A Chord is an immutable four-voice chord. Voices are positional: the
// first note passed to New is the bass no matter how high it sounds.
type Chord struct {
	bass    note.Note
	tenor   note.Note
	alto    note.Note
	soprano note.Note
	quality Quality
}

// New validates registers and structure and builds the chord.
func New(bass, tenor, alto, soprano note.Note, quality Quality) (Chord, error) {
	for _, v := range []struct {
		name string
		n    note.Note
		r    Range
	}{
		{"bass", bass, BassRange},
		{"tenor", tenor, TenorRange},
		{"alto", alto, AltoRange},
		{"soprano", soprano, SopranoRange},
	} {
		if !v.r.Contains(v.n) {
			return Chord{}, fmt.Errorf("%v is not a valid note for a %v: %w", v.n, v.name, ErrVoiceOutOfRange)
		}
	}

	s, ok := structures[quality]
	if !ok {
		return Chord{}, fmt.Errorf("%q: %w", quality, ErrUnknownQuality)
	}
	if got := Classify(bass, tenor, alto, soprano); got != s.signature {
		return Chord{}, fmt.Errorf("notes classify as %v, want %v for %v: %w",
			got, s.signature, quality, ErrQualityMismatch)
	}

	return Chord{
		bass:    bass.Clone(),
		tenor:   tenor.Clone(),
		alto:    alto.Clone(),
		soprano: soprano.Clone(),
		quality: quality,
	}, nil
}

func (c Chord) Bass() note.Note    { return c.bass.Clone() }
func (c Chord) Tenor() note.Note   { return c.tenor.Clone() }
func (c Chord) Alto() note.Note    { return c.alto.Clone() }
func (c Chord) Soprano() note.Note { return c.soprano.Clone() }
func (c Chord) Quality() Quality   { return c.quality }

// Notes returns the voices bass-first.
func (c Chord) Notes() []note.Note {
	return []note.Note{c.bass.Clone(), c.tenor.Clone(), c.alto.Clone(), c.soprano.Clone()}
}

func (c Chord) String() string {
	return fmt.Sprintf("%v[%v %v %v %v]", c.quality, c.bass, c.tenor, c.alto, c.soprano)
}
