package voicing

import (
	"testing"

	"github.com/jsphweid/chorale/chord"
	"github.com/jsphweid/chorale/note"
	"github.com/jsphweid/chorale/rules"
	"github.com/stretchr/testify/assert"
)

var anyRange = chord.Range{Min: note.Must("C", 0), Max: note.Must("B", 9)}

func mustChord(t *testing.T, bass, tenor, alto, soprano note.Note, q chord.Quality) chord.Chord {
	t.Helper()
	c, err := chord.New(bass, tenor, alto, soprano, q)
	if err != nil {
		t.Fatalf("bad fixture chord: %v", err)
	}
	return c
}

func cMajor(t *testing.T) chord.Chord {
	return mustChord(t, note.Must("C", 3), note.Must("G", 3), note.Must("C", 4), note.Must("E", 4), chord.Maj)
}

func TestNearestNotePicksClosestOctave(t *testing.T) {
	assert := assert.New(t)
	n, err := NearestNote(note.Must("C", 4), "B", anyRange)
	assert.NoError(err)
	// B3 is a semitone below C4; B4 is a major seventh above
	assert.True(n.Equal(note.Must("B", 3)))
}

func TestNearestNoteTieKeepsLowerOctave(t *testing.T) {
	assert := assert.New(t)
	// F#3 and F#4 are both a tritone from C4
	n, err := NearestNote(note.Must("C", 4), "F#", anyRange)
	assert.NoError(err)
	assert.True(n.Equal(note.Must("F#", 3)))
}

func TestNearestNoteRespectsRange(t *testing.T) {
	assert := assert.New(t)
	n, err := NearestNote(note.Must("E", 4), "G", chord.TenorRange)
	assert.NoError(err)
	// G4 is nearer but above the tenor register
	assert.True(n.Equal(note.Must("G", 3)))
}

func TestNearestNoteFailsWhenNothingReachable(t *testing.T) {
	assert := assert.New(t)
	narrow := chord.Range{Min: note.Must("D", 4), Max: note.Must("B", 4)}
	_, err := NearestNote(note.Must("C", 4), "C", narrow)
	assert.ErrorIs(err, ErrNoReachableNote)
}

func TestNearestNoteRejectsBadName(t *testing.T) {
	assert := assert.New(t)
	_, err := NearestNote(note.Must("C", 4), "H", anyRange)
	assert.ErrorIs(err, note.ErrInvalidName)
}

func TestChordPitchClasses(t *testing.T) {
	assert := assert.New(t)

	classes, err := ChordPitchClasses(chord.Maj, note.Must("C", 3))
	assert.NoError(err)
	assert.Equal([]int{0, 4, 7}, classes)

	classes, err = ChordPitchClasses(chord.Dom42, note.Must("F", 3))
	assert.NoError(err)
	assert.Equal([]int{5, 7, 11, 2}, classes)
}

func TestChordNoteNames(t *testing.T) {
	cases := []struct {
		q    chord.Quality
		root note.Note
		want []string
	}{
		{chord.Maj, note.Must("C", 3), []string{"C", "E", "G"}},
		{chord.Maj, note.Must("Gb", 3), []string{"Gb", "Bb", "Db"}},
		{chord.Maj6, note.Must("E", 3), []string{"E", "G", "C"}},
		{chord.Min64, note.Must("G", 3), []string{"G", "C", "Eb"}},
		{chord.Dom7, note.Must("G", 2), []string{"G", "B", "D", "F"}},
		{chord.Dom65, note.Must("B", 2), []string{"B", "D", "F", "G"}},
		{chord.Dom42, note.Must("F", 3), []string{"F", "G", "B", "D"}},
	}
	for _, c := range cases {
		t.Run(string(c.q)+"/"+c.root.Name(), func(t *testing.T) {
			got, err := ChordNoteNames(c.q, c.root)
			assert.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestChordNoteNamesMatchPitchClasses(t *testing.T) {
	assert := assert.New(t)
	qualities := []chord.Quality{
		chord.Maj, chord.Maj6, chord.Maj64, chord.Min, chord.Min6, chord.Min64,
		chord.Dim, chord.Dim6, chord.Dim64, chord.Dom7, chord.Dom65, chord.Dom43,
		chord.Dom42,
	}
	roots := []note.Note{
		note.Must("C", 3), note.Must("G", 3), note.Must("Eb", 3),
		note.Must("F#", 3), note.Must("A", 2),
	}
	for _, q := range qualities {
		for _, root := range roots {
			names, err := ChordNoteNames(q, root)
			if err != nil {
				// some remote qualities have no legal spelling for
				// some roots; that's a spelling gap, not a mismatch
				assert.ErrorIs(err, ErrNoSpelling)
				continue
			}
			classes, err := ChordPitchClasses(q, root)
			assert.NoError(err)
			assert.Equal(len(classes), len(names))
			for i, name := range names {
				num, ok := note.PitchClass(name)
				assert.True(ok)
				assert.Equal(classes[i], num, "%v on %v member %v", q, root, i)
			}
		}
	}
}

func TestEnumerateSeventhChordCount(t *testing.T) {
	assert := assert.New(t)
	candidates, err := Enumerate(cMajor(t), chord.Dom7, "G")
	assert.NoError(err)
	// three needed notes, nothing doubled: 3! orderings
	assert.Len(candidates, 6)
	for _, c := range candidates {
		assert.Equal(chord.Dom7, c.Quality())
		assert.True(c.Bass().Equal(note.Must("G", 2)))
	}
}

func TestEnumerateTriadCount(t *testing.T) {
	assert := assert.New(t)
	candidates, err := Enumerate(cMajor(t), chord.Maj, "G")
	assert.NoError(err)
	// each of the 3 members doubled x 2! orderings x 3 positions
	assert.Len(candidates, 18)
	for _, c := range candidates {
		assert.Equal(chord.Maj, c.Quality())
	}
}

func TestEnumerateTriadCoversEveryDoubling(t *testing.T) {
	assert := assert.New(t)
	candidates, err := Enumerate(cMajor(t), chord.Maj, "G")
	assert.NoError(err)

	doubledLetters := make(map[string]bool)
	for _, c := range candidates {
		seen := make(map[string]int)
		for _, n := range c.Notes() {
			seen[n.Name()]++
		}
		for name, count := range seen {
			if count == 2 {
				doubledLetters[name] = true
			}
		}
	}
	assert.True(doubledLetters["G"])
	assert.True(doubledLetters["B"])
	assert.True(doubledLetters["D"])
}

func TestNextReturnsMinimumScore(t *testing.T) {
	assert := assert.New(t)
	current := cMajor(t)

	best, err := Next(current, chord.Maj, "G", "C")
	assert.NoError(err)

	candidates, err := Enumerate(current, chord.Maj, "G")
	assert.NoError(err)
	bestScore := rules.Score(current, best, "C")
	for _, c := range candidates {
		assert.LessOrEqual(bestScore, rules.Score(current, c, "C"))
	}
}

func TestNextKeepsFirstSeenOnTies(t *testing.T) {
	assert := assert.New(t)
	current := cMajor(t)

	candidates, err := Enumerate(current, chord.Maj, "G")
	assert.NoError(err)
	best, err := Next(current, chord.Maj, "G", "C")
	assert.NoError(err)

	bestScore := rules.Score(current, best, "C")
	for _, c := range candidates {
		if rules.Score(current, c, "C") == bestScore {
			// the winner must be the earliest minimal candidate
			assert.Equal(best.String(), c.String())
			break
		}
	}
}
