package midi

import (
	"path/filepath"
	"testing"

	"github.com/jsphweid/chorale/chord"
	"github.com/jsphweid/chorale/constants"
	"github.com/jsphweid/chorale/note"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2/smf"
)

func testProgression(t *testing.T) []chord.Chord {
	t.Helper()
	mk := func(bass, tenor, alto, soprano note.Note, q chord.Quality) chord.Chord {
		c, err := chord.New(bass, tenor, alto, soprano, q)
		if err != nil {
			t.Fatalf("bad fixture chord: %v", err)
		}
		return c
	}
	return []chord.Chord{
		mk(note.Must("C", 3), note.Must("G", 3), note.Must("E", 4), note.Must("C", 5), chord.Maj),
		mk(note.Must("G", 2), note.Must("G", 3), note.Must("D", 4), note.Must("B", 4), chord.Maj),
		mk(note.Must("C", 3), note.Must("G", 3), note.Must("E", 4), note.Must("C", 5), chord.Maj),
	}
}

type noteEvent struct {
	key   uint8
	ticks uint32
	isOff bool
}

func trackNoteEvents(track smf.Track) []noteEvent {
	var res []noteEvent
	for _, event := range track {
		var channel, key, velocity uint8
		switch {
		case event.Message.GetNoteOn(&channel, &key, &velocity):
			res = append(res, noteEvent{key: key, ticks: event.Delta, isOff: false})
		case event.Message.GetNoteOff(&channel, &key, &velocity):
			res = append(res, noteEvent{key: key, ticks: event.Delta, isOff: true})
		}
	}
	return res
}

func TestWriteVoiceTracksRoundTrip(t *testing.T) {
	assert := assert.New(t)
	progression := testProgression(t)
	path := filepath.Join(t.TempDir(), "voices.mid")

	assert.NoError(WriteVoiceTracks(progression, path))

	s, err := ReadFile(path)
	assert.NoError(err)
	assert.Len(s.Tracks, 4)

	// track 0 is the soprano: C5 B4 C5
	soprano := trackNoteEvents(s.Tracks[0])
	assert.Len(soprano, 6)
	assert.Equal(uint8(72), soprano[0].key)
	assert.Equal(uint8(71), soprano[2].key)
	assert.Equal(uint8(72), soprano[4].key)

	// track 3 is the bass: C3 G2 C3
	bass := trackNoteEvents(s.Tracks[3])
	assert.Equal(uint8(48), bass[0].key)
	assert.Equal(uint8(43), bass[2].key)
}

func TestWriteVoiceTracksSustainsSecondToLastChord(t *testing.T) {
	assert := assert.New(t)
	progression := testProgression(t)
	path := filepath.Join(t.TempDir(), "voices.mid")
	assert.NoError(WriteVoiceTracks(progression, path))

	s, err := ReadFile(path)
	assert.NoError(err)

	for _, track := range s.Tracks {
		events := trackNoteEvents(track)
		assert.Len(events, 6)
		// off-event deltas carry each chord's duration
		assert.Equal(uint32(constants.TicksPerBeat), events[1].ticks)
		assert.Equal(uint32(2*constants.TicksPerBeat), events[3].ticks)
		assert.Equal(uint32(constants.TicksPerBeat), events[5].ticks)
	}
}

func TestWritePianoReduction(t *testing.T) {
	assert := assert.New(t)
	progression := testProgression(t)
	path := filepath.Join(t.TempDir(), "reduction.mid")

	assert.NoError(WritePianoReduction(progression, path))

	s, err := ReadFile(path)
	assert.NoError(err)
	assert.Len(s.Tracks, 2)

	// upper track holds alto and soprano of the first chord: E4 + C5
	upper := trackNoteEvents(s.Tracks[0])
	assert.Len(upper, 12)
	assert.False(upper[0].isOff)
	assert.False(upper[1].isOff)
	assert.Equal(uint8(64), upper[0].key)
	assert.Equal(uint8(72), upper[1].key)

	// lower track holds bass and tenor: C3 + G3
	lower := trackNoteEvents(s.Tracks[1])
	assert.Equal(uint8(48), lower[0].key)
	assert.Equal(uint8(55), lower[1].key)
}

func TestWriteRejectsEmptyProgression(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "empty.mid")
	assert.Error(WriteVoiceTracks(nil, path))
	assert.Error(WritePianoReduction(nil, path))
}
