// Package markov samples roman-numeral progressions from a first-order
// transition table.
package markov

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/jsphweid/chorale/util"
)

// Start and End are the absorbing boundary markers. Start keys the row
// the sampler draws the first numeral from; drawing End finishes the
// sequence.
const (
	Start = "START"
	End   = "END"
)

// Transition is one successor entry in a row. Rows are slices, not
// maps, because the sampler walks entries in their authored order.
type Transition struct {
	Label string
	P     float64
}

type Row []Transition

// Table maps a state (a numeral, or Start) to its successor
// distribution. Row probabilities are meant to sum to 1.0 but are not
// checked; see Next for what happens to leftover mass.
type Table map[string]Row

var ErrUnknownState = errors.New("state not in markov table")

// Next draws the successor of state: a uniform draw in [0,1) walks the
// row in order, each entry consuming its share of the mass. If the row
// sums to less than 1 and the draw lands beyond it, the sequence ends;
// unclaimed mass belongs to End so a deficient row can never loop the
// sampler.
func Next(t Table, state string, rng *rand.Rand) (string, error) {
	row, ok := t[state]
	if !ok {
		return "", fmt.Errorf("%q: %w", state, ErrUnknownState)
	}
	draw := rng.Float64()
	for _, tr := range row {
		if tr.P > draw {
			return tr.Label, nil
		}
		draw -= tr.P
	}
	return End, nil
}

// Sequence samples a full progression: from Start until End is drawn,
// End excluded. Stateless across calls; determinism is up to the rng
// the caller passes in.
func Sequence(t Table, rng *rand.Rand) ([]string, error) {
	var res []string
	state := Start
	for {
		next, err := Next(t, state, rng)
		if err != nil {
			return nil, err
		}
		if next == End {
			return res, nil
		}
		res = append(res, next)
		state = next
	}
}

// States lists the table's source states, sorted.
func States(t Table) []string {
	return util.SortedKeys(t)
}

// MajorTable is the built-in major-mode progression model.
var MajorTable = Table{
	Start: {{"I", 1}},
	"I": {
		{"V", .05}, {"IV", .15}, {"ii", .05}, {"ii6", .1}, {"viidim6", .15},
		{"V42", .15}, {"iii", .025}, {"IV6", .075}, {End, .25},
	},
	"I6": {
		{"V", .025}, {"IV", .2}, {"ii", .2}, {"ii6", .1}, {"IV6", .05},
		{"V7", .025}, {"V6", .05}, {"vi", .15}, {"iii", .15}, {"iii6", .05},
	},
	"I64": {{"V", .3}, {"V7", .5}, {"vi", .15}, {"IV6", .05}},
	"ii": {
		{"iii", .05}, {"iii6", .1}, {"IV", .3}, {"V", .05}, {"V7", .05},
		{"V6", .05}, {"V65", .05}, {"V43", .05}, {"V42", .05}, {"vi", .05},
		{"viidim", .05}, {"viidim6", .05}, {"I64", .1},
	},
	"ii6": {
		{"iii", .05}, {"iii6", .1}, {"IV", .1}, {"V", .15}, {"V7", .15},
		{"V6", .05}, {"V65", .05}, {"V43", .05}, {"V42", .05}, {"vi", .05},
		{"viidim", .05}, {"viidim6", .05}, {"I64", .1},
	},
	"iii":  {{"vi", .6}, {"IV6", .1}, {"IV", .1}, {"ii", .1}, {"ii6", .1}},
	"iii6": {{"vi", .4}, {"vi6", .4}, {"IV6", .1}, {"ii", .1}},
	"IV":   {{"I", .2}, {"V", .3}, {"V7", .3}, {"I64", .2}},
	"IV6":  {{"I", .05}, {"V", .35}, {"I6", .6}},
	"V":    {{"I", .5}, {"vi", .4}, {"IV6", .1}},
	"V6":   {{"I6", .6}, {"I", .2}, {"iii", .2}},
	"V7":   {{"I", .5}, {"vi", .4}, {"IV6", .1}},
	"V65":  {{"I", .3}, {"vi", .65}, {"IV6", .05}},
	"V43":  {{"I6", .4}, {"iii", .3}, {"vi", .4}},
	"V42":  {{"I6", .6}, {"I", .1}, {"V", .3}},
	"vi":   {{"ii", .5}, {"ii6", .3}, {"IV", .2}},
	"vi6":  {{"ii", .3}, {"ii6", .4}, {"IV", .3}},
	"viidim": {
		{"iii", .4}, {"I6", .2}, {"V", .4},
	},
	"viidim6": {{"I", .3}, {"I6", .6}, {"iii6", .1}},
}
