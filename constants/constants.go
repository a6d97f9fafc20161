package constants

import "os"

func GetOutputDir() string {
	path := os.Getenv("OUTPUT_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

// Chorale tempo and grid: one chord per quarter note at 60 bpm.
const (
	Tempo        = 60
	TicksPerBeat = 960
)

const (
	VoicesFilename    = "output_individual_voices.mid"
	ReductionFilename = "output_two_hands.mid"
)
