package model

type HarmonizeRequestBody struct {
	Numerals []string `json:"numerals"`
	Key      string   `json:"key"`
	Minor    bool     `json:"minor"`
}

type GenerateRequestBody struct {
	Key   string `json:"key"`
	Minor bool   `json:"minor"`
	Seed  *int64 `json:"seed"`
}

type ProgressionResponse struct {
	ID       string        `json:"id,omitempty"`
	Key      string        `json:"key"`
	Mode     string        `json:"mode"`
	Numerals []string      `json:"numerals"`
	Chords   []VoicedChord `json:"chords"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
