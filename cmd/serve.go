package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/chorale/chord"
	"github.com/jsphweid/chorale/db"
	"github.com/jsphweid/chorale/markov"
	"github.com/jsphweid/chorale/model"
	"github.com/jsphweid/chorale/progression"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the harmonizer over HTTP",
	Long:  `Serves the harmonizer over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func writeError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func progressionResponse(id, key, mode string, numerals []string, chords []chord.Chord) model.ProgressionResponse {
	res := model.ProgressionResponse{
		ID:       id,
		Key:      key,
		Mode:     mode,
		Numerals: numerals,
	}
	for _, c := range chords {
		res.Chords = append(res.Chords, model.NewVoicedChord(c))
	}
	return res
}

func HandleHarmonize(w http.ResponseWriter, r *http.Request) {
	var input model.HarmonizeRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, "Could not unmarshal request body: "+err.Error(), 400)
		return
	}
	if len(input.Numerals) == 0 {
		writeError(w, "Need at least one numeral", 400)
		return
	}
	if input.Key == "" {
		input.Key = "C"
	}

	chords, err := progression.Build(input.Numerals, input.Key, !input.Minor)
	if err != nil {
		writeError(w, err.Error(), 400)
		return
	}

	mode := "major"
	if input.Minor {
		mode = "minor"
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(progressionResponse("", input.Key, mode, input.Numerals, chords))
}

func HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var input model.GenerateRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, "Could not unmarshal request body: "+err.Error(), 400)
		return
	}
	if input.Minor {
		writeError(w, "No minor-mode markov table exists yet", 400)
		return
	}
	if input.Key == "" {
		input.Key = "C"
	}

	seed := time.Now().UnixNano()
	if input.Seed != nil {
		seed = *input.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	numerals, err := markov.Sequence(markov.MajorTable, rng)
	if err != nil {
		writeError(w, err.Error(), 500)
		return
	}
	chords, err := progression.Build(numerals, input.Key, true)
	if err != nil {
		writeError(w, err.Error(), 500)
		return
	}

	id := uuid.New().String()
	if os.Getenv("STORE_PROGRESSIONS") != "" {
		rec := model.ProgressionRecord{
			ID:        id,
			Key:       input.Key,
			Mode:      "major",
			Numerals:  numerals,
			CreatedAt: time.Now(),
		}
		for _, c := range chords {
			rec.Chords = append(rec.Chords, c.String())
		}
		db.SaveProgression(rec)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(progressionResponse(id, input.Key, "major", numerals, chords))
}

func HandleGetProgression(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	rec, ok := db.GetProgression(id)
	if !ok {
		writeError(w, "No progression with id "+id, 404)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/harmonize", HandleHarmonize).Methods("POST")
	router.HandleFunc("/generate", HandleGenerate).Methods("POST")
	router.HandleFunc("/progressions/{id}", HandleGetProgression).Methods("GET")

	handler := cors.Default().Handler(router)
	fmt.Println("Listening on :8080")
	log.Fatal(http.ListenAndServe(":8080", handler))
}
