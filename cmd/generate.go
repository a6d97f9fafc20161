package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jsphweid/chorale/db"
	"github.com/jsphweid/chorale/markov"
	"github.com/jsphweid/chorale/model"
	"github.com/jsphweid/chorale/progression"
	"github.com/spf13/cobra"
)

var (
	generateKey   string
	generateMinor bool
	generateSeed  int64
	generateStore bool
)

func init() {
	generateCmd.Flags().StringVar(&generateKey, "key", "C", "key to generate in")
	generateCmd.Flags().BoolVar(&generateMinor, "minor", false, "generate in minor")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "random seed, 0 means time-based")
	generateCmd.Flags().BoolVar(&generateStore, "store", false, "store the progression record in DynamoDB")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Samples a random progression and writes MIDI files",
	Long:  `Samples a roman-numeral progression from the markov model, voices it and writes MIDI files`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := generate(generateKey, generateMinor, generateSeed, generateStore); err != nil {
			fmt.Printf("Could not generate: %v\n", err)
			os.Exit(1)
		}
	},
}

func generate(key string, minor bool, seed int64, store bool) error {
	if minor {
		// the shipped markov model only covers major
		return fmt.Errorf("no minor-mode markov table exists yet")
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	numerals, err := markov.Sequence(markov.MajorTable, rng)
	if err != nil {
		return err
	}
	fmt.Printf("Progression: %v\n", strings.Join(numerals, " "))

	chords, err := progression.Build(numerals, key, !minor)
	if err != nil {
		return err
	}
	for i, c := range chords {
		fmt.Printf("%v: %v\n", i+1, c)
	}

	if err := writeMidiFiles(chords, ""); err != nil {
		return err
	}

	if store {
		rec := model.ProgressionRecord{
			ID:        uuid.New().String(),
			Key:       key,
			Mode:      "major",
			Numerals:  numerals,
			CreatedAt: time.Now(),
		}
		for _, c := range chords {
			rec.Chords = append(rec.Chords, c.String())
		}
		db.SaveProgression(rec)
		fmt.Printf("Stored progression %v\n", rec.ID)
	}
	return nil
}
