package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/chorale/chord"
	"github.com/jsphweid/chorale/constants"
	"github.com/jsphweid/chorale/midi"
	"github.com/jsphweid/chorale/progression"
	"github.com/spf13/cobra"
)

var (
	harmonizeKey   string
	harmonizeMinor bool
	harmonizeOut   string
)

func init() {
	harmonizeCmd.Flags().StringVar(&harmonizeKey, "key", "C", "key to harmonize in, e.g. C, F#, Eb")
	harmonizeCmd.Flags().BoolVar(&harmonizeMinor, "minor", false, "harmonize in minor")
	harmonizeCmd.Flags().StringVar(&harmonizeOut, "out", "", "output directory, defaults to $OUTPUT_PATH or ./out")
	rootCmd.AddCommand(harmonizeCmd)
}

var harmonizeCmd = &cobra.Command{
	Use:   "harmonize [numerals...]",
	Short: "Voices a roman-numeral progression and writes MIDI files",
	Long:  `Voices a roman-numeral progression, e.g. "chorale harmonize I IV V7 I", and writes MIDI files`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Printf("Need at least one numeral. Known numerals: %v\n",
				strings.Join(progression.Numerals(), " "))
			os.Exit(1)
		}
		if err := harmonize(args, harmonizeKey, !harmonizeMinor, harmonizeOut); err != nil {
			fmt.Printf("Could not harmonize: %v\n", err)
			os.Exit(1)
		}
	},
}

func harmonize(numerals []string, key string, major bool, outDir string) error {
	if errs := validateNumerals(numerals); errs != nil {
		return errs
	}

	chords, err := progression.Build(numerals, key, major)
	if err != nil {
		return err
	}
	for i, c := range chords {
		fmt.Printf("%v: %v\n", i+1, c)
	}

	return writeMidiFiles(chords, outDir)
}

func validateNumerals(numerals []string) error {
	for _, numeral := range numerals {
		if _, err := progression.Lookup(numeral); err != nil {
			return fmt.Errorf("%w (known numerals: %v)",
				err, strings.Join(progression.Numerals(), " "))
		}
	}
	return nil
}

func writeMidiFiles(chords []chord.Chord, outDir string) error {
	if outDir == "" {
		outDir = constants.GetOutputDir()
	}
	if err := os.MkdirAll(outDir, 0777); err != nil {
		return err
	}

	voicesPath := filepath.Join(outDir, constants.VoicesFilename)
	if err := midi.WriteVoiceTracks(chords, voicesPath); err != nil {
		return err
	}
	fmt.Printf("Wrote %v\n", voicesPath)

	reductionPath := filepath.Join(outDir, constants.ReductionFilename)
	if err := midi.WritePianoReduction(chords, reductionPath); err != nil {
		return err
	}
	fmt.Printf("Wrote %v\n", reductionPath)
	return nil
}
