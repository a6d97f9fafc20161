package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chorale",
	Short: "Four-part chorale generator",
	Long:  `Generates four-part chorale progressions with classical voice leading and renders them to MIDI.`,
}

func Execute() {
	// optional local overrides for OUTPUT_PATH etc.
	godotenv.Load()
	cobra.CheckErr(rootCmd.Execute())
}
