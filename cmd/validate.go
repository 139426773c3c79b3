package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/waynewangyuxuan/Prelude-Zero/midi"
	"github.com/waynewangyuxuan/Prelude-Zero/model"
	"github.com/waynewangyuxuan/Prelude-Zero/score"
)

var (
	validateMidiOut string
	validateBPM     float64
)

func init() {
	validateCmd.Flags().StringVar(&validateMidiOut, "midi", "", "also render the voices to a MIDI file")
	validateCmd.Flags().Float64Var(&validateBPM, "bpm", 90, "tempo for MIDI output")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validates counterpoint",
	Long:  `Validates counterpoint between the voices of a JSON score; exits nonzero on rule errors`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg: path to a score JSON file")
		}
		runValidate(args[0])
	},
}

func readVoices(path string) []score.Voice {
	data, err := os.ReadFile(path)
	if err != nil {
		panic("Could not read score file: " + err.Error())
	}
	var body model.ValidateRequestBody
	if err := json.Unmarshal(data, &body); err != nil {
		panic("Could not parse score file: " + err.Error())
	}
	voices := make([]score.Voice, 0, len(body.Voices))
	for _, v := range body.Voices {
		voices = append(voices, score.Voice{Name: v.Name, Notes: v.Notes})
	}
	return voices
}

func runValidate(path string) {
	voices := readVoices(path)
	report := score.Evaluate(voices)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(data))

	if validateMidiOut != "" {
		events := score.Events(voices)
		if err := midi.WriteFile(midi.FromEvents(events, validateBPM), validateMidiOut); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote MIDI: %v\n", validateMidiOut)
	}

	if !report.OK {
		os.Exit(1)
	}
}
