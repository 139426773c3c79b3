package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/waynewangyuxuan/Prelude-Zero/constants"
	"github.com/waynewangyuxuan/Prelude-Zero/midi"
	"github.com/waynewangyuxuan/Prelude-Zero/model"
	"github.com/waynewangyuxuan/Prelude-Zero/progression"
	"github.com/waynewangyuxuan/Prelude-Zero/voicing"
)

var (
	voiceNUpper  int
	voiceOut     string
	voiceMidiOut string
	voiceBPM     float64
)

func init() {
	voiceCmd.Flags().IntVar(&voiceNUpper, "upper", 3, "number of upper voices")
	voiceCmd.Flags().StringVar(&voiceOut, "out", "", "write results JSON here instead of stdout")
	voiceCmd.Flags().StringVar(&voiceMidiOut, "midi", "", "also write a MIDI file (use 'auto' for a generated name)")
	voiceCmd.Flags().Float64Var(&voiceBPM, "bpm", constants.DefaultBPM, "tempo for MIDI output")
	rootCmd.AddCommand(voiceCmd)
}

var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Voices a progression",
	Long:  `Voices a progression from a JSON file of steps`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg: path to a progression JSON file")
		}
		runVoice(args[0])
	},
}

func readSteps(path string) []model.Step {
	data, err := os.ReadFile(path)
	if err != nil {
		panic("Could not read progression file: " + err.Error())
	}
	var steps []model.Step
	if err := json.Unmarshal(data, &steps); err != nil {
		panic("Could not parse progression file: " + err.Error())
	}
	return steps
}

func runVoice(path string) {
	steps := readSteps(path)
	results := progression.VoiceLead(steps, voiceNUpper, voicing.Options{})
	report := progression.Validate(results)

	data, err := json.MarshalIndent(model.VoiceResponse{Results: results, Report: report}, "", "  ")
	if err != nil {
		panic(err)
	}
	if voiceOut == "" {
		fmt.Println(string(data))
	} else if err := os.WriteFile(voiceOut, data, 0644); err != nil {
		panic("Could not write results: " + err.Error())
	}

	if voiceMidiOut != "" {
		name := voiceMidiOut
		if name == "auto" {
			name = uuid.New().String() + ".mid"
		}
		if err := midi.WriteFile(midi.FromProgression(results, voiceBPM), name); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote MIDI: %v\n", name)
	}
}
