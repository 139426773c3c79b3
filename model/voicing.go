package model

// Voicing is the upper voices of a chord as MIDI note numbers, sorted
// ascending with no duplicates. The bass is carried separately and only
// joins for full-chord checks.
type Voicing = []int

// Step is one harmony of a progression, already reduced by whatever
// theory layer produced it. PitchClasses is in chord-structure order
// (root first), possibly with repeats; Bass is a concrete MIDI note.
type Step struct {
	Label        string `json:"label"`
	PitchClasses []int  `json:"pitch_classes"`
	Bass         int    `json:"bass"`
}

// VoicingResult is the per-step output of voice leading. FullChord is
// Bass merged into Upper, sorted ascending.
type VoicingResult struct {
	Label     string `json:"label"`
	Bass      int    `json:"bass"`
	Upper     []int  `json:"upper"`
	FullChord []int  `json:"full_chord"`
}

type MovementStats struct {
	Transitions   int     `json:"transitions"`
	TotalMovement int     `json:"total_movement"`
	AvgMovement   float64 `json:"avg_movement_per_transition"`
}

type ProgressionReport struct {
	OK       bool          `json:"ok"`
	Errors   []string      `json:"errors"`
	Warnings []string      `json:"warnings"`
	Stats    MovementStats `json:"stats"`
}
