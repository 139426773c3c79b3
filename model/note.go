package model

// Note is one note of a melodic line. Onset and Duration are in beats,
// not wall clock. Notes are constructed once and never mutated.
type Note struct {
	Midi     int     `json:"midi"`
	Onset    float64 `json:"onset"`
	Duration float64 `json:"duration"`
}

// PC returns the note's pitch class (0–11).
func (n Note) PC() int {
	return ((n.Midi % 12) + 12) % 12
}

type Severity string

const (
	Error   Severity = "error"   // hard violation (parallel 5ths, etc.)
	Warning Severity = "warning" // stylistic concern
	Info    Severity = "info"    // observation
)

// Issue is one finding of a counterpoint rule. Beat is the index of the
// aligned timepoint (or note transition) that triggered it.
type Issue struct {
	Severity Severity `json:"severity"`
	Beat     int      `json:"beat"`
	Rule     string   `json:"rule"`
	Detail   string   `json:"detail"`
}

// CounterpointReport is the result of running every rule on a voice
// pair. OK means no errors; warnings and infos don't fail a check.
type CounterpointReport struct {
	OK          bool    `json:"ok"`
	Errors      []Issue `json:"errors"`
	Warnings    []Issue `json:"warnings"`
	Infos       []Issue `json:"infos"`
	TotalIssues int     `json:"total_issues"`
}

// Event is a flattened, playable note with its voice name attached.
type Event struct {
	Voice    string  `json:"voice"`
	Midi     int     `json:"midi"`
	Onset    float64 `json:"onset"`
	Duration float64 `json:"duration"`
	Velocity int     `json:"velocity"`
}

// PairReport holds the counterpoint report for one voice pair.
type PairReport struct {
	Voices [2]string          `json:"voices"`
	Report CounterpointReport `json:"report"`
}

// ScoreReport aggregates counterpoint validation over every pair of
// active voices in a score.
type ScoreReport struct {
	OK            bool         `json:"ok"`
	VoicesEntered int          `json:"voices_entered"`
	Pairs         []PairReport `json:"pairs"`
	TotalErrors   int          `json:"total_errors"`
	TotalWarnings int          `json:"total_warnings"`
}
