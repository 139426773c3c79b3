// Package score holds multi-voice material and runs the counterpoint
// engine over every voice pair.
package score

import (
	"sort"

	"github.com/waynewangyuxuan/Prelude-Zero/constants"
	"github.com/waynewangyuxuan/Prelude-Zero/counterpoint"
	"github.com/waynewangyuxuan/Prelude-Zero/model"
)

// Voice is a named melodic line.
type Voice struct {
	Name  string
	Notes []model.Note
}

// Evaluate validates counterpoint between every pair of voices that have
// any notes, and tallies errors and warnings per pair and in total.
func Evaluate(voices []Voice) model.ScoreReport {
	var active []Voice
	for _, v := range voices {
		if len(v.Notes) > 0 {
			active = append(active, v)
		}
	}

	report := model.ScoreReport{VoicesEntered: len(active)}
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			r := counterpoint.Validate(active[i].Notes, active[j].Notes)
			report.Pairs = append(report.Pairs, model.PairReport{
				Voices: [2]string{active[i].Name, active[j].Name},
				Report: r,
			})
			report.TotalErrors += len(r.Errors)
			report.TotalWarnings += len(r.Warnings)
		}
	}
	report.OK = report.TotalErrors == 0
	return report
}

// Events flattens the voices into one onset-sorted list of playable
// events. Ordering is stable, so simultaneous notes keep voice order.
func Events(voices []Voice) []model.Event {
	var events []model.Event
	for _, voice := range voices {
		for _, n := range voice.Notes {
			events = append(events, model.Event{
				Voice:    voice.Name,
				Midi:     n.Midi,
				Onset:    n.Onset,
				Duration: n.Duration,
				Velocity: constants.DefaultVelocity,
			})
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Onset < events[j].Onset
	})
	return events
}
