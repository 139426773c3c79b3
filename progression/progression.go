// Package progression drives the voicing optimizer across a whole chord
// progression and audits the result.
package progression

import (
	"fmt"
	"math"

	"github.com/waynewangyuxuan/Prelude-Zero/constants"
	"github.com/waynewangyuxuan/Prelude-Zero/model"
	"github.com/waynewangyuxuan/Prelude-Zero/util"
	"github.com/waynewangyuxuan/Prelude-Zero/voicing"
)

// VoiceLead voices each step with exactly nUpper upper voices. Only the
// previous voicing and bass carry across steps; each step is otherwise
// independent.
func VoiceLead(steps []model.Step, nUpper int, opts voicing.Options) []model.VoicingResult {
	results := make([]model.VoicingResult, 0, len(steps))
	var prev model.Voicing
	prevBass := -1

	for _, step := range steps {
		bassPC := ((step.Bass % 12) + 12) % 12
		upperPCs := upperPitchClasses(step.PitchClasses, nUpper, bassPC)

		upper := voicing.FindBest(upperPCs, step.Bass, prev, prevBass, opts)
		results = append(results, model.VoicingResult{
			Label:     step.Label,
			Bass:      step.Bass,
			Upper:     upper,
			FullChord: voicing.WithBass(upper, step.Bass),
		})

		prev = upper
		prevBass = step.Bass
	}
	return results
}

// upperPitchClasses reduces a chord's classes to what the upper voices
// should carry: drop the bass class when enough others remain, then pad
// or trim to exactly n.
func upperPitchClasses(all []int, n, bassPC int) []int {
	uniq := uniqueSorted(all)

	upper := make([]int, 0, len(uniq))
	for _, pc := range uniq {
		if pc != bassPC {
			upper = append(upper, pc)
		}
	}
	if len(upper) < 2 {
		upper = uniq
	}
	return ensureN(upper, n, bassPC, all)
}

// ensureN always yields exactly n pitch classes. Too many: prefer the
// classes that differ from the bass, in order. Too few: add doublings in
// priority order root → fifth → third, cycling as needed. all is the
// chord in structure order (root first) and supplies the doubling tones.
func ensureN(pcs []int, n, bassPC int, all []int) []int {
	if len(pcs) == n {
		return pcs
	}

	if len(pcs) > n {
		var nonBass []int
		for _, pc := range pcs {
			if pc != bassPC {
				nonBass = append(nonBass, pc)
			}
		}
		if len(nonBass) >= n {
			return nonBass[:n]
		}
		return pcs[:n]
	}

	doubling := doublingOrder(all)
	if len(doubling) == 0 {
		doubling = []int{bassPC}
	}
	res := append([]int{}, pcs...)
	for idx := 0; len(res) < n; idx++ {
		res = append(res, doubling[idx%len(doubling)])
	}
	return res
}

// doublingOrder is root, fifth, third — the SATB doubling preference.
// Chord-structure order is root, third, fifth, (seventh...), so the
// fifth sits at index 2 when present.
func doublingOrder(all []int) []int {
	var order []int
	if len(all) > 0 {
		order = append(order, all[0])
	}
	if len(all) > 2 {
		order = append(order, all[2])
	}
	if len(all) > 1 {
		order = append(order, all[1])
	}
	return order
}

func uniqueSorted(pcs []int) []int {
	seen := make(map[int]bool)
	for _, pc := range pcs {
		seen[pc] = true
	}
	return util.SortedKeys(seen)
}

// Validate audits a voiced progression: parallel fifths and octaves
// between consecutive full chords are errors, crossing and wide spacing
// within a single chord are warnings, and movement stats ride along.
func Validate(results []model.VoicingResult) model.ProgressionReport {
	var errors, warnings []string
	var transitions, totalMovement int

	for i, r := range results {
		for _, w := range crossingWarnings(r.FullChord) {
			warnings = append(warnings, fmt.Sprintf("m.%v: %v", i+1, w))
		}
		for _, w := range spacingWarnings(r.FullChord, constants.MaxSpacing) {
			warnings = append(warnings, fmt.Sprintf("m.%v: %v", i+1, w))
		}

		if i+1 >= len(results) {
			continue
		}
		next := results[i+1]
		if len(r.FullChord) != len(next.FullChord) {
			continue // different voice counts aren't comparable
		}
		transitions++
		for k := range r.FullChord {
			totalMovement += util.Abs(next.FullChord[k] - r.FullChord[k])
		}
		for _, d := range voicing.ParallelsDetail(r.FullChord, next.FullChord) {
			errors = append(errors, fmt.Sprintf("m.%v→%v: %v", i+1, i+2, d))
		}
	}

	var avg float64
	if transitions > 0 {
		avg = math.Round(float64(totalMovement)/float64(transitions)*10) / 10
	}
	return model.ProgressionReport{
		OK:       len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
		Stats: model.MovementStats{
			Transitions:   transitions,
			TotalMovement: totalMovement,
			AvgMovement:   avg,
		},
	}
}

func crossingWarnings(chord []int) []string {
	var res []string
	for i := 0; i+1 < len(chord); i++ {
		if chord[i] >= chord[i+1] {
			res = append(res, fmt.Sprintf(
				"voice crossing: voice %v (%v) >= voice %v (%v)",
				i, chord[i], i+1, chord[i+1]))
		}
	}
	return res
}

// spacingWarnings skips the bass-to-tenor gap, same as the search filter.
func spacingWarnings(chord []int, maxGap int) []string {
	var res []string
	for i := 1; i+1 < len(chord); i++ {
		gap := chord[i+1] - chord[i]
		if gap > maxGap {
			res = append(res, fmt.Sprintf(
				"wide spacing: voices %v,%v are %v semitones apart (max %v)",
				i, i+1, gap, maxGap))
		}
	}
	return res
}
