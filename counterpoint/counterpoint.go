// Package counterpoint audits two-voice counterpoint (note-against-note,
// first species extended) against standard Baroque rules. It does not
// generate anything — only validates.
//
// Every rule is a pure function from note sequences to issues; rules
// never consult each other, which keeps them composable and separately
// testable.
package counterpoint

import (
	"fmt"
	"math"

	"github.com/waynewangyuxuan/Prelude-Zero/interval"
	"github.com/waynewangyuxuan/Prelude-Zero/model"
	"github.com/waynewangyuxuan/Prelude-Zero/util"
)

type pair struct {
	a, b *model.Note
}

// alignPairs lines two voices up on the sorted union of their onsets. At
// each onset a voice contributes the note that starts exactly there, or
// else the last note that started earlier, carried forward. A nil side
// means the voice hasn't entered yet.
//
// The carry-forward is deliberately lenient: it never checks whether the
// carried note's duration actually reaches the new onset, so a note that
// has already ended can still be judged against. Downstream material
// depends on this behavior; don't tighten it quietly.
func alignPairs(v1, v2 []model.Note) []pair {
	onsets := make(map[float64]bool)
	m1 := make(map[float64]*model.Note)
	m2 := make(map[float64]*model.Note)
	for i := range v1 {
		m1[v1[i].Onset] = &v1[i]
		onsets[v1[i].Onset] = true
	}
	for i := range v2 {
		m2[v2[i].Onset] = &v2[i]
		onsets[v2[i].Onset] = true
	}

	var pairs []pair
	var last1, last2 *model.Note
	for _, t := range util.SortedKeys(onsets) {
		n1 := m1[t]
		n2 := m2[t]
		if n1 == nil {
			n1 = last1
		}
		if n2 == nil {
			n2 = last2
		}
		pairs = append(pairs, pair{n1, n2})
		if n1 != nil {
			last1 = n1
		}
		if n2 != nil {
			last2 = n2
		}
	}
	return pairs
}

func perfectName(class int) string {
	if class == interval.PerfectOctave {
		return "8ve"
	}
	return "5th"
}

// CheckParallels detects parallel fifths and octaves: two consecutive
// aligned timepoints holding the same perfect interval class while both
// voices move nonzero amounts in the same direction.
func CheckParallels(v1, v2 []model.Note) []model.Issue {
	var issues []model.Issue
	pairs := alignPairs(v1, v2)

	for i := 0; i+1 < len(pairs); i++ {
		a1, a2 := pairs[i].a, pairs[i].b
		b1, b2 := pairs[i+1].a, pairs[i+1].b
		if a1 == nil || a2 == nil || b1 == nil || b2 == nil {
			continue
		}

		int1 := interval.Class(a1.Midi, a2.Midi)
		int2 := interval.Class(b1.Midi, b2.Midi)
		if !interval.Perfect[int1] || !interval.Perfect[int2] || int1 != int2 {
			continue
		}

		d1 := b1.Midi - a1.Midi
		d2 := b2.Midi - a2.Midi
		if d1 != 0 && d2 != 0 && util.Sign(d1) == util.Sign(d2) {
			issues = append(issues, model.Issue{
				Severity: model.Error,
				Beat:     i,
				Rule:     "parallel_perfect",
				Detail: fmt.Sprintf("parallel %v: %v,%v → %v,%v",
					perfectName(int1),
					interval.NoteName(a1.Midi), interval.NoteName(a2.Midi),
					interval.NoteName(b1.Midi), interval.NoteName(b2.Midi)),
			})
		}
	}
	return issues
}

// CheckDirect detects direct (hidden) fifths and octaves: both voices
// arriving at a perfect interval by similar motion. In strict style
// that's only acceptable when one voice arrives by step, so the issue
// fires when the smaller of the two movements exceeds two semitones.
func CheckDirect(v1, v2 []model.Note) []model.Issue {
	var issues []model.Issue
	pairs := alignPairs(v1, v2)

	for i := 0; i+1 < len(pairs); i++ {
		a1, a2 := pairs[i].a, pairs[i].b
		b1, b2 := pairs[i+1].a, pairs[i+1].b
		if a1 == nil || a2 == nil || b1 == nil || b2 == nil {
			continue
		}

		int2 := interval.Class(b1.Midi, b2.Midi)
		d1 := b1.Midi - a1.Midi
		d2 := b2.Midi - a2.Midi

		if interval.Perfect[int2] && d1 != 0 && d2 != 0 && util.Sign(d1) == util.Sign(d2) {
			if util.Min(util.Abs(d1), util.Abs(d2)) > 2 {
				issues = append(issues, model.Issue{
					Severity: model.Warning,
					Beat:     i,
					Rule:     "direct_perfect",
					Detail: fmt.Sprintf("direct %v: → %v,%v (both leap)",
						perfectName(int2),
						interval.NoteName(b1.Midi), interval.NoteName(b2.Midi)),
				})
			}
		}
	}
	return issues
}

// CheckConsonance flags dissonant simultaneities on strong beats.
// strongBeats is a set of beat positions within a 4-beat bar; nil means
// beats 1 and 3 (onsets 0 and 2). Dissonance off the strong beats is
// assumed to be passing and goes unflagged.
func CheckConsonance(v1, v2 []model.Note, strongBeats map[float64]bool) []model.Issue {
	if strongBeats == nil {
		strongBeats = map[float64]bool{0: true, 2: true}
	}

	var issues []model.Issue
	for i, p := range alignPairs(v1, v2) {
		if p.a == nil || p.b == nil {
			continue
		}
		if !strongBeats[math.Mod(p.a.Onset, 4)] {
			continue
		}
		if !interval.IsConsonant(p.a.Midi, p.b.Midi) {
			issues = append(issues, model.Issue{
				Severity: model.Warning,
				Beat:     i,
				Rule:     "dissonance_on_strong_beat",
				Detail: fmt.Sprintf("dissonance (ic=%v) on strong beat: %v vs %v at beat %.1f",
					interval.Class(p.a.Midi, p.b.Midi),
					interval.NoteName(p.a.Midi), interval.NoteName(p.b.Midi),
					p.a.Onset),
			})
		}
	}
	return issues
}

// CheckCrossing flags timepoints where the nominal upper voice sounds
// below the nominal lower one. Bach does this on purpose sometimes, so
// it's an observation, not a violation.
func CheckCrossing(upper, lower []model.Note) []model.Issue {
	var issues []model.Issue
	for i, p := range alignPairs(upper, lower) {
		if p.a == nil || p.b == nil {
			continue
		}
		if p.a.Midi < p.b.Midi {
			issues = append(issues, model.Issue{
				Severity: model.Info,
				Beat:     i,
				Rule:     "voice_crossing",
				Detail: fmt.Sprintf("upper (%v) below lower (%v) at beat %.1f",
					interval.NoteName(p.a.Midi), interval.NoteName(p.b.Midi),
					p.a.Onset),
			})
		}
	}
	return issues
}

// CheckMelody audits the intervals within a single voice: tritone leaps,
// leaps beyond an octave, seventh leaps, and leaps left hanging without
// a change of direction (gap-fill).
func CheckMelody(voice []model.Note) []model.Issue {
	var issues []model.Issue

	for i := 0; i+1 < len(voice); i++ {
		leap := util.Abs(voice[i+1].Midi - voice[i].Midi)
		switch {
		case leap == 6:
			issues = append(issues, model.Issue{
				Severity: model.Warning,
				Beat:     i,
				Rule:     "melodic_tritone",
				Detail: fmt.Sprintf("tritone leap: %v → %v",
					interval.NoteName(voice[i].Midi), interval.NoteName(voice[i+1].Midi)),
			})
		case leap > 12:
			issues = append(issues, model.Issue{
				Severity: model.Warning,
				Beat:     i,
				Rule:     "melodic_large_leap",
				Detail: fmt.Sprintf("leap > octave (%v st): %v → %v",
					leap, interval.NoteName(voice[i].Midi), interval.NoteName(voice[i+1].Midi)),
			})
		case leap == 10 || leap == 11:
			issues = append(issues, model.Issue{
				Severity: model.Warning,
				Beat:     i,
				Rule:     "melodic_seventh",
				Detail: fmt.Sprintf("seventh leap (%v st): %v → %v",
					leap, interval.NoteName(voice[i].Midi), interval.NoteName(voice[i+1].Midi)),
			})
		}
	}

	// Gap-fill: after a leap beyond 4 semitones the line should turn
	// around (or at least not keep running the same way).
	for i := 1; i+1 < len(voice); i++ {
		prev := voice[i].Midi - voice[i-1].Midi
		next := voice[i+1].Midi - voice[i].Midi
		if util.Abs(prev) > 4 && next != 0 && util.Sign(next) == util.Sign(prev) {
			issues = append(issues, model.Issue{
				Severity: model.Info,
				Beat:     i,
				Rule:     "no_gap_fill",
				Detail: fmt.Sprintf("leap (%+d) not filled: %v→%v→%v",
					prev,
					interval.NoteName(voice[i-1].Midi),
					interval.NoteName(voice[i].Midi),
					interval.NoteName(voice[i+1].Midi)),
			})
		}
	}
	return issues
}

// Validate runs every rule on a voice pair, including the melodic checks
// on each voice alone, and partitions the findings by severity. OK means
// no errors; warnings and infos are advisory.
func Validate(v1, v2 []model.Note) model.CounterpointReport {
	var all []model.Issue
	all = append(all, CheckParallels(v1, v2)...)
	all = append(all, CheckDirect(v1, v2)...)
	all = append(all, CheckConsonance(v1, v2, nil)...)
	all = append(all, CheckCrossing(v1, v2)...)
	all = append(all, CheckMelody(v1)...)
	all = append(all, CheckMelody(v2)...)

	var report model.CounterpointReport
	for _, issue := range all {
		switch issue.Severity {
		case model.Error:
			report.Errors = append(report.Errors, issue)
		case model.Warning:
			report.Warnings = append(report.Warnings, issue)
		default:
			report.Infos = append(report.Infos, issue)
		}
	}
	report.TotalIssues = len(all)
	report.OK = len(report.Errors) == 0
	return report
}
