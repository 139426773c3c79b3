// Package voicing turns unordered pitch-class sets into concrete,
// well-spaced MIDI voicings by exhaustive search.
//
// A chord is a point in Z^n and a voice leading is the displacement
// vector d = v2 - v1. Good voice leading minimizes total displacement
// subject to hard constraints; parallel fifths and octaves are forbidden
// directions in displacement space.
package voicing

import (
	"fmt"
	"sort"

	"github.com/waynewangyuxuan/Prelude-Zero/constants"
	"github.com/waynewangyuxuan/Prelude-Zero/interval"
	"github.com/waynewangyuxuan/Prelude-Zero/model"
	"github.com/waynewangyuxuan/Prelude-Zero/util"
)

// PitchOptions returns every MIDI note of a pitch class within
// [low, high], lowest first.
func PitchOptions(pc, low, high int) []int {
	var options []int
	midi := low + (((pc-low)%12)+12)%12
	for midi <= high {
		options = append(options, midi)
		midi += 12
	}
	return options
}

// canonicalKey identifies a candidate by its sorted notes, e.g.
// "55-60-64". Rotations across octaves are distinct voicings, the same
// multiset of notes is not.
func canonicalKey(notes []int) string {
	var res string
	for i, note := range notes {
		res += fmt.Sprintf("%v", note)
		if i < len(notes)-1 {
			res += "-"
		}
	}
	return res
}

// Enumerate generates every voicing of a set of pitch classes where each
// class lands at exactly one octave within [low, high]. Candidates come
// back sorted ascending (no crossing by construction), with no duplicate
// notes, deduplicated by note multiset, in stable first-seen order.
//
// If some pitch class has no realization in the range, the range widens
// by an octave on both sides and the search retries. Each widening adds
// at least one realization per class, so this terminates.
func Enumerate(pcs []int, low, high int) []model.Voicing {
	if len(pcs) == 0 {
		return nil
	}

	options := make([][]int, len(pcs))
	for i, pc := range pcs {
		options[i] = PitchOptions(pc, low, high)
		if len(options[i]) == 0 {
			return Enumerate(pcs, low-12, high+12)
		}
	}

	var res []model.Voicing
	seen := make(map[string]bool)
	combo := make([]int, len(pcs))

	var walk func(i int)
	walk = func(i int) {
		if i == len(pcs) {
			v := make([]int, len(combo))
			copy(v, combo)
			sort.Ints(v)
			for k := 1; k < len(v); k++ {
				if v[k] == v[k-1] {
					return // duplicate note
				}
			}
			key := canonicalKey(v)
			if !seen[key] {
				seen[key] = true
				res = append(res, v)
			}
			return
		}
		for _, midi := range options[i] {
			combo[i] = midi
			walk(i + 1)
		}
	}
	walk(0)
	return res
}

// SpacingOK reports whether every pair of adjacent voices sits within
// maxGap semitones. Only adjacent gaps count; the bass-to-tenor gap is
// checked nowhere because the bass routinely sits far below.
func SpacingOK(v model.Voicing, maxGap int) bool {
	for i := 1; i < len(v); i++ {
		if v[i]-v[i-1] > maxGap {
			return false
		}
	}
	return true
}

// AboveBass reports whether every upper voice is strictly above the bass.
func AboveBass(v model.Voicing, bass int) bool {
	for _, n := range v {
		if n <= bass {
			return false
		}
	}
	return true
}

// HasParallels checks two same-length, voice-aligned chords for parallel
// fifths or octaves:
//
//	d = v2 - v1
//	voices i, j are parallel when d[i] == d[j] != 0 and
//	|v1[j] - v1[i]| mod 12 is 0 or 7
//
// Equal nonzero displacement is true parallel motion; similar motion by
// different amounts does not count here. Different voice counts can't be
// compared and return false.
func HasParallels(v1, v2 model.Voicing) bool {
	if len(v1) != len(v2) {
		return false
	}
	for i := 0; i < len(v1); i++ {
		for j := i + 1; j < len(v1); j++ {
			d1 := v2[i] - v1[i]
			d2 := v2[j] - v1[j]
			if d1 == d2 && d1 != 0 && interval.Perfect[interval.Class(v1[i], v1[j])] {
				return true
			}
		}
	}
	return false
}

// ParallelsDetail is HasParallels with a description per offending pair.
func ParallelsDetail(v1, v2 model.Voicing) []string {
	var issues []string
	if len(v1) != len(v2) {
		return issues
	}
	for i := 0; i < len(v1); i++ {
		for j := i + 1; j < len(v1); j++ {
			d1 := v2[i] - v1[i]
			d2 := v2[j] - v1[j]
			if d1 != d2 || d1 == 0 {
				continue
			}
			switch interval.Class(v1[i], v1[j]) {
			case interval.PerfectFifth:
				issues = append(issues, fmt.Sprintf(
					"parallel 5th voices %v,%v: %v→%v, %v→%v, d=%v",
					i, j, v1[i], v2[i], v1[j], v2[j], d1))
			case interval.PerfectOctave:
				issues = append(issues, fmt.Sprintf(
					"parallel 8ve voices %v,%v: %v→%v, %v→%v, d=%v",
					i, j, v1[i], v2[i], v1[j], v2[j], d1))
			}
		}
	}
	return issues
}

// Options bound the voicing search. The zero value means defaults
// (G3–G5, max spacing an octave).
type Options struct {
	Low        int
	High       int
	MaxSpacing int
}

func (o Options) withDefaults() Options {
	if o.Low == 0 && o.High == 0 {
		o.Low = constants.UpperLow
		o.High = constants.UpperHigh
	}
	if o.MaxSpacing == 0 {
		o.MaxSpacing = constants.MaxSpacing
	}
	return o
}

// WithBass merges a bass note into a voicing, sorted ascending.
func WithBass(v model.Voicing, bass int) model.Voicing {
	full := make([]int, 0, len(v)+1)
	full = append(full, bass)
	full = append(full, v...)
	sort.Ints(full)
	return full
}

// FindBest picks one voicing of pcs above bass. prev is the previous
// chord's upper voices (nil for the first chord) and prevBass its bass
// (ignored when negative).
//
// The search never fails; it relaxes in stages instead:
//
//  1. enumerate with the lower bound raised to bass+1
//  2. filter by spacing and above-bass; if empty, above-bass only; if
//     still empty, keep everything
//  3. with a previous chord, drop candidates whose full chord (bass
//     included) forms a parallel fifth or octave against the previous
//     full chord — unless that drops everything, in which case smooth
//     motion wins and the parallels are left for the validator to report
//  4. score and take the deterministic minimum
//
// When even enumeration comes back empty (no pitch classes), a naive
// per-class placement near the range middle is returned.
func FindBest(pcs []int, bass int, prev model.Voicing, prevBass int, opts Options) model.Voicing {
	o := opts.withDefaults()
	effLow := bass + 1
	if o.Low > effLow {
		effLow = o.Low
	}

	candidates := Enumerate(pcs, effLow, o.High)
	if len(candidates) == 0 {
		return fallbackVoicing(pcs, effLow, o.High)
	}

	var valid []model.Voicing
	for _, c := range candidates {
		if SpacingOK(c, o.MaxSpacing) && AboveBass(c, bass) {
			valid = append(valid, c)
		}
	}
	if len(valid) == 0 {
		for _, c := range candidates {
			if AboveBass(c, bass) {
				valid = append(valid, c)
			}
		}
	}
	if len(valid) == 0 {
		valid = candidates
	}

	// Parallel filter runs on the full chord so bass-to-upper parallels
	// count the same as upper-to-upper.
	if len(prev) > 0 {
		prevFull := prev
		if prevBass >= 0 {
			prevFull = WithBass(prev, prevBass)
		}
		var clean []model.Voicing
		for _, c := range valid {
			full := WithBass(c, bass)
			if len(full) != len(prevFull) || !HasParallels(prevFull, full) {
				clean = append(clean, c)
			}
		}
		if len(clean) > 0 {
			valid = clean
		}
	}

	best := valid[0]
	bestScore := score(valid[0], prev, effLow, o.High)
	for _, c := range valid[1:] {
		if s := score(c, prev, effLow, o.High); s < bestScore {
			best = c
			bestScore = s
		}
	}
	return best
}

// score ranks a candidate, lower is better. With a previous voicing of
// equal size, total voice movement dominates and span breaks ties toward
// compactness. Otherwise candidates compete on compactness around the
// center of the range.
func score(c, prev model.Voicing, low, high int) float64 {
	span := c[len(c)-1] - c[0]

	if len(prev) > 0 {
		if len(c) == len(prev) {
			var movement int
			for i := range c {
				movement += util.Abs(c[i] - prev[i])
			}
			return float64(movement*10 + span)
		}
		// Different voice counts aren't comparable note-to-note.
		return float64(span * 10)
	}

	mid := float64(low+high) / 2
	var sum int
	for _, n := range c {
		sum += n
	}
	centerDist := float64(sum)/float64(len(c)) - mid
	if centerDist < 0 {
		centerDist = -centerDist
	}
	return centerDist + float64(span)*0.5
}

// fallbackVoicing places each class at its nearest slot above the middle
// of the range. Quality is best-effort; the point is that the caller
// always gets a voicing back.
func fallbackVoicing(pcs []int, low, high int) model.Voicing {
	mid := (low + high) / 2
	res := make([]int, 0, len(pcs))
	for _, pc := range pcs {
		res = append(res, mid+(((pc-mid)%12)+12)%12)
	}
	sort.Ints(res)
	return res
}
