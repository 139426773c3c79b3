package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/waynewangyuxuan/Prelude-Zero/model"
	"github.com/waynewangyuxuan/Prelude-Zero/voicing"
)

func TestEnsureNReducesPreferringNonBass(t *testing.T) {
	all := []int{0, 2, 4, 7, 11}
	got := ensureN([]int{0, 2, 4, 7, 11}, 3, 0, all)
	assert.Equal(t, []int{2, 4, 7}, got)
}

func TestEnsureNDoublesRootFifthThird(t *testing.T) {
	// One class in, three out: the doubling order is root, fifth, third.
	all := []int{0, 4, 7} // C major in structure order
	got := ensureN([]int{0}, 3, 7, all)
	assert.Equal(t, []int{0, 0, 7}, got)
}

func TestEnsureNExactCountUnchanged(t *testing.T) {
	got := ensureN([]int{4, 7, 0}, 3, 0, []int{0, 4, 7})
	assert.Equal(t, []int{4, 7, 0}, got)
}

func TestEnsureNAlwaysYieldsN(t *testing.T) {
	cases := []struct {
		pcs []int
		n   int
	}{
		{[]int{0}, 3},
		{[]int{0, 4}, 4},
		{[]int{0, 2, 4, 5, 7, 9}, 3},
		{[]int{0, 4, 7}, 3},
	}
	for _, c := range cases {
		got := ensureN(c.pcs, c.n, 0, []int{0, 4, 7})
		assert.Len(t, got, c.n)
	}
}

func cMajorToV7() []model.Step {
	return []model.Step{
		{Label: "I", PitchClasses: []int{0, 4, 7}, Bass: 48},      // C3
		{Label: "V7", PitchClasses: []int{7, 11, 2, 5}, Bass: 55}, // G3
	}
}

func TestVoiceLeadShapes(t *testing.T) {
	results := VoiceLead(cMajorToV7(), 3, voicing.Options{})

	assert := assert.New(t)
	assert.Len(results, 2)
	for _, r := range results {
		assert.Len(r.Upper, 3)
		assert.Len(r.FullChord, 4)
		assert.Equal(r.FullChord[0], r.Bass)
		for i := 1; i < len(r.FullChord); i++ {
			assert.Greater(r.FullChord[i], r.FullChord[i-1])
		}
	}
	assert.Equal("I", results[0].Label)
	assert.Equal("V7", results[1].Label)
}

func TestVoiceLeadAvoidsParallels(t *testing.T) {
	results := VoiceLead(cMajorToV7(), 3, voicing.Options{})
	report := Validate(results)

	assert := assert.New(t)
	assert.True(report.OK)
	assert.Empty(report.Errors)
	assert.Equal(1, report.Stats.Transitions)
}

func TestVoiceLeadDoublesWhenBassClassDropped(t *testing.T) {
	// A bare triad with the bass on the root: upper voices drop the
	// bass class, leaving two, so one gets doubled back in.
	steps := []model.Step{{Label: "I", PitchClasses: []int{0, 4, 7}, Bass: 48}}
	results := VoiceLead(steps, 3, voicing.Options{})

	counts := make(map[int]int)
	for _, n := range results[0].Upper {
		counts[n%12]++
	}
	assert := assert.New(t)
	assert.Len(results[0].Upper, 3)
	assert.Equal(1, counts[0])
	assert.Equal(1, counts[4])
	assert.Equal(1, counts[7])
}

func TestValidateFlagsTextbookParallel(t *testing.T) {
	// Voices 0 and 1 (bass and tenor) a fifth apart move up a whole
	// step together; the other voices move independently.
	results := []model.VoicingResult{
		{Label: "a", Bass: 48, Upper: []int{55, 64, 70}, FullChord: []int{48, 55, 64, 70}},
		{Label: "b", Bass: 50, Upper: []int{57, 64, 69}, FullChord: []int{50, 57, 64, 69}},
	}
	report := Validate(results)

	assert := assert.New(t)
	assert.False(report.OK)
	assert.Len(report.Errors, 1)
	assert.Contains(report.Errors[0], "parallel 5th")
	assert.Contains(report.Errors[0], "m.1→2")
	assert.Equal(1, report.Stats.Transitions)
	assert.Equal(5, report.Stats.TotalMovement)
	assert.Equal(5.0, report.Stats.AvgMovement)
}

func TestValidateWarnsOnWideSpacingAndCrossing(t *testing.T) {
	results := []model.VoicingResult{
		// 50→64 is 14 semitones between adjacent upper voices; the
		// bass-to-tenor gap never counts.
		{Label: "wide", Bass: 30, Upper: []int{50, 64, 67}, FullChord: []int{30, 50, 64, 67}},
	}
	report := Validate(results)

	assert := assert.New(t)
	assert.True(report.OK) // warnings don't fail a progression
	assert.Len(report.Warnings, 1)
	assert.Contains(report.Warnings[0], "wide spacing")

	crossed := []model.VoicingResult{
		{Label: "x", Bass: 60, Upper: []int{58, 64}, FullChord: []int{60, 58, 64}},
	}
	report = Validate(crossed)
	assert.NotEmpty(report.Warnings)
	assert.Contains(report.Warnings[0], "voice crossing")
}

func TestValidateSkipsMismatchedVoiceCounts(t *testing.T) {
	results := []model.VoicingResult{
		{Label: "a", Bass: 48, Upper: []int{55, 64}, FullChord: []int{48, 55, 64}},
		{Label: "b", Bass: 50, Upper: []int{57, 64, 69}, FullChord: []int{50, 57, 64, 69}},
	}
	report := Validate(results)

	assert := assert.New(t)
	assert.True(report.OK)
	assert.Equal(0, report.Stats.Transitions)
}
