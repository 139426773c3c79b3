package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/waynewangyuxuan/Prelude-Zero/model"
)

func fixtureVoices() []Voice {
	soprano := []model.Note{
		{Midi: 67, Onset: 0, Duration: 1},
		{Midi: 69, Onset: 1, Duration: 1},
	}
	alto := []model.Note{
		{Midi: 60, Onset: 0, Duration: 1},
		{Midi: 62, Onset: 1, Duration: 1},
	}
	return []Voice{
		{Name: "soprano", Notes: soprano},
		{Name: "alto", Notes: alto},
		{Name: "tenor"}, // never enters
	}
}

func TestEvaluateCountsActiveVoices(t *testing.T) {
	report := Evaluate(fixtureVoices())

	assert := assert.New(t)
	assert.Equal(2, report.VoicesEntered)
	assert.Len(report.Pairs, 1)
	assert.Equal([2]string{"soprano", "alto"}, report.Pairs[0].Voices)
}

func TestEvaluateFindsParallelAcrossPair(t *testing.T) {
	// soprano and alto move up a whole step a fifth apart.
	report := Evaluate(fixtureVoices())

	assert := assert.New(t)
	assert.False(report.OK)
	assert.Equal(1, report.TotalErrors)
	assert.Equal("parallel_perfect", report.Pairs[0].Report.Errors[0].Rule)
}

func TestEvaluateCleanPair(t *testing.T) {
	voices := []Voice{
		{Name: "a", Notes: []model.Note{{Midi: 64, Onset: 0, Duration: 1}, {Midi: 65, Onset: 1, Duration: 1}}},
		{Name: "b", Notes: []model.Note{{Midi: 60, Onset: 0, Duration: 1}, {Midi: 57, Onset: 1, Duration: 1}}},
	}
	report := Evaluate(voices)

	assert := assert.New(t)
	assert.True(report.OK)
	assert.Equal(0, report.TotalErrors)
}

func TestEventsAreOnsetSorted(t *testing.T) {
	voices := []Voice{
		{Name: "a", Notes: []model.Note{{Midi: 60, Onset: 2, Duration: 1}, {Midi: 62, Onset: 0, Duration: 1}}},
		{Name: "b", Notes: []model.Note{{Midi: 48, Onset: 1, Duration: 2}}},
	}
	events := Events(voices)

	assert := assert.New(t)
	assert.Len(events, 3)
	for i := 1; i < len(events); i++ {
		assert.LessOrEqual(events[i-1].Onset, events[i].Onset)
	}
	for _, e := range events {
		assert.Equal(80, e.Velocity)
	}
	assert.Equal("a", events[0].Voice)
	assert.Equal("b", events[1].Voice)
}
