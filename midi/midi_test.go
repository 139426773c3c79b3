package midi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/waynewangyuxuan/Prelude-Zero/model"
)

func TestFromProgressionSingleTrack(t *testing.T) {
	results := []model.VoicingResult{
		{Label: "I", Bass: 48, Upper: []int{60, 64, 67}, FullChord: []int{48, 60, 64, 67}},
		{Label: "V", Bass: 55, Upper: []int{59, 62, 67}, FullChord: []int{55, 59, 62, 67}},
	}
	s := FromProgression(results, 66)

	assert := assert.New(t)
	assert.Len(s.Tracks, 1)
	// tempo + 8 note-ons + 8 note-offs + end-of-track
	assert.Len(s.Tracks[0], 18)
}

func TestFromEventsOneTrackPerVoice(t *testing.T) {
	events := []model.Event{
		{Voice: "soprano", Midi: 67, Onset: 0, Duration: 1, Velocity: 80},
		{Voice: "alto", Midi: 60, Onset: 0, Duration: 2, Velocity: 80},
		{Voice: "soprano", Midi: 69, Onset: 1, Duration: 1, Velocity: 80},
	}
	s := FromEvents(events, 90)
	assert.Len(t, s.Tracks, 2)
}

func TestWriteFile(t *testing.T) {
	results := []model.VoicingResult{
		{Label: "I", Bass: 48, Upper: []int{60, 64, 67}, FullChord: []int{48, 60, 64, 67}},
	}
	path := filepath.Join(t.TempDir(), "out.mid")
	err := WriteFile(FromProgression(results, 66), path)

	assert := assert.New(t)
	assert.NoError(err)
	info, err := os.Stat(path)
	assert.NoError(err)
	assert.Greater(info.Size(), int64(0))
}

func TestBeatsToTicks(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint32(960), beatsToTicks(1))
	assert.Equal(uint32(480), beatsToTicks(0.5))
	assert.Equal(uint32(3840), beatsToTicks(4))
}
