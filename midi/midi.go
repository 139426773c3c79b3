// Package midi renders voicing results and score events to standard
// MIDI files.
package midi

import (
	"fmt"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/waynewangyuxuan/Prelude-Zero/constants"
	"github.com/waynewangyuxuan/Prelude-Zero/model"
	"github.com/waynewangyuxuan/Prelude-Zero/util"
)

type rawEvent struct {
	tick     uint32
	off      bool
	key      uint8
	velocity uint8
}

func beatsToTicks(beats float64) uint32 {
	return uint32(beats*constants.TicksPerQuarter + 0.5)
}

// clampKey folds anything outside the piano range back in by octaves.
func clampKey(note int) uint8 {
	for note < constants.MidiMin {
		note += 12
	}
	for note > constants.MidiMax {
		note -= 12
	}
	return uint8(note)
}

// buildTrack sorts raw events (note-offs first at equal ticks, so
// repeated notes re-strike cleanly) and converts to delta form.
func buildTrack(events []rawEvent, bpm float64) smf.Track {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	var tr smf.Track
	if bpm > 0 {
		tr.Add(0, smf.MetaTempo(bpm))
	}
	var lastTick uint32
	for _, e := range events {
		delta := e.tick - lastTick
		lastTick = e.tick
		if e.off {
			tr.Add(delta, midi.NoteOff(0, e.key))
		} else {
			tr.Add(delta, midi.NoteOn(0, e.key, e.velocity))
		}
	}
	tr.Close(0)
	return tr
}

// FromProgression renders one whole-bar block chord per step (bass plus
// upper voices) in 4/4 at the given tempo.
func FromProgression(results []model.VoicingResult, bpm float64) *smf.SMF {
	var events []rawEvent
	for i, r := range results {
		start := beatsToTicks(float64(i * constants.BeatsPerBar))
		end := beatsToTicks(float64((i + 1) * constants.BeatsPerBar))
		for _, n := range r.FullChord {
			events = append(events,
				rawEvent{tick: start, key: clampKey(n), velocity: constants.DefaultVelocity},
				rawEvent{tick: end, off: true, key: clampKey(n)})
		}
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(constants.TicksPerQuarter)
	s.Add(buildTrack(events, bpm))
	return s
}

// FromEvents renders score events with one track per voice, tracks in
// voice-name order. The tempo goes on the first track only.
func FromEvents(events []model.Event, bpm float64) *smf.SMF {
	byVoice := make(map[string][]rawEvent)
	for _, e := range events {
		byVoice[e.Voice] = append(byVoice[e.Voice],
			rawEvent{tick: beatsToTicks(e.Onset), key: clampKey(e.Midi), velocity: uint8(e.Velocity)},
			rawEvent{tick: beatsToTicks(e.Onset + e.Duration), off: true, key: clampKey(e.Midi)})
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(constants.TicksPerQuarter)
	trackBPM := bpm
	for _, name := range util.SortedKeys(byVoice) {
		s.Add(buildTrack(byVoice[name], trackBPM))
		trackBPM = 0
	}
	return s
}

// WriteFile writes an SMF to disk.
func WriteFile(s *smf.SMF, path string) error {
	if err := s.WriteFile(path); err != nil {
		return fmt.Errorf("could not write midi file %v: %w", path, err)
	}
	return nil
}
