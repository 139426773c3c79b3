// Package interval is pure mod-12 pitch math: interval classes,
// consonance tables and note names. No state, no allocation beyond
// the package-level tables.
package interval

import "fmt"

// Interval classes mod 12.
const (
	PerfectUnison = 0
	PerfectFifth  = 7
	PerfectOctave = 0 // same class as the unison mod 12
)

var (
	// Consonant holds P1/P8, m3, M3, P5, m6, M6. Everything else
	// (m2, M2, P4, tritone, m7, M7) counts as dissonant here.
	Consonant = map[int]bool{0: true, 3: true, 4: true, 7: true, 8: true, 9: true}

	// Perfect holds P1/P8 and P5 — the classes forbidden in parallel.
	Perfect = map[int]bool{0: true, 7: true}
)

var noteNames = [12]string{"C", "C#", "D", "Eb", "E", "F", "F#", "G", "Ab", "A", "Bb", "B"}

// Class returns the undirected interval between two pitches, mod 12.
func Class(midi1, midi2 int) int {
	d := midi1 - midi2
	if d < 0 {
		d = -d
	}
	return d % 12
}

func IsConsonant(midi1, midi2 int) bool {
	return Consonant[Class(midi1, midi2)]
}

func IsPerfect(midi1, midi2 int) bool {
	return Perfect[Class(midi1, midi2)]
}

// NoteName renders a MIDI note number as a name like "C4" or "Eb3".
func NoteName(midi int) string {
	return fmt.Sprintf("%v%v", noteNames[((midi%12)+12)%12], midi/12-1)
}
