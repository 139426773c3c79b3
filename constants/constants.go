package constants

// Default MIDI range for upper voices: G3–G5 keeps them in a singable,
// keyboard-friendly tessitura. Bass sits below on its own.
const (
	UpperLow  = 55
	UpperHigh = 79
)

// Absolute piano range. Nothing outside this should ever be emitted.
const (
	MidiMin = 21
	MidiMax = 108
)

// MaxSpacing is the default cap on the gap between adjacent upper
// voices, in semitones. The bass-to-tenor gap is exempt.
const MaxSpacing = 12

// MIDI export defaults.
const (
	DefaultBPM      = 66.0
	DefaultVelocity = 80
	TicksPerQuarter = 960
	BeatsPerBar     = 4
)
