package recorder

import (
	"github.com/masterphooey/wakeword-recorder-api/pkg/lang"
)

// Session bounds. Out-of-range inputs are clamped, not rejected.
const (
	MinSpeakersTotal   = 1
	MaxSpeakersTotal   = 10
	MinTakesPerSpeaker = 1
	MaxTakesPerSpeaker = 50

	// MinTakeBytes is the smallest payload accepted for a take: anything
	// below a bare RIFF/WAVE header cannot be valid audio
	MinTakeBytes = 44

	// DefaultLogMaxLines caps the in-memory training log ring
	DefaultLogMaxLines = 250
)

// session is the active collection configuration. Replaced wholesale on each
// session start; never mutated in place.
type session struct {
	rawPhrase       string
	safeID          string
	language        lang.Tag
	speakersTotal   int
	takesPerSpeaker int
}

// trainingState is the live record of the at-most-one background training job
type trainingState struct {
	running  bool
	exitCode *int
	logLines []string
	safeID   string
	language lang.Tag
	logPath  string
}

// StartSessionParams carries the inputs for starting a new session.
// Zero-valued counts fall back to the configured defaults; an empty language
// means auto-detect.
type StartSessionParams struct {
	Phrase          string
	SpeakersTotal   int
	TakesPerSpeaker int
	Language        string
}

// SessionSnapshot is a consistent point-in-time copy of the session state
type SessionSnapshot struct {
	Active          bool
	RawPhrase       string
	SafeID          string
	Language        lang.Tag
	SpeakersTotal   int
	TakesPerSpeaker int
	TakesTotal      int
	TakesReceived   int
	Takes           []string
	Training        TrainingSnapshot
}

// TrainingSnapshot is a consistent point-in-time copy of the training state
type TrainingSnapshot struct {
	Running  bool
	ExitCode *int
	LogLines []string
	SafeID   string
	Language lang.Tag
	LogPath  string
}
