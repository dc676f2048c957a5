// Package recorder implements the session/take/training state manager.
//
// One Manager owns all mutable state: the active collection session, the
// list of received takes and the lifecycle of the at-most-one background
// training job. A single mutex serializes every read and write; blocking
// I/O (take payload writes, training log persistence, the script itself)
// always happens outside the lock so a slow disk or a stalled training
// process cannot wedge unrelated requests.
package recorder

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/masterphooey/wakeword-recorder-api/internal/services/runs"
	apperrors "github.com/masterphooey/wakeword-recorder-api/pkg/errors"
	"github.com/masterphooey/wakeword-recorder-api/pkg/lang"
)

// Config wires a Manager
type Config struct {
	Store       TakeStore
	History     runs.Service // optional; nil disables run archiving
	ScriptPath  string
	LogPath     string
	LogMaxLines int

	DefaultSpeakersTotal   int
	DefaultTakesPerSpeaker int
}

// Manager is the single state-owner object. Construct one at process start
// and share it between handlers; the zero value is not usable.
type Manager struct {
	mu sync.Mutex

	store      TakeStore
	history    runs.Service
	scriptPath string
	logPath    string
	logCap     int

	defaultSpeakers int
	defaultTakes    int

	session  *session
	takes    []string
	training trainingState
}

// NewManager creates the state manager
func NewManager(cfg Config) *Manager {
	logCap := cfg.LogMaxLines
	if logCap <= 0 {
		logCap = DefaultLogMaxLines
	}

	return &Manager{
		store:           cfg.Store,
		history:         cfg.History,
		scriptPath:      cfg.ScriptPath,
		logPath:         cfg.LogPath,
		logCap:          logCap,
		defaultSpeakers: clamp(cfg.DefaultSpeakersTotal, MinSpeakersTotal, MaxSpeakersTotal),
		defaultTakes:    clamp(cfg.DefaultTakesPerSpeaker, MinTakesPerSpeaker, MaxTakesPerSpeaker),
	}
}

// StartSession replaces the entire session state. All validation happens
// before any mutation; a rejected request leaves the old session intact.
// An in-progress training job is deliberately left alone.
func (m *Manager) StartSession(ctx context.Context, params StartSessionParams) (SessionSnapshot, error) {
	phrase := strings.TrimSpace(params.Phrase)
	if phrase == "" {
		return SessionSnapshot{}, apperrors.New(apperrors.ErrCodeInvalidInput, "phrase is required")
	}

	langIn := strings.ToLower(strings.TrimSpace(params.Language))
	if langIn == "" {
		langIn = string(lang.TagAuto)
	}
	if !lang.IsKnown(langIn) {
		return SessionSnapshot{}, apperrors.New(apperrors.ErrCodeInvalidInput, "lang must be one of: auto, en, ru")
	}

	tag := lang.Tag(langIn)
	if tag == lang.TagAuto {
		tag = lang.Detect(phrase)
	}

	speakers := params.SpeakersTotal
	if speakers == 0 {
		speakers = m.defaultSpeakers
	}
	takes := params.TakesPerSpeaker
	if takes == 0 {
		takes = m.defaultTakes
	}

	next := &session{
		rawPhrase:       phrase,
		safeID:          lang.SafeName(phrase),
		language:        tag,
		speakersTotal:   clamp(speakers, MinSpeakersTotal, MaxSpeakersTotal),
		takesPerSpeaker: clamp(takes, MinTakesPerSpeaker, MaxTakesPerSpeaker),
	}

	m.mu.Lock()
	m.session = next
	m.takes = nil
	snap := m.sessionSnapshotLocked()
	m.mu.Unlock()

	// Wipe recordings from the previous session. Best effort only; a failed
	// delete must not fail the session start.
	m.purgeTakes(ctx)

	return snap, nil
}

// Session returns a consistent snapshot of the current session state
func (m *Manager) Session() SessionSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionSnapshotLocked()
}

// ResetRecordings clears all persisted takes and the received list while
// keeping the session parameters
func (m *Manager) ResetRecordings(ctx context.Context) error {
	m.purgeTakes(ctx)

	m.mu.Lock()
	m.takes = nil
	m.mu.Unlock()

	return nil
}

// purgeTakes deletes every persisted take file. Failures are logged and
// swallowed: cleanup must never abort the owning operation.
func (m *Manager) purgeTakes(ctx context.Context) {
	names, err := m.store.List(ctx, "*.wav")
	if err != nil {
		log.Printf("[WARN] Failed to list take files for cleanup: %v", err)
		return
	}
	for _, name := range names {
		if err := m.store.Delete(ctx, name); err != nil {
			log.Printf("[WARN] Failed to delete take file %s: %v", name, err)
		}
	}
}

// sessionSnapshotLocked builds a snapshot. Callers must hold m.mu.
func (m *Manager) sessionSnapshotLocked() SessionSnapshot {
	snap := SessionSnapshot{
		Training: m.trainingSnapshotLocked(),
	}
	if m.session == nil {
		return snap
	}

	snap.Active = true
	snap.RawPhrase = m.session.rawPhrase
	snap.SafeID = m.session.safeID
	snap.Language = m.session.language
	snap.SpeakersTotal = m.session.speakersTotal
	snap.TakesPerSpeaker = m.session.takesPerSpeaker
	snap.TakesTotal = m.session.speakersTotal * m.session.takesPerSpeaker
	snap.TakesReceived = len(m.takes)
	snap.Takes = append([]string(nil), m.takes...)
	return snap
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
