package recorder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/masterphooey/wakeword-recorder-api/internal/models"
	apperrors "github.com/masterphooey/wakeword-recorder-api/pkg/errors"
	"github.com/masterphooey/wakeword-recorder-api/pkg/lang"
)

// StartTraining validates the preconditions, resets the job record and
// launches the external training script on a background goroutine. The call
// returns as soon as the run is accepted; its outcome is observable only via
// TrainingStatus.
func (m *Manager) StartTraining(ctx context.Context) (string, error) {
	if _, err := os.Stat(m.scriptPath); err != nil {
		return "", apperrors.Newf(apperrors.ErrCodeTrainingScriptMissing, "training script not found: %s", m.scriptPath).WithCause(err)
	}

	m.mu.Lock()
	if m.training.running {
		m.mu.Unlock()
		return "", apperrors.New(apperrors.ErrCodeAlreadyRunning, "training already running")
	}
	if m.session == nil {
		m.mu.Unlock()
		return "", apperrors.New(apperrors.ErrCodeNoActiveSession, "no active session")
	}

	received := len(m.takes)
	total := m.session.speakersTotal * m.session.takesPerSpeaker
	if received < minTakesToTrain(total) {
		m.mu.Unlock()
		return "", apperrors.Newf(apperrors.ErrCodeNotEnoughTakes, "not enough takes yet (%d/%d)", received, total)
	}

	phrase := m.session.rawPhrase
	safeID := m.session.safeID
	language := m.session.language

	// Reset the job record. From here on the job is Running and a second
	// start is rejected until the goroutine below flips it back.
	m.training = trainingState{
		running:  true,
		safeID:   safeID,
		language: language,
		logPath:  m.logPath,
	}
	m.mu.Unlock()

	runID := uuid.NewString()
	log.Printf("[INFO] Training run %s accepted for %q (%d takes)", runID, safeID, received)

	go m.runTraining(runID, phrase, safeID, language, received)

	return safeID, nil
}

// minTakesToTrain is the minimum viable sample count: three takes, or the
// whole configured total when that is smaller, and never less than one.
func minTakesToTrain(total int) int {
	need := total
	if need > 3 {
		need = 3
	}
	if need < 1 {
		need = 1
	}
	return need
}

// TrainingStatus returns a consistent snapshot of the training state
func (m *Manager) TrainingStatus() TrainingSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.trainingSnapshotLocked()
}

// trainingSnapshotLocked builds a snapshot. Callers must hold m.mu.
func (m *Manager) trainingSnapshotLocked() TrainingSnapshot {
	snap := TrainingSnapshot{
		Running:  m.training.running,
		SafeID:   m.training.safeID,
		Language: m.training.language,
		LogPath:  m.training.logPath,
		LogLines: append([]string(nil), m.training.logLines...),
	}
	if m.training.exitCode != nil {
		code := *m.training.exitCode
		snap.ExitCode = &code
	}
	return snap
}

// appendLog appends one line to the capped in-memory buffer. This is the only
// operation the streaming goroutine takes the lock for, and it holds it just
// long enough to append and evict.
func (m *Manager) appendLog(line string) {
	line = strings.TrimRight(line, "\n")

	m.mu.Lock()
	defer m.mu.Unlock()
	m.training.logLines = append(m.training.logLines, line)
	if n := len(m.training.logLines) - m.logCap; n > 0 {
		m.training.logLines = m.training.logLines[n:]
	}
}

// runTraining executes one training run to completion. It owns the full-log
// file and the process; state is published only through the guarded training
// record. The deferred block is the single place the Running→Idle transition
// happens, so no error path can skip it.
func (m *Manager) runTraining(runID, phrase, safeID string, language lang.Tag, takesUsed int) {
	startedAt := time.Now().UTC()
	exitCode := models.SentinelExitCode

	defer func() {
		m.mu.Lock()
		code := exitCode
		m.training.exitCode = &code
		m.training.running = false
		m.mu.Unlock()

		m.archiveRun(runID, phrase, safeID, language, code, takesUsed, startedAt)
	}()

	cmd := exec.Command("bash", m.scriptPath, "--phrase", phrase, "--id", safeID, "--lang", string(language))
	m.appendLog("running: " + strings.Join(cmd.Args, " "))

	logFile, err := os.Create(m.logPath)
	if err != nil {
		m.appendLog(fmt.Sprintf("training crashed: cannot open log file: %v", err))
		return
	}
	defer logFile.Close()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		m.appendLog(fmt.Sprintf("training crashed: %v", err))
		return
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		m.appendLog(fmt.Sprintf("training crashed: %v", err))
		return
	}

	// os.File writes are unbuffered, so every line hits the durable log as
	// soon as it is read; a crash loses at most a partial line.
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		fmt.Fprintln(logFile, line)
		m.appendLog(line)
	}
	streamErr := scanner.Err()

	rc := 0
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			m.appendLog(fmt.Sprintf("training crashed: %v", err))
			return
		}
		rc = exitErr.ExitCode()
	}

	if streamErr != nil {
		m.appendLog(fmt.Sprintf("training crashed: reading output: %v", streamErr))
		return
	}

	m.appendLog(fmt.Sprintf("training finished (exit_code=%d)", rc))
	exitCode = rc
}

// archiveRun records the finished run in the history table, if one is wired.
// History failures are logged and dropped; the in-memory state already holds
// the authoritative outcome.
func (m *Manager) archiveRun(runID, phrase, safeID string, language lang.Tag, exitCode, takesUsed int, startedAt time.Time) {
	if m.history == nil {
		return
	}

	run := &models.TrainingRun{
		RunID:      runID,
		SafeID:     safeID,
		Phrase:     phrase,
		Language:   string(language),
		ExitCode:   exitCode,
		TakesUsed:  takesUsed,
		LogPath:    m.logPath,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
	}
	if err := m.history.Record(context.Background(), run); err != nil {
		log.Printf("[WARN] Failed to archive training run %s: %v", runID, err)
	}
}
