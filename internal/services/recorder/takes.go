package recorder

import (
	"context"
	"fmt"

	apperrors "github.com/masterphooey/wakeword-recorder-api/pkg/errors"
)

// TakeFilename maps (speakerIndex, takeIndex) to the canonical filename the
// training script picks samples up by. The format is a contract; changing it
// orphans every previously recorded take.
func TakeFilename(speakerIndex, takeIndex int) string {
	return fmt.Sprintf("speaker%02d_take%02d.wav", speakerIndex, takeIndex)
}

// IngestTake validates the indices against the active session, persists the
// payload under the canonical filename and records it in the received list.
// Re-uploading the same indices overwrites the file but does not grow the
// list. The payload write happens outside the lock.
func (m *Manager) IngestTake(ctx context.Context, speakerIndex, takeIndex int, payload []byte) (string, int, error) {
	if len(payload) < MinTakeBytes {
		return "", 0, apperrors.New(apperrors.ErrCodeInvalidPayload, "empty or truncated audio payload")
	}

	m.mu.Lock()
	if m.session == nil {
		m.mu.Unlock()
		return "", 0, apperrors.New(apperrors.ErrCodeNoActiveSession, "no active session; start a session first")
	}
	speakersTotal := m.session.speakersTotal
	takesPerSpeaker := m.session.takesPerSpeaker
	m.mu.Unlock()

	if speakerIndex < 1 || speakerIndex > speakersTotal {
		return "", 0, apperrors.OutOfRange("speaker_index", 1, speakersTotal)
	}
	if takeIndex < 1 || takeIndex > takesPerSpeaker {
		return "", 0, apperrors.OutOfRange("take_index", 1, takesPerSpeaker)
	}

	name := TakeFilename(speakerIndex, takeIndex)

	if _, err := m.store.Save(ctx, name, payload); err != nil {
		return "", 0, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to persist take")
	}

	m.mu.Lock()
	if !containsString(m.takes, name) {
		m.takes = append(m.takes, name)
	}
	count := len(m.takes)
	m.mu.Unlock()

	return name, count, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
