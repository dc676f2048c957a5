package recorder

import "context"

// Service is the state manager consumed by the HTTP handlers. All operations
// are safe for concurrent use; only StartTraining spawns background work.
type Service interface {
	// StartSession replaces the session wholesale and wipes prior takes
	StartSession(ctx context.Context, params StartSessionParams) (SessionSnapshot, error)

	// Session returns a consistent snapshot of the current session
	Session() SessionSnapshot

	// IngestTake validates, persists and records one take payload.
	// Returns the canonical filename and the updated received count.
	IngestTake(ctx context.Context, speakerIndex, takeIndex int, payload []byte) (string, int, error)

	// ResetRecordings deletes all persisted takes and clears the received
	// list without altering session parameters
	ResetRecordings(ctx context.Context) error

	// StartTraining launches the external training script in the background.
	// Returns the identifier the accepted run trains, without waiting for
	// the run to finish.
	StartTraining(ctx context.Context) (string, error)

	// TrainingStatus returns a consistent snapshot of the training state
	TrainingStatus() TrainingSnapshot
}
