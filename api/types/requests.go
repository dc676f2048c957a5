package types

// StartSessionRequest starts a new collection session. Counts of zero fall
// back to the configured defaults; out-of-range counts are clamped.
type StartSessionRequest struct {
	Phrase          string `json:"phrase" binding:"required"`
	SpeakersTotal   int    `json:"speakers_total"`
	TakesPerSpeaker int    `json:"takes_per_speaker"`
	Lang            string `json:"lang"`
}
