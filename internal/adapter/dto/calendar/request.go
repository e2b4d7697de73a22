package calendar

// SyncRequest tunes the sync window. Zero values use the service defaults.
type SyncRequest struct {
	LookbackDays  int `json:"lookback_days" validate:"omitempty,min=1,max=365"`
	LookaheadDays int `json:"lookahead_days" validate:"omitempty,min=1,max=365"`
}

// SyncResponse reports the outcome of a calendar sync
type SyncResponse struct {
	EventCount   int    `json:"event_count"`
	SkippedCount int    `json:"skipped_count"`
	Message      string `json:"message"`
}
