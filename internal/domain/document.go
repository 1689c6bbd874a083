package domain

import "time"

// TeamDocument is an uploaded file attached to a team, optionally linked to
// a calendar event.
type TeamDocument struct {
	ID          string    `json:"id"`
	TeamID      string    `json:"team_id"`
	FileName    string    `json:"file_name"`
	FileSize    int64     `json:"file_size"`
	StoragePath string    `json:"storage_path"`
	EventID     string    `json:"event_id,omitempty"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}
