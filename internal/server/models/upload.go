package models

import "time"

// UploadTicket lets a client PUT a PDF straight to object storage and then
// create a paper from FileURL.
type UploadTicket struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"uploadUrl"`
	FileURL   string    `json:"fileUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}
