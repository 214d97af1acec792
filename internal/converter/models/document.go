package models

import "indoor-map/internal/indoor/lint"

// ============================================================
// Map Document
// ============================================================

// MapDocument is a stored map source with a summary of its content.
type MapDocument struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Floors    int    `json:"floors"`
	Walls     int    `json:"walls"`
	CreatedAt string `json:"created_at"`
}

// ImportResult is returned when a document is stored.
type ImportResult struct {
	Document MapDocument  `json:"document"`
	Issues   []lint.Issue `json:"issues"`
}
