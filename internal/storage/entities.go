package storage

import "time"

type LookupRow struct {
	Kind     string
	Position int
	Name     string
	Color    string
	Alpha    float64
	// RGB holds the exact float channels; nil for rows written before they
	// were stored, which fall back to Color.
	RGB *[3]float64
}

type GroupRow struct {
	ID       string
	Position int
	Title    string
	Note     string
	TagIndex int
	Asset    string
}

type TodoRow struct {
	ID            string
	GroupID       string
	Position      int
	Title         string
	Description   string
	ProgressIndex int
	PriorityIndex int
	CreatedAt     time.Time
	EndAt         *time.Time
}
