package model

import "github.com/google/uuid"

// Subject is a canonical catalog entry for an academic subject.
type Subject struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Exam is a canonical catalog entry for a target examination.
type Exam struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// QuestionTypeRef is a canonical catalog entry for a question type
// (multiple-choice, short-answer, ...).
type QuestionTypeRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Difficulty is a canonical catalog entry for a difficulty level.
type Difficulty struct {
	ID    uuid.UUID `json:"id"`
	Level string    `json:"level"`
}

// Valid difficulty levels.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// NamedRef is an embedded {id, name} snapshot of a catalog entry, stored on
// the records that link to it. Snapshots are populated at link time and not
// kept in sync afterwards.
type NamedRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// DifficultyRef is an embedded {id, level} snapshot of a difficulty entry.
type DifficultyRef struct {
	ID    uuid.UUID `json:"id"`
	Level string    `json:"level"`
}
