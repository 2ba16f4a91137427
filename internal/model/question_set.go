package model

import (
	"time"

	"github.com/google/uuid"
)

// QuestionRef is a set member: a question reference with an optional
// set-local position. Members are kept in insertion order; order is a sparse
// integer and may be null.
type QuestionRef struct {
	QuestionID uuid.UUID `json:"question_id"`
	Order      *int      `json:"order"`
}

// QuestionSet is a named, ordered collection of question references owned by
// a single teacher identity.
type QuestionSet struct {
	ID        uuid.UUID     `json:"id"`
	TeacherID string        `json:"teacher_id"`
	Name      string        `json:"name"`
	Questions []QuestionRef `json:"questions"`
	CreatedAt time.Time     `json:"created_at"`
}

// QuestionWithOrder is a live question joined with its set-local order.
type QuestionWithOrder struct {
	Question
	Order *int `json:"order"`
}

// MaterializedSet is a set with its member references resolved to live
// question records. References whose question was deleted out-of-band are
// silently dropped.
type MaterializedSet struct {
	ID        uuid.UUID           `json:"id"`
	TeacherID string              `json:"teacher_id"`
	Name      string              `json:"name"`
	CreatedAt time.Time           `json:"created_at"`
	Questions []QuestionWithOrder `json:"questions"`
}

// SetExport is the flat downloadable form of a materialized set.
type SetExport struct {
	Name      string              `json:"name"`
	CreatedAt time.Time           `json:"created_at"`
	Questions []QuestionWithOrder `json:"questions"`
}

// CreateSetRequest is the payload for creating a question set.
type CreateSetRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// RenameSetRequest is the payload for renaming a question set.
type RenameSetRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// QuestionRefInput is a single member reference in an add-members request.
type QuestionRefInput struct {
	QuestionID string `json:"question_id" binding:"required,uuid"`
	Order      *int   `json:"order"`
}

// AddQuestionsRequest is the payload for appending members to a set.
type AddQuestionsRequest struct {
	Questions []QuestionRefInput `json:"questions" binding:"required,min=1,dive"`
}
