package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/qbankhq/qbank-backend/internal/model"
)

// ReferenceService exposes the read side of the catalogs. Mutation is not
// part of the API surface; catalogs change through seeding and the lazy
// subject creation on profile writes.
type ReferenceService struct {
	catalog ReferenceCatalog
	log     zerolog.Logger
}

// NewReferenceService creates a new ReferenceService.
func NewReferenceService(catalog ReferenceCatalog, log zerolog.Logger) *ReferenceService {
	return &ReferenceService{
		catalog: catalog,
		log:     log.With().Str("component", "reference_service").Logger(),
	}
}

func (s *ReferenceService) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	return s.catalog.ListSubjects(ctx)
}

func (s *ReferenceService) ListExams(ctx context.Context) ([]model.Exam, error) {
	return s.catalog.ListExams(ctx)
}

func (s *ReferenceService) ListQuestionTypes(ctx context.Context) ([]model.QuestionTypeRef, error) {
	return s.catalog.ListQuestionTypes(ctx)
}

func (s *ReferenceService) ListDifficulties(ctx context.Context) ([]model.Difficulty, error) {
	return s.catalog.ListDifficulties(ctx)
}
