package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/qbankhq/qbank-backend/internal/model"
	"github.com/qbankhq/qbank-backend/internal/response"
)

// Domain Errors
var (
	ErrQuestionTextRequired = errors.New("question text is required")
	ErrLegacyFieldsRequired = errors.New("subject, exam, type, difficulty, and text are required")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrReferenceNotFound    = errors.New("one or more references not found")
	ErrSubjectNotFound      = errors.New("subject not found")
	ErrExamNotFound         = errors.New("exam not found")
	ErrTypeNotFound         = errors.New("question type not found")
	ErrDifficultyNotFound   = errors.New("difficulty not found")
)

// QuestionStore is the question persistence boundary.
type QuestionStore interface {
	Create(ctx context.Context, q *model.Question) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Question, error)
	CountByIDs(ctx context.Context, ids []uuid.UUID) (int, error)
	Update(ctx context.Context, q *model.Question) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Search(ctx context.Context, f model.QuestionFilter, limit, offset int) ([]model.Question, int, error)
}

// ReferenceCatalog is the read-mostly catalog lookup boundary. Lookups by
// name are case-insensitive exact matches.
type ReferenceCatalog interface {
	SubjectByID(ctx context.Context, id uuid.UUID) (*model.Subject, error)
	SubjectByName(ctx context.Context, name string) (*model.Subject, error)
	CreateSubject(ctx context.Context, s *model.Subject) error
	ListSubjects(ctx context.Context) ([]model.Subject, error)
	ExamByID(ctx context.Context, id uuid.UUID) (*model.Exam, error)
	ExamByName(ctx context.Context, name string) (*model.Exam, error)
	ListExams(ctx context.Context) ([]model.Exam, error)
	QuestionTypeByID(ctx context.Context, id uuid.UUID) (*model.QuestionTypeRef, error)
	QuestionTypeByName(ctx context.Context, name string) (*model.QuestionTypeRef, error)
	ListQuestionTypes(ctx context.Context) ([]model.QuestionTypeRef, error)
	DifficultyByID(ctx context.Context, id uuid.UUID) (*model.Difficulty, error)
	ListDifficulties(ctx context.Context) ([]model.Difficulty, error)
}

// QuestionService normalizes incoming question payloads, links them against
// the reference catalogs and drives the query engine.
type QuestionService struct {
	store   QuestionStore
	catalog ReferenceCatalog
	log     zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(store QuestionStore, catalog ReferenceCatalog, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		store:   store,
		catalog: catalog,
		log:     log.With().Str("component", "question_service").Logger(),
	}
}

// List retrieves the page of questions matching the filter, newest first,
// with pagination metadata. Out-of-range page/limit values are clamped.
func (s *QuestionService) List(ctx context.Context, f model.QuestionFilter, page, limit int) ([]model.Question, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	offset := (page - 1) * limit

	questions, total, err := s.store.Search(ctx, f, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	if questions == nil {
		questions = []model.Question{}
	}

	pagination := &response.Pagination{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: (total + limit - 1) / limit,
	}

	return questions, pagination, nil
}

// CreateFlat normalizes and persists a single flat-layout submission.
// Catalog linkage is best-effort and never blocks the save.
func (s *QuestionService) CreateFlat(ctx context.Context, in model.FlatQuestionInput) (*model.Question, error) {
	if in.QuestionText == nil || *in.QuestionText == "" {
		return nil, ErrQuestionTextRequired
	}

	q := questionFromFlat(in)
	s.linkFlat(ctx, q, in.Subject, in.ExamName, in.QuestionType)

	if err := s.store.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return q, nil
}

// CreateLegacy persists a single legacy-layout submission. Unlike the flat
// path, reference lookups are strict: all four catalog ids must resolve.
func (s *QuestionService) CreateLegacy(ctx context.Context, in model.LegacyQuestionInput) (*model.Question, error) {
	if isBlank(in.Subject) || isBlank(in.Exam) || isBlank(in.Type) || isBlank(in.Difficulty) || isBlank(in.Text) {
		return nil, ErrLegacyFieldsRequired
	}

	subject, err := s.lookupSubject(ctx, *in.Subject)
	if err != nil && !errorIsNotFound(err) {
		return nil, err
	}
	exam, examErr := s.lookupExam(ctx, *in.Exam)
	if examErr != nil && !errorIsNotFound(examErr) {
		return nil, examErr
	}
	qtype, typeErr := s.lookupQuestionType(ctx, *in.Type)
	if typeErr != nil && !errorIsNotFound(typeErr) {
		return nil, typeErr
	}
	difficulty, diffErr := s.lookupDifficulty(ctx, *in.Difficulty)
	if diffErr != nil && !errorIsNotFound(diffErr) {
		return nil, diffErr
	}
	if subject == nil || exam == nil || qtype == nil || difficulty == nil {
		return nil, ErrReferenceNotFound
	}

	q := &model.Question{
		Subject:    &model.NamedRef{ID: subject.ID, Name: subject.Name},
		Exam:       &model.NamedRef{ID: exam.ID, Name: exam.Name},
		Type:       &model.NamedRef{ID: qtype.ID, Name: qtype.Name},
		Difficulty: &model.DifficultyRef{ID: difficulty.ID, Level: difficulty.Level},
		Text:       in.Text,
		ImagePath:  in.ImagePath,
	}
	if in.Options != nil {
		q.Options = *in.Options
	}

	if err := s.store.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return q, nil
}

// CreateBatch processes a bulk flat-layout submission strictly in input
// order. A failing element contributes an error entry and never aborts the
// rest of the batch.
func (s *QuestionService) CreateBatch(ctx context.Context, ins []model.FlatQuestionInput) (*model.BatchResult, error) {
	result := &model.BatchResult{
		Success:   true,
		Questions: []model.Question{},
	}

	for _, in := range ins {
		if in.QuestionText == nil || *in.QuestionText == "" {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Question %s: Question text is required", questionLabel(in.QuestionNumber)))
			continue
		}

		q := questionFromFlat(in)
		s.linkFlat(ctx, q, in.Subject, in.ExamName, in.QuestionType)

		if err := s.store.Create(ctx, q); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Error processing question %s: %v", questionLabel(in.QuestionNumber), err))
			continue
		}
		result.Questions = append(result.Questions, *q)
	}

	result.Count = len(result.Questions)
	return result, nil
}

// Update applies a partial payload to an existing question. Fields absent
// from the payload are left untouched; fields present with a null or empty
// value overwrite. Linkage rules follow the payload's layout: best-effort
// for flat, strict per-reference for legacy.
func (s *QuestionService) Update(ctx context.Context, id uuid.UUID, payload *model.QuestionPayload) (*model.Question, error) {
	q, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}

	switch {
	case payload.Flat != nil:
		applyFlatUpdate(q, payload)
		s.linkFlat(ctx, q, payload.Flat.Subject, payload.Flat.ExamName, payload.Flat.QuestionType)
	case payload.Legacy != nil:
		if err := s.applyLegacyUpdate(ctx, q, payload); err != nil {
			return nil, err
		}
	default:
		return nil, ErrQuestionTextRequired
	}

	if err := s.store.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}
	return q, nil
}

// Delete removes a question by id. Sets referencing it are not touched;
// their materialization tolerates the dangling reference.
func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if !deleted {
		return ErrQuestionNotFound
	}
	return nil
}

// ────────────────────────────────────────────────────────────────────────────
// Internal helpers
// ────────────────────────────────────────────────────────────────────────────

// questionFromFlat builds the canonical record from a flat submission. The
// flat `subject` input field is stored as subject_name.
func questionFromFlat(in model.FlatQuestionInput) *model.Question {
	q := &model.Question{
		QuestionNumber: in.QuestionNumber,
		FileName:       in.FileName,
		QuestionText:   in.QuestionText,
		QuestionImage:  in.QuestionImage,
		SectionName:    in.SectionName,
		QuestionType:   in.QuestionType,
		Topic:          in.Topic,
		ExamName:       in.ExamName,
		SubjectName:    in.Subject,
		Chapter:        in.Chapter,
		Answer:         in.Answer,
	}
	if in.IsQuestionImage != nil {
		q.IsQuestionImage = *in.IsQuestionImage
	}
	if in.IsOptionImage != nil {
		q.IsOptionImage = *in.IsOptionImage
	}
	if in.OptionImages != nil {
		q.OptionImages = *in.OptionImages
	}
	if in.Options != nil {
		q.Options = model.BuildOptions(*in.Options, strValue(in.Answer))
	}
	return q
}

// applyFlatUpdate overwrites exactly the fields whose keys appear in the
// partial payload. A key carried with an explicit null (pointer nil) clears
// the stored value; an absent key leaves it untouched. Empty strings and
// false are legitimate overwrites too.
func applyFlatUpdate(q *model.Question, p *model.QuestionPayload) {
	in := *p.Flat

	set := func(dst **string, src *string, key string) {
		if src != nil || p.Present(key) {
			*dst = src
		}
	}

	set(&q.QuestionNumber, in.QuestionNumber, "question_number")
	set(&q.FileName, in.FileName, "file_name")
	set(&q.QuestionText, in.QuestionText, "question_text")
	set(&q.QuestionImage, in.QuestionImage, "question_image")
	set(&q.SectionName, in.SectionName, "section_name")
	set(&q.QuestionType, in.QuestionType, "question_type")
	set(&q.Topic, in.Topic, "topic")
	set(&q.ExamName, in.ExamName, "exam_name")
	set(&q.SubjectName, in.Subject, "subject")
	set(&q.Chapter, in.Chapter, "chapter")
	set(&q.Answer, in.Answer, "answer")

	if in.IsQuestionImage != nil {
		q.IsQuestionImage = *in.IsQuestionImage
	} else if p.Present("isQuestionImage") {
		q.IsQuestionImage = false
	}
	if in.IsOptionImage != nil {
		q.IsOptionImage = *in.IsOptionImage
	} else if p.Present("isOptionImage") {
		q.IsOptionImage = false
	}
	if in.OptionImages != nil {
		q.OptionImages = *in.OptionImages
	} else if p.Present("option_images") {
		q.OptionImages = nil
	}
	// Options are re-derived from the answer letter carried in this payload;
	// no answer in the payload marks no option correct.
	if in.Options != nil {
		q.Options = model.BuildOptions(*in.Options, strValue(in.Answer))
	} else if p.Present("options") {
		q.Options = nil
	}
}

// applyLegacyUpdate overwrites the fields whose keys appear in a legacy
// partial payload. Reference lookups are strict: a supplied id that does not
// resolve fails the whole update. A key carried with an explicit null clears
// the stored snapshot or value.
func (s *QuestionService) applyLegacyUpdate(ctx context.Context, q *model.Question, p *model.QuestionPayload) error {
	in := *p.Legacy

	if in.Subject != nil {
		subject, err := s.lookupSubject(ctx, *in.Subject)
		if err != nil {
			if errorIsNotFound(err) {
				return ErrSubjectNotFound
			}
			return err
		}
		q.Subject = &model.NamedRef{ID: subject.ID, Name: subject.Name}
	} else if p.Present("subject") {
		q.Subject = nil
	}
	if in.Exam != nil {
		exam, err := s.lookupExam(ctx, *in.Exam)
		if err != nil {
			if errorIsNotFound(err) {
				return ErrExamNotFound
			}
			return err
		}
		q.Exam = &model.NamedRef{ID: exam.ID, Name: exam.Name}
	} else if p.Present("exam") {
		q.Exam = nil
	}
	if in.Type != nil {
		qtype, err := s.lookupQuestionType(ctx, *in.Type)
		if err != nil {
			if errorIsNotFound(err) {
				return ErrTypeNotFound
			}
			return err
		}
		q.Type = &model.NamedRef{ID: qtype.ID, Name: qtype.Name}
	} else if p.Present("type") {
		q.Type = nil
	}
	if in.Difficulty != nil {
		difficulty, err := s.lookupDifficulty(ctx, *in.Difficulty)
		if err != nil {
			if errorIsNotFound(err) {
				return ErrDifficultyNotFound
			}
			return err
		}
		q.Difficulty = &model.DifficultyRef{ID: difficulty.ID, Level: difficulty.Level}
	} else if p.Present("difficulty") {
		q.Difficulty = nil
	}
	if in.Text != nil || p.Present("text") {
		q.Text = in.Text
	}
	if in.ImagePath != nil || p.Present("image_path") {
		q.ImagePath = in.ImagePath
	}
	if in.Options != nil {
		q.Options = *in.Options
	} else if p.Present("options") {
		q.Options = nil
	}
	return nil
}

// linkFlat attaches catalog snapshots for the supplied free-text names.
// Strictly best-effort: a miss or a store error leaves the slot as it was
// and the save proceeds.
func (s *QuestionService) linkFlat(ctx context.Context, q *model.Question, subjectName, examName, typeName *string) {
	if !isBlank(subjectName) {
		subject, err := s.catalog.SubjectByName(ctx, *subjectName)
		switch {
		case err == nil:
			q.Subject = &model.NamedRef{ID: subject.ID, Name: subject.Name}
		case !errors.Is(err, pgx.ErrNoRows):
			s.log.Warn().Err(err).Str("subject", *subjectName).Msg("subject linkage failed")
		}
	}
	if !isBlank(examName) {
		exam, err := s.catalog.ExamByName(ctx, *examName)
		switch {
		case err == nil:
			q.Exam = &model.NamedRef{ID: exam.ID, Name: exam.Name}
		case !errors.Is(err, pgx.ErrNoRows):
			s.log.Warn().Err(err).Str("exam", *examName).Msg("exam linkage failed")
		}
	}
	if !isBlank(typeName) {
		qtype, err := s.catalog.QuestionTypeByName(ctx, *typeName)
		switch {
		case err == nil:
			q.Type = &model.NamedRef{ID: qtype.ID, Name: qtype.Name}
		case !errors.Is(err, pgx.ErrNoRows):
			s.log.Warn().Err(err).Str("question_type", *typeName).Msg("question type linkage failed")
		}
	}
}

// Strict id lookups for the legacy path. A malformed id counts as not found
// rather than a server error.
func (s *QuestionService) lookupSubject(ctx context.Context, raw string) (*model.Subject, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, pgx.ErrNoRows
	}
	return s.catalog.SubjectByID(ctx, id)
}

func (s *QuestionService) lookupExam(ctx context.Context, raw string) (*model.Exam, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, pgx.ErrNoRows
	}
	return s.catalog.ExamByID(ctx, id)
}

func (s *QuestionService) lookupQuestionType(ctx context.Context, raw string) (*model.QuestionTypeRef, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, pgx.ErrNoRows
	}
	return s.catalog.QuestionTypeByID(ctx, id)
}

func (s *QuestionService) lookupDifficulty(ctx context.Context, raw string) (*model.Difficulty, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, pgx.ErrNoRows
	}
	return s.catalog.DifficultyByID(ctx, id)
}

func errorIsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func isBlank(p *string) bool {
	return p == nil || *p == ""
}

func strValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func questionLabel(number *string) string {
	if number == nil || *number == "" {
		return "unknown"
	}
	return *number
}
