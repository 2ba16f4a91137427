package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/qbankhq/qbank-backend/internal/model"
)

// Domain Errors
var (
	ErrSetNotFound  = errors.New("question set not found")
	ErrNotSetOwner  = errors.New("not the owner of this question set")
	ErrSetQuestions = errors.New("one or more questions not found")
)

// SetStore is the question set persistence boundary.
type SetStore interface {
	Create(ctx context.Context, set *model.QuestionSet) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.QuestionSet, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]model.QuestionSet, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	UpdateMembers(ctx context.Context, id uuid.UUID, members []model.QuestionRef) error
}

// QuestionSetService assembles ordered question sets. Every operation except
// Create and List first verifies the caller owns the set: absent set is a
// not-found, ownership mismatch a forbidden, and the forbidden is never
// downgraded to a not-found.
type QuestionSetService struct {
	sets      SetStore
	questions QuestionStore
	log       zerolog.Logger
}

// NewQuestionSetService creates a new QuestionSetService.
func NewQuestionSetService(sets SetStore, questions QuestionStore, log zerolog.Logger) *QuestionSetService {
	return &QuestionSetService{
		sets:      sets,
		questions: questions,
		log:       log.With().Str("component", "question_set_service").Logger(),
	}
}

// List retrieves all sets owned by the caller, newest first.
func (s *QuestionSetService) List(ctx context.Context, teacherID string) ([]model.QuestionSet, error) {
	sets, err := s.sets.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if sets == nil {
		sets = []model.QuestionSet{}
	}
	return sets, nil
}

// Create creates an empty named set owned by the caller.
func (s *QuestionSetService) Create(ctx context.Context, teacherID, name string) (*model.QuestionSet, error) {
	set := &model.QuestionSet{
		TeacherID: teacherID,
		Name:      name,
		Questions: []model.QuestionRef{},
	}
	if err := s.sets.Create(ctx, set); err != nil {
		return nil, fmt.Errorf("create set: %w", err)
	}
	return set, nil
}

// Rename changes a set's name.
func (s *QuestionSetService) Rename(ctx context.Context, teacherID string, setID uuid.UUID, name string) (*model.QuestionSet, error) {
	set, err := s.loadOwned(ctx, setID, teacherID)
	if err != nil {
		return nil, err
	}
	if err := s.sets.UpdateName(ctx, setID, name); err != nil {
		return nil, fmt.Errorf("rename set: %w", err)
	}
	set.Name = name
	return set, nil
}

// AddQuestions appends member references to a set. All referenced questions
// must exist (checked before any mutation); references already in the set
// are silently skipped, without updating their order.
func (s *QuestionSetService) AddQuestions(ctx context.Context, teacherID string, setID uuid.UUID, refs []model.QuestionRef) (*model.QuestionSet, error) {
	set, err := s.loadOwned(ctx, setID, teacherID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(refs))
	seen := make(map[uuid.UUID]bool, len(refs))
	for _, ref := range refs {
		if !seen[ref.QuestionID] {
			seen[ref.QuestionID] = true
			ids = append(ids, ref.QuestionID)
		}
	}

	count, err := s.questions.CountByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("validate question ids: %w", err)
	}
	if count != len(ids) {
		return nil, ErrSetQuestions
	}

	members := make(map[uuid.UUID]bool, len(set.Questions))
	for _, m := range set.Questions {
		members[m.QuestionID] = true
	}
	for _, ref := range refs {
		if members[ref.QuestionID] {
			continue
		}
		members[ref.QuestionID] = true
		set.Questions = append(set.Questions, ref)
	}

	if err := s.sets.UpdateMembers(ctx, setID, set.Questions); err != nil {
		return nil, fmt.Errorf("add questions: %w", err)
	}
	return set, nil
}

// RemoveQuestion drops a member reference from a set. Removing a reference
// that is not in the set is a no-op, not an error.
func (s *QuestionSetService) RemoveQuestion(ctx context.Context, teacherID string, setID, questionID uuid.UUID) (*model.QuestionSet, error) {
	set, err := s.loadOwned(ctx, setID, teacherID)
	if err != nil {
		return nil, err
	}

	kept := set.Questions[:0]
	for _, m := range set.Questions {
		if m.QuestionID != questionID {
			kept = append(kept, m)
		}
	}
	set.Questions = kept

	if err := s.sets.UpdateMembers(ctx, setID, set.Questions); err != nil {
		return nil, fmt.Errorf("remove question: %w", err)
	}
	return set, nil
}

// Materialize joins a set's member references to their live question
// records, ordered by the set-local order. References whose question was
// deleted out-of-band are dropped silently rather than surfaced as errors.
func (s *QuestionSetService) Materialize(ctx context.Context, teacherID string, setID uuid.UUID) (*model.MaterializedSet, error) {
	set, err := s.loadOwned(ctx, setID, teacherID)
	if err != nil {
		return nil, err
	}

	questions, err := s.materializeMembers(ctx, set)
	if err != nil {
		return nil, err
	}

	return &model.MaterializedSet{
		ID:        set.ID,
		TeacherID: set.TeacherID,
		Name:      set.Name,
		CreatedAt: set.CreatedAt,
		Questions: questions,
	}, nil
}

// Export produces the flat downloadable form of a set. Structured data only;
// document rendering is a client concern.
func (s *QuestionSetService) Export(ctx context.Context, teacherID string, setID uuid.UUID) (*model.SetExport, error) {
	set, err := s.loadOwned(ctx, setID, teacherID)
	if err != nil {
		return nil, err
	}

	questions, err := s.materializeMembers(ctx, set)
	if err != nil {
		return nil, err
	}

	return &model.SetExport{
		Name:      set.Name,
		CreatedAt: set.CreatedAt,
		Questions: questions,
	}, nil
}

// ────────────────────────────────────────────────────────────────────────────
// Internal helpers
// ────────────────────────────────────────────────────────────────────────────

// loadOwned is the ownership guard in front of every per-set operation.
func (s *QuestionSetService) loadOwned(ctx context.Context, setID uuid.UUID, teacherID string) (*model.QuestionSet, error) {
	set, err := s.sets.GetByID(ctx, setID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSetNotFound
		}
		return nil, fmt.Errorf("get set: %w", err)
	}
	if set.TeacherID != teacherID {
		return nil, ErrNotSetOwner
	}
	return set, nil
}

// materializeMembers walks the member list in insertion order, joins each
// reference to its live record and sorts the result by order.
func (s *QuestionSetService) materializeMembers(ctx context.Context, set *model.QuestionSet) ([]model.QuestionWithOrder, error) {
	ids := make([]uuid.UUID, 0, len(set.Questions))
	for _, m := range set.Questions {
		ids = append(ids, m.QuestionID)
	}

	records, err := s.questions.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load set questions: %w", err)
	}
	byID := make(map[uuid.UUID]*model.Question, len(records))
	for i := range records {
		byID[records[i].ID] = &records[i]
	}

	questions := make([]model.QuestionWithOrder, 0, len(set.Questions))
	for _, m := range set.Questions {
		record, ok := byID[m.QuestionID]
		if !ok {
			continue // deleted out-of-band
		}
		questions = append(questions, model.QuestionWithOrder{
			Question: *record,
			Order:    m.Order,
		})
	}

	sortByOrder(questions)
	return questions, nil
}

// sortByOrder sorts ascending by order; null-order entries go after all
// ordered ones and keep their relative insertion order (stable sort).
func sortByOrder(questions []model.QuestionWithOrder) {
	sort.SliceStable(questions, func(i, j int) bool {
		a, b := questions[i].Order, questions[j].Order
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})
}
