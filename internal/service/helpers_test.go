package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/qbankhq/qbank-backend/internal/model"
)

// In-memory fakes for the persistence boundaries.

type fakeQuestionStore struct {
	questions map[uuid.UUID]*model.Question
	createErr error
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{questions: map[uuid.UUID]*model.Question{}}
}

func (f *fakeQuestionStore) Create(_ context.Context, q *model.Question) error {
	if f.createErr != nil {
		return f.createErr
	}
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	stored := *q
	f.questions[q.ID] = &stored
	return nil
}

func (f *fakeQuestionStore) GetByID(_ context.Context, id uuid.UUID) (*model.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *q
	return &copied, nil
}

func (f *fakeQuestionStore) GetByIDs(_ context.Context, ids []uuid.UUID) ([]model.Question, error) {
	var out []model.Question
	for _, id := range ids {
		if q, ok := f.questions[id]; ok {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *fakeQuestionStore) CountByIDs(_ context.Context, ids []uuid.UUID) (int, error) {
	count := 0
	for _, id := range ids {
		if _, ok := f.questions[id]; ok {
			count++
		}
	}
	return count, nil
}

func (f *fakeQuestionStore) Update(_ context.Context, q *model.Question) error {
	stored := *q
	f.questions[q.ID] = &stored
	return nil
}

func (f *fakeQuestionStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.questions[id]; !ok {
		return false, nil
	}
	delete(f.questions, id)
	return true, nil
}

func (f *fakeQuestionStore) Search(_ context.Context, _ model.QuestionFilter, limit, offset int) ([]model.Question, int, error) {
	all := make([]model.Question, 0, len(f.questions))
	for _, q := range f.questions {
		all = append(all, *q)
	}
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

type fakeCatalog struct {
	subjects     []model.Subject
	exams        []model.Exam
	types        []model.QuestionTypeRef
	difficulties []model.Difficulty

	subjectByNameErr error
	createdSubjects  []string
}

func (f *fakeCatalog) SubjectByID(_ context.Context, id uuid.UUID) (*model.Subject, error) {
	for _, s := range f.subjects {
		if s.ID == id {
			copied := s
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCatalog) SubjectByName(_ context.Context, name string) (*model.Subject, error) {
	if f.subjectByNameErr != nil {
		return nil, f.subjectByNameErr
	}
	for _, s := range f.subjects {
		if strings.EqualFold(s.Name, name) {
			copied := s
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCatalog) CreateSubject(_ context.Context, s *model.Subject) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.subjects = append(f.subjects, *s)
	f.createdSubjects = append(f.createdSubjects, s.Name)
	return nil
}

func (f *fakeCatalog) ListSubjects(_ context.Context) ([]model.Subject, error) {
	return f.subjects, nil
}

func (f *fakeCatalog) ExamByID(_ context.Context, id uuid.UUID) (*model.Exam, error) {
	for _, e := range f.exams {
		if e.ID == id {
			copied := e
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCatalog) ExamByName(_ context.Context, name string) (*model.Exam, error) {
	for _, e := range f.exams {
		if strings.EqualFold(e.Name, name) {
			copied := e
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCatalog) ListExams(_ context.Context) ([]model.Exam, error) {
	return f.exams, nil
}

func (f *fakeCatalog) QuestionTypeByID(_ context.Context, id uuid.UUID) (*model.QuestionTypeRef, error) {
	for _, t := range f.types {
		if t.ID == id {
			copied := t
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCatalog) QuestionTypeByName(_ context.Context, name string) (*model.QuestionTypeRef, error) {
	for _, t := range f.types {
		if strings.EqualFold(t.Name, name) {
			copied := t
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCatalog) ListQuestionTypes(_ context.Context) ([]model.QuestionTypeRef, error) {
	return f.types, nil
}

func (f *fakeCatalog) DifficultyByID(_ context.Context, id uuid.UUID) (*model.Difficulty, error) {
	for _, d := range f.difficulties {
		if d.ID == id {
			copied := d
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCatalog) ListDifficulties(_ context.Context) ([]model.Difficulty, error) {
	return f.difficulties, nil
}

type fakeSetStore struct {
	sets map[uuid.UUID]*model.QuestionSet
}

func newFakeSetStore() *fakeSetStore {
	return &fakeSetStore{sets: map[uuid.UUID]*model.QuestionSet{}}
}

func (f *fakeSetStore) Create(_ context.Context, set *model.QuestionSet) error {
	if set.ID == uuid.Nil {
		set.ID = uuid.New()
	}
	stored := *set
	stored.Questions = append([]model.QuestionRef(nil), set.Questions...)
	f.sets[set.ID] = &stored
	return nil
}

func (f *fakeSetStore) GetByID(_ context.Context, id uuid.UUID) (*model.QuestionSet, error) {
	set, ok := f.sets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *set
	copied.Questions = append([]model.QuestionRef(nil), set.Questions...)
	return &copied, nil
}

func (f *fakeSetStore) ListByTeacher(_ context.Context, teacherID string) ([]model.QuestionSet, error) {
	var out []model.QuestionSet
	for _, set := range f.sets {
		if set.TeacherID == teacherID {
			out = append(out, *set)
		}
	}
	return out, nil
}

func (f *fakeSetStore) UpdateName(_ context.Context, id uuid.UUID, name string) error {
	set, ok := f.sets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	set.Name = name
	return nil
}

func (f *fakeSetStore) UpdateMembers(_ context.Context, id uuid.UUID, members []model.QuestionRef) error {
	set, ok := f.sets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	set.Questions = append([]model.QuestionRef(nil), members...)
	return nil
}

type fakeUserStore struct {
	users map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{}}
}

func (f *fakeUserStore) GetByAuthID(_ context.Context, authID string) (*model.User, error) {
	u, ok := f.users[authID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	stored := *u
	f.users[u.AuthID] = &stored
	return nil
}

func (f *fakeUserStore) Update(_ context.Context, u *model.User) error {
	stored := *u
	f.users[u.AuthID] = &stored
	return nil
}

func strptr(s string) *string { return &s }

func intptr(i int) *int { return &i }
