package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qbankhq/qbank-backend/internal/model"
)

// ReferenceRepository handles the four reference catalogs: subjects, exams,
// question types and difficulties. Name lookups are case-insensitive; names
// are stored as given.
type ReferenceRepository struct {
	pool *pgxpool.Pool
}

// NewReferenceRepository creates a new ReferenceRepository.
func NewReferenceRepository(pool *pgxpool.Pool) *ReferenceRepository {
	return &ReferenceRepository{pool: pool}
}

// ─── Subjects ───────────────────────────────────────────────────────────────

func (r *ReferenceRepository) SubjectByID(ctx context.Context, id uuid.UUID) (*model.Subject, error) {
	s := &model.Subject{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM subjects WHERE id = $1`, id).Scan(&s.ID, &s.Name)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *ReferenceRepository) SubjectByName(ctx context.Context, name string) (*model.Subject, error) {
	s := &model.Subject{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM subjects WHERE LOWER(name) = LOWER($1)`, name).Scan(&s.ID, &s.Name)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *ReferenceRepository) CreateSubject(ctx context.Context, s *model.Subject) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO subjects (name) VALUES ($1) RETURNING id`, s.Name).Scan(&s.ID)
}

func (r *ReferenceRepository) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM subjects ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// ─── Exams ──────────────────────────────────────────────────────────────────

func (r *ReferenceRepository) ExamByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	e := &model.Exam{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM exams WHERE id = $1`, id).Scan(&e.ID, &e.Name)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *ReferenceRepository) ExamByName(ctx context.Context, name string) (*model.Exam, error) {
	e := &model.Exam{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM exams WHERE LOWER(name) = LOWER($1)`, name).Scan(&e.ID, &e.Name)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *ReferenceRepository) CreateExam(ctx context.Context, e *model.Exam) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exams (name) VALUES ($1) RETURNING id`, e.Name).Scan(&e.ID)
}

func (r *ReferenceRepository) ListExams(ctx context.Context) ([]model.Exam, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM exams ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		var e model.Exam
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}

// ─── Question types ─────────────────────────────────────────────────────────

func (r *ReferenceRepository) QuestionTypeByID(ctx context.Context, id uuid.UUID) (*model.QuestionTypeRef, error) {
	t := &model.QuestionTypeRef{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM question_types WHERE id = $1`, id).Scan(&t.ID, &t.Name)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *ReferenceRepository) QuestionTypeByName(ctx context.Context, name string) (*model.QuestionTypeRef, error) {
	t := &model.QuestionTypeRef{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM question_types WHERE LOWER(name) = LOWER($1)`, name).Scan(&t.ID, &t.Name)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *ReferenceRepository) CreateQuestionType(ctx context.Context, t *model.QuestionTypeRef) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO question_types (name) VALUES ($1) RETURNING id`, t.Name).Scan(&t.ID)
}

func (r *ReferenceRepository) ListQuestionTypes(ctx context.Context) ([]model.QuestionTypeRef, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM question_types ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []model.QuestionTypeRef
	for rows.Next() {
		var t model.QuestionTypeRef
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// ─── Difficulties ───────────────────────────────────────────────────────────

func (r *ReferenceRepository) DifficultyByID(ctx context.Context, id uuid.UUID) (*model.Difficulty, error) {
	d := &model.Difficulty{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, level FROM difficulties WHERE id = $1`, id).Scan(&d.ID, &d.Level)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *ReferenceRepository) CreateDifficulty(ctx context.Context, d *model.Difficulty) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO difficulties (level) VALUES ($1) RETURNING id`, d.Level).Scan(&d.ID)
}

func (r *ReferenceRepository) ListDifficulties(ctx context.Context) ([]model.Difficulty, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, level FROM difficulties ORDER BY level ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var difficulties []model.Difficulty
	for rows.Next() {
		var d model.Difficulty
		if err := rows.Scan(&d.ID, &d.Level); err != nil {
			return nil, err
		}
		difficulties = append(difficulties, d)
	}
	return difficulties, rows.Err()
}
