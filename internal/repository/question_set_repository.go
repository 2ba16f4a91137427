package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qbankhq/qbank-backend/internal/model"
)

// QuestionSetRepository handles question set data access. Set members are a
// jsonb array so insertion order survives round trips and order may be null.
type QuestionSetRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionSetRepository creates a new QuestionSetRepository.
func NewQuestionSetRepository(pool *pgxpool.Pool) *QuestionSetRepository {
	return &QuestionSetRepository{pool: pool}
}

// Create inserts a new set and fills in its generated id and timestamp.
func (r *QuestionSetRepository) Create(ctx context.Context, set *model.QuestionSet) error {
	if set.Questions == nil {
		set.Questions = []model.QuestionRef{}
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO question_sets (teacher_id, name, questions)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		set.TeacherID, set.Name, set.Questions,
	).Scan(&set.ID, &set.CreatedAt)
}

// GetByID retrieves a set by its UUID.
func (r *QuestionSetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.QuestionSet, error) {
	set := &model.QuestionSet{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, teacher_id, name, questions, created_at
		 FROM question_sets WHERE id = $1`, id,
	).Scan(&set.ID, &set.TeacherID, &set.Name, &set.Questions, &set.CreatedAt)
	if err != nil {
		return nil, err
	}
	return set, nil
}

// ListByTeacher retrieves all sets owned by a teacher identity, newest first.
func (r *QuestionSetRepository) ListByTeacher(ctx context.Context, teacherID string) ([]model.QuestionSet, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, teacher_id, name, questions, created_at
		 FROM question_sets WHERE teacher_id = $1
		 ORDER BY created_at DESC`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []model.QuestionSet
	for rows.Next() {
		var set model.QuestionSet
		if err := rows.Scan(&set.ID, &set.TeacherID, &set.Name, &set.Questions, &set.CreatedAt); err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

// UpdateName renames a set.
func (r *QuestionSetRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE question_sets SET name = $1 WHERE id = $2`, name, id)
	return err
}

// UpdateMembers replaces a set's member reference list.
func (r *QuestionSetRepository) UpdateMembers(ctx context.Context, id uuid.UUID, members []model.QuestionRef) error {
	if members == nil {
		members = []model.QuestionRef{}
	}
	_, err := r.pool.Exec(ctx,
		`UPDATE question_sets SET questions = $1 WHERE id = $2`, members, id)
	return err
}
