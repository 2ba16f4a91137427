package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qbankhq/qbank-backend/internal/model"
)

const questionColumns = `id, subject, exam, type, difficulty,
	question_number, file_name, question_text, is_question_image, question_image,
	is_option_image, options, option_images, section_name, question_type,
	topic, exam_name, subject_name, chapter, answer, text, image_path, created_at`

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// Create inserts a new question and fills in its generated id and timestamp.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	if q.Options == nil {
		q.Options = []model.Option{}
	}
	if q.OptionImages == nil {
		q.OptionImages = []string{}
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (subject, exam, type, difficulty,
			question_number, file_name, question_text, is_question_image, question_image,
			is_option_image, options, option_images, section_name, question_type,
			topic, exam_name, subject_name, chapter, answer, text, image_path)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		 RETURNING id, created_at`,
		q.Subject, q.Exam, q.Type, q.Difficulty,
		q.QuestionNumber, q.FileName, q.QuestionText, q.IsQuestionImage, q.QuestionImage,
		q.IsOptionImage, q.Options, q.OptionImages, q.SectionName, q.QuestionType,
		q.Topic, q.ExamName, q.SubjectName, q.Chapter, q.Answer, q.Text, q.ImagePath,
	).Scan(&q.ID, &q.CreatedAt)
}

// GetByID retrieves a question by its UUID.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id)
	return scanQuestion(row)
}

// GetByIDs retrieves all questions whose id is in the given list. Missing ids
// are simply absent from the result; no error is raised for them.
func (r *QuestionRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectQuestions(rows)
}

// CountByIDs returns how many of the given ids resolve to stored questions.
func (r *QuestionRepository) CountByIDs(ctx context.Context, ids []uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM questions WHERE id = ANY($1)`, ids).Scan(&count)
	return count, err
}

// Update persists the full current state of a question.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	if q.Options == nil {
		q.Options = []model.Option{}
	}
	if q.OptionImages == nil {
		q.OptionImages = []string{}
	}
	_, err := r.pool.Exec(ctx,
		`UPDATE questions SET
			subject = $2, exam = $3, type = $4, difficulty = $5,
			question_number = $6, file_name = $7, question_text = $8,
			is_question_image = $9, question_image = $10, is_option_image = $11,
			options = $12, option_images = $13, section_name = $14,
			question_type = $15, topic = $16, exam_name = $17, subject_name = $18,
			chapter = $19, answer = $20, text = $21, image_path = $22
		 WHERE id = $1`,
		q.ID, q.Subject, q.Exam, q.Type, q.Difficulty,
		q.QuestionNumber, q.FileName, q.QuestionText,
		q.IsQuestionImage, q.QuestionImage, q.IsOptionImage,
		q.Options, q.OptionImages, q.SectionName,
		q.QuestionType, q.Topic, q.ExamName, q.SubjectName,
		q.Chapter, q.Answer, q.Text, q.ImagePath,
	)
	return err
}

// Delete removes a question by id. Returns false if no row matched.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Search retrieves the page of questions matching the filter, newest first,
// together with the total match count.
func (r *QuestionRepository) Search(ctx context.Context, f model.QuestionFilter, limit, offset int) ([]model.Question, int, error) {
	where, args := buildQuestionWhere(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM questions%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		questionColumns, where, len(args)+1, len(args)+2)
	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	questions, err := collectQuestions(rows)
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

// buildQuestionWhere turns the optional criteria into an AND-ed WHERE clause.
func buildQuestionWhere(f model.QuestionFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(expr string, value interface{}) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if f.Subject != "" {
		add(`subject->>'id' = $%d`, f.Subject)
	}
	if f.Exam != "" {
		add(`exam->>'id' = $%d`, f.Exam)
	}
	if f.Type != "" {
		add(`type->>'id' = $%d`, f.Type)
	}
	if f.Difficulty != "" {
		add(`difficulty->>'id' = $%d`, f.Difficulty)
	}
	if f.SubjectName != "" {
		add(`subject_name = $%d`, f.SubjectName)
	}
	if f.ExamName != "" {
		add(`exam_name = $%d`, f.ExamName)
	}
	if f.Chapter != "" {
		add(`chapter = $%d`, f.Chapter)
	}
	if f.FileName != "" {
		add(`file_name = $%d`, f.FileName)
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(`(text ILIKE $%d OR question_text ILIKE $%d)`, n, n))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// escapeLike neutralizes LIKE metacharacters so search input is matched as a
// literal substring.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func scanQuestion(row pgx.Row) (*model.Question, error) {
	q := &model.Question{}
	err := row.Scan(&q.ID, &q.Subject, &q.Exam, &q.Type, &q.Difficulty,
		&q.QuestionNumber, &q.FileName, &q.QuestionText, &q.IsQuestionImage, &q.QuestionImage,
		&q.IsOptionImage, &q.Options, &q.OptionImages, &q.SectionName, &q.QuestionType,
		&q.Topic, &q.ExamName, &q.SubjectName, &q.Chapter, &q.Answer, &q.Text, &q.ImagePath,
		&q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func collectQuestions(rows pgx.Rows) ([]model.Question, error) {
	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}
