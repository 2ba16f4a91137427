package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/qbankhq/qbank-backend/internal/model"
)

func newQuestionService(store *fakeQuestionStore, catalog *fakeCatalog) *QuestionService {
	return NewQuestionService(store, catalog, zerolog.Nop())
}

func TestCreateFlatRequiresText(t *testing.T) {
	svc := newQuestionService(newFakeQuestionStore(), &fakeCatalog{})

	_, err := svc.CreateFlat(context.Background(), model.FlatQuestionInput{Chapter: strptr("Algebra")})
	if !errors.Is(err, ErrQuestionTextRequired) {
		t.Fatalf("err = %v, want ErrQuestionTextRequired", err)
	}

	_, err = svc.CreateFlat(context.Background(), model.FlatQuestionInput{QuestionText: strptr("")})
	if !errors.Is(err, ErrQuestionTextRequired) {
		t.Fatalf("err = %v, want ErrQuestionTextRequired", err)
	}
}

func TestCreateFlatLinksCatalog(t *testing.T) {
	mathsID := uuid.New()
	catalog := &fakeCatalog{
		subjects: []model.Subject{{ID: mathsID, Name: "Maths"}},
		exams:    []model.Exam{{ID: uuid.New(), Name: "Boards"}},
	}
	store := newFakeQuestionStore()
	svc := newQuestionService(store, catalog)

	q, err := svc.CreateFlat(context.Background(), model.FlatQuestionInput{
		QuestionText: strptr("What is 2+2?"),
		Options:      &[]string{"3", "4", "5", "6"},
		Answer:       strptr("B"),
		Subject:      strptr("maths"), // case-insensitive match
		ExamName:     strptr("JEE"),   // no catalog entry, stays unlinked
	})
	if err != nil {
		t.Fatalf("CreateFlat: %v", err)
	}

	if q.Subject == nil || q.Subject.ID != mathsID {
		t.Errorf("subject snapshot = %+v, want Maths link", q.Subject)
	}
	if q.Exam != nil {
		t.Errorf("exam snapshot = %+v, want nil for unknown name", q.Exam)
	}
	if q.SubjectName == nil || *q.SubjectName != "maths" {
		t.Errorf("subject_name = %v, want the raw input preserved", q.SubjectName)
	}
	if len(q.Options) != 4 || !q.Options[1].IsCorrect || q.Options[0].IsCorrect {
		t.Errorf("options = %+v, want second option correct", q.Options)
	}
	if _, ok := store.questions[q.ID]; !ok {
		t.Error("question not persisted")
	}
}

func TestCreateFlatLinkageErrorDoesNotBlockSave(t *testing.T) {
	catalog := &fakeCatalog{subjectByNameErr: errors.New("catalog down")}
	store := newFakeQuestionStore()
	svc := newQuestionService(store, catalog)

	q, err := svc.CreateFlat(context.Background(), model.FlatQuestionInput{
		QuestionText: strptr("Q"),
		Subject:      strptr("Maths"),
	})
	if err != nil {
		t.Fatalf("CreateFlat: %v", err)
	}
	if q.Subject != nil {
		t.Errorf("subject snapshot = %+v, want nil after lookup failure", q.Subject)
	}
	if len(store.questions) != 1 {
		t.Error("question not persisted despite linkage failure")
	}
}

func TestCreateLegacyStrictLookups(t *testing.T) {
	subject := model.Subject{ID: uuid.New(), Name: "Maths"}
	exam := model.Exam{ID: uuid.New(), Name: "Boards"}
	qtype := model.QuestionTypeRef{ID: uuid.New(), Name: "multiple-choice"}
	difficulty := model.Difficulty{ID: uuid.New(), Level: model.DifficultyEasy}
	catalog := &fakeCatalog{
		subjects:     []model.Subject{subject},
		exams:        []model.Exam{exam},
		types:        []model.QuestionTypeRef{qtype},
		difficulties: []model.Difficulty{difficulty},
	}
	svc := newQuestionService(newFakeQuestionStore(), catalog)

	in := model.LegacyQuestionInput{
		Subject:    strptr(subject.ID.String()),
		Exam:       strptr(exam.ID.String()),
		Type:       strptr(qtype.ID.String()),
		Difficulty: strptr(difficulty.ID.String()),
		Text:       strptr("State the theorem."),
	}

	q, err := svc.CreateLegacy(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateLegacy: %v", err)
	}
	if q.Subject.Name != "Maths" || q.Difficulty.Level != model.DifficultyEasy {
		t.Errorf("snapshots not populated: %+v %+v", q.Subject, q.Difficulty)
	}

	// Unknown subject fails the whole create.
	bad := in
	bad.Subject = strptr(uuid.New().String())
	if _, err := svc.CreateLegacy(context.Background(), bad); !errors.Is(err, ErrReferenceNotFound) {
		t.Errorf("err = %v, want ErrReferenceNotFound", err)
	}

	// A malformed id is a miss, not a server error.
	bad.Subject = strptr("not-a-uuid")
	if _, err := svc.CreateLegacy(context.Background(), bad); !errors.Is(err, ErrReferenceNotFound) {
		t.Errorf("err = %v, want ErrReferenceNotFound for malformed id", err)
	}
}

func TestCreateLegacyRequiresAllFields(t *testing.T) {
	svc := newQuestionService(newFakeQuestionStore(), &fakeCatalog{})

	_, err := svc.CreateLegacy(context.Background(), model.LegacyQuestionInput{
		Subject: strptr(uuid.New().String()),
		Text:    strptr("body"),
	})
	if !errors.Is(err, ErrLegacyFieldsRequired) {
		t.Fatalf("err = %v, want ErrLegacyFieldsRequired", err)
	}
}

func TestCreateBatchPartialSuccess(t *testing.T) {
	store := newFakeQuestionStore()
	svc := newQuestionService(store, &fakeCatalog{})

	result, err := svc.CreateBatch(context.Background(), []model.FlatQuestionInput{
		{QuestionText: strptr("Q1"), QuestionNumber: strptr("1")},
		{QuestionNumber: strptr("2")}, // missing text
		{QuestionText: strptr("Q3"), QuestionNumber: strptr("3")},
	})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	if result.Count != 2 || len(result.Questions) != 2 {
		t.Errorf("count = %d, want 2 stored", result.Count)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Question 2") {
		t.Errorf("error = %q, want the question number named", result.Errors[0])
	}
	// Input order is preserved in the stored slice.
	if *result.Questions[0].QuestionText != "Q1" || *result.Questions[1].QuestionText != "Q3" {
		t.Errorf("stored order wrong: %v", result.Questions)
	}
}

func TestCreateBatchLabelsUnknownEntries(t *testing.T) {
	svc := newQuestionService(newFakeQuestionStore(), &fakeCatalog{})

	result, err := svc.CreateBatch(context.Background(), []model.FlatQuestionInput{{}})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "unknown") {
		t.Errorf("errors = %v, want unknown label", result.Errors)
	}
}

func TestUpdateFlatPresenceSemantics(t *testing.T) {
	store := newFakeQuestionStore()
	svc := newQuestionService(store, &fakeCatalog{})

	q, err := svc.CreateFlat(context.Background(), model.FlatQuestionInput{
		QuestionText: strptr("old text"),
		Chapter:      strptr("Algebra"),
		Options:      &[]string{"a", "b"},
		Answer:       strptr("A"),
	})
	if err != nil {
		t.Fatalf("CreateFlat: %v", err)
	}

	// Only question_text is present; chapter must survive untouched and the
	// explicit empty answer must clear correctness on the new options.
	updated, err := svc.Update(context.Background(), q.ID, &model.QuestionPayload{
		Flat: &model.FlatQuestionInput{
			QuestionText: strptr("new text"),
			Options:      &[]string{"x", "y"},
		},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if *updated.QuestionText != "new text" {
		t.Errorf("question_text = %q", *updated.QuestionText)
	}
	if updated.Chapter == nil || *updated.Chapter != "Algebra" {
		t.Errorf("chapter = %v, want untouched", updated.Chapter)
	}
	for i, opt := range updated.Options {
		if opt.IsCorrect {
			t.Errorf("option %d correct without an answer in the payload", i)
		}
	}
}

func TestUpdateFlatExplicitNullClearsField(t *testing.T) {
	store := newFakeQuestionStore()
	svc := newQuestionService(store, &fakeCatalog{})

	q, err := svc.CreateFlat(context.Background(), model.FlatQuestionInput{
		QuestionText: strptr("old text"),
		Chapter:      strptr("Algebra"),
		Topic:        strptr("Lines"),
		OptionImages: &[]string{"a.png"},
	})
	if err != nil {
		t.Fatalf("CreateFlat: %v", err)
	}

	// A key carried with an explicit null clears the stored value; topic is
	// absent from the payload and must survive.
	payload, err := model.ParseQuestionPayload(
		[]byte(`{"question_text": "new text", "chapter": null, "option_images": null}`))
	if err != nil {
		t.Fatalf("ParseQuestionPayload: %v", err)
	}

	updated, err := svc.Update(context.Background(), q.ID, payload)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Chapter != nil {
		t.Errorf("chapter = %q, want cleared", *updated.Chapter)
	}
	if updated.OptionImages != nil {
		t.Errorf("option_images = %v, want cleared", updated.OptionImages)
	}
	if updated.Topic == nil || *updated.Topic != "Lines" {
		t.Errorf("topic = %v, want untouched", updated.Topic)
	}
	if *updated.QuestionText != "new text" {
		t.Errorf("question_text = %q", *updated.QuestionText)
	}
}

func TestUpdateLegacyExplicitNullClearsReference(t *testing.T) {
	subject := model.Subject{ID: uuid.New(), Name: "Maths"}
	exam := model.Exam{ID: uuid.New(), Name: "Boards"}
	qtype := model.QuestionTypeRef{ID: uuid.New(), Name: "multiple-choice"}
	difficulty := model.Difficulty{ID: uuid.New(), Level: model.DifficultyEasy}
	catalog := &fakeCatalog{
		subjects:     []model.Subject{subject},
		exams:        []model.Exam{exam},
		types:        []model.QuestionTypeRef{qtype},
		difficulties: []model.Difficulty{difficulty},
	}
	store := newFakeQuestionStore()
	svc := newQuestionService(store, catalog)

	q, err := svc.CreateLegacy(context.Background(), model.LegacyQuestionInput{
		Subject:    strptr(subject.ID.String()),
		Exam:       strptr(exam.ID.String()),
		Type:       strptr(qtype.ID.String()),
		Difficulty: strptr(difficulty.ID.String()),
		Text:       strptr("old body"),
	})
	if err != nil {
		t.Fatalf("CreateLegacy: %v", err)
	}

	payload, err := model.ParseQuestionPayload([]byte(`{"subject": null, "text": "new body"}`))
	if err != nil {
		t.Fatalf("ParseQuestionPayload: %v", err)
	}

	updated, err := svc.Update(context.Background(), q.ID, payload)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Subject != nil {
		t.Errorf("subject snapshot = %+v, want cleared", updated.Subject)
	}
	if updated.Exam == nil || updated.Exam.ID != exam.ID {
		t.Errorf("exam snapshot = %+v, want untouched", updated.Exam)
	}
	if updated.Text == nil || *updated.Text != "new body" {
		t.Errorf("text = %v, want updated", updated.Text)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc := newQuestionService(newFakeQuestionStore(), &fakeCatalog{})

	_, err := svc.Update(context.Background(), uuid.New(), &model.QuestionPayload{
		Flat: &model.FlatQuestionInput{QuestionText: strptr("x")},
	})
	if !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("err = %v, want ErrQuestionNotFound", err)
	}
}

func TestUpdateLegacyUnknownReference(t *testing.T) {
	store := newFakeQuestionStore()
	svc := newQuestionService(store, &fakeCatalog{})

	q, err := svc.CreateFlat(context.Background(), model.FlatQuestionInput{QuestionText: strptr("Q")})
	if err != nil {
		t.Fatalf("CreateFlat: %v", err)
	}

	_, err = svc.Update(context.Background(), q.ID, &model.QuestionPayload{
		Legacy: &model.LegacyQuestionInput{Subject: strptr(uuid.New().String())},
	})
	if !errors.Is(err, ErrSubjectNotFound) {
		t.Fatalf("err = %v, want ErrSubjectNotFound", err)
	}
}

func TestDeleteQuestion(t *testing.T) {
	store := newFakeQuestionStore()
	svc := newQuestionService(store, &fakeCatalog{})

	q, err := svc.CreateFlat(context.Background(), model.FlatQuestionInput{QuestionText: strptr("Q")})
	if err != nil {
		t.Fatalf("CreateFlat: %v", err)
	}

	if err := svc.Delete(context.Background(), q.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(context.Background(), q.ID); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("second delete err = %v, want ErrQuestionNotFound", err)
	}
}

func TestListClampsPagination(t *testing.T) {
	store := newFakeQuestionStore()
	svc := newQuestionService(store, &fakeCatalog{})

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateFlat(context.Background(), model.FlatQuestionInput{QuestionText: strptr("Q")}); err != nil {
			t.Fatalf("CreateFlat: %v", err)
		}
	}

	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"zero values use defaults", 0, 0, 1, 10},
		{"negative values use defaults", -5, -1, 1, 10},
		{"oversized limit is capped", 1, 500, 1, 100},
		{"valid values pass through", 2, 25, 2, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, pagination, err := svc.List(context.Background(), model.QuestionFilter{}, tt.page, tt.limit)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if pagination.Page != tt.wantPage || pagination.Limit != tt.wantLimit {
				t.Errorf("page/limit = %d/%d, want %d/%d",
					pagination.Page, pagination.Limit, tt.wantPage, tt.wantLimit)
			}
			if pagination.Total != 3 {
				t.Errorf("total = %d, want 3", pagination.Total)
			}
		})
	}
}

func TestListPastEndReturnsEmptyPage(t *testing.T) {
	store := newFakeQuestionStore()
	svc := newQuestionService(store, &fakeCatalog{})

	if _, err := svc.CreateFlat(context.Background(), model.FlatQuestionInput{QuestionText: strptr("Q")}); err != nil {
		t.Fatalf("CreateFlat: %v", err)
	}

	questions, pagination, err := svc.List(context.Background(), model.QuestionFilter{}, 99, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(questions) != 0 {
		t.Errorf("questions = %v, want empty page", questions)
	}
	if pagination.Total != 1 || pagination.Pages != 1 {
		t.Errorf("pagination = %+v", pagination)
	}
}
