package model

import "testing"

func TestParseQuestionPayload(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string // batch, flat, legacy
	}{
		{
			name: "array is a batch",
			data: `[{"question_text": "Q1"}, {"question_text": "Q2"}]`,
			want: "batch",
		},
		{
			name: "empty array is an empty batch",
			data: `[]`,
			want: "batch",
		},
		{
			name: "object with question_text is flat",
			data: `{"question_text": "What is 2+2?", "options": ["3", "4"]}`,
			want: "flat",
		},
		{
			name: "object without question_text is legacy",
			data: `{"subject": "abc", "text": "State the theorem."}`,
			want: "legacy",
		},
		{
			name: "empty question_text falls through to legacy",
			data: `{"question_text": "", "text": "body"}`,
			want: "legacy",
		},
		{
			name: "null question_text falls through to legacy",
			data: `{"question_text": null}`,
			want: "legacy",
		},
		{
			name: "leading whitespace before array",
			data: "\n\t [{\"question_text\": \"Q1\"}]",
			want: "batch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := ParseQuestionPayload([]byte(tt.data))
			if err != nil {
				t.Fatalf("ParseQuestionPayload: %v", err)
			}
			got := ""
			switch {
			case payload.Batch != nil:
				got = "batch"
			case payload.Flat != nil:
				got = "flat"
			case payload.Legacy != nil:
				got = "legacy"
			}
			if got != tt.want {
				t.Errorf("shape = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseQuestionPayloadKeyPresence(t *testing.T) {
	payload, err := ParseQuestionPayload([]byte(`{"question_text": "Q", "chapter": null, "topic": "Circles"}`))
	if err != nil {
		t.Fatalf("ParseQuestionPayload: %v", err)
	}
	if payload.Flat == nil {
		t.Fatal("shape is not flat")
	}
	if payload.Flat.Chapter != nil {
		t.Errorf("chapter pointer = %v, want nil for an explicit null", *payload.Flat.Chapter)
	}
	if !payload.Present("chapter") {
		t.Error("Present(chapter) = false, want true for a null-valued key")
	}
	if !payload.Present("topic") {
		t.Error("Present(topic) = false, want true")
	}
	if payload.Present("file_name") {
		t.Error("Present(file_name) = true, want false for an absent key")
	}

	// Payloads built without going through the parser have no key set.
	direct := &QuestionPayload{Flat: &FlatQuestionInput{}}
	if direct.Present("chapter") {
		t.Error("Present(chapter) = true on a payload with no key set")
	}
}

func TestParseQuestionPayloadInvalid(t *testing.T) {
	for _, data := range []string{`{`, `[{"question_text": 5}]`, `not json`} {
		if _, err := ParseQuestionPayload([]byte(data)); err == nil {
			t.Errorf("expected error for %q", data)
		}
	}
}

func TestBuildOptions(t *testing.T) {
	tests := []struct {
		name        string
		options     []string
		answer      string
		wantCorrect int // index of the correct option, -1 for none
	}{
		{"answer B marks second option", []string{"3", "4", "5", "6"}, "B", 1},
		{"answer A marks first option", []string{"yes", "no"}, "A", 0},
		{"letter beyond options marks none", []string{"yes", "no"}, "E", -1},
		{"empty answer marks none", []string{"yes", "no"}, "", -1},
		{"lowercase letter does not match", []string{"yes", "no"}, "b", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildOptions(tt.options, tt.answer)
			if len(got) != len(tt.options) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.options))
			}
			for i, opt := range got {
				if opt.Text != tt.options[i] {
					t.Errorf("option %d text = %q, want %q", i, opt.Text, tt.options[i])
				}
				if opt.IsCorrect != (i == tt.wantCorrect) {
					t.Errorf("option %d correct = %v, want %v", i, opt.IsCorrect, i == tt.wantCorrect)
				}
			}
		})
	}
}

func TestUserComplete(t *testing.T) {
	subject := &NamedRef{Name: "Maths"}
	tests := []struct {
		name string
		user User
		want bool
	}{
		{"name and subject", User{Name: "A", Subject: subject}, true},
		{"missing subject", User{Name: "A"}, false},
		{"missing name", User{Subject: subject}, false},
		{"empty profile", User{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}
