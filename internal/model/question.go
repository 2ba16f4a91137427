package model

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Option is a single answer choice on a question. No invariant forces exactly
// one correct option; zero or multiple corrects are stored as given.
type Option struct {
	Text      string  `json:"text"`
	IsCorrect bool    `json:"is_correct"`
	ImagePath *string `json:"image_path,omitempty"`
}

// Question is the stored record. It supports two historical layouts at once:
// the legacy layout (embedded catalog snapshots plus text/image_path/options)
// and the flat layout (free-text fields plus an answer letter). A single
// record may carry fields from both, because catalog linkage is attached
// opportunistically alongside the flat fields.
type Question struct {
	ID         uuid.UUID      `json:"id"`
	Subject    *NamedRef      `json:"subject,omitempty"`
	Exam       *NamedRef      `json:"exam,omitempty"`
	Type       *NamedRef      `json:"type,omitempty"`
	Difficulty *DifficultyRef `json:"difficulty,omitempty"`

	QuestionNumber  *string  `json:"question_number,omitempty"`
	FileName        *string  `json:"file_name,omitempty"`
	QuestionText    *string  `json:"question_text,omitempty"`
	IsQuestionImage bool     `json:"isQuestionImage"`
	QuestionImage   *string  `json:"question_image,omitempty"`
	IsOptionImage   bool     `json:"isOptionImage"`
	Options         []Option `json:"options"`
	OptionImages    []string `json:"option_images"`
	SectionName     *string  `json:"section_name,omitempty"`
	QuestionType    *string  `json:"question_type,omitempty"`
	Topic           *string  `json:"topic,omitempty"`
	ExamName        *string  `json:"exam_name,omitempty"`
	SubjectName     *string  `json:"subject_name,omitempty"`
	Chapter         *string  `json:"chapter,omitempty"`
	Answer          *string  `json:"answer,omitempty"`

	Text      *string `json:"text,omitempty"`
	ImagePath *string `json:"image_path,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// FlatQuestionInput is the newer submission layout. All fields are pointers
// so a partial update only touches what the payload carries; explicit nulls
// are seen through the payload's key set, not the pointers.
type FlatQuestionInput struct {
	QuestionNumber  *string   `json:"question_number"`
	FileName        *string   `json:"file_name"`
	QuestionText    *string   `json:"question_text"`
	IsQuestionImage *bool     `json:"isQuestionImage"`
	QuestionImage   *string   `json:"question_image"`
	IsOptionImage   *bool     `json:"isOptionImage"`
	Options         *[]string `json:"options"`
	OptionImages    *[]string `json:"option_images"`
	SectionName     *string   `json:"section_name"`
	QuestionType    *string   `json:"question_type"`
	Topic           *string   `json:"topic"`
	ExamName        *string   `json:"exam_name"`
	Subject         *string   `json:"subject"`
	Chapter         *string   `json:"chapter"`
	Answer          *string   `json:"answer"`
}

// LegacyQuestionInput is the original submission layout, keyed by catalog
// identifiers.
type LegacyQuestionInput struct {
	Subject    *string   `json:"subject"`
	Exam       *string   `json:"exam"`
	Type       *string   `json:"type"`
	Difficulty *string   `json:"difficulty"`
	Text       *string   `json:"text"`
	ImagePath  *string   `json:"image_path"`
	Options    *[]Option `json:"options"`
}

// QuestionPayload is the tagged union of the three accepted ingestion shapes.
// Exactly one of Batch, Flat, Legacy is set. Object payloads also carry the
// set of keys that appeared in the JSON, so a key present with an explicit
// null (pointer nil) can still be told apart from an absent key.
type QuestionPayload struct {
	Batch  []FlatQuestionInput
	Flat   *FlatQuestionInput
	Legacy *LegacyQuestionInput

	keys map[string]struct{}
}

// Present reports whether the named key appeared in an object payload,
// including keys carrying an explicit null. Batch payloads have no key set.
func (p *QuestionPayload) Present(key string) bool {
	_, ok := p.keys[key]
	return ok
}

// ParseQuestionPayload resolves the ingestion shape once at the entry
// boundary. A JSON array is a batch of flat-layout elements; an object with a
// non-empty question_text is flat; anything else is legacy.
func ParseQuestionPayload(data []byte) (*QuestionPayload, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var batch []FlatQuestionInput
		if err := json.Unmarshal(data, &batch); err != nil {
			return nil, err
		}
		return &QuestionPayload{Batch: batch}, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{}, len(raw))
	for k := range raw {
		keys[k] = struct{}{}
	}

	var probe struct {
		QuestionText *string `json:"question_text"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	if probe.QuestionText != nil && *probe.QuestionText != "" {
		var flat FlatQuestionInput
		if err := json.Unmarshal(data, &flat); err != nil {
			return nil, err
		}
		return &QuestionPayload{Flat: &flat, keys: keys}, nil
	}

	var legacy LegacyQuestionInput
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, err
	}
	return &QuestionPayload{Legacy: &legacy, keys: keys}, nil
}

// BuildOptions derives the stored option list from flat-layout plain-string
// options and an answer letter (A marks index 0, B index 1, ...). A letter
// beyond the option count marks no option correct.
func BuildOptions(options []string, answer string) []Option {
	out := make([]Option, len(options))
	for i, text := range options {
		out[i] = Option{
			Text:      text,
			IsCorrect: answer == string(rune('A'+i)),
		}
	}
	return out
}

// QuestionFilter is the set of optional query criteria, ANDed together.
// ID fields match the embedded catalog snapshots; name fields match the flat
// free-text columns exactly; Search is a case-insensitive substring match
// over either text field.
type QuestionFilter struct {
	Subject     string
	Exam        string
	Type        string
	Difficulty  string
	SubjectName string
	ExamName    string
	Chapter     string
	FileName    string
	Search      string
}

// BatchResult reports the outcome of a bulk submission. A failed element
// contributes an error string without aborting the rest of the batch, so
// partial success is a normal outcome.
type BatchResult struct {
	Success   bool       `json:"success"`
	Count     int        `json:"count"`
	Questions []Question `json:"questions"`
	Errors    []string   `json:"errors,omitempty"`
}
