package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// QuestionOptions is the tagged options variant stored in the questions
// table. Every question carries a kind; choice-kind questions carry an
// ordered list of choices. Malformed blobs are rejected on scan rather
// than branched on at read time.
type QuestionOptions struct {
	Kind    string   `json:"type"`
	Choices []string `json:"choices,omitempty"`
}

const (
	QuestionKindChoice    = "mcq"
	QuestionKindTrueFalse = "truefalse"
	QuestionKindShort     = "short"
)

var ErrMalformedOptions = errors.New("malformed question options")

// Validate rejects shapes the evaluator cannot work with.
func (o QuestionOptions) Validate() error {
	switch o.Kind {
	case QuestionKindChoice:
		if len(o.Choices) < 2 {
			return fmt.Errorf("%w: kind %q requires at least two choices", ErrMalformedOptions, o.Kind)
		}
	case QuestionKindTrueFalse, QuestionKindShort:
		// choices optional
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrMalformedOptions, o.Kind)
	}
	return nil
}

func (o QuestionOptions) Value() (driver.Value, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	b, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (o *QuestionOptions) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*o = QuestionOptions{}
		return nil
	default:
		return fmt.Errorf("%w: unsupported column type %T", ErrMalformedOptions, value)
	}

	// Legacy rows stored a bare choices array instead of the tagged object.
	var bare []string
	if err := json.Unmarshal(raw, &bare); err == nil {
		*o = QuestionOptions{Kind: QuestionKindChoice, Choices: bare}
		return nil
	}

	var tagged QuestionOptions
	if err := json.Unmarshal(raw, &tagged); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedOptions, err)
	}
	if tagged.Kind == "" {
		return fmt.Errorf("%w: missing kind", ErrMalformedOptions)
	}
	*o = tagged
	return nil
}

type Question struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	ExamID        uint            `json:"exam_id" gorm:"not null;index"`
	Text          string          `json:"text" gorm:"column:question_text;type:text;not null"`
	Options       QuestionOptions `json:"options" gorm:"type:jsonb;not null"`
	CorrectAnswer string          `json:"correct_answer" gorm:"not null"`
	Marks         float64         `json:"marks" gorm:"not null"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}
