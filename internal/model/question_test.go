package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    QuestionOptions
		wantErr bool
	}{
		{"mcq with choices", QuestionOptions{Kind: QuestionKindChoice, Choices: []string{"a", "b"}}, false},
		{"mcq with one choice", QuestionOptions{Kind: QuestionKindChoice, Choices: []string{"a"}}, true},
		{"mcq without choices", QuestionOptions{Kind: QuestionKindChoice}, true},
		{"truefalse without choices", QuestionOptions{Kind: QuestionKindTrueFalse}, false},
		{"short without choices", QuestionOptions{Kind: QuestionKindShort}, false},
		{"unknown kind", QuestionOptions{Kind: "essay"}, true},
		{"empty kind", QuestionOptions{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedOptions)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuestionOptionsValueScanRoundTrip(t *testing.T) {
	in := QuestionOptions{Kind: QuestionKindChoice, Choices: []string{"Paris", "London"}}

	v, err := in.Value()
	require.NoError(t, err)

	var out QuestionOptions
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)
}

func TestQuestionOptionsValueRejectsMalformed(t *testing.T) {
	_, err := QuestionOptions{Kind: "essay"}.Value()
	assert.ErrorIs(t, err, ErrMalformedOptions)
}

func TestQuestionOptionsScanLegacyBareArray(t *testing.T) {
	// Rows written before the tagged format stored just the choice list.
	var out QuestionOptions
	require.NoError(t, out.Scan([]byte(`["yes","no"]`)))

	assert.Equal(t, QuestionKindChoice, out.Kind)
	assert.Equal(t, []string{"yes", "no"}, out.Choices)
}

func TestQuestionOptionsScanTaggedObject(t *testing.T) {
	var out QuestionOptions
	require.NoError(t, out.Scan(`{"type":"short"}`))

	assert.Equal(t, QuestionKindShort, out.Kind)
	assert.Empty(t, out.Choices)
}

func TestQuestionOptionsScanRejectsMalformed(t *testing.T) {
	var out QuestionOptions

	assert.ErrorIs(t, out.Scan([]byte(`{"choices":["a"]}`)), ErrMalformedOptions)
	assert.ErrorIs(t, out.Scan([]byte(`not json`)), ErrMalformedOptions)
	assert.ErrorIs(t, out.Scan(42), ErrMalformedOptions)
}

func TestQuestionOptionsScanNil(t *testing.T) {
	var out QuestionOptions
	require.NoError(t, out.Scan(nil))
	assert.Equal(t, QuestionOptions{}, out)
}
