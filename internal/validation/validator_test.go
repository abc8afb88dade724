package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateNewQuestion(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name       string
		question   string
		answer     string
		categoryID int64
		difficulty int
		wantFields []string
	}{
		{
			name:       "valid",
			question:   "Who let the dogs",
			answer:     "Who who who who",
			categoryID: 2,
			difficulty: 5,
		},
		{
			name:       "empty question and answer",
			question:   "",
			answer:     "",
			categoryID: 2,
			difficulty: 5,
			wantFields: []string{"question", "answer"},
		},
		{
			name:       "whitespace only",
			question:   "   ",
			answer:     "Agra",
			categoryID: 3,
			difficulty: 2,
			wantFields: []string{"question"},
		},
		{
			name:       "missing category and bad difficulty",
			question:   "What is the largest lake in Africa?",
			answer:     "Lake Victoria",
			categoryID: 0,
			difficulty: 0,
			wantFields: []string{"category", "difficulty"},
		},
		{
			name:       "answer too long",
			question:   "Long?",
			answer:     strings.Repeat("a", maxTextBytes+1),
			categoryID: 1,
			difficulty: 1,
			wantFields: []string{"answer bytes"},
		},
		{
			name:       "multi-byte text at the byte limit",
			question:   strings.Repeat("é", maxTextBytes/2),
			answer:     "Oui",
			categoryID: 1,
			difficulty: 1,
		},
		{
			name:       "multi-byte text over the byte limit",
			question:   strings.Repeat("é", maxTextBytes/2+1),
			answer:     "Oui",
			categoryID: 1,
			difficulty: 1,
			wantFields: []string{"question bytes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateNewQuestion(tt.question, tt.answer, tt.categoryID, tt.difficulty)
			var fields []string
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}
