package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "writecoach-backend/pkg/errors"
)

type sample struct {
	UserID     string   `validate:"required"`
	Content    string   `validate:"max=10"`
	Vocabulary []string `validate:"max=2,dive,max=5"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		input   sample
		wantMsg string
	}{
		{"valid", sample{UserID: "u1", Content: "short", Vocabulary: []string{"a"}}, ""},
		{"missing user", sample{}, "userid is required"},
		{"content too long", sample{UserID: "u1", Content: strings.Repeat("x", 11)}, "content must be at most 10 characters"},
		{"too many entries", sample{UserID: "u1", Vocabulary: []string{"a", "b", "c"}}, "vocabulary must have at most 2 entries"},
		{"entry too long", sample{UserID: "u1", Vocabulary: []string{"toolong"}}, "vocabulary[0] must be at most 5 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, pkgerrors.IsValidation(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
