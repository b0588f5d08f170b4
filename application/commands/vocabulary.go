package commands

import (
	"strings"

	pkgerrors "writecoach-backend/pkg/errors"
	"writecoach-backend/pkg/utils"
)

// AddVocabularyCommand adds entries to a user's personal vocabulary
type AddVocabularyCommand struct {
	UserID string   `json:"user_id" validate:"required"`
	Words  []string `json:"words" validate:"required,min=1,max=1000,dive,min=1,max=100"`
}

// Validate validates the command
func (c AddVocabularyCommand) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return err
	}
	for _, w := range c.Words {
		if strings.TrimSpace(w) == "" {
			return pkgerrors.NewValidationError("vocabulary entries cannot be blank")
		}
	}
	return nil
}

// RemoveVocabularyCommand deletes one entry from a user's vocabulary
type RemoveVocabularyCommand struct {
	UserID string `json:"user_id" validate:"required"`
	Word   string `json:"word" validate:"required,max=100"`
}

// Validate validates the command
func (c RemoveVocabularyCommand) Validate() error {
	return utils.ValidateStruct(c)
}
