package commands

import (
	"writecoach-backend/pkg/utils"
)

// AnalyzeTextCommand submits one text for analysis. The caller picks the
// AnalysisID so the stored result can be read back with GetAnalysisQuery.
type AnalyzeTextCommand struct {
	AnalysisID string   `json:"analysis_id" validate:"required,uuid"`
	UserID     string   `json:"user_id" validate:"required"`
	TextID     string   `json:"text_id" validate:"max=100"`
	Title      string   `json:"title" validate:"max=200"`
	Content    string   `json:"content" validate:"max=50000"`
	Vocabulary []string `json:"vocabulary" validate:"max=1000,dive,max=100"`
}

// Validate validates the command
func (c AnalyzeTextCommand) Validate() error {
	return utils.ValidateStruct(c)
}
