package config

// DomainConfig holds the business rules applied to submitted texts
type DomainConfig struct {
	// Content constraints
	MaxContentLength         int
	MaxTitleLength           int
	MaxVocabularyEntries     int
	MaxVocabularyEntryLength int
	AllowEmptyContent        bool

	// Spell checking
	MaxSuggestions   int
	DictionaryLocale string

	// Connector feedback thresholds
	Feedback FeedbackThresholds

	// Feature flags
	EnableFeedback bool
}

// FeedbackThresholds drive the connector and length feedback rules
type FeedbackThresholds struct {
	MinWordCount                 int     `json:"minWordCount" yaml:"min_word_count" toml:"min_word_count"`
	MinWordsForConnectorAnalysis int     `json:"minWordsForConnectorAnalysis" yaml:"min_words_for_connector_analysis" toml:"min_words_for_connector_analysis"`
	BasicConnectorMaxRatio       float64 `json:"basicConnectorMaxRatio" yaml:"basic_connector_max_ratio" toml:"basic_connector_max_ratio"`
	LengthSuggestionCount        int     `json:"lengthSuggestionCount" yaml:"length_suggestion_count" toml:"length_suggestion_count"`
	ExcessiveSuggestionCount     int     `json:"excessiveSuggestionCount" yaml:"excessive_suggestion_count" toml:"excessive_suggestion_count"`
}

// DefaultFeedbackThresholds returns the stock feedback thresholds
func DefaultFeedbackThresholds() FeedbackThresholds {
	return FeedbackThresholds{
		MinWordCount:                 100,
		MinWordsForConnectorAnalysis: 50,
		BasicConnectorMaxRatio:       0.15,
		LengthSuggestionCount:        8,
		ExcessiveSuggestionCount:     10,
	}
}

// Validate reports whether the thresholds are usable
func (f FeedbackThresholds) Validate() bool {
	return f.MinWordCount > 0 &&
		f.MinWordsForConnectorAnalysis > 0 &&
		f.BasicConnectorMaxRatio > 0 && f.BasicConnectorMaxRatio <= 1 &&
		f.LengthSuggestionCount >= 0 &&
		f.ExcessiveSuggestionCount >= 0
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxContentLength:         50000,
		MaxTitleLength:           200,
		MaxVocabularyEntries:     1000,
		MaxVocabularyEntryLength: 100,
		AllowEmptyContent:        true,

		MaxSuggestions:   3,
		DictionaryLocale: "en_US",

		Feedback: DefaultFeedbackThresholds(),

		EnableFeedback: true,
	}
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	config.MaxTitleLength = 150

	return config
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	config.MaxVocabularyEntries = 10000

	return config
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}
