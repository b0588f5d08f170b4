package services

import (
	"fmt"
	"math/rand"
	"sync"

	"writecoach-backend/domain/config"
)

// FeedbackType identifies which feedback rule fired
type FeedbackType string

const (
	FeedbackMissingConnectors FeedbackType = "missing_connectors"
	FeedbackLength            FeedbackType = "length"
	FeedbackExcessiveBasic    FeedbackType = "excessive_basic_connectors"
	FeedbackPositive          FeedbackType = "positive_feedback"
	FeedbackNone              FeedbackType = "no_suggestion"
)

// Severity grades a piece of feedback
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
)

// Feedback is the single writing tip produced for an analysed text
type Feedback struct {
	Type                FeedbackType `json:"type"`
	Severity            Severity     `json:"severity"`
	Message             string       `json:"message"`
	Recommendation      string       `json:"recommendation"`
	SuggestedConnectors []string     `json:"suggestedConnectors"`
}

// ThresholdSource supplies the current feedback thresholds
type ThresholdSource interface {
	Thresholds() config.FeedbackThresholds
}

// StaticThresholds is a ThresholdSource that never changes
type StaticThresholds config.FeedbackThresholds

// Thresholds implements ThresholdSource
func (s StaticThresholds) Thresholds() config.FeedbackThresholds {
	return config.FeedbackThresholds(s)
}

// FeedbackAdvisor turns word and connector counts into one writing tip
type FeedbackAdvisor interface {
	Advise(wordCount, basicCount, advancedCount int) Feedback
}

// DefaultFeedbackAdvisor evaluates its rules top to bottom and returns the
// first that applies.
type DefaultFeedbackAdvisor struct {
	catalog    *ConnectorCatalog
	thresholds ThresholdSource

	mu  sync.Mutex
	rng *rand.Rand
}

// NewFeedbackAdvisor creates an advisor. rng picks the suggested connectors.
func NewFeedbackAdvisor(catalog *ConnectorCatalog, thresholds ThresholdSource, rng *rand.Rand) *DefaultFeedbackAdvisor {
	if catalog == nil {
		catalog = DefaultConnectorCatalog()
	}
	if thresholds == nil {
		thresholds = StaticThresholds(config.DefaultFeedbackThresholds())
	}
	return &DefaultFeedbackAdvisor{
		catalog:    catalog,
		thresholds: thresholds,
		rng:        rng,
	}
}

// Advise implements FeedbackAdvisor
func (a *DefaultFeedbackAdvisor) Advise(wordCount, basicCount, advancedCount int) Feedback {
	limits := a.thresholds.Thresholds()
	total := basicCount + advancedCount

	if wordCount >= limits.MinWordsForConnectorAnalysis && total == 0 {
		return Feedback{
			Type:                FeedbackMissingConnectors,
			Severity:            SeverityWarning,
			Message:             "The text does not contain any connectors.",
			Recommendation:      "Start by using basic connectors to link your ideas and improve the flow.",
			SuggestedConnectors: append([]string(nil), a.catalog.Basic...),
		}
	}

	if wordCount < limits.MinWordCount && total > 0 {
		return Feedback{
			Type:     FeedbackLength,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("The text is too short (%d words).", wordCount),
			Recommendation: fmt.Sprintf("Expand your ideas with more details, examples or explanations, "+
				"and use advanced connectors to relate them. Aim for at least %d words.", limits.MinWordCount),
			SuggestedConnectors: a.pick(a.catalog.MultiWordAdvanced(), limits.LengthSuggestionCount),
		}
	}

	if wordCount >= limits.MinWordCount {
		basicRatio := float64(basicCount) / float64(wordCount)
		if basicRatio > limits.BasicConnectorMaxRatio {
			return Feedback{
				Type:                FeedbackExcessiveBasic,
				Severity:            SeverityInfo,
				Message:             "Basic connectors are used very often.",
				Recommendation:      "Try replacing some basic connectors (and, but, so) with advanced alternatives to make the text clearer.",
				SuggestedConnectors: a.pick(a.catalog.Advanced, limits.ExcessiveSuggestionCount),
			}
		}

		return Feedback{
			Type:                FeedbackPositive,
			Severity:            SeveritySuccess,
			Message:             fmt.Sprintf("Great work! The text has a good length (%d words) and a balanced use of connectors.", wordCount),
			Recommendation:      "Keep practising!",
			SuggestedConnectors: []string{},
		}
	}

	return Feedback{
		Type:                FeedbackNone,
		Severity:            SeverityInfo,
		Message:             fmt.Sprintf("The text is too short (%d words).", wordCount),
		Recommendation:      "Keep writing to receive suggestions.",
		SuggestedConnectors: []string{},
	}
}

// pick returns up to n connectors in random order.
func (a *DefaultFeedbackAdvisor) pick(connectors []string, n int) []string {
	shuffled := append([]string(nil), connectors...)

	a.mu.Lock()
	if a.rng != nil {
		a.rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
	} else {
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
	}
	a.mu.Unlock()

	if n < len(shuffled) {
		shuffled = shuffled[:n]
	}
	return shuffled
}
