package services

import "writecoach-backend/domain/textmatch"

// ConnectorCounter counts basic and advanced connectors in a text
type ConnectorCounter interface {
	CountConnectors(text string) ConnectorCountResult
}

type connectorKind int

const (
	kindBasic connectorKind = iota
	kindAdvanced
)

type connectorPass struct {
	kind    connectorKind
	needles [][]rune
}

// DefaultConnectorCounter matches connectors in three passes: multi-word
// advanced phrases, then basic words, then single-word advanced words. A
// match is counted only when it does not overlap one counted earlier.
type DefaultConnectorCounter struct {
	passes []connectorPass
}

// NewConnectorCounter builds a counter for the given catalog
func NewConnectorCounter(catalog *ConnectorCatalog) *DefaultConnectorCounter {
	if catalog == nil {
		catalog = DefaultConnectorCatalog()
	}
	return &DefaultConnectorCounter{
		passes: []connectorPass{
			{kind: kindAdvanced, needles: toRunes(catalog.MultiWordAdvanced())},
			{kind: kindBasic, needles: toRunes(catalog.SingleWordBasic())},
			{kind: kindAdvanced, needles: toRunes(catalog.SingleWordAdvanced())},
		},
	}
}

func toRunes(words []string) [][]rune {
	out := make([][]rune, len(words))
	for i, w := range words {
		out[i] = []rune(w)
	}
	return out
}

// CountConnectors implements ConnectorCounter
func (c *DefaultConnectorCounter) CountConnectors(text string) ConnectorCountResult {
	var result ConnectorCountResult
	lower := textmatch.Fold(text)

	var counted textmatch.SpanSet
	for _, pass := range c.passes {
		for _, needle := range pass.needles {
			for _, span := range textmatch.FindWholeWord(lower, needle) {
				if !counted.Claim(span) {
					continue
				}
				if pass.kind == kindBasic {
					result.BasicCount++
				} else {
					result.AdvancedCount++
				}
			}
		}
	}
	return result
}
