package services

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed connectors.yaml
var defaultConnectorsYAML []byte

// ConnectorCatalog is the reference list of basic and advanced connectors.
type ConnectorCatalog struct {
	Basic    []string `yaml:"basic"`
	Advanced []string `yaml:"advanced"`
}

// DefaultConnectorCatalog returns the built-in connector lists.
func DefaultConnectorCatalog() *ConnectorCatalog {
	catalog, err := ParseConnectorCatalog(defaultConnectorsYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded connector catalog: %v", err))
	}
	return catalog
}

// ParseConnectorCatalog reads a catalog document. Entries are trimmed and
// lower-cased; blank entries are dropped.
func ParseConnectorCatalog(data []byte) (*ConnectorCatalog, error) {
	var catalog ConnectorCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse connector catalog: %w", err)
	}

	catalog.Basic = cleanConnectors(catalog.Basic)
	catalog.Advanced = cleanConnectors(catalog.Advanced)
	if len(catalog.Basic) == 0 || len(catalog.Advanced) == 0 {
		return nil, fmt.Errorf("connector catalog needs basic and advanced entries")
	}
	return &catalog, nil
}

func cleanConnectors(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		entry = strings.ToLower(strings.Join(strings.Fields(entry), " "))
		if entry != "" {
			out = append(out, entry)
		}
	}
	return out
}

func isPhrase(connector string) bool {
	return strings.Contains(connector, " ")
}

// MultiWordAdvanced returns the advanced connectors made of several words.
func (c *ConnectorCatalog) MultiWordAdvanced() []string {
	return filterConnectors(c.Advanced, true)
}

// SingleWordAdvanced returns the one-word advanced connectors.
func (c *ConnectorCatalog) SingleWordAdvanced() []string {
	return filterConnectors(c.Advanced, false)
}

// SingleWordBasic returns the one-word basic connectors.
func (c *ConnectorCatalog) SingleWordBasic() []string {
	return filterConnectors(c.Basic, false)
}

func filterConnectors(entries []string, phrases bool) []string {
	var out []string
	for _, entry := range entries {
		if isPhrase(entry) == phrases {
			out = append(out, entry)
		}
	}
	return out
}
