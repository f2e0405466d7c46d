// Package classifier maps resume text to interview question categories
// using a YAML skill taxonomy.
package classifier

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// taxonomy is the on-disk format: category name to explicit keyword list.
// Categories with no explicit keywords fall back to keywords derived from
// the category name itself.
type taxonomy struct {
	Categories map[string][]string `yaml:"categories"`
}

// KeywordClassifier matches taxonomy keywords against resume text with
// case-insensitive substring search. Deterministic and dependency-free at
// runtime, which keeps resume uploads working without any model backend.
type KeywordClassifier struct {
	keywords map[string][]string
	order    []string
}

var wordPattern = regexp.MustCompile(`[a-z][a-z+#.]{2,}`)

// commonWords are dropped when deriving keywords from category names.
var commonWords = map[string]struct{}{
	"and": {}, "the": {}, "for": {}, "with": {}, "basics": {},
	"fundamentals": {}, "concepts": {}, "skills": {}, "questions": {},
}

// Load reads the taxonomy file and builds a classifier.
func Load(path string) (*KeywordClassifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skill taxonomy %s: %w", path, err)
	}
	var tax taxonomy
	if err := yaml.Unmarshal(data, &tax); err != nil {
		return nil, fmt.Errorf("failed to parse skill taxonomy %s: %w", path, err)
	}
	if len(tax.Categories) == 0 {
		return nil, fmt.Errorf("skill taxonomy %s defines no categories", path)
	}

	c := &KeywordClassifier{keywords: make(map[string][]string, len(tax.Categories))}
	var doc yaml.Node
	// a second pass over the document preserves the file's category order
	if err := yaml.Unmarshal(data, &doc); err == nil {
		c.order = categoryOrder(&doc)
	}
	for name := range tax.Categories {
		if !contains(c.order, name) {
			c.order = append(c.order, name)
		}
	}

	for name, explicit := range tax.Categories {
		kws := make([]string, 0, len(explicit)+2)
		for _, kw := range explicit {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				kws = append(kws, kw)
			}
		}
		if len(kws) == 0 {
			kws = deriveKeywords(name)
		}
		c.keywords[name] = kws
	}
	return c, nil
}

// categoryOrder walks the parsed document for the key order under "categories".
func categoryOrder(doc *yaml.Node) []string {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "categories" {
			continue
		}
		mapping := root.Content[i+1]
		order := make([]string, 0, len(mapping.Content)/2)
		for j := 0; j < len(mapping.Content); j += 2 {
			order = append(order, mapping.Content[j].Value)
		}
		return order
	}
	return nil
}

// deriveKeywords produces search terms from a category name: parenthesized
// qualifiers are stripped, the name is split on separators, and short or
// filler words are dropped.
func deriveKeywords(name string) []string {
	lowered := strings.ToLower(name)
	if idx := strings.Index(lowered, "("); idx >= 0 {
		lowered = lowered[:idx]
	}
	seen := make(map[string]struct{})
	var kws []string
	for _, word := range wordPattern.FindAllString(lowered, -1) {
		if _, common := commonWords[word]; common {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		kws = append(kws, word)
	}
	if len(kws) == 0 {
		kws = []string{strings.TrimSpace(lowered)}
	}
	return kws
}

// Classify returns the categories whose keywords appear in the text, in
// taxonomy order. Empty or keyword-free text yields an empty slice.
func (c *KeywordClassifier) Classify(ctx context.Context, text string) ([]string, error) {
	lowered := strings.ToLower(text)
	if strings.TrimSpace(lowered) == "" {
		return nil, nil
	}
	var matched []string
	for _, name := range c.order {
		for _, kw := range c.keywords[name] {
			if strings.Contains(lowered, kw) {
				matched = append(matched, name)
				break
			}
		}
	}
	return matched, nil
}

// Categories returns all taxonomy categories in file order.
func (c *KeywordClassifier) Categories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
