package catalog

import "strings"

// Rule maps any of its keywords to a category id.
type Rule struct {
	Category string
	Keywords []string
}

// Classifier evaluates rules in order; the first rule with a keyword
// contained in the query wins.
type Classifier struct {
	rules []Rule
}

func NewClassifier(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

func DefaultClassifier() *Classifier {
	return NewClassifier([]Rule{
		{Category: "cleaning", Keywords: []string{"vacuum", "mop", "roborock", "roomba"}},
		{Category: "smart-home", Keywords: []string{"doorbell", "camera", "security", "home"}},
		{Category: "streaming", Keywords: []string{"stream", "roku", "tv", "chromecast", "fire"}},
		{Category: "networking", Keywords: []string{"wifi", "mesh", "router"}},
		{Category: "power", Keywords: []string{"power", "backup", "battery", "generator"}},
	})
}

func (c *Classifier) Classify(query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(q, kw) {
				return r.Category, true
			}
		}
	}
	return "", false
}

func (c *Classifier) Rules() []Rule { return c.rules }
