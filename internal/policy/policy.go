// Package policy loads the system instruction that is prepended to every
// chat conversation. The instruction is kept as a YAML document so the
// merchant catalog can change without a rebuild.
package policy

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"gadgetfinder-backend/internal/models"
)

//go:embed default_policy.yaml
var defaultDocument []byte

type Merchant struct {
	Name string   `yaml:"name"`
	URL  string   `yaml:"url"`
	Tags []string `yaml:"tags"`
}

// Headings titles each rendered section. Unset headings fall back to
// defaultHeadings.
type Headings struct {
	Always    string `yaml:"always"`
	Merchants string `yaml:"merchants"`
	Affiliate string `yaml:"affiliate"`
	Example   string `yaml:"example"`
	LinkStyle string `yaml:"link_style"`
	Style     string `yaml:"style"`
}

var defaultHeadings = Headings{
	Always:    "ALWAYS",
	Merchants: "MERCHANTS",
	Affiliate: "AFFILIATE BEHAVIOR",
	Example:   "Example",
	LinkStyle: "LINK STYLE",
	Style:     "STYLE",
}

func (h *Headings) fillDefaults() {
	for _, f := range []struct {
		dst *string
		def string
	}{
		{&h.Always, defaultHeadings.Always},
		{&h.Merchants, defaultHeadings.Merchants},
		{&h.Affiliate, defaultHeadings.Affiliate},
		{&h.Example, defaultHeadings.Example},
		{&h.LinkStyle, defaultHeadings.LinkStyle},
		{&h.Style, defaultHeadings.Style},
	} {
		if strings.TrimSpace(*f.dst) == "" {
			*f.dst = f.def
		}
	}
}

// Document is the on-disk form of the system policy.
type Document struct {
	Persona        string     `yaml:"persona"`
	Scope          string     `yaml:"scope"`
	Headings       Headings   `yaml:"headings"`
	Always         []string   `yaml:"always"`
	Merchants      []Merchant `yaml:"merchants"`
	AffiliateRules []string   `yaml:"affiliate_rules"`
	Examples       []string   `yaml:"examples"`
	LinkRules      []string   `yaml:"link_rules"`
	Style          []string   `yaml:"style"`
}

// Parse decodes and validates a policy document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse policy document")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	doc.Headings.fillDefaults()
	return &doc, nil
}

func (d *Document) Validate() error {
	if strings.TrimSpace(d.Persona) == "" {
		return errors.New("policy document has no persona")
	}
	if len(d.Merchants) == 0 {
		return errors.New("policy document lists no merchants")
	}
	for i, m := range d.Merchants {
		if m.Name == "" || m.URL == "" {
			return errors.Errorf("merchant %d needs both name and url", i)
		}
	}
	return nil
}

// Render produces the system instruction text.
func (d *Document) Render() string {
	var sb strings.Builder

	sb.WriteString(strings.TrimSpace(d.Persona))
	sb.WriteString("\n")
	if d.Scope != "" {
		sb.WriteString(strings.TrimSpace(d.Scope))
		sb.WriteString("\n")
	}

	h := d.Headings
	h.fillDefaults()

	writeSection(&sb, h.Always, d.Always)

	fmt.Fprintf(&sb, "\n%s:\n", h.Merchants)
	for _, m := range d.Merchants {
		fmt.Fprintf(&sb, "• %s - %s", m.Name, m.URL)
		if len(m.Tags) > 0 {
			fmt.Fprintf(&sb, " (%s)", strings.Join(m.Tags, ", "))
		}
		sb.WriteString("\n")
	}

	rules := append([]string{}, d.AffiliateRules...)
	for _, ex := range d.Examples {
		rules = append(rules, h.Example+": "+ex)
	}
	writeSection(&sb, h.Affiliate, rules)
	writeSection(&sb, h.LinkStyle, d.LinkRules)
	writeSection(&sb, h.Style, d.Style)

	return strings.TrimRight(sb.String(), "\n")
}

func writeSection(sb *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s:\n", title)
	for _, l := range lines {
		fmt.Fprintf(sb, "- %s\n", l)
	}
}

// Message wraps the rendered text as the system chat message.
func (d *Document) Message() models.ChatMessage {
	return models.ChatMessage{Role: models.RoleSystem, Content: d.Render()}
}

// Default returns the built-in policy document.
func Default() *Document {
	doc, err := Parse(defaultDocument)
	if err != nil {
		panic(fmt.Sprintf("embedded policy document is invalid: %v", err))
	}
	return doc
}
