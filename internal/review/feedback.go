package review

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingFrontMatter indicates the document did not start with a YAML fence.
	ErrMissingFrontMatter = errors.New("review: missing frontmatter")
	// ErrMalformedFrontMatter indicates the YAML block could not be parsed.
	ErrMalformedFrontMatter = errors.New("review: malformed frontmatter")
)

// Metadata is the frontmatter stamped on every feedback document.
type Metadata struct {
	ReviewID  string
	Day       int
	Files     []string
	CreatedAt time.Time
	Checksum  string
	Findings  int
	Rules     map[string]int
}

type feedbackEnvelope struct {
	Review feedbackMetadata `yaml:"review"`
}

type feedbackMetadata struct {
	ID       string         `yaml:"id"`
	Day      int            `yaml:"day"`
	Files    []string       `yaml:"files,omitempty"`
	Created  string         `yaml:"created"`
	Checksum string         `yaml:"checksum"`
	Findings int            `yaml:"findings"`
	Rules    map[string]int `yaml:"rules,omitempty"`
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

// ParseFrontMatter extracts the metadata block and body from a feedback
// document that starts with `---` YAML fences.
func ParseFrontMatter(content []byte) (Metadata, []byte, error) {
	if len(content) == 0 {
		return Metadata{}, nil, ErrMissingFrontMatter
	}
	normalized := bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return Metadata{}, nil, ErrMissingFrontMatter
	}
	parts := bytes.SplitN(normalized[4:], []byte("\n---\n"), 2)
	if len(parts) < 2 {
		return Metadata{}, nil, ErrMalformedFrontMatter
	}
	var envelope feedbackEnvelope
	if err := yaml.Unmarshal(parts[0], &envelope); err != nil {
		return Metadata{}, nil, fmt.Errorf("review: parse frontmatter: %w", err)
	}
	meta, err := envelope.toMetadata()
	if err != nil {
		return Metadata{}, nil, err
	}
	return meta, parts[1], nil
}

// WriteFrontMatter renders metadata + body with YAML fences.
func WriteFrontMatter(meta Metadata, body []byte) ([]byte, error) {
	if meta.ReviewID == "" {
		return nil, fmt.Errorf("review: metadata missing review id")
	}
	envelope := feedbackEnvelope{Review: feedbackMetadata{
		ID:       meta.ReviewID,
		Day:      meta.Day,
		Files:    append([]string{}, meta.Files...),
		Created:  meta.CreatedAt.UTC().Format(timeLayout),
		Checksum: meta.Checksum,
		Findings: meta.Findings,
		Rules:    meta.Rules,
	}}
	data, err := yaml.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("review: encode frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(bytes.TrimRight(data, "\n"))
	buf.WriteString("\n---\n\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

func (e feedbackEnvelope) toMetadata() (Metadata, error) {
	m := e.Review
	if m.ID == "" || m.Day == 0 || m.Checksum == "" {
		return Metadata{}, ErrMalformedFrontMatter
	}
	if strings.TrimSpace(m.Created) == "" {
		return Metadata{}, fmt.Errorf("review: empty created timestamp")
	}
	created, err := time.Parse(timeLayout, m.Created)
	if err != nil {
		return Metadata{}, fmt.Errorf("review: parse created timestamp: %w", err)
	}
	return Metadata{
		ReviewID:  m.ID,
		Day:       m.Day,
		Files:     append([]string{}, m.Files...),
		CreatedAt: created.UTC(),
		Checksum:  m.Checksum,
		Findings:  m.Findings,
		Rules:     m.Rules,
	}, nil
}

// renderBody writes the human readable part of a feedback document.
func renderBody(day int, files []string, findings []Finding) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# Day %02d style review\n\n", day)
	b.WriteString("Files reviewed:\n")
	for _, f := range files {
		fmt.Fprintf(&b, "- `%s`\n", f)
	}
	b.WriteString("\n## Findings\n\n")
	if len(findings) == 0 {
		b.WriteString("No findings. The solution reads as idiomatic Go.\n")
		return []byte(b.String())
	}
	for _, f := range findings {
		fmt.Fprintf(&b, "- **%s** `%s` %s:%d: %s\n", f.Severity, f.Rule, f.File, f.Line, f.Message)
	}
	b.WriteString("\n## Rules\n\n")
	seen := map[string]bool{}
	for _, rule := range Rules() {
		for _, f := range findings {
			if f.Rule == rule.ID && !seen[rule.ID] {
				seen[rule.ID] = true
				fmt.Fprintf(&b, "- `%s`: %s.\n", rule.ID, rule.Summary)
			}
		}
	}
	return []byte(b.String())
}

func countRules(findings []Finding) map[string]int {
	if len(findings) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, f := range findings {
		counts[f.Rule]++
	}
	return counts
}
