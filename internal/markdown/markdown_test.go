package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "paragraphs",
			input:    "First line.\n\nSecond line.",
			contains: []string{"<p>First line.</p>", "<p>Second line.</p>"},
		},
		{
			name:     "emphasis",
			input:    "Grown at **900 metres**.",
			contains: []string{"<strong>900 metres</strong>"},
		},
		{
			name:     "raw html escaped",
			input:    "<script>alert(1)</script>",
			excludes: []string{"<script>"},
		},
		{
			name:     "typographer",
			input:    `The "valley" -- misty`,
			contains: []string{"&ldquo;valley&rdquo;", "&ndash;"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML(%q) = %q, missing %q", tt.input, got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("ToHTML(%q) = %q, should not contain %q", tt.input, got, bad)
				}
			}
		})
	}
}

func TestProse(t *testing.T) {
	got := string(Prose("Coffee & pepper"))
	if !strings.Contains(got, "Coffee &amp; pepper") {
		t.Errorf("Prose() = %q, want escaped ampersand", got)
	}
}
