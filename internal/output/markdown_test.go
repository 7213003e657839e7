package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	err := RenderMarkdown(&buf, "Hello **world**", 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Hello") || !strings.Contains(out, "world") {
		t.Errorf("expected rendered markdown to contain 'Hello' and 'world', got: %s", out)
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := RenderMarkdown(&buf, "", 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output for empty content, got: %q", buf.String())
	}
}

func TestMessageToMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bold", "*3* cards to play", "**3** cards to play"},
		{"strike", "~done~", "~~done~~"},
		{"italic and mono unchanged", "_Task_ `Backend`", "_Task_ `Backend`"},
		{"hard breaks", "1. a\n2. b", "1. a  \n2. b"},
		{"paragraphs kept", "header\n\nbody", "header\n\nbody"},
		{"separator bold", "a *|* b", "a **|** b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MessageToMarkdown(tt.in)
			if got != tt.want {
				t.Errorf("MessageToMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderMessagePreservesContent(t *testing.T) {
	body := "`Backend` | *2* cards to play\n\n1. Write migrations\n2. Add indexes"

	var buf bytes.Buffer
	if err := RenderMessage(&buf, body, 80); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, expected := range []string{"Backend", "cards to play", "Write migrations", "Add indexes"} {
		if !strings.Contains(out, expected) {
			t.Errorf("expected output to contain %q, got:\n%s", expected, out)
		}
	}
}
