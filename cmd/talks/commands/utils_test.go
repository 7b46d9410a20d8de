// ABOUTME: Tests for shared utility functions used by CLI commands
// ABOUTME: Verifies truncate, contains, count validation and format resolution

package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{
			name:   "short string unchanged",
			input:  "hello",
			maxLen: 10,
			want:   "hello",
		},
		{
			name:   "exact length unchanged",
			input:  "hello",
			maxLen: 5,
			want:   "hello",
		},
		{
			name:   "long string truncated",
			input:  "hello world",
			maxLen: 8,
			want:   "hello...",
		},
		{
			name:   "very short maxLen",
			input:  "hello",
			maxLen: 2,
			want:   "he",
		},
		{
			name:   "maxLen equals 3",
			input:  "hello",
			maxLen: 3,
			want:   "hel",
		},
		{
			name:   "empty string",
			input:  "",
			maxLen: 10,
			want:   "",
		},
		{
			name:   "unicode string",
			input:  "你好世界！",
			maxLen: 3,
			want:   "你好世",
		},
		{
			name:   "unicode truncated with ellipsis",
			input:  "你好世界你好世界",
			maxLen: 5,
			want:   "你好...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name  string
		slice []string
		item  string
		want  bool
	}{
		{
			name:  "item present",
			slice: []string{"auto", "table", "json"},
			item:  "table",
			want:  true,
		},
		{
			name:  "item absent",
			slice: []string{"auto", "table", "json"},
			item:  "xml",
			want:  false,
		},
		{
			name:  "nil slice",
			slice: nil,
			item:  "auto",
			want:  false,
		},
		{
			name:  "case sensitive match",
			slice: []string{"JSON"},
			item:  "json",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := contains(tt.slice, tt.item)
			if got != tt.want {
				t.Errorf("contains(%v, %q) = %v, want %v", tt.slice, tt.item, got, tt.want)
			}
		})
	}
}

func TestValidateCount(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"zero", 0, false},
		{"typical", 5, false},
		{"maximum", 1000, false},
		{"negative", -1, true},
		{"too large", 1001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCount(tt.n, "--count")
			if (err != nil) != tt.wantErr {
				t.Errorf("validateCount(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "--count") {
				t.Errorf("error should name the flag: %v", err)
			}
		})
	}
}

func TestResolveFormat(t *testing.T) {
	original := outputFormat
	defer func() { outputFormat = original }()

	var buf bytes.Buffer

	outputFormat = "auto"
	if got := resolveFormat(&buf); got != "plain" {
		t.Errorf("resolveFormat(buffer) = %q, want plain", got)
	}

	outputFormat = "json"
	if got := resolveFormat(&buf); got != "json" {
		t.Errorf("resolveFormat() = %q, want json", got)
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"#", "Talk"},
		[][]string{{"1", "Orbital Mechanics"}, {"2"}},
		[]columnAlignment{alignRight, alignLeft},
	)
	if !strings.Contains(out, "Orbital Mechanics") {
		t.Errorf("table should contain row text:\n%s", out)
	}
	if renderTable(nil, nil, nil) != "" {
		t.Error("renderTable with no headers should be empty")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, map[string]int{"talks": 3}); err != nil {
		t.Fatalf("writeJSON() error = %v", err)
	}
	if got := buf.String(); got != "{\n  \"talks\": 3\n}\n" {
		t.Errorf("writeJSON() = %q", got)
	}
}
