package localdump

import (
	"encoding/json"
	"os"
	"path"
	"reflect"
	"strings"
	"testing"

	"github.com/adamwolf/export-help-scout-docs/helpscout"
)

func TestSanitizeSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain slug untouched",
			input:    "setup-guide",
			expected: "setup-guide",
		},
		{
			name:     "uppercase and spaces",
			input:    "Setup Guide",
			expected: "setup-guide",
		},
		{
			name:     "path separators and dots stripped",
			input:    "../../etc/passwd",
			expected: "etc-passwd",
		},
		{
			name:     "unicode and punctuation collapse",
			input:    "FAQ: wie funktioniert's? — äh",
			expected: "faq-wie-funktioniert-s-h",
		},
		{
			name:     "nothing usable left",
			input:    "!!!///***",
			expected: "",
		},
		{
			name:     "long titles are truncated",
			input:    strings.Repeat("a", 300),
			expected: strings.Repeat("a", 100),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeSlug(tt.input)
			if got != tt.expected {
				t.Errorf("sanitizeSlug(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAssignFilenames_CollisionsGetSuffixes(t *testing.T) {
	dir := t.TempDir()

	refs := []helpscout.ArticleRef{
		{ID: "1", Slug: "faq"},
		{ID: "2", Slug: "FAQ"},
		{ID: "3", Slug: "faq!"},
		{ID: "4", Slug: "setup"},
	}

	names := assignFilenames(dir, refs)

	want := map[string]string{
		"1": "faq.json",
		"2": "faq-1.json",
		"3": "faq-2.json",
		"4": "setup.json",
	}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("assignFilenames() = %v, want %v", names, want)
	}
}

func TestAssignFilenames_AvoidsFilesAlreadyOnDisk(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(path.Join(dir, "faq.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	names := assignFilenames(dir, []helpscout.ArticleRef{{ID: "1", Slug: "faq"}})

	if names["1"] != "faq-1.json" {
		t.Errorf("names[1] = %q, want %q", names["1"], "faq-1.json")
	}
}

func TestAssignFilenames_FallsBackToNameThenID(t *testing.T) {
	dir := t.TempDir()

	refs := []helpscout.ArticleRef{
		{ID: "9", Slug: "", Name: "Getting Started"},
		{ID: "10", Slug: "///", Name: "###"},
	}

	names := assignFilenames(dir, refs)

	if names["9"] != "getting-started.json" {
		t.Errorf("names[9] = %q, want %q", names["9"], "getting-started.json")
	}
	if names["10"] != "10.json" {
		t.Errorf("names[10] = %q, want %q", names["10"], "10.json")
	}
}

func TestWriteArticleIntoLocal_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	exporter := Exporter{StorePath: dir}

	payload := `{"article":{"id":"42","title":"Setup Guide","body":"..."}}`
	article := &helpscout.Article{ID: "42", Raw: json.RawMessage(payload)}

	abs, err := exporter.WriteArticleIntoLocal(article, "setup-guide.json")
	if err != nil {
		t.Fatalf("WriteArticleIntoLocal() error = %v", err)
	}
	if abs != path.Join(dir, "setup-guide.json") {
		t.Errorf("written path = %q, want it under the store path", abs)
	}

	written, err := os.ReadFile(abs)
	if err != nil {
		t.Fatalf("couldn't read back written file: %v", err)
	}

	// Formatting may differ, the value may not.
	var got, want any
	if err := json.Unmarshal(written, &got); err != nil {
		t.Fatalf("written file isn't valid JSON: %v", err)
	}
	if err := json.Unmarshal([]byte(payload), &want); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round-tripped value = %v, want %v", got, want)
	}
}

func TestWriteArticleIntoLocal_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	exporter := Exporter{StorePath: dir}

	article := &helpscout.Article{ID: "1", Raw: json.RawMessage(`{"a":1}`)}
	if _, err := exporter.WriteArticleIntoLocal(article, "a.json"); err != nil {
		t.Fatalf("WriteArticleIntoLocal() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".article-") {
			t.Errorf("temp file %s left behind", entry.Name())
		}
	}
}
