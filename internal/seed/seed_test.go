package seed

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kailas-cloud/docsearch/internal/domain"
	"github.com/kailas-cloud/docsearch/internal/domain/document"
)

func TestDefault_CanonicalDocuments(t *testing.T) {
	docs := Default()
	if len(docs) != 4 {
		t.Fatalf("got %d documents, want 4", len(docs))
	}

	want := []struct {
		title string
		ct    document.ContentType
	}{
		{"Introduction to OpenSearch", document.Tutorial},
		{"Latest Tech News", document.News},
		{"Product Review: New Smartphone", document.Review},
		{"Quarterly Financial Report", document.Report},
	}
	for i, w := range want {
		if docs[i].Title() != w.title || docs[i].ContentType() != w.ct {
			t.Errorf("doc[%d] = %q/%q, want %q/%q", i, docs[i].Title(), docs[i].ContentType(), w.title, w.ct)
		}
	}
	if docs[3].Content() != "Company revenue grew by 15% year-over-year, exceeding analysts' expectations." {
		t.Errorf("doc[3] content = %q", docs[3].Content())
	}
}

func TestDefault_StableIDs(t *testing.T) {
	a, b := Default(), Default()
	for i := range a {
		if a[i].ID() != b[i].ID() {
			t.Errorf("doc[%d] id changed between loads: %s vs %s", i, a[i].ID(), b[i].ID())
		}
	}
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	docs, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 4 {
		t.Errorf("got %d documents, want 4", len(docs))
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	data := `
documents:
  - id: custom-1
    title: Go Release Notes
    content: Go 1.25 ships with a new garbage collector experiment.
    content_type: news
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	docs, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 || docs[0].ID() != "custom-1" {
		t.Errorf("docs = %+v", docs)
	}
}

func TestLoad_TOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.toml")
	data := `
[[documents]]
title = "Go Release Notes"
content = "Go 1.25 ships with a new garbage collector experiment."
content_type = "news"

[[documents]]
id = "howto-1"
title = "Writing Table Tests"
content = "Table tests keep cases close to the assertions."
content_type = "tutorial"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	docs, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}
	if want := document.DeriveID("Go Release Notes", document.News); docs[0].ID() != want {
		t.Errorf("derived id = %q, want %q", docs[0].ID(), want)
	}
	if docs[1].ID() != "howto-1" || docs[1].ContentType() != document.Tutorial {
		t.Errorf("second doc = %q/%q", docs[1].ID(), docs[1].ContentType())
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"seed.toml":      FormatTOML,
		"SEED.TOML":      FormatTOML,
		"seed.yaml":      FormatYAML,
		"seed.yml":       FormatYAML,
		"seed":           FormatYAML,
		"dir.toml/x.yml": FormatYAML,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestParseFormat_Unknown(t *testing.T) {
	if _, err := ParseFormat([]byte("{}"), "json"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read seed file") {
		t.Errorf("err = %v", err)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
		wantIs  error
	}{
		{"bad yaml", "documents: [", "parse seed", nil},
		{"empty", "documents: []", "no documents", nil},
		{
			"unknown content type",
			"documents:\n  - {title: T, content: C, content_type: blog}",
			"document 0",
			domain.ErrInvalidContentType,
		},
		{
			"missing title",
			"documents:\n  - {content: C, content_type: news}",
			"title is required",
			domain.ErrInvalidDocument,
		},
		{
			"duplicate derived id",
			"documents:\n  - {title: T, content: A, content_type: news}\n  - {title: T, content: B, content_type: news}",
			"duplicate id",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want containing %q", err.Error(), tt.wantErr)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("error %v does not wrap %v", err, tt.wantIs)
			}
		})
	}
}
