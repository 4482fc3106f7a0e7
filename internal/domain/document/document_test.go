package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/kailas-cloud/docsearch/internal/domain"
)

func TestNew_Valid(t *testing.T) {
	doc, err := New("doc-1", "Introduction to OpenSearch", "OpenSearch is a search engine.", Tutorial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID() != "doc-1" {
		t.Errorf("ID() = %q", doc.ID())
	}
	if doc.Title() != "Introduction to OpenSearch" {
		t.Errorf("Title() = %q", doc.Title())
	}
	if doc.ContentType() != Tutorial {
		t.Errorf("ContentType() = %q", doc.ContentType())
	}

	f := doc.Fields()
	if f[FieldTitle] != doc.Title() || f[FieldContent] != doc.Content() || f[FieldContentType] != "tutorial" {
		t.Errorf("Fields() = %v", f)
	}
}

func TestNew_DerivesStableID(t *testing.T) {
	a, err := New("", "Latest Tech News", "body", News)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := New("", "Latest Tech News", "different body", News)
	c, _ := New("", "Latest Tech News", "body", Report)

	if a.ID() != b.ID() {
		t.Errorf("same title and type gave different IDs: %s vs %s", a.ID(), b.ID())
	}
	if a.ID() == c.ID() {
		t.Error("different content type gave the same ID")
	}
	parsed, err := uuid.Parse(a.ID())
	if err != nil {
		t.Fatalf("derived ID is not a UUID: %v", err)
	}
	if parsed.Version() != 5 {
		t.Errorf("version = %d, want 5", parsed.Version())
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		title       string
		content     string
		ct          ContentType
		wantErr     string
		wantCTError bool
	}{
		{name: "blank title", title: "  ", content: "c", ct: News, wantErr: "title is required"},
		{name: "empty content", title: "t", content: "", ct: News, wantErr: "content is required"},
		{name: "long title", title: strings.Repeat("x", MaxTitleLength+1), content: "c", ct: News, wantErr: "title too long"},
		{name: "big content", title: "t", content: strings.Repeat("x", MaxContentSize+1), ct: News, wantErr: "content too large"},
		{name: "bad type", title: "t", content: "c", ct: "blog", wantErr: "blog", wantCTError: true},
		{name: "bad id", id: "has space", title: "t", content: "c", ct: News, wantErr: "alphanumeric"},
		{name: "long id", id: strings.Repeat("a", MaxIDLength+1), title: "t", content: "c", ct: News, wantErr: "id too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.id, tt.title, tt.content, tt.ct)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, domain.ErrInvalidDocument) {
				t.Errorf("error %v does not wrap ErrInvalidDocument", err)
			}
			if tt.wantCTError && !errors.Is(err, domain.ErrInvalidContentType) {
				t.Errorf("error %v does not wrap ErrInvalidContentType", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestParseContentType(t *testing.T) {
	for _, ct := range ContentTypes() {
		got, err := ParseContentType(string(ct))
		if err != nil || got != ct {
			t.Errorf("ParseContentType(%q) = %q, %v", ct, got, err)
		}
	}

	for _, bad := range []string{"", "News", "blog", " news"} {
		_, err := ParseContentType(bad)
		if !errors.Is(err, domain.ErrInvalidContentType) {
			t.Errorf("ParseContentType(%q) err = %v, want ErrInvalidContentType", bad, err)
		}
	}
}

func TestParseContentType_ListsAllowed(t *testing.T) {
	_, err := ParseContentType("blog")
	if err == nil || !strings.Contains(err.Error(), "news, tutorial, review, report") {
		t.Errorf("error = %v", err)
	}
}
