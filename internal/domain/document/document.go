package document

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/kailas-cloud/docsearch/internal/domain"
)

// Indexed field names.
const (
	FieldTitle       = "title"
	FieldContent     = "content"
	FieldContentType = "content_type"
)

// Size limits.
const (
	MaxIDLength    = 256
	MaxTitleLength = 1024
	MaxContentSize = 163840 // 160KB
)

var (
	idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

	// idNamespace scopes derived IDs; changing it re-keys every derived document.
	idNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("docsearch.document"))
)

// Document is an indexed document (immutable value object).
type Document struct {
	id          string
	title       string
	content     string
	contentType ContentType
}

// New validates and creates a Document. An empty id is derived from title and
// content type, so loading the same seed twice yields the same IDs.
func New(id, title, content string, contentType ContentType) (Document, error) {
	if strings.TrimSpace(title) == "" {
		return Document{}, fmt.Errorf("%w: title is required", domain.ErrInvalidDocument)
	}
	if len(title) > MaxTitleLength {
		return Document{}, fmt.Errorf("%w: title too long (max %d bytes)", domain.ErrInvalidDocument, MaxTitleLength)
	}
	if strings.TrimSpace(content) == "" {
		return Document{}, fmt.Errorf("%w: content is required", domain.ErrInvalidDocument)
	}
	if len(content) > MaxContentSize {
		return Document{}, fmt.Errorf("%w: content too large (max %d bytes)", domain.ErrInvalidDocument, MaxContentSize)
	}
	if !contentType.IsValid() {
		return Document{}, fmt.Errorf("%w: %w: %q", domain.ErrInvalidDocument, domain.ErrInvalidContentType, contentType)
	}

	if id == "" {
		id = DeriveID(title, contentType)
	}
	if len(id) > MaxIDLength {
		return Document{}, fmt.Errorf("%w: id too long (max %d)", domain.ErrInvalidDocument, MaxIDLength)
	}
	if !idRegex.MatchString(id) {
		return Document{}, fmt.Errorf("%w: id must be alphanumeric with underscores and hyphens", domain.ErrInvalidDocument)
	}

	return Document{id: id, title: title, content: content, contentType: contentType}, nil
}

// DeriveID returns a UUIDv5 of content type and title.
func DeriveID(title string, contentType ContentType) string {
	return uuid.NewSHA1(idNamespace, []byte(string(contentType)+"\x00"+title)).String()
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// Content returns the document body.
func (d *Document) Content() string { return d.content }

// ContentType returns the document category.
func (d *Document) ContentType() ContentType { return d.contentType }

// Fields returns the flat field map that is indexed.
func (d *Document) Fields() map[string]string {
	return map[string]string{
		FieldTitle:       d.title,
		FieldContent:     d.content,
		FieldContentType: string(d.contentType),
	}
}
