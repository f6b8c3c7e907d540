package block

import "github.com/google/uuid"

// ID uniquely identifies a block within a document.
type ID string

// String returns the identifier as a string.
func (id ID) String() string {
	return string(id)
}

// IsZero returns true if the identifier is empty.
func (id ID) IsZero() bool {
	return id == ""
}

// NewID returns a fresh random identifier.
func NewID() ID {
	return ID(uuid.NewString())
}

// IDGenerator produces block identifiers.
type IDGenerator func() ID

// Tag discriminates block types. Unknown tags are preserved as given.
type Tag string

// Known block tags.
const (
	TagParagraph Tag = "p"
	TagHeading1  Tag = "h1"
	TagHeading2  Tag = "h2"
	TagHeading3  Tag = "h3"
	TagQuote     Tag = "quote"
	TagCode      Tag = "code"
)

// DefaultTag is the tag assigned to blocks created by structural edits.
const DefaultTag = TagParagraph

// KnownTags lists the built-in tags in menu order.
func KnownTags() []Tag {
	return []Tag{TagParagraph, TagHeading1, TagHeading2, TagHeading3, TagQuote, TagCode}
}

// Label returns a human-readable name for the tag.
func (t Tag) Label() string {
	switch t {
	case TagParagraph:
		return "Text"
	case TagHeading1:
		return "Heading 1"
	case TagHeading2:
		return "Heading 2"
	case TagHeading3:
		return "Heading 3"
	case TagQuote:
		return "Quote"
	case TagCode:
		return "Code"
	default:
		return string(t)
	}
}

// Block is a single editable content unit.
type Block struct {
	// ID is assigned at creation and never changes.
	ID ID

	// Content is the opaque markup payload.
	Content string

	// Tag is the block type.
	Tag Tag

	// Flag marks an emphasized or just-promoted block.
	Flag bool
}

// New creates a block with a fresh identifier.
func New(content string, tag Tag, flag bool) Block {
	return Block{
		ID:      NewID(),
		Content: content,
		Tag:     tag,
		Flag:    flag,
	}
}

// Empty creates an empty default-tag block with a fresh identifier.
func Empty() Block {
	return New("", DefaultTag, false)
}

// Len returns the content length in characters.
func (b Block) Len() int {
	return Len(b.Content)
}

// IsEmpty returns true if the block has no content.
func (b Block) IsEmpty() bool {
	return b.Content == ""
}
