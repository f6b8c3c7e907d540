package document

import "github.com/dshills/blockstorm/internal/block"

// Patch describes a partial block update. Nil fields are left unchanged.
type Patch struct {
	Content *string
	Tag     *block.Tag
	Flag    *bool
}

// SetContent returns a patch replacing the content.
func SetContent(content string) Patch {
	return Patch{Content: &content}
}

// SetTag returns a patch replacing the tag.
func SetTag(tag block.Tag) Patch {
	return Patch{Tag: &tag}
}

// SetFlag returns a patch replacing the flag.
func SetFlag(flag bool) Patch {
	return Patch{Flag: &flag}
}

// WithContent returns a copy of the patch that also replaces the content.
func (p Patch) WithContent(content string) Patch {
	p.Content = &content
	return p
}

// WithTag returns a copy of the patch that also replaces the tag.
func (p Patch) WithTag(tag block.Tag) Patch {
	p.Tag = &tag
	return p
}

// WithFlag returns a copy of the patch that also replaces the flag.
func (p Patch) WithFlag(flag bool) Patch {
	p.Flag = &flag
	return p
}

// IsEmpty returns true if the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Content == nil && p.Tag == nil && p.Flag == nil
}

// apply returns b with the patch applied and whether anything changed.
func (p Patch) apply(b block.Block) (block.Block, bool) {
	changed := false
	if p.Content != nil && *p.Content != b.Content {
		b.Content = *p.Content
		changed = true
	}
	if p.Tag != nil && *p.Tag != b.Tag {
		b.Tag = *p.Tag
		changed = true
	}
	if p.Flag != nil && *p.Flag != b.Flag {
		b.Flag = *p.Flag
		changed = true
	}
	return b, changed
}
