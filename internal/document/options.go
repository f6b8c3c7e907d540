package document

import (
	"github.com/dshills/blockstorm/internal/block"
	"github.com/dshills/blockstorm/internal/logging"
)

// Option configures a Store during creation.
type Option func(*Store)

// WithIDGenerator sets the generator used for new block ids.
func WithIDGenerator(gen block.IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithDefaultTag sets the tag given to blocks created by structural edits.
func WithDefaultTag(tag block.Tag) Option {
	return func(s *Store) {
		if tag != "" {
			s.defaultTag = tag
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBlocks seeds the store with existing blocks instead of the single
// empty block. Ids are made unique and an empty input is ignored.
func WithBlocks(blocks ...block.Block) Option {
	return func(s *Store) {
		s.seed = append(s.seed, blocks...)
	}
}
