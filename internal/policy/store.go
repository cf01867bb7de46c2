package policy

import (
	"context"
	"sync/atomic"

	"github.com/pkg/errors"

	"gadgetfinder-backend/internal/models"
)

// Store holds the current system message. Reads are lock-free; Reload swaps
// in a new document only when it parses and validates.
type Store struct {
	source  Source
	current atomic.Pointer[models.ChatMessage]
}

func NewStore(ctx context.Context, source Source) (*Store, error) {
	s := &Store{source: source}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Message returns the system message to prepend to a conversation.
func (s *Store) Message() models.ChatMessage {
	return *s.current.Load()
}

func (s *Store) Source() string { return s.source.String() }

// Reload fetches the document again. On failure the previous policy stays
// active.
func (s *Store) Reload(ctx context.Context) error {
	data, err := s.source.Fetch(ctx)
	if err != nil {
		return err
	}
	doc, err := Parse(data)
	if err != nil {
		return errors.Wrapf(err, "policy from %s", s.source)
	}
	msg := doc.Message()
	s.current.Store(&msg)
	return nil
}
