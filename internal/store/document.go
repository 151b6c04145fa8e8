package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/habitloop/habitloop-server/internal/domain"
)

const docPrefix = "doc:"

var (
	// ErrDocumentNotFound is returned when no document exists for an identity.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrDocumentExists is returned when creating a document for an identity
	// that already has one.
	ErrDocumentExists = errors.New("document already exists")
)

// docKey returns the storage key for an identity's document.
func docKey(identity string) []byte {
	return []byte(docPrefix + identity)
}

// CreateDocument stores a new document for its identity.
func (s *Store) CreateDocument(_ context.Context, doc *domain.Document) error {
	key := docKey(doc.Identity)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check document exists: %w", err)
	}
	if exists {
		return ErrDocumentExists
	}

	if err := s.set(key, doc); err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// GetDocument retrieves the document for an identity.
func (s *Store) GetDocument(_ context.Context, identity string) (*domain.Document, error) {
	var doc domain.Document
	if err := s.get(docKey(identity), &doc); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	doc.Identity = identity
	doc.Normalize()
	return &doc, nil
}

// GetOrCreateDocument retrieves the identity's document, seeding a default
// one on first access.
func (s *Store) GetOrCreateDocument(ctx context.Context, identity string) (*domain.Document, error) {
	doc, err := s.GetDocument(ctx, identity)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, ErrDocumentNotFound) {
		return nil, err
	}

	doc = domain.NewDocument(identity)
	if err := s.CreateDocument(ctx, doc); err != nil {
		// Lost a race with a concurrent first access; the stored copy wins.
		if errors.Is(err, ErrDocumentExists) {
			return s.GetDocument(ctx, identity)
		}
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("Seeded default document", "identity", identity)
	}
	return doc, nil
}

// PutDocument upserts the full document snapshot for its identity.
// The snapshot always wins; intermediate states are never merged.
func (s *Store) PutDocument(_ context.Context, doc *domain.Document) error {
	if err := s.set(docKey(doc.Identity), doc); err != nil {
		return fmt.Errorf("put document: %w", err)
	}
	return nil
}

// DocumentExists reports whether an identity has a stored document.
func (s *Store) DocumentExists(_ context.Context, identity string) (bool, error) {
	return s.exists(docKey(identity))
}
