package tm

import (
	"context"
	"errors"
)

// ErrInvalidTMX is returned for documents that are not TMX
var ErrInvalidTMX = errors.New("invalid TMX document")

// ErrInvalidLanguage is returned for language tags that are not well-formed BCP47
var ErrInvalidLanguage = errors.New("invalid language tag")

// Session is an open XML database session
type Session interface {
	// Execute runs a database command and returns its result
	Execute(command string) (string, error)
	// Add stores a document under path
	Add(path, input string) error
	// Replace stores or overwrites the document under path
	Replace(path, input string) error
	// Create creates a database with an optional initial document
	Create(name, input string) error
	// Info returns the information string of the last command
	Info() string
	Close() error
}

// SessionOpener opens XML database sessions
type SessionOpener interface {
	// Dial opens an authenticated session without selecting a database
	Dial(ctx context.Context) (Session, error)
	// Open opens a session on a named database. An empty name selects the configured default.
	Open(ctx context.Context, database string) (Session, error)
}

// TMService defines translation memory operations.
type TMService interface {
	// AddDocument validates a TMX file and stores it in the translation memory database.
	AddDocument(ctx context.Context, name string, tmx []byte) (*Document, error)

	// Units returns translation units that carry both language variants.
	Units(ctx context.Context, sourceLang, targetLang string, limit int) ([]*TranslationUnit, error)
}
