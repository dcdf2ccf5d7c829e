package editor

import (
	"fmt"
	"os"

	"github.com/dshills/inkwell/internal/engine/paragraph"
	"github.com/dshills/inkwell/internal/event"
	"github.com/dshills/inkwell/internal/markup"
)

// LoadString replaces the document with parsed markdown. On parse failure
// the session resets to an empty document and returns the error.
func (s *Session) LoadString(source string) error {
	st, err := markup.Parse(source)
	if err != nil {
		s.install(paragraph.New())
		s.publishLoaded()
		return fmt.Errorf("load document: %w", err)
	}
	s.install(st)
	s.publishLoaded()
	return nil
}

// Load reads and parses a document file.
func (s *Session) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		s.install(paragraph.New())
		s.publishLoaded()
		return fmt.Errorf("load document: %w", err)
	}
	return s.LoadString(string(data))
}

// Save serializes the document to markdown at path.
func (s *Session) Save(path string) error {
	if err := os.WriteFile(path, []byte(markup.Serialize(s.store)), 0o644); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	if s.buf != nil {
		s.buf.Commit()
	}
	s.logger.Info("document saved", "path", path, "paragraphs", s.store.Count())
	return nil
}

// Export returns the document as markdown.
func (s *Session) Export() string {
	return markup.Serialize(s.store)
}

func (s *Session) publishLoaded() {
	s.hub.Content.Publish(event.ContentChange{Para: 0, Structural: true})
	s.caretMoved(false)
}
