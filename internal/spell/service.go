package spell

import (
	"log/slog"
	"sync"
)

// Result is a completed check for one paragraph, tagged with the document
// generation the check ran against.
type Result struct {
	Index      int
	Generation uint64
	Issues     []Issue
}

// Service runs checks off the input thread and delivers results on a
// channel. Requests are fire-and-forget; a superseding request for the
// same paragraph replaces the pending one, and the consumer drops results
// whose generation no longer matches the document.
type Service struct {
	checker *Checker
	results chan Result
	logger  *slog.Logger

	mu     sync.Mutex
	latest map[int]uint64 // newest requested generation per paragraph
}

// NewService creates a service around the checker. A nil logger disables
// boundary logging.
func NewService(checker *Checker, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		checker: checker,
		results: make(chan Result, 64),
		logger:  logger,
		latest:  make(map[int]uint64),
	}
}

// Results is the channel check results arrive on.
func (s *Service) Results() <-chan Result {
	return s.results
}

// Request schedules a check of the paragraph text. The call never blocks
// on the check itself.
func (s *Service) Request(index int, generation uint64, text string) {
	s.mu.Lock()
	s.latest[index] = generation
	s.mu.Unlock()

	go func() {
		issues := s.checker.Check(text)

		s.mu.Lock()
		superseded := s.latest[index] != generation
		s.mu.Unlock()
		if superseded {
			s.logger.Debug("spell result superseded", "paragraph", index, "generation", generation)
			return
		}

		select {
		case s.results <- Result{Index: index, Generation: generation, Issues: issues}:
		default:
			// A full queue means the consumer is behind; dropping is safe
			// because a newer request will re-check the paragraph.
			s.logger.Debug("spell result dropped, queue full", "paragraph", index)
		}
	}()
}

// Forget clears pending-generation tracking for a deleted paragraph.
func (s *Service) Forget(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.latest, index)
}
