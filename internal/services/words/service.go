package words

import (
	"bufio"
	"context"
	_ "embed"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/MaelVB/Drawsyn-sub000/internal/dependencies/random"
	"github.com/MaelVB/Drawsyn-sub000/internal/model"
	"github.com/MaelVB/Drawsyn-sub000/internal/storage"
)

//go:embed default_words.txt
var defaultWords string

// Service holds the fixed word list rounds draw from
type Service struct {
	storage storage.Storage
	random  random.Random
	logger  *slog.Logger

	mu    sync.RWMutex
	words []string
}

// New creates a new word Service
func New(storage storage.Storage, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		random:  random,
		logger:  logger,
	}
}

// LoadDefault loads the embedded word list
func (s *Service) LoadDefault() error {
	words, err := parse(strings.NewReader(defaultWords))
	if err != nil {
		return err
	}
	return s.LoadWords(words)
}

// LoadFromStorage loads words previously saved to storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetWords(ctx)
	if err != nil {
		return err
	}
	return s.LoadWords(words)
}

// LoadFromFile loads words from a file (one word per line) and saves them to storage
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	words, err := parse(file)
	if err != nil {
		return err
	}

	if err := s.storage.SaveWords(ctx, words); err != nil {
		return err
	}

	return s.LoadWords(words)
}

// LoadWords replaces the word list. Blank entries are dropped.
func (s *Service) LoadWords(words []string) error {
	cleaned := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		key := strings.ToLower(w)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, w)
	}
	if len(cleaned) == 0 {
		return model.ErrNoWords
	}

	s.mu.Lock()
	s.words = cleaned
	s.mu.Unlock()

	s.logger.Info("word list loaded", slog.Int("count", len(cleaned)))
	return nil
}

// Pick returns a uniformly chosen word
func (s *Service) Pick() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	word, ok := random.Choice(s.random, s.words)
	if !ok {
		return "", model.ErrNoWords
	}
	return word, nil
}

// Count returns the number of words loaded
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

func parse(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" && !strings.HasPrefix(word, "#") {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// Picker is the subset used by the room orchestrator
type Picker interface {
	Pick() (string, error)
}

var _ Picker = (*Service)(nil)
