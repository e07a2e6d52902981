package factory

import (
	"github.com/MaelVB/Drawsyn-sub000/internal/dependencies/mocks"
	"github.com/MaelVB/Drawsyn-sub000/internal/model"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/archive"
	"github.com/MaelVB/Drawsyn-sub000/internal/storage/memory"
	"github.com/MaelVB/Drawsyn-sub000/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	Memory     *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(mocks.Epoch)
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, archive.NewStorageSink(store), withDefaults(Config{}), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Memory:     store,
	}
}

// LoadTestWords loads a small fixed word list
func (t *TestApp) LoadTestWords(words ...string) error {
	if len(words) == 0 {
		words = []string{"lune", "soleil", "maison", "chat", "arbre"}
	}
	return t.WordService.LoadWords(words)
}

// Token mints a valid token for a test user
func (t *TestApp) Token(userID, displayName string) string {
	token, err := t.Signer.Sign(model.UserID(userID), displayName)
	if err != nil {
		panic(err)
	}
	return token
}
