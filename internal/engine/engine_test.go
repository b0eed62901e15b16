package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-mentor/internal/catalog"
	stderrors "career-mentor/internal/common/errors"
	"career-mentor/internal/common/logger"
	"career-mentor/internal/engine/respond"
	"career-mentor/internal/models"
	"career-mentor/internal/session"
)

type zeroPicker struct{}

func (zeroPicker) Pick(int) int { return 0 }

func newTestEngine(t *testing.T, opts Options) (*Engine, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore(time.Hour)
	if opts.Picker == nil {
		opts.Picker = zeroPicker{}
	}
	eng := New(store, catalog.NewStaticCatalog(), logger.NewNoOpLogger(), opts)
	return eng, store
}

// runAssessment drives a full six-answer assessment and returns the final
// turn result.
func runAssessment(t *testing.T, eng *Engine, sessionID string) *models.TurnResult {
	t.Helper()
	ctx := context.Background()

	answers := []string{
		"Intermediate",
		"Python, SQL",
		"Analyzing data and finding patterns",
		"Land my first tech job",
		"Hands-on projects",
		"10-20 hours",
	}

	result, err := eng.ProcessTurn(ctx, sessionID, "I want a career assessment", nil)
	require.NoError(t, err)
	require.NotNil(t, result.Flow)

	for _, answer := range answers {
		result, err = eng.ProcessTurn(ctx, sessionID, answer, nil)
		require.NoError(t, err)
	}
	return result
}

func TestProcessTurnFreeForm(t *testing.T) {
	ctx := context.Background()

	t.Run("known intent answers from its templates", func(t *testing.T) {
		eng, _ := newTestEngine(t, Options{})
		result, err := eng.ProcessTurn(ctx, "s1", "What career should I pursue?", nil)
		require.NoError(t, err)

		assert.Equal(t, "career_choice", result.Intent)
		assert.InDelta(t, 0.75, result.Confidence, 0.001)
		assert.NotEmpty(t, result.Message)
		assert.Nil(t, result.Flow)
		assert.Len(t, result.SuggestedActions, 3)
	})

	t.Run("generates a session id when absent", func(t *testing.T) {
		eng, store := newTestEngine(t, Options{})
		result, err := eng.ProcessTurn(ctx, "", "hello there friend", nil)
		require.NoError(t, err)
		require.NotEmpty(t, result.SessionID)

		state, err := store.Get(ctx, result.SessionID)
		require.NoError(t, err)
		assert.Len(t, state.History, 2)
	})

	t.Run("persists both turns of the exchange", func(t *testing.T) {
		eng, store := newTestEngine(t, Options{})
		_, err := eng.ProcessTurn(ctx, "s1", "I love learning new skills", nil)
		require.NoError(t, err)

		state, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, state.History, 2)
		assert.Equal(t, models.RoleUser, state.History[0].Role)
		assert.Equal(t, "positive", state.History[0].Sentiment)
		assert.Equal(t, models.RoleAssistant, state.History[1].Role)
	})

	t.Run("rejects empty and oversized messages", func(t *testing.T) {
		eng, _ := newTestEngine(t, Options{})

		_, err := eng.ProcessTurn(ctx, "s1", "   ", nil)
		require.Error(t, err)
		assert.Equal(t, stderrors.ErrCodeValidationFailed, stderrors.CodeOf(err))

		_, err = eng.ProcessTurn(ctx, "s1", strings.Repeat("a", 1001), nil)
		require.Error(t, err)
		assert.Equal(t, stderrors.ErrCodeValidationFailed, stderrors.CodeOf(err))
	})

	t.Run("length limit counts characters, not bytes", func(t *testing.T) {
		eng, _ := newTestEngine(t, Options{})

		// 1000 two-byte runes stay inside the limit
		_, err := eng.ProcessTurn(ctx, "s1", strings.Repeat("é", 1000), nil)
		require.NoError(t, err)

		_, err = eng.ProcessTurn(ctx, "s1", strings.Repeat("é", 1001), nil)
		require.Error(t, err)
		assert.Equal(t, stderrors.ErrCodeValidationFailed, stderrors.CodeOf(err))
	})

	t.Run("expired session restarts fresh", func(t *testing.T) {
		store := session.NewMemoryStore(10 * time.Minute)
		eng := New(store, catalog.NewStaticCatalog(), logger.NewNoOpLogger(), Options{Picker: zeroPicker{}})

		stale := models.NewSessionState("s1")
		stale.Profile.CurrentSkills = []string{"Python"}
		stale.LastActive = time.Now().UTC().Add(-time.Hour)
		require.NoError(t, store.Put(ctx, stale))

		_, err := eng.ProcessTurn(ctx, "s1", "hello there friend", nil)
		require.NoError(t, err)

		state, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Empty(t, state.Profile.CurrentSkills)
		assert.Len(t, state.History, 2)
	})

	t.Run("profile hints merge with invalid fields skipped", func(t *testing.T) {
		eng, store := newTestEngine(t, Options{})
		hints := &models.UserProfile{
			ExperienceLevel: "wizard",
			TimeCommitment:  "full-time",
			CurrentSkills:   []string{"Go"},
		}
		_, err := eng.ProcessTurn(ctx, "s1", "hello there friend", hints)
		require.NoError(t, err)

		state, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Empty(t, state.Profile.ExperienceLevel)
		assert.Equal(t, "full-time", state.Profile.TimeCommitment)
		assert.Equal(t, []string{"Go"}, state.Profile.CurrentSkills)
	})
}

func TestAssessmentFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("trigger starts with the first question", func(t *testing.T) {
		eng, _ := newTestEngine(t, Options{})
		result, err := eng.ProcessTurn(ctx, "s1", "I want a career assessment", nil)
		require.NoError(t, err)

		assert.Contains(t, result.Message, "AI Career Mentor")
		require.NotNil(t, result.Flow)
		assert.Equal(t, "experience-level", result.Flow.CurrentStep)
		assert.Equal(t, 0, result.Flow.Progress)
		assert.Contains(t, result.QuickReplies, "Complete beginner")
	})

	t.Run("single word never starts the flow", func(t *testing.T) {
		eng, _ := newTestEngine(t, Options{})
		result, err := eng.ProcessTurn(ctx, "s1", "python", nil)
		require.NoError(t, err)
		assert.Nil(t, result.Flow)
	})

	t.Run("second trigger mid flow is an answer, not a restart", func(t *testing.T) {
		eng, _ := newTestEngine(t, Options{})
		_, err := eng.ProcessTurn(ctx, "s1", "I want a career assessment", nil)
		require.NoError(t, err)

		result, err := eng.ProcessTurn(ctx, "s1", "career assessment please", nil)
		require.NoError(t, err)
		require.NotNil(t, result.Flow)
		assert.Equal(t, "current-skills", result.Flow.CurrentStep)
	})

	t.Run("answers advance with follow-up acknowledgement", func(t *testing.T) {
		eng, _ := newTestEngine(t, Options{})
		_, err := eng.ProcessTurn(ctx, "s1", "I want a career assessment", nil)
		require.NoError(t, err)

		result, err := eng.ProcessTurn(ctx, "s1", "Intermediate", nil)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(result.Message, "Great!"))
		require.NotNil(t, result.Flow)
		assert.Equal(t, "current-skills", result.Flow.CurrentStep)
		assert.Equal(t, 33, result.Flow.Progress)
	})

	t.Run("completion ranks careers and builds a roadmap", func(t *testing.T) {
		eng, store := newTestEngine(t, Options{})
		result := runAssessment(t, eng, "s1")

		require.NotEmpty(t, result.CareerMatches)
		assert.LessOrEqual(t, len(result.CareerMatches), 3)
		assert.Equal(t, "data-scientist", result.CareerMatches[0].Career.ID)
		for i := 1; i < len(result.CareerMatches); i++ {
			assert.GreaterOrEqual(t, result.CareerMatches[i-1].MatchScore, result.CareerMatches[i].MatchScore)
		}
		for _, m := range result.CareerMatches {
			assert.GreaterOrEqual(t, m.MatchScore, 0)
			assert.LessOrEqual(t, m.MatchScore, 100)
		}

		require.NotNil(t, result.Roadmap)
		assert.Equal(t, "data-scientist", result.Roadmap.CareerID)
		assert.GreaterOrEqual(t, len(result.Roadmap.Phases), 1)
		assert.LessOrEqual(t, len(result.Roadmap.Phases), 3)
		assert.Contains(t, result.Message, "compatibility score")
		assert.Contains(t, result.QuickReplies, "Show me a roadmap")

		state, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, models.FlowFreeForm, state.Flow.Name)
		assert.Equal(t, "intermediate", state.Profile.ExperienceLevel)
		assert.Equal(t, []string{"Python", "SQL"}, state.Profile.CurrentSkills)
	})

	t.Run("exit phrase mid flow answers free-form in the same turn", func(t *testing.T) {
		eng, store := newTestEngine(t, Options{})
		_, err := eng.ProcessTurn(ctx, "s1", "I want a career assessment", nil)
		require.NoError(t, err)
		_, err = eng.ProcessTurn(ctx, "s1", "Intermediate", nil)
		require.NoError(t, err)
		_, err = eng.ProcessTurn(ctx, "s1", "Python, SQL", nil)
		require.NoError(t, err)

		result, err := eng.ProcessTurn(ctx, "s1", "actually, help with something else: what salary can I expect?", nil)
		require.NoError(t, err)
		assert.Contains(t, result.Message, respond.ExitMessage)
		assert.Equal(t, "salary_information", result.Intent)
		assert.Nil(t, result.Flow)

		state, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, models.FlowFreeForm, state.Flow.Name)
		// answers given before the exit survive
		assert.Equal(t, []string{"Python", "SQL"}, state.Profile.CurrentSkills)
	})

	t.Run("unknown flow step resets to free-form", func(t *testing.T) {
		eng, store := newTestEngine(t, Options{})
		corrupt := models.NewSessionState("s1")
		corrupt.Flow = models.FlowState{Name: models.FlowAssessment, Step: 99}
		corrupt.Profile.CurrentSkills = []string{"Python"}
		require.NoError(t, store.Put(ctx, corrupt))

		result, err := eng.ProcessTurn(ctx, "s1", "hello there friend", nil)
		require.NoError(t, err)
		assert.Nil(t, result.Flow)

		state, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, models.FlowFreeForm, state.Flow.Name)
		assert.Equal(t, []string{"Python"}, state.Profile.CurrentSkills)
	})
}

type emptyCatalog struct{}

func (emptyCatalog) ListCareers(ctx context.Context) ([]models.CareerProfile, error) {
	return nil, nil
}

func TestAssessmentWithEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore(time.Hour)
	eng := New(store, emptyCatalog{}, logger.NewNoOpLogger(), Options{Picker: zeroPicker{}})

	result := runAssessment(t, eng, "s1")
	assert.Empty(t, result.CareerMatches)
	assert.Nil(t, result.Roadmap)
	assert.Equal(t, respond.EmptyCatalogMessage, result.Message)

	state, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.FlowFreeForm, state.Flow.Name)
}

type flakyCatalog struct {
	fail bool
}

func (c *flakyCatalog) ListCareers(ctx context.Context) ([]models.CareerProfile, error) {
	if c.fail {
		return nil, assert.AnError
	}
	return catalog.NewStaticCatalog().ListCareers(ctx)
}

func TestAssessmentWithFailingCatalog(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore(time.Hour)
	cat := &flakyCatalog{fail: true}
	eng := New(store, cat, logger.NewNoOpLogger(), Options{Picker: zeroPicker{}})

	_, err := eng.ProcessTurn(ctx, "s1", "I want a career assessment", nil)
	require.NoError(t, err)
	for _, answer := range []string{
		"Intermediate",
		"Python, SQL",
		"Analyzing data and finding patterns",
		"Land my first tech job",
		"Hands-on projects",
	} {
		_, err = eng.ProcessTurn(ctx, "s1", answer, nil)
		require.NoError(t, err)
	}

	// the final answer needs the catalog; its failure aborts the turn
	_, err = eng.ProcessTurn(ctx, "s1", "10-20 hours", nil)
	require.Error(t, err)
	assert.Equal(t, stderrors.ErrCodeCatalogUnavailable, stderrors.CodeOf(err))
	assert.True(t, stderrors.IsRetryable(err))

	// the session stays on the last question so the answer can be retried
	state, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.FlowAssessment, state.Flow.Name)
	assert.Equal(t, 5, state.Flow.Step)

	cat.fail = false
	result, err := eng.ProcessTurn(ctx, "s1", "10-20 hours", nil)
	require.NoError(t, err)
	require.NotEmpty(t, result.CareerMatches)
	assert.Equal(t, "data-scientist", result.CareerMatches[0].Career.ID)
}

func TestHistoryLimit(t *testing.T) {
	ctx := context.Background()
	eng, store := newTestEngine(t, Options{HistoryLimit: 4})

	for i := 0; i < 5; i++ {
		_, err := eng.ProcessTurn(ctx, "s1", "tell me about career options", nil)
		require.NoError(t, err)
	}

	state, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, state.History, 4)
	// newest assistant turn survives the trim
	assert.Equal(t, models.RoleAssistant, state.History[3].Role)
}

type failingStore struct {
	*session.MemoryStore
	failPut bool
	failGet bool
}

func (s *failingStore) Get(ctx context.Context, sessionID string) (*models.SessionState, error) {
	if s.failGet {
		return nil, assert.AnError
	}
	return s.MemoryStore.Get(ctx, sessionID)
}

func (s *failingStore) Put(ctx context.Context, state *models.SessionState) error {
	if s.failPut {
		return assert.AnError
	}
	return s.MemoryStore.Put(ctx, state)
}

func TestStoreFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("get failure aborts the turn as retryable", func(t *testing.T) {
		store := &failingStore{MemoryStore: session.NewMemoryStore(time.Hour), failGet: true}
		eng := New(store, catalog.NewStaticCatalog(), logger.NewNoOpLogger(), Options{Picker: zeroPicker{}})

		_, err := eng.ProcessTurn(ctx, "s1", "hello there friend", nil)
		require.Error(t, err)
		assert.Equal(t, stderrors.ErrCodeStoreUnavailable, stderrors.CodeOf(err))
		assert.True(t, stderrors.IsRetryable(err))
	})

	t.Run("put failure leaves the stored session untouched", func(t *testing.T) {
		store := &failingStore{MemoryStore: session.NewMemoryStore(time.Hour)}
		eng := New(store, catalog.NewStaticCatalog(), logger.NewNoOpLogger(), Options{Picker: zeroPicker{}})

		_, err := eng.ProcessTurn(ctx, "s1", "hello there friend", nil)
		require.NoError(t, err)
		before, err := store.Get(ctx, "s1")
		require.NoError(t, err)

		store.failPut = true
		_, err = eng.ProcessTurn(ctx, "s1", "I want a career assessment", nil)
		require.Error(t, err)
		assert.Equal(t, stderrors.ErrCodeStoreUnavailable, stderrors.CodeOf(err))

		after, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, len(before.History), len(after.History))
		assert.Equal(t, models.FlowFreeForm, after.Flow.Name)
	})
}

func TestSessionOps(t *testing.T) {
	ctx := context.Background()

	t.Run("history round trips and clear removes it", func(t *testing.T) {
		eng, _ := newTestEngine(t, Options{})
		result, err := eng.ProcessTurn(ctx, "s1", "hello there friend", nil)
		require.NoError(t, err)

		history, err := eng.History(ctx, result.SessionID)
		require.NoError(t, err)
		assert.Len(t, history, 2)

		require.NoError(t, eng.ClearConversation(ctx, result.SessionID))
		_, err = eng.History(ctx, result.SessionID)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("suggestions are the fixed starter set", func(t *testing.T) {
		eng, _ := newTestEngine(t, Options{})
		suggestions := eng.Suggestions()
		assert.Len(t, suggestions, 10)
		assert.Contains(t, suggestions, "How do I choose the right career path?")
	})

	t.Run("feedback validates its rating", func(t *testing.T) {
		eng, _ := newTestEngine(t, Options{})

		err := eng.SubmitFeedback(ctx, models.Feedback{MessageID: "m1", Rating: 6})
		require.Error(t, err)
		assert.Equal(t, stderrors.ErrCodeValidationFailed, stderrors.CodeOf(err))

		require.NoError(t, eng.SubmitFeedback(ctx, models.Feedback{MessageID: "m1", SessionID: "s1", Rating: 5}))
		require.NoError(t, eng.SubmitFeedback(ctx, models.Feedback{MessageID: "m2", SessionID: "s2", Rating: 3}))
		assert.Equal(t, 2, eng.FeedbackCount())

		forS1 := eng.SessionFeedback("s1")
		require.Len(t, forS1, 1)
		assert.Equal(t, "m1", forS1[0].MessageID)
		assert.Empty(t, eng.SessionFeedback("s3"))
	})

	t.Run("update profile creates the session when missing", func(t *testing.T) {
		eng, store := newTestEngine(t, Options{})
		err := eng.UpdateProfile(ctx, "s9", models.UserProfile{ExperienceLevel: "advanced"})
		require.NoError(t, err)

		state, err := store.Get(ctx, "s9")
		require.NoError(t, err)
		assert.Equal(t, "advanced", state.Profile.ExperienceLevel)
	})
}
