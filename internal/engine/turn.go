package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	stderrors "career-mentor/internal/common/errors"
	"career-mentor/internal/common/metrics"
	"career-mentor/internal/engine/assessment"
	"career-mentor/internal/engine/flow"
	"career-mentor/internal/engine/gaps"
	"career-mentor/internal/engine/intent"
	"career-mentor/internal/engine/match"
	"career-mentor/internal/engine/respond"
	"career-mentor/internal/models"
	"career-mentor/internal/session"
)

const maxMessageLength = 1000

// ProcessTurn runs one conversation turn. The session mutates atomically:
// either the full turn persists or nothing does. An empty sessionID starts a
// fresh session under a generated id.
func (e *Engine) ProcessTurn(ctx context.Context, sessionID, message string, hints *models.UserProfile) (*models.TurnResult, error) {
	start := time.Now()

	trimmed := strings.TrimSpace(message)
	if trimmed == "" || utf8.RuneCountInString(message) > maxMessageLength {
		err := stderrors.NewValidationFailedError("message must be 1-1000 characters")
		e.recordFailure(ctx, err)
		return nil, err
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	lock := e.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	metrics.ActiveSessions.WithLabelValues(e.storeName).Inc()
	defer metrics.ActiveSessions.WithLabelValues(e.storeName).Dec()

	state, err := e.store.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		if errors.Is(err, session.ErrExpired) {
			expired := stderrors.NewSessionExpiredError(sessionID)
			e.log.Info("restarting expired session", map[string]interface{}{
				"sessionId": sessionID,
				"error":     expired.Error(),
			})
		}
		state = models.NewSessionState(sessionID)
	} else if err != nil {
		storeErr := stderrors.NewStoreUnavailableError(err)
		e.recordFailure(ctx, storeErr)
		return nil, storeErr
	}

	if hints != nil {
		mergeProfile(&state.Profile, *hints, e.log, sessionID)
	}

	classified := e.classifier.Classify(trimmed)
	sentiment := intent.AnalyzeSentiment(trimmed)

	result := &models.TurnResult{
		SessionID:  sessionID,
		Intent:     classified.Intent,
		Confidence: classified.Confidence,
		Sentiment:  sentiment,
	}

	if err := e.executeTurn(ctx, state, trimmed, result); err != nil {
		e.recordFailure(ctx, err)
		return nil, err
	}

	now := time.Now().UTC()
	state.AppendTurn(models.ConversationTurn{
		ID:        uuid.NewString(),
		Role:      models.RoleUser,
		Text:      message,
		Timestamp: now,
		Intent:    classified.Intent,
		Sentiment: sentiment,
	}, e.historyLimit)
	state.AppendTurn(models.ConversationTurn{
		ID:        uuid.NewString(),
		Role:      models.RoleAssistant,
		Text:      result.Message,
		Timestamp: now,
	}, e.historyLimit)
	state.UpdateActivity()

	if err := e.store.Put(ctx, state); err != nil {
		storeErr := stderrors.NewStoreUnavailableError(err)
		e.recordFailure(ctx, storeErr)
		return nil, storeErr
	}

	elapsed := time.Since(start)
	metrics.TurnsProcessed.WithLabelValues(classified.Intent).Inc()
	metrics.TurnDuration.WithLabelValues(classified.Intent).Observe(elapsed.Seconds())
	if e.obs != nil {
		e.obs.RecordTurnProcessed(ctx, "ok")
		e.obs.RecordTurnDuration(ctx, elapsed, "ok")
	}

	e.log.Debug("turn processed", map[string]interface{}{
		"sessionId":  sessionID,
		"intent":     classified.Intent,
		"confidence": classified.Confidence,
		"flow":       string(state.Flow.Name),
		"durationMs": elapsed.Milliseconds(),
	})

	return result, nil
}

// executeTurn fills the result message and side data according to the flow
// decision. It mutates state but never touches the store; a returned error
// aborts the turn before anything persists.
func (e *Engine) executeTurn(ctx context.Context, state *models.SessionState, message string, result *models.TurnResult) error {
	switch flow.Decide(state.Flow, message) {
	case flow.StartAssessment:
		e.startAssessment(state, result)
	case flow.ContinueAssessment:
		return e.continueAssessment(ctx, state, message, result)
	case flow.ExitAssessment:
		e.exitAssessment(state, result)
	default:
		reply := e.synth.FreeForm(result.Intent, state.Profile)
		result.Message = reply.Message
		result.QuickReplies = reply.QuickReplies
		result.SuggestedActions = reply.SuggestedActions
	}
	return nil
}

// recordFailure counts a failed turn under its error code and category.
func (e *Engine) recordFailure(ctx context.Context, err error) {
	code := stderrors.CodeOf(err)
	metrics.TurnsFailed.WithLabelValues(string(code)).Inc()
	if e.obs != nil {
		e.obs.RecordTurnProcessed(ctx, stderrors.GetErrorCategory(code))
	}
}

func (e *Engine) startAssessment(state *models.SessionState, result *models.TurnResult) {
	first, _ := assessment.QuestionAt(0)
	state.Flow = models.FlowState{
		Name:              models.FlowAssessment,
		Step:              0,
		PendingQuestionID: first.ID,
	}
	result.Message = e.synth.IntroWithFirstQuestion(first)
	result.QuickReplies = first.Options
	result.Flow = &models.FlowProgress{CurrentStep: first.ID, Progress: 0}
}

func (e *Engine) continueAssessment(ctx context.Context, state *models.SessionState, message string, result *models.TurnResult) error {
	question, ok := assessment.QuestionAt(state.Flow.Step)
	if !ok {
		// Corrupt flow state. Log it, fall back to free-form, keep the profile.
		stepErr := stderrors.NewUnknownFlowStepError(state.SessionID, state.Flow.Step)
		e.log.Error("resetting session with unknown flow step", map[string]interface{}{
			"sessionId": state.SessionID,
			"step":      state.Flow.Step,
			"error":     stepErr.Error(),
		})
		metrics.TurnsFailed.WithLabelValues(string(stderrors.ErrCodeUnknownFlowStep)).Inc()
		state.Flow = models.FlowState{Name: models.FlowFreeForm}
		reply := e.synth.FreeForm(result.Intent, state.Profile)
		result.Message = reply.Message
		result.QuickReplies = reply.QuickReplies
		result.SuggestedActions = reply.SuggestedActions
		return nil
	}

	if err := assessment.ApplyAnswer(&state.Profile, question.ID, message); err != nil {
		// Unusable answer. Re-ask without advancing.
		result.Message = e.synth.QuestionMessage(question, true)
		result.QuickReplies = question.Options
		result.Flow = &models.FlowProgress{
			CurrentStep: question.ID,
			Progress:    progressPercent(state.Flow.Step),
		}
		return nil
	}

	next := state.Flow.Step + 1
	if next < assessment.Count() {
		nextQuestion, _ := assessment.QuestionAt(next)
		state.Flow = models.FlowState{
			Name:              models.FlowAssessment,
			Step:              next,
			PendingQuestionID: nextQuestion.ID,
		}
		result.Message = e.synth.QuestionMessage(nextQuestion, false)
		result.QuickReplies = nextQuestion.Options
		result.Flow = &models.FlowProgress{
			CurrentStep: nextQuestion.ID,
			Progress:    progressPercent(next),
		}
		return nil
	}

	return e.completeAssessment(ctx, state, result)
}

// completeAssessment ranks the catalog, derives gaps and a roadmap for the
// top match, and drops the session back to free-form. A catalog I/O failure
// aborts the turn so the stored session stays on the last question and the
// user can retry the answer.
func (e *Engine) completeAssessment(ctx context.Context, state *models.SessionState, result *models.TurnResult) error {
	careers, err := e.catalog.ListCareers(ctx)
	if err != nil {
		e.log.Error("career catalog unavailable", map[string]interface{}{
			"sessionId": state.SessionID,
			"error":     err.Error(),
		})
		return stderrors.NewCatalogUnavailableError(err)
	}

	state.Flow = models.FlowState{Name: models.FlowFreeForm}

	if len(careers) == 0 {
		emptyErr := stderrors.NewCatalogEmptyError()
		e.log.Warn("career catalog is empty", map[string]interface{}{
			"sessionId": state.SessionID,
			"error":     emptyErr.Error(),
		})
		metrics.TurnsFailed.WithLabelValues(string(emptyErr.Code)).Inc()
		result.Message = respond.EmptyCatalogMessage
		result.CareerMatches = []models.MatchResult{}
		return nil
	}

	ranked := match.Rank(state.Profile, careers)
	top := ranked[0]
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}

	skillGaps := gaps.Analyze(state.Profile, top.Career, e.lookup)
	roadmap := gaps.BuildRoadmap(state.Profile, top.Career, skillGaps, e.lookup)

	result.Message = e.synth.AnalysisMessage(state.Profile, top)
	result.QuickReplies = e.synth.CompletionQuickReplies(top)
	result.CareerMatches = ranked
	result.Roadmap = &roadmap

	metrics.AssessmentsCompleted.WithLabelValues(top.Career.ID).Inc()
	e.log.Info("assessment completed", map[string]interface{}{
		"sessionId": state.SessionID,
		"topCareer": top.Career.ID,
		"score":     top.MatchScore,
		"gapCount":  len(skillGaps),
	})
	return nil
}

// exitAssessment confirms the exit and still answers the message free-form
// in the same turn.
func (e *Engine) exitAssessment(state *models.SessionState, result *models.TurnResult) {
	state.Flow = models.FlowState{Name: models.FlowFreeForm}
	reply := e.synth.FreeForm(result.Intent, state.Profile)
	result.Message = fmt.Sprintf("%s\n\n%s", respond.ExitMessage, reply.Message)
	result.QuickReplies = reply.QuickReplies
	result.SuggestedActions = reply.SuggestedActions
}

// progressPercent reports how far into the script the given step is once it
// is being asked.
func progressPercent(step int) int {
	return int(math.Round(float64(step+1) / float64(assessment.Count()) * 100))
}
