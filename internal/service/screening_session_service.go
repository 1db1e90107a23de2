package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"wellmind_backend/internal/model"
	"wellmind_backend/internal/repository"
	"wellmind_backend/internal/util"
	"wellmind_backend/pkg/logger"
	"wellmind_backend/pkg/monitoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ScreeningSessionService owns the session state machine: lifecycle, the
// answer-submission unit of work, and the next-unanswered-question read path.
// Every call reads fresh persisted state; the service keeps no per-session
// state in memory beyond the lock table.
type ScreeningSessionService struct {
	Sessions      *repository.ScreeningSessionRepository
	AnswerLedger  *repository.ScreeningAnswerRepository
	Catalog       *repository.ScreeningRepository
	Flows         *repository.ScreeningFlowRepository
	Accounts      *repository.AccountRepository
	Scoring       *ScoringService
	Orchestration *OrchestrationService
	Crisis        CrisisNotifier
	Tx            *repository.TxManager

	locks *sessionLocker
}

func NewScreeningSessionService(
	sessions *repository.ScreeningSessionRepository,
	answerLedger *repository.ScreeningAnswerRepository,
	catalog *repository.ScreeningRepository,
	flows *repository.ScreeningFlowRepository,
	accounts *repository.AccountRepository,
	scoring *ScoringService,
	orchestration *OrchestrationService,
	crisis CrisisNotifier,
	tx *repository.TxManager,
) *ScreeningSessionService {
	return &ScreeningSessionService{
		Sessions:      sessions,
		AnswerLedger:  answerLedger,
		Catalog:       catalog,
		Flows:         flows,
		Accounts:      accounts,
		Scoring:       scoring,
		Orchestration: orchestration,
		Crisis:        crisis,
		Tx:            tx,
		locks:         newSessionLocker(),
	}
}

// CreateSession starts a run of a flow. The session and its first screening
// are created together; a session is never exposed with zero screenings.
func (s *ScreeningSessionService) CreateSession(ctx context.Context, flowID, targetAccountID, createdByAccountID uint) (*model.ScreeningSession, error) {
	vErr := util.NewValidationError()

	flow, err := s.Flows.FindFlowByID(flowID)
	if err != nil {
		return nil, err
	}
	if flow == nil {
		vErr.Add("flowId", "screening flow %d not found", flowID)
	}

	targetExists, err := s.Accounts.Exists(targetAccountID)
	if err != nil {
		return nil, err
	}
	if !targetExists {
		vErr.Add("targetAccountId", "account %d not found", targetAccountID)
	}

	creatorExists, err := s.Accounts.Exists(createdByAccountID)
	if err != nil {
		return nil, err
	}
	if !creatorExists {
		vErr.Add("createdByAccountId", "account %d not found", createdByAccountID)
	}

	if vErr.HasViolations() {
		return nil, vErr
	}

	flowVersion, err := s.Flows.FindActiveVersion(flowID)
	if err != nil {
		return nil, err
	}
	if flowVersion == nil {
		return nil, util.NewConfigurationError("screening flow %d has no active version", flowID)
	}

	screeningVersion, err := s.Catalog.FindActiveVersion(flowVersion.InitialScreeningID)
	if err != nil {
		return nil, err
	}
	if screeningVersion == nil {
		return nil, util.NewConfigurationError(
			"initial screening %d of flow version %d has no active version",
			flowVersion.InitialScreeningID, flowVersion.ID)
	}

	session := &model.ScreeningSession{
		ScreeningFlowVersionID: flowVersion.ID,
		TargetAccountID:        targetAccountID,
		CreatedByAccountID:     createdByAccountID,
	}
	err = s.Tx.Do(func(tx *gorm.DB) error {
		sessions := s.Sessions.WithTx(tx)
		if err := sessions.CreateSession(session); err != nil {
			return err
		}
		return sessions.CreateSessionScreening(&model.ScreeningSessionScreening{
			ScreeningSessionID: session.ID,
			ScreeningVersionID: screeningVersion.ID,
			ScreeningOrder:     1,
		})
	})
	if err != nil {
		return nil, err
	}

	monitoring.ScreeningSessionsCreated.Inc()
	return session, nil
}

// NextQuestionContext is what a front end needs to render the next question.
type NextQuestionContext struct {
	SessionScreening model.ScreeningSessionScreening `json:"sessionScreening"`
	Question         model.ScreeningQuestion         `json:"question"`
}

// NextUnansweredQuestion returns the first question, by display order, of
// the current screening that has no current answer. Empty for unknown or
// completed sessions. Pure read, idempotent.
func (s *ScreeningSessionService) NextUnansweredQuestion(sessionID uint) (*NextQuestionContext, error) {
	session, err := s.Sessions.FindSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Completed {
		return nil, nil
	}

	current, err := s.Sessions.CurrentSessionScreening(sessionID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, util.NewIntegrityError("incomplete session %d has no screenings", sessionID)
	}

	questions, err := s.Catalog.ListQuestions(current.ScreeningVersionID)
	if err != nil {
		return nil, err
	}
	currentAnswers, err := s.AnswerLedger.CurrentAnswersByQuestion(current.ID, optionToQuestion(questions))
	if err != nil {
		return nil, err
	}

	for _, q := range questions {
		if len(currentAnswers[q.ID]) == 0 {
			return &NextQuestionContext{SessionScreening: *current, Question: q}, nil
		}
	}
	// An incomplete session with every question answered means a concurrent
	// write slipped past orchestration or state is corrupted.
	return nil, util.NewIntegrityError(
		"incomplete session %d has no unanswered question on screening %d", sessionID, current.ID)
}

// AnswerSubmission is one answer in a submission request.
type AnswerSubmission struct {
	AnswerOptionID uint   `json:"answerOptionId" binding:"required"`
	Text           string `json:"text"`
}

// SubmitAnswers is the whole unit of work: validate, append to the ledger,
// score the active screening, orchestrate the session, apply effects. All of
// it commits atomically or none of it does. Returns the new answer ids.
func (s *ScreeningSessionService) SubmitAnswers(
	ctx context.Context,
	sessionScreeningID, questionID uint,
	submissions []AnswerSubmission,
	createdByAccountID uint,
) ([]uint, error) {
	// Resolve the owning session up front so the unit of work runs under the
	// per-session lock. Existence is re-checked inside the transaction.
	preflight, err := s.Sessions.FindSessionScreeningByID(sessionScreeningID)
	if err != nil {
		return nil, err
	}
	if preflight != nil {
		unlock := s.locks.Lock(preflight.ScreeningSessionID)
		defer unlock()
	}

	var answerIDs []uint
	crisisTransition := false
	var sessionID uint

	err = s.Tx.Do(func(tx *gorm.DB) error {
		sessions := s.Sessions.WithTx(tx)
		ledger := s.AnswerLedger.WithTx(tx)
		catalog := s.Catalog.WithTx(tx)
		flows := s.Flows.WithTx(tx)

		sessionScreening, _, session, vErr, err := s.validateSubmission(sessions, catalog, sessionScreeningID, questionID, submissions)
		if err != nil {
			return err
		}
		if vErr.HasViolations() {
			return vErr
		}
		sessionID = session.ID

		// One submission id per batch: the current-answer projection groups
		// a submission's rows by it, with ledger id as the tiebreaker.
		now := time.Now()
		submissionID := uuid.New().String()
		answers := make([]*model.ScreeningAnswer, len(submissions))
		for i, sub := range submissions {
			answers[i] = &model.ScreeningAnswer{
				ScreeningSessionScreeningID: sessionScreening.ID,
				ScreeningAnswerOptionID:     sub.AnswerOptionID,
				CreatedByAccountID:          createdByAccountID,
				SubmissionID:                submissionID,
				Text:                        sub.Text,
			}
			answers[i].CreatedAt = now
		}
		if err := ledger.CreateAnswers(answers); err != nil {
			return err
		}
		answerIDs = make([]uint, len(answers))
		for i, a := range answers {
			answerIDs[i] = a.ID
		}

		// Score the active screening against its refreshed current answers.
		version, err := catalog.FindVersionByID(sessionScreening.ScreeningVersionID)
		if err != nil {
			return err
		}
		if version == nil {
			return util.NewIntegrityError("session screening %d references missing screening version %d",
				sessionScreening.ID, sessionScreening.ScreeningVersionID)
		}
		questions, err := catalog.ListQuestions(version.ID)
		if err != nil {
			return err
		}
		currentAnswers, err := ledger.CurrentAnswersByQuestion(sessionScreening.ID, optionToQuestion(questions))
		if err != nil {
			return err
		}
		scoring, err := s.Scoring.Score(ctx, version, questions, currentAnswers)
		if err != nil {
			return err
		}
		if err := sessions.UpdateSessionScreeningResult(sessionScreening.ID, scoring.Score, scoring.Completed); err != nil {
			return err
		}

		// Orchestrate over the whole session history and apply the effects.
		flowVersion, err := flows.FindFlowVersionByID(session.ScreeningFlowVersionID)
		if err != nil {
			return err
		}
		if flowVersion == nil {
			return util.NewIntegrityError("session %d references missing flow version %d",
				session.ID, session.ScreeningFlowVersionID)
		}
		history, err := s.loadHistory(sessions, ledger, catalog, session.ID)
		if err != nil {
			return err
		}
		orchestration, err := s.Orchestration.Orchestrate(ctx, flowVersion, history)
		if err != nil {
			return err
		}

		if orchestration.NextScreeningID != nil {
			nextVersion, err := catalog.FindActiveVersion(*orchestration.NextScreeningID)
			if err != nil {
				return err
			}
			if nextVersion == nil {
				return util.NewConfigurationError(
					"orchestration rule for flow version %d routed to screening %d, which has no active version",
					flowVersion.ID, *orchestration.NextScreeningID)
			}
			maxOrder, err := sessions.MaxScreeningOrder(session.ID)
			if err != nil {
				return err
			}
			if err := sessions.CreateSessionScreening(&model.ScreeningSessionScreening{
				ScreeningSessionID: session.ID,
				ScreeningVersionID: nextVersion.ID,
				ScreeningOrder:     maxOrder + 1,
			}); err != nil {
				return err
			}
		}

		if orchestration.CrisisIndicated && !session.CrisisIndicated {
			if err := sessions.MarkSessionCrisisIndicated(session.ID); err != nil {
				return err
			}
			crisisTransition = true
		}

		if orchestration.Completed {
			if err := sessions.MarkSessionCompleted(session.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.AnswersSubmitted.Add(float64(len(answerIDs)))

	// Dispatched after commit so a rolled-back transaction can never alert,
	// and only on the false-to-true transition.
	if crisisTransition {
		monitoring.CrisisIndications.Inc()
		if err := s.Crisis.NotifyCrisis(ctx, sessionID, map[string]string{
			"sessionScreeningId": strconv.FormatUint(uint64(sessionScreeningID), 10),
			"questionId":         strconv.FormatUint(uint64(questionID), 10),
		}); err != nil {
			logger.Log.Error("Crisis notification dispatch failed",
				zap.Uint("sessionId", sessionID), zap.Error(err))
		}
	}

	return answerIDs, nil
}

// ListSessionsForAccount returns the sessions screening an account, newest
// first.
func (s *ScreeningSessionService) ListSessionsForAccount(accountID uint) ([]model.ScreeningSession, error) {
	return s.Sessions.ListSessionsByTargetAccount(accountID)
}

// GetSession returns a session with its ordered screenings; nil when the
// session does not exist.
func (s *ScreeningSessionService) GetSession(sessionID uint) (*model.ScreeningSession, []model.ScreeningSessionScreening, error) {
	session, err := s.Sessions.FindSessionByID(sessionID)
	if err != nil || session == nil {
		return nil, nil, err
	}
	screenings, err := s.Sessions.ListSessionScreenings(sessionID)
	if err != nil {
		return nil, nil, err
	}
	return session, screenings, nil
}

func (s *ScreeningSessionService) validateSubmission(
	sessions *repository.ScreeningSessionRepository,
	catalog *repository.ScreeningRepository,
	sessionScreeningID, questionID uint,
	submissions []AnswerSubmission,
) (*model.ScreeningSessionScreening, *model.ScreeningQuestion, *model.ScreeningSession, *util.ValidationError, error) {
	vErr := util.NewValidationError()

	sessionScreening, err := sessions.FindSessionScreeningByID(sessionScreeningID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if sessionScreening == nil {
		vErr.Add("sessionScreeningId", "session screening %d not found", sessionScreeningID)
	}

	question, err := catalog.FindQuestionByID(questionID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if question == nil {
		vErr.Add("questionId", "question %d not found", questionID)
	}

	if len(submissions) == 0 {
		vErr.Add("answers", "at least one answer is required")
	}

	var session *model.ScreeningSession
	if sessionScreening != nil {
		session, err = sessions.FindSessionByID(sessionScreening.ScreeningSessionID)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		if session == nil {
			return nil, nil, nil, nil, util.NewIntegrityError(
				"session screening %d references missing session %d",
				sessionScreening.ID, sessionScreening.ScreeningSessionID)
		}
		if session.Completed {
			vErr.Add("sessionScreeningId", "session %d is completed and immutable", session.ID)
		}

		// Only the highest-order screening may still be in progress; a
		// superseded one is settled and must not be re-scored.
		maxOrder, err := sessions.MaxScreeningOrder(session.ID)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		if sessionScreening.ScreeningOrder < maxOrder {
			vErr.Add("sessionScreeningId", "session screening %d is superseded; only the current screening accepts answers", sessionScreening.ID)
		}
	}

	if sessionScreening != nil && question != nil {
		if question.ScreeningVersionID != sessionScreening.ScreeningVersionID {
			vErr.Add("questionId", "question %d does not belong to screening version %d",
				question.ID, sessionScreening.ScreeningVersionID)
		}

		optionSet := make(map[uint]bool, len(question.Options))
		for _, opt := range question.Options {
			optionSet[opt.ID] = true
		}
		var foreign []string
		for _, sub := range submissions {
			if !optionSet[sub.AnswerOptionID] {
				foreign = append(foreign, strconv.FormatUint(uint64(sub.AnswerOptionID), 10))
			}
		}
		if len(foreign) > 0 {
			vErr.Add("answers", "answer options [%s] do not belong to question %d",
				strings.Join(foreign, ", "), question.ID)
		}

		if (question.AnswerFormat == model.SingleSelect || question.AnswerFormat == model.FreeText) && len(submissions) > 1 {
			vErr.Add("answers", "question %d accepts exactly one answer", question.ID)
		}

		if question.AnswerFormat == model.FreeText {
			for i := range submissions {
				s.validateFreeText(question, &submissions[i], vErr)
			}
		}
	}

	return sessionScreening, question, session, vErr, nil
}

// validateFreeText checks required text and, when the question declares a
// content hint, normalizes the text in place so the canonical form is what
// lands in the ledger.
func (s *ScreeningSessionService) validateFreeText(question *model.ScreeningQuestion, sub *AnswerSubmission, vErr *util.ValidationError) {
	if strings.TrimSpace(sub.Text) == "" {
		vErr.Add("answers", "question %d requires a text answer", question.ID)
		return
	}
	switch question.ContentHint {
	case model.HintPhoneNumber:
		normalized, ok := util.NormalizePhoneNumber(sub.Text)
		if !ok {
			vErr.Add("answers", "question %d requires a valid phone number", question.ID)
			return
		}
		sub.Text = normalized
	case model.HintEmail:
		normalized, ok := util.NormalizeEmail(sub.Text)
		if !ok {
			vErr.Add("answers", "question %d requires a valid email address", question.ID)
			return
		}
		sub.Text = normalized
	}
}

func (s *ScreeningSessionService) loadHistory(
	sessions *repository.ScreeningSessionRepository,
	ledger *repository.ScreeningAnswerRepository,
	catalog *repository.ScreeningRepository,
	sessionID uint,
) ([]ScreeningHistory, error) {
	sessionScreenings, err := sessions.ListSessionScreenings(sessionID)
	if err != nil {
		return nil, err
	}

	history := make([]ScreeningHistory, 0, len(sessionScreenings))
	for _, ss := range sessionScreenings {
		version, err := catalog.FindVersionByID(ss.ScreeningVersionID)
		if err != nil {
			return nil, err
		}
		if version == nil {
			return nil, util.NewIntegrityError("session screening %d references missing screening version %d",
				ss.ID, ss.ScreeningVersionID)
		}
		questions, err := catalog.ListQuestions(version.ID)
		if err != nil {
			return nil, err
		}
		currentAnswers, err := ledger.CurrentAnswersByQuestion(ss.ID, optionToQuestion(questions))
		if err != nil {
			return nil, err
		}
		history = append(history, ScreeningHistory{
			SessionScreening: ss,
			ScreeningID:      version.ScreeningID,
			Questions:        questions,
			CurrentAnswers:   currentAnswers,
		})
	}
	return history, nil
}

func optionToQuestion(questions []model.ScreeningQuestion) map[uint]uint {
	index := make(map[uint]uint)
	for _, q := range questions {
		for _, opt := range q.Options {
			index[opt.ID] = q.ID
		}
	}
	return index
}
