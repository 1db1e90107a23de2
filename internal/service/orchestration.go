package service

import (
	"context"
	"time"

	"wellmind_backend/internal/model"
	"wellmind_backend/internal/rules"
	"wellmind_backend/internal/util"
	"wellmind_backend/pkg/monitoring"
)

// OrchestrationResult is the exact output contract of an orchestration rule.
// All three fields are mandatory; completed=true combined with a non-null
// next screening is self-contradictory and fatal.
type OrchestrationResult struct {
	Completed       bool
	CrisisIndicated bool
	NextScreeningID *uint
}

// ScreeningHistory is one visited screening joined with its content and
// current answers, the unit of orchestration input.
type ScreeningHistory struct {
	SessionScreening model.ScreeningSessionScreening
	ScreeningID      uint
	Questions        []model.ScreeningQuestion
	CurrentAnswers   map[uint][]model.ScreeningAnswer
}

// OrchestrationService evaluates a flow version's orchestration rule over
// the whole session history. Side-effect free; the caller applies effects.
type OrchestrationService struct {
	Evaluator rules.Evaluator
}

func NewOrchestrationService(evaluator rules.Evaluator) *OrchestrationService {
	return &OrchestrationService{Evaluator: evaluator}
}

func (s *OrchestrationService) Orchestrate(
	ctx context.Context,
	flowVersion *model.ScreeningFlowVersion,
	history []ScreeningHistory,
) (*OrchestrationResult, error) {
	input := buildOrchestrationInput(history)

	start := time.Now()
	out, err := s.Evaluator.Evaluate(ctx, flowVersion.OrchestrationRule, input)
	monitoring.RuleEvaluationDuration.WithLabelValues("orchestration").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, util.NewEvaluationError("orchestration", err)
	}

	completed, err := rules.RequireBool(out, "completed")
	if err != nil {
		return nil, util.NewConfigurationError("orchestration rule for flow version %d: %v", flowVersion.ID, err)
	}
	crisisIndicated, err := rules.RequireBool(out, "crisisIndicated")
	if err != nil {
		return nil, util.NewConfigurationError("orchestration rule for flow version %d: %v", flowVersion.ID, err)
	}
	nextScreeningID, err := rules.RequireNullableID(out, "nextScreeningId")
	if err != nil {
		return nil, util.NewConfigurationError("orchestration rule for flow version %d: %v", flowVersion.ID, err)
	}

	if completed && nextScreeningID != nil {
		return nil, util.NewConfigurationError(
			"orchestration rule for flow version %d returned completed=true with nextScreeningId=%d",
			flowVersion.ID, *nextScreeningID)
	}

	return &OrchestrationResult{
		Completed:       completed,
		CrisisIndicated: crisisIndicated,
		NextScreeningID: nextScreeningID,
	}, nil
}

func buildOrchestrationInput(history []ScreeningHistory) map[string]interface{} {
	screeningDocs := make([]map[string]interface{}, 0, len(history))
	allCompleted := len(history) > 0
	crisisAnswered := false

	for _, h := range history {
		scoringInput := buildScoringInput(h.Questions, h.CurrentAnswers)
		doc := map[string]interface{}{
			"screeningId":        int(h.ScreeningID),
			"screeningVersionId": int(h.SessionScreening.ScreeningVersionID),
			"order":              h.SessionScreening.ScreeningOrder,
			"completed":          h.SessionScreening.Completed,
			"score":              h.SessionScreening.Score,
			"questions":          scoringInput["questions"],
			"questionCount":      scoringInput["questionCount"],
			"answeredCount":      scoringInput["answeredCount"],
			"crisisAnswered":     scoringInput["crisisAnswered"],
			"currentAnswerScore": scoringInput["totalScore"],
		}
		screeningDocs = append(screeningDocs, doc)

		if !h.SessionScreening.Completed {
			allCompleted = false
		}
		if scoringInput["crisisAnswered"].(bool) {
			crisisAnswered = true
		}
	}

	input := map[string]interface{}{
		"screenings":     screeningDocs,
		"allCompleted":   allCompleted,
		"crisisAnswered": crisisAnswered,
	}
	if len(screeningDocs) > 0 {
		input["lastScreening"] = screeningDocs[len(screeningDocs)-1]
	}
	return input
}
