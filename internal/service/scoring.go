package service

import (
	"context"
	"time"

	"wellmind_backend/internal/model"
	"wellmind_backend/internal/rules"
	"wellmind_backend/internal/util"
	"wellmind_backend/pkg/monitoring"
)

// ScoringResult is the exact output contract of a scoring rule. Both fields
// are mandatory; a missing field is a defect in the authored version, never
// defaulted.
type ScoringResult struct {
	Completed bool
	Score     int
}

// ScoringService evaluates a screening version's scoring rule against its
// questions and current answers. It is side-effect free; the caller persists
// the result.
type ScoringService struct {
	Evaluator rules.Evaluator
}

func NewScoringService(evaluator rules.Evaluator) *ScoringService {
	return &ScoringService{Evaluator: evaluator}
}

func (s *ScoringService) Score(
	ctx context.Context,
	version *model.ScreeningVersion,
	questions []model.ScreeningQuestion,
	currentAnswers map[uint][]model.ScreeningAnswer,
) (*ScoringResult, error) {
	input := buildScoringInput(questions, currentAnswers)

	start := time.Now()
	out, err := s.Evaluator.Evaluate(ctx, version.ScoringRule, input)
	monitoring.RuleEvaluationDuration.WithLabelValues("scoring").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, util.NewEvaluationError("scoring", err)
	}

	completed, err := rules.RequireBool(out, "completed")
	if err != nil {
		return nil, util.NewConfigurationError("scoring rule for screening version %d: %v", version.ID, err)
	}
	score, err := rules.RequireInt(out, "score")
	if err != nil {
		return nil, util.NewConfigurationError("scoring rule for screening version %d: %v", version.ID, err)
	}

	return &ScoringResult{Completed: completed, Score: score}, nil
}

func buildScoringInput(questions []model.ScreeningQuestion, currentAnswers map[uint][]model.ScreeningAnswer) map[string]interface{} {
	optionIndex := indexOptions(questions)

	questionDocs := make([]map[string]interface{}, 0, len(questions))
	answeredCount := 0
	totalScore := 0
	crisisAnswered := false

	for _, q := range questions {
		answers := currentAnswers[q.ID]
		answerDocs := make([]map[string]interface{}, 0, len(answers))
		for _, a := range answers {
			opt := optionIndex[a.ScreeningAnswerOptionID]
			totalScore += opt.Score
			if opt.IndicatesCrisis {
				crisisAnswered = true
			}
			answerDocs = append(answerDocs, map[string]interface{}{
				"optionId":        int(a.ScreeningAnswerOptionID),
				"score":           opt.Score,
				"indicatesCrisis": opt.IndicatesCrisis,
				"text":            a.Text,
			})
		}
		if len(answers) > 0 {
			answeredCount++
		}
		questionDocs = append(questionDocs, map[string]interface{}{
			"id":           int(q.ID),
			"displayOrder": q.DisplayOrder,
			"answered":     len(answers) > 0,
			"answers":      answerDocs,
		})
	}

	return map[string]interface{}{
		"questions":      questionDocs,
		"questionCount":  len(questions),
		"answeredCount":  answeredCount,
		"totalScore":     totalScore,
		"crisisAnswered": crisisAnswered,
	}
}

func indexOptions(questions []model.ScreeningQuestion) map[uint]model.ScreeningAnswerOption {
	index := make(map[uint]model.ScreeningAnswerOption)
	for _, q := range questions {
		for _, opt := range q.Options {
			index[opt.ID] = opt
		}
	}
	return index
}
