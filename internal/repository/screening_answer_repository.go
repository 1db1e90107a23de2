package repository

import (
	"wellmind_backend/internal/model"
	"wellmind_backend/internal/util"

	"gorm.io/gorm"
)

// ScreeningAnswerRepository owns the append-only answer ledger and its
// "current answer" projection. Rows are only ever inserted.
type ScreeningAnswerRepository struct {
	DB *gorm.DB
}

func NewScreeningAnswerRepository(db *gorm.DB) *ScreeningAnswerRepository {
	return &ScreeningAnswerRepository{DB: db}
}

func (r *ScreeningAnswerRepository) WithTx(tx *gorm.DB) *ScreeningAnswerRepository {
	return &ScreeningAnswerRepository{DB: tx}
}

func (r *ScreeningAnswerRepository) CreateAnswers(answers []*model.ScreeningAnswer) error {
	return r.DB.Create(answers).Error
}

// ListAnswers returns the full ledger for a session screening in insertion
// order. Primary-key order is the supersession order: ids are assigned by
// the database inside the serialized per-session transaction, so it is
// immune to wall-clock skew.
func (r *ScreeningAnswerRepository) ListAnswers(sessionScreeningID uint) ([]model.ScreeningAnswer, error) {
	var answers []model.ScreeningAnswer
	err := r.DB.Where("screening_session_screening_id = ?", sessionScreeningID).
		Order("id asc").
		Find(&answers).Error
	return answers, err
}

func (r *ScreeningAnswerRepository) CountAnswers(sessionScreeningID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ScreeningAnswer{}).
		Where("screening_session_screening_id = ?", sessionScreeningID).
		Count(&count).Error
	return count, err
}

// CurrentAnswersByQuestion folds the ledger into the current-answer
// projection: per question, only the rows of the newest submission batch
// survive. A batch is the set of rows sharing the SubmissionID of the
// question's highest-id row; each submission writes all of a question's
// answers under one submission id. A row whose option does not belong to
// the session screening's version is corruption, never silently dropped:
// answers can only be appended against the version's own options.
func (r *ScreeningAnswerRepository) CurrentAnswersByQuestion(sessionScreeningID uint, optionToQuestion map[uint]uint) (map[uint][]model.ScreeningAnswer, error) {
	answers, err := r.ListAnswers(sessionScreeningID)
	if err != nil {
		return nil, err
	}

	current := make(map[uint][]model.ScreeningAnswer)
	for _, a := range answers {
		questionID, ok := optionToQuestion[a.ScreeningAnswerOptionID]
		if !ok {
			return nil, util.NewIntegrityError(
				"answer %d on session screening %d references option %d outside the screening version",
				a.ID, sessionScreeningID, a.ScreeningAnswerOptionID)
		}
		batch := current[questionID]
		if len(batch) > 0 && batch[len(batch)-1].SubmissionID != a.SubmissionID {
			batch = nil
		}
		current[questionID] = append(batch, a)
	}
	return current, nil
}
