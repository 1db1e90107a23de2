package repository

import (
	"errors"

	"wellmind_backend/internal/model"

	"gorm.io/gorm"
)

type ScreeningSessionRepository struct {
	DB *gorm.DB
}

func NewScreeningSessionRepository(db *gorm.DB) *ScreeningSessionRepository {
	return &ScreeningSessionRepository{DB: db}
}

func (r *ScreeningSessionRepository) WithTx(tx *gorm.DB) *ScreeningSessionRepository {
	return &ScreeningSessionRepository{DB: tx}
}

func (r *ScreeningSessionRepository) CreateSession(s *model.ScreeningSession) error {
	return r.DB.Create(s).Error
}

func (r *ScreeningSessionRepository) CreateSessionScreening(ss *model.ScreeningSessionScreening) error {
	return r.DB.Create(ss).Error
}

func (r *ScreeningSessionRepository) FindSessionByID(id uint) (*model.ScreeningSession, error) {
	var s model.ScreeningSession
	err := r.DB.First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScreeningSessionRepository) FindSessionScreeningByID(id uint) (*model.ScreeningSessionScreening, error) {
	var ss model.ScreeningSessionScreening
	err := r.DB.First(&ss, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ss, nil
}

// ListSessionScreenings returns every visited screening in visit order.
func (r *ScreeningSessionRepository) ListSessionScreenings(sessionID uint) ([]model.ScreeningSessionScreening, error) {
	var sss []model.ScreeningSessionScreening
	err := r.DB.Where("screening_session_id = ?", sessionID).
		Order("screening_order asc").
		Find(&sss).Error
	return sss, err
}

// CurrentSessionScreening returns the highest-order screening, nil when the
// session has none.
func (r *ScreeningSessionRepository) CurrentSessionScreening(sessionID uint) (*model.ScreeningSessionScreening, error) {
	var ss model.ScreeningSessionScreening
	err := r.DB.Where("screening_session_id = ?", sessionID).
		Order("screening_order desc").
		First(&ss).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ss, nil
}

func (r *ScreeningSessionRepository) MaxScreeningOrder(sessionID uint) (int, error) {
	var max int
	err := r.DB.Model(&model.ScreeningSessionScreening{}).
		Where("screening_session_id = ?", sessionID).
		Select("COALESCE(MAX(screening_order), 0)").
		Scan(&max).Error
	return max, err
}

// UpdateSessionScreeningResult persists a scoring evaluation onto the row.
func (r *ScreeningSessionRepository) UpdateSessionScreeningResult(id uint, score int, completed bool) error {
	return r.DB.Model(&model.ScreeningSessionScreening{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"score": score, "completed": completed}).Error
}

// MarkSessionCompleted flips the terminal flag. There is deliberately no way
// to flip it back.
func (r *ScreeningSessionRepository) MarkSessionCompleted(id uint) error {
	return r.DB.Model(&model.ScreeningSession{}).
		Where("id = ?", id).
		Update("completed", true).Error
}

// MarkSessionCrisisIndicated sets the sticky crisis flag.
func (r *ScreeningSessionRepository) MarkSessionCrisisIndicated(id uint) error {
	return r.DB.Model(&model.ScreeningSession{}).
		Where("id = ?", id).
		Update("crisis_indicated", true).Error
}

func (r *ScreeningSessionRepository) ListSessionsByTargetAccount(accountID uint) ([]model.ScreeningSession, error) {
	var sessions []model.ScreeningSession
	err := r.DB.Where("target_account_id = ?", accountID).
		Order("created_at desc").
		Find(&sessions).Error
	return sessions, err
}
