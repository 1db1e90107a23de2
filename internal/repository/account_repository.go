package repository

import (
	"errors"

	"wellmind_backend/internal/model"

	"gorm.io/gorm"
)

type AccountRepository struct {
	DB *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

func (r *AccountRepository) WithTx(tx *gorm.DB) *AccountRepository {
	return &AccountRepository{DB: tx}
}

func (r *AccountRepository) Create(account *model.Account) error {
	return r.DB.Create(account).Error
}

// FindByID returns nil without error when the account does not exist.
func (r *AccountRepository) FindByID(id uint) (*model.Account, error) {
	var a model.Account
	err := r.DB.First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepository) FindByEmail(email string) (*model.Account, error) {
	var a model.Account
	err := r.DB.Where("email = ?", email).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Exists is the identity check used when creating sessions: confirm the
// account resolves, nothing more.
func (r *AccountRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Account{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
