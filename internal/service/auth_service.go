package service

import (
	"wellmind_backend/internal/config"
	"wellmind_backend/internal/model"
	"wellmind_backend/internal/repository"
	"wellmind_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Accounts *repository.AccountRepository
	Cfg      *config.Config
}

func NewAuthService(accounts *repository.AccountRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		Accounts: accounts,
		Cfg:      cfg,
	}
}

func (s *AuthService) Register(account *model.Account) error {
	existing, err := s.Accounts.FindByEmail(account.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return util.ErrEmailRegistered
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	account.Password = string(hashedPassword)
	return s.Accounts.Create(account)
}

func (s *AuthService) Login(email, password string) (string, error) {
	account, err := s.Accounts.FindByEmail(email)
	if err != nil {
		return "", err
	}
	if account == nil {
		return "", util.ErrBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return "", util.ErrBadCredentials
	}

	return util.GenerateJWT(account, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) GetCurrentAccount(c *gin.Context) *model.Account {
	claims := util.GetAccountFromContext(c)
	if claims == nil {
		return nil
	}

	account, _ := s.Accounts.FindByID(claims.AccountID)
	return account
}
