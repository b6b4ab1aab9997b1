package service

import (
	"github.com/dom/aura-backend/internal/config"
	"github.com/dom/aura-backend/internal/logger"
	"github.com/dom/aura-backend/internal/repository"
)

type Services struct {
	Auth    *AuthService
	Profile *ProfileService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, log *logger.Logger) *Services {
	return &Services{
		Auth:    NewAuthService(repos.User, cfg, log),
		Profile: NewProfileService(repos.Profile, log),
	}
}
