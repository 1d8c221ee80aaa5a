// Package admin управляет сессиями консоли администратора.
package admin

import (
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/fastorderfood/storefront/internal/domain"
)

// Учётная запись администратора захардкожена на стороне бэкенда,
// витрина лишь повторяет её.
const (
	adminUsername = "123"
	adminPassword = "123"
)

// Service проверяет учётные данные и выдаёт токены сессий.
type Service struct {
	sessions domain.SessionRepository
	logger   *log.Entry
	now      func() time.Time
}

// NewService создаёт сервис администратора.
func NewService(sessions domain.SessionRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "admin")
	}
	return &Service{sessions: sessions, logger: logger, now: time.Now}
}

// Login проверяет пару логин/пароль и создаёт сессию.
// Неверные данные — domain.ErrBadCredentials.
func (s *Service) Login(username, password string) (domain.Session, error) {
	if username != adminUsername || password != adminPassword {
		s.logger.WithField("username", username).Warn("admin login rejected")
		return domain.Session{}, domain.ErrBadCredentials
	}

	session := domain.Session{
		Token:     uuid.NewString(),
		Username:  username,
		CreatedAt: s.now().UTC(),
	}
	if err := s.sessions.Create(session); err != nil {
		return domain.Session{}, err
	}
	s.logger.Info("admin logged in")
	return session, nil
}

// Logout удаляет сессию. Удаление неизвестного токена не ошибка.
func (s *Service) Logout(token string) error {
	return s.sessions.Delete(token)
}

// Authenticate возвращает сессию по токену.
func (s *Service) Authenticate(token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return s.sessions.Get(token)
}
