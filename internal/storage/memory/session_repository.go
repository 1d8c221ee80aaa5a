package memory

import (
	"sync"

	"github.com/fastorderfood/storefront/internal/domain"
)

// sessionRepositoryInMemory хранит админ-сессии в памяти процесса.
// Сессии не переживают рестарт — для захардкоженной демо-админки этого хватает.
type sessionRepositoryInMemory struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewSessionRepository возвращает in-memory репозиторий админ-сессий.
func NewSessionRepository() domain.SessionRepository {
	return &sessionRepositoryInMemory{
		sessions: make(map[string]domain.Session),
	}
}

func (r *sessionRepositoryInMemory) Create(s domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.Token] = s
	return nil
}

func (r *sessionRepositoryInMemory) Get(token string) (domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[token]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return s, nil
}

func (r *sessionRepositoryInMemory) Delete(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}

var _ domain.SessionRepository = (*sessionRepositoryInMemory)(nil)
