// Package file хранит состояние корзины в JSON-файлах каталога состояния,
// по одному документу на профиль.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/fastorderfood/storefront/internal/domain"
)

// stateDocument — сериализованная форма состояния профиля: корзина и
// выбранное время самовывоза.
type stateDocument struct {
	Cart       []cartLine `json:"cart"`
	PickupTime string     `json:"pickupTime"`
}

type cartLine struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Unit     string  `json:"unit"`
}

// CartStateRepository — файловая реализация CartStateRepository.
type CartStateRepository struct {
	dir    string
	logger *log.Entry

	mu sync.Mutex
}

// NewCartStateRepository создаёт репозиторий в каталоге dir (создаётся при
// необходимости).
func NewCartStateRepository(dir string, logger *log.Entry) (*CartStateRepository, error) {
	if logger == nil {
		logger = log.New().WithField("component", "file-storage")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &CartStateRepository{dir: dir, logger: logger}, nil
}

// Load возвращает состояние профиля. Отсутствующий или нечитаемый документ
// деградирует до пустого состояния.
func (r *CartStateRepository) Load(profileID string) (domain.CartState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked(profileID), nil
}

// SaveCart перезаписывает корзину профиля целиком.
func (r *CartStateRepository) SaveCart(profileID string, items []domain.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.docLocked(profileID)
	doc.Cart = toLines(items)
	return r.writeLocked(profileID, doc)
}

// SavePickupTime перезаписывает время самовывоза профиля.
func (r *CartStateRepository) SavePickupTime(profileID, pickupTime string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.docLocked(profileID)
	doc.PickupTime = pickupTime
	return r.writeLocked(profileID, doc)
}

// ClearPickupTime удаляет сохранённое время самовывоза.
func (r *CartStateRepository) ClearPickupTime(profileID string) error {
	return r.SavePickupTime(profileID, "")
}

func (r *CartStateRepository) loadLocked(profileID string) domain.CartState {
	doc := r.docLocked(profileID)

	items := make([]domain.CartItem, 0, len(doc.Cart))
	for _, l := range doc.Cart {
		items = append(items, domain.CartItem{
			ID:       l.ID,
			Name:     l.Name,
			Price:    l.Price,
			Quantity: l.Quantity,
			Unit:     l.Unit,
		})
	}
	return domain.CartState{Items: items, PickupTime: doc.PickupTime}
}

func (r *CartStateRepository) docLocked(profileID string) stateDocument {
	raw, err := os.ReadFile(r.path(profileID))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.logger.WithError(err).WithField("profile_id", profileID).Warn("failed to read state file, treating as empty")
		}
		return stateDocument{}
	}

	var doc stateDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		// Повреждённый документ считается отсутствующим.
		r.logger.WithError(err).WithField("profile_id", profileID).Warn("malformed state file, treating as empty")
		return stateDocument{}
	}
	return doc
}

func (r *CartStateRepository) writeLocked(profileID string, doc stateDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal state document: %w", err)
	}

	path := r.path(profileID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

func (r *CartStateRepository) path(profileID string) string {
	return filepath.Join(r.dir, sanitize(profileID)+".json")
}

// sanitize превращает идентификатор профиля в безопасное имя файла.
func sanitize(profileID string) string {
	if profileID == "" {
		return "default"
	}
	return strings.Map(func(ch rune) rune {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
			return ch
		case ch == '-' || ch == '_' || ch == '.':
			return ch
		default:
			return '_'
		}
	}, profileID)
}

func toLines(items []domain.CartItem) []cartLine {
	lines := make([]cartLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, cartLine{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Unit:     it.Unit,
		})
	}
	return lines
}

var _ domain.CartStateRepository = (*CartStateRepository)(nil)
