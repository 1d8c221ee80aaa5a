package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fastorderfood/storefront/internal/domain"
)

const opTimeout = 5 * time.Second

// cartLine — сериализованная строка корзины; та же JSON-форма, что и у
// файлового хранилища.
type cartLine struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Unit     string  `json:"unit"`
}

type cartStateRepository struct {
	db     *sql.DB
	logger *log.Entry
}

// NewCartStateRepository создаёт PostgreSQL-реализацию CartStateRepository.
func NewCartStateRepository(store *Store, logger *log.Entry) domain.CartStateRepository {
	if logger == nil {
		logger = log.New().WithField("component", "postgres-storage")
	}
	return &cartStateRepository{db: store.DB(), logger: logger}
}

func (r *cartStateRepository) Load(profileID string) (domain.CartState, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var (
		raw        []byte
		pickupTime string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT cart_json, pickup_time
		FROM cart_states
		WHERE profile_id = $1
	`, profileID).Scan(&raw, &pickupTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CartState{}, nil
		}
		return domain.CartState{}, fmt.Errorf("select cart state: %w", err)
	}

	var lines []cartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		// Повреждённый JSON деградирует до пустой корзины, не до ошибки.
		r.logger.WithError(err).WithField("profile_id", profileID).Warn("malformed cart_json, treating as empty")
		lines = nil
	}

	items := make([]domain.CartItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.CartItem{
			ID:       l.ID,
			Name:     l.Name,
			Price:    l.Price,
			Quantity: l.Quantity,
			Unit:     l.Unit,
		})
	}
	return domain.CartState{Items: items, PickupTime: pickupTime}, nil
}

func (r *cartStateRepository) SaveCart(profileID string, items []domain.CartItem) error {
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
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart lines: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO cart_states (profile_id, cart_json, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (profile_id) DO UPDATE
		SET cart_json = EXCLUDED.cart_json,
		    updated_at = now()
	`, profileID, raw)
	if err != nil {
		return fmt.Errorf("upsert cart: %w", err)
	}
	return nil
}

func (r *cartStateRepository) SavePickupTime(profileID, pickupTime string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_states (profile_id, pickup_time, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (profile_id) DO UPDATE
		SET pickup_time = EXCLUDED.pickup_time,
		    updated_at = now()
	`, profileID, pickupTime)
	if err != nil {
		return fmt.Errorf("upsert pickup time: %w", err)
	}
	return nil
}

func (r *cartStateRepository) ClearPickupTime(profileID string) error {
	return r.SavePickupTime(profileID, "")
}

var _ domain.CartStateRepository = (*cartStateRepository)(nil)
