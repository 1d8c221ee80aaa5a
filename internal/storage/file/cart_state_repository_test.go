package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/fastorderfood/storefront/internal/domain"
	"github.com/fastorderfood/storefront/internal/storage/file"
)

func newRepo(t *testing.T) *file.CartStateRepository {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	repo, err := file.NewCartStateRepository(t.TempDir(), logger.WithField("component", "test"))
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	return repo
}

func TestFileRepositoryRoundTrip(t *testing.T) {
	repo := newRepo(t)

	items := []domain.CartItem{
		{ID: "P1", Name: "滷肉飯", Price: 60, Quantity: 2, Unit: "份"},
		{ID: "P2", Name: "紅茶", Price: 35, Quantity: 1, Unit: "杯"},
	}
	if err := repo.SaveCart("profile-1", items); err != nil {
		t.Fatalf("save cart: %v", err)
	}
	if err := repo.SavePickupTime("profile-1", "18:40"); err != nil {
		t.Fatalf("save pickup time: %v", err)
	}

	st, err := repo.Load("profile-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(st.Items) != 2 || st.Items[0].Name != "滷肉飯" || st.Items[0].Quantity != 2 {
		t.Fatalf("unexpected restored items: %+v", st.Items)
	}
	if st.PickupTime != "18:40" {
		t.Fatalf("pickup time = %q, want 18:40", st.PickupTime)
	}
}

func TestFileRepositoryMissingProfileIsEmpty(t *testing.T) {
	repo := newRepo(t)

	st, err := repo.Load("never-seen")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(st.Items) != 0 || st.PickupTime != "" {
		t.Fatalf("expected empty state, got %+v", st)
	}
}

func TestFileRepositoryMalformedDocumentIsEmpty(t *testing.T) {
	dir := t.TempDir()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	repo, err := file.NewCartStateRepository(dir, logger.WithField("component", "test"))
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write broken file: %v", err)
	}

	st, err := repo.Load("broken")
	if err != nil {
		t.Fatalf("malformed data must not surface as an error, got %v", err)
	}
	if len(st.Items) != 0 || st.PickupTime != "" {
		t.Fatalf("expected empty state for malformed document, got %+v", st)
	}
}

func TestFileRepositoryClearPickupTimeKeepsCart(t *testing.T) {
	repo := newRepo(t)

	if err := repo.SaveCart("p", []domain.CartItem{{ID: "P1", Price: 10, Quantity: 1}}); err != nil {
		t.Fatalf("save cart: %v", err)
	}
	if err := repo.SavePickupTime("p", "12:00"); err != nil {
		t.Fatalf("save pickup time: %v", err)
	}
	if err := repo.ClearPickupTime("p"); err != nil {
		t.Fatalf("clear pickup time: %v", err)
	}

	st, err := repo.Load("p")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.PickupTime != "" {
		t.Fatalf("pickup time not cleared: %q", st.PickupTime)
	}
	if len(st.Items) != 1 {
		t.Fatalf("cart must survive pickup-time clear, got %+v", st.Items)
	}
}

func TestFileRepositorySanitizesProfileID(t *testing.T) {
	repo := newRepo(t)

	if err := repo.SaveCart("../../etc/passwd", []domain.CartItem{{ID: "P1", Price: 1, Quantity: 1}}); err != nil {
		t.Fatalf("save cart: %v", err)
	}
	st, err := repo.Load("../../etc/passwd")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(st.Items) != 1 {
		t.Fatalf("expected state stored under sanitized name, got %+v", st.Items)
	}
}
