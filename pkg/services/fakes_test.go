package services

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"evol-jewels-io/stylist/pkg/models"
)

type memCatalog struct {
	mu       sync.Mutex
	products []models.Product
	err      error
}

func (m *memCatalog) ListProducts(context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]models.Product{}, m.products...), nil
}

// FindProductsByIDs returns matches in reverse store order so callers cannot rely on it.
func (m *memCatalog) FindProductsByIDs(_ context.Context, ids []string) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []models.Product
	for i := len(m.products) - 1; i >= 0; i-- {
		if want[m.products[i].ID] {
			out = append(out, m.products[i])
		}
	}
	return out, nil
}

func (m *memCatalog) InsertProducts(_ context.Context, products []models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = append(m.products, products...)
	return nil
}

func (m *memCatalog) ReplaceProducts(_ context.Context, products []models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = append([]models.Product{}, products...)
	return nil
}

func (m *memCatalog) CountProducts(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.products)), m.err
}

func (m *memCatalog) InvalidateLocal() {}

func (m *memCatalog) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.products[:0]
	for _, p := range m.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	m.products = kept
}

type memSessions struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	err      error
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: map[string]models.Session{}}
}

func (m *memSessions) RecordSession(_ context.Context, s models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *memSessions) GetSession(_ context.Context, id string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

var errStore = errors.New("store unavailable")
