package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pricetracker/internal/domain"
)

// MemoryStore is an in-process store with the same identity semantics as
// the Postgres store, including the (site, url) uniqueness constraint.
// Used by tests and local runs without a database.
type MemoryStore struct {
	mu       sync.Mutex
	nextProd int64
	nextObs  int64
	products []domain.Product
	obs      map[int64][]domain.PriceObservation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextProd: 1,
		nextObs:  1,
		obs:      make(map[int64][]domain.PriceObservation),
	}
}

func (s *MemoryStore) GetProductByKey(ctx context.Context, site, url string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].Site == site && s.products[i].URL == url {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) InsertProduct(ctx context.Context, site, url, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].Site == site && s.products[i].URL == url {
			return 0, fmt.Errorf("%w: uq_product_site_url", ErrUniqueConflict)
		}
	}
	id := s.nextProd
	s.nextProd++
	s.products = append(s.products, domain.Product{
		ProductID: id,
		Site:      site,
		URL:       url,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	})
	return id, nil
}

func (s *MemoryStore) AppendObservation(ctx context.Context, obs domain.PriceObservation) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obs.ID = s.nextObs
	s.nextObs++
	if obs.TS.IsZero() {
		obs.TS = time.Now().UTC()
	}
	s.obs[obs.ProductID] = append(s.obs[obs.ProductID], obs)
	return obs.ID, nil
}

func (s *MemoryStore) ListObservations(ctx context.Context, productID int64, since time.Time) ([]domain.PriceObservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.PriceObservation
	for _, o := range s.obs[productID] {
		if !since.IsZero() && o.TS.Before(since) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *MemoryStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *MemoryStore) ListTargets(ctx context.Context) ([]domain.Target, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	targets := make([]domain.Target, 0, len(products))
	for _, p := range products {
		targets = append(targets, domain.Target{Site: p.Site, URL: p.URL, Name: p.Name})
	}
	return targets, nil
}
