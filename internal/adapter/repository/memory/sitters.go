package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/srgjo27/sitterbook/internal/core/domain"
)

func (s *Store) PutSitter(sitter domain.Sitter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sitters[sitter.ID] = sitter
}

func (s *Store) PutService(listing domain.ServiceListing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[listing.ID] = listing
}

// PutAddons replaces a sitter's add-on catalogue.
func (s *Store) PutAddons(sitterID uuid.UUID, addons ...domain.Addon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addons[sitterID] = append([]domain.Addon(nil), addons...)
}

// PutTiers replaces a sitter's discount tiers.
func (s *Store) PutTiers(sitterID uuid.UUID, tiers ...domain.DiscountTier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tiers[sitterID] = append([]domain.DiscountTier(nil), tiers...)
}

func (s *Store) GetSitter(ctx context.Context, sitterID uuid.UUID) (*domain.Sitter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sitter, ok := s.sitters[sitterID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sitter, nil
}

func (s *Store) GetService(ctx context.Context, serviceID uuid.UUID) (*domain.ServiceListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listing, ok := s.services[serviceID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &listing, nil
}

func (s *Store) GetPrimaryService(ctx context.Context, sitterID uuid.UUID) (*domain.ServiceListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var candidates []domain.ServiceListing
	for _, l := range s.services {
		if l.SitterID == sitterID {
			candidates = append(candidates, l)
		}
	}
	if len(candidates) == 0 {
		return nil, domain.ErrNotFound
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Primary != candidates[j].Primary {
			return candidates[i].Primary
		}
		return candidates[i].Name < candidates[j].Name
	})
	return &candidates[0], nil
}

func (s *Store) GetPricing(ctx context.Context, sitterID, serviceID uuid.UUID) (*domain.SitterPricing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listing, ok := s.services[serviceID]
	if !ok || listing.SitterID != sitterID {
		return nil, domain.ErrNotFound
	}
	return &domain.SitterPricing{
		Service: listing,
		Addons:  append([]domain.Addon(nil), s.addons[sitterID]...),
		Tiers:   append([]domain.DiscountTier(nil), s.tiers[sitterID]...),
	}, nil
}
