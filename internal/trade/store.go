package trade

import (
	"sync"
	"time"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
)

// offerStore keeps pending offers in memory. Offers are short-lived and
// worthless after a restart, so nothing persists. The store owns the offer
// lifecycle transitions; Claim is the only way an offer leaves the proposed
// state for settlement, and it succeeds at most once per offer.
type offerStore struct {
	mu     sync.RWMutex
	offers map[string]*domain.TradeOffer
	stopCh chan struct{}
	once   sync.Once
}

func newOfferStore() *offerStore {
	store := &offerStore{
		offers: make(map[string]*domain.TradeOffer),
		stopCh: make(chan struct{}),
	}
	go store.cleanupLoop()
	return store
}

// Put stores a proposed offer
func (s *offerStore) Put(offer *domain.TradeOffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offers[offer.ID] = offer
}

// Get returns a copy of the offer, with expiry folded into the state
func (s *offerStore) Get(offerID string, now time.Time) (*domain.TradeOffer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	offer, ok := s.offers[offerID]
	if !ok {
		return nil, false
	}
	copied := *offer
	if copied.State == domain.TradeProposed && copied.Expired(now) {
		copied.State = domain.TradeExpired
	}
	return &copied, true
}

// Claim atomically moves a live proposed offer into the settling state.
// Exactly one concurrent caller wins; everyone else gets ErrOfferNotPending.
func (s *offerStore) Claim(offerID string, now time.Time) (*domain.TradeOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	offer, ok := s.offers[offerID]
	if !ok {
		return nil, domain.ErrOfferNotFound
	}
	if offer.State != domain.TradeProposed {
		return nil, domain.ErrOfferNotPending
	}
	if offer.Expired(now) {
		offer.State = domain.TradeExpired
		return nil, domain.ErrOfferNotPending
	}

	offer.State = domain.TradeSettling
	copied := *offer
	return &copied, nil
}

// Release moves a claimed offer out of the settling state: to a terminal
// state after the settlement resolved, or back to proposed after an
// infrastructure failure so it can be claimed again
func (s *offerStore) Release(offerID string, state domain.TradeState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if offer, ok := s.offers[offerID]; ok {
		offer.State = state
	}
}

// Decline marks a proposed offer declined. Returns the offer as it stood.
func (s *offerStore) Decline(offerID string, now time.Time) (*domain.TradeOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	offer, ok := s.offers[offerID]
	if !ok {
		return nil, domain.ErrOfferNotFound
	}
	if offer.State != domain.TradeProposed || offer.Expired(now) {
		return nil, domain.ErrOfferNotPending
	}

	offer.State = domain.TradeDeclined
	copied := *offer
	return &copied, nil
}

// ListFor returns offers where the user is proposer or counterparty
func (s *offerStore) ListFor(userID string, now time.Time) []domain.TradeOffer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.TradeOffer
	for _, offer := range s.offers {
		if offer.ProposerID != userID && offer.CounterpartyID != userID {
			continue
		}
		copied := *offer
		if copied.State == domain.TradeProposed && copied.Expired(now) {
			copied.State = domain.TradeExpired
		}
		out = append(out, copied)
	}
	return out
}

// sweep drops offers that reached a terminal state or expired. Offers in the
// settling state stay put: their settlement is in flight and a failure must
// still be able to release them back to proposed.
func (s *offerStore) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	swept := 0
	for id, offer := range s.offers {
		if offer.State == domain.TradeSettling {
			continue
		}
		terminal := offer.State != domain.TradeProposed
		if terminal || offer.Expired(now) {
			delete(s.offers, id)
			swept++
		}
	}
	return swept
}

func (s *offerStore) cleanupLoop() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(time.Now())
		case <-s.stopCh:
			return
		}
	}
}

// Stop terminates the cleanup goroutine
func (s *offerStore) Stop() {
	s.once.Do(func() { close(s.stopCh) })
}
