package reward

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirae-dev/ShoreBot_Go/internal/catalog"
	"github.com/mirae-dev/ShoreBot_Go/internal/cooldown"
	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
)

// fakeCooldown stamps claims in memory, mirroring the gate's rule that a
// failed payout leaves the stamp unset
type fakeCooldown struct {
	claimed map[string]bool
}

func newFakeCooldown() *fakeCooldown {
	return &fakeCooldown{claimed: make(map[string]bool)}
}

func (f *fakeCooldown) key(userID, action string) string { return userID + ":" + action }

func (f *fakeCooldown) CheckCooldown(_ context.Context, userID, action string) (bool, time.Duration, error) {
	if f.claimed[f.key(userID, action)] {
		return true, time.Minute, nil
	}
	return false, 0, nil
}

func (f *fakeCooldown) TryClaim(ctx context.Context, userID, action string) (cooldown.Result, error) {
	err := f.EnforceClaim(ctx, userID, action, func() error { return nil })
	if err != nil {
		var onCooldown cooldown.ErrOnCooldown
		if errors.As(err, &onCooldown) {
			return cooldown.Result{Granted: false, Remaining: onCooldown.Remaining}, nil
		}
		return cooldown.Result{}, err
	}
	return cooldown.Result{Granted: true}, nil
}

func (f *fakeCooldown) EnforceClaim(_ context.Context, userID, action string, fn func() error) error {
	if f.claimed[f.key(userID, action)] {
		return cooldown.ErrOnCooldown{Action: action, Remaining: time.Minute}
	}
	if err := fn(); err != nil {
		return err
	}
	f.claimed[f.key(userID, action)] = true
	return nil
}

func (f *fakeCooldown) ResetCooldown(_ context.Context, userID, action string) error {
	delete(f.claimed, f.key(userID, action))
	return nil
}

func (f *fakeCooldown) GetLastClaimed(_ context.Context, _, _ string) (*time.Time, error) {
	return nil, nil
}

// fakeAccounts tracks balances, onboarding on first contact
type fakeAccounts struct {
	balances  map[string]int64
	creditErr error
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{balances: make(map[string]int64)}
}

func (f *fakeAccounts) EnsureAccount(_ context.Context, userID string) (*domain.Account, bool, error) {
	if _, ok := f.balances[userID]; ok {
		return &domain.Account{UserID: userID, Coins: f.balances[userID]}, false, nil
	}
	f.balances[userID] = domain.DefaultStartingGrant
	return &domain.Account{UserID: userID, Coins: f.balances[userID]}, true, nil
}

func (f *fakeAccounts) Credit(_ context.Context, userID string, amount int64) (int64, error) {
	if f.creditErr != nil {
		return 0, f.creditErr
	}
	f.balances[userID] += amount
	return f.balances[userID], nil
}

func (f *fakeAccounts) Debit(_ context.Context, userID string, amount int64) (int64, error) {
	if f.balances[userID] < amount {
		return 0, domain.InsufficientFundsError{Available: f.balances[userID], Required: amount}
	}
	f.balances[userID] -= amount
	return f.balances[userID], nil
}

// fakeInventory counts copies per (user, card)
type fakeInventory struct {
	counts map[string]map[int]int
	addErr error
}

func newFakeInventory() *fakeInventory {
	return &fakeInventory{counts: make(map[string]map[int]int)}
}

func (f *fakeInventory) AddCopies(_ context.Context, userID string, cardID int, n int) (int, error) {
	if f.addErr != nil {
		return 0, f.addErr
	}
	if f.counts[userID] == nil {
		f.counts[userID] = make(map[int]int)
	}
	f.counts[userID][cardID] += n
	return f.counts[userID][cardID], nil
}

type rewardFixture struct {
	accounts  *fakeAccounts
	inventory *fakeInventory
	gate      *fakeCooldown
	svc       *service
}

func newRewardFixture(config Config) *rewardFixture {
	accounts := newFakeAccounts()
	inv := newFakeInventory()
	gate := newFakeCooldown()
	catalogSvc := catalog.NewService(&fakeCatalogRepo{cards: []domain.Card{
		{ID: 1, Code: "NJ-001", Rarity: domain.RarityCommon, Droppable: true},
		{ID: 2, Code: "NJ-002", Rarity: domain.RarityRare, Droppable: true},
	}}, catalog.CacheConfig{})

	svc := NewService(accounts, inv, catalogSvc, gate, config).(*service)
	// Deterministic rolls for tests
	svc.roller = NewRoller(config.RarityWeights, fixedRnd(0.99), func(min, max int) int { return min })
	svc.randInt64 = func(min, max int64) int64 { return min }

	return &rewardFixture{accounts: accounts, inventory: inv, gate: gate, svc: svc}
}

func testConfig() Config {
	return Config{
		DailyReward:   50,
		WeeklyReward:  300,
		SurfMin:       50,
		SurfMax:       149,
		ExploreMin:    1500,
		ExploreMax:    2999,
		BoosterReward: 10000,
		BoosterCards:  15,
		BonanzaReward: 25000,
		BonanzaCards:  20,
		RarityWeights: defaultWeights(),
		BoosterUsers:  map[string]struct{}{"vip-1": {}},
	}
}

func TestClaimDaily_GrantsOncePerWindow(t *testing.T) {
	f := newRewardFixture(testConfig())
	ctx := context.Background()

	result, err := f.svc.ClaimDaily(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ActionDaily, result.Action)
	assert.Equal(t, int64(50), result.Amount)
	assert.Equal(t, domain.DefaultStartingGrant+50, result.NewBalance)

	// Second claim inside the window is rejected
	_, err = f.svc.ClaimDaily(ctx, "user-1")
	assert.ErrorIs(t, err, cooldown.ErrOnCooldown{})
}

func TestClaimWeekly_IndependentOfDaily(t *testing.T) {
	f := newRewardFixture(testConfig())
	ctx := context.Background()

	_, err := f.svc.ClaimDaily(ctx, "user-1")
	require.NoError(t, err)

	result, err := f.svc.ClaimWeekly(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(300), result.Amount)
}

func TestClaimSurf_RollsWithinRange(t *testing.T) {
	f := newRewardFixture(testConfig())

	rolled := int64(-1)
	f.svc.randInt64 = func(min, max int64) int64 {
		assert.Equal(t, int64(50), min)
		assert.Equal(t, int64(149), max)
		rolled = 77
		return rolled
	}

	result, err := f.svc.ClaimSurf(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, rolled, result.Amount)
}

func TestClaimExplore_UsesExploreRange(t *testing.T) {
	f := newRewardFixture(testConfig())

	result, err := f.svc.ClaimExplore(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1500), result.Amount)
}

func TestClaimCoins_FailedCreditLeavesGateOpen(t *testing.T) {
	f := newRewardFixture(testConfig())
	ctx := context.Background()

	f.accounts.EnsureAccount(ctx, "user-1")
	f.accounts.creditErr = errors.New("connection reset")

	_, err := f.svc.ClaimDaily(ctx, "user-1")
	require.Error(t, err)

	// The failed payout must not burn the claim window
	f.accounts.creditErr = nil
	result, err := f.svc.ClaimDaily(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(50), result.Amount)
}

func TestClaimDrop_AddsCardAndStampsGate(t *testing.T) {
	f := newRewardFixture(testConfig())
	ctx := context.Background()

	result, err := f.svc.ClaimDrop(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Quantity)
	assert.Equal(t, 1, f.inventory.counts["user-1"][result.Card.ID])

	_, err = f.svc.ClaimDrop(ctx, "user-1")
	assert.ErrorIs(t, err, cooldown.ErrOnCooldown{})
}

func TestClaimDrop_FailedAddLeavesGateOpen(t *testing.T) {
	f := newRewardFixture(testConfig())
	ctx := context.Background()

	f.inventory.addErr = errors.New("connection reset")
	_, err := f.svc.ClaimDrop(ctx, "user-1")
	require.Error(t, err)

	f.inventory.addErr = nil
	_, err = f.svc.ClaimDrop(ctx, "user-1")
	assert.NoError(t, err)
}

func TestClaimBooster_GatedByUserList(t *testing.T) {
	f := newRewardFixture(testConfig())
	ctx := context.Background()

	_, err := f.svc.ClaimBooster(ctx, "user-1")
	assert.ErrorIs(t, err, domain.ErrBoosterNotAllowed)

	result, err := f.svc.ClaimBooster(ctx, "vip-1")
	require.NoError(t, err)
	assert.Equal(t, int64(10000), result.Coins)
	assert.Len(t, result.Cards, 15)
	assert.Equal(t, domain.DefaultStartingGrant+10000, result.NewBalance)

	// Cards landed in the inventory
	total := 0
	for _, n := range f.inventory.counts["vip-1"] {
		total += n
	}
	assert.Equal(t, 15, total)
}

func TestClaimBooster_FailedCardAddCreditsNothing(t *testing.T) {
	f := newRewardFixture(testConfig())
	ctx := context.Background()

	f.accounts.EnsureAccount(ctx, "vip-1")
	before := f.accounts.balances["vip-1"]

	f.inventory.addErr = errors.New("connection reset")
	_, err := f.svc.ClaimBooster(ctx, "vip-1")
	require.Error(t, err)
	assert.Equal(t, before, f.accounts.balances["vip-1"], "a failed booster must not touch the balance")

	// The retry pays the coins exactly once
	f.inventory.addErr = nil
	result, err := f.svc.ClaimBooster(ctx, "vip-1")
	require.NoError(t, err)
	assert.Equal(t, before+10000, result.NewBalance)
}

// withLegendaries swaps the fixture catalog for one holding a legendary pool
func (f *rewardFixture) withLegendaries() {
	f.svc.catalogSvc = catalog.NewService(&fakeCatalogRepo{cards: []domain.Card{
		{ID: 1, Code: "NJ-001", Rarity: domain.RarityCommon, Droppable: true},
		{ID: 7, Code: "NJ-007", Rarity: domain.RarityLegendary, Droppable: true},
		{ID: 8, Code: "NJ-008", Rarity: domain.RarityLegendary, Droppable: true},
	}}, catalog.CacheConfig{})
}

func TestClaimBonanza_GatedByUserList(t *testing.T) {
	f := newRewardFixture(testConfig())
	f.withLegendaries()

	_, err := f.svc.ClaimBonanza(context.Background(), "user-1")
	assert.ErrorIs(t, err, domain.ErrBoosterNotAllowed)
}

func TestClaimBonanza_PaysCoinsAndLegendaries(t *testing.T) {
	f := newRewardFixture(testConfig())
	f.withLegendaries()
	ctx := context.Background()

	result, err := f.svc.ClaimBonanza(ctx, "vip-1")
	require.NoError(t, err)
	assert.Equal(t, int64(25000), result.Coins)
	assert.Equal(t, domain.DefaultStartingGrant+25000, result.NewBalance)
	require.Len(t, result.Cards, 20)
	for _, card := range result.Cards {
		assert.Equal(t, domain.RarityLegendary, card.Rarity)
	}

	// Second claim inside the window is rejected
	_, err = f.svc.ClaimBonanza(ctx, "vip-1")
	assert.ErrorIs(t, err, cooldown.ErrOnCooldown{})
}

func TestClaimBonanza_EmptyLegendaryPoolPaysCoinsOnly(t *testing.T) {
	// The default fixture catalog has no legendary cards
	f := newRewardFixture(testConfig())

	result, err := f.svc.ClaimBonanza(context.Background(), "vip-1")
	require.NoError(t, err)
	assert.Equal(t, int64(25000), result.Coins)
	assert.Empty(t, result.Cards)
	assert.Empty(t, f.inventory.counts["vip-1"])
}

func TestClaimBonanza_FailedCardAddCreditsNothing(t *testing.T) {
	f := newRewardFixture(testConfig())
	f.withLegendaries()
	ctx := context.Background()

	f.accounts.EnsureAccount(ctx, "vip-1")
	before := f.accounts.balances["vip-1"]

	f.inventory.addErr = errors.New("connection reset")
	_, err := f.svc.ClaimBonanza(ctx, "vip-1")
	require.Error(t, err)
	assert.Equal(t, before, f.accounts.balances["vip-1"], "a failed bonanza must not touch the balance")

	f.inventory.addErr = nil
	result, err := f.svc.ClaimBonanza(ctx, "vip-1")
	require.NoError(t, err)
	assert.Equal(t, before+25000, result.NewBalance)
}

func TestPacks_ListsShopCatalog(t *testing.T) {
	f := newRewardFixture(testConfig())

	listed := f.svc.Packs()
	require.Len(t, listed, 4)
	assert.Equal(t, Pack{ID: "1", Name: "Starter Pack", Cost: 100, Cards: 1}, listed[0])
	assert.Equal(t, Pack{ID: "4", Name: "Ultimate Pack", Cost: 1000, Cards: 10}, listed[3])

	// Callers get a copy, not the shop table itself
	listed[0].Cost = 1
	assert.Equal(t, int64(100), f.svc.Packs()[0].Cost)
}

func TestOpenPack_DebitsCostAndRollsCards(t *testing.T) {
	f := newRewardFixture(testConfig())
	ctx := context.Background()

	f.accounts.EnsureAccount(ctx, "user-1")
	f.accounts.balances["user-1"] = 2000

	result, err := f.svc.OpenPack(ctx, "user-1", "3")
	require.NoError(t, err)
	assert.Equal(t, int64(500), result.Pack.Cost)
	assert.Equal(t, int64(1500), result.NewBalance)
	require.Len(t, result.Cards, 5)

	total := 0
	for _, n := range f.inventory.counts["user-1"] {
		total += n
	}
	assert.Equal(t, 5, total)
}

func TestOpenPack_UnknownPack(t *testing.T) {
	f := newRewardFixture(testConfig())

	_, err := f.svc.OpenPack(context.Background(), "user-1", "99")
	assert.ErrorIs(t, err, domain.ErrPackNotFound)
}

func TestOpenPack_InsufficientFunds(t *testing.T) {
	f := newRewardFixture(testConfig())
	ctx := context.Background()

	f.accounts.EnsureAccount(ctx, "user-1")
	f.accounts.balances["user-1"] = 99

	_, err := f.svc.OpenPack(ctx, "user-1", "1")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, int64(99), f.accounts.balances["user-1"])
}

func TestOpenPack_FailedRollRefundsCost(t *testing.T) {
	f := newRewardFixture(testConfig())
	ctx := context.Background()

	f.accounts.EnsureAccount(ctx, "user-1")
	f.accounts.balances["user-1"] = 2000
	before := f.accounts.balances["user-1"]

	f.inventory.addErr = errors.New("connection reset")
	_, err := f.svc.OpenPack(ctx, "user-1", "2")
	require.Error(t, err)
	assert.Equal(t, before, f.accounts.balances["user-1"], "a failed pack must refund its cost")
	assert.Empty(t, f.inventory.counts["user-1"])
}
