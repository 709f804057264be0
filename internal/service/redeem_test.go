package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/repository"
)

func newRedeemService(repo *mockRepo) *RedeemService {
	return NewRedeemService(repo, testEconomy(), zap.NewNop())
}

func (m *mockRepo) addCode(code string, coins int64, maxRedemptions *int, allowRepeat bool) *model.RedeemCode {
	rc := &model.RedeemCode{
		Code:               code,
		RewardType:         model.RedeemRewardTypeCoins,
		Coins:              coins,
		MaxRedemptions:     maxRedemptions,
		AllowRepeatPerUser: allowRepeat,
		IsActive:           true,
	}
	_ = m.CreateRedeemCode(context.Background(), rc)
	return rc
}

func TestRedeemCoins(t *testing.T) {
	repo := newMockRepo()
	svc := newRedeemService(repo)
	account := repo.addAccount(0)
	repo.addCode("WELCOME", 500, nil, false)

	result, err := svc.Redeem(context.Background(), account.ID, "WELCOME")
	require.NoError(t, err)
	assert.Equal(t, model.RedeemRewardTypeCoins, result.RewardType)
	require.NotNil(t, result.NewBalance)
	assert.Equal(t, int64(500), *result.NewBalance)

	// Same account cannot redeem again.
	_, err = svc.Redeem(context.Background(), account.ID, "WELCOME")
	assert.ErrorIs(t, err, repository.ErrCodeAlreadyRedeemed)

	// Another account still can.
	other := repo.addAccount(0)
	_, err = svc.Redeem(context.Background(), other.ID, "WELCOME")
	require.NoError(t, err)
}

func TestRedeemCaseSensitive(t *testing.T) {
	repo := newMockRepo()
	svc := newRedeemService(repo)
	account := repo.addAccount(0)
	repo.addCode("Welcome", 100, nil, false)

	_, err := svc.Redeem(context.Background(), account.ID, "WELCOME")
	assert.ErrorIs(t, err, repository.ErrCodeNotFound)

	// Surrounding whitespace is stripped, the code itself matches exactly.
	_, err = svc.Redeem(context.Background(), account.ID, "  Welcome ")
	require.NoError(t, err)
}

func TestRedeemSingleUseRace(t *testing.T) {
	repo := newMockRepo()
	svc := newRedeemService(repo)
	one := 1
	repo.addCode("DROP", 1000, &one, false)

	const racers = 10
	accounts := make([]uuid.UUID, racers)
	for i := range accounts {
		accounts[i] = repo.addAccount(0).ID
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	exhausted := 0

	for _, accountID := range accounts {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, err := svc.Redeem(context.Background(), id, "DROP")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, repository.ErrCodeExhausted):
				exhausted++
			}
		}(accountID)
	}
	wg.Wait()

	assert.Equal(t, 1, successes, "a single-use code must be redeemed exactly once")
	assert.Equal(t, racers-1, exhausted)
}

func TestRedeemLifecycle(t *testing.T) {
	repo := newMockRepo()
	svc := newRedeemService(repo)
	account := repo.addAccount(0)

	_, err := svc.Redeem(context.Background(), account.ID, "")
	assert.ErrorIs(t, err, ErrCodeRequired)

	_, err = svc.Redeem(context.Background(), account.ID, "MISSING")
	assert.ErrorIs(t, err, repository.ErrCodeNotFound)

	rc := repo.addCode("OLD", 100, nil, false)
	require.NoError(t, repo.DeactivateRedeemCode(context.Background(), rc.Code))
	_, err = svc.Redeem(context.Background(), account.ID, "OLD")
	assert.ErrorIs(t, err, repository.ErrCodeInactive)

	expired := repo.addCode("EXPIRED", 100, nil, false)
	past := time.Now().UTC().Add(-time.Hour)
	repo.mu.Lock()
	repo.codes[expired.Code].ExpiresAt = &past
	repo.mu.Unlock()
	_, err = svc.Redeem(context.Background(), account.ID, "EXPIRED")
	assert.ErrorIs(t, err, repository.ErrCodeExpired)
}

func TestRedeemRepeatPerUser(t *testing.T) {
	repo := newMockRepo()
	svc := newRedeemService(repo)
	account := repo.addAccount(0)
	repo.addCode("REPEAT", 10, nil, true)

	for i := 0; i < 3; i++ {
		_, err := svc.Redeem(context.Background(), account.ID, "REPEAT")
		require.NoError(t, err)
	}

	balance, err := repo.GetBalance(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30), balance)
}

func TestValidateCode(t *testing.T) {
	repo := newMockRepo()
	svc := newRedeemService(repo)
	account := repo.addAccount(0)
	repo.addCode("PREVIEW", 250, nil, false)

	preview, err := svc.Validate(context.Background(), "PREVIEW")
	require.NoError(t, err)
	assert.Equal(t, model.RedeemRewardTypeCoins, preview.RewardType)
	assert.Equal(t, int64(250), preview.Coins)

	// Validate never consumes.
	balance, _ := repo.GetBalance(context.Background(), account.ID)
	assert.Equal(t, int64(0), balance)

	one := 1
	rc := repo.addCode("USED", 100, &one, false)
	_, err = svc.Redeem(context.Background(), account.ID, rc.Code)
	require.NoError(t, err)
	_, err = svc.Validate(context.Background(), rc.Code)
	assert.ErrorIs(t, err, repository.ErrCodeExhausted)
}
