package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/repository"
)

// mockRepo is an in-memory Repository. Every method takes the single mutex,
// which mirrors the row-lock serialization the real transactions provide.
type mockRepo struct {
	mu sync.Mutex

	accounts      map[uuid.UUID]*model.Account
	ledger        map[uuid.UUID][]model.LedgerEntry
	gifts         map[uuid.UUID]*model.GiftTransfer
	backpack      map[uuid.UUID]map[uuid.UUID]int64 // account -> product -> qty
	products      map[uuid.UUID]*model.Product
	passStates    map[uuid.UUID]map[int]*model.PassState
	passRewards   map[uuid.UUID]*model.PassReward
	passClaims    []model.PassRewardClaim
	tasks         map[uuid.UUID]*model.Task
	completions   []model.TaskCompletion
	codes         map[string]*model.RedeemCode
	codeUses      []model.RedeemCodeUse
	orders        map[uuid.UUID]*model.Order
	notifications []model.Notification
	admins        map[uuid.UUID]bool
	adminLogs     []model.AdminLog
	settings      map[string]string
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		accounts:    make(map[uuid.UUID]*model.Account),
		ledger:      make(map[uuid.UUID][]model.LedgerEntry),
		gifts:       make(map[uuid.UUID]*model.GiftTransfer),
		backpack:    make(map[uuid.UUID]map[uuid.UUID]int64),
		products:    make(map[uuid.UUID]*model.Product),
		passStates:  make(map[uuid.UUID]map[int]*model.PassState),
		passRewards: make(map[uuid.UUID]*model.PassReward),
		tasks:       make(map[uuid.UUID]*model.Task),
		codes:       make(map[string]*model.RedeemCode),
		orders:      make(map[uuid.UUID]*model.Order),
		admins:      make(map[uuid.UUID]bool),
		settings:    make(map[string]string),
	}
}

func (m *mockRepo) addAccount(balance int64) *model.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	account := &model.Account{
		ID:          uuid.New(),
		Email:       uuid.NewString() + "@example.com",
		DisplayName: "Tester",
		PublicID:    uuid.NewString()[:8],
		Balance:     balance,
		CreatedAt:   time.Now().UTC(),
	}
	m.accounts[account.ID] = account
	if balance != 0 {
		m.ledger[account.ID] = []model.LedgerEntry{{
			ID:           uuid.New(),
			AccountID:    account.ID,
			Amount:       balance,
			Type:         model.LedgerEntryTypeEarn,
			BalanceAfter: balance,
			CreatedAt:    time.Now().UTC(),
		}}
	}
	return account
}

func (m *mockRepo) addProduct(price int64, kind model.ProductKind, giftable bool) *model.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	product := &model.Product{
		ID:             uuid.New(),
		Name:           "Product",
		Price:          price,
		Kind:           kind,
		RequiresReview: kind != model.ProductKindAuto,
		Giftable:       giftable,
		IsActive:       true,
	}
	m.products[product.ID] = product
	return product
}

func (m *mockRepo) ownedQty(accountID, productID uuid.UUID) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.backpack[accountID][productID]
}

// applyBalance must be called with the mutex held.
func (m *mockRepo) applyBalance(accountID uuid.UUID, amount int64, entryType model.LedgerEntryType, reason string, referenceID *uuid.UUID) (int64, error) {
	account, ok := m.accounts[accountID]
	if !ok {
		return 0, repository.ErrAccountNotFound
	}
	after := account.Balance + amount
	if after < 0 {
		return 0, repository.ErrInsufficientFunds
	}
	m.ledger[accountID] = append(m.ledger[accountID], model.LedgerEntry{
		ID:            uuid.New(),
		AccountID:     accountID,
		Amount:        amount,
		Type:          entryType,
		Reason:        &reason,
		ReferenceID:   referenceID,
		BalanceBefore: account.Balance,
		BalanceAfter:  after,
		CreatedAt:     time.Now().UTC(),
	})
	account.Balance = after
	return after, nil
}

// deposit must be called with the mutex held.
func (m *mockRepo) deposit(accountID, productID uuid.UUID, qty int64) {
	if m.backpack[accountID] == nil {
		m.backpack[accountID] = make(map[uuid.UUID]int64)
	}
	m.backpack[accountID][productID] += qty
}

// withdraw must be called with the mutex held.
func (m *mockRepo) withdraw(accountID, productID uuid.UUID, qty int64) error {
	owned := m.backpack[accountID][productID]
	if owned < qty {
		return repository.ErrItemNotOwned
	}
	if owned == qty {
		delete(m.backpack[accountID], productID)
	} else {
		m.backpack[accountID][productID] = owned - qty
	}
	return nil
}

func (m *mockRepo) GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (m *mockRepo) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, account := range m.accounts {
		if account.Email == email {
			copied := *account
			return &copied, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (m *mockRepo) GetAccountByPublicID(ctx context.Context, publicID string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, account := range m.accounts {
		if account.PublicID == publicID {
			copied := *account
			return &copied, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (m *mockRepo) UpsertAccount(ctx context.Context, account *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.accounts {
		if existing.Email == account.Email {
			existing.DisplayName = account.DisplayName
			existing.AvatarURL = account.AvatarURL
			*account = *existing
			return nil
		}
	}
	account.CreatedAt = time.Now().UTC()
	copied := *account
	m.accounts[account.ID] = &copied
	return nil
}

func (m *mockRepo) ListAccounts(ctx context.Context, limit, offset int, search string) ([]model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Account
	for _, account := range m.accounts {
		out = append(out, *account)
	}
	return out, nil
}

func (m *mockRepo) GetBalance(ctx context.Context, accountID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[accountID]
	if !ok {
		return 0, repository.ErrAccountNotFound
	}
	return account.Balance, nil
}

func (m *mockRepo) UpdateBalance(ctx context.Context, accountID uuid.UUID, amount int64, entryType model.LedgerEntryType, reason string, referenceID *uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applyBalance(accountID, amount, entryType, reason, referenceID)
}

func (m *mockRepo) GetLedgerEntries(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]model.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := m.ledger[accountID]
	out := make([]model.LedgerEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}

func (m *mockRepo) ClaimDaily(ctx context.Context, accountID uuid.UUID, reward int64, interval time.Duration) (*model.ClaimResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[accountID]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	now := time.Now().UTC()
	if account.LastClaimAt != nil {
		if elapsed := now.Sub(*account.LastClaimAt); elapsed < interval {
			return nil, &repository.CooldownError{Remaining: interval - elapsed}
		}
	}
	balance, err := m.applyBalance(accountID, reward, model.LedgerEntryTypeClaim, "Daily reward", nil)
	if err != nil {
		return nil, err
	}
	account.LastClaimAt = &now
	return &model.ClaimResult{Amount: reward, Balance: balance, LastClaimAt: now}, nil
}

func (m *mockRepo) CreateGift(ctx context.Context, gift *model.GiftTransfer, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gift.ID == uuid.Nil {
		gift.ID = uuid.New()
	}
	switch gift.ItemType {
	case model.GiftItemTypeCoins:
		if _, err := m.applyBalance(gift.SenderID, -gift.Quantity, model.LedgerEntryTypeGiftSend, "Gift sent", &gift.ID); err != nil {
			return err
		}
	case model.GiftItemTypeProduct:
		if err := m.withdraw(gift.SenderID, *gift.ProductID, gift.Quantity); err != nil {
			return err
		}
	}
	gift.Status = model.GiftStatusPending
	gift.CreatedAt = time.Now().UTC()
	copied := *gift
	m.gifts[gift.ID] = &copied
	m.notifications = append(m.notifications, model.Notification{
		ID:          uuid.New(),
		AccountID:   gift.RecipientID,
		Type:        model.NotificationTypeGift,
		Message:     message,
		ReferenceID: &gift.ID,
		CreatedAt:   time.Now().UTC(),
	})
	return nil
}

func (m *mockRepo) ResolveGift(ctx context.Context, giftID, recipientID uuid.UUID, accept bool) (*model.GiftTransfer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	gift, ok := m.gifts[giftID]
	if !ok {
		return nil, repository.ErrGiftNotFound
	}
	if gift.RecipientID != recipientID {
		return nil, repository.ErrGiftForbidden
	}
	if gift.IsResolved() {
		return nil, repository.ErrGiftResolved
	}
	if accept {
		switch gift.ItemType {
		case model.GiftItemTypeCoins:
			if _, err := m.applyBalance(gift.RecipientID, gift.Quantity, model.LedgerEntryTypeGiftReceive, "Gift accepted", &gift.ID); err != nil {
				return nil, err
			}
		case model.GiftItemTypeProduct:
			m.deposit(gift.RecipientID, *gift.ProductID, gift.Quantity)
		}
		gift.Status = model.GiftStatusAccepted
	} else {
		switch gift.ItemType {
		case model.GiftItemTypeCoins:
			if _, err := m.applyBalance(gift.SenderID, gift.Quantity, model.LedgerEntryTypeRefund, "Gift returned", &gift.ID); err != nil {
				return nil, err
			}
		case model.GiftItemTypeProduct:
			m.deposit(gift.SenderID, *gift.ProductID, gift.Quantity)
			m.deposit(gift.RecipientID, *gift.ProductID, gift.Quantity)
		}
		gift.Status = model.GiftStatusReturned
	}
	now := time.Now().UTC()
	gift.ResolvedAt = &now
	copied := *gift
	return &copied, nil
}

func (m *mockRepo) GetGift(ctx context.Context, id uuid.UUID) (*model.GiftTransfer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	gift, ok := m.gifts[id]
	if !ok {
		return nil, repository.ErrGiftNotFound
	}
	copied := *gift
	return &copied, nil
}

func (m *mockRepo) ListGifts(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]model.GiftTransfer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.GiftTransfer
	for _, gift := range m.gifts {
		if gift.SenderID == accountID || gift.RecipientID == accountID {
			out = append(out, *gift)
		}
	}
	return out, nil
}

func (m *mockRepo) GetBackpack(ctx context.Context, accountID uuid.UUID) ([]model.BackpackItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.BackpackItem
	for productID, qty := range m.backpack[accountID] {
		out = append(out, model.BackpackItem{
			ID:        uuid.New(),
			AccountID: accountID,
			ProductID: productID,
			Quantity:  qty,
		})
	}
	return out, nil
}

// ensureState must be called with the mutex held.
func (m *mockRepo) ensureState(accountID uuid.UUID, season int) *model.PassState {
	if m.passStates[accountID] == nil {
		m.passStates[accountID] = make(map[int]*model.PassState)
	}
	state, ok := m.passStates[accountID][season]
	if !ok {
		state = &model.PassState{AccountID: accountID, Season: season, CreatedAt: time.Now().UTC()}
		m.passStates[accountID][season] = state
	}
	return state
}

func (m *mockRepo) GetPassState(ctx context.Context, accountID uuid.UUID, season int) (*model.PassState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state := *m.ensureState(accountID, season)
	return &state, nil
}

func (m *mockRepo) ListPassRewards(ctx context.Context, season int) ([]model.PassReward, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.PassReward
	for _, reward := range m.passRewards {
		if reward.Season == season {
			out = append(out, *reward)
		}
	}
	return out, nil
}

func (m *mockRepo) GetPassReward(ctx context.Context, id uuid.UUID) (*model.PassReward, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reward, ok := m.passRewards[id]
	if !ok {
		return nil, repository.ErrRewardNotFound
	}
	copied := *reward
	return &copied, nil
}

func (m *mockRepo) ListPassRewardClaims(ctx context.Context, accountID uuid.UUID, season int) ([]model.PassRewardClaim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.PassRewardClaim
	for _, claim := range m.passClaims {
		if claim.AccountID == accountID && claim.Season == season {
			out = append(out, claim)
		}
	}
	return out, nil
}

func (m *mockRepo) PurchasePremium(ctx context.Context, accountID uuid.UUID, season int, price int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state := m.ensureState(accountID, season)
	if state.HasPremium {
		return 0, repository.ErrAlreadyPremium
	}
	balance, err := m.applyBalance(accountID, -price, model.LedgerEntryTypePurchase, "Premium pass", nil)
	if err != nil {
		return 0, err
	}
	state.HasPremium = true
	return balance, nil
}

func (m *mockRepo) ClaimPassReward(ctx context.Context, accountID uuid.UUID, reward *model.PassReward, tier model.PassTier, xpPerLevel int64, maxLevel int) (*int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state := m.ensureState(accountID, reward.Season)
	if tier == model.PassTierPremium && !state.HasPremium {
		return nil, repository.ErrRewardLocked
	}
	if state.Level(xpPerLevel, maxLevel) < reward.Level {
		return nil, repository.ErrLevelNotReached
	}
	for _, claim := range m.passClaims {
		if claim.AccountID == accountID && claim.RewardID == reward.ID && claim.Tier == tier {
			return nil, repository.ErrRewardAlreadyClaimed
		}
	}
	m.passClaims = append(m.passClaims, model.PassRewardClaim{
		ID:        uuid.New(),
		AccountID: accountID,
		Season:    reward.Season,
		RewardID:  reward.ID,
		Tier:      tier,
		CreatedAt: time.Now().UTC(),
	})
	var newBalance *int64
	if reward.Coins > 0 {
		balance, err := m.applyBalance(accountID, reward.Coins, model.LedgerEntryTypeEarn, "Pass reward: "+reward.Title, &reward.ID)
		if err != nil {
			return nil, err
		}
		newBalance = &balance
	}
	if reward.ProductID != nil {
		m.deposit(accountID, *reward.ProductID, 1)
	}
	return newBalance, nil
}

func (m *mockRepo) GetTask(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok || !task.IsActive {
		return nil, repository.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (m *mockRepo) ListTaskStates(ctx context.Context, accountID uuid.UUID) ([]model.TaskState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.TaskState
	for _, task := range m.tasks {
		if !task.IsActive {
			continue
		}
		state := model.TaskState{Task: *task}
		for i := len(m.completions) - 1; i >= 0; i-- {
			c := m.completions[i]
			if c.TaskID == task.ID && c.AccountID == accountID {
				completed := c.CompletedAt
				state.CompletedAt = &completed
				state.NextAvailableAt = c.NextAvailableAt
				break
			}
		}
		out = append(out, state)
	}
	return out, nil
}

func (m *mockRepo) CompleteTask(ctx context.Context, accountID uuid.UUID, season int, task *model.Task, window time.Duration) (*model.PassState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	for i := len(m.completions) - 1; i >= 0; i-- {
		c := m.completions[i]
		if c.TaskID != task.ID || c.AccountID != accountID {
			continue
		}
		if task.Frequency == model.TaskFrequencyOnce {
			return nil, repository.ErrTaskCompleted
		}
		if elapsed := now.Sub(c.CompletedAt); elapsed < window {
			return nil, &repository.CooldownError{Remaining: window - elapsed}
		}
		break
	}
	completion := model.TaskCompletion{
		ID:          uuid.New(),
		TaskID:      task.ID,
		AccountID:   accountID,
		CompletedAt: now,
	}
	if task.Frequency == model.TaskFrequencyDaily {
		next := now.Add(window)
		completion.NextAvailableAt = &next
	}
	m.completions = append(m.completions, completion)
	state := m.ensureState(accountID, season)
	state.XP += task.XPReward
	copied := *state
	return &copied, nil
}

func (m *mockRepo) GetRedeemCodeByCode(ctx context.Context, code string) (*model.RedeemCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rc, ok := m.codes[code]
	if !ok {
		return nil, repository.ErrCodeNotFound
	}
	copied := *rc
	return &copied, nil
}

func (m *mockRepo) RedeemCode(ctx context.Context, accountID uuid.UUID, code string) (*model.RedeemResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rc, ok := m.codes[code]
	if !ok {
		return nil, repository.ErrCodeNotFound
	}
	if !rc.IsActive {
		return nil, repository.ErrCodeInactive
	}
	now := time.Now().UTC()
	if rc.Expired(now) {
		return nil, repository.ErrCodeExpired
	}
	if rc.Exhausted() {
		return nil, repository.ErrCodeExhausted
	}
	if !rc.AllowRepeatPerUser {
		for _, use := range m.codeUses {
			if use.CodeID == rc.ID && use.AccountID == accountID {
				return nil, repository.ErrCodeAlreadyRedeemed
			}
		}
	}
	m.codeUses = append(m.codeUses, model.RedeemCodeUse{
		ID:        uuid.New(),
		CodeID:    rc.ID,
		AccountID: accountID,
		CreatedAt: now,
	})
	rc.UsedCount++
	result := &model.RedeemResult{
		RewardType: rc.RewardType,
		Coins:      rc.Coins,
		ProductID:  rc.ProductID,
		Quantity:   rc.Quantity,
	}
	switch rc.RewardType {
	case model.RedeemRewardTypeCoins:
		balance, err := m.applyBalance(accountID, rc.Coins, model.LedgerEntryTypeEarn, "Redeem code "+rc.Code, &rc.ID)
		if err != nil {
			return nil, err
		}
		result.NewBalance = &balance
	case model.RedeemRewardTypeProduct:
		m.deposit(accountID, *rc.ProductID, rc.Quantity)
	}
	return result, nil
}

func (m *mockRepo) CreateRedeemCode(ctx context.Context, rc *model.RedeemCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rc.ID = uuid.New()
	rc.CreatedAt = time.Now().UTC()
	copied := *rc
	m.codes[rc.Code] = &copied
	return nil
}

func (m *mockRepo) ListRedeemCodes(ctx context.Context, limit, offset int) ([]model.RedeemCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.RedeemCode
	for _, rc := range m.codes {
		out = append(out, *rc)
	}
	return out, nil
}

func (m *mockRepo) DeactivateRedeemCode(ctx context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rc, ok := m.codes[code]
	if !ok {
		return repository.ErrCodeNotFound
	}
	rc.IsActive = false
	return nil
}

func (m *mockRepo) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

func (m *mockRepo) ListProducts(ctx context.Context, onlyActive bool) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Product
	for _, product := range m.products {
		if onlyActive && !product.IsActive {
			continue
		}
		out = append(out, *product)
	}
	return out, nil
}

func (m *mockRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	product.ID = uuid.New()
	product.CreatedAt = time.Now().UTC()
	copied := *product
	m.products[product.ID] = &copied
	return nil
}

func (m *mockRepo) Purchase(ctx context.Context, accountID uuid.UUID, product *model.Product, discordID, promotionContent *string) (*model.PurchaseResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := &model.PurchaseResult{}
	if product.RequiresReview {
		order := &model.Order{
			ID:               uuid.New(),
			AccountID:        accountID,
			ProductID:        product.ID,
			Price:            product.Price,
			DiscordID:        discordID,
			PromotionContent: promotionContent,
			Status:           model.OrderStatusPending,
			CreatedAt:        time.Now().UTC(),
		}
		balance, err := m.applyBalance(accountID, -product.Price, model.LedgerEntryTypePurchase, "Purchase: "+product.Name, &order.ID)
		if err != nil {
			return nil, err
		}
		m.orders[order.ID] = order
		copied := *order
		result.Order = &copied
		result.NewBalance = balance
		return result, nil
	}
	balance, err := m.applyBalance(accountID, -product.Price, model.LedgerEntryTypePurchase, "Purchase: "+product.Name, &product.ID)
	if err != nil {
		return nil, err
	}
	m.deposit(accountID, product.ID, 1)
	result.Item = &model.BackpackItem{
		AccountID: accountID,
		ProductID: product.ID,
		Quantity:  m.backpack[accountID][product.ID],
	}
	result.NewBalance = balance
	return result, nil
}

func (m *mockRepo) DecideOrder(ctx context.Context, orderID, reviewerID uuid.UUID, accept bool) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	if order.Status != model.OrderStatusPending {
		return nil, repository.ErrOrderDecided
	}
	if accept {
		order.Status = model.OrderStatusAccepted
	} else {
		if _, err := m.applyBalance(order.AccountID, order.Price, model.LedgerEntryTypeRefund, "Order refund", &order.ID); err != nil {
			return nil, err
		}
		order.Status = model.OrderStatusRejected
	}
	now := time.Now().UTC()
	order.DecidedBy = &reviewerID
	order.DecidedAt = &now
	copied := *order
	return &copied, nil
}

func (m *mockRepo) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *mockRepo) ListOrders(ctx context.Context, status *model.OrderStatus, limit, offset int) ([]model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Order
	for _, order := range m.orders {
		if status != nil && order.Status != *status {
			continue
		}
		out = append(out, *order)
	}
	return out, nil
}

func (m *mockRepo) ListAccountOrders(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Order
	for _, order := range m.orders {
		if order.AccountID == accountID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (m *mockRepo) ListNotifications(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Notification
	for _, n := range m.notifications {
		if n.AccountID == accountID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockRepo) MarkNotificationRead(ctx context.Context, accountID, notificationID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.notifications {
		n := &m.notifications[i]
		if n.ID == notificationID && n.AccountID == accountID && n.ReadAt == nil {
			now := time.Now().UTC()
			n.ReadAt = &now
			return nil
		}
	}
	return repository.ErrNotificationNotFound
}

func (m *mockRepo) IsAdmin(ctx context.Context, accountID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.admins[accountID], nil
}

func (m *mockRepo) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	return nil, nil
}

func (m *mockRepo) LogAdminAction(ctx context.Context, adminID uuid.UUID, action string, targetAccountID *uuid.UUID, details []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adminLogs = append(m.adminLogs, model.AdminLog{
		ID:              uuid.New(),
		AdminID:         adminID,
		Action:          action,
		TargetAccountID: targetAccountID,
		Details:         details,
		CreatedAt:       time.Now().UTC(),
	})
	return nil
}

func (m *mockRepo) ListAdminLogs(ctx context.Context, limit, offset int) ([]model.AdminLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.AdminLog, len(m.adminLogs))
	copy(out, m.adminLogs)
	return out, nil
}

func (m *mockRepo) GetStats(ctx context.Context) (*model.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &model.Stats{Accounts: int64(len(m.accounts))}
	for _, account := range m.accounts {
		stats.CoinsInFlight += account.Balance
	}
	for _, order := range m.orders {
		if order.Status == model.OrderStatusPending {
			stats.PendingOrders++
		}
	}
	for _, gift := range m.gifts {
		if gift.Status == model.GiftStatusPending {
			stats.PendingGifts++
		}
	}
	return stats, nil
}

func (m *mockRepo) GetSetting(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.settings[key]
	if !ok {
		return "", repository.ErrSettingNotFound
	}
	return value, nil
}

func (m *mockRepo) SetSetting(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}

func (m *mockRepo) GetSettingInt64(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.settings[key]
	if !ok {
		return 0, repository.ErrSettingNotFound
	}
	return strconv.ParseInt(raw, 10, 64)
}

func (m *mockRepo) GetAllSettings(ctx context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.settings))
	for k, v := range m.settings {
		out[k] = v
	}
	return out, nil
}
