package telegram

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/config"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/service"
)

// Bot alerts operators about the order review queue. Decisions still happen
// through the admin API; the bot is a read-only side channel.
type Bot struct {
	bot      *tele.Bot
	cfg      *config.Config
	orderSvc *service.OrderService
	log      *zap.Logger
}

func NewBot(cfg *config.Config, orderSvc *service.OrderService, log *zap.Logger) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Telegram.BotToken,
		Poller: &tele.LongPoller{Timeout: 60 * time.Second},
	}

	bot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := &Bot{
		bot:      bot,
		cfg:      cfg,
		orderSvc: orderSvc,
		log:      log,
	}

	b.registerHandlers()

	return b, nil
}

func (b *Bot) registerHandlers() {
	b.bot.Handle("/start", b.handleStart)
	b.bot.Handle("/pending", b.handlePending)
}

func (b *Bot) StartPolling(ctx context.Context) {
	go func() {
		<-ctx.Done()
		b.bot.Stop()
	}()
	b.bot.Start()
}

func (b *Bot) GetBotUsername() string {
	return b.bot.Me.Username
}

func (b *Bot) handleStart(c tele.Context) error {
	text := `👋 <b>CRCRCoin review bot</b>

I post an alert here whenever a purchase needs manual review.

/pending — list orders waiting for a decision`

	return c.Send(text, tele.ModeHTML)
}

func (b *Bot) handlePending(c tele.Context) error {
	status := model.OrderStatusPending
	orders, err := b.orderSvc.ListForReview(context.Background(), &status, 20, 0)
	if err != nil {
		b.log.Warn("failed to list pending orders", zap.Error(err))
		return c.Send("Failed to load the review queue, try again later.")
	}

	if len(orders) == 0 {
		return c.Send("✅ The review queue is empty.")
	}

	text := fmt.Sprintf("📋 <b>%d order(s) waiting for review</b>\n", len(orders))
	for _, order := range orders {
		text += fmt.Sprintf("\n• <code>%s</code> — %d CRCRCoin, placed %s",
			order.ID, order.Price, order.CreatedAt.Format("02.01.2006 15:04"))
	}

	return c.Send(text, tele.ModeHTML)
}

// SendOrderPending posts a new review-queue entry to the operator chat.
// No-op when no chat is configured.
func (b *Bot) SendOrderPending(order *model.Order, email string) error {
	if b.cfg.Telegram.ReviewChat == 0 {
		return nil
	}

	text := fmt.Sprintf(`🛒 <b>New order needs review</b>

Order: <code>%s</code>
Buyer: %s
Price: %d CRCRCoin

Decide it in the admin panel or check /pending.`,
		order.ID, email, order.Price)

	_, err := b.bot.Send(&tele.Chat{ID: b.cfg.Telegram.ReviewChat}, text, tele.ModeHTML)
	return err
}

// SendOrderDecided posts the outcome of a review to the operator chat.
func (b *Bot) SendOrderDecided(order *model.Order) error {
	if b.cfg.Telegram.ReviewChat == 0 {
		return nil
	}

	var text string
	switch order.Status {
	case model.OrderStatusAccepted:
		text = fmt.Sprintf("✅ Order <code>%s</code> was approved.", order.ID)
	case model.OrderStatusRejected:
		text = fmt.Sprintf("❌ Order <code>%s</code> was rejected, %d CRCRCoin refunded.", order.ID, order.Price)
	default:
		return nil
	}

	_, err := b.bot.Send(&tele.Chat{ID: b.cfg.Telegram.ReviewChat}, text, tele.ModeHTML)
	return err
}
