package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/config"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/handler"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/middleware"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/repository"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/service"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/telegram"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	repo, err := repository.New(cfg.Database.DSN())
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer repo.Close()

	// Services
	accountSvc := service.NewAccountService(repo)
	walletSvc := service.NewWalletService(repo, cfg.Economy, zlog)
	giftSvc := service.NewGiftService(repo, cfg.Economy, zlog)
	passSvc := service.NewPassService(repo, cfg.Economy, zlog)
	redeemSvc := service.NewRedeemService(repo, cfg.Economy, zlog)
	orderSvc := service.NewOrderService(repo, cfg.Economy, zlog)
	adminSvc := service.NewAdminService(repo, zlog)

	// Admin grants route through the wallet service (set after construction
	// to avoid a circular dependency)
	adminSvc.SetWalletService(walletSvc)

	// Client sync hub pushes wallet updates after every mutation
	hub := ws.NewHub(zlog)
	walletSvc.SetBroadcaster(hub)
	giftSvc.SetBroadcaster(hub)
	passSvc.SetBroadcaster(hub)
	redeemSvc.SetBroadcaster(hub)
	orderSvc.SetBroadcaster(hub)

	// Operator bot for the review queue
	var bot *telegram.Bot
	if cfg.Telegram.BotToken != "" {
		bot, err = telegram.NewBot(cfg, orderSvc, zlog)
		if err != nil {
			zlog.Warn("failed to create telegram bot", zap.Error(err))
		} else {
			orderSvc.SetNotifier(bot)
			zlog.Info("telegram bot initialized", zap.String("username", bot.GetBotUsername()))
		}
	}

	// Handlers
	h := handler.New(cfg, accountSvc, walletSvc, giftSvc, passSvc, redeemSvc, orderSvc, hub)
	adminHandler := handler.NewAdminHandler(adminSvc, orderSvc)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/health", h.Health)

	// API routes with session authentication
	api := app.Group("/api", middleware.SessionAuth(cfg))

	// Account
	api.Post("/login", h.Login)
	api.Get("/me", h.GetMe)
	api.Get("/accounts/:public_id", h.Lookup)
	api.Get("/notifications", h.ListNotifications)
	api.Post("/notifications/:notification_id/read", h.MarkNotificationRead)

	// Wallet
	api.Get("/wallet", h.GetWallet)
	api.Get("/wallet/history", h.GetHistory)
	api.Post("/wallet/claim", h.ClaimDaily)

	// Gifts
	api.Post("/gifts", h.SendGift)
	api.Get("/gifts", h.ListGifts)
	api.Post("/gifts/:gift_id/accept", h.AcceptGift)
	api.Post("/gifts/:gift_id/return", h.ReturnGift)
	api.Get("/backpack", h.GetBackpack)

	// Season pass and tasks
	api.Get("/pass", h.GetPass)
	api.Post("/pass/premium", h.PurchasePremium)
	api.Post("/pass/claim", h.ClaimReward)
	api.Get("/tasks", h.ListTasks)
	api.Post("/tasks/:task_id/complete", h.CompleteTask)

	// Redeem codes
	api.Post("/redeem", h.Redeem)
	api.Get("/redeem/validate", h.ValidateCode)

	// Shop
	api.Get("/products", h.ListProducts)
	api.Post("/purchase", h.Purchase)
	api.Get("/orders", h.ListMyOrders)
	api.Get("/orders/:order_id", h.GetOrder)

	// Realtime wallet/notification stream
	api.Use("/ws", h.WSUpgrade)
	api.Get("/ws", h.WSHandler())

	// Admin panel (session auth + admin check)
	admin := app.Group("/api/admin", middleware.SessionAuth(cfg), middleware.AdminAuth(adminSvc))
	admin.Get("/stats", adminHandler.GetStats)
	admin.Get("/accounts", adminHandler.ListAccounts)
	admin.Post("/grant", adminHandler.GrantCoins)
	admin.Get("/orders", adminHandler.ListOrders)
	admin.Post("/orders/:order_id/decide", adminHandler.DecideOrder)
	admin.Get("/codes", adminHandler.ListRedeemCodes)
	admin.Post("/codes", adminHandler.CreateRedeemCode)
	admin.Post("/codes/bulk", adminHandler.CreateBulkRedeemCodes)
	admin.Post("/codes/deactivate", adminHandler.DeactivateRedeemCode)
	admin.Post("/products", adminHandler.CreateProduct)
	admin.Get("/settings", adminHandler.GetSettings)
	admin.Post("/settings", adminHandler.SetSetting)
	admin.Get("/logs", adminHandler.GetLogs)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if bot != nil {
		go bot.StartPolling(ctx)
		zlog.Info("telegram bot started with long polling")
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		cancel()
		_ = app.Shutdown()
	}()

	zlog.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
