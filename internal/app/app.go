// Package app wires configuration, storage, the wizard engine and the
// Telegram transport into a running storefront bot.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	tele "gopkg.in/telebot.v4"

	"github.com/tab1k/PandaShopBot/internal/config"
	"github.com/tab1k/PandaShopBot/internal/database"
	"github.com/tab1k/PandaShopBot/internal/logger"
	"github.com/tab1k/PandaShopBot/internal/media"
	"github.com/tab1k/PandaShopBot/internal/metrics"
	"github.com/tab1k/PandaShopBot/internal/storage"
	tg "github.com/tab1k/PandaShopBot/internal/telegram"
	"github.com/tab1k/PandaShopBot/internal/telegram/commands"
	"github.com/tab1k/PandaShopBot/internal/telegram/handlers"
	"github.com/tab1k/PandaShopBot/internal/telegram/notify"
	"github.com/tab1k/PandaShopBot/internal/telegram/router"
	"github.com/tab1k/PandaShopBot/internal/telegram/sender"
	"github.com/tab1k/PandaShopBot/internal/telegram/wizard"
)

// greetingSticker is looked up under the media root and sent on /start when
// present.
const greetingSticker = "AnimatedSticker.tgs"

// Run boots the storefront bot and blocks until ctx is cancelled.
func Run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Dir:     cfg.Logging.Dir,
		BotFile: cfg.Logging.BotFile,
		Profile: cfg.Logging.Profile,
	}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	if err := database.RunMigrations(cfg.Database); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = db.Close() }()

	mediaStore, err := media.NewStore(cfg.Shop.MediaDir)
	if err != nil {
		return fmt.Errorf("media store: %w", err)
	}

	bot, err := tg.Build(cfg)
	if err != nil {
		return err
	}

	dispatcher := sender.NewDispatcher(sender.Options{})
	notifier := notify.New(bot, cfg.Telegram.GroupID, dispatcher)

	stickerPath := filepath.Join(cfg.Shop.MediaDir, greetingSticker)
	if _, err := os.Stat(stickerPath); err != nil {
		stickerPath = ""
	}

	h := handlers.New(handlers.Options{
		Users:        storage.NewUsers(db),
		Catalog:      storage.NewCatalog(db),
		Cart:         storage.NewCart(db),
		Orders:       storage.NewOrders(db),
		Media:        mediaStore,
		Steps:        wizard.NewMemoryManager(),
		Notify:       notifier,
		Files:        bot,
		ExchangeRate: decimal.NewFromFloat(cfg.Shop.ExchangeRate),
		StickerPath:  stickerPath,
	})

	reg := tg.NewRegistry()
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: "Запустить бота",
	})
	reg.RegisterCommand("/stop", commands.Command{
		Handler:     h.Stop,
		Description: "Скрыть клавиатуру",
	})
	reg.RegisterCommand("/admin", commands.Command{
		Handler:     h.Admin,
		Description: "Админ панель",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/add_category", commands.Command{
		Handler:     h.AddCategory,
		Description: "Добавить категорию",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/add_product", commands.Command{
		Handler:     h.AddProduct,
		Description: "Добавить товар",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/delete_product", commands.Command{
		Handler:     h.DeleteProduct,
		Description: "Удалить товар",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.SetTextFallback(h.Unknown)
	reg.SetCallbackNotFound(h.Unknown)

	denyAccess := func(c tele.Context) error {
		return c.Send("У вас нет доступа к этой команде.")
	}

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminIDs:      cfg.Telegram.AdminIDs,
		OnAdminReject: denyAccess,
	})
	routes = append(routes, router.TextRoutes(h, reg, router.TextOptions{
		UnknownText:  h.Unknown,
		UnknownPhoto: h.Unknown,
	})...)
	routes = append(routes, router.CallbackRoute(h, reg))

	if cfg.Metrics.Listen != "" {
		go metrics.Serve(ctx, cfg.Metrics.Listen)
	}

	logger.L.Info("bot starting",
		slog.String("event", "app.start"),
		slog.String("run_mode", cfg.Telegram.RunMode),
		slog.Int("admins", len(cfg.Telegram.AdminIDs)),
	)

	return tg.RunTelegram(ctx, bot, tg.RunOptions{
		Config:      cfg,
		Registry:    reg,
		Dispatcher:  dispatcher,
		Middlewares: tg.DefaultMiddlewares(cfg, nil),
		Routes:      routes,
	})
}
