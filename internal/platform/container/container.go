package container

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	accountpg "github.com/jinford/shoplist-api/internal/module/account/adapter/pg"
	accountapp "github.com/jinford/shoplist-api/internal/module/account/application"
	accountdomain "github.com/jinford/shoplist-api/internal/module/account/domain"
	"github.com/jinford/shoplist-api/internal/module/barcode/adapter/scraper"
	barcodeapp "github.com/jinford/shoplist-api/internal/module/barcode/application"
	catalogpg "github.com/jinford/shoplist-api/internal/module/catalog/adapter/pg"
	catalogapp "github.com/jinford/shoplist-api/internal/module/catalog/application"
	listpg "github.com/jinford/shoplist-api/internal/module/list/adapter/pg"
	listapp "github.com/jinford/shoplist-api/internal/module/list/application"
	"github.com/jinford/shoplist-api/internal/platform/config"
	"github.com/jinford/shoplist-api/internal/platform/database"
)

// ServiceContainer はアプリケーションの依存関係を束ねます
type ServiceContainer struct {
	BarcodeSearch *barcodeapp.SearchService
	Resolution    *catalogapp.ResolutionService
	Lists         *listapp.Service
	Users         accountdomain.Repository

	logger   *slog.Logger
	database *database.Database
}

// New は設定とロガーからコンテナを生成します
func New(ctx context.Context, logger *slog.Logger, cfg *config.Config) (*ServiceContainer, error) {
	db, err := database.New(ctx, database.ConnectionParams{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return nil, fmt.Errorf("データベース初期化に失敗しました: %w", err)
	}

	return NewWithDB(logger, cfg, db)
}

// NewWithDB は既存のDatabaseを受け取りコンテナを生成します
func NewWithDB(logger *slog.Logger, cfg *config.Config, db *database.Database) (*ServiceContainer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	// バーコード検索（外部サイトスクレイピング）
	httpClient := &http.Client{Timeout: cfg.Barcode.FetchTimeout}
	xpathScraper := scraper.New(httpClient, logger)
	searchService := barcodeapp.NewSearchService(barcodeapp.DefaultAdapters(xpathScraper, logger), logger)

	// Repository (PostgreSQL)
	userRepo := accountpg.NewUserRepository(db.Pool)
	userProductRepo := catalogpg.NewUserProductRepository(db.Pool)
	listRepo := listpg.NewListRepository(db.Pool)

	// バーコード→ユーザー商品の解決サービス
	resolution := catalogapp.NewResolutionService(
		accountapp.NewVerifier(userRepo),
		userProductRepo,
		searchService,
		database.NewTransactionProvider(db.Pool),
		logger,
	)

	listService := listapp.NewService(listRepo, resolution, logger)

	return &ServiceContainer{
		BarcodeSearch: searchService,
		Resolution:    resolution,
		Lists:         listService,
		Users:         userRepo,
		logger:        logger,
		database:      db,
	}, nil
}

// Close は内部リソースを解放します
func (c *ServiceContainer) Close() {
	if c != nil && c.database != nil {
		c.database.Close()
	}
}

// Logger はロガーを返します
func (c *ServiceContainer) Logger() *slog.Logger {
	if c == nil || c.logger == nil {
		return slog.Default()
	}
	return c.logger
}

// Database は内部のデータベースを返します
func (c *ServiceContainer) Database() *database.Database {
	return c.database
}
