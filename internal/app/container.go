package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"numguru/internal/config"
	"numguru/internal/database"
	"numguru/internal/database/migration"
	dbpostgres "numguru/internal/database/postgres"
	"numguru/internal/domain/payment"
	"numguru/internal/infrastructure/blogstore"
	"numguru/internal/infrastructure/cache"
	"numguru/internal/infrastructure/geo"
	"numguru/internal/infrastructure/persistence/memory"
	"numguru/internal/infrastructure/persistence/postgres"
	"numguru/internal/infrastructure/razorpay"
	"numguru/internal/observability"
	"numguru/internal/pkg/logger"
	"numguru/internal/pkg/unlock"
	bloguc "numguru/internal/usecase/blog"
	paymentuc "numguru/internal/usecase/payment"
	pricinguc "numguru/internal/usecase/pricing"
	readinguc "numguru/internal/usecase/reading"
	"numguru/internal/ws"

	"go.uber.org/zap"
)

const metricsNamespace = "numguru"

type Container struct {
	Config  config.Config
	Logger  *zap.Logger
	Metrics *observability.Metrics
	DB      database.DB
	Cache   *cache.Redis
	Hub     *ws.Hub

	Orders    payment.Repository
	Tokens    unlock.Service
	BlogStore *blogstore.FSStore

	Readings *readinguc.Service
	Payments *paymentuc.Service
	Pricing  *pricinguc.Service
	Blog     *bloguc.Service

	stopHub context.CancelFunc
	hubDone chan struct{}
}

func NewContainer(cfg config.Config, l *zap.Logger) (*Container, error) {
	l = logger.OrNop(l)
	c := &Container{Config: cfg, Logger: l}

	metrics, err := observability.NewMetrics(metricsNamespace, nil)
	if err != nil {
		return nil, err
	}
	c.Metrics = metrics

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.initLedger(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Cache = cache.NewRedis(cfg.Redis, l)

	store, err := blogstore.NewFSStore(os.DirFS(cfg.Blog.Dir), cfg.Blog.CacheSize, cfg.Blog.CacheTTL, l)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.BlogStore = store

	c.Hub = ws.NewHub(l, metrics)
	hubCtx, stopHub := context.WithCancel(context.Background())
	c.stopHub = stopHub
	c.hubDone = make(chan struct{})
	go func() {
		defer close(c.hubDone)
		c.Hub.Run(hubCtx)
	}()

	c.Tokens = unlock.NewHMACService(cfg.Unlock.Secret, cfg.Unlock.ExpiresIn)

	c.Readings = readinguc.NewService(c.Tokens, metrics, l)
	c.Payments = paymentuc.NewService(
		paymentuc.Config{
			KeyID:         cfg.Razorpay.KeyID,
			KeySecret:     cfg.Razorpay.KeySecret,
			WebhookSecret: cfg.Razorpay.WebhookSecret,
		},
		paymentuc.Deps{
			Gateway: razorpay.NewClient(cfg.Razorpay.BaseURL, cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.Timeout, l, metrics),
			Orders:  c.Orders,
			Tokens:  c.Tokens,
			Events:  ws.NewPaymentNotifier(c.Hub),
			Dedupe:  c.Cache,
			Metrics: metrics,
			Logger:  l,
		},
	)
	c.Pricing = pricinguc.NewService(
		cfg.Pricing,
		geo.NewIPAPIClient(cfg.Geo.BaseURL, cfg.Geo.Timeout, metrics),
		c.Cache,
		cfg.Geo.CacheTTL,
		l,
	)
	c.Blog = bloguc.NewService(store)

	if cfg.Razorpay.KeyID == "" || cfg.Razorpay.KeySecret == "" {
		l.Warn("razorpay keys not configured, order creation disabled")
	}

	return c, nil
}

// initLedger connects Postgres when configured and falls back to an in-memory
// ledger otherwise.
func (c *Container) initLedger(ctx context.Context) error {
	if !c.Config.Database.Enabled() {
		c.Logger.Info("no database configured, payment ledger kept in memory")
		c.Orders = memory.NewPaymentOrderRepository()
		return nil
	}

	db, err := dbpostgres.Connect(ctx, c.Config.Database, c.Logger)
	if err != nil {
		return err
	}
	c.DB = db

	if c.Config.Database.RunMigrations {
		applied, err := migration.Runner{Logger: c.Logger}.Run(ctx, db.SQLDB())
		if err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		c.Logger.Info("migrations complete", zap.Int("applied", len(applied)))
	}

	c.Orders = postgres.NewPaymentOrderRepository(db)
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	if c.stopHub != nil {
		c.stopHub()
		<-c.hubDone
	}

	var errs []error
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
