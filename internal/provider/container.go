package provider

import (
	"fmt"
	"time"

	"github.com/kalakriti-next/internal/config"
	"github.com/kalakriti-next/internal/constants"
	"github.com/kalakriti-next/internal/logger"
	"github.com/kalakriti-next/internal/payment"
	"github.com/kalakriti-next/internal/payment/cod"
	"github.com/kalakriti-next/internal/payment/razorpay"
	"github.com/kalakriti-next/internal/repository"
	"github.com/kalakriti-next/internal/service"
	"github.com/kalakriti-next/internal/storefront"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Repositories
	UserRepo    repository.UserRepository
	ArtworkRepo repository.ArtworkRepository
	StateRepo   repository.StateRepository

	// Services
	UserAuthService *service.UserAuthService
	CatalogService  *service.CatalogService

	// 门店状态
	Gateways map[string]payment.Gateway
	Stores   *storefront.Manager
}

// New 组装依赖容器
func New(cfg *config.Config, db *gorm.DB) (*Container, error) {
	blobStore, err := newBlobStore(cfg, db)
	if err != nil {
		return nil, fmt.Errorf("状态镜像后端初始化失败: %w", err)
	}
	stateRepo := repository.NewStateRepository(blobStore)
	userRepo := repository.NewUserRepository(db)
	artworkRepo := repository.NewArtworkRepository(db)

	gateways := map[string]payment.Gateway{
		constants.PaymentMethodRazorpay: razorpay.New(razorpay.Config{
			KeyID:      cfg.Payment.Razorpay.KeyID,
			KeySecret:  cfg.Payment.Razorpay.KeySecret,
			APIBaseURL: cfg.Payment.Razorpay.APIBaseURL,
			Timeout:    time.Duration(cfg.Payment.Razorpay.TimeoutMS) * time.Millisecond,
		}),
		constants.PaymentMethodCOD: cod.New(time.Duration(cfg.Payment.COD.DelayMS) * time.Millisecond),
	}

	stores := storefront.NewManager(
		stateRepo,
		gateways,
		storefront.ChargeRulesFromConfig(cfg.Checkout),
		cfg.Checkout.DeliveryDays,
	)

	return &Container{
		Config:          cfg,
		UserRepo:        userRepo,
		ArtworkRepo:     artworkRepo,
		StateRepo:       stateRepo,
		UserAuthService: service.NewUserAuthService(cfg, userRepo),
		CatalogService:  service.NewCatalogService(artworkRepo),
		Gateways:        gateways,
		Stores:          stores,
	}, nil
}

// newBlobStore 按配置选择状态镜像后端（数据库或 Redis）
func newBlobStore(cfg *config.Config, db *gorm.DB) (repository.BlobStore, error) {
	switch cfg.StateStore.Driver {
	case "redis":
		store, err := repository.NewRedisBlobStore(cfg.StateStore.Redis)
		if err != nil {
			return nil, err
		}
		logger.Infow("state_store_ready", "driver", "redis")
		return store, nil
	default:
		logger.Infow("state_store_ready", "driver", "db")
		return repository.NewGormBlobStore(db), nil
	}
}
