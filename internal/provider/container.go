package provider

import (
	"github.com/jemo-market/api/internal/authz"
	"github.com/jemo-market/api/internal/cache"
	"github.com/jemo-market/api/internal/config"
	"github.com/jemo-market/api/internal/logger"
	"github.com/jemo-market/api/internal/models"
	"github.com/jemo-market/api/internal/queue"
	"github.com/jemo-market/api/internal/repository"
	"github.com/jemo-market/api/internal/service"
)

// Container dependency injection container
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo         repository.AdminRepository
	UserRepo          repository.UserRepository
	VendorProfileRepo repository.VendorProfileRepository
	AgencyProfileRepo repository.AgencyProfileRepository
	KycRepo           repository.KycRepository
	CategoryRepo      repository.CategoryRepository
	ProductRepo       repository.ProductRepository
	FavoriteRepo      repository.FavoriteRepository
	OrderRepo         repository.OrderRepository
	PaymentRepo       repository.PaymentRepository
	DeliveryJobRepo   repository.DeliveryJobRepository
	WalletRepo        repository.WalletRepository
	PayoutRepo        repository.PayoutRepository
	DisputeRepo       repository.DisputeRepository
	ConversationRepo  repository.ConversationRepository
	SettingRepo       repository.SettingRepository
	DashboardRepo     repository.DashboardRepository

	// Services
	AuthzService       *authz.Service
	AuthService        *service.AuthService
	UserAuthService    *service.UserAuthService
	UserAdminService   *service.UserAdminService
	KycService         *service.KycService
	CategoryService    *service.CategoryService
	ProductService     *service.ProductService
	FavoriteService    *service.FavoriteService
	OrderService       *service.OrderService
	PaymentService     *service.PaymentService
	DeliveryJobService *service.DeliveryJobService
	WalletService      *service.WalletService
	DisputeService     *service.DisputeService
	ChatService        *service.ChatService
	SettingService     *service.SettingService
	DashboardService   *service.DashboardService
}

// NewContainer builds the container
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.VendorProfileRepo = repository.NewVendorProfileRepository(db)
	c.AgencyProfileRepo = repository.NewAgencyProfileRepository(db)
	c.KycRepo = repository.NewKycRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.FavoriteRepo = repository.NewFavoriteRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.DeliveryJobRepo = repository.NewDeliveryJobRepository(db)
	c.WalletRepo = repository.NewWalletRepository(db)
	c.PayoutRepo = repository.NewPayoutRepository(db)
	c.DisputeRepo = repository.NewDisputeRepository(db)
	c.ConversationRepo = repository.NewConversationRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.SettingService = service.NewSettingService(c.SettingRepo, c.Config)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.VendorProfileRepo, c.AgencyProfileRepo)
	c.UserAdminService = service.NewUserAdminService(c.UserRepo)
	c.KycService = service.NewKycService(c.KycRepo, c.UserRepo, c.VendorProfileRepo, c.AgencyProfileRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.VendorProfileRepo)
	c.FavoriteService = service.NewFavoriteService(c.FavoriteRepo, c.ProductRepo)
	c.WalletService = service.NewWalletService(c.WalletRepo, c.PayoutRepo, c.VendorProfileRepo, c.SettingService)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.PaymentRepo, c.DeliveryJobRepo, c.VendorProfileRepo, c.WalletService, c.SettingService, c.QueueClient, c.Config.Order.PaymentExpireMinutes)
	c.PaymentService = service.NewPaymentService(c.PaymentRepo, c.OrderRepo)
	c.DeliveryJobService = service.NewDeliveryJobService(c.DeliveryJobRepo, c.AgencyProfileRepo, c.OrderService)
	c.DisputeService = service.NewDisputeService(c.DisputeRepo, c.OrderRepo)
	c.ChatService = service.NewChatService(c.ConversationRepo, c.UserRepo, c.OrderRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
}
