package provider

import (
	"github.com/drm-next/internal/authz"
	"github.com/drm-next/internal/cache"
	"github.com/drm-next/internal/config"
	"github.com/drm-next/internal/logger"
	"github.com/drm-next/internal/models"
	"github.com/drm-next/internal/queue"
	"github.com/drm-next/internal/repository"
	"github.com/drm-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo          repository.UserRepository
	EstimateRepo      repository.EstimateRepository
	ContractRepo      repository.ContractRepository
	OrderRepo         repository.OrderRepository
	PartnerRepo       repository.PartnerRepository
	LedgerRepo        repository.LedgerRepository
	WorkflowRepo      repository.WorkflowRepository
	DeadlineAlertRepo repository.DeadlineAlertRepository

	// Services
	AuthzService     *authz.Service
	AuthService      *service.AuthService
	UserService      *service.UserService
	NumberingService *service.NumberingService
	WorkflowService  *service.WorkflowService
	EstimateService  *service.EstimateService
	ContractService  *service.ContractService
	OrderService     *service.OrderService
	PartnerService   *service.PartnerService
	LedgerService    *service.LedgerService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
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

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.EstimateRepo = repository.NewEstimateRepository(db)
	c.ContractRepo = repository.NewContractRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PartnerRepo = repository.NewPartnerRepository(db)
	c.LedgerRepo = repository.NewLedgerRepository(db)
	c.WorkflowRepo = repository.NewWorkflowRepository(db)
	c.DeadlineAlertRepo = repository.NewDeadlineAlertRepository(db)
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

	c.NumberingService = service.NewNumberingService(c.Config.Numbering.Strategy)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.UserService = service.NewUserService(c.UserRepo, c.AuthService)
	c.WorkflowService = service.NewWorkflowService(c.WorkflowRepo, c.Config.Workflow)
	c.EstimateService = service.NewEstimateService(c.EstimateRepo, c.NumberingService, c.Config.Order.TaxRate)
	c.ContractService = service.NewContractService(c.ContractRepo, c.EstimateRepo, c.WorkflowService, c.NumberingService)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ContractRepo, c.PartnerRepo, c.QueueClient, c.NumberingService, c.Config.Order)
	c.PartnerService = service.NewPartnerService(c.PartnerRepo)
	c.LedgerService = service.NewLedgerService(c.LedgerRepo, c.ContractRepo, c.OrderRepo, c.NumberingService)
}
