package router

import (
	"github.com/drm-next/internal/config"
	adminhandlers "github.com/drm-next/internal/http/handlers/admin"
	businesshandlers "github.com/drm-next/internal/http/handlers/business"
	"github.com/drm-next/internal/logger"
	"github.com/drm-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.Z()
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按业务/管理分组）
	businessHandler := businesshandlers.New(c)
	adminHandler := adminhandlers.New(c)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 认证接口（无需鉴权）
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", businessHandler.Login)
		}

		// 业务接口（需鉴权）
		authorized := apiV1.Group("")
		authorized.Use(JWTAuthMiddleware(c.AuthService, c.UserRepo), RBACMiddleware(c.AuthzService))
		{
			authorized.GET("/me", businessHandler.GetCurrentUser)
			authorized.POST("/me/password", businessHandler.ChangePassword)

			// 见积
			authorized.GET("/estimates", businessHandler.ListEstimates)
			authorized.POST("/estimates", businessHandler.CreateEstimate)
			authorized.GET("/estimates/:id", businessHandler.GetEstimate)
			authorized.PUT("/estimates/:id", businessHandler.UpdateEstimate)
			authorized.POST("/estimates/:id/status", businessHandler.UpdateEstimateStatus)
			authorized.DELETE("/estimates/:id", businessHandler.DeleteEstimate)

			// 契约
			authorized.GET("/contracts", businessHandler.ListContracts)
			authorized.POST("/contracts/from-estimate", businessHandler.CreateContractFromEstimate)
			authorized.GET("/contracts/:id", businessHandler.GetContract)
			authorized.POST("/contracts/:id/status", businessHandler.UpdateContractStatus)
			authorized.POST("/contracts/:id/sign", businessHandler.SignContract)
			authorized.POST("/contracts/:id/approval", businessHandler.UpdateContractApproval)
			authorized.GET("/contracts/:id/order-plan", businessHandler.GetOrderPlan)
			authorized.GET("/contracts/:id/orders", businessHandler.ListContractOrders)

			// 発注
			authorized.POST("/orders/split", businessHandler.SplitOrders)
			authorized.GET("/orders", businessHandler.ListOrders)
			authorized.GET("/orders/:id", businessHandler.GetOrder)
			authorized.POST("/orders/:id/status", businessHandler.UpdateOrderStatus)

			// 协力会社
			authorized.GET("/partners", businessHandler.ListPartners)
			authorized.POST("/partners", businessHandler.CreatePartner)
			authorized.GET("/partners/match", businessHandler.MatchPartners)
			authorized.GET("/partners/:id", businessHandler.GetPartner)
			authorized.PUT("/partners/:id", businessHandler.UpdatePartner)
			authorized.DELETE("/partners/:id", businessHandler.DeletePartner)

			// 工事台帐
			authorized.GET("/construction-ledgers", businessHandler.ListLedgers)
			authorized.POST("/construction-ledgers/from-contract", businessHandler.CreateLedgerFromContract)
			authorized.GET("/construction-ledgers/:id", businessHandler.GetLedger)
			authorized.POST("/construction-ledgers/:id/status", businessHandler.UpdateLedgerStatus)
			authorized.POST("/construction-ledgers/:id/costs", businessHandler.AddLedgerCost)
			authorized.GET("/construction-ledgers/:id/variance", businessHandler.GetLedgerVariance)
			authorized.GET("/construction-ledgers/:id/export", businessHandler.ExportLedger)

			// 発注期限警报
			authorized.GET("/deadline-alerts", businessHandler.ListDeadlineAlerts)
			authorized.POST("/deadline-alerts/:id/notified", businessHandler.MarkDeadlineAlertNotified)

			// 流程设置
			authorized.GET("/workflow-settings", businessHandler.GetWorkflowSettings)
			authorized.PUT("/workflow-settings", businessHandler.UpdateWorkflowSettings)

			// 管理端（admin 角色经由 /admin/* 策略放行）
			adminGroup := authorized.Group("/admin")
			{
				adminGroup.GET("/users", adminHandler.ListUsers)
				adminGroup.POST("/users", adminHandler.CreateUser)
				adminGroup.GET("/users/:id", adminHandler.GetUser)
				adminGroup.PUT("/users/:id/role", adminHandler.UpdateUserRole)
				adminGroup.PUT("/users/:id/active", adminHandler.SetUserActive)
				adminGroup.POST("/authz/policies", adminHandler.GrantRolePolicy)
				adminGroup.POST("/authz/reload", adminHandler.ReloadPolicy)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
