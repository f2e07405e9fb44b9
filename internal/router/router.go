package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jemo-market/api/internal/authz"
	"github.com/jemo-market/api/internal/cache"
	"github.com/jemo-market/api/internal/config"
	"github.com/jemo-market/api/internal/constants"
	adminhandlers "github.com/jemo-market/api/internal/http/handlers/admin"
	agencyhandlers "github.com/jemo-market/api/internal/http/handlers/agency"
	publichandlers "github.com/jemo-market/api/internal/http/handlers/public"
	vendorhandlers "github.com/jemo-market/api/internal/http/handlers/vendor"
	"github.com/jemo-market/api/internal/http/response"
	"github.com/jemo-market/api/internal/logger"
	"github.com/jemo-market/api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware and every API route group
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	vendorHandler := vendorhandlers.New(c)
	agencyHandler := agencyhandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// storefront, no auth
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/categories", publicHandler.ListCategories)
		}

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("phone")), publicHandler.UserLogin)
		}

		// customer surface, any authenticated account
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.PUT("/me/profile", publicHandler.UpdateUserProfile)
			user.PUT("/me/password", publicHandler.ChangeUserPassword)
			user.POST("/me/upgrade-role", publicHandler.UpgradeRole)

			user.POST("/kyc/submit", publicHandler.SubmitKyc)
			user.GET("/kyc/status", publicHandler.GetKycStatus)

			user.POST("/products/:id/favorite", publicHandler.AddFavorite)
			user.DELETE("/products/:id/favorite", publicHandler.RemoveFavorite)
			user.GET("/favorites", publicHandler.ListFavorites)

			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/orders", publicHandler.ListMyOrders)
			user.GET("/orders/:id", publicHandler.GetMyOrder)
			user.POST("/orders/:id/complete", publicHandler.CompleteMyOrder)
			user.POST("/orders/:id/cancel", publicHandler.CancelMyOrder)
			user.POST("/orders/:id/dispute", publicHandler.OpenDispute)

			user.GET("/disputes", publicHandler.ListMyDisputes)
			user.GET("/disputes/:id", publicHandler.GetMyDispute)

			user.POST("/chat/conversations", publicHandler.StartConversation)
			user.GET("/chat/conversations", publicHandler.ListConversations)
			user.GET("/chat/conversations/:id/messages", publicHandler.ListMessages)
			user.POST("/chat/conversations/:id/messages", publicHandler.SendMessage)
			user.POST("/chat/conversations/:id/read", publicHandler.MarkConversationRead)
		}

		// vendor console
		vendor := apiV1.Group("/vendor")
		vendor.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo), RequireRoles(constants.RoleVendor))
		{
			vendor.GET("/products", vendorHandler.ListProducts)
			vendor.POST("/products", vendorHandler.CreateProduct)
			vendor.GET("/products/:id", vendorHandler.GetProduct)
			vendor.PUT("/products/:id", vendorHandler.UpdateProduct)
			vendor.DELETE("/products/:id", vendorHandler.DeleteProduct)

			vendor.GET("/orders", vendorHandler.ListOrders)
			vendor.GET("/orders/:id", vendorHandler.GetOrder)
			vendor.POST("/orders/:id/confirm", vendorHandler.ConfirmOrder)
			vendor.POST("/orders/:id/in-transit", vendorHandler.MarkInTransit)
			vendor.POST("/orders/:id/delivered", vendorHandler.MarkDelivered)
			vendor.POST("/orders/:id/cancel", vendorHandler.CancelOrder)

			vendor.GET("/wallet", vendorHandler.GetWalletBalance)
			vendor.GET("/wallet/transactions", vendorHandler.ListWalletTransactions)
			vendor.POST("/wallet/withdrawals", vendorHandler.RequestWithdrawal)
			vendor.GET("/wallet/payouts", vendorHandler.ListPayouts)
		}

		// rider and agency console
		agency := apiV1.Group("/agency")
		agency.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo), RequireRoles(constants.RoleAgency))
		{
			agency.GET("/jobs/available", agencyHandler.ListAvailableJobs)
			agency.GET("/jobs/history", agencyHandler.ListJobHistory)
			agency.GET("/jobs/:id", agencyHandler.GetJob)
			agency.POST("/jobs/:id/accept", agencyHandler.AcceptJob)
			agency.POST("/jobs/:id/delivered", agencyHandler.MarkJobDelivered)
		}

		// back office
		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.PUT("/password", adminHandler.ChangeAdminPassword)

				authorized.GET("/dashboard/overview", adminHandler.GetDashboardOverview)
				authorized.GET("/dashboard/trends", adminHandler.GetDashboardTrends)

				authorized.GET("/users", adminHandler.ListUsers)
				authorized.GET("/users/:id", adminHandler.GetUser)
				authorized.POST("/users/:id/disable", adminHandler.DisableUser)
				authorized.POST("/users/:id/enable", adminHandler.EnableUser)

				authorized.GET("/kyc", adminHandler.ListKycQueue)
				authorized.POST("/kyc/:id/approve", adminHandler.ApproveKyc)
				authorized.POST("/kyc/:id/reject", adminHandler.RejectKyc)

				authorized.GET("/orders", adminHandler.ListOrders)
				authorized.GET("/orders/:id", adminHandler.GetOrder)
				authorized.POST("/orders/:id/cancel", adminHandler.CancelOrder)
				authorized.POST("/orders/:id/complete", adminHandler.CompleteOrder)
				authorized.POST("/orders/:id/payment/confirm", adminHandler.ConfirmPayment)
				authorized.POST("/orders/:id/payment/fail", adminHandler.FailPayment)

				authorized.GET("/payouts", adminHandler.ListPayouts)
				authorized.POST("/payouts/:id/paid", adminHandler.MarkPayoutPaid)
				authorized.POST("/payouts/:id/reject", adminHandler.RejectPayout)

				authorized.GET("/disputes", adminHandler.ListDisputes)
				authorized.GET("/disputes/:id", adminHandler.GetDispute)
				authorized.POST("/disputes/:id/resolve", adminHandler.ResolveDispute)
				authorized.POST("/disputes/:id/reject", adminHandler.RejectDispute)

				authorized.GET("/delivery-jobs", adminHandler.ListDeliveryJobs)

				authorized.GET("/categories", adminHandler.ListCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)

				authorized.GET("/settings/:key", adminHandler.GetSetting)
				authorized.PUT("/settings/:key", adminHandler.UpdateSetting)

				authorized.GET("/authz/me", adminHandler.GetAuthzMe)
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.GET("/authz/admins", adminHandler.ListAuthzAdmins)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.DELETE("/authz/roles/:role", adminHandler.DeleteAuthzRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
