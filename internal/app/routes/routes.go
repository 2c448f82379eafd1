package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yigit/campusauth/internal/app/controllers"
	"github.com/yigit/campusauth/internal/app/models/dto"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	accountController *controllers.AccountController,
	gatherer prometheus.Gatherer,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register/student", authController.RegisterStudent)
		auth.POST("/register/admin", authController.RegisterAdmin)
		auth.POST("/login", authController.Login)
	}

	// --- Account management routes ---
	accounts := v1.Group("/accounts")
	{
		accounts.GET("", accountController.ListAccounts)
		accounts.GET("/:id", accountController.GetAccount)
		accounts.PATCH("/students/:id", accountController.UpdateStudent)
		accounts.PATCH("/admins/:id", accountController.UpdateAdmin)
		accounts.PATCH("/:id/status", accountController.SetStatus)
		accounts.DELETE("/:id", accountController.DeleteAccount)
	}

	// Health check endpoint
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		}))
	})

	if gatherer != nil {
		v1.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewFailureResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found"),
		))
	})
}
