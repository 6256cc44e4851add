package routes

import (
	"subhealth/internal/controllers"
	"subhealth/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRiskRoutes(router *gin.Engine, riskController *controllers.RiskController) {
	riskRoutes := router.Group("/risk")
	riskRoutes.GET("/health", riskController.GetWorkerStatus)
	riskRoutes.Use(middleware.AuthMiddleware())
	{
		riskRoutes.GET("/multimodal", riskController.GetMultimodalRisk)
		riskRoutes.GET("/contextual", riskController.GetContextualRisk)
		riskRoutes.GET("/contextual/contributions", riskController.GetContributions)
		riskRoutes.GET("/score-series", riskController.GetScoreSeries)

		riskRoutes.POST("/recompute", riskController.RequestRecompute)
		riskRoutes.GET("/job/:job_id", riskController.GetJobStatus)
	}
}
