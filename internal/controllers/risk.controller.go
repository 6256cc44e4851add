package controllers

import (
	"log"
	"net/http"
	"time"

	"subhealth/internal/cache"
	"subhealth/internal/models"
	"subhealth/internal/repository"
	"subhealth/internal/services"

	"github.com/gin-gonic/gin"
)

const multimodalCacheTTL = 10 * time.Minute

// RiskController serves the multimodal condition scores, the fused
// contextual risk, and the recompute job endpoints.
type RiskController struct {
	riskService *services.RiskService
	contextual  *services.ContextualRiskService
	jobRepo     repository.RecomputeJobRepository
	worker      *services.RecomputeWorker
	redis       *cache.RedisClient
}

func NewRiskController(
	riskService *services.RiskService,
	contextual *services.ContextualRiskService,
	jobRepo repository.RecomputeJobRepository,
	worker *services.RecomputeWorker,
	redis *cache.RedisClient,
) *RiskController {
	return &RiskController{
		riskService: riskService,
		contextual:  contextual,
		jobRepo:     jobRepo,
		worker:      worker,
		redis:       redis,
	}
}

func currentUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized access",
		})
		return 0, false
	}
	return userID.(uint), true
}

// GetMultimodalRisk scores every condition against the user's current
// snapshots. Responses are cached per user until new data lands.
func (rc *RiskController) GetMultimodalRisk(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if rc.redis != nil {
		if cached, hit, err := rc.redis.GetMultimodalRisk(userID); err == nil && hit {
			c.JSON(http.StatusOK, gin.H{
				"status":  "success",
				"message": "Multimodal risk retrieved successfully",
				"data":    cached,
				"cached":  true,
			})
			return
		}
	}

	response, err := rc.riskService.GetMultimodalRisk(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error computing multimodal risk for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to compute multimodal risk",
			"error":   err.Error(),
		})
		return
	}

	if rc.redis != nil {
		if err := rc.redis.StoreMultimodalRisk(userID, response, multimodalCacheTTL); err != nil {
			log.Printf("Failed to cache multimodal risk for user %d: %v", userID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Multimodal risk retrieved successfully",
		"data":    response,
	})
}

// GetContextualRisk fuses today's subscores, persists the score row and
// its attribution, and returns the full payload.
func (rc *RiskController) GetContextualRisk(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	response, err := rc.contextual.ComputeAndStore(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error computing contextual risk for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to compute contextual risk",
			"error":   err.Error(),
		})
		return
	}

	if rc.redis != nil {
		if err := rc.redis.StoreContextualRisk(userID, response, multimodalCacheTTL); err != nil {
			log.Printf("Failed to cache contextual risk for user %d: %v", userID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Contextual risk computed successfully",
		"data":    response,
	})
}

// GetContributions reads back the persisted attribution rows for a day.
// Defaults to today when no day query parameter is given.
func (rc *RiskController) GetContributions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	day := c.DefaultQuery("day", time.Now().UTC().Format("2006-01-02"))
	if _, err := time.Parse("2006-01-02", day); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid day format, expected YYYY-MM-DD",
		})
		return
	}

	contributions, err := rc.contextual.GetStoredContributions(userID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve contributions",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Contributions retrieved successfully",
		"data": gin.H{
			"day":           day,
			"contributions": contributions,
		},
	})
}

// GetScoreSeries returns stored fusion scores for a day range,
// defaulting to the trailing 30 days.
func (rc *RiskController) GetScoreSeries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	now := time.Now().UTC()
	startDay := c.DefaultQuery("start", now.AddDate(0, 0, -30).Format("2006-01-02"))
	endDay := c.DefaultQuery("end", now.Format("2006-01-02"))

	for _, day := range []string{startDay, endDay} {
		if _, err := time.Parse("2006-01-02", day); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Invalid day format, expected YYYY-MM-DD",
			})
			return
		}
	}
	if startDay > endDay {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "start must not be after end",
		})
		return
	}

	series, err := rc.contextual.GetScoreSeries(userID, startDay, endDay)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve score series",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Score series retrieved successfully",
		"data": gin.H{
			"start":  startDay,
			"end":    endDay,
			"scores": series,
		},
	})
}

// RequestRecompute enqueues an async contextual-risk recompute and
// returns the job ID for polling.
func (rc *RiskController) RequestRecompute(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	job := models.NewRecomputeJob(userID)
	if err := rc.jobRepo.SaveJob(job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create recompute job",
			"error":   err.Error(),
		})
		return
	}

	if err := rc.worker.SubmitJob(models.RecomputeJobRequest{JobID: job.ID, UserID: userID}); err != nil {
		errMsg := err.Error()
		_ = rc.jobRepo.UpdateJobStatus(job.ID, models.JobStatusFailed, &errMsg)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "Failed to submit recompute job",
			"error":   errMsg,
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "success",
		"message": "Recompute job submitted",
		"data": gin.H{
			"job_id":     job.ID,
			"job_status": job.Status,
		},
	})
}

// GetJobStatus returns one recompute job, owner only.
func (rc *RiskController) GetJobStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	jobID := c.Param("job_id")
	job, err := rc.jobRepo.GetJobByID(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Job not found",
		})
		return
	}
	if job.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "Job does not belong to this user",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Job retrieved successfully",
		"data":    job,
	})
}

// GetWorkerStatus reports queue and connection health for diagnostics.
func (rc *RiskController) GetWorkerStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Worker status retrieved successfully",
		"data":    rc.worker.GetStatus(),
	})
}
