package controllers

import (
	"github.com/gin-gonic/gin"

	"bumpline/internal/services"
	"bumpline/pkg/utils"
)

type SchedulerController struct {
	schedulerService services.SchedulerServiceInterface
}

func NewSchedulerController(schedulerService services.SchedulerServiceInterface) *SchedulerController {
	return &SchedulerController{
		schedulerService: schedulerService,
	}
}

// SweepHandler is the external per-minute trigger. It runs the same code
// path as the built-in ticker; the in-memory guard keeps the two from
// double-sending inside one minute window.
func (sc *SchedulerController) SweepHandler(c *gin.Context) {
	result := sc.schedulerService.RunSweep(c.Request.Context())
	utils.RespondSuccess(c, result, "Sweep completed")
}

// ExpireTrialsHandler is the daily trial-expiration trigger.
func (sc *SchedulerController) ExpireTrialsHandler(c *gin.Context) {
	expired, err := sc.schedulerService.ExpireTrials(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"expired": expired}, "Trial sweep completed")
}
