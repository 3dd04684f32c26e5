package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bumpline/internal/models/request_models"
	"bumpline/internal/services"
	"bumpline/pkg/utils"
)

type BillingController struct {
	billingService services.BillingServiceInterface
}

func NewBillingController(billingService services.BillingServiceInterface) *BillingController {
	return &BillingController{
		billingService: billingService,
	}
}

func (bc *BillingController) CreateCheckoutHandler(c *gin.Context) {
	phone := c.GetString("phone")

	var request request_models.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	checkout, err := bc.billingService.CreateCheckout(c.Request.Context(), phone, request.Plan)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, checkout, "Checkout session created")
}

// WebhookHandler delegates to the billing service, which verifies the Stripe
// signature itself.
func (bc *BillingController) WebhookHandler(c *gin.Context) {
	bc.billingService.HandleWebhook(c)
}
