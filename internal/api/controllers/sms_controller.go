package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bumpline/internal/services"
	"bumpline/pkg/utils"
)

type SMSController struct {
	chatService services.ChatServiceInterface
}

func NewSMSController(chatService services.ChatServiceInterface) *SMSController {
	return &SMSController{
		chatService: chatService,
	}
}

// InboundHandler receives the carrier's inbound-message webhook
// (form-encoded From/Body fields). The reply goes out through the REST API
// rather than the webhook response, so the carrier just gets a 200.
func (sc *SMSController) InboundHandler(c *gin.Context) {
	from := c.PostForm("From")
	body := c.PostForm("Body")
	if from == "" || body == "" {
		utils.RespondError(c, http.StatusBadRequest, "Missing From or Body")
		return
	}

	if err := sc.chatService.HandleInbound(c.Request.Context(), from, body); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
