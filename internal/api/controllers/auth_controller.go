package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bumpline/internal/models/request_models"
	"bumpline/internal/models/response_models"
	"bumpline/internal/services"
	"bumpline/pkg/utils"
)

type AuthController struct {
	authService services.AuthServiceInterface
}

func NewAuthController(authService services.AuthServiceInterface) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

func (ac *AuthController) RequestCodeHandler(c *gin.Context) {
	var request request_models.RequestCodeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ac.authService.RequestCode(c.Request.Context(), request.PhoneNumber); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Verification code sent")
}

func (ac *AuthController) VerifyCodeHandler(c *gin.Context) {
	var request request_models.VerifyCodeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := ac.authService.VerifyCode(c.Request.Context(), request.PhoneNumber, request.Code)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.VerifyCodeResponse{Token: token}, "Signed in successfully")
}
