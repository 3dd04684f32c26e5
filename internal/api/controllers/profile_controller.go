package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bumpline/internal/models/request_models"
	"bumpline/internal/services"
	"bumpline/pkg/utils"
)

type ProfileController struct {
	profileService services.ProfileServiceInterface
}

func NewProfileController(profileService services.ProfileServiceInterface) *ProfileController {
	return &ProfileController{
		profileService: profileService,
	}
}

func (pc *ProfileController) RegisterHandler(c *gin.Context) {
	var request request_models.RegisterProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := pc.profileService.Register(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, profile, "Profile created")
}

func (pc *ProfileController) GetMeHandler(c *gin.Context) {
	phone := c.GetString("phone")

	profile, err := pc.profileService.GetByPhone(c.Request.Context(), phone)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, profile, "Fetched profile successfully")
}

func (pc *ProfileController) UpdateMeHandler(c *gin.Context) {
	phone := c.GetString("phone")

	var request request_models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := pc.profileService.Update(c.Request.Context(), phone, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, profile, "Profile updated")
}
