package request_models

type CreateCheckoutRequest struct {
	Plan string `json:"plan" binding:"required"` // "credits_50" | "unlimited"
}
