package response_models

type VerifyCodeResponse struct {
	Token string `json:"token"`
}
