package response_models

type CreateCheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
	Plan        string `json:"plan"`
}
