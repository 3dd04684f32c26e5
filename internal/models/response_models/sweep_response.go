package response_models

type SweepResponse struct {
	Slot    string `json:"slot"` // UTC "HH:MM" the sweep matched against
	Matched int    `json:"matched"`
	Sent    int    `json:"sent"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
}
