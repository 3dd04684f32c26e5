package response_models

type ProfileResponse struct {
	PhoneNumber        string `json:"phone_number"`
	Name               string `json:"name"`
	DueDate            string `json:"due_date,omitempty"`
	GestationalWeek    int    `json:"gestational_week,omitempty"`
	BabySize           string `json:"baby_size,omitempty"`
	Interests          string `json:"interests,omitempty"`
	Lifestyle          string `json:"lifestyle,omitempty"`
	City               string `json:"city,omitempty"`
	PreferredTimeLocal string `json:"preferred_time"`
	SubscriptionStatus string `json:"subscription_status"`
	Tier               string `json:"tier"`
	Credits            int    `json:"credits"`
	TrialEndsAt        int64  `json:"trial_ends_at,omitempty"`
}
