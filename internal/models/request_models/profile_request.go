package request_models

type RegisterProfileRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Name        string `json:"name" binding:"required"`

	// ISO dates ("2006-01-02"); at least one should be present.
	DueDate string `json:"due_date"`
	LMPDate string `json:"lmp_date"`

	Interests string `json:"interests"`
	Lifestyle string `json:"lifestyle"`

	City          string `json:"city"`
	PreferredTime string `json:"preferred_time" binding:"omitempty,datetime=15:04"` // local wall-clock "HH:MM"
}

type UpdateProfileRequest struct {
	Name          *string `json:"name"`
	DueDate       *string `json:"due_date"`
	Interests     *string `json:"interests"`
	Lifestyle     *string `json:"lifestyle"`
	City          *string `json:"city"`
	PreferredTime *string `json:"preferred_time" binding:"omitempty,datetime=15:04"`
}
