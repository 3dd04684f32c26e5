package db_models

// VerificationCode is a one-time SMS login code. A code is valid only while
// unused and unexpired; consuming it flips Used permanently.
type VerificationCode struct {
	BaseModel
	PhoneNumber string `gorm:"index;not null"`
	CodeHash    string `gorm:"not null"`
	ExpiresAt   int64  `gorm:"not null"`
	Used        bool   `gorm:"default:false"`
}
