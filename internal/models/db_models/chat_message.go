package db_models

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one row of the append-only conversational log, written by
// inbound SMS handling, scheduled sends and welcome messages.
type ChatMessage struct {
	BaseModel
	PhoneNumber string   `gorm:"index;not null"`
	Role        ChatRole `gorm:"not null"`
	Content     string   `gorm:"not null"`
}
