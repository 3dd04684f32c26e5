package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"bumpline/internal/models/db_models"
	"bumpline/internal/repositories"
	"bumpline/pkg/utils"
)

const (
	chatHistoryWindow = 10
	chatReplyTimeout  = 20 * time.Second

	fallbackReply = "Thanks for your message! 💜 I couldn't put together a proper answer just now — " +
		"please try again in a little while, and always call your care provider for anything urgent."

	registerInvite = "Hi! This is bumpline, your pregnancy companion. " +
		"Sign up at https://bumpline.app to start getting daily updates and ask me anything."
)

// ChatServiceInterface handles inbound SMS: log, meter, generate a reply,
// send it, log again.
type ChatServiceInterface interface {
	HandleInbound(ctx context.Context, from, body string) error
}

type chatService struct {
	profileRepo repositories.ProfileRepository
	chatRepo    repositories.ChatRepository
	entitlement EntitlementServiceInterface
	sender      SMSSenderInterface
	clock       utils.Clock

	openaiClient *openai.Client
	openaiModel  string
}

func NewChatService(
	profileRepo repositories.ProfileRepository,
	chatRepo repositories.ChatRepository,
	entitlement EntitlementServiceInterface,
	sender SMSSenderInterface,
	clock utils.Clock,
	openaiAPIKey, openaiModel string,
) ChatServiceInterface {
	var client *openai.Client
	if openaiAPIKey != "" {
		client = openai.NewClient(openaiAPIKey)
	}
	if openaiModel == "" {
		openaiModel = openai.GPT4oMini
	}

	return &chatService{
		profileRepo:  profileRepo,
		chatRepo:     chatRepo,
		entitlement:  entitlement,
		sender:       sender,
		clock:        clock,
		openaiClient: client,
		openaiModel:  openaiModel,
	}
}

func (s *chatService) HandleInbound(ctx context.Context, from, body string) error {
	phone := NormalizePhone(from)
	if phone == "" {
		return utils.ErrInvalidPhone
	}

	profile, err := s.profileRepo.FindByPhone(ctx, phone)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if profile == nil {
		// Unknown senders get a registration pointer; nothing is logged
		// since there is no profile to attach history to.
		if _, err := s.sender.Send(ctx, phone, registerInvite); err != nil {
			log.Printf("Error inviting unknown sender %s: %v", phone, err)
		}
		return nil
	}

	s.appendHistory(ctx, phone, db_models.RoleUser, body)

	decision := s.entitlement.Authorize(profile)
	if !decision.Allowed {
		return s.reply(ctx, phone, decision.DegradeMessage)
	}

	if err := s.entitlement.Consume(ctx, profile, db_models.TxnTypeChatReply); err != nil {
		if errors.Is(err, utils.ErrNoCredits) {
			return s.reply(ctx, phone, UpsellMessage)
		}
		log.Printf("Error consuming credit for %s: %v", phone, err)
		return err
	}

	answer := s.generateReply(ctx, profile, body)
	return s.reply(ctx, phone, answer)
}

func (s *chatService) reply(ctx context.Context, phone, content string) error {
	if _, err := s.sender.Send(ctx, phone, content); err != nil {
		log.Printf("Error sending chat reply to %s: %v", phone, err)
		return err
	}
	s.appendHistory(ctx, phone, db_models.RoleAssistant, content)
	return nil
}

func (s *chatService) appendHistory(ctx context.Context, phone string, role db_models.ChatRole, content string) {
	entry := &db_models.ChatMessage{
		PhoneNumber: phone,
		Role:        role,
		Content:     content,
	}
	if err := s.chatRepo.Append(ctx, entry); err != nil {
		log.Printf("Error appending chat history for %s: %v", phone, err)
	}
}

func (s *chatService) generateReply(ctx context.Context, profile *db_models.Profile, question string) string {
	if s.openaiClient == nil {
		return fallbackReply
	}

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: s.systemPrompt(profile),
		},
	}

	history, err := s.chatRepo.RecentByPhone(ctx, profile.PhoneNumber, chatHistoryWindow)
	if err != nil {
		log.Printf("Error loading chat history for %s: %v", profile.PhoneNumber, err)
	}
	for _, msg := range history {
		role := openai.ChatMessageRoleUser
		if msg.Role == db_models.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: question,
	})

	ctxWithTimeout, cancel := context.WithTimeout(ctx, chatReplyTimeout)
	defer cancel()

	resp, err := s.openaiClient.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model:       s.openaiModel,
		Messages:    messages,
		MaxTokens:   300,
		Temperature: 0.7,
	})
	if err != nil {
		log.Printf("OpenAI reply failed for %s, using fallback: %v", profile.PhoneNumber, err)
		return fallbackReply
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return fallbackReply
	}

	return resp.Choices[0].Message.Content
}

func (s *chatService) systemPrompt(profile *db_models.Profile) string {
	weekInfo := "unknown gestational week"
	if week, ok := utils.GestationalWeek(profile.DueDate(), s.clock.Now()); ok {
		displayWeek := utils.DisplayWeek(week)
		weekInfo = fmt.Sprintf("week %d (baby about the size of %s)",
			displayWeek, utils.FruitSize(displayWeek))
	}

	return fmt.Sprintf(`You are bumpline, a warm, concise pregnancy-guidance assistant replying over SMS.
Reader: %s, %s. Interests: %s. Lifestyle: %s.
Keep answers under 300 characters, plain text, at most one emoji.
You are not a doctor: for anything that sounds urgent or medical, tell them to contact their care provider.`,
		profile.Name, weekInfo, profile.Interests, profile.Lifestyle)
}
