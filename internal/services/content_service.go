package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"bumpline/internal/models/db_models"
	"bumpline/pkg/utils"
)

type MessageCategory string

const (
	CategoryDevelopment MessageCategory = "development"
	CategoryExercise    MessageCategory = "exercise"
	CategoryNutrition   MessageCategory = "nutrition"
	CategoryQuote       MessageCategory = "quote"
	CategoryTip         MessageCategory = "tip"
)

const categoryBaseWeight = 1.0

// categoryKeywords boost a category's weight when the profile's free-text
// interests or lifestyle mention one of them.
var categoryKeywords = map[MessageCategory][]string{
	CategoryDevelopment: {"development", "baby", "growth", "science", "milestone"},
	CategoryExercise:    {"exercise", "yoga", "fitness", "workout", "walking", "active", "run"},
	CategoryNutrition:   {"nutrition", "food", "diet", "cooking", "vegetarian", "vegan", "healthy eating"},
	CategoryQuote:       {"quote", "inspiration", "mindfulness", "meditation", "faith"},
}

var categoryTemplates = map[MessageCategory][]string{
	CategoryDevelopment: {
		"Hi {name}! At week {week}, your baby is about the size of {size}. Their senses are developing more every day! 👶",
		"Week {week} update, {name}: baby is the size of {size} now and growing stronger by the hour. 💪",
		"{name}, amazing news — at week {week} your little one is about as big as {size}. Every kick is progress!",
	},
	CategoryExercise: {
		"Hi {name}! A gentle 20-minute walk today can ease week-{week} aches and boost your energy. 🚶‍♀️",
		"{name}, prenatal yoga is a great fit for week {week} — focus on hip openers and deep breathing. 🧘‍♀️",
		"Movement tip for week {week}, {name}: swimming takes the weight off your joints while keeping you active. 🏊‍♀️",
	},
	CategoryNutrition: {
		"Hi {name}! Week {week} nutrition boost: leafy greens and lentils are great iron sources for you and baby. 🥬",
		"{name}, at week {week} your baby (about {size}!) loves omega-3s — think salmon, walnuts, and chia. 🐟",
		"Snack idea for week {week}, {name}: Greek yogurt with berries covers calcium and antioxidants in one go. 🫐",
	},
	CategoryQuote: {
		"\"Whatever you do today, {name}, do it with the confidence of someone growing a whole human.\" You're at week {week} and doing great. ✨",
		"{name}, a thought for week {week}: you are exactly the mother your baby needs. 💜",
		"Week {week} reminder, {name}: growth is quiet work. Yours and baby's both. 🌱",
	},
	CategoryTip: {
		"Hi {name}! Week {week} tip: a pillow between your knees can make a big difference for sleep. 😴",
		"{name}, staying hydrated matters extra at week {week} — keep a water bottle within reach all day. 💧",
		"Week {week} tip for you, {name}: jot down questions as they come up so your next checkup covers everything. 📝",
	},
}

// ContentServiceInterface produces the body of an outbound update: a static
// templated message, optionally enriched by the generative-text API when it
// is configured and responsive.
type ContentServiceInterface interface {
	SelectTemplate(profile *db_models.Profile, week int) string
	ComposeDailyUpdate(ctx context.Context, profile *db_models.Profile, week int) string
}

type contentService struct {
	gemini *genai.Client
	model  string

	mu  sync.Mutex
	rng *rand.Rand
}

// NewContentService builds the composer. geminiAPIKey may be empty, in which
// case every message comes from the static template pool.
func NewContentService(geminiAPIKey, model string, rng *rand.Rand) ContentServiceInterface {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	var client *genai.Client
	if geminiAPIKey != "" {
		var err error
		client, err = genai.NewClient(context.Background(), option.WithAPIKey(geminiAPIKey))
		if err != nil {
			log.Printf("Error creating Gemini client, falling back to templates: %v", err)
			client = nil
		}
	}

	return &contentService{
		gemini: client,
		model:  model,
		rng:    rng,
	}
}

func (c *contentService) SelectTemplate(profile *db_models.Profile, week int) string {
	profileText := strings.ToLower(profile.Interests + " " + profile.Lifestyle)

	items := make([]utils.WeightedItem[MessageCategory], 0, len(categoryTemplates))
	for _, category := range []MessageCategory{
		CategoryDevelopment, CategoryExercise, CategoryNutrition, CategoryQuote, CategoryTip,
	} {
		weight := categoryBaseWeight
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(profileText, keyword) {
				weight *= 2
				break
			}
		}
		items = append(items, utils.WeightedItem[MessageCategory]{Value: category, Weight: weight})
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	category, ok := utils.WeightedChoice(items, c.rng)
	if !ok {
		category = CategoryTip
	}

	templates := categoryTemplates[category]
	if len(templates) == 0 {
		templates = categoryTemplates[CategoryTip]
	}
	template := templates[c.rng.Intn(len(templates))]

	return interpolate(template, profile.Name, week)
}

func (c *contentService) ComposeDailyUpdate(ctx context.Context, profile *db_models.Profile, week int) string {
	if c.gemini == nil {
		return c.SelectTemplate(profile, week)
	}

	enriched, err := c.generate(ctx, profile, week)
	if err != nil {
		log.Printf("Gemini compose failed for %s, using template: %v", profile.PhoneNumber, err)
		return c.SelectTemplate(profile, week)
	}
	return enriched
}

func (c *contentService) generate(ctx context.Context, profile *db_models.Profile, week int) (string, error) {
	m := c.gemini.GenerativeModel(c.model)
	m.SetTemperature(0.7)
	m.SetTopP(0.8)
	m.SetMaxOutputTokens(200)

	displayWeek := utils.DisplayWeek(week)
	prompt := fmt.Sprintf(`You write one short, warm SMS (max 300 characters, at most one emoji)
for a pregnancy-guidance service. Reader: %s, week %d of pregnancy, baby about the size of %s.
Interests: %s. Lifestyle: %s.
Write one supportive daily update mentioning the week. Plain text only, no markdown, no greeting like "Dear".`,
		profile.Name, displayWeek, utils.FruitSize(displayWeek), profile.Interests, profile.Lifestyle)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := m.GenerateContent(ctxWithTimeout, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content")
	}

	content := strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	if content == "" {
		return "", fmt.Errorf("empty content")
	}
	return content, nil
}

func interpolate(template, name string, week int) string {
	displayWeek := utils.DisplayWeek(week)
	replacer := strings.NewReplacer(
		"{name}", name,
		"{week}", strconv.Itoa(displayWeek),
		"{size}", utils.FruitSize(displayWeek),
	)
	return replacer.Replace(template)
}
