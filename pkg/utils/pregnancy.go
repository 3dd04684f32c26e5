package utils

import "time"

// Full-term pregnancy length used for week math.
const (
	termWeeks = 40
	termDays  = 280
)

// GestationalWeek derives the current pregnancy week from the due date:
// weeks = 40 - ceil(daysUntilDue / 7). A nil due date reports ok=false so a
// sweep can skip the profile instead of failing. The result is intentionally
// unclamped; values past 40 mean the due date has passed.
func GestationalWeek(dueDate *time.Time, today time.Time) (int, bool) {
	if dueDate == nil {
		return 0, false
	}

	daysUntil := int(dueDate.Sub(today).Hours() / 24)
	weeksUntil := daysUntil / 7
	if daysUntil%7 > 0 {
		weeksUntil++
	}

	return termWeeks - weeksUntil, true
}

// DueDateFromLMP estimates a due date from the last menstrual period
// (Naegele's rule: LMP + 280 days).
func DueDateFromLMP(lmp time.Time) time.Time {
	return lmp.AddDate(0, 0, termDays)
}

var weekSizes = []struct {
	fromWeek int
	label    string
}{
	{4, "a poppy seed 🌱"},
	{6, "a sweet pea 🫛"},
	{8, "a raspberry 🫐"},
	{10, "a strawberry 🍓"},
	{12, "a lime 🍋"},
	{14, "a lemon 🍋"},
	{16, "an avocado 🥑"},
	{18, "a bell pepper 🫑"},
	{20, "a banana 🍌"},
	{22, "a papaya 🥭"},
	{24, "an ear of corn 🌽"},
	{26, "a head of lettuce 🥬"},
	{28, "an eggplant 🍆"},
	{30, "a cabbage 🥬"},
	{32, "a squash 🎃"},
	{34, "a cantaloupe 🍈"},
	{36, "a honeydew melon 🍈"},
	{38, "a pumpkin 🎃"},
	{40, "a watermelon 🍉"},
}

// FruitSize returns the fruit-size comparison for a gestational week. Weeks
// outside the table clamp to its ends so composition always has something to
// interpolate.
func FruitSize(week int) string {
	label := weekSizes[0].label
	for _, entry := range weekSizes {
		if week >= entry.fromWeek {
			label = entry.label
		}
	}
	return label
}

// DisplayWeek clamps a raw gestational week into the range shown to users.
func DisplayWeek(week int) int {
	if week < 1 {
		return 1
	}
	if week > 42 {
		return 42
	}
	return week
}
