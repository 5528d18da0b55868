package bot

import (
	"fmt"
	"strings"

	"github.com/rauanseidaly/habittrackerbot/internal/domain"
)

func habitLabel(h domain.Habit) string {
	switch h {
	case domain.Meditation:
		return "Медитация"
	case domain.Reading:
		return "Книга"
	case domain.PhysicalActivity:
		return "Физ. активность"
	}
	return string(h)
}

func formatProfile(u domain.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Твой профиль: %s\n", u.Username)
	for _, habit := range domain.Habits {
		fmt.Fprintf(&b, "%s: %d\n", habitLabel(habit), u.Counters[habit])
	}
	fmt.Fprintf(&b, "Общие баллы: %d", u.TotalPoints)
	return b.String()
}

func formatTop(top []domain.RankedUser) string {
	var b strings.Builder
	b.WriteString("🏆 Топ участников:\n")
	for i, u := range top {
		fmt.Fprintf(&b, "%d. %s - %d баллов\n", i+1, u.Username, u.TotalPoints)
	}
	return strings.TrimRight(b.String(), "\n")
}
