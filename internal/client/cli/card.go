package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/fortuneseal/internal/client/models"
	"github.com/dmitrijs2005/fortuneseal/internal/fortune"
	"golang.org/x/term"
)

const (
	defaultCardWidth = 60
	minCardWidth     = 24
)

// terminalWidth reports the width of stdout. Replaced in tests.
var terminalWidth = func() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultCardWidth
	}
	return w
}

func cardWidth() int {
	w := terminalWidth()
	if w > defaultCardWidth {
		w = defaultCardWidth
	}
	if w < minCardWidth {
		w = minCardWidth
	}
	return w
}

func periodTitle(p fortune.Period) string {
	switch p {
	case fortune.Daily:
		return "오늘의 예언"
	case fortune.Weekly:
		return "이번 주의 예언"
	case fortune.Monthly:
		return "이번 달의 예언"
	case fortune.Yearly:
		return "올해의 예언"
	default:
		return string(p)
	}
}

// dateLabel names the calendar day t falls on relative to now, both read in loc.
func dateLabel(t, now time.Time, loc *time.Location) string {
	t, now = t.In(loc), now.In(loc)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch {
	case day.Equal(today):
		return "오늘"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "어제"
	default:
		return fmt.Sprintf("%d월 %d일", int(t.Month()), t.Day())
	}
}

func reactionLabel(r fortune.Reaction) string {
	switch r {
	case fortune.ReactionPositive:
		return "👍"
	case fortune.ReactionNeutral:
		return "🤔"
	default:
		return ""
	}
}

type cardPalette struct {
	border lipgloss.Color
	title  lipgloss.Color
	muted  lipgloss.Color
}

func paletteFor(theme models.Theme) cardPalette {
	if theme == models.ThemeLight {
		return cardPalette{border: lipgloss.Color("94"), title: lipgloss.Color("130"), muted: lipgloss.Color("241")}
	}
	return cardPalette{border: lipgloss.Color("178"), title: lipgloss.Color("220"), muted: lipgloss.Color("245")}
}

// renderCard frames a fortune with its title, key and the next reveal time.
func renderCard(f *fortune.Fortune, next fortune.NextReveal, theme models.Theme, width int) string {
	p := paletteFor(theme)

	title := lipgloss.NewStyle().Bold(true).Foreground(p.title).
		Render(fmt.Sprintf("%s · %s", periodTitle(f.Period), f.PeriodKey))
	muted := lipgloss.NewStyle().Foreground(p.muted)

	body := []string{title, "", f.Text}
	if r := reactionLabel(f.Reaction); r != "" {
		body = append(body, "", r)
	}
	body = append(body, "",
		muted.Render("다음 예언: "+next.Label),
		muted.Render(next.Countdown()))

	return frame(body, p, width)
}

// renderSealed is shown for a bucket whose fortune has not been revealed.
func renderSealed(period fortune.Period, next fortune.NextReveal, theme models.Theme, width int) string {
	p := paletteFor(theme)
	body := []string{
		lipgloss.NewStyle().Bold(true).Foreground(p.title).Render(periodTitle(period)),
		"",
		"봉인이 아직 풀리지 않았습니다.",
		fmt.Sprintf("'reveal %s' 로 봉인을 여세요.", period),
		"",
		lipgloss.NewStyle().Foreground(p.muted).Render("다음 예언: " + next.Label),
		lipgloss.NewStyle().Foreground(p.muted).Render(next.Countdown()),
	}
	return frame(body, p, width)
}

func frame(lines []string, p cardPalette, width int) string {
	if width < minCardWidth {
		width = minCardWidth
	}
	// lipgloss widths exclude the border.
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.border).
		Padding(1, 2).
		Width(width - 2).
		Render(strings.Join(lines, "\n"))
}
