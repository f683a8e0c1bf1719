package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-catch/internal/config"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	bonusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

// instructionsView renders the rules screen shown before a round.
func instructionsView(cfg config.CatchConfig, width, height int) string {
	lines := []string{
		titleStyle.Render("C A T C H !"),
		"",
		"Drag the basket to catch falling fruit before it hits the ground.",
		"",
		goodStyle.Render(fmt.Sprintf("@ apple  ) banana  & cherry  O orange    +%d", cfg.Items.GoodPoints)),
		badStyle.Render(fmt.Sprintf("# stone   * rotten fruit                  -%d", cfg.Items.HazardPenalty)),
		bonusStyle.Render(fmt.Sprintf("$ bonus crate                            +%d", cfg.Items.BonusPoints)),
		"",
		fmt.Sprintf("A round lasts %d seconds. Things speed up every %d seconds.", cfg.Round.DurationSecs, cfg.Round.SpeedStepSecs),
		fmt.Sprintf("A bonus crate may drop in the last %d seconds. Don't miss it!", cfg.Spawn.BonusWindowSecs),
		"",
		dimStyle.Render("mouse drag or ←/→ to move   enter/click to start   q to quit"),
	}
	return centerBlock(lines, width, height)
}

// centerBlock centers lines horizontally and the block vertically.
func centerBlock(lines []string, width, height int) string {
	var b strings.Builder
	top := (height - len(lines)) / 2
	for i := 0; i < top; i++ {
		b.WriteString("\n")
	}
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(centerText(line, width))
	}
	return b.String()
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
