package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rizzcalc/rizz-web/internal/models"
)

type styles struct {
	vintage bool
	title   lipgloss.Style
	win     lipgloss.Style
	loss    lipgloss.Style
	muted   lipgloss.Style
	bullet  lipgloss.Style
	link    lipgloss.Style
}

func newStyles(vintage bool) styles {
	accent, win, loss, muted := "#A855F7", "#A855F7", "#DC2626", "#8C8C8C"
	if vintage {
		accent, win, loss, muted = "#C89A3A", "#6B8E23", "#8B0000", "#6E6E6E"
	}
	return styles{
		vintage: vintage,
		title:   lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
		win:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color(win)).Bold(true).Padding(0, 1),
		loss:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color(loss)).Bold(true).Padding(0, 1),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
		bullet:  lipgloss.NewStyle().Foreground(lipgloss.Color(accent)),
		link:    lipgloss.NewStyle().Underline(true),
	}
}

func newProgressBar(s styles) progress.Model {
	if s.vintage {
		return progress.New(progress.WithSolidFill("#C89A3A"), progress.WithWidth(40))
	}
	return progress.New(progress.WithGradient("#A855F7", "#EC4899"), progress.WithWidth(40))
}

func renderResult(s styles, res models.AnalysisResult, shareLink string) string {
	var b strings.Builder

	badge := s.loss.Render("L RIZZ")
	if res.IsW() {
		badge = s.win.Render("W RIZZ")
	}
	b.WriteString(s.title.Render("Your Rizz Report"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s  %s\n", s.title.Render(fmt.Sprintf("%d/100", res.Score)), badge)

	if len(res.Suggestions) > 0 {
		b.WriteString("\nFeedback\n")
		for _, sug := range res.Suggestions {
			fmt.Fprintf(&b, "%s %s\n", s.bullet.Render("•"), sug)
		}
	}
	if res.Reasoning != "" {
		fmt.Fprintf(&b, "\n%s\n", s.muted.Render(res.Reasoning))
	}
	if shareLink != "" {
		fmt.Fprintf(&b, "\nShare: %s\n", s.link.Render(shareLink))
	}
	return b.String()
}

func renderLeaderboard(s styles, entries []models.RankedEntry) string {
	if len(entries) == 0 {
		return s.muted.Render("No scores yet. Be the first!")
	}

	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		name := e.Nickname
		if e.TopThree {
			name += " ★"
		}
		count := ""
		if e.ShowCount() {
			count = e.CountLabel
		}
		rows = append(rows, table.Row{fmt.Sprintf("%d", e.Rank), name, e.ScoreLabel, count})
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Nickname", Width: 32},
			{Title: "Rizz", Width: 10},
			{Title: "Scores", Width: 10},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+3),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Foreground(s.title.GetForeground()).Bold(true)
	ts.Selected = lipgloss.NewStyle()
	t.SetStyles(ts)
	return t.View()
}
