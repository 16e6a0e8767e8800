package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/faizmokh/gymattend/internal/attendance"
)

// BarRowsPerVisit is the fixed vertical scale of the summary chart. Bars are
// never capped, so a busy day simply draws a taller bar.
const BarRowsPerVisit = 1

const (
	barWidth    = 10
	tableHeight = 10
	tableWidth  = 52
)

var (
	pink   = lipgloss.Color("205")
	green  = lipgloss.Color("42")
	yellow = lipgloss.Color("220")
	blue   = lipgloss.Color("111")
	muted  = lipgloss.Color("245")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(pink)
	headingStyle = lipgloss.NewStyle().Bold(true)
	summaryStyle = lipgloss.NewStyle().Bold(true).Foreground(yellow)
	buttonStyle  = lipgloss.NewStyle().Foreground(pink).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	barStyle     = lipgloss.NewStyle().Foreground(green)
	columnStyle  = lipgloss.NewStyle().PaddingRight(3)
	modalStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(pink).
			Padding(1, 2)
)

func recordColumns() []table.Column {
	return []table.Column{
		{Title: "Member Name", Width: 24},
		{Title: "Date", Width: 12},
		{Title: "Time In", Width: 8},
	}
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(blue).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(pink).Bold(true)
	return styles
}

// View renders the frame.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Gym Attendance"))
	b.WriteString("\n\n")

	b.WriteString(m.search.View())
	b.WriteString("    ")
	b.WriteString(m.dateFilter.View())
	b.WriteString("\n\n")

	b.WriteString(buttonStyle.Render("+ Add Attendance"))
	b.WriteString(mutedStyle.Render(" (a)"))
	b.WriteString("\n\n")

	if m.state.FormOpen {
		b.WriteString(m.formView())
		b.WriteString("\n\n")
	}

	b.WriteString(headingStyle.Render("Attendance Records"))
	b.WriteByte('\n')
	b.WriteString(m.records.View())
	if len(m.records.Rows()) == 0 {
		b.WriteString("\n(no records)")
	}
	b.WriteString("\n\n")

	b.WriteString(summaryStyle.Render("Attendance Summary"))
	b.WriteByte('\n')
	b.WriteString(RenderSummary(m.state.Summary()))
	b.WriteByte('\n')

	if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(m.statusLine)
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.helpLine()))
	b.WriteByte('\n')

	return b.String()
}

func (m Model) formView() string {
	lines := []string{titleStyle.Render("Add Attendance"), ""}
	for _, input := range m.form {
		lines = append(lines, input.View())
	}
	lines = append(lines, "", mutedStyle.Render("esc cancel  enter submit  tab next field"))
	return modalStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) helpLine() string {
	switch m.focus {
	case focusSearch, focusDateFilter:
		return "Filter: type to filter  enter/esc/tab done"
	case focusForm:
		return "Form: tab/shift+tab move  enter submit  esc cancel"
	default:
		return "Keys: j/k select  / search name  f filter date  a add  d delete  q quit"
	}
}

// RenderSummary draws one bar per date, left to right in summary order. Each
// bar is BarRowsPerVisit rows tall per visit and labelled with the date and
// the raw visit count.
func RenderSummary(summary attendance.Summary) string {
	if len(summary) == 0 {
		return mutedStyle.Render("(no visits)")
	}

	columns := make([]string, 0, len(summary))
	for _, dc := range summary {
		column := lipgloss.JoinVertical(lipgloss.Center,
			barStyle.Render(bar(dc.Count*BarRowsPerVisit)),
			dc.Date,
			mutedStyle.Render(fmt.Sprintf("%d visits", dc.Count)),
		)
		columns = append(columns, columnStyle.Render(column))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, columns...)
}

func bar(height int) string {
	line := strings.Repeat("█", barWidth)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
