package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/prior-it/mdxpress/content"
)

var (
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#139DFF"))
	StyleError = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626"))
	StyleOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A"))
	StylePath  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FCD34D"))
	StyleBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).Padding(0, 1)
)

func renderReport(root string, report content.Report) string {
	var sb strings.Builder
	sb.WriteString(StyleTitle.Render(fmt.Sprintf("Checked %s", root)))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%d blog posts rendered\n", report.Posts)

	if report.OK() {
		sb.WriteString(StyleOK.Render("No problems found"))
		return StyleBox.Render(sb.String())
	}

	sb.WriteString(StyleError.Render(fmt.Sprintf("%d problems found", len(report.Problems))))
	for _, problem := range report.Problems {
		sb.WriteString("\n")
		sb.WriteString(StylePath.Render(problem.Path))
		sb.WriteString(" ")
		sb.WriteString(problem.Err.Error())
	}
	return StyleBox.Render(sb.String())
}
