package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/germanamz/scorer/pkg/engine"
	"github.com/germanamz/scorer/pkg/rubric"
	"github.com/germanamz/scorer/pkg/scoring"
	"github.com/germanamz/scorer/pkg/wiki"
	"github.com/mattn/go-runewidth"
)

func bandStyle(b scoring.Band) lipgloss.Style {
	switch b {
	case scoring.BandHigh:
		return bandHighStyle
	case scoring.BandMid:
		return bandMidStyle
	default:
		return bandLowStyle
	}
}

// scoreRows returns one table row per rubric axis, in display order.
func scoreRows(r scoring.Result) [][]string {
	rows := make([][]string, 0, len(rubric.Axes))
	for _, a := range rubric.Axes {
		score, _ := r.Score(a.Key)
		reason, _ := r.Reason(a.Key)
		rows = append(rows, []string{
			a.Label,
			fmt.Sprintf("%d/%d", score, a.Max),
			reason,
		})
	}
	return rows
}

// renderReport formats a scoring result: total, category, the per-axis table
// and the advice rendered as markdown. A table wider than width is narrowed
// to it, wrapping the reasons.
func renderReport(r scoring.Result, width int) string {
	var b strings.Builder

	total := bandStyle(r.Band()).Render(fmt.Sprintf("%d / %d", r.Total, rubric.MaxTotal))
	b.WriteString(titleStyle.Render("総合スコア") + "  " + total + "\n")
	if r.Category != "" {
		b.WriteString(categoryStyle.Render(r.Category) + "\n")
	}
	b.WriteString("\n")

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("項目", "点数", "理由").
		Rows(scoreRows(r)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return scoreStyle
			default:
				return cellStyle
			}
		})
	if width > 0 && lipgloss.Width(t.String()) > width {
		t.Width(width)
	}
	b.WriteString(t.String())
	b.WriteString("\n")

	if r.HasAdvice() {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("改善アドバイス") + "\n")
		b.WriteString(adviceBlockStyle.Render(renderMarkdown(r.Advice)))
		b.WriteString("\n")
	}

	return b.String()
}

// renderUsage formats the token usage of a finished attempt, or "" when the
// backend reported none.
func renderUsage(out engine.Outcome) string {
	if out.Usage.Total() == 0 {
		return ""
	}

	return dimStyle.Render(fmt.Sprintf("%s %s tokens (in %s / out %s)",
		out.Model,
		fmtTokens(out.Usage.Total()),
		fmtTokens(out.Usage.InputTokens),
		fmtTokens(out.Usage.OutputTokens),
	))
}

// renderModels lists the models with the selection marked. Columns are
// aligned by display width so CJK names line up.
func renderModels(list engine.ModelList) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(list.Provider.Label()) + "\n")

	idWidth := 0
	for _, m := range list.Models {
		idWidth = max(idWidth, runewidth.StringWidth(m.ID))
	}

	for _, m := range list.Models {
		marker := "  "
		line := padRight(m.ID, idWidth) + "  " + m.Name
		if m.ID == list.Selected {
			marker = selectedStyle.Render("* ")
			line = selectedStyle.Render(line)
		}
		b.WriteString(marker + line + "\n")
	}

	return b.String()
}

// renderWiki prints the lookup outcome per edition and the resulting templates.
func renderWiki(b wiki.Both) string {
	var sb strings.Builder

	sides := []struct {
		r   wiki.CheckResult
		err error
	}{{b.JA, b.JAErr}, {b.EN, b.ENErr}}

	for _, s := range sides {
		sb.WriteString(wikiStatus(s.r, s.err) + "\n")
	}

	templates := b.Templates()
	if len(templates) == 0 {
		return sb.String()
	}

	sb.WriteString("\n")
	for _, t := range templates {
		sb.WriteString(t.Text + "  " + dimStyle.Render(t.Description) + "\n")
	}

	return sb.String()
}

func wikiStatus(r wiki.CheckResult, err error) string {
	if err != nil {
		return "error: " + err.Error()
	}

	lang := strings.ToUpper(string(r.Lang))
	switch {
	case !r.Exists:
		return lang + ": " + dimStyle.Render("not found")
	case r.IsDisambiguation:
		return lang + ": " + r.Resolved() + " (disambiguation)"
	case r.IsRedirect:
		return lang + ": " + r.Title + " -> " + r.RedirectTarget
	default:
		return lang + ": " + r.Title
	}
}
