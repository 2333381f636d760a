package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/maruel/natural"

	"github.com/sadopc/diskview/internal/util"
)

func (a *App) View() string {
	if a.width == 0 {
		return ""
	}

	var body string
	switch a.state {
	case StateDrives:
		body = a.renderDrives()
	case StateScanning:
		body = a.renderScanning()
	case StateDone:
		body = a.renderDone()
	case StateError:
		body = a.renderError()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		body,
		a.renderStatusBar(),
	)
}

func (a *App) renderHeader() string {
	title := " diskview"
	if a.Version != "" {
		title += " " + a.Version
	}
	ctx := ""
	if a.scanPath != "" && a.state != StateDrives {
		ctx = "  " + util.TruncateString(a.scanPath, max(a.width-len(title)-4, 0))
	}
	line := title + ctx
	if pad := a.width - lipgloss.Width(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return a.theme.HeaderStyle.Render(line)
}

func (a *App) renderDrives() string {
	var lines []string
	lines = append(lines, "")
	lines = append(lines, a.theme.NameText.Render("  Select a drive to scan"))
	if a.notice != "" {
		lines = append(lines, a.theme.MutedText.Render("  "+a.notice))
	}
	lines = append(lines, "")

	if len(a.drives) == 0 {
		lines = append(lines, a.theme.MutedText.Render("  (waiting for drive list...)"))
	}
	for i, d := range a.drives {
		cursor := "  "
		row := fmt.Sprintf("%-12s %s", d.Name, a.theme.MutedText.Render(d.Path))
		if i == a.cursor {
			cursor = a.theme.CursorIndicator.Render("> ")
			row = a.theme.SelectedRow.Render(fmt.Sprintf("%-12s %s", d.Name, d.Path))
		}
		lines = append(lines, "  "+cursor+row)
	}

	return a.fillBody(lines)
}

func (a *App) renderScanning() string {
	p := a.progress

	barW := a.width - 12
	if barW > 60 {
		barW = 60
	}
	if barW < 10 {
		barW = 10
	}
	ratio := float64(p.Percentage) / 100.0

	var lines []string
	lines = append(lines, "")
	label := "  Scanning"
	if a.stopping {
		label = "  Stopping"
	}
	lines = append(lines, a.theme.NameText.Render(label)+" "+a.theme.MutedText.Render(a.scanPath))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("  %s %3d%%", a.theme.BarGradient(barW, ratio), p.Percentage))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("  %s files   %s   %s errors",
		util.FormatCount(p.ScannedCount),
		util.FormatSize(p.TotalSize),
		util.FormatCount(p.ErrorCount)))
	if p.CurrentPath != "" {
		lines = append(lines, a.theme.MutedText.Render("  "+util.TruncateString(p.CurrentPath, max(a.width-4, 0))))
	}

	return a.fillBody(lines)
}

// resultRow is the shared shape the three ranked tables render from.
type resultRow struct {
	icon   string
	name   string
	detail string
	count  string
	size   int64
}

func (a *App) renderDone() string {
	if a.result == nil || a.result.Stats == nil {
		return a.fillBody(nil)
	}
	res := a.result.Stats

	var lines []string
	lines = append(lines, "")
	lines = append(lines, "  "+a.renderTabs())
	lines = append(lines, "")

	summary := fmt.Sprintf("  %s files, %s total",
		util.FormatCount(res.TotalFiles), util.FormatSize(res.TotalSize))
	if res.ErrorCount > 0 {
		summary += a.theme.ErrorText.Render(fmt.Sprintf(", %d errors", res.ErrorCount))
	}
	summary += a.theme.MutedText.Render(fmt.Sprintf("  (%ds)", a.result.Duration))
	lines = append(lines, summary)
	lines = append(lines, "")

	rows := a.currentRows()
	if a.sortByName {
		sort.SliceStable(rows, func(i, j int) bool {
			return natural.Less(rows[i].name, rows[j].name)
		})
	}

	lines = append(lines, a.renderTable(rows)...)
	return a.fillBody(lines)
}

func (a *App) renderTabs() string {
	names := [tabCount]string{"File Types", "Folders", "Applications"}
	var tabs []string
	for i, name := range names {
		if ResultTab(i) == a.activeTab {
			tabs = append(tabs, a.theme.TabActiveStyle.Render(name))
		} else {
			tabs = append(tabs, a.theme.TabInactiveStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a *App) currentRows() []resultRow {
	res := a.result.Stats
	var rows []resultRow
	switch a.activeTab {
	case TabFileTypes:
		for _, e := range res.FileTypes {
			rows = append(rows, resultRow{
				icon:   util.ExtIcon(e.Extension),
				name:   e.Extension,
				detail: e.Description,
				count:  util.FormatCount(e.Count),
				size:   e.Size,
			})
		}
	case TabFolders:
		for _, e := range res.Folders {
			rows = append(rows, resultRow{
				icon:   util.DirIcon(e.Name),
				name:   e.Name,
				detail: e.Path,
				size:   e.Size,
			})
		}
	case TabApplications:
		for _, e := range res.Applications {
			rows = append(rows, resultRow{icon: "⚡", name: e.Name, detail: e.Path, size: e.Size})
		}
	}
	return rows
}

func (a *App) renderTable(rows []resultRow) []string {
	if len(rows) == 0 {
		return []string{a.theme.MutedText.Render("  (nothing to show)")}
	}

	nameW := 18
	countW := 8
	sizeW := 12
	barW := a.width - nameW - countW - sizeW - 14
	if barW < 10 {
		barW = 10
	}
	if barW > 30 {
		barW = 30
	}

	var top int64
	for _, r := range rows {
		if r.size > top {
			top = r.size
		}
	}
	total := a.result.Stats.TotalSize

	hdrStyle := lipgloss.NewStyle().Bold(true).Foreground(a.theme.TextPrimary)
	sep := a.theme.MutedText.Render("  " + strings.Repeat("-", max(a.width-4, 0)))

	var lines []string
	lines = append(lines, hdrStyle.Render(fmt.Sprintf("     %-*s %*s %*s  %s",
		nameW, "Name", countW, "Files", sizeW, "Size", "Share")))
	lines = append(lines, sep)

	for _, r := range rows {
		ratio := 0.0
		if top > 0 {
			ratio = float64(r.size) / float64(top)
		}
		name := a.theme.NameText.Width(nameW).Render(util.TruncateString(r.name, nameW))
		count := a.theme.SizeText.Width(countW).Render(r.count)
		size := a.theme.SizeText.Width(sizeW).Render(util.FormatSize(r.size))
		bar := a.theme.BarGradient(barW, ratio)
		pct := a.theme.MutedText.Render(fmt.Sprintf(" %5.1f%%", util.Percent(r.size, total)))

		lines = append(lines, fmt.Sprintf("  %s %s %s %s  %s%s", r.icon, name, count, size, bar, pct))
		if r.detail != "" {
			lines = append(lines, a.theme.MutedText.Render(
				"    "+util.TruncateString(r.detail, max(a.width-6, 0))))
		}
	}
	return lines
}

func (a *App) renderError() string {
	var lines []string
	lines = append(lines, "")
	lines = append(lines, a.theme.ErrorText.Render("  Scan failed"))
	lines = append(lines, "")
	lines = append(lines, "  "+a.errMsg)
	return a.fillBody(lines)
}

// fillBody pads the body to fill the space between header and status bar.
func (a *App) fillBody(lines []string) string {
	bodyH := a.height - 2
	if bodyH < 1 {
		bodyH = 1
	}
	for len(lines) < bodyH {
		lines = append(lines, "")
	}
	return strings.Join(lines[:bodyH], "\n")
}

func (a *App) renderStatusBar() string {
	var hints []string
	add := func(k, desc string) {
		hints = append(hints, a.theme.HelpKey.Render(k)+" "+a.theme.HelpDesc.Render(desc))
	}

	switch a.state {
	case StateDrives:
		add("↑/↓", "move")
		add("enter", "scan")
		add("q", "quit")
	case StateScanning:
		add("s", "stop")
		add("q", "quit")
	case StateDone:
		add("tab", "next view")
		add("n", "sort: name/size")
		add("r", "new scan")
		add("q", "quit")
	case StateError:
		add("r", "new scan")
		add("q", "quit")
	}

	line := " " + strings.Join(hints, "  ")
	if pad := a.width - lipgloss.Width(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return a.theme.StatusBarStyle.Render(line)
}
