package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/tenfoot/internal/logger"
)

// LogFile represents a log file for display in the log viewer.
type LogFile struct {
	Name string
	Path string
}

// GetLogFiles returns the main debug log followed by any demo scenario logs
// found next to it. Always returns a non-nil slice.
func GetLogFiles() []LogFile {
	files := []LogFile{}

	main := logger.Path()
	if main == "" {
		main = logger.DefaultLogPath
	}
	if _, err := os.Stat(main); err == nil {
		files = append(files, LogFile{Name: "Debug Log", Path: main})
	}

	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(main), "tenfoot-scenario-*.log"))
	sort.Strings(matches)
	for _, path := range matches {
		files = append(files, LogFile{
			Name: "Scenario " + scenarioName(path),
			Path: path,
		})
	}

	return files
}

// scenarioName extracts the scenario name from a scenario log path.
func scenarioName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), ".log")
	return strings.TrimPrefix(base, "tenfoot-scenario-")
}

// LogViewer is the overlay showing log files with level highlighting.
type LogViewer struct {
	Files      []LogFile
	FileIndex  int
	FollowTail bool

	viewport viewport.Model
	width    int
	height   int
}

// NewLogViewer opens the viewer on files, following the tail of the first.
func NewLogViewer(files []LogFile, width, height int) *LogViewer {
	lv := &LogViewer{
		Files:      files,
		FollowTail: true,
		viewport:   viewport.New(),
	}
	lv.viewport.MouseWheelEnabled = true
	lv.viewport.MouseWheelDelta = 3
	lv.viewport.SoftWrap = true
	lv.SetSize(width, height)
	lv.Refresh()
	return lv
}

// SetSize sets the overlay's outer size.
func (lv *LogViewer) SetSize(width, height int) {
	lv.width = width
	lv.height = height
	lv.viewport.SetWidth(max(width-BorderSize, 1))
	lv.viewport.SetHeight(max(height-BorderSize-1, 1))
}

// Refresh reloads the current file.
func (lv *LogViewer) Refresh() {
	if len(lv.Files) == 0 {
		lv.viewport.SetContent("No log files found")
		return
	}
	if lv.FileIndex >= len(lv.Files) {
		lv.FileIndex = len(lv.Files) - 1
	}

	content, err := os.ReadFile(lv.Files[lv.FileIndex].Path)
	if err != nil {
		lv.viewport.SetContent(fmt.Sprintf("Error reading log file: %v", err))
		return
	}

	lv.viewport.SetContent(highlightLogContent(string(content)))
	if lv.FollowTail {
		lv.viewport.GotoBottom()
	} else {
		lv.viewport.GotoTop()
	}
}

// NextFile and PrevFile switch between log files.
func (lv *LogViewer) NextFile() {
	if lv.FileIndex < len(lv.Files)-1 {
		lv.FileIndex++
		lv.Refresh()
	}
}

func (lv *LogViewer) PrevFile() {
	if lv.FileIndex > 0 {
		lv.FileIndex--
		lv.Refresh()
	}
}

// ToggleFollowTail toggles the follow tail mode.
func (lv *LogViewer) ToggleFollowTail() {
	lv.FollowTail = !lv.FollowTail
	if lv.FollowTail {
		lv.viewport.GotoBottom()
	}
}

// Update forwards scrolling input to the viewport.
func (lv *LogViewer) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	lv.viewport, cmd = lv.viewport.Update(msg)
	return cmd
}

// highlightLogContent applies syntax highlighting to log content.
func highlightLogContent(content string) string {
	var sb strings.Builder
	for line := range strings.SplitSeq(content, "\n") {
		sb.WriteString(highlightLogLine(line))
		sb.WriteString("\n")
	}
	return sb.String()
}

// highlightLogLine applies syntax highlighting to a single log line.
func highlightLogLine(line string) string {
	if line == "" {
		return line
	}

	levelErrorStyle := lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	levelWarnStyle := lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	levelInfoStyle := lipgloss.NewStyle().Foreground(ColorInfo)
	levelDebugStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary)
	valueStyle := lipgloss.NewStyle().Foreground(ColorText)

	switch {
	case strings.Contains(line, "level=ERROR"):
		line = strings.Replace(line, "level=ERROR", levelErrorStyle.Render("level=ERROR"), 1)
	case strings.Contains(line, "level=WARN"):
		line = strings.Replace(line, "level=WARN", levelWarnStyle.Render("level=WARN"), 1)
	case strings.Contains(line, "level=INFO"):
		line = strings.Replace(line, "level=INFO", levelInfoStyle.Render("level=INFO"), 1)
	case strings.Contains(line, "level=DEBUG"):
		line = strings.Replace(line, "level=DEBUG", levelDebugStyle.Render("level=DEBUG"), 1)
	}

	// Quoted msg= values get their own color
	if idx := strings.Index(line, "msg="); idx >= 0 {
		before := line[:idx]
		rest := line[idx:]
		if len(rest) > 4 && rest[4] == '"' {
			if endIdx := strings.Index(rest[5:], "\""); endIdx >= 0 {
				line = before + keyStyle.Render("msg=") + valueStyle.Render(rest[4:5+endIdx+1]) + rest[5+endIdx+1:]
			}
		}
	}

	return line
}

// View renders the overlay with its file navigation bar.
func (lv *LogViewer) View() string {
	innerWidth := max(lv.width-BorderSize, 1)
	content := lipgloss.JoinVertical(lipgloss.Left,
		lv.navBar(innerWidth),
		lipgloss.NewStyle().MaxHeight(lv.viewport.Height()).Render(lv.viewport.View()),
	)
	return PanelStyle.Width(lv.width).Height(lv.height).Render(content)
}

// navBar renders "← Debug Log (1 of 3) → [Follow]".
func (lv *LogViewer) navBar(width int) string {
	if len(lv.Files) == 0 {
		return lipgloss.NewStyle().Width(width).Foreground(ColorTextMuted).Render("No log files found")
	}

	leftArrow := "  "
	if lv.FileIndex > 0 {
		leftArrow = "← "
	}
	rightArrow := "  "
	if lv.FileIndex < len(lv.Files)-1 {
		rightArrow = " →"
	}

	arrowStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	muted := lipgloss.NewStyle().Foreground(ColorTextMuted)
	counter := muted.Render(fmt.Sprintf("(%d of %d)", lv.FileIndex+1, len(lv.Files)))

	follow := " " + muted.Render("[f: follow]")
	if lv.FollowTail {
		follow = " " + lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true).Render("[Follow]")
	}
	refresh := " " + muted.Render("[ctrl+r: refresh]")

	fixed := lipgloss.Width(leftArrow) + lipgloss.Width(counter) + lipgloss.Width(rightArrow) + lipgloss.Width(follow) + lipgloss.Width(refresh) + 1
	maxName := max(width-fixed, 10)
	name := lv.Files[lv.FileIndex].Name
	if len(name) > maxName {
		name = name[:maxName-1] + "…"
	}

	bar := arrowStyle.Render(leftArrow) +
		lipgloss.NewStyle().Foreground(ColorText).Bold(true).Render(name) + " " +
		counter +
		arrowStyle.Render(rightArrow) +
		follow +
		refresh
	return lipgloss.NewStyle().Width(width).Render(bar)
}
