package internal

import (
	"fmt"
	"strings"
	"time"

	"scratchpad/internal/notify"
	"scratchpad/internal/session"
	"scratchpad/internal/stopwatch"
	"scratchpad/internal/wave"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Align(lipgloss.Center)

	menuItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	timerDisplayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("69")).
				Bold(true)

	timerRunningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")).
				Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0)

	waveBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Background(lipgloss.Color("0"))

	waveBoxRunningStyle = waveBoxStyle.
				BorderForeground(lipgloss.Color("69"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	notificationBarStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("236")).
				Padding(0, 1)

	logHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	logTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)
)

func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	tenths := int(d.Milliseconds()%1000) / 100

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%d", hours, minutes, seconds, tenths)
	}
	return fmt.Sprintf("%02d:%02d.%d", minutes, seconds, tenths)
}

func (m *Model) frame(title, body string) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Width(80).Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(body)
	sb.WriteString("\n\n")
	if m.Err != nil {
		sb.WriteString(errorStyle.Render(m.Err.Error()))
		sb.WriteString("\n")
	}
	sb.WriteString(m.notificationBar())
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys.forScreen(m.Screen)))
	return sb.String()
}

func (m *Model) menuView() string {
	items := []string{
		menuItemStyle.Render("w  Wave view"),
		menuItemStyle.Render("b  Background timer service"),
	}
	body := boxStyle.Width(40).Render(strings.Join(items, "\n"))
	return m.frame("Scratch Pad", body)
}

func (m *Model) waveView() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.waveBox("Small", m.Small),
		"",
		m.waveBox("Large", m.Large),
	)
	return m.frame("Wave View", body)
}

func (m *Model) waveBox(label string, v *wave.View) string {
	state := inactiveStyle.Render("stopped")
	style := waveBoxStyle
	if v.Running() {
		state = runningStyle.Render("running")
		style = waveBoxRunningStyle
	}
	return fmt.Sprintf("%s %s\n%s", label, state, style.Render(v.View()))
}

func (m *Model) backgroundView() string {
	var sb strings.Builder

	elapsed := stopwatch.NotRunning
	if svc := m.connected(); svc != nil {
		elapsed = svc.Elapsed()
	}
	if elapsed >= 0 {
		sb.WriteString(timerRunningStyle.Render(formatDuration(time.Duration(elapsed) * time.Millisecond)))
		sb.WriteString("\n\n")
		sb.WriteString(runningStyle.Render("Running"))
	} else {
		sb.WriteString(timerDisplayStyle.Render(formatDuration(0)))
		sb.WriteString("\n\n")
		sb.WriteString(inactiveStyle.Render("Stopped"))
	}
	sb.WriteString(inactiveStyle.Render("  " + elapsedLabel(elapsed)))
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(m.Status))
	sb.WriteString("\n")

	if len(m.Recent) > 0 {
		sb.WriteString("\n")
		sb.WriteString(logHeaderStyle.Render("Recent Sessions"))
		sb.WriteString("\n")
		for _, s := range m.Recent {
			sb.WriteString(formatSession(s))
			sb.WriteString("\n")
		}
	}

	return m.frame("Background Timer", boxStyle.Width(50).Render(sb.String()))
}

func formatSession(s session.Session) string {
	timeStr := logTimeStyle.Render(s.StoppedAt.Local().Format("Jan 02 15:04:05"))
	return fmt.Sprintf("  %s  %s  (%d ms)", timeStr, formatDuration(s.Elapsed), s.ElapsedMillis())
}

func (m *Model) notificationBar() string {
	var active []notify.Notification
	if m.tray != nil {
		active = m.tray.Active()
	}
	if len(active) == 0 {
		return notificationBarStyle.Render(inactiveStyle.Render("No notifications"))
	}

	parts := make([]string, 0, len(active))
	for _, n := range active {
		marker := "○"
		if n.Ongoing {
			marker = "●"
		}
		parts = append(parts, fmt.Sprintf("%s %s  %s", marker, n.Title, n.Content))
	}
	return notificationBarStyle.Render(strings.Join(parts, "  |  "))
}

// elapsedLabel renders a stopwatch reading, spelling out the stopped sentinel.
func elapsedLabel(ms int64) string {
	if ms == stopwatch.NotRunning {
		return "not running"
	}
	return fmt.Sprintf("%d ms", ms)
}
