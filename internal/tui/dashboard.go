package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/silviuClosca/languageForge/internal/engine"
	"github.com/silviuClosca/languageForge/internal/storage"
	"github.com/silviuClosca/languageForge/internal/ui"
)

type focusArea int

const (
	focusWeek focusArea = iota
	focusGoals
)

type dashboardModel struct {
	svc *engine.Service

	width  int
	height int

	profile    string
	today      string
	month      string
	weekDates  [7]string
	activity   storage.DailyActivity
	goals      storage.MonthlyGoals
	balance    int
	hasBalance bool
	trends     map[engine.Skill]engine.Trend
	plan       storage.DailyPlan
	resources  []storage.ResourceItem
	week       engine.WeekStats

	focus    focusArea
	day      int
	skillRow int
	goalRow  int

	editing bool
	input   textinput.Model

	lastLog string
	loading bool
}

type dashboardData struct {
	profile    string
	today      string
	month      string
	weekDates  [7]string
	activity   storage.DailyActivity
	goals      storage.MonthlyGoals
	balance    int
	hasBalance bool
	trends     map[engine.Skill]engine.Trend
	plan       storage.DailyPlan
	resources  []storage.ResourceItem
	week       engine.WeekStats
}

type refreshedMsg struct {
	data dashboardData
}

type changedMsg struct {
	note string
}

func newDashboardModel(svc *engine.Service) dashboardModel {
	input := textinput.New()
	input.Placeholder = "Goal text"
	input.CharLimit = 200
	input.Width = 48

	return dashboardModel{
		svc:     svc,
		input:   input,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m dashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		svc := m.svc
		reg := svc.Registry()

		data := dashboardData{
			today: engine.Today(),
			month: engine.CurrentMonthID(),
		}
		if name, ok := reg.DisplayName(reg.ActiveID()); ok {
			data.profile = name
		} else {
			data.profile = reg.ActiveID()
		}
		data.weekDates = weekOf(data.today)
		data.activity = svc.Activity()
		data.goals = svc.LoadGoalsForMonth(data.month)
		snap := svc.SnapshotForMonth(data.month)
		data.balance, data.hasBalance = engine.BalanceIndex(snap)
		if prev, ok := svc.PreviousSnapshot(data.month); ok {
			data.trends = engine.Trends(snap, prev)
		}
		data.plan = svc.LoadDailyPlan()
		data.resources = svc.Resources()
		if len(data.resources) > 3 {
			data.resources = data.resources[:3]
		}
		data.week = svc.WeekConsistency(data.today)
		return refreshedMsg{data: data}
	}
}

func (m dashboardModel) toggleCmd(date string, skill engine.Skill) tea.Cmd {
	return func() tea.Msg {
		on := m.svc.ToggleSkill(date, skill)
		state := "off"
		if on {
			state = "on"
		}
		return changedMsg{note: fmt.Sprintf("%s %s → %s", date, skill, state)}
	}
}

func (m dashboardModel) toggleGoalCmd(slot int) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.CheckGoalsEditable(m.month); err != nil {
			return changedMsg{note: err.Error()}
		}
		g := m.svc.LoadGoalsForMonth(m.month)
		g.Completed[slot] = !g.Completed[slot]
		m.svc.SaveGoalsForMonth(g, "dashboard")
		return changedMsg{note: fmt.Sprintf("goal %d toggled", slot+1)}
	}
}

func (m dashboardModel) saveGoalCmd(slot int, text string) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.CheckGoalsEditable(m.month); err != nil {
			return changedMsg{note: err.Error()}
		}
		g := m.svc.LoadGoalsForMonth(m.month)
		g.Goals[slot] = strings.TrimSpace(text)
		if !m.svc.SaveGoalsForMonth(g, "dashboard") {
			return changedMsg{note: "nothing to save"}
		}
		return changedMsg{note: fmt.Sprintf("goal %d saved", slot+1)}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case refreshedMsg:
		m.loading = false
		m.profile = msg.data.profile
		m.today = msg.data.today
		m.month = msg.data.month
		m.weekDates = msg.data.weekDates
		m.activity = msg.data.activity
		m.goals = msg.data.goals
		m.balance = msg.data.balance
		m.hasBalance = msg.data.hasBalance
		m.trends = msg.data.trends
		m.plan = msg.data.plan
		m.resources = msg.data.resources
		m.week = msg.data.week
		for i, date := range m.weekDates {
			if date == m.today {
				m.day = i
			}
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case changedMsg:
		m.lastLog = msg.note
		return m, m.loadCmd()
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m dashboardModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editing = false
		m.input.Blur()
		return m, m.saveGoalCmd(m.goalRow, m.input.Value())
	case "esc":
		m.editing = false
		m.input.Blur()
		m.lastLog = "Edit cancelled."
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m dashboardModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.loading = true
		m.lastLog = "Refreshing…"
		return m, m.loadCmd()
	case "tab":
		if m.focus == focusWeek {
			m.focus = focusGoals
		} else {
			m.focus = focusWeek
		}
		return m, nil
	case "left", "h":
		if m.focus == focusWeek && m.day > 0 {
			m.day--
		}
		return m, nil
	case "right", "l":
		if m.focus == focusWeek && m.day < len(m.weekDates)-1 {
			m.day++
		}
		return m, nil
	case "up", "k":
		if m.focus == focusWeek && m.skillRow > 0 {
			m.skillRow--
		}
		if m.focus == focusGoals && m.goalRow > 0 {
			m.goalRow--
		}
		return m, nil
	case "down", "j":
		if m.focus == focusWeek && m.skillRow < len(engine.Skills)-1 {
			m.skillRow++
		}
		if m.focus == focusGoals && m.goalRow < storage.GoalSlots-1 {
			m.goalRow++
		}
		return m, nil
	case " ":
		if m.loading {
			return m, nil
		}
		if m.focus == focusWeek {
			return m, m.toggleCmd(m.weekDates[m.day], engine.Skills[m.skillRow])
		}
		return m, m.toggleGoalCmd(m.goalRow)
	case "e", "enter":
		if m.loading || m.focus != focusGoals {
			return m, nil
		}
		m.editing = true
		m.input.SetValue(m.goals.Goals[m.goalRow])
		m.input.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if m.loading {
		return "LanguageForge — loading…\n"
	}

	var out []string
	out = append(out, m.renderHeader())
	out = append(out, "")
	out = append(out, m.renderWeek()...)
	out = append(out, "")
	out = append(out, m.renderGoals()...)
	out = append(out, "")
	out = append(out, m.renderPlan()...)
	out = append(out, m.renderResources()...)
	out = append(out, "")
	out = append(out, m.renderFooter())
	return strings.Join(out, "\n") + "\n"
}

func (m dashboardModel) renderHeader() string {
	balance := "–"
	if m.hasBalance {
		balance = fmt.Sprintf("%d", m.balance)
	}
	return fmt.Sprintf("LanguageForge | Profile: %s | %s | Balance %s", m.profile, m.today, balance)
}

func (m dashboardModel) renderWeek() []string {
	lines := []string{fmt.Sprintf("Practice — week of %s (%d/7 days, %d%%)", m.week.Start, m.week.ActiveDays, m.week.Percent)}

	header := strings.Repeat(" ", 14)
	for i, date := range m.weekDates {
		label := dayLabel(date)
		if m.focus == focusWeek && i == m.day {
			label = "[" + label + "]"
		} else {
			label = " " + label + " "
		}
		header += padRight(label, 9)
	}
	lines = append(lines, header)

	for row, skill := range engine.Skills {
		line := padRight(fmt.Sprintf("%s %s", ui.SkillIcon(string(skill)), skill), 14)
		for i, date := range m.weekDates {
			mark := ui.Check(m.activity.Done(date, string(skill)))
			cell := "  " + mark + "  "
			if m.focus == focusWeek && i == m.day && row == m.skillRow {
				cell = " >" + mark + "< "
			}
			line += padRight(cell, 9)
		}
		line += trendGlyph(m.trends[skill])
		lines = append(lines, line)
	}
	return lines
}

func (m dashboardModel) renderGoals() []string {
	title := fmt.Sprintf("Goals for %s", m.month)
	if m.goals.Archived {
		title += " (archived)"
	}
	lines := []string{title}
	for i := 0; i < storage.GoalSlots; i++ {
		cursor := "  "
		if m.focus == focusGoals && i == m.goalRow {
			cursor = "> "
		}
		text := m.goals.Goals[i]
		if strings.TrimSpace(text) == "" {
			text = "(empty)"
		}
		line := fmt.Sprintf("%s%s %d. %s", cursor, ui.Check(m.goals.Completed[i]), i+1, text)
		if cat := m.goals.Categories[i]; cat != "" && cat != engine.DefaultCategory {
			line += fmt.Sprintf(" [%s]", cat)
		}
		lines = append(lines, line)
	}
	if m.editing {
		lines = append(lines, "Edit: "+m.input.View())
	}
	return lines
}

func (m dashboardModel) renderPlan() []string {
	var tasks []string
	for _, task := range m.plan.Tasks {
		if strings.TrimSpace(task) != "" {
			tasks = append(tasks, task)
		}
	}
	if len(tasks) == 0 {
		return nil
	}
	lines := []string{"Today's plan"}
	for i, task := range tasks {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, task))
	}
	lines = append(lines, "")
	return lines
}

func (m dashboardModel) renderResources() []string {
	if len(m.resources) == 0 {
		return nil
	}
	lines := []string{"Resources"}
	for _, item := range m.resources {
		lines = append(lines, fmt.Sprintf("  %s %s", ui.ResourceIcon(item.Type), item.Name))
	}
	return lines
}

func (m dashboardModel) renderFooter() string {
	keys := "tab: section | arrows: move | space: toggle | e: edit goal | r: refresh | q: quit"
	if m.editing {
		keys = "enter: save | esc: cancel"
	}
	return m.lastLog + "\n" + keys
}

// weekOf returns the dates of the Monday-started week containing date.
func weekOf(date string) [7]string {
	var out [7]string
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return out
	}
	start := t.AddDate(0, 0, -((int(t.Weekday()) + 6) % 7))
	for i := range out {
		out[i] = start.AddDate(0, 0, i).Format("2006-01-02")
	}
	return out
}

func dayLabel(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "???"
	}
	return t.Format("Mon 02")
}

func trendGlyph(t engine.Trend) string {
	switch t {
	case engine.TrendUp:
		return " ↑"
	case engine.TrendDown:
		return " ↓"
	case engine.TrendSame:
		return " →"
	default:
		return ""
	}
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
