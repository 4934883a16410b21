package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	tickInterval = 150 * time.Millisecond
	marqueeGap   = "   "
	barWidth     = 30
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// tickMsg drives animation (spinner, marquee).
type tickMsg time.Time

// Column defines a single column in the progress table.
type Column struct {
	Header string
	Width  int
}

// Row holds the field values for a single table row.
type Row struct {
	Key    string
	Fields []string
}

// ProgressModel is a bubbletea model that renders a per-clip table, a
// spinner while probing, and an encoding progress bar once the merge
// starts.
type ProgressModel struct {
	columns []Column
	rows    []Row
	index   map[string]int
	title   string
	done    bool
	err     error

	// statusCol caches the index of the STATUS column (-1 if absent).
	statusCol int

	// Encoding progress; merging flips on the first MergeProgressMsg.
	merging bool
	percent float64
	outTime float64
	speed   float64

	tick int
}

// NewProgressModel creates a progress model with the given title and columns.
func NewProgressModel(title string, columns []Column) ProgressModel {
	statusCol := -1
	for i, c := range columns {
		if strings.EqualFold(c.Header, "STATUS") {
			statusCol = i
			break
		}
	}
	return ProgressModel{
		columns:   columns,
		index:     make(map[string]int),
		title:     title,
		statusCol: statusCol,
	}
}

// AddRow pre-populates a row. Call this before the program starts.
func (m *ProgressModel) AddRow(key string, fields []string) {
	padded := make([]string, len(m.columns))
	copy(padded, fields)
	m.index[key] = len(m.rows)
	m.rows = append(m.rows, Row{Key: key, Fields: padded})
}

func scheduleTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init satisfies the tea.Model interface.
func (m ProgressModel) Init() tea.Cmd {
	return scheduleTick()
}

// Update satisfies the tea.Model interface.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.tick++
		if m.done {
			return m, nil
		}
		return m, scheduleTick()

	case RowUpdateMsg:
		m.applyRowUpdate(msg)
		return m, nil

	case MergeProgressMsg:
		m.merging = true
		if msg.Percent > m.percent {
			m.percent = msg.Percent
		}
		m.outTime = msg.OutTime
		m.speed = msg.Speed
		return m, nil

	case WorkDoneMsg:
		m.done = true
		return m, tea.Quit

	case ErrorMsg:
		m.err = msg.Err
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *ProgressModel) applyRowUpdate(msg RowUpdateMsg) {
	idx, ok := m.index[msg.Key]
	if !ok {
		return
	}
	row := &m.rows[idx]
	for j, col := range m.columns {
		if val, exists := msg.Fields[col.Header]; exists {
			row.Fields[j] = val
		}
	}
}

// View satisfies the tea.Model interface.
func (m ProgressModel) View() string {
	if m.done && m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	widths := m.columnWidths()

	var b strings.Builder
	b.WriteString(m.renderHeader(widths))
	b.WriteByte('\n')
	for _, row := range m.rows {
		b.WriteString(m.renderRow(row, widths))
		b.WriteByte('\n')
	}
	b.WriteString(m.renderFooter())
	return b.String()
}

// columnWidths fixes each column at the larger of its header and its
// declared width; long cell content is marqueed or truncated instead of
// widening the table.
func (m ProgressModel) columnWidths() []int {
	widths := make([]int, len(m.columns))
	for i, col := range m.columns {
		widths[i] = len(col.Header)
		if col.Width > widths[i] {
			widths[i] = col.Width
		}
	}
	return widths
}

func (m ProgressModel) renderHeader(widths []int) string {
	parts := make([]string, len(m.columns))
	for i, col := range m.columns {
		parts[i] = HeaderStyle.Render(pad(col.Header, widths[i]))
	}
	return strings.Join(parts, "  ")
}

func (m ProgressModel) renderRow(row Row, widths []int) string {
	parts := make([]string, len(m.columns))
	for i := range m.columns {
		val := ""
		if i < len(row.Fields) {
			val = row.Fields[i]
		}
		if !m.done && len(strings.TrimSpace(val)) > widths[i] {
			val = marqueeText(val, widths[i], m.tick)
		} else {
			val = TruncateWithEllipsis(val, widths[i])
		}
		if i == m.statusCol {
			parts[i] = StatusStyle(val).Render(pad(val, widths[i]))
		} else {
			parts[i] = pad(val, widths[i])
		}
	}
	return strings.Join(parts, "  ")
}

func (m ProgressModel) renderFooter() string {
	if m.merging {
		var b strings.Builder
		fmt.Fprintf(&b, "\n%s %5.1f%%", renderBar(m.percent, barWidth), m.percent)
		if m.outTime > 0 {
			fmt.Fprintf(&b, "  %.1fs", m.outTime)
		}
		if m.speed > 0 {
			fmt.Fprintf(&b, "  %.2fx", m.speed)
		}
		b.WriteByte('\n')
		return b.String()
	}
	if m.done {
		return ""
	}
	processed, total := m.progressCounts()
	spinner := spinnerFrames[m.tick%len(spinnerFrames)]
	return fmt.Sprintf("\n%s Probing %d/%d...\n", spinner, processed, total)
}

// renderBar draws a fixed-width bar filled proportionally to percent.
func renderBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

// progressCounts reports how many rows have left the pending state.
func (m ProgressModel) progressCounts() (int, int) {
	total := len(m.rows)
	if m.statusCol < 0 {
		return 0, total
	}
	processed := 0
	for _, row := range m.rows {
		if m.statusCol >= len(row.Fields) {
			continue
		}
		status := strings.TrimSpace(row.Fields[m.statusCol])
		if status != "" && status != "pending" {
			processed++
		}
	}
	return processed, total
}

// Done returns whether the model has finished (work done or error).
func (m ProgressModel) Done() bool {
	return m.done
}

// Err returns any fatal error that occurred.
func (m ProgressModel) Err() error {
	return m.err
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// marqueeText slides a fixed-width window over text that exceeds the width,
// wrapping with a gap between cycles.
func marqueeText(text string, width, tick int) string {
	text = strings.TrimSpace(text)
	if width <= 0 {
		return ""
	}
	if len(text) <= width {
		return text
	}
	cycle := text + marqueeGap
	offset := tick % len(cycle)
	var result strings.Builder
	result.Grow(width)
	for i := 0; i < width; i++ {
		result.WriteByte(cycle[(offset+i)%len(cycle)])
	}
	return result.String()
}

// TruncateWithEllipsis truncates a string and adds "..." if it exceeds max length.
func TruncateWithEllipsis(value string, max int) string {
	if max <= 0 {
		return ""
	}
	value = strings.TrimSpace(value)
	if len(value) <= max {
		return value
	}
	if max <= 3 {
		return value[:max]
	}
	return value[:max-3] + "..."
}
