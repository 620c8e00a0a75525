package tui

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"personality-quiz/internal/app"
	"personality-quiz/internal/domain"
)

// Options configures the terminal player.
type Options struct {
	NoColor bool
	Width   int
}

// Model renders one Player and turns key presses into player events.
type Model struct {
	player *app.Player
	screen *Screen
	def    domain.QuizDefinition
	bar    progress.Model
	cursor int
	status string
	opts   Options
}

// NewModel expects a player that has already been loaded with screen as
// its presenter.
func NewModel(player *app.Player, screen *Screen, opts Options) Model {
	if opts.Width <= 0 {
		opts.Width = 40
	}
	barOpts := []progress.Option{progress.WithWidth(opts.Width), progress.WithoutPercentage()}
	if opts.NoColor {
		barOpts = append(barOpts, progress.WithFillCharacters('#', '.'))
	} else {
		barOpts = append(barOpts, progress.WithDefaultGradient())
	}
	def, _ := player.Definition()
	return Model{
		player: player,
		screen: screen,
		def:    def,
		bar:    progress.New(barOpts...),
		opts:   opts,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	}

	var err error
	switch m.player.State() {
	case app.NotStarted:
		if key.String() == "enter" || key.String() == " " {
			err = m.player.Start()
			m.cursor = 0
		}
	case app.InQuestion:
		answers := len(m.screen.question.Answers)
		switch s := key.String(); s {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < answers-1 {
				m.cursor++
			}
		case "enter", " ":
			err = m.player.Answer(m.cursor)
			m.cursor = 0
		default:
			if n, convErr := strconv.Atoi(s); convErr == nil && n >= 1 && n <= 9 {
				err = m.player.Answer(n - 1)
				if err == nil {
					m.cursor = 0
				}
			}
		}
	case app.Finished:
		if key.String() == "r" {
			err = m.player.Restart()
			m.cursor = 0
		}
	}
	m.status = ""
	if err != nil {
		m.status = err.Error()
	}
	return m, nil
}

func (m Model) View() string {
	if err := m.screen.LoadError(); err != nil {
		return m.style("Could not load quiz: "+err.Error(), lipgloss.Color("196"), false) + "\n"
	}

	var parts []string
	switch m.player.State() {
	case app.NotStarted:
		parts = append(parts,
			m.style(m.def.Title, lipgloss.Color("33"), true),
			m.def.Description,
			"",
			m.style(fmt.Sprintf("%d questions. Press enter to start, q to quit.", len(m.def.Questions)), lipgloss.Color("242"), false),
		)
	case app.InQuestion:
		q := m.screen.question
		p := m.screen.progress
		parts = append(parts,
			m.bar.ViewAs(p.Fraction()),
			m.style(fmt.Sprintf("Question %d of %d", p.Index+1, p.Total), lipgloss.Color("242"), false),
			"",
			m.style(q.Text, lipgloss.Color("255"), true),
		)
		for i, a := range q.Answers {
			marker := "  "
			line := fmt.Sprintf("%d. %s", i+1, a.Text)
			if i == m.cursor {
				marker = "> "
				line = m.style(line, lipgloss.Color("39"), true)
			}
			parts = append(parts, marker+line)
		}
		parts = append(parts, "", m.style("up/down to move, enter or 1-9 to answer, q to quit", lipgloss.Color("242"), false))
	case app.Finished:
		outcome := m.screen.outcome
		parts = append(parts, m.bar.ViewAs(1))
		if outcome != nil {
			parts = append(parts,
				"",
				m.style("You are: "+outcome.Result.Title, lipgloss.Color("33"), true),
				outcome.Result.Description,
				"",
			)
			for _, score := range outcome.Scores {
				parts = append(parts, m.style(fmt.Sprintf("%-12s %d", score.Key, score.Points), lipgloss.Color("244"), false))
			}
		}
		parts = append(parts, "", m.style("r to restart, q to quit", lipgloss.Color("242"), false))
	}
	if m.status != "" {
		parts = append(parts, m.style(m.status, lipgloss.Color("196"), false))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}

func (m Model) style(text string, color lipgloss.Color, bold bool) string {
	if m.opts.NoColor || text == "" {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Bold(bold).Render(text)
}

// Run loads the quiz through loader and plays it on the terminal until the
// user quits. A load failure is returned without starting the UI.
func Run(ctx context.Context, loader app.Loader, in io.Reader, out io.Writer, opts Options) error {
	screen := NewScreen()
	player := app.NewPlayer(loader, screen)
	if _, err := player.Load(ctx); err != nil {
		return err
	}
	program := tea.NewProgram(NewModel(player, screen, opts),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := program.Run()
	return err
}
