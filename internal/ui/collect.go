package ui

import (
	"context"
	"fmt"
	"strings"

	"querybench/internal/benchmark"
	"querybench/internal/render"
	"querybench/internal/simulate"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// TrialMsg reports one collected trial.
type TrialMsg struct {
	Done  int
	Total int
	Trial benchmark.Trial
}

// CollectDoneMsg ends the collection.
type CollectDoneMsg struct {
	Trials benchmark.TrialSet
	Err    error
}

// CollectModel shows trial collection progress.
type CollectModel struct {
	Total    int
	Done     int
	Last     benchmark.Trial
	Trials   benchmark.TrialSet
	Err      error
	Finished bool
	Canceled bool

	spinner  spinner.Model
	progress progress.Model
}

func NewCollectModel(total int) CollectModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return CollectModel{
		Total:    total,
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (m CollectModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m CollectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.Canceled = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - 10
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}
		return m, nil

	case TrialMsg:
		m.Done = msg.Done
		if msg.Total > 0 {
			m.Total = msg.Total
		}
		m.Last = msg.Trial
		return m, nil

	case CollectDoneMsg:
		m.Finished = true
		m.Trials = msg.Trials
		m.Err = msg.Err
		m.Done = len(msg.Trials)
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// Percent is the completed share of trials in [0, 1].
func (m CollectModel) Percent() float64 {
	if m.Total <= 0 {
		return 0
	}
	p := float64(m.Done) / float64(m.Total)
	if p > 1 {
		p = 1
	}
	return p
}

func (m CollectModel) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("QUERY BENCHMARK") + "\n\n")

	switch {
	case m.Canceled:
		s.WriteString(logErrorStyle.Render("Collection canceled") + "\n")
		return s.String()
	case m.Finished && m.Err != nil:
		s.WriteString(logErrorStyle.Render("Error: "+m.Err.Error()) + "\n")
		return s.String()
	case m.Finished:
		s.WriteString(logSuccessStyle.Render(fmt.Sprintf("Collected %d trials", m.Done)) + "\n")
		return s.String()
	}

	s.WriteString(fmt.Sprintf("%s Running trial %d of %d\n\n", m.spinner.View(), m.Done+1, m.Total))
	s.WriteString(m.progress.ViewAs(m.Percent()) + "\n")

	if m.Last != nil {
		s.WriteString("\n" + mutedStyle.Render("Last trial:") + "\n")
		for _, method := range benchmark.DefaultMethods {
			v, ok := m.Last[method]
			if !ok {
				continue
			}
			s.WriteString(fmt.Sprintf("  %-10s %s\n", method.Label(), valueStyle.Render(render.Millis(float64(v)))))
		}
	}

	s.WriteString(helpStyle.Render("(q) cancel"))
	return s.String()
}

// RunCollect collects n trials while showing a progress view.
// Quitting the view cancels the collection.
func RunCollect(ctx context.Context, c *simulate.Collector, n int, opts ...tea.ProgramOption) (benchmark.TrialSet, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewCollectModel(n), opts...)

	collector := *c
	collector.Progress = func(done, total int, trial benchmark.Trial) {
		p.Send(TrialMsg{Done: done, Total: total, Trial: trial})
		if c.Progress != nil {
			c.Progress(done, total, trial)
		}
	}

	go func() {
		trials, err := collector.Collect(ctx, n)
		p.Send(CollectDoneMsg{Trials: trials, Err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress view failed: %w", err)
	}

	m := final.(CollectModel)
	if m.Canceled {
		return nil, context.Canceled
	}
	return m.Trials, m.Err
}
