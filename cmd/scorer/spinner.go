package main

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/scorer/pkg/engine"
	"github.com/germanamz/scorer/pkg/scoring"
)

// articleScorer is the part of the engine the spinner drives.
type articleScorer interface {
	Score(ctx context.Context, article string) (scoring.Result, error)
}

// scoreDoneMsg carries the outcome of the scoring call.
type scoreDoneMsg struct {
	result scoring.Result
	err    error
}

// engineEventMsg forwards an engine event to the program.
type engineEventMsg engine.Event

// waitForEvent reads the next event from ch. A closed channel ends the wait.
func waitForEvent(ch <-chan engine.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return engineEventMsg(ev)
	}
}

// scoreModel shows a spinner while a single scoring call is dispatching and
// quits once it returns. The label and elapsed time follow the engine's
// score_started event when events is set.
type scoreModel struct {
	ctx     context.Context
	scorer  articleScorer
	events  <-chan engine.Event
	article string
	label   string

	spinner spinner.Model
	started time.Time
	now     func() time.Time

	done   bool
	result scoring.Result
	err    error
}

func newScoreModel(ctx context.Context, s articleScorer, events <-chan engine.Event, article, label string) scoreModel {
	return scoreModel{
		ctx:     ctx,
		scorer:  s,
		events:  events,
		article: article,
		label:   label,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(spinnerStyle)),
		now:     time.Now,
	}
}

func (m scoreModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.score}
	if m.events != nil {
		cmds = append(cmds, waitForEvent(m.events))
	}
	return tea.Batch(cmds...)
}

func (m scoreModel) score() tea.Msg {
	r, err := m.scorer.Score(m.ctx, m.article)
	return scoreDoneMsg{result: r, err: err}
}

func (m scoreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scoreDoneMsg:
		m.done = true
		m.result, m.err = msg.result, msg.err
		return m, tea.Quit
	case engineEventMsg:
		if msg.Kind == engine.EventScoreStarted {
			m.label = msg.Provider.Label() + " / " + msg.Model
			m.started = msg.Timestamp
		}
		return m, waitForEvent(m.events)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "esc" {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.started.IsZero() {
			m.started = m.now()
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m scoreModel) View() string {
	if m.done {
		return ""
	}

	elapsed := time.Duration(0)
	if !m.started.IsZero() {
		elapsed = m.now().Sub(m.started)
	}

	return m.spinner.View() + " Scoring with " + m.label + " " + dimStyle.Render(fmtDuration(elapsed)) + "\n"
}
