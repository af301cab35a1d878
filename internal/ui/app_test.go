package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/johanforsgren/reporoulette/internal/domain"
	"github.com/johanforsgren/reporoulette/internal/roulette"
	"github.com/johanforsgren/reporoulette/internal/ui/views"
)

type stubFetcher struct {
	outcome roulette.Outcome
	calls   int
}

func (f *stubFetcher) Execute(ctx context.Context, req roulette.Request) roulette.Outcome {
	f.calls++
	return f.outcome
}

func newTestModel(fetcher views.Fetcher) Model {
	m := NewModel(context.Background(), fetcher)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(k)
		m = updated.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// fetchResult runs cmd until it yields a FetchCompletedMsg.
func fetchResult(t *testing.T, cmd tea.Cmd) views.FetchCompletedMsg {
	t.Helper()
	pending := []tea.Cmd{cmd}
	for len(pending) > 0 {
		next := pending[0]
		pending = pending[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case views.FetchCompletedMsg:
			return msg
		case tea.BatchMsg:
			pending = append(pending, msg...)
		}
	}
	t.Fatal("no FetchCompletedMsg produced")
	return views.FetchCompletedMsg{}
}

func TestModel_StartsOnHome(t *testing.T) {
	m := newTestModel(&stubFetcher{})

	if m.state != ViewHome {
		t.Errorf("expected home tab, got %v", m.state)
	}
	if !strings.Contains(ansi.Strip(m.View()), "Welcome to your awesome app") {
		t.Error("expected home content in view")
	}
}

func TestModel_ViewBeforeResize(t *testing.T) {
	m := NewModel(context.Background(), &stubFetcher{})
	if m.View() != "Loading..." {
		t.Errorf("unexpected view before first resize: %q", m.View())
	}
}

func TestModel_TabCyclesViews(t *testing.T) {
	m := newTestModel(&stubFetcher{})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != ViewRoulette {
		t.Fatalf("expected roulette tab, got %v", m.state)
	}
	if !m.rouletteView.IsEditing() {
		t.Error("expected username input to be focused on mount")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != ViewHome {
		t.Errorf("expected tab to wrap to home, got %v", m.state)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != ViewRoulette {
		t.Errorf("expected shift+tab to go back to roulette, got %v", m.state)
	}
}

func TestModel_NumberKeysOnlyOutsideInput(t *testing.T) {
	m := newTestModel(&stubFetcher{})

	m, _ = press(t, m, runes("2"))
	if m.state != ViewRoulette {
		t.Fatalf("expected roulette tab, got %v", m.state)
	}

	m, _ = press(t, m, runes("1"))
	if m.state != ViewRoulette {
		t.Error("digits typed into the username must not switch tabs")
	}
	if m.rouletteView.Session().Username() != "1" {
		t.Errorf("expected digit in username, got %q", m.rouletteView.Session().Username())
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, runes("1"))
	if m.state != ViewHome {
		t.Errorf("expected 1 to switch to home once input is blurred, got %v", m.state)
	}
}

func TestModel_QuitKeys(t *testing.T) {
	m := newTestModel(&stubFetcher{})

	_, cmd := press(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command from q on home tab")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}

	m, _ = press(t, m, runes("2"), runes("q"))
	if m.rouletteView.Session().Username() != "q" {
		t.Errorf("q should be typed into the username, got %q", m.rouletteView.Session().Username())
	}

	_, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected ctrl+c to quit while editing")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg from ctrl+c")
	}
}

func TestModel_FetchSuccessUpdatesBars(t *testing.T) {
	repo := &domain.Repository{Name: "Hello-World", FullName: "octocat/Hello-World", OwnerLogin: "octocat", StarCount: 42}
	fetcher := &stubFetcher{outcome: roulette.Outcome{Kind: roulette.OutcomeRandomRepo, Repository: repo}}
	m := newTestModel(fetcher)

	m, _ = press(t, m, runes("2"), runes("octocat"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.rouletteView.Session().IsLoading() {
		t.Fatal("expected loading after enter")
	}

	updated, _ := m.Update(fetchResult(t, cmd))
	m = updated.(Model)

	if fetcher.calls != 1 {
		t.Errorf("expected exactly one fetch, got %d", fetcher.calls)
	}
	if !strings.Contains(m.statusBar.Message(), "octocat/Hello-World") {
		t.Errorf("expected status message, got %q", m.statusBar.Message())
	}
	if !strings.Contains(ansi.Strip(m.View()), "Hello-World") {
		t.Error("expected repository card in view")
	}
}

func TestModel_FetchFailureShowsError(t *testing.T) {
	fetcher := &stubFetcher{outcome: roulette.Outcome{Kind: roulette.OutcomeNetworkFailure}}
	m := newTestModel(fetcher)

	m, cmd := m.commandRegistry.ExecuteCommand(m, ParseCommand(":fetch octocat"))
	updated, _ := m.Update(fetchResult(t, cmd))
	m = updated.(Model)

	if !m.statusBar.IsError() || m.statusBar.Message() != roulette.MsgNetworkFailure {
		t.Errorf("expected network failure message, got %q", m.statusBar.Message())
	}
}

func TestModel_LeavingRouletteDropsInFlightResult(t *testing.T) {
	repo := &domain.Repository{Name: "late", FullName: "octocat/late", OwnerLogin: "octocat"}
	fetcher := &stubFetcher{outcome: roulette.Outcome{Kind: roulette.OutcomeRandomRepo, Repository: repo}}
	m := newTestModel(fetcher)

	m, cmd := m.commandRegistry.ExecuteCommand(m, ParseCommand(":fetch octocat"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != ViewHome {
		t.Fatalf("expected tab to leave roulette while loading, got %v", m.state)
	}

	updated, _ := m.Update(fetchResult(t, cmd))
	m = updated.(Model)

	if m.rouletteView.Session().State().Status != roulette.StatusIdle {
		t.Errorf("late result changed state to %s", m.rouletteView.Session().State().Status)
	}
	if strings.Contains(m.statusBar.Message(), "octocat/late") {
		t.Error("late result must not reach the status bar")
	}
}

func TestModel_CommandBarFlow(t *testing.T) {
	m := newTestModel(&stubFetcher{})

	m, _ = press(t, m, runes(":"))
	if !m.commandBar.IsActive() {
		t.Fatal("expected command bar to open")
	}
	if !strings.Contains(ansi.Strip(m.View()), ":") {
		t.Error("expected command bar in view")
	}

	m, _ = press(t, m, runes("repos"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.commandBar.IsActive() {
		t.Error("expected command bar to close after enter")
	}
	if m.state != ViewRoulette {
		t.Errorf("expected :repos to open roulette tab, got %v", m.state)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, runes(":"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.commandBar.IsActive() {
		t.Error("expected esc to close the command bar")
	}
}

func TestModel_LogsOverlay(t *testing.T) {
	m := newTestModel(&stubFetcher{})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if !m.logsView.IsActive() {
		t.Fatal("expected logs overlay")
	}
	if !strings.Contains(ansi.Strip(m.View()), "Session Logs") {
		t.Error("expected logs in view")
	}

	m, _ = press(t, m, runes("q"))
	if m.logsView.IsActive() {
		t.Error("expected q to close the logs overlay")
	}
}

func TestViewState_Cycle(t *testing.T) {
	if ViewHome.next() != ViewRoulette || ViewRoulette.next() != ViewHome {
		t.Error("next should cycle through tabs")
	}
	if ViewHome.prev() != ViewRoulette || ViewRoulette.prev() != ViewHome {
		t.Error("prev should cycle through tabs")
	}
	if ViewRoulette.String() != "GitHub Repos" {
		t.Errorf("unexpected name %q", ViewRoulette.String())
	}
}

func TestModel_LeavingRouletteClearsPickedContext(t *testing.T) {
	repo := &domain.Repository{Name: "Hello-World", FullName: "octocat/Hello-World", OwnerLogin: "octocat"}
	fetcher := &stubFetcher{outcome: roulette.Outcome{Kind: roulette.OutcomeRandomRepo, Repository: repo}}
	m := newTestModel(fetcher)

	m, cmd := m.commandRegistry.ExecuteCommand(m, ParseCommand(":fetch octocat"))
	updated, _ := m.Update(fetchResult(t, cmd))
	m = updated.(Model)
	if !strings.Contains(ansi.Strip(m.topBar.View()), "octocat/Hello-World") {
		t.Fatal("expected picked repository in top bar")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != ViewHome {
		t.Fatalf("expected home after tab, got %v", m.state)
	}
	if strings.Contains(ansi.Strip(m.topBar.View()), "octocat/Hello-World") {
		t.Error("picked repository should not outlive the roulette tab")
	}
}

func TestModel_RetryClearsStaleError(t *testing.T) {
	fetcher := &stubFetcher{outcome: roulette.Outcome{Kind: roulette.OutcomeNetworkFailure}}
	m := newTestModel(fetcher)

	m, cmd := m.commandRegistry.ExecuteCommand(m, ParseCommand(":fetch octocat"))
	updated, _ := m.Update(fetchResult(t, cmd))
	m = updated.(Model)
	if !m.statusBar.IsError() {
		t.Fatal("expected error status after failure")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.rouletteView.Session().IsLoading() {
		t.Fatal("expected enter to start a new fetch")
	}
	if m.statusBar.IsError() || m.statusBar.Message() != "" {
		t.Errorf("expected stale error to be cleared, got %q", m.statusBar.Message())
	}
}
