package engine

import (
	"context"
	"testing"

	"goose-server/internal/domain"
	"goose-server/internal/infrastructure/storage"
)

func newTestDirector(t *testing.T) *Director {
	t.Helper()
	dir := t.TempDir()

	cfg := NewConfig()
	cfg.Seed = 42
	cfg.MazeWidth, cfg.MazeHeight = 15, 11
	cfg.TutorialWidth, cfg.TutorialHeight = 7, 7
	cfg.DataDir = dir

	app := NewAppContextWithStore(context.Background(), cfg,
		storage.NewYAMLStore(dir+"/records.yaml"), storage.NewRunHistory(dir))
	t.Cleanup(func() { _ = app.Close() })
	return NewDirector(app)
}

func dispatch(t *testing.T, d *Director, events ...Event) {
	t.Helper()
	for _, ev := range events {
		if err := d.Dispatch(context.Background(), ev); err != nil {
			t.Fatalf("Dispatch(%+v) in %s: %v", ev, d.Scene(), err)
		}
	}
}

func choice(i int) Event { return Event{Kind: EventChoose, Choice: i} }

func TestDirector_Menus(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   Scene
	}{
		{"start", []Event{choice(TitleStart)}, SceneIntro},
		{"challenge menu", []Event{choice(TitleChallenge)}, SceneChallengeSelect},
		{"challenge back", []Event{choice(TitleChallenge), {Kind: EventBack}}, SceneTitle},
		{"records", []Event{choice(TitleRecords)}, SceneRecords},
		{"records back", []Event{choice(TitleRecords), {Kind: EventBack}}, SceneTitle},
		{"quit", []Event{choice(TitleQuit)}, SceneQuit},
		{"quit is final", []Event{choice(TitleQuit), choice(TitleStart)}, SceneQuit},
		{"frame in menu ignored", []Event{{Kind: EventFrame, Dt: 1}}, SceneTitle},
		{"tutorial", []Event{choice(TitleStart), choice(IntroGreedy)}, SceneTutorial},
		{"skip tutorial", []Event{choice(TitleStart), choice(IntroRestrained), {Kind: EventSkip}}, SceneMaze},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDirector(t)
			dispatch(t, d, tt.events...)
			if got := d.Scene(); got != tt.want {
				t.Errorf("scene = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDirector_InvalidChoice(t *testing.T) {
	d := newTestDirector(t)
	if err := d.Dispatch(context.Background(), choice(7)); err == nil {
		t.Error("expected error for out of range choice")
	}
	if d.Scene() != SceneTitle {
		t.Errorf("scene changed to %s", d.Scene())
	}
}

func TestDirector_RefuseBargain(t *testing.T) {
	d := newTestDirector(t)
	dispatch(t, d, choice(TitleStart), choice(IntroRefuse))

	if d.Scene() != SceneEnding {
		t.Fatalf("scene = %s, want ENDING", d.Scene())
	}
	view, ok := d.EndingView()
	if !ok || view.Kind != string(domain.EndingHeavenWorker) {
		t.Fatalf("ending view = %+v", view)
	}
	if got := d.app.Recorder.EndingCount(domain.EndingHeavenWorker); got != 1 {
		t.Errorf("HEAVEN_WORKER count = %d, want 1", got)
	}
	if !d.app.Recorder.IsUnlocked(domain.AchPerfectRestraint) {
		t.Error("perfect restraint should unlock")
	}
}

func TestDirector_ChallengeCarriedIntoMaze(t *testing.T) {
	d := newTestDirector(t)
	dispatch(t, d,
		choice(TitleChallenge), choice(0),
		choice(IntroGreedy), Event{Kind: EventSkip},
	)

	run := d.Run()
	if run == nil || run.Tutorial {
		t.Fatal("expected main maze run")
	}
	if run.Stats.Challenge != domain.ChallengeNoGreed {
		t.Fatalf("challenge = %s, want NO_GREED", run.Stats.Challenge)
	}

	run.Player.AddEggs(1)
	dispatch(t, d, Event{Kind: EventFrame, Dt: 0.1})

	res, ok := d.Result()
	if !ok {
		t.Fatalf("scene = %s, want ENDING", d.Scene())
	}
	if res.Ending != domain.EndingHell || res.Outcome != OutcomeChallengeFailed {
		t.Errorf("result = %s/%s, want HELL/CHALLENGE_FAILED", res.Ending, res.Outcome)
	}
}

func TestDirector_StarveThenRetry(t *testing.T) {
	d := newTestDirector(t)
	dispatch(t, d, choice(TitleStart), choice(IntroGreedy), Event{Kind: EventSkip})

	first := d.Run()
	first.Player.Hunger = 0.01
	dispatch(t, d, Event{Kind: EventFrame, Dt: 1})

	if d.Scene() != SceneEnding {
		t.Fatalf("scene = %s, want ENDING", d.Scene())
	}
	if got := d.app.Recorder.EndingCount(domain.EndingHell); got != 1 {
		t.Errorf("HELL count = %d, want 1", got)
	}
	history, err := d.app.Recorder.History()
	if err != nil || len(history) != 1 {
		t.Fatalf("history = %v, %v", history, err)
	}

	dispatch(t, d, choice(EndingRetry))
	second := d.Run()
	if d.Scene() != SceneMaze || second == nil || second == first {
		t.Fatal("retry should start a fresh maze run")
	}
	if second.Stats.Seed != first.Stats.Seed {
		t.Error("pinned seed should be reused on retry")
	}

	dispatch(t, d, Event{Kind: EventBack})
	if d.Scene() != SceneMaze {
		t.Error("back is ignored during a run")
	}
}

func TestDirector_TradeErrorsReported(t *testing.T) {
	d := newTestDirector(t)
	dispatch(t, d, choice(TitleStart), choice(IntroGreedy), Event{Kind: EventSkip})

	run := d.Run()
	run.Maze.Merchants = nil
	if err := d.Dispatch(context.Background(), Event{Kind: EventGamble}); err == nil {
		t.Error("expected error with no merchant nearby")
	}
	if d.Scene() != SceneMaze {
		t.Errorf("scene = %s, want MAZE", d.Scene())
	}
}

func TestDirector_HUD(t *testing.T) {
	d := newTestDirector(t)
	if hud := d.HUD(); hud.Scene != "TITLE" || hud.Player != nil {
		t.Errorf("title HUD = %+v", hud)
	}

	dispatch(t, d, choice(TitleStart), choice(IntroGreedy))
	hud := d.HUD()
	if hud.Scene != "TUTORIAL" || !hud.Tutorial || hud.Player == nil {
		t.Errorf("tutorial HUD = %+v", hud)
	}
}
