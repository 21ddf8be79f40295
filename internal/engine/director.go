package engine

import (
	"context"
	"fmt"
	"slices"

	"goose-server/internal/domain"
	"goose-server/internal/infrastructure/storage"
	"goose-server/internal/systems"
	"goose-server/pkg/api"
	"goose-server/pkg/rng"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Scene - состояние директора
type Scene uint8

const (
	SceneTitle Scene = iota
	SceneChallengeSelect
	SceneRecords
	SceneIntro
	SceneTutorial
	SceneMaze
	SceneEnding
	SceneQuit
)

var sceneToString = map[Scene]string{
	SceneTitle:           "TITLE",
	SceneChallengeSelect: "CHALLENGE_SELECT",
	SceneRecords:         "RECORDS",
	SceneIntro:           "INTRO",
	SceneTutorial:        "TUTORIAL",
	SceneMaze:            "MAZE",
	SceneEnding:          "ENDING",
	SceneQuit:            "QUIT",
}

func (s Scene) String() string {
	if val, ok := sceneToString[s]; ok {
		return val
	}
	return "UNKNOWN"
}

// EventKind - абстрактное событие ввода
type EventKind uint8

const (
	EventFrame     EventKind = iota // кадр: Dt и удерживаемое направление
	EventChoose                     // выбор пункта меню (Choice)
	EventBack                       // назад / отмена
	EventSkip                       // пропустить обучение
	EventGamble                     // рулетка у торговца
	EventSafeTrade                  // безопасная сделка
)

// Event - одно событие для Dispatch
type Event struct {
	Kind   EventKind
	Choice int
	Dx, Dy float64
	Dt     float64
}

// Пункты меню
const (
	TitleStart = iota
	TitleChallenge
	TitleRecords
	TitleQuit
)

const (
	IntroGreedy = iota
	IntroRestrained
	IntroRefuse
)

const (
	EndingRetry = iota
	EndingToTitle
)

var challengeMenu = []domain.Challenge{
	domain.ChallengeNoGreed,
	domain.ChallengeGreedOverdrive,
	domain.ChallengeGamblerCurse,
}

// Данные сцен. Ровно одно значение активно, по нему же определяется сцена.
type sceneData interface {
	scene() Scene
}

type titleData struct{}
type challengeData struct{}
type recordsData struct {
	snap    storage.Snapshot
	history []storage.RunEntry
}
type introData struct{}
type tutorialData struct{ run *Run }
type mazeData struct{ run *Run }
type endingData struct{ result RunResult }
type quitData struct{}

func (titleData) scene() Scene     { return SceneTitle }
func (challengeData) scene() Scene { return SceneChallengeSelect }
func (recordsData) scene() Scene   { return SceneRecords }
func (introData) scene() Scene     { return SceneIntro }
func (tutorialData) scene() Scene  { return SceneTutorial }
func (mazeData) scene() Scene      { return SceneMaze }
func (endingData) scene() Scene    { return SceneEnding }
func (quitData) scene() Scene      { return SceneQuit }

// Director - конечный автомат сцен с единым диспетчером событий
type Director struct {
	app  *AppContext
	data sceneData

	// выбор текущей сессии, переживает retry
	challenge domain.Challenge
	greedy    bool
}

// NewDirector начинает с титульного экрана
func NewDirector(app *AppContext) *Director {
	return &Director{app: app, data: titleData{}}
}

// ChallengeChoices - пункты меню испытаний по порядку
func ChallengeChoices() []domain.Challenge {
	return slices.Clone(challengeMenu)
}

// Config - конфиг процесса
func (d *Director) Config() Config {
	return d.app.Config
}

// Scene - текущая сцена
func (d *Director) Scene() Scene {
	return d.data.scene()
}

// Run - активный забег (обучение или лабиринт), nil в меню
func (d *Director) Run() *Run {
	switch data := d.data.(type) {
	case tutorialData:
		return data.run
	case mazeData:
		return data.run
	}
	return nil
}

// Result - итог последнего забега на экране концовки
func (d *Director) Result() (RunResult, bool) {
	if data, ok := d.data.(endingData); ok {
		return data.result, true
	}
	return RunResult{}, false
}

// Records - рекорды и журнал, открытые на экране рекордов
func (d *Director) Records() (storage.Snapshot, []storage.RunEntry, bool) {
	if data, ok := d.data.(recordsData); ok {
		return data.snap, data.history, true
	}
	return storage.Snapshot{}, nil, false
}

// Dispatch - единая точка входа для всех событий
func (d *Director) Dispatch(ctx context.Context, ev Event) error {
	before := d.Scene()

	var err error
	switch data := d.data.(type) {
	case titleData:
		err = d.onTitle(ev)
	case challengeData:
		err = d.onChallengeSelect(ev)
	case recordsData:
		d.onRecords(ev)
	case introData:
		err = d.onIntro(ctx, ev)
	case tutorialData:
		err = d.onTutorial(data, ev)
	case mazeData:
		err = d.onMaze(ctx, data, ev)
	case endingData:
		err = d.onEnding(ev)
	case quitData:
		return nil
	}

	if after := d.Scene(); after != before {
		d.app.Log.WithFields(logrus.Fields{"from": before.String(), "to": after.String()}).Debug("Scene changed")
	}
	return err
}

func choose(ev Event, count int) (int, bool, error) {
	if ev.Kind != EventChoose {
		return 0, false, nil
	}
	if err := (api.ChoicePayload{Index: ev.Choice, Count: count}).Validate(); err != nil {
		return 0, false, err
	}
	return ev.Choice, true, nil
}

func (d *Director) onTitle(ev Event) error {
	choice, ok, err := choose(ev, 4)
	if !ok {
		return err
	}
	switch choice {
	case TitleStart:
		d.challenge = domain.ChallengeNone
		d.data = introData{}
	case TitleChallenge:
		d.data = challengeData{}
	case TitleRecords:
		history, err := d.app.Recorder.History()
		if err != nil {
			d.app.Log.WithError(err).Warn("Run history unavailable")
		}
		d.data = recordsData{snap: d.app.Recorder.Snapshot(), history: history}
	case TitleQuit:
		d.data = quitData{}
	}
	return nil
}

func (d *Director) onChallengeSelect(ev Event) error {
	if ev.Kind == EventBack {
		d.data = titleData{}
		return nil
	}
	choice, ok, err := choose(ev, len(challengeMenu))
	if !ok {
		return err
	}
	d.challenge = challengeMenu[choice]
	d.data = introData{}
	return nil
}

func (d *Director) onRecords(ev Event) {
	if ev.Kind == EventBack || ev.Kind == EventChoose {
		d.data = titleData{}
	}
}

func (d *Director) onIntro(ctx context.Context, ev Event) error {
	choice, ok, err := choose(ev, 3)
	if !ok {
		return err
	}

	if choice == IntroRefuse {
		// Отказ от сделки: концовка без забега
		stats := domain.NewRunStats(0, d.app.Config.Difficulty, d.challenge, false)
		stats.Alive = true
		b := d.app.Config.Balance
		res := RunResult{
			RunID:   uuid.NewString(),
			Outcome: OutcomeRefused,
			Ending:  domain.EndingHeavenWorker,
			Stats:   *stats,
		}
		res.Score = systems.CalculateScore(stats, b)
		res.Rank = systems.CalculateRank(res.Score, b)
		d.app.Recorder.FinishRun(ctx, &res)
		d.data = endingData{result: res}
		return nil
	}

	d.greedy = choice == IntroGreedy
	run, err := NewRun(d.config(), d.seed(), d.greedy, true)
	if err != nil {
		return err
	}
	d.data = tutorialData{run: run}
	return nil
}

func (d *Director) onTutorial(data tutorialData, ev Event) error {
	switch ev.Kind {
	case EventSkip:
		return d.startMaze()
	case EventFrame:
		if data.run.Step(Input{Dx: ev.Dx, Dy: ev.Dy}, ev.Dt) != OutcomeRunning {
			return d.startMaze()
		}
	}
	return nil
}

func (d *Director) onMaze(ctx context.Context, data mazeData, ev Event) error {
	var err error
	switch ev.Kind {
	case EventFrame:
		data.run.Step(Input{Dx: ev.Dx, Dy: ev.Dy}, ev.Dt)
	case EventGamble:
		_, err = data.run.Gamble()
	case EventSafeTrade:
		_, err = data.run.SafeTrade()
	}

	if data.run.Over() {
		res, _ := data.run.Result()
		d.app.Recorder.FinishRun(ctx, &res)
		d.data = endingData{result: res}
	}
	return err
}

func (d *Director) onEnding(ev Event) error {
	choice, ok, err := choose(ev, 2)
	if !ok {
		return err
	}
	if choice == EndingRetry {
		return d.startMaze()
	}
	d.data = titleData{}
	return nil
}

func (d *Director) startMaze() error {
	run, err := NewRun(d.config(), d.seed(), d.greedy, false)
	if err != nil {
		return fmt.Errorf("start maze: %w", err)
	}
	d.data = mazeData{run: run}
	return nil
}

// config - конфиг процесса с испытанием, выбранным в меню
func (d *Director) config() Config {
	cfg := d.app.Config
	cfg.Challenge = d.challenge
	return cfg
}

// seed - зерно из конфига или новое случайное
func (d *Director) seed() int64 {
	if d.app.Config.Seed != 0 {
		return d.app.Config.Seed
	}
	return rng.RandomSeed()
}

// HUD - снимок для интерфейса
func (d *Director) HUD() api.HUD {
	var hud api.HUD
	if run := d.Run(); run != nil {
		hud = run.HUD()
	}
	hud.Scene = d.Scene().String()
	return hud
}

// EndingView - экран концовки
func (d *Director) EndingView() (api.EndingView, bool) {
	res, ok := d.Result()
	if !ok {
		return api.EndingView{}, false
	}
	view := api.EndingView{
		Kind:        string(res.Ending),
		Name:        res.Ending.Name(),
		Description: res.Ending.Description(),
		Score:       res.Score,
		Rank:        string(res.Rank),
	}
	for _, id := range res.NewAchievements {
		if a, ok := domain.FindAchievement(id); ok {
			view.Achievements = append(view.Achievements, a.Name)
		}
	}
	return view, true
}
