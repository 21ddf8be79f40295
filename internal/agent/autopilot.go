package agent

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"goose-server/internal/domain"
	"goose-server/internal/engine"
	"goose-server/pkg/api"
	"goose-server/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// TradePolicy - как автопилот ведет себя у торговца
type TradePolicy uint8

const (
	TradeNever TradePolicy = iota
	TradeGamble
	TradeSafe
)

var tradePolicyToString = map[TradePolicy]string{
	TradeNever:  "never",
	TradeGamble: "gamble",
	TradeSafe:   "safe",
}

func (p TradePolicy) String() string {
	if val, ok := tradePolicyToString[p]; ok {
		return val
	}
	return "unknown"
}

// ParseTradePolicy переводит строку флага в политику. Неизвестное значение = never.
func ParseTradePolicy(s string) TradePolicy {
	for p, name := range tradePolicyToString {
		if name == s {
			return p
		}
	}
	return TradeNever
}

// ErrFrameBudget - забег не закончился за отведенное число кадров
var ErrFrameBudget = errors.New("frame budget exhausted")

// hungryRatio - ниже этой доли сытости автопилот идет за едой
const hungryRatio = 0.4

// Options - решения, которые за игрока принимает автопилот
type Options struct {
	Challenge domain.Challenge
	Bargain   int // IntroGreedy / IntroRestrained / IntroRefuse
	Trade     TradePolicy

	// TradesPerMerchant - сколько сделок у одного торговца, 0 = 1
	TradesPerMerchant int
	PlayTutorial      bool
	MaxFrames         int
}

// Autopilot - безголовый игрок. Как и живой игрок, общается с движком только
// через события директора, а решения принимает по HUD и карте текущего забега.
//
// Жизненный цикл:
//  1. Play -> меню: испытание, выбор в интро.
//  2. Обучение пропускается (или проходится, если PlayTutorial).
//  3. Каждый кадр: выбрать цель, сделать шаг к следующей клетке маршрута, поторговать.
//  4. Директор переходит на экран концовки -> Play возвращает итог.
type Autopilot struct {
	director *engine.Director
	opts     Options
	dt       float64

	trades map[int]int // id торговца -> число сделок
	log    *logrus.Entry
}

func New(d *engine.Director, opts Options) *Autopilot {
	if opts.TradesPerMerchant <= 0 {
		opts.TradesPerMerchant = 1
	}
	fps := d.Config().FrameRate
	if opts.MaxFrames <= 0 {
		opts.MaxFrames = fps * 60 * 30
	}
	return &Autopilot{
		director: d,
		opts:     opts,
		dt:       1 / float64(fps),
		trades:   make(map[int]int),
		log:      logger.Component("autopilot"),
	}
}

// Play проводит одну партию от титульного экрана до концовки
func (a *Autopilot) Play(ctx context.Context) (engine.RunResult, error) {
	if err := a.navigateMenus(ctx); err != nil {
		return engine.RunResult{}, err
	}

	for frame := 0; frame < a.opts.MaxFrames; frame++ {
		if err := ctx.Err(); err != nil {
			return engine.RunResult{}, err
		}

		switch a.director.Scene() {
		case engine.SceneEnding:
			res, _ := a.director.Result()
			return res, nil
		case engine.SceneTutorial:
			if !a.opts.PlayTutorial {
				if err := a.send(ctx, engine.Event{Kind: engine.EventSkip}); err != nil {
					return engine.RunResult{}, err
				}
				continue
			}
		case engine.SceneMaze:
		default:
			return engine.RunResult{}, fmt.Errorf("unexpected scene %s", a.director.Scene())
		}

		if err := a.frame(ctx); err != nil {
			return engine.RunResult{}, err
		}
	}

	return engine.RunResult{}, fmt.Errorf("%w after %d frames", ErrFrameBudget, a.opts.MaxFrames)
}

func (a *Autopilot) navigateMenus(ctx context.Context) error {
	if a.opts.Challenge == domain.ChallengeNone {
		return a.send(ctx, choose(engine.TitleStart), choose(a.opts.Bargain))
	}

	idx := slices.Index(engine.ChallengeChoices(), a.opts.Challenge)
	if idx < 0 {
		return fmt.Errorf("challenge %s is not selectable", a.opts.Challenge)
	}
	return a.send(ctx, choose(engine.TitleChallenge), choose(idx), choose(a.opts.Bargain))
}

func choose(i int) engine.Event {
	return engine.Event{Kind: engine.EventChoose, Choice: i}
}

func (a *Autopilot) send(ctx context.Context, events ...engine.Event) error {
	for _, ev := range events {
		if err := a.director.Dispatch(ctx, ev); err != nil {
			return fmt.Errorf("%s: %w", a.director.Scene(), err)
		}
	}
	return nil
}

// frame - один кадр: торговля, если торговец рядом, иначе шаг по маршруту
func (a *Autopilot) frame(ctx context.Context) error {
	run := a.director.Run()
	hud := a.director.HUD()

	if hud.MerchantNearby && a.tryTrade(ctx, run) {
		return nil
	}

	dx, dy := a.steer(run, hud)
	if dx != 0 || dy != 0 {
		if err := (api.DirectionPayload{Dx: dx, Dy: dy}).Validate(); err != nil {
			return err
		}
	}
	return a.send(ctx, engine.Event{Kind: engine.EventFrame, Dx: float64(dx), Dy: float64(dy), Dt: a.dt})
}

// tryTrade - true, если в этом кадре была сделка
func (a *Autopilot) tryTrade(ctx context.Context, run *engine.Run) bool {
	m := run.Merchant()
	if m == nil || !a.wantsTrade(run, m) {
		return false
	}

	payload := api.TradePayload{Mode: "gamble"}
	kind := engine.EventGamble
	if a.opts.Trade == TradeSafe {
		payload.Mode = "safe"
		kind = engine.EventSafeTrade
	}
	if err := payload.Validate(); err != nil {
		return false
	}

	a.trades[m.ID]++
	err := a.director.Dispatch(ctx, engine.Event{Kind: kind})
	if err != nil {
		a.log.WithError(err).WithField("merchant", m.ID).Debug("Trade refused")
		return false
	}
	a.log.WithFields(logrus.Fields{
		"merchant": m.ID,
		"mode":     payload.Mode,
		"eggs":     run.Player.Eggs,
	}).Debug("Traded")
	return true
}

func (a *Autopilot) wantsTrade(run *engine.Run, m *domain.Merchant) bool {
	if a.opts.Trade == TradeNever || a.trades[m.ID] >= a.limitFor(run) {
		return false
	}
	return run.Player.Eggs >= a.tradeCost()
}

// limitFor - проклятию игрока нужно 5 сделок, торгуем сколько хватит яиц
func (a *Autopilot) limitFor(run *engine.Run) int {
	if run.Stats.Challenge == domain.ChallengeGamblerCurse {
		return math.MaxInt
	}
	return a.opts.TradesPerMerchant
}

func (a *Autopilot) tradeCost() int {
	b := a.director.Config().Balance
	if a.opts.Trade == TradeSafe {
		return b.SafeTradeEggCost
	}
	return b.RouletteEggCost
}

// steer возвращает направление на этот кадр
func (a *Autopilot) steer(run *engine.Run, hud api.HUD) (int, int) {
	tile := run.Player.Tile()
	goal := a.goal(run, hud)

	route := run.Maze.Route(tile, goal)
	if len(route) < 2 {
		route = run.Maze.Route(tile, run.Maze.Exit)
	}
	if len(route) < 2 {
		return 0, 0
	}

	// Сначала выравниваемся по центру клетки поперек хода, потом шагаем к следующей
	next := route[1]
	pos := run.Player.Pos
	tol := run.Player.Speed() * a.dt / 2
	center := tile.Center()
	target := next.Center()

	if next.X != tile.X {
		if d := center.Y - pos.Y; math.Abs(d) > tol {
			return 0, sign(d)
		}
		return sign(target.X - pos.X), 0
	}
	if d := center.X - pos.X; math.Abs(d) > tol {
		return sign(d), 0
	}
	return 0, sign(target.Y - pos.Y)
}

// goal - куда идти: еда при голоде, торговец, яйца для жадного, иначе выход
func (a *Autopilot) goal(run *engine.Run, hud api.HUD) domain.TilePos {
	p := run.Player
	tile := p.Tile()

	wanted := mapset.New[string]()
	if p.HungerRatio() < hungryRatio {
		wanted.Put(domain.ItemFood.String())
	}
	if a.greedy(run) {
		wanted.Put(domain.ItemGoldenEgg.String())
	}

	best, bestLen := run.Maze.Exit, math.MaxInt
	for _, obj := range hud.Objects {
		t := domain.TilePos{X: obj.X, Y: obj.Y}
		switch {
		case wanted.Has(obj.Type):
		case obj.Type == "MERCHANT":
			m := run.Maze.MerchantNear(t.Center(), 0)
			if m == nil || !a.wantsTrade(run, m) || t.Chebyshev(tile) <= 1 {
				continue
			}
		default:
			continue
		}
		if l := len(run.Maze.Route(tile, t)); l > 0 && l < bestLen {
			best, bestLen = t, l
		}
	}
	return best
}

// greedy - собирать ли яйца. Без жадности яйца берутся только по пути.
func (a *Autopilot) greedy(run *engine.Run) bool {
	switch run.Stats.Challenge {
	case domain.ChallengeNoGreed:
		return false
	case domain.ChallengeGreedOverdrive, domain.ChallengeGamblerCurse:
		return true
	}
	return a.opts.Bargain == engine.IntroGreedy || a.opts.Trade != TradeNever
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
