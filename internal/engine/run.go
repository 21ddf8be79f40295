package engine

import (
	"errors"
	"fmt"

	"goose-server/internal/domain"
	"goose-server/internal/systems"
	"goose-server/pkg/api"
	"goose-server/pkg/logger"
	"goose-server/pkg/maze"
	"goose-server/pkg/rng"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoMerchantNearby = errors.New("no merchant nearby")
	ErrRunOver          = errors.New("run is over")
)

// Outcome - чем закончился (или не закончился) забег
type Outcome uint8

const (
	OutcomeRunning Outcome = iota
	OutcomeExit
	OutcomeStarved
	OutcomeChallengeFailed
	OutcomeRefused // отказ в интро, лабиринта не было
)

var outcomeToString = map[Outcome]string{
	OutcomeRunning:         "RUNNING",
	OutcomeExit:            "EXIT",
	OutcomeStarved:         "STARVED",
	OutcomeChallengeFailed: "CHALLENGE_FAILED",
	OutcomeRefused:         "REFUSED",
}

func (o Outcome) String() string {
	if val, ok := outcomeToString[o]; ok {
		return val
	}
	return "UNKNOWN"
}

// Input - ввод одного кадра: направление, которое держит игрок
type Input struct {
	Dx, Dy float64
}

// RunResult - итог завершенного забега
type RunResult struct {
	RunID   string
	Outcome Outcome
	Ending  domain.EndingKind
	Score   int
	Rank    domain.Rank
	Stats   domain.RunStats

	NewAchievements []domain.AchievementID
}

// merchantReach - с какого расстояния (в клетках) можно торговать
const merchantReach = 1

// Run - один забег по лабиринту. Все случайные числа забега идут из одного потока:
// сначала генерация, затем еда и сделки в порядке их совершения.
type Run struct {
	ID       string
	Tutorial bool

	Maze   *maze.Maze
	Player *domain.Player
	Stats  *domain.RunStats

	stream  *rng.Stream
	balance domain.Balance

	outcome    Outcome
	failReason string
	popup      string

	log *logrus.Entry
}

// NewRun генерирует лабиринт и ставит игрока на старт
func NewRun(cfg Config, seed int64, greedy, tutorial bool) (*Run, error) {
	w, h := cfg.MazeWidth, cfg.MazeHeight
	challenge := cfg.Challenge
	if tutorial {
		w, h = cfg.TutorialWidth, cfg.TutorialHeight
		challenge = domain.ChallengeNone
	}

	stream := rng.New(seed)
	m, err := maze.NewBuilder(stream).WithSize(w, h).WithBalance(cfg.Balance).Build()
	if err != nil {
		return nil, fmt.Errorf("new run: %w", err)
	}

	r := &Run{
		ID:       uuid.NewString(),
		Tutorial: tutorial,
		Maze:     m,
		Player:   domain.NewPlayer(m.Start, cfg.Difficulty, cfg.Balance),
		Stats:    domain.NewRunStats(seed, cfg.Difficulty, challenge, greedy),
		stream:   stream,
		balance:  cfg.Balance,
	}
	r.log = logger.Log.WithFields(logrus.Fields{
		"component": "run",
		"run_id":    r.ID,
		"seed":      seed,
	})
	r.log.WithFields(logrus.Fields{
		"tutorial":   tutorial,
		"difficulty": cfg.Difficulty.String(),
		"challenge":  challenge.String(),
		"merchants":  len(m.Merchants),
		"items":      len(m.Items),
	}).Info("Run started")

	return r, nil
}

// Outcome - текущее состояние забега
func (r *Run) Outcome() Outcome {
	return r.outcome
}

// Over - забег завершен
func (r *Run) Over() bool {
	return r.outcome != OutcomeRunning
}

// FailReason - причина провала испытания
func (r *Run) FailReason() string {
	return r.failReason
}

// Step продвигает забег на один кадр: испытание, движение, подбор, выход, тик игрока.
func (r *Run) Step(in Input, dt float64) Outcome {
	if r.Over() {
		return r.outcome
	}

	if reason := r.checkChallenge(); reason != "" {
		r.failChallenge(reason)
		return r.outcome
	}

	if in.Dx != 0 || in.Dy != 0 {
		systems.MovePlayer(r.Player, in.Dx, in.Dy, r.Maze, dt)
		for _, res := range systems.CollectAt(r.Player, r.Maze, r.Stats, r.stream, r.balance) {
			r.popup = "Picked up " + res.Item.Kind.String()
		}

		tile := r.Player.Tile()
		if r.Maze.IsExit(tile.X, tile.Y) {
			if reason := r.checkExitChallenge(); reason != "" {
				r.failChallenge(reason)
			} else {
				r.finish(OutcomeExit)
			}
			return r.outcome
		}
	}

	r.Player.Tick(dt)
	r.Stats.PlayTime += dt
	if r.Player.HungerRatio() >= r.balance.HungerCriticalRatio {
		r.Stats.Hunger90PlusTime += dt
	}

	if !r.Player.Alive {
		r.Stats.DiedByHunger = r.Player.DeathCause == domain.DeathByHunger
		r.finish(OutcomeStarved)
	}
	return r.outcome
}

// checkChallenge - условия, проверяемые каждый кадр
func (r *Run) checkChallenge() string {
	switch r.Stats.Challenge {
	case domain.ChallengeNoGreed:
		if r.Player.Eggs > 0 {
			return "picked up a golden egg"
		}
	case domain.ChallengeGreedOverdrive:
		if r.Stats.PlayTime >= r.balance.GreedOverdriveTimeLimit {
			return "time is up"
		}
	}
	return ""
}

// checkExitChallenge - условия, проверяемые у выхода
func (r *Run) checkExitChallenge() string {
	switch r.Stats.Challenge {
	case domain.ChallengeGreedOverdrive:
		if r.Player.Eggs < r.balance.GreedOverdriveTargetEggs {
			return fmt.Sprintf("reached the exit with %d of %d eggs", r.Player.Eggs, r.balance.GreedOverdriveTargetEggs)
		}
	case domain.ChallengeGamblerCurse:
		if r.Stats.TraderCount < r.balance.GamblerCurseMinTrades {
			return fmt.Sprintf("reached the exit after %d of %d trades", r.Stats.TraderCount, r.balance.GamblerCurseMinTrades)
		}
	}
	return ""
}

func (r *Run) failChallenge(reason string) {
	r.failReason = reason
	r.popup = "Challenge failed: " + reason
	r.Stats.ChallengeFailed = true
	r.finish(OutcomeChallengeFailed)
}

func (r *Run) finish(o Outcome) {
	r.outcome = o
	r.Stats.FinalEggs = r.Player.Eggs
	r.Stats.Alive = r.Player.Alive
	r.Stats.ReachedExit = o == OutcomeExit

	r.log.WithFields(logrus.Fields{
		"outcome":   o.String(),
		"eggs":      r.Stats.TotalEggs,
		"trades":    r.Stats.TraderCount,
		"bad":       r.Stats.BadEffectsCount,
		"secrets":   r.Stats.SecretRoomsFound,
		"play_time": fmt.Sprintf("%.1fs", r.Stats.PlayTime),
		"fail":      r.failReason,
		"rng_draws": r.stream.Draws(),
	}).Info("Run finished")
}

// Merchant - торговец в пределах досягаемости
func (r *Run) Merchant() *domain.Merchant {
	return r.Maze.MerchantNear(r.Player.Pos, merchantReach)
}

// Gamble - рулетка у ближайшего торговца
func (r *Run) Gamble() (domain.Effect, error) {
	m, err := r.tradeTarget()
	if err != nil {
		return domain.Effect{}, err
	}
	e, err := systems.Gamble(m, r.Player, r.Stats, r.stream, r.balance)
	r.tradePopup(e, err)
	return e, err
}

// SafeTrade - безопасная сделка у ближайшего торговца
func (r *Run) SafeTrade() (domain.Effect, error) {
	m, err := r.tradeTarget()
	if err != nil {
		return domain.Effect{}, err
	}
	e, err := systems.SafeTrade(m, r.Player, r.Stats, r.stream, r.balance)
	r.tradePopup(e, err)
	return e, err
}

func (r *Run) tradeTarget() (*domain.Merchant, error) {
	if r.Over() {
		return nil, ErrRunOver
	}
	m := r.Merchant()
	if m == nil {
		return nil, ErrNoMerchantNearby
	}
	return m, nil
}

func (r *Run) tradePopup(e domain.Effect, err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientCurrency):
		r.popup = "Not enough golden eggs"
	case err == nil:
		r.popup = "Got " + e.Kind.Label()
	}
}

// Result считает концовку, очки и ранг. Для незавершенного забега и обучения - false.
func (r *Run) Result() (RunResult, bool) {
	if !r.Over() || r.Tutorial {
		return RunResult{}, false
	}

	ending := domain.EndingHell
	if r.outcome != OutcomeChallengeFailed {
		ending = systems.DetermineEnding(r.Stats)
	}
	score := systems.CalculateScore(r.Stats, r.balance)

	return RunResult{
		RunID:   r.ID,
		Outcome: r.outcome,
		Ending:  ending,
		Score:   score,
		Rank:    systems.CalculateRank(score, r.balance),
		Stats:   *r.Stats,
	}, true
}

// HUD - снимок для отрисовки: атрибуты игрока и все, что в радиусе обзора
func (r *Run) HUD() api.HUD {
	p := r.Player
	tile := p.Tile()

	hud := api.HUD{
		RunID:     r.ID,
		Seed:      r.Stats.Seed,
		Tutorial:  r.Tutorial,
		Challenge: r.Stats.Challenge.String(),
		Time:      r.Stats.PlayTime,
		Grid:      &api.GridMeta{Width: r.Maze.Width, Height: r.Maze.Height},
		Popup:     r.popup,
		Player: &api.PlayerView{
			X:         p.Pos.X,
			Y:         p.Pos.Y,
			TileX:     tile.X,
			TileY:     tile.Y,
			Hunger:    p.Hunger,
			MaxHunger: p.MaxHunger,
			Eggs:      p.Eggs,
			Speed:     p.Speed(),
			Vision:    p.VisionRadius,
			Alive:     p.Alive,
		},
		MerchantNearby: !r.Over() && r.Merchant() != nil,
	}
	if r.Stats.Challenge == domain.ChallengeGreedOverdrive {
		hud.TimeLeft = max(0, r.balance.GreedOverdriveTimeLimit-r.Stats.PlayTime)
	}

	for _, e := range p.Effects {
		hud.Player.Effects = append(hud.Player.Effects, api.EffectView{
			Kind:      e.Kind.String(),
			Label:     e.Kind.Label(),
			Remaining: max(0, e.Remaining),
			Permanent: e.IsPermanent(),
		})
	}

	radius := p.VisionRadius
	visible := func(t domain.TilePos) bool {
		dx, dy := t.X-tile.X, t.Y-tile.Y
		return dx*dx+dy*dy <= radius*radius
	}

	for y := tile.Y - radius; y <= tile.Y+radius; y++ {
		for x := tile.X - radius; x <= tile.X+radius; x++ {
			t := domain.TilePos{X: x, Y: y}
			if !r.Maze.InBounds(x, y) || !visible(t) {
				continue
			}
			hud.Map = append(hud.Map, api.TileView{
				X:      x,
				Y:      y,
				IsWall: !r.Maze.IsWalkable(x, y),
				IsExit: r.Maze.IsExit(x, y),
			})
		}
	}

	for _, it := range r.Maze.Items {
		if !it.Picked && visible(it.Tile) {
			hud.Objects = append(hud.Objects, api.ObjectView{Type: it.Kind.String(), X: it.Tile.X, Y: it.Tile.Y})
		}
	}
	for _, m := range r.Maze.Merchants {
		if visible(m.Tile) {
			hud.Objects = append(hud.Objects, api.ObjectView{Type: "MERCHANT", X: m.Tile.X, Y: m.Tile.Y})
		}
	}
	return hud
}
