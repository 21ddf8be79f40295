package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"goose-server/internal/agent"
	"goose-server/internal/domain"
	"goose-server/internal/engine"
	"goose-server/internal/version"
	"goose-server/pkg/logger"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	// .env не обязателен, переменные окружения могут прийти и так
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
	logger.Init()
}

func main() {
	cfg := engine.NewConfig()
	cfg.DataDir = envOr("GOOSE_DATA_DIR", cfg.DataDir)
	cfg.StoreKind = envOr("GOOSE_STORE", cfg.StoreKind)
	cfg.BalancePath = os.Getenv("GOOSE_BALANCE")

	// 1. Флаги поверх окружения
	var difficulty, challenge, bargain, trade string
	var tradesPerMerchant int
	var playTutorial bool
	flag.Int64Var(&cfg.Seed, "seed", 0, "Maze seed (0 for random)")
	flag.StringVar(&difficulty, "difficulty", "normal", "easy | normal | hard")
	flag.StringVar(&challenge, "challenge", "none", "none | no-greed | greed-overdrive | gambler-curse")
	flag.StringVar(&bargain, "bargain", "restrained", "Intro choice: greedy | restrained | refuse")
	flag.StringVar(&trade, "trade", "never", "Merchant policy: never | gamble | safe")
	flag.IntVar(&tradesPerMerchant, "trades", 1, "Trades per merchant")
	flag.BoolVar(&playTutorial, "tutorial", false, "Play the tutorial instead of skipping it")
	flag.StringVar(&cfg.StoreKind, "store", cfg.StoreKind, "Records backend: yaml | sqlite")
	flag.StringVar(&cfg.DataDir, "data", cfg.DataDir, "Directory for records and run history")
	flag.StringVar(&cfg.BalancePath, "balance", cfg.BalancePath, "YAML file with balance overrides")
	flag.IntVar(&cfg.FrameRate, "fps", cfg.FrameRate, "Simulation frames per second")
	flag.Parse()

	logger.Log.Info("Starting Golden Goose...")
	logger.Log.Info(version.String())

	cfg.Difficulty = domain.ParseDifficulty(difficulty)
	cfg.Challenge = domain.ParseChallenge(challenge)

	balance, err := engine.LoadBalance(cfg.BalancePath)
	if err != nil {
		logger.Log.Fatal("Failed to load balance: ", err)
	}
	cfg.Balance = balance

	if cfg.Seed != 0 {
		logger.Log.Infof("🎲 Using explicit seed: %d", cfg.Seed)
	} else {
		logger.Log.Info("🎲 Using random seed")
	}

	choice, ok := bargainChoices[bargain]
	if !ok {
		logger.Log.Fatalf("Unknown bargain %q", bargain)
	}

	// 2. Контекст процесса
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := engine.NewAppContext(ctx, cfg)
	if err != nil {
		logger.Log.Fatal("Failed to start: ", err)
	}
	defer app.Close()

	// 3. Партия на автопилоте
	pilot := agent.New(engine.NewDirector(app), agent.Options{
		Challenge:         cfg.Challenge,
		Bargain:           choice,
		Trade:             agent.ParseTradePolicy(trade),
		TradesPerMerchant: tradesPerMerchant,
		PlayTutorial:      playTutorial,
	})

	res, err := pilot.Play(ctx)
	if err != nil {
		logger.Log.Error("Run aborted: ", err)
		return
	}

	printSummary(res, app.Recorder)
	logger.Log.Info("Done.")
}

var bargainChoices = map[string]int{
	"greedy":     engine.IntroGreedy,
	"restrained": engine.IntroRestrained,
	"refuse":     engine.IntroRefuse,
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printSummary(res engine.RunResult, rec *engine.Recorder) {
	p := message.NewPrinter(language.English)
	s := res.Stats

	p.Printf("\n%s - %s\n", res.Ending.Name(), res.Ending.Description())
	p.Printf("Run %s (seed %d, %s, %s)\n", res.RunID, s.Seed, s.Difficulty, s.Challenge)
	p.Printf("Score: %d  Rank: %s\n", res.Score, res.Rank)
	p.Printf("Eggs collected: %d, held at the end: %d\n", s.TotalEggs, s.FinalEggs)
	p.Printf("Trades: %d (bad effects %d), secret rooms: %d, food eaten: %d\n",
		s.TraderCount, s.BadEffectsCount, s.SecretRoomsFound, s.FoodEaten)
	p.Printf("Play time: %.1fs\n", s.PlayTime)
	p.Printf("Times seen this ending: %d\n", rec.EndingCount(res.Ending))

	for _, id := range res.NewAchievements {
		if a, ok := domain.FindAchievement(id); ok {
			p.Printf("Achievement unlocked: %s - %s\n", a.Name, a.Description)
		}
	}
}
