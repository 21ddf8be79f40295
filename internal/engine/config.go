package engine

import (
	"errors"
	"fmt"
	"os"

	"goose-server/internal/domain"
	"goose-server/pkg/maze"

	"gopkg.in/yaml.v3"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - зерно забега. 0 = случайное, выбирается при старте и пишется в статистику.
	Seed int64

	Difficulty domain.Difficulty
	Challenge  domain.Challenge

	MazeWidth      int
	MazeHeight     int
	TutorialWidth  int
	TutorialHeight int

	// Хранилище рекордов
	DataDir   string
	StoreKind string // yaml | sqlite

	// BalancePath - YAML с переопределением баланса, пусто = значения по умолчанию
	BalancePath string
	Balance     domain.Balance

	// FrameRate - кадров в секунду для безголового прогона (dt = 1/FrameRate)
	FrameRate int
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:           0,
		Difficulty:     domain.DifficultyNormal,
		Challenge:      domain.ChallengeNone,
		MazeWidth:      41,
		MazeHeight:     31,
		TutorialWidth:  15,
		TutorialHeight: 11,
		DataDir:        "data",
		StoreKind:      "yaml",
		Balance:        domain.DefaultBalance(),
		FrameRate:      60,
	}
}

// Mode - "challenge", если выбрано испытание, иначе "normal"
func (c Config) Mode() string {
	if c.Challenge != domain.ChallengeNone {
		return "challenge"
	}
	return "normal"
}

// Validate отсекает конфигурации, с которыми забег не построить.
// Вырожденный лабиринт ловится здесь, а не посреди забега.
func (c Config) Validate() error {
	if c.MazeWidth < maze.MinSize || c.MazeHeight < maze.MinSize {
		return fmt.Errorf("maze %dx%d: %w", c.MazeWidth, c.MazeHeight, domain.ErrGenerationDegenerate)
	}
	if c.TutorialWidth < maze.MinSize || c.TutorialHeight < maze.MinSize {
		return fmt.Errorf("tutorial %dx%d: %w", c.TutorialWidth, c.TutorialHeight, domain.ErrGenerationDegenerate)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive, got %d", c.FrameRate)
	}
	switch c.StoreKind {
	case "yaml", "sqlite":
	default:
		return fmt.Errorf("unknown store kind %q", c.StoreKind)
	}
	if c.Balance.FoodHealMin > c.Balance.FoodHealMax {
		return fmt.Errorf("food heal range [%d,%d] is empty", c.Balance.FoodHealMin, c.Balance.FoodHealMax)
	}
	if c.Balance.RouletteSlotsMin <= 0 {
		return errors.New("roulette needs at least one slot")
	}
	return nil
}

// LoadBalance читает YAML поверх значений по умолчанию: файл задает только то, что меняет.
func LoadBalance(path string) (domain.Balance, error) {
	b := domain.DefaultBalance()
	if path == "" {
		return b, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return b, fmt.Errorf("read balance %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return domain.DefaultBalance(), fmt.Errorf("decode balance %s: %w", path, err)
	}
	return b, nil
}
