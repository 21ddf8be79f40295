package domain

import "strings"

// Difficulty - сложность забега
type Difficulty uint8

const (
	DifficultyNormal Difficulty = iota
	DifficultyEasy
	DifficultyHard
)

var difficultyStringToValue = map[string]Difficulty{
	"EASY":   DifficultyEasy,
	"NORMAL": DifficultyNormal,
	"HARD":   DifficultyHard,
}

var difficultyValueToString = map[Difficulty]string{
	DifficultyEasy:   "EASY",
	DifficultyNormal: "NORMAL",
	DifficultyHard:   "HARD",
}

// ParseDifficulty конвертирует строку в Difficulty. Неизвестное значение = NORMAL.
func ParseDifficulty(s string) Difficulty {
	if val, ok := difficultyStringToValue[strings.ToUpper(s)]; ok {
		return val
	}
	return DifficultyNormal
}

func (d Difficulty) String() string {
	if val, ok := difficultyValueToString[d]; ok {
		return val
	}
	return "NORMAL"
}

// Challenge - режим испытания
type Challenge uint8

const (
	ChallengeNone Challenge = iota
	ChallengeNoGreed
	ChallengeGreedOverdrive
	ChallengeGamblerCurse
)

var challengeStringToValue = map[string]Challenge{
	"NONE":            ChallengeNone,
	"NO_GREED":        ChallengeNoGreed,
	"GREED_OVERDRIVE": ChallengeGreedOverdrive,
	"GAMBLER_CURSE":   ChallengeGamblerCurse,
}

var challengeValueToString = map[Challenge]string{
	ChallengeNone:           "NONE",
	ChallengeNoGreed:        "NO_GREED",
	ChallengeGreedOverdrive: "GREED_OVERDRIVE",
	ChallengeGamblerCurse:   "GAMBLER_CURSE",
}

// ParseChallenge конвертирует строку в Challenge. Дефисы допускаются.
func ParseChallenge(s string) Challenge {
	key := strings.ReplaceAll(strings.ToUpper(s), "-", "_")
	if val, ok := challengeStringToValue[key]; ok {
		return val
	}
	return ChallengeNone
}

func (c Challenge) String() string {
	if val, ok := challengeValueToString[c]; ok {
		return val
	}
	return "NONE"
}

// RunStats - счетчики одного забега. Только растут, сбрасываются созданием новой структуры.
type RunStats struct {
	Seed       int64
	Difficulty Difficulty
	Challenge  Challenge

	TotalEggs        int // всего подобрано за забег, траты не вычитаются
	FinalEggs        int // на руках в момент окончания
	TraderCount      int
	BadEffectsCount  int
	SecretRoomsFound int
	FoodEaten        int

	PlayTime         float64
	Hunger90PlusTime float64

	IntroGreedyChoice bool
	DiedByHunger      bool
	ChallengeFailed   bool
	ReachedExit       bool
	Alive             bool // игрок жив в момент окончания
}

// NewRunStats - чистая статистика для нового забега
func NewRunStats(seed int64, difficulty Difficulty, challenge Challenge, greedy bool) *RunStats {
	return &RunStats{
		Seed:              seed,
		Difficulty:        difficulty,
		Challenge:         challenge,
		IntroGreedyChoice: greedy,
	}
}
