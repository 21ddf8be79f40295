package domain

// TileSize - размер тайла в пикселях. Пиксельные координаты = тайл * TileSize.
const TileSize = 32

// Balance - все численные параметры забега.
// Значения по умолчанию дает DefaultBalance, YAML-файл может переопределить любое подмножество.
type Balance struct {
	// Игрок
	BaseSpeed        float64 `yaml:"base_speed"` // пикселей в секунду
	BaseMaxHunger    float64 `yaml:"base_max_hunger"`
	BaseHungerRate   float64 `yaml:"base_hunger_rate"` // единиц голода в секунду
	BaseVisionRadius int     `yaml:"base_vision_radius"`
	MinSpeedFactor   float64 `yaml:"min_speed_factor"`

	// Множители голода по сложности
	EasyHungerMult   float64 `yaml:"easy_hunger_mult"`
	NormalHungerMult float64 `yaml:"normal_hunger_mult"`
	HardHungerMult   float64 `yaml:"hard_hunger_mult"`

	// Генерация
	ItemDensity             float64 `yaml:"item_density"`
	GoldenEggShare          float64 `yaml:"golden_egg_share"`
	MerchantDensity         float64 `yaml:"merchant_density"`
	MerchantExclusionRadius int     `yaml:"merchant_exclusion_radius"`
	SecretRoomChance        float64 `yaml:"secret_room_chance"`
	SecretRoomCap           int     `yaml:"secret_room_cap"`

	// Еда
	FoodHealMin         int     `yaml:"food_heal_min"`
	FoodHealMax         int     `yaml:"food_heal_max"`
	FoodBoostMultiplier float64 `yaml:"food_boost_multiplier"`

	// Жадность: пороги по количеству яиц на руках
	EggVisionThreshold int     `yaml:"egg_vision_threshold"`
	EggVisionReduction float64 `yaml:"egg_vision_reduction"`
	EggSpeedThreshold1 int     `yaml:"egg_speed_threshold1"`
	EggSpeedReduction1 float64 `yaml:"egg_speed_reduction1"`
	EggSpeedThreshold2 int     `yaml:"egg_speed_threshold2"`
	EggSpeedReduction2 float64 `yaml:"egg_speed_reduction2"`

	// Эффекты: длительность (сек) и величина
	SpeedUpDuration        float64 `yaml:"speed_up_duration"`
	SpeedUpValue           float64 `yaml:"speed_up_value"`
	SpeedDownDuration      float64 `yaml:"speed_down_duration"`
	SpeedDownValue         float64 `yaml:"speed_down_value"`
	VisionUpDuration       float64 `yaml:"vision_up_duration"`
	VisionUpValue          float64 `yaml:"vision_up_value"`
	VisionDownDuration     float64 `yaml:"vision_down_duration"`
	VisionDownValue        float64 `yaml:"vision_down_value"`
	HungerRateDownDuration float64 `yaml:"hunger_rate_down_duration"`
	HungerRateDownValue    float64 `yaml:"hunger_rate_down_value"`
	HungerInstantUpValue   float64 `yaml:"hunger_instant_up_value"`
	FoodBoostDuration      float64 `yaml:"food_boost_duration"`
	DoubleRewardDuration   float64 `yaml:"double_reward_duration"`

	// Рулетка
	RouletteEggCost            int     `yaml:"roulette_egg_cost"`
	RouletteSlotsMin           int     `yaml:"roulette_slots_min"`
	RouletteWeightMin          float64 `yaml:"roulette_weight_min"`
	RouletteWeightDecayRate    float64 `yaml:"roulette_weight_decay_rate"`
	RouletteWeightIncreaseRate float64 `yaml:"roulette_weight_increase_rate"`

	// Безопасная сделка
	SafeTradeEggCost              int     `yaml:"safe_trade_egg_cost"`
	SafeTradeFoodChance           float64 `yaml:"safe_trade_food_chance"`
	SafeTradeHungerRateDownChance float64 `yaml:"safe_trade_hunger_rate_down_chance"`
	SafeTradeSpeedUpChance        float64 `yaml:"safe_trade_speed_up_chance"`
	SafeTradeFoodValue            float64 `yaml:"safe_trade_food_value"`
	SafeTradeSpeedUpDuration      float64 `yaml:"safe_trade_speed_up_duration"`
	SafeTradeSpeedUpValue         float64 `yaml:"safe_trade_speed_up_value"`
	SafeTradeMinimalValue         float64 `yaml:"safe_trade_minimal_value"`

	// Очки и ранги
	ScoreEggValue        int     `yaml:"score_egg_value"`
	ScoreSecretRoomBonus int     `yaml:"score_secret_room_bonus"`
	ScoreTimeLimit       float64 `yaml:"score_time_limit"`
	ScoreTimeBonus       float64 `yaml:"score_time_bonus"`
	RankSThreshold       int     `yaml:"rank_s_threshold"`
	RankAThreshold       int     `yaml:"rank_a_threshold"`
	RankBThreshold       int     `yaml:"rank_b_threshold"`
	HungerCriticalRatio  float64 `yaml:"hunger_critical_ratio"`

	// Испытания
	GreedOverdriveTimeLimit  float64 `yaml:"greed_overdrive_time_limit"`
	GreedOverdriveTargetEggs int     `yaml:"greed_overdrive_target_eggs"`
	GamblerCurseMinTrades    int     `yaml:"gambler_curse_min_trades"`
}

// DefaultBalance возвращает параметры по умолчанию.
func DefaultBalance() Balance {
	return Balance{
		BaseSpeed:        150,
		BaseMaxHunger:    100,
		BaseHungerRate:   0.8,
		BaseVisionRadius: 5,
		MinSpeedFactor:   0.1,

		EasyHungerMult:   0.7,
		NormalHungerMult: 1.0,
		HardHungerMult:   1.4,

		ItemDensity:             0.08,
		GoldenEggShare:          0.3,
		MerchantDensity:         0.015,
		MerchantExclusionRadius: 3,
		SecretRoomChance:        0.02,
		SecretRoomCap:           3,

		FoodHealMin:         15,
		FoodHealMax:         30,
		FoodBoostMultiplier: 1.5,

		EggVisionThreshold: 10,
		EggVisionReduction: 0.3,
		EggSpeedThreshold1: 15,
		EggSpeedReduction1: 0.2,
		EggSpeedThreshold2: 25,
		EggSpeedReduction2: 0.4,

		SpeedUpDuration:        15,
		SpeedUpValue:           0.3,
		SpeedDownDuration:      15,
		SpeedDownValue:         0.3,
		VisionUpDuration:       20,
		VisionUpValue:          2,
		VisionDownDuration:     20,
		VisionDownValue:        2,
		HungerRateDownDuration: 30,
		HungerRateDownValue:    0.5,
		HungerInstantUpValue:   30,
		FoodBoostDuration:      30,
		DoubleRewardDuration:   30,

		RouletteEggCost:            2,
		RouletteSlotsMin:           8,
		RouletteWeightMin:          0.3,
		RouletteWeightDecayRate:    0.1,
		RouletteWeightIncreaseRate: 0.15,

		SafeTradeEggCost:              3,
		SafeTradeFoodChance:           0.4,
		SafeTradeHungerRateDownChance: 0.3,
		SafeTradeSpeedUpChance:        0.2,
		SafeTradeFoodValue:            25,
		SafeTradeSpeedUpDuration:      20,
		SafeTradeSpeedUpValue:         0.1,
		SafeTradeMinimalValue:         10,

		ScoreEggValue:        100,
		ScoreSecretRoomBonus: 500,
		ScoreTimeLimit:       600,
		ScoreTimeBonus:       1,
		RankSThreshold:       3000,
		RankAThreshold:       2000,
		RankBThreshold:       1000,
		HungerCriticalRatio:  0.9,

		GreedOverdriveTimeLimit:  420,
		GreedOverdriveTargetEggs: 20,
		GamblerCurseMinTrades:    5,
	}
}

// HungerMultiplier возвращает множитель скорости голода для сложности.
func (b Balance) HungerMultiplier(d Difficulty) float64 {
	switch d {
	case DifficultyEasy:
		return b.EasyHungerMult
	case DifficultyHard:
		return b.HardHungerMult
	case DifficultyNormal:
		return b.NormalHungerMult
	}
	return 1.0
}
