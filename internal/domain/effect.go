package domain

import "strings"

// EffectKind - тип эффекта. Каталог закрытый: любой switch по нему обязан быть полным.
type EffectKind uint8

const (
	EffectUnknown EffectKind = iota
	EffectSpeedUp
	EffectSpeedDown
	EffectVisionUp
	EffectVisionDown
	EffectHungerRateDown
	EffectHungerInstantUp
	EffectFoodBoost
	EffectDoubleReward
	EffectInvincibleOnMaxHunger
)

var effectStringToKind = map[string]EffectKind{
	"SPEED_UP":                 EffectSpeedUp,
	"SPEED_DOWN":               EffectSpeedDown,
	"VISION_UP":                EffectVisionUp,
	"VISION_DOWN":              EffectVisionDown,
	"HUNGER_RATE_DOWN":         EffectHungerRateDown,
	"HUNGER_INSTANT_UP":        EffectHungerInstantUp,
	"FOOD_BOOST":               EffectFoodBoost,
	"DOUBLE_REWARD":            EffectDoubleReward,
	"INVINCIBLE_ON_MAX_HUNGER": EffectInvincibleOnMaxHunger,
}

var effectKindToString = map[EffectKind]string{
	EffectSpeedUp:               "SPEED_UP",
	EffectSpeedDown:             "SPEED_DOWN",
	EffectVisionUp:              "VISION_UP",
	EffectVisionDown:            "VISION_DOWN",
	EffectHungerRateDown:        "HUNGER_RATE_DOWN",
	EffectHungerInstantUp:       "HUNGER_INSTANT_UP",
	EffectFoodBoost:             "FOOD_BOOST",
	EffectDoubleReward:          "DOUBLE_REWARD",
	EffectInvincibleOnMaxHunger: "INVINCIBLE_ON_MAX_HUNGER",
}

// Короткие подписи для HUD
var effectKindToLabel = map[EffectKind]string{
	EffectSpeedUp:               "Speed Up",
	EffectSpeedDown:             "Speed Down",
	EffectVisionUp:              "Vision Up",
	EffectVisionDown:            "Vision Down",
	EffectHungerRateDown:        "Slow Hunger",
	EffectHungerInstantUp:       "Hunger Restore",
	EffectFoodBoost:             "Food Boost",
	EffectDoubleReward:          "Double Reward",
	EffectInvincibleOnMaxHunger: "Invincible",
}

// ParseEffectKind конвертирует строку в EffectKind (без учета регистра)
func ParseEffectKind(s string) EffectKind {
	if val, ok := effectStringToKind[strings.ToUpper(s)]; ok {
		return val
	}
	return EffectUnknown
}

func (k EffectKind) String() string {
	if val, ok := effectKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// Label - человекочитаемое имя
func (k EffectKind) Label() string {
	if val, ok := effectKindToLabel[k]; ok {
		return val
	}
	return "?"
}

// IsGood - эффект полезен игроку. Вес таких слотов рулетки падает с каждой сделкой.
func (k EffectKind) IsGood() bool {
	switch k {
	case EffectSpeedUp, EffectVisionUp, EffectHungerRateDown, EffectHungerInstantUp, EffectFoodBoost:
		return true
	}
	return false
}

// IsBad - эффект вредит игроку. Вес таких слотов растет с каждой сделкой.
func (k EffectKind) IsBad() bool {
	return k == EffectSpeedDown || k == EffectVisionDown
}

// IsInstant - эффект срабатывает один раз и не попадает в список активных
func (k EffectKind) IsInstant() bool {
	return k == EffectHungerInstantUp
}

// PermanentDuration - длительность "пока не снято условием"
const PermanentDuration = -1.0

// Effect - описание модификатора
type Effect struct {
	Kind      EffectKind
	Duration  float64 // исходная длительность, PermanentDuration для условных
	Remaining float64
	Magnitude float64
}

// NewEffect создает эффект с явными параметрами
func NewEffect(kind EffectKind, duration, magnitude float64) Effect {
	return Effect{
		Kind:      kind,
		Duration:  duration,
		Remaining: duration,
		Magnitude: magnitude,
	}
}

// DefaultEffect создает эффект с длительностью и силой из баланса
func DefaultEffect(kind EffectKind, b Balance) Effect {
	switch kind {
	case EffectSpeedUp:
		return NewEffect(kind, b.SpeedUpDuration, b.SpeedUpValue)
	case EffectSpeedDown:
		return NewEffect(kind, b.SpeedDownDuration, b.SpeedDownValue)
	case EffectVisionUp:
		return NewEffect(kind, b.VisionUpDuration, b.VisionUpValue)
	case EffectVisionDown:
		return NewEffect(kind, b.VisionDownDuration, b.VisionDownValue)
	case EffectHungerRateDown:
		return NewEffect(kind, b.HungerRateDownDuration, b.HungerRateDownValue)
	case EffectHungerInstantUp:
		return NewEffect(kind, 0, b.HungerInstantUpValue)
	case EffectFoodBoost:
		return NewEffect(kind, b.FoodBoostDuration, b.FoodBoostMultiplier)
	case EffectDoubleReward:
		return NewEffect(kind, b.DoubleRewardDuration, 2)
	case EffectInvincibleOnMaxHunger:
		return NewEffect(kind, PermanentDuration, 0)
	}
	panic("domain: unknown effect kind " + kind.String())
}

// IsPermanent - эффект снимается условием, а не временем
func (e *Effect) IsPermanent() bool {
	return e.Duration < 0
}

// Tick продвигает эффект на dt. Возвращает false, когда эффект пора снять.
func (e *Effect) Tick(p *Player, dt float64) bool {
	if e.Kind == EffectInvincibleOnMaxHunger {
		return p.Hunger >= p.MaxHunger
	}
	if e.IsPermanent() {
		return true
	}
	e.Remaining -= dt
	return e.Remaining > 0
}

// deriveAttributeDelta применяет один эффект к производным атрибутам игрока
func deriveAttributeDelta(kind EffectKind, magnitude float64, p *Player) {
	switch kind {
	case EffectSpeedUp:
		p.SpeedMultiplier += magnitude
	case EffectSpeedDown:
		p.SpeedMultiplier -= magnitude
	case EffectVisionUp:
		p.VisionRadius += int(magnitude)
	case EffectVisionDown:
		p.VisionRadius = max(1, p.VisionRadius-int(magnitude))
	case EffectHungerRateDown:
		p.HungerRateMultiplier *= 1 - magnitude
	case EffectHungerInstantUp:
		// мгновенный, в пересчете не участвует
	case EffectFoodBoost:
		p.HasFoodBoost = true
	case EffectDoubleReward:
		p.HasDoubleReward = true
	case EffectInvincibleOnMaxHunger:
		p.IsInvincibleOnMaxHunger = true
	default:
		panic("domain: unknown effect kind " + kind.String())
	}
}
