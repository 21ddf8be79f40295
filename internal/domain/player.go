package domain

// DeathCause - причина гибели игрока
type DeathCause uint8

const (
	DeathNone DeathCause = iota
	DeathByHunger
)

// Player - единственный игрок забега.
// Базовые атрибуты задаются при создании, производные пересчитываются из активных эффектов.
type Player struct {
	Pos    PixelPos
	Facing TilePos // последнее направление движения

	// Базовые атрибуты
	BaseSpeed        float64
	BaseVisionRadius int
	BaseHungerRate   float64 // уже с учетом сложности
	MaxHunger        float64

	// Производные атрибуты (Recompute)
	SpeedMultiplier      float64
	VisionRadius         int
	HungerRateMultiplier float64

	// Флаги эффектов, всегда присутствуют
	HasFoodBoost            bool
	HasDoubleReward         bool
	IsInvincibleOnMaxHunger bool

	// Ресурсы
	Hunger float64
	Eggs   int

	Effects []Effect // порядок добавления сохраняется

	Alive      bool
	DeathCause DeathCause

	rules Balance
}

// NewPlayer создает игрока в центре стартовой клетки
func NewPlayer(start TilePos, difficulty Difficulty, b Balance) *Player {
	p := &Player{
		Pos:              start.Center(),
		BaseSpeed:        b.BaseSpeed,
		BaseVisionRadius: b.BaseVisionRadius,
		BaseHungerRate:   b.BaseHungerRate * b.HungerMultiplier(difficulty),
		MaxHunger:        b.BaseMaxHunger,
		Hunger:           b.BaseMaxHunger,
		Alive:            true,
		rules:            b,
	}
	p.Recompute()
	return p
}

// Tile - клетка, в которой стоит игрок
func (p *Player) Tile() TilePos {
	return p.Pos.Tile()
}

// Speed - текущая скорость в пикселях в секунду
func (p *Player) Speed() float64 {
	return p.BaseSpeed * p.SpeedMultiplier
}

// HungerRate - текущая скорость голода в секунду
func (p *Player) HungerRate() float64 {
	return p.BaseHungerRate * p.HungerRateMultiplier
}

// HungerRatio - доля сытости 0..1
func (p *Player) HungerRatio() float64 {
	if p.MaxHunger <= 0 {
		return 0
	}
	return p.Hunger / p.MaxHunger
}

// Feed восстанавливает голод, не выше максимума
func (p *Player) Feed(amount float64) {
	p.Hunger = min(p.MaxHunger, p.Hunger+amount)
}

// AddEggs меняет количество яиц, не ниже нуля
func (p *Player) AddEggs(n int) {
	p.Eggs = max(0, p.Eggs+n)
	p.Recompute()
}

// SpendEggs списывает яйца. Возвращает false, если не хватает.
func (p *Player) SpendEggs(cost int) bool {
	if p.Eggs < cost {
		return false
	}
	p.Eggs -= cost
	p.Recompute()
	return true
}

// ApplyEffect добавляет эффект и сразу пересчитывает атрибуты.
// Мгновенные эффекты срабатывают один раз и в список не попадают.
func (p *Player) ApplyEffect(e Effect) {
	if e.Kind.IsInstant() {
		p.Feed(e.Magnitude)
	} else {
		p.Effects = append(p.Effects, e)
	}
	p.Recompute()
}

// Tick - один шаг симуляции: голод, эффекты, пересчет, смерть.
func (p *Player) Tick(dt float64) {
	if !p.Alive {
		return
	}

	p.Hunger = max(0, p.Hunger-p.HungerRate()*dt)

	active := p.Effects[:0]
	for i := range p.Effects {
		if p.Effects[i].Tick(p, dt) {
			active = append(active, p.Effects[i])
		}
	}
	clear(p.Effects[len(active):])
	p.Effects = active

	p.Recompute()

	if p.Hunger <= 0 {
		p.Alive = false
		p.DeathCause = DeathByHunger
	}
}

// Recompute сбрасывает производные атрибуты к базовым и применяет все эффекты по порядку,
// затем штрафы жадности. Повторный вызов без изменений дает тот же результат.
func (p *Player) Recompute() {
	p.SpeedMultiplier = 1.0
	p.VisionRadius = p.BaseVisionRadius
	p.HungerRateMultiplier = 1.0
	p.HasFoodBoost = false
	p.HasDoubleReward = false
	p.IsInvincibleOnMaxHunger = false

	for _, e := range p.Effects {
		deriveAttributeDelta(e.Kind, e.Magnitude, p)
	}

	p.applyGreedDebuff()

	p.SpeedMultiplier = max(p.rules.MinSpeedFactor, p.SpeedMultiplier)
}

// applyGreedDebuff - постоянные штрафы за количество яиц на руках.
// Второй порог скорости заменяет первый, а не складывается с ним.
func (p *Player) applyGreedDebuff() {
	r := p.rules
	if r.EggVisionThreshold > 0 && p.Eggs >= r.EggVisionThreshold {
		p.VisionRadius = max(1, int(float64(p.VisionRadius)*(1-r.EggVisionReduction)))
	}
	switch {
	case r.EggSpeedThreshold2 > 0 && p.Eggs >= r.EggSpeedThreshold2:
		p.SpeedMultiplier *= 1 - r.EggSpeedReduction2
	case r.EggSpeedThreshold1 > 0 && p.Eggs >= r.EggSpeedThreshold1:
		p.SpeedMultiplier *= 1 - r.EggSpeedReduction1
	}
}

// ActiveEffect ищет первый активный эффект данного типа
func (p *Player) ActiveEffect(kind EffectKind) (Effect, bool) {
	for _, e := range p.Effects {
		if e.Kind == kind {
			return e, true
		}
	}
	return Effect{}, false
}
