package domain

// RouletteSlot - исход рулетки и его вес
type RouletteSlot struct {
	Kind       EffectKind
	BaseWeight float64
	Weight     float64
}

// rouletteTable - курированный список исходов
var rouletteTable = []struct {
	Kind   EffectKind
	Weight float64
}{
	{EffectSpeedUp, 2},
	{EffectVisionUp, 2},
	{EffectHungerRateDown, 2},
	{EffectHungerInstantUp, 2},
	{EffectFoodBoost, 1.5},
	{EffectSpeedDown, 1.5},
	{EffectVisionDown, 1.5},
	{EffectDoubleReward, 1},
}

// Merchant - торговец. Таблица рулетки и счетчик сделок у каждого свои.
type Merchant struct {
	ID          int
	Tile        TilePos
	Pos         PixelPos
	TradedTimes int
	Slots       []RouletteSlot
}

// NewMerchant создает торговца со свежей таблицей.
// Если курированных слотов меньше минимума, добивает чередуя SPEED_UP / SPEED_DOWN.
func NewMerchant(id int, tile TilePos, b Balance) *Merchant {
	slots := make([]RouletteSlot, 0, max(len(rouletteTable), b.RouletteSlotsMin))
	for _, s := range rouletteTable {
		slots = append(slots, RouletteSlot{Kind: s.Kind, BaseWeight: s.Weight, Weight: s.Weight})
	}
	for i := 0; len(slots) < b.RouletteSlotsMin; i++ {
		kind := EffectSpeedUp
		if i%2 == 1 {
			kind = EffectSpeedDown
		}
		slots = append(slots, RouletteSlot{Kind: kind, BaseWeight: 1, Weight: 1})
	}

	return &Merchant{
		ID:    id,
		Tile:  tile,
		Pos:   tile.Center(),
		Slots: slots,
	}
}

// TotalWeight - сумма текущих весов
func (m *Merchant) TotalWeight() float64 {
	total := 0.0
	for _, s := range m.Slots {
		total += s.Weight
	}
	return total
}
