package systems

import (
	"goose-server/internal/domain"
	"goose-server/pkg/logger"
	"goose-server/pkg/maze"
	"goose-server/pkg/rng"

	"github.com/sirupsen/logrus"
)

// PickupResult - что получил игрок с одного предмета
type PickupResult struct {
	Item   *domain.Item
	Eggs   int     // сколько яиц добавлено
	Healed float64 // сколько голода восстановлено
}

// TryPickup подбирает предмет. Повторный подбор - тихий no-op (false).
func TryPickup(p *domain.Player, item *domain.Item, stats *domain.RunStats, stream *rng.Stream, b domain.Balance) (PickupResult, bool) {
	res := PickupResult{Item: item}
	if item == nil || item.Picked || !p.Alive {
		return res, false
	}
	item.Picked = true

	switch item.Kind {
	case domain.ItemGoldenEgg:
		res.Eggs = 1
		if p.HasDoubleReward {
			res.Eggs = 2
		}
		p.AddEggs(res.Eggs)
		stats.TotalEggs += res.Eggs

	case domain.ItemFood:
		heal := stream.IntRange(b.FoodHealMin, b.FoodHealMax)
		if p.HasFoodBoost {
			heal = int(float64(heal) * b.FoodBoostMultiplier)
		}
		before := p.Hunger
		p.Feed(float64(heal))
		res.Healed = p.Hunger - before
		stats.FoodEaten++

	case domain.ItemSecret:
		vision := domain.DefaultEffect(domain.EffectVisionUp, b)
		vision = domain.NewEffect(vision.Kind, vision.Duration*2, vision.Magnitude)
		hunger := domain.DefaultEffect(domain.EffectHungerRateDown, b)
		hunger = domain.NewEffect(hunger.Kind, hunger.Duration*2, hunger.Magnitude)
		p.ApplyEffect(vision)
		p.ApplyEffect(hunger)
		stats.SecretRoomsFound++
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "pickup_system",
		"item":      item.Kind.String(),
		"tile":      item.Tile,
		"eggs":      p.Eggs,
		"hunger":    p.Hunger,
	}).Debug("Item picked up")

	return res, true
}

// CollectAt подбирает все, до чего игрок дотягивается с текущей клетки:
// предметы под ногами и тайник за соседней стеной.
func CollectAt(p *domain.Player, m *maze.Maze, stats *domain.RunStats, stream *rng.Stream, b domain.Balance) []PickupResult {
	var out []PickupResult

	for item := m.ItemAt(p.Pos); item != nil; item = m.ItemAt(p.Pos) {
		res, ok := TryPickup(p, item, stats, stream, b)
		if !ok {
			break
		}
		out = append(out, res)
	}

	if room := m.SecretRoomNear(p.Tile()); room != nil {
		if res, ok := TryPickup(p, room.Item, stats, stream, b); ok {
			room.Found = true
			out = append(out, res)
		}
	}
	return out
}
