package systems

import (
	"fmt"

	"goose-server/internal/domain"
	"goose-server/pkg/logger"
	"goose-server/pkg/rng"

	"github.com/sirupsen/logrus"
)

// AdjustWeights пересчитывает веса рулетки от базовых по счетчику сделок торговца.
// Хорошие исходы дешевеют до пола, плохие дорожают без ограничения, нейтральные не меняются.
func AdjustWeights(m *domain.Merchant, b domain.Balance) {
	n := float64(m.TradedTimes)
	for i := range m.Slots {
		s := &m.Slots[i]
		switch {
		case s.Kind.IsGood():
			s.Weight = s.BaseWeight * max(b.RouletteWeightMin, 1-n*b.RouletteWeightDecayRate)
		case s.Kind.IsBad():
			s.Weight = s.BaseWeight * (1 + n*b.RouletteWeightIncreaseRate)
		default:
			s.Weight = s.BaseWeight
		}
	}
}

// SpinRoulette - взвешенный выбор слота: первый слот с ненулевым весом, чей накопленный вес >= r
func SpinRoulette(m *domain.Merchant, stream *rng.Stream) domain.RouletteSlot {
	r := stream.Uniform(0, m.TotalWeight())
	acc := 0.0
	for _, s := range m.Slots {
		acc += s.Weight
		if s.Weight > 0 && r <= acc {
			return s
		}
	}
	return m.Slots[len(m.Slots)-1]
}

// Gamble - сделка "рулетка". Без нужного числа яиц возвращает ErrInsufficientCurrency
// и ничего не меняет.
func Gamble(m *domain.Merchant, p *domain.Player, stats *domain.RunStats, stream *rng.Stream, b domain.Balance) (domain.Effect, error) {
	if p.Eggs < b.RouletteEggCost {
		return domain.Effect{}, fmt.Errorf("gamble costs %d eggs, have %d: %w", b.RouletteEggCost, p.Eggs, domain.ErrInsufficientCurrency)
	}

	p.SpendEggs(b.RouletteEggCost)
	m.TradedTimes++
	stats.TraderCount++

	AdjustWeights(m, b)
	slot := SpinRoulette(m, stream)
	effect := domain.DefaultEffect(slot.Kind, b)
	p.ApplyEffect(effect)

	if slot.Kind.IsBad() {
		stats.BadEffectsCount++
	}

	logger.Log.WithFields(logrus.Fields{
		"component":   "trade_system",
		"merchant_id": m.ID,
		"traded":      m.TradedTimes,
		"effect":      effect.Kind.String(),
		"eggs_left":   p.Eggs,
	}).Info("Roulette trade")

	return effect, nil
}

// SafeTrade - сделка с фиксированными шансами и без дрейфа
func SafeTrade(m *domain.Merchant, p *domain.Player, stats *domain.RunStats, stream *rng.Stream, b domain.Balance) (domain.Effect, error) {
	if p.Eggs < b.SafeTradeEggCost {
		return domain.Effect{}, fmt.Errorf("safe trade costs %d eggs, have %d: %w", b.SafeTradeEggCost, p.Eggs, domain.ErrInsufficientCurrency)
	}

	p.SpendEggs(b.SafeTradeEggCost)
	m.TradedTimes++
	stats.TraderCount++

	effect := safeOutcome(stream.Float64(), b)
	p.ApplyEffect(effect)

	logger.Log.WithFields(logrus.Fields{
		"component":   "trade_system",
		"merchant_id": m.ID,
		"traded":      m.TradedTimes,
		"effect":      effect.Kind.String(),
		"eggs_left":   p.Eggs,
	}).Info("Safe trade")

	return effect, nil
}

func safeOutcome(r float64, b domain.Balance) domain.Effect {
	food := b.SafeTradeFoodChance
	slow := food + b.SafeTradeHungerRateDownChance
	fast := slow + b.SafeTradeSpeedUpChance

	switch {
	case r < food:
		return domain.NewEffect(domain.EffectHungerInstantUp, 0, b.SafeTradeFoodValue)
	case r < slow:
		return domain.DefaultEffect(domain.EffectHungerRateDown, b)
	case r < fast:
		return domain.NewEffect(domain.EffectSpeedUp, b.SafeTradeSpeedUpDuration, b.SafeTradeSpeedUpValue)
	default:
		return domain.NewEffect(domain.EffectHungerInstantUp, 0, b.SafeTradeMinimalValue)
	}
}
