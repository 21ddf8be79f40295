package systems

import (
	"errors"
	"testing"

	"goose-server/internal/domain"
	"goose-server/pkg/rng"

	"pgregory.net/rapid"
)

func newTrader(eggs int) (*domain.Merchant, *domain.Player, *domain.RunStats) {
	b := domain.DefaultBalance()
	p := domain.NewPlayer(domain.TilePos{X: 1, Y: 1}, domain.DifficultyNormal, b)
	p.AddEggs(eggs)
	return domain.NewMerchant(0, domain.TilePos{X: 5, Y: 5}, b), p, domain.NewRunStats(1, domain.DifficultyNormal, domain.ChallengeNone, true)
}

func TestGamble_InsufficientCurrency(t *testing.T) {
	b := domain.DefaultBalance()
	m, p, stats := newTrader(b.RouletteEggCost - 1)
	stream := rng.New(1)

	_, err := Gamble(m, p, stats, stream, b)
	if !errors.Is(err, domain.ErrInsufficientCurrency) {
		t.Fatalf("err = %v, want ErrInsufficientCurrency", err)
	}
	if p.Eggs != b.RouletteEggCost-1 || m.TradedTimes != 0 || stats.TraderCount != 0 || stream.Draws() != 0 {
		t.Errorf("failed gamble mutated state: eggs %d traded %d stats %d draws %d",
			p.Eggs, m.TradedTimes, stats.TraderCount, stream.Draws())
	}
	if len(p.Effects) != 0 {
		t.Error("failed gamble applied an effect")
	}
}

func TestGamble_Success(t *testing.T) {
	b := domain.DefaultBalance()
	m, p, stats := newTrader(10)

	effect, err := Gamble(m, p, stats, rng.New(3), b)
	if err != nil {
		t.Fatalf("Gamble: %v", err)
	}
	if p.Eggs != 10-b.RouletteEggCost {
		t.Errorf("eggs = %d", p.Eggs)
	}
	if m.TradedTimes != 1 || stats.TraderCount != 1 {
		t.Errorf("traded %d, stats %d", m.TradedTimes, stats.TraderCount)
	}
	if effect.Kind == domain.EffectUnknown {
		t.Error("no effect drawn")
	}
	wantBad := 0
	if effect.Kind.IsBad() {
		wantBad = 1
	}
	if stats.BadEffectsCount != wantBad {
		t.Errorf("BadEffectsCount = %d for %v", stats.BadEffectsCount, effect.Kind)
	}
}

func TestGamble_Deterministic(t *testing.T) {
	b := domain.DefaultBalance()
	var first []domain.EffectKind
	for run := 0; run < 2; run++ {
		m, p, stats := newTrader(40)
		stream := rng.New(2024)
		for i := 0; i < 10; i++ {
			e, err := Gamble(m, p, stats, stream, b)
			if err != nil {
				t.Fatal(err)
			}
			if run == 0 {
				first = append(first, e.Kind)
			} else if first[i] != e.Kind {
				t.Fatalf("gamble %d differs: %v vs %v", i, first[i], e.Kind)
			}
		}
	}
}

func TestSpinRoulette_SingleWeightedSlot(t *testing.T) {
	m, _, _ := newTrader(0)
	for i := range m.Slots {
		m.Slots[i].Weight = 0
	}
	m.Slots[3].Weight = 1

	stream := rng.New(8)
	for range 50 {
		if got := SpinRoulette(m, stream); got.Kind != m.Slots[3].Kind {
			t.Fatalf("drew %v with zero weight", got.Kind)
		}
	}
}

func TestAdjustWeights_Floor(t *testing.T) {
	b := domain.DefaultBalance()
	m, _, _ := newTrader(0)
	m.TradedTimes = 100
	AdjustWeights(m, b)

	for _, s := range m.Slots {
		switch {
		case s.Kind.IsGood():
			if s.Weight != s.BaseWeight*b.RouletteWeightMin {
				t.Errorf("%v weight %v, want floor %v", s.Kind, s.Weight, s.BaseWeight*b.RouletteWeightMin)
			}
		case s.Kind.IsBad():
			if s.Weight <= s.BaseWeight {
				t.Errorf("%v weight %v did not grow", s.Kind, s.Weight)
			}
		default:
			if s.Weight != s.BaseWeight {
				t.Errorf("neutral %v drifted to %v", s.Kind, s.Weight)
			}
		}
	}
}

func TestGamble_DriftMonotonic(t *testing.T) {
	b := domain.DefaultBalance()
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 30).Draw(t, "gambles")
		seed := rapid.Int64().Draw(t, "seed")

		m, p, stats := newTrader(n * b.RouletteEggCost)
		stream := rng.New(seed)

		prev := append([]domain.RouletteSlot(nil), m.Slots...)
		for i := 0; i < n; i++ {
			if _, err := Gamble(m, p, stats, stream, b); err != nil {
				t.Fatalf("gamble %d: %v", i, err)
			}
			for j, s := range m.Slots {
				if s.Kind.IsGood() && (s.Weight > prev[j].Weight || s.Weight < s.BaseWeight*b.RouletteWeightMin) {
					t.Fatalf("good slot %v: %v -> %v", s.Kind, prev[j].Weight, s.Weight)
				}
				if s.Kind.IsBad() && s.Weight < prev[j].Weight {
					t.Fatalf("bad slot %v: %v -> %v", s.Kind, prev[j].Weight, s.Weight)
				}
			}
			copy(prev, m.Slots)
		}
		if p.Eggs != 0 {
			t.Fatalf("eggs left %d", p.Eggs)
		}
	})
}

func TestGamble_PerMerchantDrift(t *testing.T) {
	b := domain.DefaultBalance()
	a, p, stats := newTrader(20)
	other := domain.NewMerchant(1, domain.TilePos{}, b)
	stream := rng.New(1)

	for range 3 {
		if _, err := Gamble(a, p, stats, stream, b); err != nil {
			t.Fatal(err)
		}
	}
	for _, s := range other.Slots {
		if s.Weight != s.BaseWeight {
			t.Fatalf("untouched merchant drifted: %v %v", s.Kind, s.Weight)
		}
	}
}

func TestSafeTrade(t *testing.T) {
	b := domain.DefaultBalance()

	m, p, stats := newTrader(b.SafeTradeEggCost - 1)
	if _, err := SafeTrade(m, p, stats, rng.New(1), b); !errors.Is(err, domain.ErrInsufficientCurrency) {
		t.Fatalf("err = %v, want ErrInsufficientCurrency", err)
	}

	m, p, stats = newTrader(b.SafeTradeEggCost)
	effect, err := SafeTrade(m, p, stats, rng.New(1), b)
	if err != nil {
		t.Fatal(err)
	}
	if p.Eggs != 0 || m.TradedTimes != 1 || stats.TraderCount != 1 {
		t.Errorf("eggs %d traded %d stats %d", p.Eggs, m.TradedTimes, stats.TraderCount)
	}
	if effect.Kind.IsBad() {
		t.Errorf("safe trade produced bad effect %v", effect.Kind)
	}
	for _, s := range m.Slots {
		if s.Weight != s.BaseWeight {
			t.Error("safe trade must not drift roulette weights")
		}
	}
}

func TestSafeOutcome(t *testing.T) {
	b := domain.DefaultBalance()
	tests := []struct {
		r         float64
		kind      domain.EffectKind
		magnitude float64
	}{
		{0.0, domain.EffectHungerInstantUp, b.SafeTradeFoodValue},
		{0.39, domain.EffectHungerInstantUp, b.SafeTradeFoodValue},
		{0.5, domain.EffectHungerRateDown, b.HungerRateDownValue},
		{0.8, domain.EffectSpeedUp, b.SafeTradeSpeedUpValue},
		{0.95, domain.EffectHungerInstantUp, b.SafeTradeMinimalValue},
	}
	for _, tt := range tests {
		e := safeOutcome(tt.r, b)
		if e.Kind != tt.kind || e.Magnitude != tt.magnitude {
			t.Errorf("safeOutcome(%v) = %v/%v, want %v/%v", tt.r, e.Kind, e.Magnitude, tt.kind, tt.magnitude)
		}
	}
}
