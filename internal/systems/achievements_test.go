package systems

import (
	"slices"
	"testing"

	"goose-server/internal/domain"
)

func TestCheckAchievements_CleanRun(t *testing.T) {
	stats := &domain.RunStats{
		ReachedExit:       true,
		Alive:             true,
		PlayTime:          200,
		Hunger90PlusTime:  45,
		IntroGreedyChoice: false,
	}

	got := CheckAchievements(stats, domain.EndingHeavenWorker, nil, 0)
	want := []domain.AchievementID{
		domain.AchFirstClear,
		domain.AchNoTraderClear,
		domain.AchEggs0to1,
		domain.AchSpeedrun5Min,
		domain.AchHunger90Plus,
		domain.AchPerfectRestraint,
	}
	if !slices.Equal(got, want) {
		t.Errorf("CheckAchievements = %v, want %v", got, want)
	}
}

func TestCheckAchievements_SkipsUnlocked(t *testing.T) {
	stats := &domain.RunStats{TraderCount: 6, TotalEggs: 31, SecretRoomsFound: 1}
	unlocked := map[domain.AchievementID]bool{domain.AchTrader5Plus: true, domain.AchFirstClear: true}

	got := CheckAchievements(stats, domain.EndingNoble, unlocked, 0)
	want := []domain.AchievementID{domain.AchEggs30Plus, domain.AchSecretRoom}
	if !slices.Equal(got, want) {
		t.Errorf("CheckAchievements = %v, want %v", got, want)
	}
}

func TestCheckAchievements_StarvedHell(t *testing.T) {
	stats := &domain.RunStats{DiedByHunger: true, PlayTime: 100}

	got := CheckAchievements(stats, domain.EndingHell, nil, 3)
	want := []domain.AchievementID{domain.AchHell3Times}
	if !slices.Equal(got, want) {
		t.Errorf("CheckAchievements = %v, want %v", got, want)
	}
}
