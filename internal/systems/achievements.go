package systems

import (
	"goose-server/internal/domain"
)

// Пороговые значения достижений
const (
	achTraderFriendTrades = 5
	achGoldenCollector    = 30
	achRestraintMaxEggs   = 1
	achSpeedrunSeconds    = 300
	achHungerHoldSeconds  = 30
	achHellRepeat         = 3
)

// CheckAchievements возвращает достижения, открытые этим забегом и еще не открытые раньше.
// hellCount - сколько раз HELL уже записан, включая текущую концовку.
func CheckAchievements(stats *domain.RunStats, ending domain.EndingKind, unlocked map[domain.AchievementID]bool, hellCount int) []domain.AchievementID {
	cleared := stats.ReachedExit && stats.Alive && !stats.DiedByHunger && !stats.ChallengeFailed

	conditions := map[domain.AchievementID]bool{
		domain.AchFirstClear:    ending != domain.EndingHell || !stats.DiedByHunger,
		domain.AchNoTraderClear: cleared && stats.TraderCount == 0,
		domain.AchTrader5Plus:   stats.TraderCount >= achTraderFriendTrades,
		domain.AchEggs30Plus:    stats.TotalEggs >= achGoldenCollector,
		domain.AchEggs0to1:      cleared && stats.FinalEggs <= achRestraintMaxEggs,
		domain.AchSpeedrun5Min:  cleared && stats.PlayTime <= achSpeedrunSeconds,
		domain.AchHunger90Plus:  stats.Hunger90PlusTime >= achHungerHoldSeconds,
		domain.AchSecretRoom:    stats.SecretRoomsFound > 0,
		domain.AchPerfectRestraint: stats.TotalEggs == 0 && stats.TraderCount == 0 &&
			stats.SecretRoomsFound == 0 && ending != domain.EndingHell,
		domain.AchHell3Times: hellCount >= achHellRepeat,
	}

	var fresh []domain.AchievementID
	for _, a := range domain.Achievements {
		if conditions[a.ID] && !unlocked[a.ID] {
			fresh = append(fresh, a.ID)
		}
	}
	return fresh
}
