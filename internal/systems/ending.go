package systems

import (
	"goose-server/internal/domain"
)

// DetermineEnding - чистая функция от итоговой статистики к концовке. Первое совпадение побеждает.
func DetermineEnding(stats *domain.RunStats) domain.EndingKind {
	if stats.DiedByHunger {
		return domain.EndingHell
	}

	// Полный отказ в интро записывает HEAVEN_WORKER без забега, сюда он не доходит.
	// Ветка ловит сдержанный забег, в котором ничего не взято.
	if !stats.IntroGreedyChoice && stats.TraderCount == 0 && stats.TotalEggs == 0 {
		return domain.EndingHeavenWorker
	}

	eggs := stats.TotalEggs
	bad := stats.BadEffectsCount

	switch {
	case eggs >= 30 && bad >= 3:
		return domain.EndingHell
	case eggs >= 20 && bad <= 1:
		return domain.EndingKing
	case eggs >= 5 && eggs < 20:
		return domain.EndingNoble
	case eggs < 5 && !stats.IntroGreedyChoice:
		return domain.EndingFarmer
	case eggs <= 1:
		return domain.EndingBeggar
	}
	return domain.EndingNoble
}

// CalculateScore: яйца, тайники и бонус за оставшееся время
func CalculateScore(stats *domain.RunStats, b domain.Balance) int {
	score := stats.TotalEggs*b.ScoreEggValue + stats.SecretRoomsFound*b.ScoreSecretRoomBonus
	if stats.PlayTime < b.ScoreTimeLimit {
		score += max(0, int((b.ScoreTimeLimit-stats.PlayTime)*b.ScoreTimeBonus))
	}
	return score
}

// CalculateRank - лестница порогов S > A > B > C
func CalculateRank(score int, b domain.Balance) domain.Rank {
	switch {
	case score >= b.RankSThreshold:
		return domain.RankS
	case score >= b.RankAThreshold:
		return domain.RankA
	case score >= b.RankBThreshold:
		return domain.RankB
	}
	return domain.RankC
}
