package domain

// AchievementID - ключ достижения в хранилище
type AchievementID string

const (
	AchFirstClear       AchievementID = "first_clear"
	AchNoTraderClear    AchievementID = "no_trader_clear"
	AchTrader5Plus      AchievementID = "trader_5plus"
	AchEggs30Plus       AchievementID = "eggs_30plus"
	AchEggs0to1         AchievementID = "eggs_0to1"
	AchSpeedrun5Min     AchievementID = "speedrun_5min"
	AchHunger90Plus     AchievementID = "hunger_90plus"
	AchSecretRoom       AchievementID = "secret_room"
	AchPerfectRestraint AchievementID = "perfect_restraint"
	AchHell3Times       AchievementID = "hell_3times"
)

// Achievement - описание достижения
type Achievement struct {
	ID          AchievementID
	Name        string
	Description string
	Hidden      bool // не показывается, пока не открыто
}

// Achievements - каталог в порядке показа
var Achievements = []Achievement{
	{AchFirstClear, "First Steps", "Finish the game for the first time.", false},
	{AchNoTraderClear, "Independent", "Clear the maze without trading with a merchant.", false},
	{AchTrader5Plus, "Merchant's Friend", "Trade with merchants 5 or more times.", false},
	{AchEggs30Plus, "Golden Collector", "Collect 30 or more golden eggs.", false},
	{AchEggs0to1, "Virtue of Restraint", "Clear the maze holding at most one golden egg.", false},
	{AchSpeedrun5Min, "Quick Feet", "Clear the maze within 5 minutes.", false},
	{AchHunger90Plus, "Well Fed", "Keep hunger at 90% or more for 30 seconds.", false},
	{AchSecretRoom, "Explorer", "Discover a secret room.", false},
	{AchPerfectRestraint, "Perfect Restraint", "Reach a non-HELL ending with no eggs, no trades and no secret rooms.", true},
	{AchHell3Times, "Road to Ruin", "See the HELL ending 3 or more times.", false},
}

// FindAchievement ищет достижение в каталоге
func FindAchievement(id AchievementID) (Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
