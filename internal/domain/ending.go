package domain

// EndingKind - итог забега
type EndingKind string

const (
	EndingHell         EndingKind = "HELL"
	EndingHeavenWorker EndingKind = "HEAVEN_WORKER"
	EndingKing         EndingKind = "KING"
	EndingNoble        EndingKind = "NOBLE"
	EndingFarmer       EndingKind = "FARMER"
	EndingBeggar       EndingKind = "BEGGAR"
)

// AllEndings - все концовки в порядке показа в рекордах
var AllEndings = []EndingKind{
	EndingKing,
	EndingNoble,
	EndingFarmer,
	EndingBeggar,
	EndingHeavenWorker,
	EndingHell,
}

var endingNames = map[EndingKind]string{
	EndingHell:         "Hell",
	EndingHeavenWorker: "Heaven's Worker",
	EndingKing:         "The Golden King",
	EndingNoble:        "Comfortable Noble",
	EndingFarmer:       "Honest Farmer",
	EndingBeggar:       "Wandering Beggar",
}

var endingDescriptions = map[EndingKind]string{
	EndingHell:         "Greed consumed you. The goose's curse drags you below.",
	EndingHeavenWorker: "You refused the goose. A quiet life of honest labor awaits in the heavens.",
	EndingKing:         "A mountain of gold and a clear head. You rule the land.",
	EndingNoble:        "Enough gold for a comfortable life among the nobility.",
	EndingFarmer:       "Little gold, but a clean conscience. You return to your fields.",
	EndingBeggar:       "You escaped with nothing. The road is your home now.",
}

// Valid - известная ли концовка
func (e EndingKind) Valid() bool {
	_, ok := endingNames[e]
	return ok
}

// Name - отображаемое имя
func (e EndingKind) Name() string {
	if val, ok := endingNames[e]; ok {
		return val
	}
	return string(e)
}

// Description - одна строка текста концовки
func (e EndingKind) Description() string {
	return endingDescriptions[e]
}

// Rank - буква ранга за очки
type Rank string

const (
	RankS Rank = "S"
	RankA Rank = "A"
	RankB Rank = "B"
	RankC Rank = "C"
)
