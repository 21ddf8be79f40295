package api

// --- ДВИЖОК -> ИНТЕРФЕЙС ---

// HUD - снимок состояния забега для отрисовки одного кадра.
// Поля плоские, интерфейс ничего не пересчитывает сам.
type HUD struct {
	// Scene текущая сцена директора (TITLE, INTRO, MAZE, ...).
	Scene string `json:"scene"`

	RunID     string  `json:"runId,omitempty"`
	Seed      int64   `json:"seed"`
	Tutorial  bool    `json:"tutorial,omitempty"`
	Challenge string  `json:"challenge,omitempty"`
	Time      float64 `json:"time"`

	// TimeLeft для GREED_OVERDRIVE, иначе 0.
	TimeLeft float64 `json:"timeLeft,omitempty"`

	Player *PlayerView `json:"player,omitempty"`

	// Grid метаданные о размере всей карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map - клетки в радиусе обзора игрока.
	Map []TileView `json:"map,omitempty"`

	// Objects - видимые предметы и торговцы.
	Objects []ObjectView `json:"objects,omitempty"`

	// MerchantNearby true, если рядом есть торговец и можно торговать.
	MerchantNearby bool `json:"merchantNearby"`

	// Popup - последнее сообщение (сделка, подбор, провал испытания).
	Popup string `json:"popup,omitempty"`
}

// PlayerView - производные атрибуты игрока
type PlayerView struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	TileX     int     `json:"tileX"`
	TileY     int     `json:"tileY"`
	Hunger    float64 `json:"hunger"`
	MaxHunger float64 `json:"maxHunger"`
	Eggs      int     `json:"eggs"`
	Speed     float64 `json:"speed"`
	Vision    int     `json:"vision"`
	Alive     bool    `json:"alive"`

	Effects []EffectView `json:"effects,omitempty"`
}

// EffectView - активный эффект
type EffectView struct {
	Kind      string  `json:"kind"`
	Label     string  `json:"label"`
	Remaining float64 `json:"remaining"`
	Permanent bool    `json:"permanent,omitempty"`
}

// GridMeta содержит общие размеры карты
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView - одна клетка в поле зрения
type TileView struct {
	X      int  `json:"x"`
	Y      int  `json:"y"`
	IsWall bool `json:"isWall"`
	IsExit bool `json:"isExit,omitempty"`
}

// ObjectView - предмет, тайник или торговец
type ObjectView struct {
	Type string `json:"type"` // GOLDEN_EGG, FOOD, SECRET_ITEM, MERCHANT
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// EndingView - экран концовки
type EndingView struct {
	Kind         string   `json:"kind"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Score        int      `json:"score"`
	Rank         string   `json:"rank"`
	Achievements []string `json:"achievements,omitempty"`
}

// --- ИНТЕРФЕЙС -> ДВИЖОК ---

// DirectionPayload - направление движения на этот кадр
type DirectionPayload struct {
	Dx int `json:"dx"`
	Dy int `json:"dy"`
}

// TradePayload - выбор сделки у торговца
type TradePayload struct {
	Mode string `json:"mode"` // "gamble" | "safe"
}

// ChoicePayload - выбор пункта меню или реплики
type ChoicePayload struct {
	Index int `json:"index"`
	Count int `json:"-"` // сколько пунктов в меню, заполняет движок
}
