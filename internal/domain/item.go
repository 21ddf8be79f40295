package domain

// ItemKind - тип подбираемого предмета
type ItemKind uint8

const (
	ItemGoldenEgg ItemKind = iota
	ItemFood
	ItemSecret
)

var itemKindToString = map[ItemKind]string{
	ItemGoldenEgg: "GOLDEN_EGG",
	ItemFood:      "FOOD",
	ItemSecret:    "SECRET_ITEM",
}

func (k ItemKind) String() string {
	if val, ok := itemKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// Item - предмет в лабиринте. Picked переходит в true ровно один раз.
type Item struct {
	Kind   ItemKind
	Tile   TilePos
	Pos    PixelPos
	Picked bool
}

// NewItem размещает предмет в центре клетки
func NewItem(kind ItemKind, tile TilePos) *Item {
	return &Item{Kind: kind, Tile: tile, Pos: tile.Center()}
}

// SecretRoom - клетка стены с наградой. Остается стеной, награда берется с соседней клетки.
type SecretRoom struct {
	Tile  TilePos
	Pos   PixelPos
	Item  *Item
	Found bool
}

// NewSecretRoom создает тайник вместе с его предметом
func NewSecretRoom(tile TilePos) *SecretRoom {
	return &SecretRoom{
		Tile: tile,
		Pos:  tile.Center(),
		Item: NewItem(ItemSecret, tile),
	}
}
