package domain

// Entity - сущность арены. Компонент == nil означает, что свойства нет.
type Entity struct {
	// Идентификация
	ID   EntityID `json:"id"`
	Name string   `json:"name"`

	Pos *MapPosition `json:"pos,omitempty"`

	Render   *RenderComponent   `json:"render,omitempty"`
	Hp       *HpComponent       `json:"hp,omitempty"`
	Combat   *CombatStats       `json:"combat,omitempty"`
	Cooldown *Cooldown          `json:"cooldown,omitempty"`
	Eyes     *EyesComponent     `json:"eyes,omitempty"`
	AI       *AIComponent       `json:"ai,omitempty"`
	Dialogue *DialogueComponent `json:"dialogue,omitempty"`
	User     *UserComponent     `json:"user,omitempty"`
	Enemy    *EnemyComponent    `json:"enemy,omitempty"`

	// Флаги-маркеры
	BlocksMovement bool `json:"blocksMovement"`
	BlocksLight    bool `json:"blocksLight"`
	Bones          bool `json:"bones,omitempty"`

	// WarpTo - карта, куда переносит наступившего игрока (0 - не переход)
	WarpTo MapID `json:"warpTo,omitempty"`
}

// IsOn проверяет, стоит ли сущность на указанной карте
func (e *Entity) IsOn(mapID MapID) bool {
	return e.Pos != nil && e.Pos.MapID == mapID
}

// IsAt проверяет точное совпадение карты и клетки
func (e *Entity) IsAt(mapID MapID, pos Position) bool {
	return e.IsOn(mapID) && e.Pos.Pos == pos
}

// IsAlive - у сущности есть здоровье и оно положительное
func (e *Entity) IsAlive() bool {
	return e.Hp != nil && e.Hp.Current > 0
}

// IsWarp - клетка-переход между картами
func (e *Entity) IsWarp() bool {
	return e.WarpTo != 0
}

// Texture возвращает спрайт или TextureEmpty
func (e *Entity) Texture() SpriteTexture {
	if e.Render == nil {
		return TextureEmpty
	}
	return e.Render.Texture
}
