package domain

// Карты
const (
	// PrimaryMapID - первая созданная карта, мирная, на нее заходят игроки
	PrimaryMapID MapID = 1
)

// Параметры по умолчанию
const (
	DefaultVisionRadius = 8

	// Сколько HP возвращают съеденные кости
	BonesHealAmount = 10

	// Пауза ИИ между решениями (сек)
	AICooldown = 1.0
)

// SpriteTexture - ключ спрайта на клиенте
type SpriteTexture string

const (
	TextureEmpty         SpriteTexture = "empty"
	TextureWallBrick     SpriteTexture = "wall_brick"
	TextureFloorConcrete SpriteTexture = "floor_concrete"
	TextureFloorGrass    SpriteTexture = "floor_grass"
	TextureBones         SpriteTexture = "object_bone"
	TextureWarp          SpriteTexture = "object_warp_teevee_frames_3"
)

// Sound - звуковые подсказки клиенту
type Sound string

const (
	SoundPunch    Sound = "punch"
	SoundEatBones Sound = "eat_bones"
	SoundBump     Sound = "bump"
)
