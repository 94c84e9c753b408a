package domain

import (
	"fmt"
	"strconv"
)

// EntityID - упакованный идентификатор (Generation + Index слота арены).
// Поколение начинается с 1, поэтому нулевой ID никогда не валиден.
type EntityID uint64

// NoEntity - пустая ссылка
const NoEntity EntityID = 0

const (
	bitsIndex  = 32
	maskIndex  = (1 << bitsIndex) - 1
	shiftGen   = bitsIndex
	maskGenera = (1 << 32) - 1
)

// PackEntityID создает ID из поколения и индекса слота
func PackEntityID(generation, index uint32) EntityID {
	id := uint64(index) & maskIndex
	id |= (uint64(generation) & maskGenera) << shiftGen
	return EntityID(id)
}

func (id EntityID) Index() uint32 {
	return uint32(id & maskIndex)
}

func (id EntityID) Generation() uint32 {
	return uint32((id >> shiftGen) & maskGenera)
}

// MarshalJSON сериализует ID в строку, так как JS теряет точность для больших int64
func (id EntityID) MarshalJSON() ([]byte, error) {
	s := strconv.FormatUint(uint64(id), 10)
	return []byte(`"` + s + `"`), nil
}

// UnmarshalJSON парсит строку или число из JSON
func (id *EntityID) UnmarshalJSON(data []byte) error {
	if len(data) > 1 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	val, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return err
	}
	*id = EntityID(val)
	return nil
}

// String для логов: [Gen:Idx]
func (id EntityID) String() string {
	return fmt.Sprintf("[%d:%d]", id.Generation(), id.Index())
}

// MapID - идентификатор логической карты. Выдается счетчиком WorldState.
type MapID int

// UserID - идентификатор подключенного клиента. Выдается сетевым слоем.
type UserID int

func (u UserID) String() string {
	return strconv.Itoa(int(u))
}
