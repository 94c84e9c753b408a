package domain

// IntentKind - вид намерения (маркер на один тик)
type IntentKind uint8

const (
	IntentMove IntentKind = iota
	IntentMeleeAttack
	IntentSpeak
	IntentConsume
)

var intentKindToString = map[IntentKind]string{
	IntentMove:        "MOVE",
	IntentMeleeAttack: "MELEE_ATTACK",
	IntentSpeak:       "SPEAK",
	IntentConsume:     "CONSUME",
}

func (k IntentKind) String() string {
	if s, ok := intentKindToString[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Intent - "сущность Actor хочет сделать X с Target (или в клетку Pos)"
type Intent struct {
	Kind   IntentKind
	Actor  EntityID
	Pos    Position // для IntentMove
	Target EntityID // для атаки, речи, поедания
}

type intentKey struct {
	actor EntityID
	kind  IntentKind
}

// IntentTable - побочная таблица намерений.
// Не больше одного намерения каждого вида на сущность; порядок прикрепления сохраняется.
type IntentTable struct {
	entries []Intent
	index   map[intentKey]struct{}
}

func NewIntentTable() *IntentTable {
	return &IntentTable{index: make(map[intentKey]struct{})}
}

// Attach прикрепляет намерение. false, если такое уже висит на сущности.
func (t *IntentTable) Attach(in Intent) bool {
	key := intentKey{actor: in.Actor, kind: in.Kind}
	if _, ok := t.index[key]; ok {
		return false
	}
	t.index[key] = struct{}{}
	t.entries = append(t.entries, in)
	return true
}

// Has проверяет наличие намерения вида kind у сущности
func (t *IntentTable) Has(actor EntityID, kind IntentKind) bool {
	_, ok := t.index[intentKey{actor: actor, kind: kind}]
	return ok
}

// Take снимает все намерения вида kind в порядке прикрепления
func (t *IntentTable) Take(kind IntentKind) []Intent {
	var taken []Intent
	kept := t.entries[:0]
	for _, in := range t.entries {
		if in.Kind == kind {
			taken = append(taken, in)
			delete(t.index, intentKey{actor: in.Actor, kind: in.Kind})
			continue
		}
		kept = append(kept, in)
	}
	t.entries = kept
	return taken
}

// Drop удаляет все намерения сущности (деспавн)
func (t *IntentTable) Drop(actor EntityID) {
	kept := t.entries[:0]
	for _, in := range t.entries {
		if in.Actor == actor {
			delete(t.index, intentKey{actor: in.Actor, kind: in.Kind})
			continue
		}
		kept = append(kept, in)
	}
	t.entries = kept
}

// Len - количество висящих намерений
func (t *IntentTable) Len() int {
	return len(t.entries)
}
