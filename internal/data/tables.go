// Package data - статические таблицы игры (карты, легенда, облики, враги, диалоги).
// Таблицы встроены в бинарник и загружаются один раз при старте.
package data

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"unicode/utf8"

	"github.com/alexeagleson/goblin-boys/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var embedded embed.FS

// LegendEntry - что стоит в клетке, помеченной символом
type LegendEntry struct {
	Name           string               `yaml:"name"`
	Texture        domain.SpriteTexture `yaml:"texture"`
	BlocksMovement bool                 `yaml:"blocks_movement"`
	BlocksLight    bool                 `yaml:"blocks_light"`
	// Dialogue - ключ в таблице диалогов
	Dialogue string `yaml:"dialogue"`
	// WarpTo - имя карты, куда переносит клетка
	WarpTo string `yaml:"warp_to"`
}

// IsEmpty - голый пол, сущность не создается
func (l LegendEntry) IsEmpty() bool {
	return l.Texture == "" || l.Texture == domain.TextureEmpty
}

// MapData - одна карта в виде текстовой сетки
type MapData struct {
	Name  string               `yaml:"name"`
	Floor domain.SpriteTexture `yaml:"floor"`
	// Enemies - на этой карте появляются враги
	Enemies bool                   `yaml:"enemies"`
	Layout  string                 `yaml:"layout"`
	Legend  map[string]LegendEntry `yaml:"legend"`
}

// Rows возвращает непустые строки раскладки
func (m MapData) Rows() []string {
	var rows []string
	for _, line := range strings.Split(m.Layout, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	return rows
}

// PlayerConfig - облик игрока
type PlayerConfig struct {
	Visibility     int                  `yaml:"visibility"`
	BlocksMovement bool                 `yaml:"blocks_movement"`
	BlocksLight    bool                 `yaml:"blocks_light"`
	Texture        domain.SpriteTexture `yaml:"texture"`
	Hp             domain.HpComponent   `yaml:"hp"`
	CombatStats    domain.CombatStats   `yaml:"combat_stats"`
	MoveTime       float64              `yaml:"move_time"`
	AttackTime     float64              `yaml:"attack_time"`
}

// EnemyConfig - шаблон врага
type EnemyConfig struct {
	Name           string               `yaml:"name"`
	Visibility     int                  `yaml:"visibility"`
	BlocksMovement bool                 `yaml:"blocks_movement"`
	Paths          bool                 `yaml:"paths"`
	Texture        domain.SpriteTexture `yaml:"texture"`
	Hp             domain.HpComponent   `yaml:"hp"`
	CombatStats    domain.CombatStats   `yaml:"combat_stats"`
	AttackTime     float64              `yaml:"attack_time"`
	MoveTime       float64              `yaml:"move_time"`
}

// Tables - все таблицы вместе
type Tables struct {
	Maps              []MapData
	Players           map[string]PlayerConfig
	DefaultAppearance string
	Enemies           map[string]EnemyConfig
	Dialogue          map[string][]string
}

type mapsFile struct {
	Maps []MapData `yaml:"maps"`
}

type playersFile struct {
	Default string                  `yaml:"default"`
	Players map[string]PlayerConfig `yaml:"players"`
}

type enemiesFile struct {
	Enemies map[string]EnemyConfig `yaml:"enemies"`
}

type dialogueFile struct {
	Dialogue map[string][]string `yaml:"dialogue"`
}

// Load читает встроенные таблицы
func Load() (*Tables, error) {
	return LoadFS(embedded)
}

// LoadFS читает таблицы из произвольной файловой системы (тесты, моды)
func LoadFS(fsys fs.FS) (*Tables, error) {
	var (
		maps     mapsFile
		players  playersFile
		enemies  enemiesFile
		dialogue dialogueFile
	)

	files := []struct {
		name string
		dst  any
	}{
		{"maps.yaml", &maps},
		{"players.yaml", &players},
		{"enemies.yaml", &enemies},
		{"dialogue.yaml", &dialogue},
	}
	for _, f := range files {
		if err := decodeFile(fsys, f.name, f.dst); err != nil {
			return nil, err
		}
	}

	t := &Tables{
		Maps:              maps.Maps,
		Players:           players.Players,
		DefaultAppearance: players.Default,
		Enemies:           enemies.Enemies,
		Dialogue:          dialogue.Dialogue,
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	return t, nil
}

func decodeFile(fsys fs.FS, name string, dst any) error {
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("data: open %q: %w", name, err)
	}
	defer f.Close()
	return decode(f, name, dst)
}

func decode(r io.Reader, name string, dst any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("data: decode %q: %w", name, err)
	}
	return nil
}

// Validate проверяет связность таблиц. Возвращает все найденные ошибки разом.
func (t *Tables) Validate() error {
	var errs []error

	if len(t.Maps) == 0 {
		errs = append(errs, errors.New("at least one map is required"))
	}

	names := make(map[string]bool, len(t.Maps))
	for _, m := range t.Maps {
		if names[m.Name] {
			errs = append(errs, fmt.Errorf("map %q is declared twice", m.Name))
		}
		names[m.Name] = true
	}

	for _, m := range t.Maps {
		prefix := fmt.Sprintf("map %q", m.Name)
		for key, entry := range m.Legend {
			if utf8.RuneCountInString(key) != 1 {
				errs = append(errs, fmt.Errorf("%s: legend key %q must be a single character", prefix, key))
			}
			if entry.Dialogue != "" {
				if _, ok := t.Dialogue[entry.Dialogue]; !ok {
					errs = append(errs, fmt.Errorf("%s: legend %q refers to unknown dialogue %q", prefix, key, entry.Dialogue))
				}
			}
			if entry.WarpTo != "" && !names[entry.WarpTo] {
				errs = append(errs, fmt.Errorf("%s: legend %q warps to unknown map %q", prefix, key, entry.WarpTo))
			}
		}

		rows := m.Rows()
		if len(rows) < 3 {
			errs = append(errs, fmt.Errorf("%s: layout needs at least 3 rows", prefix))
			continue
		}
		width := utf8.RuneCountInString(rows[0])
		for y, row := range rows {
			if n := utf8.RuneCountInString(row); n != width {
				errs = append(errs, fmt.Errorf("%s: row %d has %d cells, want %d", prefix, y, n, width))
			}
			for x, r := range []rune(row) {
				if _, ok := m.Legend[string(r)]; !ok {
					errs = append(errs, fmt.Errorf("%s: unrecognized character %q at (%d, %d)", prefix, r, x, y))
				}
			}
		}
	}

	if _, ok := t.Players[t.DefaultAppearance]; !ok {
		errs = append(errs, fmt.Errorf("default appearance %q is not a player config", t.DefaultAppearance))
	}
	for name, p := range t.Players {
		if p.Hp.Max <= 0 {
			errs = append(errs, fmt.Errorf("player %q: hp.max must be positive", name))
		}
	}

	for _, kind := range []domain.EnemyKind{domain.EnemySlime, domain.EnemyRat, domain.EnemyRatKing} {
		cfg, ok := t.Enemies[kind.String()]
		if !ok {
			errs = append(errs, fmt.Errorf("enemy %q is missing", kind))
			continue
		}
		if cfg.Hp.Max <= 0 {
			errs = append(errs, fmt.Errorf("enemy %q: hp.max must be positive", kind))
		}
	}

	return errors.Join(errs...)
}

// Player возвращает облик по имени или облик по умолчанию
func (t *Tables) Player(appearance string) PlayerConfig {
	if p, ok := t.Players[appearance]; ok {
		return p
	}
	return t.Players[t.DefaultAppearance]
}

// Enemy возвращает шаблон врага
func (t *Tables) Enemy(kind domain.EnemyKind) (EnemyConfig, bool) {
	cfg, ok := t.Enemies[kind.String()]
	return cfg, ok
}

// MapIndex - позиция карты по имени в порядке создания
func (t *Tables) MapIndex(name string) (int, bool) {
	for i, m := range t.Maps {
		if m.Name == name {
			return i, true
		}
	}
	return 0, false
}
