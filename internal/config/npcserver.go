package config

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/udisondev/npcwarden/internal/ai"
	"github.com/udisondev/npcwarden/internal/game/combat"
	"github.com/udisondev/npcwarden/internal/game/geo"
	"github.com/udisondev/npcwarden/internal/game/zone"
	"github.com/udisondev/npcwarden/internal/model"
	"github.com/udisondev/npcwarden/internal/spawn"
	"github.com/udisondev/npcwarden/internal/world"
)

const defaultMaxHealth = 100

var defaultSpecies = map[model.NpcKind]string{
	model.KindRoamer: "scientist",
	model.KindGuard:  "scarecrow",
}

// Server holds all configuration for the NPC server.
type Server struct {
	LogLevel string `yaml:"log_level"` // debug|info|warn|error

	AI       AIConfig       `yaml:"ai"`
	World    WorldConfig    `yaml:"world"`
	Weapon   WeaponConfig   `yaml:"weapon"`
	Spawns   []SpawnConfig  `yaml:"spawns"`
	Players  []PlayerConfig `yaml:"players"`
	Database DatabaseConfig `yaml:"database"`
	Journal  JournalConfig  `yaml:"journal"`
}

// AIConfig tunes controllers and the tick scheduler.
type AIConfig struct {
	DebugLogging bool          `yaml:"debug_logging"`
	RoamRange    float64       `yaml:"roam_range"`
	DedupRadius  float64       `yaml:"dedup_radius"`
	SlowTick     time.Duration `yaml:"slow_tick"`
	FastTick     time.Duration `yaml:"fast_tick"`
	SenseRange   float64       `yaml:"sense_range"`
	SkipSpecies  []string      `yaml:"skip_species"`
	Seed         uint64        `yaml:"seed"` // 0 = random roaming
}

// Rect is an axis-aligned rectangle in world units.
type Rect struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

// ZoneConfig describes a safe zone.
type ZoneConfig struct {
	ID     int32        `yaml:"id"`
	Name   string       `yaml:"name"`
	Shape  string       `yaml:"shape"` // Cylinder|Cuboid|NPoly
	Nodes  [][2]float64 `yaml:"nodes"`
	Radius float64      `yaml:"radius"`
	MinZ   float64      `yaml:"min_z"`
	MaxZ   float64      `yaml:"max_z"`
}

// WorldConfig describes the simulated area. Sizes are in world units.
type WorldConfig struct {
	OriginX    float64      `yaml:"origin_x"`
	OriginY    float64      `yaml:"origin_y"`
	Width      float64      `yaml:"width"`
	Height     float64      `yaml:"height"`
	CellSize   float64      `yaml:"cell_size"`
	BaseHeight float64      `yaml:"base_height"`
	RegionSize float64      `yaml:"region_size"`
	Walls      []Rect       `yaml:"walls"`
	SafeZones  []ZoneConfig `yaml:"safe_zones"`
}

// DamageConfig is one damage component of a weapon.
type DamageConfig struct {
	Type   string  `yaml:"type"`
	Amount float64 `yaml:"amount"`
}

// WeaponConfig is the melee weapon handed to armed spawns.
type WeaponConfig struct {
	Name           string         `yaml:"name"`
	EffectiveRange float64        `yaml:"effective_range"`
	AttackRadius   float64        `yaml:"attack_radius"`
	RepeatDelay    time.Duration  `yaml:"repeat_delay"`
	Damage         []DamageConfig `yaml:"damage"`
	NpcDamageScale float64        `yaml:"npc_damage_scale"`
	SwingEffect    string         `yaml:"swing_effect"`
}

// SpawnConfig is a spawn point.
type SpawnConfig struct {
	ID           int64         `yaml:"id"`
	Kind         string        `yaml:"kind"` // roamer|guard
	Species      string        `yaml:"species"`
	X            float64       `yaml:"x"`
	Y            float64       `yaml:"y"`
	Count        int           `yaml:"count"`
	MaxHealth    float64       `yaml:"max_health"`
	RespawnDelay time.Duration `yaml:"respawn_delay"`
	Armed        bool          `yaml:"armed"`
}

// PlayerConfig places a scripted player in the demo world.
type PlayerConfig struct {
	Name      string  `yaml:"name"`
	AccountID uint64  `yaml:"account_id"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	MaxHealth float64 `yaml:"max_health"`
}

// JournalConfig tunes the hit journal buffer.
type JournalConfig struct {
	BufferSize    int           `yaml:"buffer_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
	BatchSize     int           `yaml:"batch_size"`
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	journal := combat.DefaultJournalOptions()
	return Server{
		LogLevel: "info",
		AI: AIConfig{
			RoamRange:   ai.DefaultRoamRange,
			DedupRadius: spawn.DefaultDedupRadius,
			SlowTick:    ai.DefaultSlowTick,
			FastTick:    ai.DefaultFastTick,
			SenseRange:  world.DefaultSenseRange,
			SkipSpecies: append([]string(nil), ai.DefaultSkipSpecies...),
		},
		World: WorldConfig{
			OriginX:    -128,
			OriginY:    -128,
			Width:      256,
			Height:     256,
			CellSize:   1,
			RegionSize: world.DefaultRegionSize,
		},
		Weapon: WeaponConfig{
			Name:           "pitchfork",
			EffectiveRange: 2.0,
			AttackRadius:   0.4,
			RepeatDelay:    750 * time.Millisecond,
			Damage:         []DamageConfig{{Type: "slash", Amount: 20}, {Type: "blunt", Amount: 5}},
			NpcDamageScale: 1.5,
			SwingEffect:    "effects/melee/swing_pitchfork",
		},
		Spawns: []SpawnConfig{
			{ID: 1, Kind: "guard", Species: "scarecrow", X: 10, Y: 10, Count: 3, MaxHealth: 150, RespawnDelay: 30 * time.Second, Armed: true},
			{ID: 2, Kind: "roamer", Species: "scientist", X: -20, Y: 15, Count: 2, MaxHealth: 150, RespawnDelay: time.Minute},
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "npcwarden",
			Password: "npcwarden",
			DBName:   "npcwarden",
			SSLMode:  "disable",
		},
		Journal: JournalConfig{
			BufferSize:    journal.BufferSize,
			FlushInterval: journal.FlushInterval,
			BatchSize:     journal.BatchSize,
		},
	}
}

// LoadServer loads server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()
	if err := loadYAML(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SlogLevel maps LogLevel to a slog level. Unknown values mean info.
func (s Server) SlogLevel() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Options converts the section into controller options.
func (a AIConfig) Options() ai.Options {
	opts := ai.DefaultOptions()
	if a.RoamRange > 0 {
		opts.RoamRange = a.RoamRange
	}
	if a.SkipSpecies != nil {
		opts.SkipSpecies = a.SkipSpecies
	}
	if a.Seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(a.Seed, a.Seed))
	}
	return opts
}

// GeoConfig returns the navigation grid covering the world.
func (w WorldConfig) GeoConfig() geo.Config {
	cell := w.CellSize
	if cell <= 0 {
		cell = 1
	}
	return geo.Config{
		OriginX:    w.OriginX,
		OriginY:    w.OriginY,
		Width:      int32(w.Width / cell),
		Height:     int32(w.Height / cell),
		CellSize:   cell,
		BaseHeight: w.BaseHeight,
	}
}

// BuildGeo creates the navigation grid with walls blocked out.
func (w WorldConfig) BuildGeo() *geo.Engine {
	engine := geo.NewEngine(w.GeoConfig())
	for _, r := range w.Walls {
		engine.BlockRect(r.MinX, r.MinY, r.MaxX, r.MaxY)
	}
	return engine
}

// WorldConfig returns the world host configuration.
func (w WorldConfig) WorldConfig(senseRange float64) world.Config {
	return world.Config{
		OriginX:    w.OriginX,
		OriginY:    w.OriginY,
		Width:      w.Width,
		Height:     w.Height,
		RegionSize: w.RegionSize,
		SenseRange: senseRange,
	}
}

// BuildZones creates the zone manager with all safe zones loaded.
func (w WorldConfig) BuildZones() (*zone.Manager, error) {
	defs := make([]zone.Def, 0, len(w.SafeZones))
	for _, z := range w.SafeZones {
		defs = append(defs, zone.Def{
			ID:     z.ID,
			Name:   z.Name,
			Type:   zone.TypeSafe,
			Shape:  z.Shape,
			Nodes:  z.Nodes,
			Radius: z.Radius,
			MinZ:   z.MinZ,
			MaxZ:   z.MaxZ,
		})
	}

	m := zone.NewManager()
	if err := m.Load(defs); err != nil {
		return nil, fmt.Errorf("loading safe zones: %w", err)
	}
	return m, nil
}

// Template converts the section into a weapon template.
func (w WeaponConfig) Template() (model.MeleeWeaponTemplate, error) {
	if w.EffectiveRange <= 0 {
		return model.MeleeWeaponTemplate{}, fmt.Errorf("weapon %q: effective_range must be positive", w.Name)
	}
	if w.RepeatDelay < 0 {
		return model.MeleeWeaponTemplate{}, fmt.Errorf("weapon %q: negative repeat_delay", w.Name)
	}

	damage := make([]model.DamageAmount, 0, len(w.Damage))
	for _, d := range w.Damage {
		damage = append(damage, model.DamageAmount{Type: model.ParseDamageType(d.Type), Amount: d.Amount})
	}
	return model.MeleeWeaponTemplate{
		Name:           w.Name,
		EffectiveRange: w.EffectiveRange,
		AttackRadius:   w.AttackRadius,
		RepeatDelay:    w.RepeatDelay,
		Damage:         damage,
		NpcDamageScale: w.NpcDamageScale,
		SwingEffect:    w.SwingEffect,
	}, nil
}

// ParseKind maps a config kind name to an NPC archetype tag.
func ParseKind(name string) (model.NpcKind, error) {
	switch strings.ToLower(name) {
	case "roamer", string(model.KindRoamer):
		return model.KindRoamer, nil
	case "guard", string(model.KindGuard):
		return model.KindGuard, nil
	default:
		return "", fmt.Errorf("unknown npc kind %q", name)
	}
}

// SpawnPoints converts the spawn list. Armed points get a copy of weapon.
func (s Server) SpawnPoints() ([]spawn.Point, error) {
	var weapon *model.MeleeWeaponTemplate
	points := make([]spawn.Point, 0, len(s.Spawns))
	for _, sc := range s.Spawns {
		kind, err := ParseKind(sc.Kind)
		if err != nil {
			return nil, fmt.Errorf("spawn %d: %w", sc.ID, err)
		}
		if sc.Count < 1 {
			return nil, fmt.Errorf("spawn %d: count must be at least 1", sc.ID)
		}

		species := sc.Species
		if species == "" {
			species = defaultSpecies[kind]
		}
		health := sc.MaxHealth
		if health <= 0 {
			health = defaultMaxHealth
		}

		p := spawn.Point{
			ID:           sc.ID,
			Kind:         kind,
			Species:      species,
			Location:     model.NewLocation(sc.X, sc.Y, 0),
			Count:        sc.Count,
			MaxHealth:    health,
			RespawnDelay: sc.RespawnDelay,
		}
		if sc.Armed {
			if weapon == nil {
				tmpl, err := s.Weapon.Template()
				if err != nil {
					return nil, err
				}
				weapon = &tmpl
			}
			p.Weapon = weapon
		}
		points = append(points, p)
	}
	return points, nil
}

// Options converts the section into journal options.
func (j JournalConfig) Options() combat.JournalOptions {
	return combat.JournalOptions{
		BufferSize:    j.BufferSize,
		FlushInterval: j.FlushInterval,
		BatchSize:     j.BatchSize,
	}
}
