package zone

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/udisondev/npcwarden/internal/model"
)

const gridSize = 64.0 // мировые единицы на ячейку сетки

type gridKey struct {
	gx, gy int32
}

func toGridKey(x, y float64) gridKey {
	return gridKey{gx: int32(math.Floor(x / gridSize)), gy: int32(math.Floor(y / gridSize))}
}

// Manager manages all zones with spatial indexing for fast lookups.
// Safe for concurrent reads after loading; Add takes a write lock.
type Manager struct {
	mu    sync.RWMutex
	zones []Zone
	byID  map[int32]Zone
	grid  map[gridKey][]Zone
}

// NewManager creates a new empty zone manager.
func NewManager() *Manager {
	return &Manager{
		byID: make(map[int32]Zone),
		grid: make(map[gridKey][]Zone),
	}
}

// Load adds every definition, skipping invalid ones with a warning.
func (m *Manager) Load(defs []Def) error {
	var firstErr error
	for _, def := range defs {
		if err := m.Add(def); err != nil {
			slog.Warn("skip zone", "id", def.ID, "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	slog.Info("zones loaded", "count", m.Count())
	return firstErr
}

// Add validates a definition, builds the typed zone and indexes it.
func (m *Manager) Add(def Def) error {
	z, err := newTypedZone(def)
	if err != nil {
		return fmt.Errorf("adding zone %d: %w", def.ID, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[z.ID()]; exists {
		return fmt.Errorf("adding zone %d: duplicate id", def.ID)
	}

	m.zones = append(m.zones, z)
	m.byID[z.ID()] = z

	minX, minY, maxX, maxY := z.bounds()
	lo, hi := toGridKey(minX, minY), toGridKey(maxX, maxY)
	for gx := lo.gx; gx <= hi.gx; gx++ {
		for gy := lo.gy; gy <= hi.gy; gy++ {
			key := gridKey{gx, gy}
			m.grid[key] = append(m.grid[key], z)
		}
	}
	return nil
}

// indexedZone is a Zone that exposes its planar bounds for the grid index.
type indexedZone interface {
	Zone
	bounds() (minX, minY, maxX, maxY float64)
}

// newTypedZone creates the concrete zone for a definition.
func newTypedZone(def Def) (indexedZone, error) {
	if len(def.Nodes) == 0 {
		return nil, fmt.Errorf("zone has no nodes")
	}
	switch def.Shape {
	case ShapeCylinder:
		if def.Radius <= 0 {
			return nil, fmt.Errorf("cylinder radius must be positive, got %v", def.Radius)
		}
	case ShapeCuboid:
		if len(def.Nodes) < 2 {
			return nil, fmt.Errorf("cuboid needs 2 nodes, got %d", len(def.Nodes))
		}
	case ShapeNPoly:
		if len(def.Nodes) < 3 {
			return nil, fmt.Errorf("polygon needs 3 nodes, got %d", len(def.Nodes))
		}
	default:
		return nil, fmt.Errorf("unknown shape %q", def.Shape)
	}

	base := newBaseZone(def)
	switch def.Type {
	case TypeSafe:
		return NewSafeZone(base), nil
	case TypeCombat, "":
		return base, nil
	default:
		return nil, fmt.Errorf("unknown zone type %q", def.Type)
	}
}

// ZonesAt returns all zones containing loc.
func (m *Manager) ZonesAt(loc model.Location) []Zone {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []Zone
	for _, z := range m.grid[toGridKey(loc.X, loc.Y)] {
		if z.Contains(loc) {
			result = append(result, z)
		}
	}
	return result
}

// InSafeZone reports whether loc lies inside any safe zone.
func (m *Manager) InSafeZone(loc model.Location) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, z := range m.grid[toGridKey(loc.X, loc.Y)] {
		if z.IsSafe() && z.Contains(loc) {
			return true
		}
	}
	return false
}

// Zone returns a zone by ID.
func (m *Manager) Zone(id int32) (Zone, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	z, ok := m.byID[id]
	return z, ok
}

// Count returns the number of loaded zones.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.zones)
}
