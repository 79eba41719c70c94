package ai

import (
	"sync"

	"github.com/udisondev/npcwarden/internal/game/combat"
	"github.com/udisondev/npcwarden/internal/game/geo"
	"github.com/udisondev/npcwarden/internal/model"
)

const accountBase uint64 = 76561197960265728

func newTestPlayer(id uint32, loc model.Location) *model.Player {
	return model.NewPlayer(id, accountBase+uint64(id), "player", loc, 100)
}

func newTestGuard(id uint32, loc model.Location) *model.Npc {
	return model.NewNpc(id, model.KindGuard, "scarecrow", loc, 300)
}

func newTestRoamer(id uint32, loc model.Location) *model.Npc {
	return model.NewNpc(id, model.KindRoamer, "scientist", loc, 150)
}

func newTestWeapon(id uint32) *model.MeleeWeapon {
	return model.NewMeleeWeapon(id, model.MeleeWeaponTemplate{
		Name:           "pitchfork",
		EffectiveRange: 2,
		AttackRadius:   0.4,
		RepeatDelay:    750_000_000, // 750ms
		Damage: []model.DamageAmount{
			{Type: model.DamageSlash, Amount: 20},
			{Type: model.DamageBlunt, Amount: 5},
		},
		NpcDamageScale: 2,
		SwingEffect:    "effects/swing_pitchfork",
	})
}

type fakeNav struct {
	dest       model.Location
	speed      model.NavSpeed
	destCalls  int
	speedCalls int
	moving     bool
	facing     uint32
	clears     int
}

func (n *fakeNav) SetDestination(loc model.Location, speed model.NavSpeed) {
	n.dest = loc
	n.speed = speed
	n.destCalls++
}

func (n *fakeNav) SetSpeed(speed model.NavSpeed) {
	n.speed = speed
	n.speedCalls++
}

func (n *fakeNav) ClearFacingOverride() {
	n.facing = 0
	n.clears++
}

func (n *fakeNav) SetFacingTowards(objectID uint32) { n.facing = objectID }
func (n *fakeNav) IsMoving() bool                   { return n.moving }

type fakeNavs map[uint32]*fakeNav

func (f fakeNavs) Navigator(npcID uint32) (Navigator, bool) {
	n, ok := f[npcID]
	if !ok {
		return nil, false
	}
	return n, true
}

type fakeSenses struct {
	targets    []model.Entity
	los        map[uint32]bool
	senseRange float64
	hostile    bool
}

func (s *fakeSenses) Targets(uint32) []model.Entity       { return s.targets }
func (s *fakeSenses) LineOfSight(_, targetID uint32) bool { return s.los[targetID] }
func (s *fakeSenses) SenseRange(uint32) float64           { return s.senseRange }
func (s *fakeSenses) HasHostileTarget(uint32) bool        { return s.hostile }

type flatTerrain float64

func (h flatTerrain) HeightAt(_, _ float64) float64 { return float64(h) }

// fakeNavMesh snaps every point onto itself unless snapFails is set and
// answers paths with a fixed status.
type fakeNavMesh struct {
	snapFails bool
	path      *geo.Path // nil: complete path
	sampled   []model.Location
}

func (m *fakeNavMesh) SampleNavigable(loc model.Location, _ float64, _ int32) (model.Location, bool) {
	m.sampled = append(m.sampled, loc)
	if m.snapFails {
		return model.Location{}, false
	}
	return loc, true
}

func (m *fakeNavMesh) ComputePath(from, to model.Location, _ int32) geo.Path {
	if m.path != nil {
		return *m.path
	}
	return geo.Path{Status: geo.PathComplete, Corners: []model.Location{from, to}}
}

type raycastCall struct {
	ray         model.Ray
	radius      float64
	maxDistance float64
}

// fakePhysics returns passes[i] for the i-th RaycastAll call.
type fakePhysics struct {
	passes [][]RaycastHit
	calls  []raycastCall
}

func (p *fakePhysics) RaycastAll(ray model.Ray, radius, maxDistance float64, _ int32) []RaycastHit {
	i := len(p.calls)
	p.calls = append(p.calls, raycastCall{ray: ray, radius: radius, maxDistance: maxDistance})
	if i < len(p.passes) {
		return p.passes[i]
	}
	return nil
}

type impact struct {
	point, normal model.Location
	material      string
}

type fakeEffects struct {
	damage  map[uint32]float64
	signals []model.Signal
	played  []string
	impacts []impact
}

func newFakeEffects() *fakeEffects {
	return &fakeEffects{damage: make(map[uint32]float64)}
}

func (e *fakeEffects) ApplyDamage(target model.Entity, amount float64, _ model.DamageType, _ *model.Npc) bool {
	e.damage[target.ObjectID()] += amount
	return false
}

func (e *fakeEffects) PlayEffect(path string, _, _ model.Location, _ *model.Npc) {
	e.played = append(e.played, path)
}

func (e *fakeEffects) BroadcastSignal(_ *model.Npc, signal model.Signal) {
	e.signals = append(e.signals, signal)
}

func (e *fakeEffects) ImpactEffect(point, normal model.Location, material string) {
	e.impacts = append(e.impacts, impact{point: point, normal: normal, material: material})
}

type fakeWeapons struct {
	weapon *model.MeleeWeapon
	calls  int
}

func (w *fakeWeapons) HeldWeapon(*model.Npc) *model.MeleeWeapon {
	w.calls++
	return w.weapon
}

// safeBelowY marks everything with Y < limit as a safe zone.
type safeBelowY float64

func (s safeBelowY) InSafeZone(loc model.Location) bool { return loc.Y < float64(s) }

type fakeRecorder struct {
	mu   sync.Mutex
	hits []combat.HitRecord
}

func (r *fakeRecorder) RecordHit(rec combat.HitRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hits = append(r.hits, rec)
}

type testHost struct {
	Host
	navs    fakeNavs
	senses  *fakeSenses
	navMesh *fakeNavMesh
	physics *fakePhysics
	effects *fakeEffects
	weapons *fakeWeapons
	hits    *fakeRecorder
}

func newTestHost() *testHost {
	h := &testHost{
		navs:    fakeNavs{},
		senses:  &fakeSenses{los: map[uint32]bool{}, senseRange: 30},
		navMesh: &fakeNavMesh{},
		physics: &fakePhysics{},
		effects: newFakeEffects(),
		weapons: &fakeWeapons{},
		hits:    &fakeRecorder{},
	}
	h.Host = Host{
		Terrain:    flatTerrain(0),
		NavMesh:    h.navMesh,
		Physics:    h.physics,
		Navigators: h.navs,
		Senses:     h.senses,
		Effects:    h.effects,
		Weapons:    h.weapons,
		SafeZones:  safeBelowY(-1000),
		Hits:       h.hits,
	}
	return h
}

// nav attaches an idle navigator to npcID.
func (h *testHost) nav(npcID uint32) *fakeNav {
	n := &fakeNav{}
	h.navs[npcID] = n
	return n
}
