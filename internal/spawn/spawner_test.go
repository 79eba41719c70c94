package spawn

import (
	"testing"
	"time"

	"github.com/udisondev/npcwarden/internal/ai"
	"github.com/udisondev/npcwarden/internal/game/combat"
	"github.com/udisondev/npcwarden/internal/model"
)

var pitchfork = model.MeleeWeaponTemplate{
	Name:           "pitchfork",
	EffectiveRange: 2,
	AttackRadius:   0.4,
	RepeatDelay:    750 * time.Millisecond,
	Damage:         []model.DamageAmount{{Type: model.DamageSlash, Amount: 20}},
	NpcDamageScale: 2,
}

func TestSpawner_SpawnAll(t *testing.T) {
	w := newTestWorld(t)
	points := []Point{
		{ID: 1, Kind: model.KindGuard, Species: "scarecrow", Location: model.NewLocation(0, 0, 0), Count: 5, MaxHealth: 150, Weapon: &pitchfork},
		{ID: 2, Kind: model.KindRoamer, Species: "scientist", Location: model.NewLocation(20, 20, 0), Count: 2, MaxHealth: 100},
	}
	s := NewSpawner(w, points)

	if err := s.SpawnAll(); err != nil {
		t.Fatalf("SpawnAll() error = %v", err)
	}
	if got := s.Tracked(); got != 7 {
		t.Errorf("Tracked() = %d, want 7", got)
	}

	guards := w.FindAllOfKind(model.KindGuard)
	if len(guards) != 5 {
		t.Fatalf("guards = %d, want 5", len(guards))
	}
	for i, a := range guards {
		if w.HeldWeapon(a) == nil {
			t.Errorf("guard %d spawned empty-handed", a.ObjectID())
		}
		for _, b := range guards[i+1:] {
			if d := a.Location().Distance(b.Location()); d < DefaultDedupRadius {
				t.Errorf("guards %d and %d only %.2f apart", a.ObjectID(), b.ObjectID(), d)
			}
		}
	}

	roamers := w.FindAllOfKind(model.KindRoamer)
	if len(roamers) != 2 {
		t.Fatalf("roamers = %d, want 2", len(roamers))
	}
	if w.HeldWeapon(roamers[0]) != nil {
		t.Error("roamer should spawn empty-handed")
	}
}

func TestSpawner_SpawnAllOutOfBounds(t *testing.T) {
	w := newTestWorld(t)
	s := NewSpawner(w, []Point{
		{ID: 9, Kind: model.KindGuard, Location: model.NewLocation(500, 500, 0), Count: 1, MaxHealth: 10},
	})
	if err := s.SpawnAll(); err == nil {
		t.Error("SpawnAll() outside the world should fail")
	}
}

func TestSpawner_KillSchedulesRespawn(t *testing.T) {
	w := newTestWorld(t)
	points := []Point{
		{ID: 1, Kind: model.KindGuard, Species: "scarecrow", Location: model.NewLocation(0, 0, 0), Count: 2, MaxHealth: 150, RespawnDelay: 30 * time.Second},
	}
	s := NewSpawner(w, points)
	w.Subscribe(s)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.Respawns().now = func() time.Time { return base }

	if err := s.SpawnAll(); err != nil {
		t.Fatalf("SpawnAll() error = %v", err)
	}
	victim := w.FindAllOfKind(model.KindGuard)[1]
	home := victim.Location()

	w.Destroy(victim)
	w.DispatchEvents()

	if got := s.Tracked(); got != 1 {
		t.Errorf("Tracked() after kill = %d, want 1", got)
	}
	task, ok := s.Respawns().Task(1, 1)
	if !ok {
		t.Fatal("respawn task for slot 1 not scheduled")
	}
	if want := base.Add(30 * time.Second); !task.RespawnTime.Equal(want) {
		t.Errorf("RespawnTime = %v, want %v", task.RespawnTime, want)
	}

	if n := s.Respawns().ProcessTasks(base.Add(10 * time.Second)); n != 0 {
		t.Errorf("ProcessTasks() early = %d, want 0", n)
	}
	if n := s.Respawns().ProcessTasks(base.Add(30 * time.Second)); n != 1 {
		t.Fatalf("ProcessTasks() = %d, want 1", n)
	}
	if s.Respawns().TaskCount() != 0 {
		t.Error("task should be consumed")
	}

	guards := w.FindAllOfKind(model.KindGuard)
	if len(guards) != 2 {
		t.Fatalf("guards after respawn = %d, want 2", len(guards))
	}
	respawned := guards[1]
	if respawned.ObjectID() == victim.ObjectID() {
		t.Error("respawned NPC must get a new object ID")
	}
	if respawned.Location() != home {
		t.Errorf("respawned at %v, want slot location %v", respawned.Location(), home)
	}
}

func TestSpawner_NoRespawnWithoutDelay(t *testing.T) {
	w := newTestWorld(t)
	s := NewSpawner(w, []Point{
		{ID: 1, Kind: model.KindRoamer, Species: "scientist", Location: model.NewLocation(0, 0, 0), Count: 1, MaxHealth: 100},
	})
	w.Subscribe(s)
	if err := s.SpawnAll(); err != nil {
		t.Fatalf("SpawnAll() error = %v", err)
	}

	w.Destroy(w.FindAllOfKind(model.KindRoamer)[0])
	w.DispatchEvents()

	if s.Respawns().TaskCount() != 0 {
		t.Error("point without respawn delay should not schedule a task")
	}
}

func TestRespawnTaskManager_Cancel(t *testing.T) {
	s := NewSpawner(newTestWorld(t), nil)
	p := &Point{ID: 4, Kind: model.KindGuard}

	s.Respawns().ScheduleRespawn(p, 0, time.Minute)
	s.Respawns().ScheduleRespawn(p, 1, time.Minute)
	s.Respawns().CancelRespawn(4, 0)

	if got := s.Respawns().TaskCount(); got != 1 {
		t.Errorf("TaskCount() = %d, want 1", got)
	}
	if _, ok := s.Respawns().Task(4, 0); ok {
		t.Error("cancelled task still present")
	}
}

// A spawned guard is picked up by the registry and strikes a player
// standing in reach.
func TestSpawnedGuardAttacksPlayer(t *testing.T) {
	w := newTestWorld(t)
	journal := combat.NewJournal(nil, combat.DefaultJournalOptions())
	tm := ai.NewTickManager(time.Second, 50*time.Millisecond)
	reg := NewRegistry(w, tm, DefaultDedupRadius, DefaultArchetypes(w.Host(journal), ai.DefaultOptions())...)

	s := NewSpawner(w, []Point{
		{ID: 1, Kind: model.KindGuard, Species: "scarecrow", Location: model.NewLocation(0, 0, 0), Count: 1, MaxHealth: 150, Weapon: &pitchfork},
	})
	if err := s.SpawnAll(); err != nil {
		t.Fatalf("SpawnAll() error = %v", err)
	}
	reg.CatchUp()
	defer reg.Teardown()

	pid := w.IDs().NextPlayerID()
	player := model.NewPlayer(pid, 76561197960265728+uint64(pid), "visitor", model.NewLocation(1.2, 0, 0), 100)
	if err := w.Spawn(player); err != nil {
		t.Fatalf("Spawn(player) error = %v", err)
	}

	now := time.Now()
	for i := range 3 {
		tm.TickPass(ai.CadenceFast, now.Add(time.Duration(i)*2*time.Second))
		w.Tick(50 * time.Millisecond)
	}

	if player.Health() >= 100 {
		t.Errorf("player health = %.1f, want damage taken", player.Health())
	}
	if journal.Recorded() == 0 {
		t.Error("no hit recorded in the journal")
	}
	guard := w.FindAllOfKind(model.KindGuard)[0]
	ctrl, ok := reg.Controller(guard.ObjectID())
	if !ok {
		t.Fatal("guard has no controller")
	}
	if got := ctrl.CurrentIntention(); got != model.IntentionAttacking {
		t.Errorf("intention = %v, want Attacking", got)
	}
}
