package world

// Store owns every live enemy, boss, defense, and projectile for one
// running match and answers the spatial/lookup queries the rest of the
// simulation needs. Enemies and bosses share one arena since a boss is an
// Enemy carrying optional BossState.
type Store struct {
	Enemies     *Arena[Enemy]
	Defenses    *Arena[Defense]
	Projectiles *Arena[Projectile]

	enemyByID     map[string]Handle
	defenseByID   map[string]Handle
	defenseByCell map[[2]int]Handle
}

// NewStore constructs an empty entity store.
func NewStore() *Store {
	return &Store{
		Enemies:       NewArena[Enemy](),
		Defenses:      NewArena[Defense](),
		Projectiles:   NewArena[Projectile](),
		enemyByID:     make(map[string]Handle),
		defenseByID:   make(map[string]Handle),
		defenseByCell: make(map[[2]int]Handle),
	}
}

// AddEnemy inserts e and indexes it by external ID.
func (s *Store) AddEnemy(e *Enemy) Handle {
	h := s.Enemies.Insert(*e)
	s.enemyByID[e.ID] = h
	return h
}

// RemoveEnemy retires h, dropping its ID index entry.
func (s *Store) RemoveEnemy(h Handle) {
	if v, ok := s.Enemies.Get(h); ok {
		delete(s.enemyByID, v.ID)
	}
	s.Enemies.Remove(h)
}

// EnemyByID resolves an external enemy ID to its current Handle.
func (s *Store) EnemyByID(id string) (Handle, bool) {
	h, ok := s.enemyByID[id]
	return h, ok
}

// AddDefense inserts d, indexing it by external ID and grid cell. The grid
// cell is assumed free; callers must check IsCellOccupied first.
func (s *Store) AddDefense(d *Defense) Handle {
	h := s.Defenses.Insert(*d)
	s.defenseByID[d.ID] = h
	s.defenseByCell[[2]int{d.GridX, d.GridY}] = h
	return h
}

// RemoveDefense retires h, dropping its ID and cell index entries.
func (s *Store) RemoveDefense(h Handle) {
	if v, ok := s.Defenses.Get(h); ok {
		delete(s.defenseByID, v.ID)
		delete(s.defenseByCell, [2]int{v.GridX, v.GridY})
	}
	s.Defenses.Remove(h)
}

// DefenseByID resolves an external defense ID to its current Handle.
func (s *Store) DefenseByID(id string) (Handle, bool) {
	h, ok := s.defenseByID[id]
	return h, ok
}

// DefenseAtCell returns the defense occupying (gx, gy), if any.
func (s *Store) DefenseAtCell(gx, gy int) (Handle, bool) {
	h, ok := s.defenseByCell[[2]int{gx, gy}]
	return h, ok
}

// IsCellOccupied reports whether a defense already sits at (gx, gy).
func (s *Store) IsCellOccupied(gx, gy int) bool {
	_, ok := s.defenseByCell[[2]int{gx, gy}]
	return ok
}

// AddProjectile inserts p.
func (s *Store) AddProjectile(p *Projectile) Handle {
	return s.Projectiles.Insert(*p)
}

// RemoveProjectile retires h.
func (s *Store) RemoveProjectile(h Handle) {
	s.Projectiles.Remove(h)
}

// EnemiesInRange calls fn for every live, non-dead enemy within radius of
// (cx, cy). Used by defense targeting and splash damage
// resolution.
func (s *Store) EnemiesInRange(cx, cy, radius float64, fn func(h Handle, e *Enemy)) {
	radiusSq := radius * radius
	s.Enemies.Each(func(h Handle, e *Enemy) {
		if e.Dead || e.ReachedEnd {
			return
		}
		dx := e.Position.X - cx
		dy := e.Position.Y - cy
		if dx*dx+dy*dy <= radiusSq {
			fn(h, e)
		}
	})
}

// LiveEnemyCount returns the number of enemies that are neither dead nor
// past the end of the path.
func (s *Store) LiveEnemyCount() int {
	count := 0
	s.Enemies.Each(func(h Handle, e *Enemy) {
		if !e.Dead && !e.ReachedEnd {
			count++
		}
	})
	return count
}
