package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertGetRoundTrip(t *testing.T) {
	a := NewArena[int]()
	h := a.Insert(42)
	v, ok := a.Get(h)
	require.True(t, ok)
	assert.Equal(t, 42, *v)
}

func TestRemoveInvalidatesHandle(t *testing.T) {
	a := NewArena[int]()
	h := a.Insert(1)
	a.Remove(h)
	_, ok := a.Get(h)
	assert.False(t, ok)
}

func TestRecycledSlotBumpsGenerationSoStaleHandleMisses(t *testing.T) {
	a := NewArena[int]()
	h1 := a.Insert(1)
	a.Remove(h1)

	h2 := a.Insert(2)
	require.Equal(t, h1.Index, h2.Index, "the freed slot should be reused")
	assert.NotEqual(t, h1.Generation, h2.Generation, "a reused slot must bump its generation")

	_, ok := a.Get(h1)
	assert.False(t, ok, "a stale handle into a recycled slot must resolve to no entity, never the new value")
	v2, ok := a.Get(h2)
	require.True(t, ok)
	assert.Equal(t, 2, *v2)
}

func TestNoHandleNeverResolves(t *testing.T) {
	a := NewArena[int]()
	a.Insert(7)
	_, ok := a.Get(NoHandle)
	assert.False(t, ok)
}

func TestEachSkipsRemovedEntries(t *testing.T) {
	a := NewArena[int]()
	h1 := a.Insert(1)
	a.Insert(2)
	a.Remove(h1)

	var seen []int
	a.Each(func(_ Handle, v *int) { seen = append(seen, *v) })
	assert.Equal(t, []int{2}, seen)
}

func TestLenCountsOnlyLiveEntries(t *testing.T) {
	a := NewArena[int]()
	h1 := a.Insert(1)
	a.Insert(2)
	assert.Equal(t, 2, a.Len())
	a.Remove(h1)
	assert.Equal(t, 1, a.Len())
}

func TestStoreRemoveDefenseFreesCell(t *testing.T) {
	s := NewStore()
	d := NewDefense(Firewall, 3, 4, 112, 144)
	h := s.AddDefense(d)
	require.True(t, s.IsCellOccupied(3, 4))

	s.RemoveDefense(h)
	assert.False(t, s.IsCellOccupied(3, 4))
	_, ok := s.DefenseByID(d.ID)
	assert.False(t, ok)
}

func TestStoreEnemiesInRangeExcludesDeadAndReachedEnd(t *testing.T) {
	s := NewStore()
	live := NewEnemy(ScriptKiddie, Point{X: 0, Y: 0}, 1)
	dead := NewEnemy(ScriptKiddie, Point{X: 1, Y: 0}, 1)
	dead.Dead = true
	reachedEnd := NewEnemy(ScriptKiddie, Point{X: 0, Y: 1}, 1)
	reachedEnd.ReachedEnd = true

	s.AddEnemy(live)
	s.AddEnemy(dead)
	s.AddEnemy(reachedEnd)

	var count int
	s.EnemiesInRange(0, 0, 50, func(_ Handle, _ *Enemy) { count++ })
	assert.Equal(t, 1, count)
}

func TestStoreLiveEnemyCount(t *testing.T) {
	s := NewStore()
	s.AddEnemy(NewEnemy(ScriptKiddie, Point{}, 1))
	dead := NewEnemy(ScriptKiddie, Point{}, 1)
	dead.Dead = true
	s.AddEnemy(dead)
	assert.Equal(t, 1, s.LiveEnemyCount())
}
