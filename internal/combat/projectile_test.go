package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"towerdefense/server/internal/events"
	"towerdefense/server/internal/world"
)

// TestEncryptionShotPiercesThreeLinedUpEnemies: an
// encryption defense fires a single shot at three enemies lined up within
// range, and the one projectile it creates hits all three, each taking
// floor(25*(1+0.2*1)) = 30 damage.
func TestEncryptionShotPiercesThreeLinedUpEnemies(t *testing.T) {
	store := world.NewStore()
	d := world.NewDefense(world.Encryption, 0, 0, 0, 0)
	dh := store.AddDefense(d)

	var handles []world.Handle
	for i := 0; i < 3; i++ {
		e := world.NewEnemy(world.ScriptKiddie, world.Point{X: float64(20 + i*5), Y: 0}, 1)
		handles = append(handles, store.AddEnemy(e))
	}
	d.Target = handles[0]

	buf := &events.Buffer{}
	Fire(d, dh, store, 10000, buf)

	require.Equal(t, 1, store.Projectiles.Len())
	var proj *world.Projectile
	store.Projectiles.Each(func(_ world.Handle, p *world.Projectile) { proj = p })
	require.NotNil(t, proj)
	assert.Equal(t, world.ProjectilePiercing, proj.Kind)

	for i := 0; i < 15; i++ {
		UpdateProjectile(proj, store, 1000, 1000, 1000, buf)
	}

	hits := filterKind(buf.Drain(), events.ProjectileHit)
	require.Len(t, hits, 3, "a piercing shot must hit every lined-up enemy exactly once")
	for _, h := range hits {
		assert.Equal(t, proj.ID, h.ProjectileID)
		assert.Equal(t, 30.0, h.Damage)
	}
}

func TestNonPiercingProjectileDeactivatesAfterFirstHit(t *testing.T) {
	store := world.NewStore()
	d := world.NewDefense(world.Firewall, 0, 0, 0, 0)
	dh := store.AddDefense(d)

	e := world.NewEnemy(world.ScriptKiddie, world.Point{X: 20, Y: 0}, 1)
	eh := store.AddEnemy(e)
	d.Target = eh

	buf := &events.Buffer{}
	Fire(d, dh, store, 10000, buf)

	var proj *world.Projectile
	store.Projectiles.Each(func(_ world.Handle, p *world.Projectile) { proj = p })
	require.NotNil(t, proj)
	assert.Equal(t, world.ProjectilePlain, proj.Kind)

	for i := 0; i < 15 && proj.Active; i++ {
		UpdateProjectile(proj, store, 1000, 1000, 1000, buf)
	}
	assert.False(t, proj.Active)

	hits := filterKind(buf.Drain(), events.ProjectileHit)
	assert.Len(t, hits, 1)
}

func TestFireRespectsCadenceAndTargetPresence(t *testing.T) {
	store := world.NewStore()
	d := world.NewDefense(world.Firewall, 0, 0, 0, 0)
	dh := store.AddDefense(d)

	buf := &events.Buffer{}
	Fire(d, dh, store, 0, buf)
	assert.Equal(t, 0, store.Projectiles.Len(), "no target bound yet")

	e := world.NewEnemy(world.ScriptKiddie, world.Point{X: 20, Y: 0}, 1)
	eh := store.AddEnemy(e)
	d.Target = eh

	Fire(d, dh, store, 1000, buf)
	assert.Equal(t, 1, store.Projectiles.Len())

	Fire(d, dh, store, 1010, buf)
	assert.Equal(t, 1, store.Projectiles.Len(), "fire rate must gate a second shot this soon")
}
