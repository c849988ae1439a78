package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnItems_RespectsResourceCap(t *testing.T) {
	tun := testTuning()
	tun.ResourceBias = 1 // always pick resource
	tun.SingletonChance = 0
	tun.MaxResourceItems = 3
	w := openWorld(tun, 800, 600)

	for i := 0; i < 20; i++ {
		w.tick = w.nextItemSpawn // force a spawn cycle
		w.spawnItems()
	}

	assert.Equal(t, 3, w.countItems(ItemResource))
}

func TestSpawnItems_RespectsAmmoCap(t *testing.T) {
	tun := testTuning()
	tun.ResourceBias = 0 // always pick ammo
	tun.SingletonChance = 0
	tun.MaxAmmoItems = 2
	w := openWorld(tun, 800, 600)

	for i := 0; i < 20; i++ {
		w.tick = w.nextItemSpawn
		w.spawnItems()
	}

	assert.Equal(t, 2, w.countItems(ItemAmmo))
}

func TestSpawnSingleton_SlotAndCooldownGate(t *testing.T) {
	tun := testTuning()
	tun.SingletonChance = 1
	tun.ResourceBias = 1
	tun.SingletonCooldown = 500
	w := openWorld(tun, 800, 600)
	w.healthBoostGate = 1 << 60 // only the speed boost is ever eligible

	w.tick = w.nextItemSpawn
	w.spawnItems()
	require.Equal(t, 1, w.countItems(ItemSpeedBoost))

	// Slot occupied: the next cycle must not create a second instance.
	w.tick = w.nextItemSpawn
	w.spawnItems()
	assert.Equal(t, 1, w.countItems(ItemSpeedBoost))

	// Consume it; the cooldown now gates recreation.
	p := w.NewPlayer("p")
	for _, it := range w.items {
		if it.Type == ItemSpeedBoost {
			w.consumeItem(p, it)
			break
		}
	}
	require.Zero(t, w.countItems(ItemSpeedBoost))

	w.tick = w.nextItemSpawn
	w.spawnItems()
	assert.Zero(t, w.countItems(ItemSpeedBoost), "slot empty but cooldown not elapsed")

	w.tick = w.speedBoostGate
	w.nextItemSpawn = w.tick
	w.spawnItems()
	assert.Equal(t, 1, w.countItems(ItemSpeedBoost), "respawns once cooldown elapsed")
}

func TestDespawnStaleItems_ExactAgeBoundary(t *testing.T) {
	tun := testTuning()
	tun.ItemMaxAge = 100
	w := openWorld(tun, 800, 600)

	old := addItem(w, ItemResource, 100, 100)
	old.SpawnTick = 0
	fresh := addItem(w, ItemAmmo, 200, 200)
	fresh.SpawnTick = 50

	w.tick = 100 // old is exactly at the age budget: kept
	w.despawnStaleItems()
	assert.Len(t, w.items, 2)

	w.tick = 101 // old exceeds the budget, fresh does not
	w.despawnStaleItems()
	require.Len(t, w.items, 1)
	assert.Equal(t, fresh.ID, w.items[0].ID)
}

func TestPlaceItem_SkipsWhenBlocked(t *testing.T) {
	tun := testTuning()
	w := pocketWorld(tun) // nearly the whole field is solid

	placedAny := false
	for i := 0; i < 5; i++ {
		if w.placeItem(ItemResource, 1) {
			placedAny = true
		}
	}
	// Placement either failed silently or every placed item is in the open.
	for _, it := range w.items {
		assert.False(t, w.field.Blocked(it.X, it.Y, it.Radius))
	}
	_ = placedAny
}

func TestRollTier_CoversAllTiers(t *testing.T) {
	w := openWorld(testTuning(), 800, 600)

	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		tier := w.rollTier()
		require.GreaterOrEqual(t, tier, 1)
		require.LessOrEqual(t, tier, 3)
		seen[tier] = true
	}
	assert.Len(t, seen, 3)
}
