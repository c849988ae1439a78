package game

// Tier probabilities: common / uncommon / rare.
const (
	tierCommonWeight   = 0.65
	tierUncommonWeight = 0.25
)

// spawnItems is the timed item scheduler. Each cycle it either tries an
// eligible singleton power-up or flips a weighted coin between resource and
// ammo, picks a tier from the tri-modal distribution, and attempts a bounded
// number of obstacle-free placements. A cycle whose type is capped or whose
// placement fails is skipped silently.
func (w *World) spawnItems() {
	if w.tick < w.nextItemSpawn {
		return
	}
	w.nextItemSpawn = w.tick + uint64(w.spawnInterval)

	if w.rng.Float64() < w.tuning.SingletonChance {
		if w.spawnSingleton() {
			return
		}
		// No eligible power-up; fall through to a regular item.
	}

	var typ ItemType
	if w.rng.Float64() < w.tuning.ResourceBias {
		typ = ItemResource
		if w.countItems(ItemResource) >= w.tuning.MaxResourceItems {
			return
		}
	} else {
		typ = ItemAmmo
		if w.countItems(ItemAmmo) >= w.tuning.MaxAmmoItems {
			return
		}
	}

	w.placeItem(typ, w.rollTier())
}

// spawnSingleton places one power-up if its slot is empty and its respawn
// cooldown has elapsed. Returns false when neither type is eligible.
func (w *World) spawnSingleton() bool {
	candidates := make([]ItemType, 0, 2)
	if w.countItems(ItemSpeedBoost) == 0 && w.tick >= w.speedBoostGate {
		candidates = append(candidates, ItemSpeedBoost)
	}
	if w.countItems(ItemHealthBoost) == 0 && w.tick >= w.healthBoostGate {
		candidates = append(candidates, ItemHealthBoost)
	}
	if len(candidates) == 0 {
		return false
	}
	typ := candidates[w.rng.Intn(len(candidates))]
	return w.placeItem(typ, w.rollTier())
}

// rollTier picks 1, 2 or 3 from the common/uncommon/rare distribution.
func (w *World) rollTier() int {
	r := w.rng.Float64()
	switch {
	case r < tierCommonWeight:
		return 1
	case r < tierCommonWeight+tierUncommonWeight:
		return 2
	default:
		return 3
	}
}

// placeItem tries a bounded number of random positions rejecting any that
// collide with the obstacle field. Placement failure skips the spawn.
func (w *World) placeItem(typ ItemType, tier int) bool {
	r := w.tuning.ItemRadius
	for i := 0; i < w.tuning.ItemPlacementTries; i++ {
		x := r + w.rng.Float64()*(w.field.Width-2*r)
		y := r + w.rng.Float64()*(w.field.Height-2*r)
		if w.field.Blocked(x, y, r) {
			continue
		}
		w.items = append(w.items, &Item{
			ID:        w.nextEntityID(),
			Type:      typ,
			Tier:      tier,
			Value:     itemValue(typ, tier),
			X:         x,
			Y:         y,
			Radius:    r,
			SpawnTick: w.tick,
		})
		return true
	}
	return false
}

// despawnStaleItems removes items older than the age budget. A despawned
// singleton starts its respawn cooldown like a consumed one.
func (w *World) despawnStaleItems() {
	maxAge := uint64(w.tuning.ItemMaxAge)
	kept := w.items[:0]
	for _, it := range w.items {
		if w.tick-it.SpawnTick > maxAge {
			switch it.Type {
			case ItemSpeedBoost:
				w.speedBoostGate = w.tick + uint64(w.tuning.SingletonCooldown)
			case ItemHealthBoost:
				w.healthBoostGate = w.tick + uint64(w.tuning.SingletonCooldown)
			}
			continue
		}
		kept = append(kept, it)
	}
	w.items = kept
}
