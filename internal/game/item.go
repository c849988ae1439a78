package game

import (
	"encoding/json"
	"fmt"
)

type ItemType int

const (
	ItemResource ItemType = iota
	ItemAmmo
	ItemSpeedBoost
	ItemHealthBoost
)

func (t ItemType) String() string {
	switch t {
	case ItemResource:
		return "resource"
	case ItemAmmo:
		return "ammo"
	case ItemSpeedBoost:
		return "speed_boost"
	case ItemHealthBoost:
		return "health_boost"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes ItemType as a string.
func (t ItemType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON parses the string form produced by MarshalJSON.
func (t *ItemType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "resource":
		*t = ItemResource
	case "ammo":
		*t = ItemAmmo
	case "speed_boost":
		*t = ItemSpeedBoost
	case "health_boost":
		*t = ItemHealthBoost
	default:
		return fmt.Errorf("unknown item type %q", s)
	}
	return nil
}

// Singleton reports whether at most one live instance of this type may exist.
func (t ItemType) Singleton() bool {
	return t == ItemSpeedBoost || t == ItemHealthBoost
}

// Item is a consumable pickup. ClaimedBy is the explicit reservation field:
// the ID of the collector bot currently pursuing this item, or 0.
type Item struct {
	ID        int64
	Type      ItemType
	Tier      int
	Value     int
	X         float64
	Y         float64
	Radius    float64
	SpawnTick uint64
	ClaimedBy int64
}

// Tier reward values, indexed by tier-1.
var (
	resourceValues = [3]int{10, 25, 60}
	ammoValues     = [3]int{5, 10, 20}
)

// speed boost duration and heal amount scale with tier too
var (
	boostDurations = [3]int{150, 300, 600} // ticks
	healAmounts    = [3]int{20, 40, 80}
)

func itemValue(t ItemType, tier int) int {
	i := tier - 1
	if i < 0 || i > 2 {
		i = 0
	}
	switch t {
	case ItemResource:
		return resourceValues[i]
	case ItemAmmo:
		return ammoValues[i]
	case ItemSpeedBoost:
		return boostDurations[i]
	case ItemHealthBoost:
		return healAmounts[i]
	default:
		return 0
	}
}

// itemByID returns the live item with the given ID, or nil. Membership is the
// liveness check bots run each tick before trusting their target.
func (w *World) itemByID(id int64) *Item {
	if id == 0 {
		return nil
	}
	for _, it := range w.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

func (w *World) countItems(t ItemType) int {
	n := 0
	for _, it := range w.items {
		if it.Type == t {
			n++
		}
	}
	return n
}

// removeItem deletes an item from the registry by ID.
func (w *World) removeItem(id int64) {
	for i, it := range w.items {
		if it.ID == id {
			w.items = append(w.items[:i], w.items[i+1:]...)
			return
		}
	}
}

// consumeItem applies an item's reward to a player and removes it.
func (w *World) consumeItem(p *Player, it *Item) {
	switch it.Type {
	case ItemResource:
		w.addScore(p, it.Value)
	case ItemAmmo:
		p.Ammo += it.Value
	case ItemSpeedBoost:
		p.SpeedBoostTicks = it.Value
		w.speedBoostGate = w.tick + uint64(w.tuning.SingletonCooldown)
	case ItemHealthBoost:
		p.Health += float64(it.Value)
		if p.Health > p.MaxHealth {
			p.Health = p.MaxHealth
		}
		w.healthBoostGate = w.tick + uint64(w.tuning.SingletonCooldown)
	}
	w.removeItem(it.ID)
}

// collectItems consumes any item a living player is touching.
func (w *World) collectItems() {
	for _, p := range w.players {
		if p.Dead {
			continue
		}
		// Collect against a copy: consumeItem mutates w.items.
		touched := make([]*Item, 0, 2)
		for _, it := range w.items {
			if p.Touches(it.X, it.Y, it.Radius) {
				touched = append(touched, it)
			}
		}
		for _, it := range touched {
			w.consumeItem(p, it)
		}
	}
}
