package game

import "sort"

// BotRole selects which item type a collector bot hunts.
type BotRole int

const (
	BotResource BotRole = iota
	BotAmmo
)

func (r BotRole) String() string {
	if r == BotAmmo {
		return "ammo"
	}
	return "resource"
}

// ParseBotRole maps a wire name to a BotRole.
func ParseBotRole(s string) (BotRole, bool) {
	switch s {
	case "resource":
		return BotResource, true
	case "ammo":
		return BotAmmo, true
	default:
		return 0, false
	}
}

func (r BotRole) itemType() ItemType {
	if r == BotAmmo {
		return ItemAmmo
	}
	return ItemResource
}

// Bot is an autonomous collector. Its state machine is implicit in the
// fields: no target means seeking, a target means pursuing, StalledTicks
// tracks blocked pursuit, and contact with the target collects it.
type Bot struct {
	Actor
	ID      int64
	OwnerID string
	Role    BotRole

	TargetID     int64 // claimed item, 0 while seeking
	RerouteRank  int   // escalates one step per consecutive stalled tick
	StalledTicks int
	IdleTicks    int // ticks since last successful collection
}

// SpawnBot creates a collector bot owned by a player, next to its owner.
func (w *World) SpawnBot(ownerID string, role BotRole) *Bot {
	owner := w.players[ownerID]
	if owner == nil {
		return nil
	}
	b := &Bot{
		Actor: Actor{
			X:      owner.X,
			Y:      owner.Y,
			Radius: w.tuning.BotRadius,
			Speed:  w.tuning.BotSpeed,
		},
		ID:      w.nextEntityID(),
		OwnerID: ownerID,
		Role:    role,
	}
	w.bots = append(w.bots, b)
	return b
}

// BuyBot purchases a collector bot with upgrade points.
func (w *World) BuyBot(playerID string, role BotRole) *Bot {
	p := w.players[playerID]
	if p == nil || p.UnspentPoints() < w.tuning.BotCost {
		return nil
	}
	p.PointsSpent += w.tuning.BotCost
	return w.SpawnBot(playerID, role)
}

// releaseClaim drops the bot's reservation on its target, if any.
func (w *World) releaseClaim(b *Bot) {
	if it := w.itemByID(b.TargetID); it != nil && it.ClaimedBy == b.ID {
		it.ClaimedBy = 0
	}
	b.TargetID = 0
}

// eligibleItems returns unclaimed (or own-claimed) live items of the bot's role.
func (w *World) eligibleItems(b *Bot) []*Item {
	typ := b.Role.itemType()
	out := make([]*Item, 0, len(w.items))
	for _, it := range w.items {
		if it.Type != typ {
			continue
		}
		if it.ClaimedBy != 0 && it.ClaimedBy != b.ID {
			continue
		}
		out = append(out, it)
	}
	return out
}

// claimNearest reserves the nearest eligible item.
func (w *World) claimNearest(b *Bot) {
	var best *Item
	bestDist := 0.0
	for _, it := range w.eligibleItems(b) {
		d := b.DistanceTo(it.X, it.Y)
		if best == nil || d < bestDist {
			best = it
			bestDist = d
		}
	}
	if best != nil {
		best.ClaimedBy = b.ID
		b.TargetID = best.ID
	}
}

// claimFarthestRank reserves the rank-th farthest eligible item (rank 1 is
// the farthest). Stalled bots escalate rank to steer away from a locally
// unreachable pickup instead of thrashing against the same wall.
func (w *World) claimFarthestRank(b *Bot, rank int) {
	items := w.eligibleItems(b)
	if len(items) == 0 {
		return
	}
	sort.Slice(items, func(i, j int) bool {
		return b.DistanceTo(items[i].X, items[i].Y) > b.DistanceTo(items[j].X, items[j].Y)
	})
	idx := rank - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(items) {
		idx = len(items) - 1
	}
	items[idx].ClaimedBy = b.ID
	b.TargetID = items[idx].ID
}

// updateBots runs every collector bot one tick through its state machine.
func (w *World) updateBots() {
	t := &w.tuning
	for _, b := range w.bots {
		b.IdleTicks++

		// Revalidate: the target may have been consumed or despawned since
		// the reservation was made.
		target := w.itemByID(b.TargetID)
		if target == nil || (target.ClaimedBy != 0 && target.ClaimedBy != b.ID) {
			b.TargetID = 0
		}

		if b.TargetID == 0 {
			w.claimNearest(b)
			target = w.itemByID(b.TargetID)
		}

		if target != nil {
			moved := w.moveActor(&b.Actor, b.VectorTo(target.X, target.Y), b.Speed)
			if moved < b.Speed*t.BotStallEpsilon {
				b.StalledTicks++
				b.RerouteRank++
				w.releaseClaim(b)
				w.claimFarthestRank(b, b.RerouteRank)
			} else {
				b.StalledTicks = 0
				b.RerouteRank = 0
			}

			if b.StalledTicks >= t.BotStallTicks {
				w.relocateBotRandom(b)
				continue
			}

			// Contact collects for the owner.
			target = w.itemByID(b.TargetID)
			if target != nil && b.Touches(target.X, target.Y, target.Radius) {
				if owner := w.players[b.OwnerID]; owner != nil {
					w.consumeItem(owner, target)
				} else {
					w.removeItem(target.ID)
				}
				b.TargetID = 0
				b.IdleTicks = 0
				b.StalledTicks = 0
				b.RerouteRank = 0
			}
		}

		// A bot that has not collected for too long is relocated next to its
		// owner so it does not stay lost behind geometry.
		if b.IdleTicks >= t.BotIdleTicks {
			if owner := w.players[b.OwnerID]; owner != nil {
				b.X, b.Y = w.field.Clamp(owner.X+owner.Radius*3, owner.Y, b.Radius)
			}
			w.releaseClaim(b)
			b.IdleTicks = 0
			b.StalledTicks = 0
			b.RerouteRank = 0
		}
	}
}

// relocateBotRandom teleports a hopelessly stalled bot to a random open
// position and clears all pursuit state.
func (w *World) relocateBotRandom(b *Bot) {
	b.X, b.Y = w.randomOpenPosition(b.Radius)
	w.releaseClaim(b)
	b.StalledTicks = 0
	b.RerouteRank = 0
}
