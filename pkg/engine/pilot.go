package engine

import (
	"github.com/opd-ai/go-skirmish/pkg/ai"
	"github.com/opd-ai/go-skirmish/pkg/entity"
	"github.com/opd-ai/go-skirmish/pkg/event"
)

// steeringSet holds this tick's orders for the simple actors, aligned by
// index with their Store collections.
type steeringSet struct {
	fighters  []ai.Steering
	drones    []ai.Steering
	civilians []ai.Steering
}

func (s *steeringSet) reset(fighters, drones, civilians int) {
	s.fighters = resize(s.fighters, fighters)
	s.drones = resize(s.drones, drones)
	s.civilians = resize(s.civilians, civilians)
}

func resize[T any](items []T, n int) []T {
	if cap(items) < n {
		return make([]T, n)
	}
	items = items[:n]
	clear(items)
	return items
}

// respawnPhase returns a destroyed player craft to the world center at the
// start of the tick after the lethal hit. Later substeps of the lethal tick
// leave the craft down.
func (a *Arena) respawnPhase() {
	if !a.respawnPending || a.substep > 0 {
		return
	}
	a.respawnPending = false
	player := a.store.Player
	player.Respawn(a.bounds.Center())
	a.emit(event.NewRespawnEvent(a.eventTick(), player.ID, player.Position))
	a.label(player.Position, "Respawned", entity.ToneInfo)
}

// intentPhase turns the player's intents and every AI pilot's view of the
// world into commands. Nothing moves here.
func (a *Arena) intentPhase() {
	store := a.store
	player := store.Player

	view := ai.ViewFor(player, store)
	if a.intents.AutopilotEnabled {
		a.playerCmd = a.autopilot.Steer(player, view)
	} else {
		a.playerCmd = a.autopilot.Assist(player, view, ai.ManualInput{
			Turn:      a.intents.Turn,
			Thrusting: a.intents.Thrusting,
			Firing:    a.intents.Firing,
			Shield:    a.intents.Shield,
		})
	}

	a.opponentCmds = resize(a.opponentCmds, len(store.Opponents))
	for i, c := range store.Opponents {
		if c.Active {
			a.opponentCmds[i] = ai.Opponent(c, player.Position, a.cfg.Opponent, a.cfg.Autopilot.TurnGain)
		}
	}

	a.steering.reset(len(store.Fighters), len(store.Drones), len(store.Civilians))
	for i, f := range store.Fighters {
		if f.Active {
			a.steering.fighters[i] = ai.Fighter(f, player.Position, a.cfg.Fighter)
		}
	}

	civilians := a.civilianTargets()
	playerTarget := ai.Target{}
	if !a.respawnPending {
		playerTarget = ai.Target{ID: player.ID, Kind: entity.KindPlayer, Position: player.Position, Radius: player.Radius}
	}
	for i, d := range store.Drones {
		if !d.Active {
			continue
		}
		var s ai.Steering
		s, d.WanderTimer, d.TargetID = ai.Drone(d, civilians, playerTarget, a.cfg.Drone, a.step, a.rng)
		a.steering.drones[i] = s
	}

	drones := a.droneTargets()
	for i, c := range store.Civilians {
		if !c.Active {
			continue
		}
		var s ai.Steering
		s, c.WanderTimer, c.Fleeing = ai.Civilian(c, drones, a.cfg.Civilian, a.step, a.rng)
		a.steering.civilians[i] = s
	}
}

func (a *Arena) civilianTargets() []ai.Target {
	var targets []ai.Target
	for _, c := range a.store.Civilians {
		if c.Active {
			targets = append(targets, ai.Target{ID: c.ID, Kind: entity.KindCivilian, Position: c.Position, Radius: c.Radius})
		}
	}
	return targets
}

func (a *Arena) droneTargets() []ai.Target {
	var targets []ai.Target
	for _, d := range a.store.Drones {
		if d.Active {
			targets = append(targets, ai.Target{ID: d.ID, Kind: entity.KindDrone, Position: d.Position, Radius: d.Radius})
		}
	}
	return targets
}
