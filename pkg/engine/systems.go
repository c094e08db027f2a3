package engine

import "github.com/EngoEngine/ecs"

// Phase priorities. The ecs World runs higher priorities first, so these
// encode the tick order.
const (
	priorityRespawn   = 70
	priorityIntents   = 60
	priorityMovement  = 50
	priorityWeapons   = 40
	priorityCollision = 30
	priorityDirector  = 20
	priorityEffects   = 10
)

// phaseSystem adapts one arena phase to ecs.System. The arena's entities
// live in its Store, so the systems track no ecs entities of their own.
type phaseSystem struct {
	name     string
	priority int
	run      func()
}

// Update satisfies the ecs.System interface
func (p *phaseSystem) Update(float32) {
	p.run()
}

// Remove satisfies the ecs.System interface
func (p *phaseSystem) Remove(ecs.BasicEntity) {}

// Priority satisfies the ecs.Prioritizer interface
func (p *phaseSystem) Priority() int {
	return p.priority
}

// registerSystems installs the tick phases in the arena's world
func (a *Arena) registerSystems() {
	for _, sys := range []*phaseSystem{
		{name: "respawn", priority: priorityRespawn, run: a.respawnPhase},
		{name: "intents", priority: priorityIntents, run: a.intentPhase},
		{name: "movement", priority: priorityMovement, run: a.movementPhase},
		{name: "weapons", priority: priorityWeapons, run: a.weaponPhase},
		{name: "collision", priority: priorityCollision, run: a.collisionPhase},
		{name: "director", priority: priorityDirector, run: a.directorPhase},
		{name: "effects", priority: priorityEffects, run: a.effectsPhase},
	} {
		a.world.AddSystem(sys)
	}
}

// Phases returns the phase names in the order the world runs them
func (a *Arena) Phases() []string {
	var names []string
	for _, sys := range a.world.Systems() {
		if p, ok := sys.(*phaseSystem); ok {
			names = append(names, p.name)
		}
	}
	return names
}
