package engine

import (
	"fmt"

	"github.com/opd-ai/go-skirmish/pkg/entity"
	"github.com/opd-ai/go-skirmish/pkg/event"
	"github.com/opd-ai/go-skirmish/pkg/wave"
)

// hostileCount is the population the wave director tracks
func (a *Arena) hostileCount() int {
	s := a.store
	return s.Count(entity.KindFighter) + s.Count(entity.KindOpponent) + s.Count(entity.KindDrone)
}

// directorPhase feeds the tracked population to the wave director and acts
// on its transitions. The director itself never sees damage.
func (a *Arena) directorPhase() {
	switch a.director.Update(a.clock, a.hostileCount()) {
	case wave.Cleared:
		cleared := a.director.Wave()
		a.emit(event.NewWaveEvent(event.WaveCleared, a.eventTick(), cleared))
		a.label(a.store.Player.Position, fmt.Sprintf("Wave %d cleared", cleared), entity.ToneAlert)
		a.award(a.cfg.Wave.ClearBonus, entity.KindPlayer)
	case wave.Advanced:
		a.spawnWave(a.director.Scaling())
		a.emit(event.NewWaveEvent(event.WaveAdvanced, a.eventTick(), a.director.Wave()))
	}
}
