package engine

// effectsPhase ages explosions and floating texts and moves the camera
// onto the player
func (a *Arena) effectsPhase() {
	for _, e := range a.store.Explosions {
		e.Advance(a.step)
	}
	for _, t := range a.store.Texts {
		t.Advance(a.step)
	}
	a.camera.Follow(a.store.Player.Position)
}
