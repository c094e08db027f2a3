package ai

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/opd-ai/go-skirmish/pkg/config"
	"github.com/opd-ai/go-skirmish/pkg/entity"
	"github.com/opd-ai/go-skirmish/pkg/physics"
)

func newPlayer(x, y float64) *entity.Craft {
	return entity.NewCraft(entity.KindPlayer, config.DefaultConfig().Player, physics.Vector2D{X: x, Y: y})
}

func TestDodgeVector(t *testing.T) {
	self := newPlayer(1000, 1000)

	tests := []struct {
		name      string
		threats   []Threat
		expectMag float64
		expectDir physics.Vector2D
	}{
		{
			name:      "no_threats",
			expectMag: 0,
		},
		{
			name:      "static_threat_on_the_right",
			threats:   []Threat{{Position: physics.Vector2D{X: 1095, Y: 1000}}},
			expectMag: 0.5,
			expectDir: physics.Vector2D{X: -1, Y: 0},
		},
		{
			name:      "out_of_range",
			threats:   []Threat{{Position: physics.Vector2D{X: 1500, Y: 1000}}},
			expectMag: 0,
		},
		{
			name: "receding_threat_still_repels",
			threats: []Threat{{
				Position: physics.Vector2D{X: 1040, Y: 1000},
				Velocity: physics.Vector2D{X: 5, Y: 0},
			}},
			expectMag: 1 - 20.0/150,
			expectDir: physics.Vector2D{X: -1, Y: 0},
		},
		{
			name: "bounded_to_unit",
			threats: []Threat{
				{Position: physics.Vector2D{X: 1021, Y: 1000}},
				{Position: physics.Vector2D{X: 1022, Y: 1000}},
				{Position: physics.Vector2D{X: 1023, Y: 1000}},
			},
			expectMag: 1,
			expectDir: physics.Vector2D{X: -1, Y: 0},
		},
		{
			name:      "coincident_threat_no_nan",
			threats:   []Threat{{Position: physics.Vector2D{X: 1000, Y: 1000}}},
			expectMag: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DodgeVector(self, tt.threats, 150)
			if math.IsNaN(got.X) || math.IsNaN(got.Y) {
				t.Fatalf("DodgeVector() = %v", got)
			}
			if math.Abs(got.Length()-tt.expectMag) > 1e-9 {
				t.Errorf("magnitude = %v, want %v", got.Length(), tt.expectMag)
			}
			if tt.expectMag > 0 {
				dir := got.Normalize()
				if math.Abs(dir.X-tt.expectDir.X) > 1e-9 || math.Abs(dir.Y-tt.expectDir.Y) > 1e-9 {
					t.Errorf("direction = %v, want %v", dir, tt.expectDir)
				}
			}
		})
	}
}

func TestTurnToward(t *testing.T) {
	rate := math.Pi / 90
	if got := TurnToward(0, math.Pi/2, 0.2, rate); got != 1 {
		t.Errorf("large error should saturate, got %v", got)
	}
	small := TurnToward(0, -0.01, 0.2, rate)
	if small >= 0 || small < -1 {
		t.Errorf("small negative error gave %v", small)
	}
	if math.Abs(small*rate-(-0.002)) > 1e-12 {
		t.Errorf("turn should close gain of the error, got %v rad", small*rate)
	}
	if TurnToward(0, 1, 0.2, 0) != 0 {
		t.Error("zero turn rate must not turn")
	}
}

func TestAutopilot_DodgeSuppressesHunting(t *testing.T) {
	cfg := config.DefaultConfig().Autopilot
	ap := NewAutopilot(cfg)
	self := newPlayer(1000, 1000)

	view := View{
		Threats: []Threat{{
			Position: physics.Vector2D{X: 1060, Y: 1000},
			Velocity: physics.Vector2D{X: -5, Y: 0},
		}},
		Targets: []Target{{ID: 7, Kind: entity.KindFighter, Position: physics.Vector2D{X: 1800, Y: 1000}, Radius: 20}},
	}
	cmd := ap.Steer(self, view)

	if cmd.Dodge.Length() <= 0 {
		t.Fatal("expected a non-zero dodge vector")
	}
	if cmd.Fire {
		t.Error("autopilot fired while dodging")
	}
	if cmd.Thrust != 0 {
		t.Errorf("hunting thrust should be suppressed, got %v", cmd.Thrust)
	}
	if cmd.Accel.X >= 0 {
		t.Errorf("dodge acceleration should point away from the threat, got %v", cmd.Accel)
	}
	if !cmd.Shield {
		t.Error("shield should go up while dodging")
	}
}

func TestAutopilot_HuntAndFire(t *testing.T) {
	cfg := config.DefaultConfig().Autopilot
	ap := NewAutopilot(cfg)

	tests := []struct {
		name         string
		target       physics.Vector2D
		heading      float64
		expectThrust float64
		expectFire   bool
	}{
		{"far_aligned", physics.Vector2D{X: 1600, Y: 1000}, 0, cfg.ThrustBoost, true},
		{"mid_aligned", physics.Vector2D{X: 1300, Y: 1000}, 0, cfg.MidThrust, true},
		{"near_reverses", physics.Vector2D{X: 1080, Y: 1000}, 0, -cfg.ReverseThrust, true},
		{"behind_no_fire", physics.Vector2D{X: 400, Y: 1000}, 0, cfg.ThrustBoost, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			self := newPlayer(1000, 1000)
			self.Heading = tt.heading
			view := View{Targets: []Target{{ID: 3, Kind: entity.KindFighter, Position: tt.target, Radius: 20}}}

			cmd := ap.Steer(self, view)
			if math.Abs(cmd.Thrust-tt.expectThrust) > 1e-9 {
				t.Errorf("Thrust = %v, want %v", cmd.Thrust, tt.expectThrust)
			}
			if cmd.Fire != tt.expectFire {
				t.Errorf("Fire = %v, want %v", cmd.Fire, tt.expectFire)
			}
			if cmd.TargetID != 3 {
				t.Errorf("TargetID = %v", cmd.TargetID)
			}
		})
	}
}

func TestAutopilot_RespectsCooldown(t *testing.T) {
	ap := NewAutopilot(config.DefaultConfig().Autopilot)
	self := newPlayer(1000, 1000)
	self.Gun.Cooldown = 3
	view := View{Targets: []Target{{ID: 1, Position: physics.Vector2D{X: 1500, Y: 1000}}}}
	if ap.Steer(self, view).Fire {
		t.Error("autopilot fired with the gun on cooldown")
	}
}

func TestAutopilot_FallsBackToDebris(t *testing.T) {
	ap := NewAutopilot(config.DefaultConfig().Autopilot)
	self := newPlayer(1000, 1000)
	view := View{Fallback: []Target{
		{ID: 11, Kind: entity.KindDebris, Position: physics.Vector2D{X: 3000, Y: 1000}},
		{ID: 12, Kind: entity.KindDebris, Position: physics.Vector2D{X: 1000, Y: 1500}},
	}}
	if cmd := ap.Steer(self, view); cmd.TargetID != 12 {
		t.Errorf("TargetID = %v, expected nearest debris 12", cmd.TargetID)
	}
}

func TestAutopilot_Assist(t *testing.T) {
	cfg := config.DefaultConfig().Autopilot
	threat := View{Threats: []Threat{{Position: physics.Vector2D{X: 1050, Y: 1000}}}}

	cmd := NewAutopilot(cfg).Assist(newPlayer(1000, 1000), threat, ManualInput{Turn: 5, Thrusting: true, Firing: true})
	if cmd.Turn != 1 || cmd.Thrust != 1 || !cmd.Fire {
		t.Errorf("manual command = %+v", cmd)
	}
	if !cmd.Accel.IsZero() {
		t.Error("assist disabled, expected no dodge acceleration")
	}

	cfg.ManualAssist = true
	cmd = NewAutopilot(cfg).Assist(newPlayer(1000, 1000), threat, ManualInput{})
	if cmd.Accel.X >= 0 {
		t.Errorf("assist should push away from the threat, got %v", cmd.Accel)
	}
}

func TestViewFor(t *testing.T) {
	cfg := config.DefaultConfig()
	store := entity.NewStore()
	player := newPlayer(1000, 1000)
	store.SetPlayer(player)

	store.AddFighter(entity.NewFighter(physics.Vector2D{X: 1200, Y: 1000}, 20, 30, 1.2, 100, 0))
	store.AddDebris(entity.NewDebris(physics.Vector2D{X: 500, Y: 500}, 50, 0, 1, 0))
	store.AddCivilian(entity.NewCivilian(physics.Vector2D{X: 900, Y: 900}, 12, 20, 1, 0, false, 100))
	store.AddProjectiles(
		entity.NewProjectile(entity.OwnerHostile, 1, physics.Vector2D{X: 1100, Y: 1000}, math.Pi, cfg.Weapons.Hostile),
		entity.NewProjectile(entity.OwnerPlayer, player.ID, physics.Vector2D{X: 1010, Y: 1000}, 0, cfg.Weapons.Player),
	)
	store.AddBeam(entity.NewBeam(entity.OwnerOpponent, 2, physics.Vector2D{X: 900, Y: 1100}, 0, cfg.Weapons.Beam))

	v := ViewFor(player, store)
	if len(v.Threats) != 3 {
		t.Errorf("threats = %d, expected hostile shot + beam + debris", len(v.Threats))
	}
	if len(v.Targets) != 1 || v.Targets[0].Kind != entity.KindFighter {
		t.Errorf("targets = %+v", v.Targets)
	}
	if len(v.Fallback) != 1 {
		t.Errorf("fallback = %+v", v.Fallback)
	}
	for _, th := range v.Threats {
		if th.Position == (physics.Vector2D{X: 1000, Y: 1100}) {
			return
		}
	}
	t.Error("beam threat should sit at the beam's closest point to the player")
}

func TestNearest_TiesKeepFirst(t *testing.T) {
	targets := []Target{
		{ID: 1, Position: physics.Vector2D{X: 10}},
		{ID: 2, Position: physics.Vector2D{X: -10}},
	}
	got, ok := Nearest(physics.Vector2D{}, targets)
	if !ok || got.ID != 1 {
		t.Errorf("Nearest() = %v, %v", got, ok)
	}
	if _, ok := Nearest(physics.Vector2D{}, nil); ok {
		t.Error("Nearest(nil) should report no target")
	}
}

func TestWander(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	h, timer := Wander(1, 10, 90, 1, rng)
	if h != 1 || timer != 9 {
		t.Errorf("Wander() = %v, %v before timer expiry", h, timer)
	}
	h, timer = Wander(1, 0.5, 90, 1, rng)
	if timer != 90 || h < 0 || h >= 2*math.Pi {
		t.Errorf("Wander() = %v, %v after expiry", h, timer)
	}
}
