// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// ArenaConfig contains every tunable of an arena. Durations measured in
// ticks are nominal ticks at Simulation.TickRate.
type ArenaConfig struct {
	World      WorldConfig      `json:"world"`
	Viewport   ViewportConfig   `json:"viewport"`
	Simulation SimulationConfig `json:"simulation"`
	Player     CraftConfig      `json:"player"`
	Opponent   OpponentConfig   `json:"opponent"`
	Fighter    FighterConfig    `json:"fighter"`
	Debris     DebrisConfig     `json:"debris"`
	Drone      DroneConfig      `json:"drone"`
	Civilian   CivilianConfig   `json:"civilian"`
	Weapons    WeaponsConfig    `json:"weapons"`
	Autopilot  AutopilotConfig  `json:"autopilot"`
	Wave       WaveConfig       `json:"wave"`
	Effects    EffectsConfig    `json:"effects"`
}

// WorldConfig is the size of the playable rectangle
type WorldConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ViewportConfig is the size of the camera window into the world
type ViewportConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// SimulationConfig controls the tick driver
type SimulationConfig struct {
	TickRate int     `json:"tickRate"` // nominal ticks per second
	MaxDelta float64 `json:"maxDelta"` // seconds; larger frame deltas are clamped
	Seed     uint64  `json:"seed"`
}

// CraftConfig describes a piloted craft (the player or the opposing craft)
type CraftConfig struct {
	Radius          float64 `json:"radius"`
	MaxHealth       float64 `json:"maxHealth"`
	MaxShield       float64 `json:"maxShield"`
	ShieldAbsorb    float64 `json:"shieldAbsorb"` // energy spent per absorbed hit
	ShieldRegen     float64 `json:"shieldRegen"`  // energy per tick while lowered
	Thrust          float64 `json:"thrust"`
	Friction        float64 `json:"friction"`
	MaxSpeed        float64 `json:"maxSpeed"`
	TurnRate        float64 `json:"turnRate"` // radians per tick
	BounceDampening float64 `json:"bounceDampening"`
	FireDelay       float64 `json:"fireDelay"`
	Weapon          string  `json:"weapon"` // "spread" or "beam"
	NudgeThreshold  float64 `json:"nudgeThreshold"`
	NudgeAmount     float64 `json:"nudgeAmount"`
}

// OpponentConfig describes the AI-driven opposing craft
type OpponentConfig struct {
	CraftConfig
	Count           int     `json:"count"`
	Reward          int     `json:"reward"`
	PreferredRange  float64 `json:"preferredRange"`
	EngageRange     float64 `json:"engageRange"`
	AimCone         float64 `json:"aimCone"`
	CraftAvoidance  float64 `json:"craftAvoidance"` // radius fighters keep from the opposing craft
	AvoidanceFactor float64 `json:"avoidanceFactor"`
}

// FighterConfig describes the hostile fighter swarm
type FighterConfig struct {
	Count            int     `json:"count"`
	Health           float64 `json:"health"`
	Radius           float64 `json:"radius"`
	Speed            float64 `json:"speed"`
	StopDistance     float64 `json:"stopDistance"`
	SeparationRadius float64 `json:"separationRadius"`
	SeparationFactor float64 `json:"separationFactor"`
	FireDelay        float64 `json:"fireDelay"`
	FireRange        float64 `json:"fireRange"`
	Reward           int     `json:"reward"`
	EdgeMargin       float64 `json:"edgeMargin"`
}

// DebrisConfig describes the drifting debris field
type DebrisConfig struct {
	Count          int     `json:"count"`
	Radius         float64 `json:"radius"`
	MinSpeed       float64 `json:"minSpeed"`
	MaxSpeed       float64 `json:"maxSpeed"`
	MaxSpin        float64 `json:"maxSpin"`
	SplitThreshold float64 `json:"splitThreshold"`
	RewardSplit    int     `json:"rewardSplit"`
	RewardSmall    int     `json:"rewardSmall"`
	BodyDamage     float64 `json:"bodyDamage"`
	GraceTicks     float64 `json:"graceTicks"`
}

// DroneConfig describes drones that hunt civilians
type DroneConfig struct {
	Count          int     `json:"count"`
	Health         float64 `json:"health"`
	Radius         float64 `json:"radius"`
	Speed          float64 `json:"speed"`
	FireDelay      float64 `json:"fireDelay"`
	FireRange      float64 `json:"fireRange"`
	HuntRange      float64 `json:"huntRange"`
	WanderInterval float64 `json:"wanderInterval"`
	Reward         int     `json:"reward"`
}

// CivilianConfig describes the neutral population drones prey on
type CivilianConfig struct {
	Count          int     `json:"count"`
	Health         float64 `json:"health"`
	Radius         float64 `json:"radius"`
	Speed          float64 `json:"speed"`
	WanderInterval float64 `json:"wanderInterval"`
	FleeRange      float64 `json:"fleeRange"`
	ReturnFire     bool    `json:"returnFire"`
	FireDelay      float64 `json:"fireDelay"`
	FireRange      float64 `json:"fireRange"`
}

// ProjectileConfig describes one family of traveling projectiles
type ProjectileConfig struct {
	Speed    float64 `json:"speed"`
	Lifetime float64 `json:"lifetime"` // ticks
	Damage   float64 `json:"damage"`
	Radius   float64 `json:"radius"`
}

// SpreadConfig is the lateral muzzle pattern of the player's cannon
type SpreadConfig struct {
	Count   int     `json:"count"`
	Spacing float64 `json:"spacing"`
	Retreat float64 `json:"retreat"`
}

// BeamConfig describes the continuous beam weapon
type BeamConfig struct {
	Length        float64 `json:"length"`
	Duration      float64 `json:"duration"` // ticks
	DamagePerTick float64 `json:"damagePerTick"`
}

// WeaponsConfig groups weapon parameters by owner
type WeaponsConfig struct {
	Player  ProjectileConfig `json:"player"`
	Hostile ProjectileConfig `json:"hostile"`
	Spread  SpreadConfig     `json:"spread"`
	Beam    BeamConfig       `json:"beam"`
}

// AutopilotConfig tunes the dodge-and-hunt pilot
type AutopilotConfig struct {
	DodgeRadius    float64 `json:"dodgeRadius"`
	DodgeThreshold float64 `json:"dodgeThreshold"`
	TurnGain       float64 `json:"turnGain"`
	FireCone       float64 `json:"fireCone"`
	FarDistance    float64 `json:"farDistance"`
	NearDistance   float64 `json:"nearDistance"`
	ThrustBoost    float64 `json:"thrustBoost"`
	MidThrust      float64 `json:"midThrust"`
	ReverseThrust  float64 `json:"reverseThrust"`
	ShieldOnDodge  bool    `json:"shieldOnDodge"`
	ManualAssist   bool    `json:"manualAssist"`
	AssistStrength float64 `json:"assistStrength"`
}

// WaveConfig controls respawn timing and per-wave difficulty increments
type WaveConfig struct {
	RespawnDelay  float64 `json:"respawnDelay"` // seconds
	FighterStep   int     `json:"fighterStep"`
	MaxFighters   int     `json:"maxFighters"`
	DroneStep     int     `json:"droneStep"`
	MaxDrones     int     `json:"maxDrones"`
	HealthStep    float64 `json:"healthStep"`
	SpeedStep     float64 `json:"speedStep"`
	FireDelayStep float64 `json:"fireDelayStep"`
	MinFireDelay  float64 `json:"minFireDelay"`
	ClearBonus    int     `json:"clearBonus"`
}

// EffectsConfig holds presentation-only feedback parameters
type EffectsConfig struct {
	ExplosionLife   float64 `json:"explosionLife"`
	ExplosionSize   float64 `json:"explosionSize"`
	DebrisBlastRate float64 `json:"debrisBlastRate"` // explosion size per unit of debris radius
	TextLife        float64 `json:"textLife"`
	TextRise        float64 `json:"textRise"`
	TextFade        float64 `json:"textFade"`
}

// LoadConfig loads a configuration from a JSON file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*ArenaConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(cfg *ArenaConfig, path string) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the classic arena: a 4000x4000 world seen through an
// 800x600 window, a hundred fighters and a hundred debris rocks.
func DefaultConfig() *ArenaConfig {
	return &ArenaConfig{
		World:    WorldConfig{Width: 4000, Height: 4000},
		Viewport: ViewportConfig{Width: 800, Height: 600},
		Simulation: SimulationConfig{
			TickRate: 60,
			MaxDelta: 0.25,
			Seed:     1,
		},
		Player: CraftConfig{
			Radius:          20,
			MaxHealth:       100,
			MaxShield:       100,
			ShieldAbsorb:    10,
			ShieldRegen:     0.05,
			Thrust:          0.02,
			Friction:        0.99,
			MaxSpeed:        3,
			TurnRate:        math.Pi / 90,
			BounceDampening: 0.7,
			FireDelay:       10,
			Weapon:          "spread",
			NudgeThreshold:  0.001,
			NudgeAmount:     0.02,
		},
		Opponent: OpponentConfig{
			CraftConfig: CraftConfig{
				Radius:          22,
				MaxHealth:       120,
				Thrust:          0.015,
				Friction:        0.99,
				MaxSpeed:        2.5,
				TurnRate:        math.Pi / 120,
				BounceDampening: 0.7,
				FireDelay:       150,
				Weapon:          "beam",
			},
			Count:           1,
			Reward:          500,
			PreferredRange:  250,
			EngageRange:     450,
			AimCone:         0.1,
			CraftAvoidance:  120,
			AvoidanceFactor: 0.05,
		},
		Fighter: FighterConfig{
			Count:            100,
			Health:           30,
			Radius:           20,
			Speed:            1.2,
			StopDistance:     120,
			SeparationRadius: 40,
			SeparationFactor: 0.05,
			FireDelay:        100,
			FireRange:        600,
			Reward:           150,
			EdgeMargin:       40,
		},
		Debris: DebrisConfig{
			Count:          100,
			Radius:         50,
			MinSpeed:       0.5,
			MaxSpeed:       5.5,
			MaxSpin:        0.01,
			SplitThreshold: 20,
			RewardSplit:    100,
			RewardSmall:    50,
			BodyDamage:     5,
			GraceTicks:     30,
		},
		Drone: DroneConfig{
			Count:          4,
			Health:         20,
			Radius:         15,
			Speed:          1.5,
			FireDelay:      80,
			FireRange:      350,
			HuntRange:      900,
			WanderInterval: 120,
			Reward:         200,
		},
		Civilian: CivilianConfig{
			Count:          12,
			Health:         20,
			Radius:         12,
			Speed:          0.8,
			WanderInterval: 90,
			FleeRange:      250,
			ReturnFire:     true,
			FireDelay:      120,
			FireRange:      250,
		},
		Weapons: WeaponsConfig{
			Player:  ProjectileConfig{Speed: 5, Lifetime: 300, Damage: 10, Radius: 2},
			Hostile: ProjectileConfig{Speed: 5, Lifetime: 300, Damage: 10, Radius: 3},
			Spread:  SpreadConfig{Count: 4, Spacing: 10, Retreat: 0},
			Beam:    BeamConfig{Length: 400, Duration: 20, DamagePerTick: 1},
		},
		Autopilot: AutopilotConfig{
			DodgeRadius:    150,
			DodgeThreshold: 0.1,
			TurnGain:       0.2,
			FireCone:       0.15,
			FarDistance:    400,
			NearDistance:   100,
			ThrustBoost:    1.2,
			MidThrust:      0.5,
			ReverseThrust:  0.5,
			ShieldOnDodge:  true,
			ManualAssist:   false,
			AssistStrength: 0.5,
		},
		Wave: WaveConfig{
			RespawnDelay:  1.5,
			FighterStep:   10,
			MaxFighters:   300,
			DroneStep:     1,
			MaxDrones:     20,
			HealthStep:    5,
			SpeedStep:     0.1,
			FireDelayStep: 5,
			MinFireDelay:  30,
			ClearBonus:    0,
		},
		Effects: EffectsConfig{
			ExplosionLife:   30,
			ExplosionSize:   40,
			DebrisBlastRate: 1.5,
			TextLife:        60,
			TextRise:        0.5,
			TextFade:        0.015,
		},
	}
}
