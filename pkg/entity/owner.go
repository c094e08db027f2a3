package entity

// Owner is the owner-kind tag carried by projectiles and beams. It decides
// which targets a transient may damage.
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerOpponent
	OwnerHostile
	OwnerDrone
	OwnerCivilian
)

func (o Owner) String() string {
	switch o {
	case OwnerPlayer:
		return "player"
	case OwnerOpponent:
		return "opponent"
	case OwnerHostile:
		return "hostile"
	case OwnerDrone:
		return "drone"
	case OwnerCivilian:
		return "civilian"
	default:
		return "unknown"
	}
}

// OwnerOf maps a shooter kind to the tag its transients carry
func OwnerOf(k Kind) (Owner, bool) {
	switch k {
	case KindPlayer:
		return OwnerPlayer, true
	case KindOpponent:
		return OwnerOpponent, true
	case KindFighter:
		return OwnerHostile, true
	case KindDrone:
		return OwnerDrone, true
	case KindCivilian:
		return OwnerCivilian, true
	}
	return 0, false
}

// CanDamage reports whether a transient with this owner tag may hurt target.
// A transient never damages the kind that fired it.
func (o Owner) CanDamage(target Kind) bool {
	switch o {
	case OwnerPlayer:
		return target == KindFighter || target == KindOpponent || target == KindDrone || target == KindDebris
	case OwnerOpponent:
		return target == KindPlayer || target == KindDebris
	case OwnerHostile:
		return target == KindPlayer
	case OwnerDrone:
		return target == KindCivilian || target == KindPlayer
	case OwnerCivilian:
		return target == KindDrone
	}
	return false
}

