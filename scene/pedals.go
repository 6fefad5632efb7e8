package scene

// Pedal control change numbers
const (
	CCExpression uint8 = 11
	CCDamper     uint8 = 64
	CCSostenuto  uint8 = 66
	CCSoft       uint8 = 67
)

// Pedals holds the latest level of each pedal, in [0,1]
type Pedals struct {
	Damper     float32
	Sostenuto  float32
	Soft       float32
	Expression float32
}

// Apply overwrites the pedal driven by controller. Unknown controllers are ignored.
func (p *Pedals) Apply(controller, value uint8) bool {
	var pedal *float32
	switch controller {
	case CCDamper:
		pedal = &p.Damper
	case CCSostenuto:
		pedal = &p.Sostenuto
	case CCSoft:
		pedal = &p.Soft
	case CCExpression:
		pedal = &p.Expression
	default:
		return false
	}
	*pedal = 0
	if value > 0 {
		*pedal = float32(value) / 127.0
	}
	return true
}
