package swell

// TrainEventType identifies a pool lifecycle transition.
type TrainEventType uint8

const (
	TrainSpawned TrainEventType = iota // a pooled train entered the field
	TrainRetired                       // a pooled train left the field or the pool shrank
)

// String returns a short name for logs.
func (t TrainEventType) String() string {
	switch t {
	case TrainSpawned:
		return "spawned"
	case TrainRetired:
		return "retired"
	default:
		return "unknown"
	}
}

// TrainEvent describes one pool transition.
type TrainEvent struct {
	Type    TrainEventType
	TrainID uint32
	Tick    uint64
	// Anchor is the world position at the moment of the transition.
	Anchor     Vec2
	Size       Vec2
	Heading    float64
	Wavelength float64
}

// EventSink receives pool lifecycle events. When set on a WaveField, every
// spawn and retirement is forwarded synchronously from Tick.
type EventSink interface {
	EmitTrainEvent(event TrainEvent)
}
