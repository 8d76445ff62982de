package crane

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"unicode"
)

// Key is a keyboard key identified by the character it produces.
type Key rune

func (k Key) String() string {
	return string(k)
}

// Action is what a key binding does.
type Action uint8

const (
	// SelectCamera switches to Binding.Camera.
	SelectCamera Action = iota
	// ToggleWireframe flips the wireframe material mode.
	ToggleWireframe
	// Move changes Binding.Param in the direction of Binding.Sign while held.
	Move
)

// Binding ties a key to an action.
type Binding struct {
	Key   Key
	Label string
	// OneShot bindings fire once per press and ignore key repeat. The others
	// act on every frame the key is held.
	OneShot bool
	Action  Action
	Camera  CameraID
	Param   Param
	Sign    float64
}

// Bindings is the fixed key map.
var Bindings = []Binding{
	{Key: '1', Label: "Frontal camera", OneShot: true, Action: SelectCamera, Camera: Frontal},
	{Key: '2', Label: "Lateral camera", OneShot: true, Action: SelectCamera, Camera: Lateral},
	{Key: '3', Label: "Top camera", OneShot: true, Action: SelectCamera, Camera: Top},
	{Key: '4', Label: "Broad orthographic camera", OneShot: true, Action: SelectCamera, Camera: BroadOrthographic},
	{Key: '5', Label: "Broad perspective camera", OneShot: true, Action: SelectCamera, Camera: BroadPerspective},
	{Key: '6', Label: "Claw camera", OneShot: true, Action: SelectCamera, Camera: ClawCamera},
	{Key: '7', Label: "Toggle wireframe", OneShot: true, Action: ToggleWireframe},
	{Key: 'q', Label: "Rotate tower counter-clockwise", Action: Move, Param: TowerAngle, Sign: 1},
	{Key: 'a', Label: "Rotate tower clockwise", Action: Move, Param: TowerAngle, Sign: -1},
	{Key: 'w', Label: "Move trolley forward", Action: Move, Param: TrolleyX, Sign: 1},
	{Key: 's', Label: "Move trolley backwards", Action: Move, Param: TrolleyX, Sign: -1},
	{Key: 'e', Label: "Move claw up", Action: Move, Param: RopeScale, Sign: -1},
	{Key: 'd', Label: "Move claw down", Action: Move, Param: RopeScale, Sign: 1},
	{Key: 'r', Label: "Open claw", Action: Move, Param: FingerAngle, Sign: -1},
	{Key: 'f', Label: "Close claw", Action: Move, Param: FingerAngle, Sign: 1},
}

// BindingFor returns the binding of k.
func BindingFor(k Key) (Binding, bool) {
	k = normalizeKey(k)
	i := slices.IndexFunc(Bindings, func(b Binding) bool { return b.Key == k })
	if i < 0 {
		return Binding{}, false
	}
	return Bindings[i], true
}

func normalizeKey(k Key) Key {
	return Key(unicode.ToLower(rune(k)))
}

// Keyboard tracks the recognized keys that are down and the one-shot
// presses not yet consumed. Unrecognized keys are ignored.
type Keyboard struct {
	down    map[Key]bool
	pending []Key
}

// NewKeyboard returns a keyboard with no key down.
func NewKeyboard() *Keyboard {
	return &Keyboard{down: make(map[Key]bool)}
}

// Press records a key-down event. repeat marks auto-repeat events, which
// one-shot keys ignore. It reports whether the key is bound.
func (kb *Keyboard) Press(k Key, repeat bool) bool {
	b, ok := BindingFor(k)
	if !ok {
		return false
	}
	if b.OneShot && !repeat && !kb.down[b.Key] {
		kb.pending = append(kb.pending, b.Key)
	}
	kb.down[b.Key] = true
	return true
}

// Release records a key-up event.
func (kb *Keyboard) Release(k Key) {
	delete(kb.down, normalizeKey(k))
}

// Held reports whether k is down.
func (kb *Keyboard) Held(k Key) bool {
	return kb.down[normalizeKey(k)]
}

// Consume returns the one-shot presses since the previous call, in order.
func (kb *Keyboard) Consume() []Key {
	keys := kb.pending
	kb.pending = nil
	return keys
}

// Reset releases every key and drops pending presses.
func (kb *Keyboard) Reset() {
	clear(kb.down)
	kb.pending = nil
}

// ManualRates are the speeds of manual control, per second.
type ManualRates struct {
	Trolley float64 `mapstructure:"trolley"`
	Tower   float64 `mapstructure:"tower"`
	Rope    float64 `mapstructure:"rope"`
	Finger  float64 `mapstructure:"finger"`
}

// DefaultManualRates returns the stock manual speeds.
func DefaultManualRates() ManualRates {
	return ManualRates{
		Trolley: 10,
		Tower:   1,
		Rope:    2,
		Finger:  1,
	}
}

// ErrInvalidRates is returned when a control speed is not a positive
// finite number.
var ErrInvalidRates = errors.New("invalid rates")

type namedRate struct {
	name  string
	value float64
}

func validateRates(group string, rates ...namedRate) error {
	for _, r := range rates {
		if !(r.value > 0) || math.IsInf(r.value, 0) {
			return fmt.Errorf("%w: %s.%s must be positive, got %v", ErrInvalidRates, group, r.name, r.value)
		}
	}
	return nil
}

// Validate reports whether every manual speed is positive and finite.
func (r ManualRates) Validate() error {
	return validateRates("manual",
		namedRate{"trolley", r.Trolley},
		namedRate{"tower", r.Tower},
		namedRate{"rope", r.Rope},
		namedRate{"finger", r.Finger})
}

// Rate returns the speed used for p.
func (r ManualRates) Rate(p Param) float64 {
	switch p {
	case TrolleyX:
		return r.Trolley
	case TowerAngle:
		return r.Tower
	case RopeScale:
		return r.Rope
	case FingerAngle:
		return r.Finger
	default:
		panic(fmt.Sprintf("crane: %v is not driven manually", p))
	}
}

// InputMapper turns held keys into a kinematic delta.
type InputMapper struct {
	Rates ManualRates
}

// Delta returns the change asked for by the held movement keys over dt
// seconds. Opposite keys held together cancel out. The claw height is
// never set directly; it follows the rope.
func (m InputMapper) Delta(kb *Keyboard, dt float64) Delta {
	var d Delta
	for _, b := range Bindings {
		if b.Action != Move || !kb.Held(b.Key) {
			continue
		}
		k := (*Kinematics)(&d)
		*k.field(b.Param) += b.Sign * m.Rates.Rate(b.Param) * dt
	}
	return d
}
