package crane

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
)

// Simulation owns the crane, the yard and the kinematic state and advances
// them one frame at a time. It is not safe for concurrent use.
type Simulation struct {
	UserData any

	// Scene is the root of everything rendered: the crane and the yard.
	Scene *Node
	Crane *Crane
	Yard  *Yard

	logger    *slog.Logger
	dims      Dimensions
	limits    Limits
	kin       Kinematics
	keyboard  *Keyboard
	mapper    InputMapper
	detector  Detector
	seq       *Sequencer
	metrics   *Metrics
	camera    CameraID
	wireframe bool

	crates    []CrateSpec
	container ContainerSpec

	frame   uint64
	elapsed float64
	currDT  float64

	locked            bool
	postStepCallbacks []*PostStepCallback
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger used by the simulation and its sequencer.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulation) {
		s.logger = logger
	}
}

// WithDimensions replaces the stock dimension table.
func WithDimensions(d Dimensions) Option {
	return func(s *Simulation) {
		s.dims = d
	}
}

// WithManualRates sets the manual control speeds.
func WithManualRates(r ManualRates) Option {
	return func(s *Simulation) {
		s.mapper.Rates = r
	}
}

// WithSequenceRates sets the scripted phase speeds.
func WithSequenceRates(r SequenceRates) Option {
	return func(s *Simulation) {
		s.seq.Rates = r
	}
}

// WithCarryOffset sets where a grabbed crate hangs below the claw.
func WithCarryOffset(offset mgl64.Vec3) Option {
	return func(s *Simulation) {
		s.seq.CarryOffset = offset
	}
}

// WithCrates replaces the stock crates.
func WithCrates(crates []CrateSpec) Option {
	return func(s *Simulation) {
		s.crates = crates
	}
}

// WithContainer replaces the stock container.
func WithContainer(c ContainerSpec) Option {
	return func(s *Simulation) {
		s.container = c
	}
}

// NewSimulation builds the scene in its rest pose.
func NewSimulation(opts ...Option) (*Simulation, error) {
	s := &Simulation{
		logger:    slog.Default(),
		dims:      DefaultDimensions(),
		keyboard:  NewKeyboard(),
		mapper:    InputMapper{Rates: DefaultManualRates()},
		seq:       NewSequencer(DefaultSequenceRates(), nil),
		camera:    BroadPerspective,
		crates:    DefaultCrates(),
		container: DefaultContainer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.seq.logger = s.logger

	if err := s.mapper.Rates.Validate(); err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}
	if err := s.seq.Rates.Validate(); err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}

	c, err := NewCrane(s.dims)
	if err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}
	s.Crane = c
	s.limits = c.Limits
	s.kin = InitialKinematics(s.dims)

	s.Yard = NewYard(s.crates, s.container)
	s.Scene = NewNode("scene")
	s.Scene.Add(c.Root)
	s.Scene.Add(s.Yard.Root)

	s.metrics, err = NewMetrics()
	if err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}
	hook := s.seq.OnPhase
	s.seq.OnPhase = func(e PhaseEvent) {
		s.metrics.phase(e)
		if hook != nil {
			hook(e)
		}
	}

	c.Apply(s.kin)
	meshes := 0
	s.Scene.Each(func(n *Node) {
		if n.Shape != nil {
			meshes++
		}
	})
	s.logger.Info("Simulation created",
		"meshes", meshes,
		"crates", len(s.Yard.Crates),
		"trolleyX", s.kin.TrolleyX,
		"maxRopeScale", s.limits.MaxRopeScale)
	return s, nil
}

// OnPhase registers f to be called on every sequence change.
func (s *Simulation) OnPhase(f func(PhaseEvent)) {
	prev := s.seq.OnPhase
	s.seq.OnPhase = func(e PhaseEvent) {
		prev(e)
		f(e)
	}
}

// Step advances the simulation by dt seconds.
//
// Within a frame the order is fixed: one-shot keys, manual input (only
// while idle), clamping, pose, collision (only while idle), the scripted
// sequence (only while active), pose again, post-step callbacks.
func (s *Simulation) Step(dt float64) {
	if s.locked {
		panic("Internal Error: Step called from inside a step")
	}
	if dt < 0 {
		dt = 0
	}
	s.frame++
	s.currDT = dt
	s.elapsed += dt

	s.Lock()
	{
		for _, k := range s.keyboard.Consume() {
			s.oneShot(k)
		}

		if !s.seq.Active() {
			s.kin.Apply(s.mapper.Delta(s.keyboard, dt), s.dims, s.limits)
		}
		s.kin.ClampAll(s.limits)
		s.Crane.Apply(s.kin)

		if !s.seq.Active() {
			if i, ok := s.detector.Check(s.Crane.ClawBounds(), s.Yard.Crates); ok {
				crate := s.Yard.Crates[i]
				s.logger.Debug("Claw touched crate", "crate", crate.ID, "frame", s.frame)
				s.seq.Trigger(crate)
			}
		}

		if s.seq.Active() {
			s.seq.Step(dt, &s.kin, s.Crane, s.Yard)
			s.Crane.Apply(s.kin)
		}

		s.metrics.frame(s.camera, s.seq.Active())
	}
	s.Unlock(true)
}

func (s *Simulation) oneShot(k Key) {
	b, ok := BindingFor(k)
	if !ok {
		return
	}
	switch b.Action {
	case SelectCamera:
		s.camera = b.Camera
	case ToggleWireframe:
		s.wireframe = !s.wireframe
	}
}

// Lock marks the simulation as stepping.
func (s *Simulation) Lock() {
	s.locked = true
}

// IsLocked returns true from inside a phase callback, when the yard must
// not be changed.
func (s *Simulation) IsLocked() bool {
	return s.locked
}

// Unlock clears the stepping mark and, if runPostStep is set, runs the
// post-step callbacks.
func (s *Simulation) Unlock(runPostStep bool) {
	s.locked = false
	if !runPostStep {
		return
	}
	callbacks := s.postStepCallbacks
	s.postStepCallbacks = nil
	for _, cb := range callbacks {
		if cb.callback != nil {
			cb.callback(s, cb.key, cb.data)
		}
	}
}

// PostStepCallbackFunc is run once at the end of a step.
type PostStepCallbackFunc func(sim *Simulation, key, data any)

// PostStepCallback is a scheduled PostStepCallbackFunc.
type PostStepCallback struct {
	callback PostStepCallbackFunc
	key      any
	data     any
}

// AddPostStepCallback schedules f to run right before the current (or next)
// Step returns. Only one callback per non-nil key is kept; a second one for
// the same key is a no-op that reports false.
func (s *Simulation) AddPostStepCallback(f PostStepCallbackFunc, key, data any) bool {
	if key != nil {
		for _, cb := range s.postStepCallbacks {
			if cb.key == key {
				return false
			}
		}
	}
	s.postStepCallbacks = append(s.postStepCallbacks, &PostStepCallback{callback: f, key: key, data: data})
	return true
}

// AddCrate places a new crate in the yard. Called during a step it is
// deferred until the step ends.
func (s *Simulation) AddCrate(spec CrateSpec) {
	if s.locked {
		s.AddPostStepCallback(func(sim *Simulation, _, data any) {
			sim.AddCrate(data.(CrateSpec))
		}, nil, spec)
		return
	}
	crate := s.Yard.Add(spec)
	s.logger.Debug("Crate added", "crate", crate.ID, "at", spec.Position)
}

// Keyboard returns the key state fed by the host's input events.
func (s *Simulation) Keyboard() *Keyboard {
	return s.keyboard
}

// Kinematics returns the current pose.
func (s *Simulation) Kinematics() Kinematics {
	return s.kin
}

// SetKinematics replaces the pose, clamped. It is ignored while a sequence
// owns the state and reports whether it was applied.
func (s *Simulation) SetKinematics(k Kinematics) bool {
	if s.seq.Active() {
		return false
	}
	k.ClampAll(s.limits)
	k.ClawY = s.dims.ClawYForRope(k.RopeScale)
	k.ClampAll(s.limits)
	s.kin = k
	s.Crane.Apply(s.kin)
	return true
}

// ManualRates returns the manual control speeds.
func (s *Simulation) ManualRates() ManualRates {
	return s.mapper.Rates
}

// Limits returns the parameter bounds.
func (s *Simulation) Limits() Limits {
	return s.limits
}

// Sequencer returns the pick-and-place sequencer.
func (s *Simulation) Sequencer() *Sequencer {
	return s.seq
}

// Detector returns the collision detector and its counters.
func (s *Simulation) Detector() *Detector {
	return &s.detector
}

// Animating reports whether the sequencer owns the state.
func (s *Simulation) Animating() bool {
	return s.seq.Active()
}

// Camera returns the selected camera.
func (s *Simulation) Camera() Camera {
	return cameraFor(s.camera, s.Crane)
}

// Wireframe reports whether wireframe mode is on.
func (s *Simulation) Wireframe() bool {
	return s.wireframe
}

// Frame returns the number of steps taken.
func (s *Simulation) Frame() uint64 {
	return s.frame
}

// Elapsed returns the simulated time in seconds.
func (s *Simulation) Elapsed() float64 {
	return s.elapsed
}

// TimeStep returns the dt of the last step.
func (s *Simulation) TimeStep() float64 {
	return s.currDT
}

// KeyState is one HUD line.
type KeyState struct {
	Binding
	Active bool
}

// HUD is a read-only snapshot for the heads-up display.
type HUD struct {
	Keys       []KeyState
	Camera     CameraID
	Wireframe  bool
	Animating  bool
	Phase      Phase
	Kinematics Kinematics
}

// HUD returns the current snapshot. A movement key shows as active only
// while manual control is possible.
func (s *Simulation) HUD() HUD {
	h := HUD{
		Keys:       make([]KeyState, 0, len(Bindings)),
		Camera:     s.camera,
		Wireframe:  s.wireframe,
		Animating:  s.seq.Active(),
		Phase:      s.seq.Phase(),
		Kinematics: s.kin,
	}
	for _, b := range Bindings {
		active := s.keyboard.Held(b.Key)
		if b.Action == Move && h.Animating {
			active = false
		}
		h.Keys = append(h.Keys, KeyState{Binding: b, Active: active})
	}
	return h
}
