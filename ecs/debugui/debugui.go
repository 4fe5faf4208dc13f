// Package debugui draws Dear ImGui inspector windows for an ecs.Storage and
// its Scheduler. The overlay keeps its own storage for window state, so the
// inspected world never sees a debug component.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/starfall/ecs"
)

// ImguiItem is a window drawn once per overlay frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState mirrors whether ImGui wants the mouse or keyboard this
// frame. Games should ignore their own input while it is set.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Target is the world the panels inspect.
type Target struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
}

// ImguiSystem refreshes ImguiInputState and queues every ImguiItem's render
// function to run when the frame's commands flush.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (s *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	state := s.InputState.Get()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range s.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}

// Overlay owns the debug windows. Call Update between the backend's
// BeginFrame and EndFrame.
type Overlay struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	target    *ecs.Singleton[Target]
	input     *ecs.Singleton[ImguiInputState]
}

// NewOverlay builds the entity browser, archetype viewer and system timing
// windows over target.
func NewOverlay(target Target) *Overlay {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[ImguiItem](registry)
	storage := ecs.NewStorage(registry)

	o := &Overlay{
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		target:    ecs.NewSingleton(storage, target),
		input:     ecs.NewSingleton[ImguiInputState](storage),
	}
	o.scheduler.Register(&ImguiSystem{})

	browser := newEntityBrowser(100)
	archetypes := &archetypeViewer{}
	timings := newSystemTimings(120)
	storage.Spawn(ImguiItem{Render: func() { browser.render(o.target.Get().Storage) }})
	storage.Spawn(ImguiItem{Render: func() { archetypes.render(o.target.Get().Storage) }})
	storage.Spawn(ImguiItem{Render: func() { timings.render(o.target.Get().Scheduler) }})
	return o
}

// SetTarget points the windows at a new world, e.g. after a restart.
func (o *Overlay) SetTarget(target Target) {
	o.target.Set(target)
}

// Update runs one overlay frame, issuing every window's ImGui calls.
func (o *Overlay) Update() error {
	return o.scheduler.Once(0)
}

// CapturesInput reports whether ImGui consumed the mouse or keyboard last
// frame.
func (o *Overlay) CapturesInput() bool {
	state := o.input.Get()
	return state.WantCaptureMouse || state.WantCaptureKeyboard
}
