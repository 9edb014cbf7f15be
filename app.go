package furshell

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// Module installs resources and systems into an App. Modules are the unit of
// composition: window, gpu, input, camera, fur and debug rendering are all
// modules wired together by the demo binary.
type Module interface {
	Install(app *App, cmd *Commands)
}

type App struct {
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any
	ecs       *Ecs
	quitting  bool

	// Command buffering: structural ECS changes are deferred to stage boundaries
	// so systems never mutate archetypes mid-iteration.
	pendingAdditions    []pendingAdd
	pendingRemovals     []EntityId
	pendingCompAdds     []pendingCompAdd
	pendingCompRemovals []pendingCompRemoval
}

type pendingAdd struct {
	eid        EntityId
	components []any
}

type pendingCompAdd struct {
	eid        EntityId
	components []any
}

type pendingCompRemoval struct {
	eid        EntityId
	components []any
}

func (app *App) Commands() *Commands {
	return &Commands{app: app}
}

// Run drives the staged system loop until Quit is called (typically by the
// window module when the user closes the window).
func (app *App) Run() {
	for !app.quitting {
		app.RunFrame()
	}
}

// RunFrame executes a single pass over all stages. Exposed for tests and for
// callers that own their own loop.
func (app *App) RunFrame() {
	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
		}
		app.FlushCommands()
	}
}

// Quit makes Run return after the current frame.
func (app *App) Quit() {
	app.quitting = true
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

var typeOfCommands = reflect.TypeOf(Commands{})

// callSystem resolves a system's parameters by type: *Commands is synthesized,
// everything else must be a pointer to a registered resource.
func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			resourceVal := reflect.ValueOf(resource)
			args[i] = reflect.NewAt(underlyingType, resourceVal.UnsafePointer())
		} else {
			panic(fmt.Sprintf("Unable to resolve system dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(systemType),
				fmt.Sprint(argType),
			))
		}
	}
	systemValue.Call(args)
}

// FlushCommands applies buffered structural changes. Removals run first so a
// frame never adds components to an entity it already removed.
func (app *App) FlushCommands() {
	if len(app.pendingAdditions) == 0 && len(app.pendingRemovals) == 0 &&
		len(app.pendingCompAdds) == 0 && len(app.pendingCompRemovals) == 0 {
		return
	}

	for _, eid := range app.pendingRemovals {
		app.ecs.removeEntity(eid)
	}
	app.pendingRemovals = app.pendingRemovals[:0]

	for _, add := range app.pendingAdditions {
		app.ecs.insertEntity(add.eid, add.components...)
	}
	app.pendingAdditions = app.pendingAdditions[:0]

	for _, add := range app.pendingCompAdds {
		app.ecs.addComponents(add.eid, add.components...)
	}
	app.pendingCompAdds = app.pendingCompAdds[:0]

	for _, rem := range app.pendingCompRemovals {
		app.ecs.removeComponents(rem.eid, rem.components...)
	}
	app.pendingCompRemovals = app.pendingCompRemovals[:0]
}

// resourceOf fetches a registered resource by type. Install-time counterpart
// of system parameter injection, for modules that need another module's
// resource while wiring up.
func resourceOf[T any](app *App) *T {
	t := reflect.TypeOf((*T)(nil)).Elem()
	r, ok := app.resources[t]
	if !ok {
		panic(fmt.Sprintf("resource %s not registered", t))
	}
	return r.(*T)
}

// Logger returns the first Logger resource if present, otherwise a no-op logger.
// Safe to call at any time; never returns nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}
