package furshell

import (
	"reflect"
)

type AppBuilder struct {
	app     *App
	modules []Module
}

func NewAppBuilder() *AppBuilder {
	ecs := MakeEcs()
	return &AppBuilder{app: &App{
		stages: []Stage{
			Prelude,
			PreUpdate,
			Update,
			PostUpdate,
			PreRender,
			Render,
			PostRender,
			Finale,
		},
		systems: map[string][]systemFn{
			Prelude.Name:    {},
			PreUpdate.Name:  {},
			Update.Name:     {},
			PostUpdate.Name: {},
			PreRender.Name:  {},
			Render.Name:     {},
			PostRender.Name: {},
			Finale.Name:     {},
		},
		resources: make(map[reflect.Type]any),
		ecs:       &ecs,
	}}
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)

	return b
}

// Build installs all modules in registration order and flushes any entities
// they spawned, so the first frame already sees them.
func (b *AppBuilder) Build() *App {
	app := b.app
	commands := &Commands{app: app}

	for _, module := range b.modules {
		module.Install(app, commands)
	}
	app.FlushCommands()

	return app
}
