package furshell

import (
	"reflect"
)

// QueryN iterates entities that carry all N component types. Components listed
// in optionals may be absent, in which case the callback receives nil for them.
// The callback returns false to stop iteration early.
type Query1[A any] struct{ ecs *Ecs }
type Query2[A, B any] struct{ ecs *Ecs }
type Query3[A, B, C any] struct{ ecs *Ecs }
type Query4[A, B, C, D any] struct{ ecs *Ecs }

func MakeQuery1[A any](cmd *Commands) Query1[A]             { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B]       { return Query2[A, B]{ecs: cmd.app.ecs} }
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] { return Query3[A, B, C]{ecs: cmd.app.ecs} }
func MakeQuery4[A, B, C, D any](cmd *Commands) Query4[A, B, C, D] {
	return Query4[A, B, C, D]{ecs: cmd.app.ecs}
}

func (q Query1[A]) Map(m func(EntityId, *A) bool, optionals ...any) {
	id1 := identifyComponents1[A](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		comps1, no_a, ok := archetypeColumn[A](arch, id1, opt)
		if !ok {
			continue
		}

		for entityId, row := range arch.entities {
			var a *A
			if !no_a {
				a = &comps1[row]
			}

			if !m(entityId, a) {
				return
			}
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool, optionals ...any) {
	id1, id2 := identifyComponents2[A, B](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		comps1, no_a, ok := archetypeColumn[A](arch, id1, opt)
		if !ok {
			continue
		}
		comps2, no_b, ok := archetypeColumn[B](arch, id2, opt)
		if !ok {
			continue
		}

		for entityId, row := range arch.entities {
			var a *A
			if !no_a {
				a = &comps1[row]
			}
			var b *B
			if !no_b {
				b = &comps2[row]
			}

			if !m(entityId, a, b) {
				return
			}
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool, optionals ...any) {
	id1, id2, id3 := identifyComponents3[A, B, C](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		comps1, no_a, ok := archetypeColumn[A](arch, id1, opt)
		if !ok {
			continue
		}
		comps2, no_b, ok := archetypeColumn[B](arch, id2, opt)
		if !ok {
			continue
		}
		comps3, no_c, ok := archetypeColumn[C](arch, id3, opt)
		if !ok {
			continue
		}

		for entityId, row := range arch.entities {
			var a *A
			if !no_a {
				a = &comps1[row]
			}
			var b *B
			if !no_b {
				b = &comps2[row]
			}
			var c *C
			if !no_c {
				c = &comps3[row]
			}

			if !m(entityId, a, b, c) {
				return
			}
		}
	}
}

func (q Query4[A, B, C, D]) Map(m func(EntityId, *A, *B, *C, *D) bool, optionals ...any) {
	id1, id2, id3, id4 := identifyComponents4[A, B, C, D](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		comps1, no_a, ok := archetypeColumn[A](arch, id1, opt)
		if !ok {
			continue
		}
		comps2, no_b, ok := archetypeColumn[B](arch, id2, opt)
		if !ok {
			continue
		}
		comps3, no_c, ok := archetypeColumn[C](arch, id3, opt)
		if !ok {
			continue
		}
		comps4, no_d, ok := archetypeColumn[D](arch, id4, opt)
		if !ok {
			continue
		}

		for entityId, row := range arch.entities {
			var a *A
			if !no_a {
				a = &comps1[row]
			}
			var b *B
			if !no_b {
				b = &comps2[row]
			}
			var c *C
			if !no_c {
				c = &comps3[row]
			}
			var d *D
			if !no_d {
				d = &comps4[row]
			}

			if !m(entityId, a, b, c, d) {
				return
			}
		}
	}
}

// archetypeColumn fetches the typed component slice for one query argument.
// missing reports an optional component absent from this archetype; ok is
// false when a required component is missing and the archetype is skipped.
func archetypeColumn[T any](arch *archetype, id componentId, opt set[componentId]) (comps []T, missing bool, ok bool) {
	if compData, present := arch.componentData[id]; present {
		return compData.([]T), false, true
	}
	if _, optional := opt[id]; optional {
		return nil, true, true
	}
	return nil, false, false
}

func identifyOptionals(ecs *Ecs, components ...any) set[componentId] {
	res := make(set[componentId])
	for _, c := range components {
		res[ecs.getComponentId(reflect.TypeOf(c))] = struct{}{}
	}

	return res
}

func identifyComponents1[A any](ecs *Ecs) componentId {
	var a A
	return ecs.getComponentId(reflect.TypeOf(a))
}

func identifyComponents2[A, B any](ecs *Ecs) (componentId, componentId) {
	var a A
	var b B
	return ecs.getComponentId(reflect.TypeOf(a)), ecs.getComponentId(reflect.TypeOf(b))
}

func identifyComponents3[A, B, C any](ecs *Ecs) (componentId, componentId, componentId) {
	var a A
	var b B
	var c C
	return ecs.getComponentId(reflect.TypeOf(a)), ecs.getComponentId(reflect.TypeOf(b)), ecs.getComponentId(reflect.TypeOf(c))
}

func identifyComponents4[A, B, C, D any](ecs *Ecs) (componentId, componentId, componentId, componentId) {
	var a A
	var b B
	var c C
	var d D
	return ecs.getComponentId(reflect.TypeOf(a)), ecs.getComponentId(reflect.TypeOf(b)), ecs.getComponentId(reflect.TypeOf(c)), ecs.getComponentId(reflect.TypeOf(d))
}
