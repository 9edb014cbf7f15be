package furshell

import (
	"testing"
)

func TestSchedule_DefaultStageIsUpdate(t *testing.T) {
	sched := System(func() {})
	if sched.inStage.Name != Update.Name {
		t.Errorf("Expected default stage Update, got %v", sched.inStage.Name)
	}
}

func TestSchedule_InStage(t *testing.T) {
	sched := System(func() {}).InStage(Render)
	if sched.inStage.Name != Render.Name {
		t.Errorf("Expected stage Render, got %v", sched.inStage.Name)
	}
}

func TestSchedule_UseStageBefore(t *testing.T) {
	app := NewAppBuilder().Build()
	custom := Stage{Name: "Custom"}

	app.UseStage(custom, BeforeStage(Update))

	idx := -1
	for i, s := range app.stages {
		if s.Name == custom.Name {
			idx = i
		}
	}
	if idx == -1 {
		t.Fatalf("Custom stage not inserted")
	}
	if app.stages[idx+1].Name != Update.Name {
		t.Errorf("Expected Custom right before Update, got %v after it", app.stages[idx+1].Name)
	}

	// The new stage accepts systems
	app.UseSystem(System(func(cmd *Commands) {}).InStage(custom))
}

func TestSchedule_UseStageAfter(t *testing.T) {
	app := NewAppBuilder().Build()
	custom := Stage{Name: "PostFinale"}

	app.UseStage(custom, AfterStage(Finale))

	if app.stages[len(app.stages)-1].Name != custom.Name {
		t.Errorf("Expected PostFinale to be the last stage, got %v", app.stages[len(app.stages)-1].Name)
	}
}

func TestSchedule_UseStageUnknownTargetPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic on unknown target stage")
		}
	}()

	app := NewAppBuilder().Build()
	app.UseStage(Stage{Name: "X"}, BeforeStage(Stage{Name: "DoesNotExist"}))
}

func TestSchedule_UseSystemUnknownStagePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic on unknown stage")
		}
	}()

	app := NewAppBuilder().Build()
	app.UseSystem(System(func() {}).InStage(Stage{Name: "DoesNotExist"}))
}
