package providers

import (
	"errors"
	"testing"
)

func TestScriptedInteractionValues(t *testing.T) {
	in := &ScriptedInteraction{
		Values:        map[string]string{"USER": "alice"},
		ConfirmAnswer: true,
	}

	v, err := in.PromptVar("USER")
	if err != nil || v != "alice" {
		t.Fatalf("PromptVar = %q, %v", v, err)
	}

	// Unknown names resolve to the empty string — a valid value.
	v, err = in.PromptVar("MISSING")
	if err != nil || v != "" {
		t.Fatalf("PromptVar(MISSING) = %q, %v, want empty value", v, err)
	}

	ok, err := in.Confirm("run it")
	if err != nil || !ok {
		t.Fatalf("Confirm = %v, %v", ok, err)
	}
	if len(in.Prompted) != 2 || len(in.Confirmed) != 1 {
		t.Errorf("call log = %v / %v", in.Prompted, in.Confirmed)
	}
}

func TestScriptedInteractionCancel(t *testing.T) {
	in := &ScriptedInteraction{CancelVar: "SECRET", CancelConfirm: true}

	if _, err := in.PromptVar("SECRET"); !errors.Is(err, ErrCancelled) {
		t.Errorf("PromptVar cancel = %v, want ErrCancelled", err)
	}
	if _, err := in.Confirm("run it"); !errors.Is(err, ErrCancelled) {
		t.Errorf("Confirm cancel = %v, want ErrCancelled", err)
	}
}

func TestNonInteractiveRefusesPrompts(t *testing.T) {
	var in NonInteractive
	if _, err := in.PromptVar("HOST"); !errors.Is(err, ErrCancelled) {
		t.Errorf("PromptVar = %v, want ErrCancelled", err)
	}
	ok, err := in.Confirm("anything")
	if err != nil || !ok {
		t.Errorf("Confirm = %v, %v, want implicit approval", ok, err)
	}
}
