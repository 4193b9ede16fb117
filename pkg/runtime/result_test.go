package runtime

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/devstash/devstash/pkg/schema"
)

func TestStatusTerminal(t *testing.T) {
	for _, s := range []Status{StatusSucceeded, StatusFailed, StatusAborted, StatusSkipped} {
		if !s.Terminal() {
			t.Errorf("%s.Terminal() = false, want true", s)
		}
	}
	for _, s := range []Status{StatusPending, StatusResolving, StatusRendering, StatusConfirmPending, StatusExecuting} {
		if s.Terminal() {
			t.Errorf("%s.Terminal() = true, want false", s)
		}
	}
}

// A failure at the first step must survive serialization; index zero is a
// real value, not an absent field.
func TestResultJSONKeepsFailedStepZero(t *testing.T) {
	res := &Result{
		Entry:      "deploy",
		Kind:       schema.KindPlaybook,
		Status:     StatusFailed,
		FailedStep: 0,
	}
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"failed_step":0`) {
		t.Errorf("marshaled result = %s, want failed_step 0 present", data)
	}
}
