package governance

import "testing"

func TestPermissiveByDefault(t *testing.T) {
	eng, err := Compile(nil)
	if err != nil {
		t.Fatalf("Compile(nil): %v", err)
	}
	if err := eng.CheckCommand("rm -rf /tmp/x"); err != nil {
		t.Errorf("permissive engine blocked command: %v", err)
	}
	if out := eng.Redact("password=hunter2"); out != "password=hunter2" {
		t.Errorf("permissive engine modified output: %q", out)
	}
}

func TestDenyWinsOverAllow(t *testing.T) {
	eng, err := Compile(&Policy{Allow: []string{"rm"}, Deny: []string{"rm"}})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if err := eng.CheckCommand("rm -rf /"); err == nil {
		t.Fatal("expected denied command to be blocked")
	}
}

func TestAllowlistBlocksOthers(t *testing.T) {
	eng, _ := Compile(&Policy{Allow: []string{"kubectl", "echo"}})
	if err := eng.CheckCommand("echo hi"); err != nil {
		t.Errorf("allowlisted command blocked: %v", err)
	}
	err := eng.CheckCommand("curl https://example.com")
	if err == nil {
		t.Fatal("expected non-allowlisted command to be blocked")
	}
	if _, ok := err.(*PolicyError); !ok {
		t.Errorf("error type = %T, want *PolicyError", err)
	}
}

func TestDenyCatchesChainedCommands(t *testing.T) {
	eng, err := Compile(&Policy{Deny: []string{"rm"}})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for _, command := range []string{
		"echo ok; rm -rf /tmp/x",
		"echo ok && rm /tmp/x",
		"true | rm /tmp/x",
		"echo ok\nrm /tmp/x",
	} {
		if err := eng.CheckCommand(command); err == nil {
			t.Errorf("CheckCommand(%q) = nil, want denied", command)
		}
	}
}

func TestAllowlistAppliesToEverySegment(t *testing.T) {
	eng, _ := Compile(&Policy{Allow: []string{"echo"}})
	if err := eng.CheckCommand("echo one; echo two"); err != nil {
		t.Errorf("all-allowlisted chain blocked: %v", err)
	}
	if err := eng.CheckCommand("echo hi; curl https://example.com"); err == nil {
		t.Fatal("expected non-allowlisted segment to be blocked")
	}
}

func TestPrograms(t *testing.T) {
	got := Programs("echo hi && sleep 1 | tee out")
	want := []string{"echo", "sleep", "tee"}
	if len(got) != len(want) {
		t.Fatalf("Programs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Programs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRedaction(t *testing.T) {
	eng, err := Compile(&Policy{Redact: []RedactionRule{
		{Pattern: `token=\S+`, Replace: "token=[redacted]"},
	}})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	out := eng.Redact("auth token=abc123 granted")
	if out != "auth token=[redacted] granted" {
		t.Errorf("Redact = %q", out)
	}
}

func TestCompileRejectsBadPattern(t *testing.T) {
	if _, err := Compile(&Policy{Redact: []RedactionRule{{Pattern: "("}}}); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}
