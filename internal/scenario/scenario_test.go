package scenario

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danmuck/taskmux/internal/testutil/testlog"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	testlog.Start(t)
	path := writeScenario(t, `
name = "pair"
pin_os_thread = true

[[task]]
wait_before_ms = 0
wait_while_ms = 100

[[task]]
wait_before_ms = 10
wait_while_ms = 10
lock_timeout_ms = 250
`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Name != "pair" || !s.PinOSThread {
		t.Fatalf("unexpected scenario header: %+v", s)
	}
	if len(s.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(s.Tasks))
	}
	if got := s.Tasks[0].WaitWhile(); got != 100*time.Millisecond {
		t.Fatalf("task[0] wait_while = %v", got)
	}
	if got := s.Tasks[1].LockTimeout(); got != 250*time.Millisecond {
		t.Fatalf("task[1] lock_timeout = %v", got)
	}
}

func TestLoadScenarioDefaultsName(t *testing.T) {
	testlog.Start(t)
	path := writeScenario(t, `
[[task]]
wait_before_ms = 1
wait_while_ms = 1
`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Name != "scenario" {
		t.Fatalf("expected default name, got %q", s.Name)
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	testlog.Start(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("expected load error for missing file")
	}
}

func TestValidateRejectsEmptyTaskList(t *testing.T) {
	testlog.Start(t)
	if err := Validate(Scenario{Name: "empty"}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidateRejectsNegativeDurations(t *testing.T) {
	testlog.Start(t)
	cases := []TaskSpec{
		{WaitBeforeMS: -1},
		{WaitWhileMS: -1},
		{LockTimeoutMS: -1},
	}
	for i, spec := range cases {
		s := Scenario{Name: "bad", Tasks: []TaskSpec{spec}}
		if err := Validate(s); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}
