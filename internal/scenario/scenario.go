// Package scenario loads the TOML task-scenario files consumed by
// taskctl: a named list of tasks, each with its wait durations and
// optional bounded lock acquisition.
package scenario

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// TaskSpec is one task entry in a scenario file.
type TaskSpec struct {
	WaitBeforeMS  int `toml:"wait_before_ms"`
	WaitWhileMS   int `toml:"wait_while_ms"`
	LockTimeoutMS int `toml:"lock_timeout_ms"`
}

// Scenario is a set of tasks contending for one shared mutex.
type Scenario struct {
	Name        string     `toml:"name"`
	PinOSThread bool       `toml:"pin_os_thread"`
	Tasks       []TaskSpec `toml:"task"`
}

func (t TaskSpec) WaitBefore() time.Duration {
	return time.Duration(t.WaitBeforeMS) * time.Millisecond
}

func (t TaskSpec) WaitWhile() time.Duration {
	return time.Duration(t.WaitWhileMS) * time.Millisecond
}

func (t TaskSpec) LockTimeout() time.Duration {
	return time.Duration(t.LockTimeoutMS) * time.Millisecond
}

func Load(path string) (Scenario, error) {
	var s Scenario
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Scenario{}, fmt.Errorf("scenario load failed (%s): %w", path, err)
	}
	if strings.TrimSpace(s.Name) == "" {
		s.Name = "scenario"
	}
	if err := Validate(s); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

func Validate(s Scenario) error {
	if len(s.Tasks) == 0 {
		return fmt.Errorf("scenario %q has no tasks", s.Name)
	}
	for i, spec := range s.Tasks {
		if spec.WaitBeforeMS < 0 {
			return fmt.Errorf("task[%d] invalid: wait_before_ms must be non-negative", i)
		}
		if spec.WaitWhileMS < 0 {
			return fmt.Errorf("task[%d] invalid: wait_while_ms must be non-negative", i)
		}
		if spec.LockTimeoutMS < 0 {
			return fmt.Errorf("task[%d] invalid: lock_timeout_ms must be non-negative", i)
		}
	}
	return nil
}
