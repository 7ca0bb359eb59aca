package scenario

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/jsclass/runtime"
)

// Fixture is a scripted conformance case: session commands run in order,
// each optionally checked against an expected value or error.
type Fixture struct {
	Description string `yaml:"description"`
	Skip        string `yaml:"skip"`
	Steps       []Step `yaml:"steps"`
}

// Step is one script chunk. Expect compares runtime.Inspect of the result;
// Throws names the expected error kind and Message is a substring of its
// text.
type Step struct {
	Run     string `yaml:"run"`
	Expect  string `yaml:"expect"`
	Throws  string `yaml:"throws"`
	Message string `yaml:"message"`
}

// LoadFixture reads a YAML fixture. Unknown fields are rejected.
func LoadFixture(path string) (*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: open %s: %w", path, err)
	}
	defer file.Close()

	var f Fixture
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("fixture: parse %s: %w", path, err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("fixture: %s has no steps", path)
	}
	return &f, nil
}

// Check runs every step in a fresh session and returns the first mismatch.
func (f *Fixture) Check(cfg Config) error {
	s := NewSession(cfg)
	for i, step := range f.Steps {
		if err := s.checkStep(step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, firstLine(step.Run), err)
		}
	}
	return nil
}

func (s *Session) checkStep(step Step) error {
	v, err := s.Run(step.Run)
	if step.Throws != "" {
		if err == nil {
			return fmt.Errorf("expected %s, got %s", step.Throws, runtime.Inspect(v))
		}
		if kind := runtime.KindOf(err).String(); kind != step.Throws {
			return fmt.Errorf("expected %s, got %s", step.Throws, s.FormatError(err))
		}
	} else if err != nil {
		return fmt.Errorf("unexpected error: %s", s.FormatError(err))
	}
	if step.Message != "" && (err == nil || !strings.Contains(err.Error(), step.Message)) {
		return fmt.Errorf("expected message containing %q, got %v", step.Message, err)
	}
	if step.Expect != "" && err == nil {
		if got := runtime.Inspect(v); got != step.Expect {
			return fmt.Errorf("expected %s, got %s", step.Expect, got)
		}
	}
	return nil
}

func firstLine(src string) string {
	src = strings.TrimSpace(src)
	if i := strings.IndexByte(src, '\n'); i >= 0 {
		return src[:i] + " ..."
	}
	return src
}
