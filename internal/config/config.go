// Package config loads and validates test specification files.
//
// A specification file declares the console lines expected from every guest
// boot ("general-expected-lines") and, per test, the lines expected after the
// test's name has been sent to the guest. Files are parsed as YAML; since
// YAML is a superset of JSON, plain JSON spec files load unchanged.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"guestexpect/internal/errors"
)

// TestSpec is one named test and the console output it expects.
// Immutable once loaded.
type TestSpec struct {
	Name          string
	ExpectedLines []Pattern
}

// Spec is a fully loaded and validated specification file.
type Spec struct {
	// GeneralExpectedLines are the boot handshake patterns shared by all tests.
	GeneralExpectedLines []Pattern
	// Tests holds every test declaration in file order. Several tests may
	// share a name; each runs independently.
	Tests []TestSpec
}

// SpecsNamed returns every test spec declared under the given name, in file
// order. The result is empty when no spec matches.
func (s *Spec) SpecsNamed(name string) []TestSpec {
	var specs []TestSpec
	for _, t := range s.Tests {
		if t.Name == name {
			specs = append(specs, t)
		}
	}
	return specs
}

type rawSpec struct {
	GeneralExpectedLines []string  `yaml:"general-expected-lines"`
	Tests                []rawTest `yaml:"tests"`
}

type rawTest struct {
	Name          string   `yaml:"name"`
	ExpectedLines []string `yaml:"expected-lines"`
}

// Load reads and parses a specification file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read spec file: %w", err)
	}

	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("spec file %s: %w", path, err)
	}
	return spec, nil
}

// Parse parses specification content and validates its shape.
func Parse(data []byte) (*Spec, error) {
	var raw rawSpec
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, errors.CodeMalformedSpec, "could not unmarshal spec")
	}

	if raw.Tests == nil {
		return nil, errors.New(errors.CodeMalformedSpec, "missing required field: tests")
	}

	spec := &Spec{}

	general, err := compilePatterns(raw.GeneralExpectedLines)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeMalformedSpec, "invalid general-expected-lines")
	}
	spec.GeneralExpectedLines = general

	for i, t := range raw.Tests {
		if t.Name == "" {
			return nil, errors.New(errors.CodeMalformedSpec, fmt.Sprintf("test %d is missing a name", i))
		}
		expected, err := compilePatterns(t.ExpectedLines)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeMalformedSpec, fmt.Sprintf("invalid expected-lines for test '%s'", t.Name))
		}
		spec.Tests = append(spec.Tests, TestSpec{Name: t.Name, ExpectedLines: expected})
	}

	return spec, nil
}

func compilePatterns(sources []string) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(sources))
	for _, src := range sources {
		p, err := CompilePattern(src)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}
