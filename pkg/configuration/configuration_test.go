package configuration

import (
	"context"
	"testing"

	"github.com/obqo/decycle/pkg/check"
	"github.com/obqo/decycle/pkg/classreader"
	derrors "github.com/obqo/decycle/pkg/errors"
)

// fakeSource replays a fixed set of classes and references.
type fakeSource struct {
	classes []string
	refs    [][2]string
}

func (f *fakeSource) Scan(_ context.Context, h classreader.Handler) error {
	for _, c := range f.classes {
		h.Class(c)
	}
	for _, r := range f.refs {
		h.Reference(r[0], r[1])
	}
	return nil
}

func mustCheck(t *testing.T, cfg Config) *Result {
	t.Helper()
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	return result
}

func TestCheck_DefaultConstraintFindsPackageCycles(t *testing.T) {
	src := &fakeSource{
		classes: []string{"a.X", "a.W", "b.Y", "b.Z"},
		refs:    [][2]string{{"a.X", "b.Y"}, {"b.Z", "a.W"}},
	}
	result := mustCheck(t, Config{Source: src})

	if len(result.Violations) != 1 {
		t.Fatalf("violations = %v, want exactly one package cycle", result.Violations)
	}
	want := "cycle-free: no cycles in package: a -> b, b -> a"
	if got := result.Violations[0].String(); got != want {
		t.Errorf("violation = %q, want %q", got, want)
	}
}

func TestCheck_ModuleCycle(t *testing.T) {
	src := &fakeSource{
		classes: []string{"m1.A", "m1.D", "m2.B", "m2.C"},
		refs:    [][2]string{{"m1.A", "m2.B"}, {"m2.C", "m1.D"}},
	}
	result := mustCheck(t, Config{
		Source:      src,
		Slicings:    []SlicingSpec{{Name: "module", Patterns: []string{"(*).**"}}},
		Constraints: []check.Constraint{check.NewCycleFree("module")},
	})

	if len(result.Violations) != 1 {
		t.Fatalf("violations = %v, want one module cycle", result.Violations)
	}
	deps := result.Violations[0].Dependencies
	if len(deps) != 2 || deps[0].String() != "m1 -> m2" || deps[1].String() != "m2 -> m1" {
		t.Errorf("dependencies = %v, want [m1 -> m2, m2 -> m1]", deps)
	}
}

func TestCheck_IgnoreRuleSuppressesViolation(t *testing.T) {
	src := &fakeSource{
		classes: []string{"m1.A", "m1.D", "m2.B", "m2.C"},
		refs:    [][2]string{{"m1.A", "m2.B"}, {"m2.C", "m1.D"}},
	}
	result := mustCheck(t, Config{
		Source:      src,
		Ignoring:    []IgnoreSpec{{From: "m2.**", To: "m1.**"}},
		Slicings:    []SlicingSpec{{Name: "module", Patterns: []string{"(*).**"}}},
		Constraints: []check.Constraint{check.NewCycleFree("module")},
	})

	if len(result.Violations) != 0 {
		t.Errorf("violations = %v, want none after ignoring the back reference", result.Violations)
	}
}

func TestCheck_IgnoreRuleWithoutMatchesChangesNothing(t *testing.T) {
	src := &fakeSource{
		classes: []string{"a.X", "b.Y", "b.Z", "a.W"},
		refs:    [][2]string{{"a.X", "b.Y"}, {"b.Z", "a.W"}},
	}
	base := mustCheck(t, Config{Source: src})
	ignored := mustCheck(t, Config{
		Source:   src,
		Ignoring: []IgnoreSpec{{From: "untouched.**", To: "nothing.**"}},
	})

	if check.DisplayString(base.Violations) != check.DisplayString(ignored.Violations) {
		t.Errorf("unmatched ignore rule changed the violations:\n%s\nvs\n%s",
			check.DisplayString(base.Violations), check.DisplayString(ignored.Violations))
	}
}

func TestCheck_ExcludingRemovesViolations(t *testing.T) {
	src := &fakeSource{
		classes: []string{"a.X", "b.Y", "b.Z", "a.W"},
		refs:    [][2]string{{"a.X", "b.Y"}, {"b.Z", "a.W"}},
	}
	result := mustCheck(t, Config{
		Source:    src,
		Excluding: []string{"b.**"},
	})

	if len(result.Violations) != 0 {
		t.Errorf("violations = %v, want none with package b excluded", result.Violations)
	}
}

func TestCheck_Deterministic(t *testing.T) {
	src := &fakeSource{
		classes: []string{"m1.A", "m1.D", "m2.B", "m2.C", "m3.E"},
		refs: [][2]string{
			{"m1.A", "m2.B"}, {"m2.C", "m1.D"}, {"m2.C", "m3.E"}, {"m3.E", "m1.A"},
		},
	}
	cfg := Config{
		Source:      src,
		Slicings:    []SlicingSpec{{Name: "module", Patterns: []string{"(*).**"}}},
		Constraints: []check.Constraint{check.NewCycleFree("module")},
	}

	first := check.DisplayString(mustCheck(t, cfg).Violations)
	for i := 0; i < 5; i++ {
		if got := check.DisplayString(mustCheck(t, cfg).Violations); got != first {
			t.Fatalf("run %d produced %q, want stable %q", i, got, first)
		}
	}
}

func TestCheck_ConstraintOrderPreserved(t *testing.T) {
	src := &fakeSource{
		classes: []string{"m1.A", "m1.D", "m2.B", "m2.C"},
		refs:    [][2]string{{"m1.A", "m2.B"}, {"m2.C", "m1.D"}},
	}
	result := mustCheck(t, Config{
		Source:   src,
		Slicings: []SlicingSpec{{Name: "module", Patterns: []string{"(*).**"}}},
		Constraints: []check.Constraint{
			check.NewLayering("module", check.LenientLayer("m1"), check.LenientLayer("m2")),
			check.NewCycleFree("module"),
		},
	})

	if len(result.Violations) != 2 {
		t.Fatalf("violations = %v, want layering then cycle", result.Violations)
	}
	if result.Violations[0].Constraint != "layering" || result.Violations[1].Constraint != "cycle-free" {
		t.Errorf("violation order = [%s, %s], want declaration order",
			result.Violations[0].Constraint, result.Violations[1].Constraint)
	}
}

func TestCheck_Stats(t *testing.T) {
	src := &fakeSource{
		classes: []string{"a.X", "b.Y"},
		refs:    [][2]string{{"a.X", "b.Y"}},
	}
	result := mustCheck(t, Config{Source: src})

	if result.Stats.Classes != 2 || result.Stats.References != 1 {
		t.Errorf("Stats = %+v, want 2 classes and 1 reference", result.Stats)
	}
}

func TestNew_Validation(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		code derrors.Code
	}{
		{
			name: "missing classpath",
			cfg:  Config{},
			code: derrors.ErrCodeInvalidConfig,
		},
		{
			name: "bad including pattern",
			cfg:  Config{Source: &fakeSource{}, Including: []string{"a.(*).(*)"}},
			code: derrors.ErrCodeInvalidPattern,
		},
		{
			name: "duplicate slicing",
			cfg: Config{Source: &fakeSource{}, Slicings: []SlicingSpec{
				{Name: "module", Patterns: []string{"(*).**"}},
				{Name: "module", Patterns: []string{"(*).**"}},
			}},
			code: derrors.ErrCodeInvalidSlicing,
		},
		{
			name: "reserved slicing name",
			cfg: Config{Source: &fakeSource{}, Slicings: []SlicingSpec{
				{Name: "package", Patterns: []string{"(*).**"}},
			}},
			code: derrors.ErrCodeInvalidSlicing,
		},
		{
			name: "constraint over undeclared slicing",
			cfg: Config{Source: &fakeSource{}, Constraints: []check.Constraint{
				check.NewCycleFree("module"),
			}},
			code: derrors.ErrCodeInvalidConstraint,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.cfg)
			if err == nil {
				t.Fatalf("New succeeded, want %s", tc.code)
			}
			if got := derrors.GetCode(err); got != tc.code {
				t.Errorf("error code = %s, want %s", got, tc.code)
			}
		})
	}
}
