package configuration

import "testing"

func TestConstraintSpec_Build(t *testing.T) {
	spec := ConstraintSpec{Type: ConstraintCycleFree, Slicing: "module"}
	c, err := spec.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.ID() != "cycle-free" {
		t.Errorf("ID() = %q, want cycle-free", c.ID())
	}
}

func TestConstraintSpec_BuildLayering(t *testing.T) {
	spec := ConstraintSpec{
		Type:    ConstraintDirectLayering,
		Slicing: "layer",
		Layers: []LayerSpec{
			{Strict: true, Names: []string{"app"}},
			{Names: []string{"service", "db"}},
		},
	}
	c, err := spec.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := c.ShortString(); got != "app => (service, db)" {
		t.Errorf("ShortString() = %q, want %q", got, "app => (service, db)")
	}
}

func TestConstraintSpec_BuildErrors(t *testing.T) {
	cases := []struct {
		name string
		spec ConstraintSpec
	}{
		{"unknown type", ConstraintSpec{Type: "acyclic", Slicing: "s"}},
		{"missing slicing", ConstraintSpec{Type: ConstraintCycleFree}},
		{"layering without layers", ConstraintSpec{Type: ConstraintLayering, Slicing: "s"}},
		{"empty layer", ConstraintSpec{Type: ConstraintLayering, Slicing: "s", Layers: []LayerSpec{{}}}},
		{"duplicate member", ConstraintSpec{Type: ConstraintLayering, Slicing: "s", Layers: []LayerSpec{
			{Names: []string{"a"}}, {Names: []string{"a"}},
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.spec.Build(); err == nil {
				t.Errorf("Build succeeded, want error")
			}
		})
	}
}
