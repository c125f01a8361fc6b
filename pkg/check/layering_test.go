package check

import "testing"

func directLayering() *LayeringConstraint {
	return NewDirectLayering("t", StrictLayer("a"), LenientLayer("b"), LenientLayer("c"))
}

func TestDirectLayering_ViolationFree(t *testing.T) {
	c := directLayering()
	src := newMockSliceSource("t", [2]string{"a", "b"}, [2]string{"b", "c"})

	if got := c.Violations(src); len(got) != 0 {
		t.Errorf("Violations() = %v, want none", got)
	}
}

func TestDirectLayering_SkippingLayersReported(t *testing.T) {
	c := directLayering()
	src := newMockSliceSource("t", [2]string{"a", "c"})

	got := dependenciesIn(c.Violations(src))
	want := []Dependency{d("t", "a", "c")}
	if !sameDependencies(got, want) {
		t.Errorf("dependencies = %v, want %v", got, want)
	}
}

func TestDirectLayering_InverseDependencyReported(t *testing.T) {
	c := directLayering()
	src := newMockSliceSource("t", [2]string{"b", "a"})

	got := dependenciesIn(c.Violations(src))
	want := []Dependency{d("t", "b", "a")}
	if !sameDependencies(got, want) {
		t.Errorf("dependencies = %v, want %v", got, want)
	}
}

func TestDirectLayering_OtherSlicingsIgnored(t *testing.T) {
	c := directLayering()
	src := newMockSliceSource("x", [2]string{"b", "a"})

	if got := c.Violations(src); len(got) != 0 {
		t.Errorf("Violations() = %v, want none for a foreign slicing", got)
	}
}

func TestDirectLayering_LastToUnknownAllowed(t *testing.T) {
	c := directLayering()
	src := newMockSliceSource("t", [2]string{"c", "x"})

	if got := c.Violations(src); len(got) != 0 {
		t.Errorf("Violations() = %v, want none", got)
	}
}

func TestDirectLayering_UnknownToFirstAllowed(t *testing.T) {
	c := directLayering()
	src := newMockSliceSource("t", [2]string{"x", "a"})

	if got := c.Violations(src); len(got) != 0 {
		t.Errorf("Violations() = %v, want none", got)
	}
}

func TestDirectLayering_ToUnknownInMiddleReported(t *testing.T) {
	c := directLayering()
	src := newMockSliceSource("t", [2]string{"b", "x"})

	got := dependenciesIn(c.Violations(src))
	want := []Dependency{d("t", "b", "x")}
	if !sameDependencies(got, want) {
		t.Errorf("dependencies = %v, want %v", got, want)
	}
}

func TestDirectLayering_FromUnknownInMiddleReported(t *testing.T) {
	c := directLayering()
	src := newMockSliceSource("t", [2]string{"x", "b"})

	got := dependenciesIn(c.Violations(src))
	want := []Dependency{d("t", "x", "b")}
	if !sameDependencies(got, want) {
		t.Errorf("dependencies = %v, want %v", got, want)
	}
}

func TestLayering_InverseDependencyReported(t *testing.T) {
	c := NewLayering("t", StrictLayer("a"), LenientLayer("b"), LenientLayer("c"))
	src := newMockSliceSource("t", [2]string{"b", "a"})

	got := dependenciesIn(c.Violations(src))
	want := []Dependency{d("t", "b", "a")}
	if !sameDependencies(got, want) {
		t.Errorf("dependencies = %v, want %v", got, want)
	}
}

func TestLayering_SkippingLayersAllowed(t *testing.T) {
	c := NewLayering("t", StrictLayer("a"), LenientLayer("b"), LenientLayer("c"))
	src := newMockSliceSource("t", [2]string{"a", "c"})

	if got := c.Violations(src); len(got) != 0 {
		t.Errorf("Violations() = %v, want none for a skipping edge", got)
	}
}

func TestLayering_StrictWithinLayerReported(t *testing.T) {
	c := NewLayering("t", StrictLayer("a", "x"), LenientLayer("b"))
	src := newMockSliceSource("t", [2]string{"a", "x"})

	got := dependenciesIn(c.Violations(src))
	want := []Dependency{d("t", "a", "x")}
	if !sameDependencies(got, want) {
		t.Errorf("dependencies = %v, want %v", got, want)
	}
}

func TestLayering_LenientWithinLayerAllowed(t *testing.T) {
	c := NewLayering("t", LenientLayer("a", "x"), LenientLayer("b"))
	src := newMockSliceSource("t", [2]string{"a", "x"})

	if got := c.Violations(src); len(got) != 0 {
		t.Errorf("Violations() = %v, want none within a lenient layer", got)
	}
}

func TestLayering_SymmetryUnderReversal(t *testing.T) {
	forward := NewLayering("t", LenientLayer("a"), LenientLayer("b"), LenientLayer("c"))
	backward := NewLayering("t", LenientLayer("c"), LenientLayer("b"), LenientLayer("a"))

	edges := [][2]string{{"a", "b"}, {"c", "a"}, {"b", "b"}, {"c", "x"}, {"x", "a"}}
	var reversed [][2]string
	for _, e := range edges {
		reversed = append(reversed, [2]string{e[1], e[0]})
	}

	nf := len(dependenciesIn(forward.Violations(newMockSliceSource("t", edges...))))
	nb := len(dependenciesIn(backward.Violations(newMockSliceSource("t", reversed...))))
	if nf != nb {
		t.Errorf("violation count not symmetric: forward %d, reversed %d", nf, nb)
	}
}

func TestLayering_ShortStringSingleMembers(t *testing.T) {
	c := NewDirectLayering("type", StrictLayer("a"), LenientLayer("b"))
	if got := c.ShortString(); got != "a => b" {
		t.Errorf("ShortString() = %q, want %q", got, "a => b")
	}
}

func TestLayering_ShortStringMultipleMembers(t *testing.T) {
	c := NewDirectLayering("type", StrictLayer("a", "x"), LenientLayer("b", "y"))
	if got := c.ShortString(); got != "[a, x] => (b, y)" {
		t.Errorf("ShortString() = %q, want %q", got, "[a, x] => (b, y)")
	}
}

func TestLayering_IDs(t *testing.T) {
	if got := NewLayering("t").ID(); got != "layering" {
		t.Errorf("ID() = %q, want %q", got, "layering")
	}
	if got := NewDirectLayering("t").ID(); got != "direct-layering" {
		t.Errorf("ID() = %q, want %q", got, "direct-layering")
	}
}
