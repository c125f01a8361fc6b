package slicer

import (
	"testing"

	"github.com/obqo/decycle/pkg/model"
)

func mustSlicing(t *testing.T, name string, patterns ...string) Slicing {
	t.Helper()
	s, err := ParseSlicing(name, patterns)
	if err != nil {
		t.Fatalf("ParseSlicing(%q): %v", name, err)
	}
	return s
}

func TestPatternCategorizer_FirstMatchWins(t *testing.T) {
	s := mustSlicing(t, "module", "com.example.core.**=core", "com.example.**=rest")
	cat := s.Categorizer()

	got := cat.Categorize(model.ClassNode("com.example.core.Foo"))
	if !model.Equal(got, model.SliceNode("module", "core")) {
		t.Errorf("Categorize() = %v, want the core slice", got)
	}

	got = cat.Categorize(model.ClassNode("com.example.web.Bar"))
	if !model.Equal(got, model.SliceNode("module", "rest")) {
		t.Errorf("Categorize() = %v, want the rest slice", got)
	}
}

func TestPatternCategorizer_NoMatchIsFixpoint(t *testing.T) {
	s := mustSlicing(t, "module", "com.example.(*).**")
	cat := s.Categorizer()

	n := model.ClassNode("org.other.Foo")
	if got := cat.Categorize(n); !model.Equal(got, n) {
		t.Errorf("Categorize() = %v, want the node itself", got)
	}
}

func TestPatternCategorizer_SliceNodesAreFixpoints(t *testing.T) {
	s := mustSlicing(t, "module", "com.example.(*).**")
	cat := s.Categorizer()

	n := model.SliceNode("module", "core")
	if got := cat.Categorize(n); !model.Equal(got, n) {
		t.Errorf("Categorize() = %v, want the slice node itself", got)
	}
}

func TestPatternCategorizer_SelfSliceGainsType(t *testing.T) {
	// The whole match is the label, so each class is its own slice group.
	s := mustSlicing(t, "special", "com.example.**")
	cat := s.Categorizer()

	n := model.ClassNode("com.example.Foo")
	got := cat.Categorize(n)
	want := model.NewSimpleNode("com.example.Foo", model.TypeClass, "special")
	if !model.Equal(got, want) {
		t.Errorf("Categorize() = %v with types %v, want class+slicing types", got, want.Types)
	}

	// The merged node is the fixed point.
	if next := cat.Categorize(got); !model.Equal(next, got) {
		t.Errorf("Categorize(merged) = %v, want fixpoint", next)
	}
}

func TestPackageCategorizer(t *testing.T) {
	cat := PackageCategorizer{}

	got := cat.Categorize(model.ClassNode("com.example.Foo"))
	if !model.Equal(got, model.SliceNode(SlicingPackage, "com.example")) {
		t.Errorf("Categorize() = %v, want the com.example package slice", got)
	}

	n := model.ClassNode("TopLevel")
	if got := cat.Categorize(n); !model.Equal(got, n) {
		t.Errorf("Categorize(default package class) = %v, want the node itself", got)
	}
}

func TestCategorizer_SingleSlicingResult(t *testing.T) {
	module := mustSlicing(t, "module", "com.example.(*).**")
	cat := NewCategorizer(module.Categorizer())

	got := cat.Categorize(model.ClassNode("com.example.core.Foo"))
	if !model.Equal(got, model.SliceNode("module", "core")) {
		t.Errorf("Categorize() = %v, want plain slice node", got)
	}
}

func TestCategorizer_MultipleSlicingsYieldParentAwareNode(t *testing.T) {
	module := mustSlicing(t, "module", "com.example.(*).**")
	layer := mustSlicing(t, "layer", "com.example.*.(*).**")
	cat := NewCategorizer(module.Categorizer(), layer.Categorizer())

	got := cat.Categorize(model.ClassNode("com.example.core.api.Foo"))
	want := model.NewParentAwareNode(
		model.SliceNode("module", "core"),
		model.SliceNode("layer", "api"),
	)
	if !model.Equal(got, want) {
		t.Errorf("Categorize() = %v, want %v", got, want)
	}
}

func TestCategorizer_DeclarationOrderPreserved(t *testing.T) {
	a := mustSlicing(t, "a", "com.(*).**")
	b := mustSlicing(t, "b", "com.*.(*).**")

	forward := NewCategorizer(a.Categorizer(), b.Categorizer())
	got := forward.Categorize(model.ClassNode("com.x.y.Foo"))
	pan, ok := got.(model.ParentAwareNode)
	if !ok {
		t.Fatalf("Categorize() = %T, want ParentAwareNode", got)
	}
	if pan.Vals[0].HasType("b") || !pan.Vals[0].HasType("a") {
		t.Errorf("vals = %v, want slicing a first", pan.Vals)
	}
}

func TestCategorizer_UnmatchedClassStaysItself(t *testing.T) {
	module := mustSlicing(t, "module", "com.example.(*).**")
	cat := NewCategorizer(module.Categorizer())

	n := model.ClassNode("org.elsewhere.Foo")
	if got := cat.Categorize(n); !model.Equal(got, n) {
		t.Errorf("Categorize() = %v, want the class itself", got)
	}
}
