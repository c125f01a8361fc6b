package graph

import (
	"testing"

	"github.com/obqo/decycle/pkg/model"
	"github.com/obqo/decycle/pkg/slicer"
)

func twoSlicingCategorizer(t *testing.T) slicer.Categorizer {
	t.Helper()
	module, err := slicer.ParseSlicing("module", []string{"com.example.(*).**"})
	if err != nil {
		t.Fatalf("ParseSlicing(module): %v", err)
	}
	layer, err := slicer.ParseSlicing("layer", []string{"com.example.*.(*).**"})
	if err != nil {
		t.Fatalf("ParseSlicing(layer): %v", err)
	}
	return slicer.NewCategorizer(module.Categorizer(), layer.Categorizer())
}

func TestSliceNodeFinder_SliceNodeLiftsToItself(t *testing.T) {
	g := New(nil, nil, nil)
	finder := NewSliceNodeFinder("module", g)

	n := model.SliceNode("module", "core")
	got, ok := finder.Lift(n)
	if !ok || !model.Equal(got, n) {
		t.Errorf("Lift(slice node) = %v, %v; want the node itself", got, ok)
	}
}

func TestSliceNodeFinder_ClassLiftsThroughContainer(t *testing.T) {
	g := New(moduleCategorizer(t), nil, nil)
	class := model.ClassNode("com.example.core.Foo")
	g.Add(class)

	finder := NewSliceNodeFinder("module", g)
	got, ok := finder.Lift(class)
	if !ok || got.Name != "core" {
		t.Errorf("Lift(class) = %v, %v; want the core slice", got, ok)
	}
}

func TestSliceNodeFinder_ParentAwareNodePicksMatchingVal(t *testing.T) {
	g := New(twoSlicingCategorizer(t), nil, nil)
	class := model.ClassNode("com.example.core.api.Foo")
	g.Add(class)

	moduleFinder := NewSliceNodeFinder("module", g)
	got, ok := moduleFinder.Lift(class)
	if !ok || got.Name != "core" || !got.HasType("module") {
		t.Errorf("Lift under module = %v, %v; want core:module", got, ok)
	}

	layerFinder := NewSliceNodeFinder("layer", g)
	got, ok = layerFinder.Lift(class)
	if !ok || got.Name != "api" || !got.HasType("layer") {
		t.Errorf("Lift under layer = %v, %v; want api:layer", got, ok)
	}
}

func TestSliceNodeFinder_UndefinedWithoutContainer(t *testing.T) {
	g := New(nil, nil, nil)
	class := model.ClassNode("org.other.Foo")
	g.Add(class)

	finder := NewSliceNodeFinder("module", g)
	if _, ok := finder.Lift(class); ok {
		t.Errorf("Lift(uncategorized class) succeeded, want absent")
	}
	if finder.IsDefinedAt(class) {
		t.Errorf("IsDefinedAt(uncategorized class) = true, want false")
	}
}

func TestSliceNodeFinder_IsDefinedAtMirrorsLift(t *testing.T) {
	g := New(moduleCategorizer(t), nil, nil)
	in := model.ClassNode("com.example.core.Foo")
	out := model.ClassNode("org.other.Bar")
	g.Add(in)
	g.Add(out)

	finder := NewSliceNodeFinder("module", g)
	for _, n := range []model.Node{in, out} {
		_, ok := finder.Lift(n)
		if got := finder.IsDefinedAt(n); got != ok {
			t.Errorf("IsDefinedAt(%v) = %v, Lift ok = %v", n, got, ok)
		}
	}
}
