package jsonutil

import (
	"reflect"
	"testing"
)

func TestMerge_OverlayWins(t *testing.T) {
	base := map[string]any{"a": 1, "b": 2}
	overlay := map[string]any{"b": 3, "c": 4}

	got := Merge(base, overlay)

	want := map[string]any{"a": 1, "b": 3, "c": 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Merge = %v, want %v", got, want)
	}
}

func TestMerge_NestedObjects(t *testing.T) {
	base := map[string]any{
		"opts": map[string]any{"depth": 2, "mode": "fast"},
		"name": "x",
	}
	overlay := map[string]any{
		"opts": map[string]any{"mode": "slow"},
	}

	got := Merge(base, overlay)

	opts := got["opts"].(map[string]any)
	if opts["mode"] != "slow" {
		t.Errorf("overlay must win nested conflict, got mode %v", opts["mode"])
	}
	if opts["depth"] != 2 {
		t.Errorf("untouched nested siblings must survive, got depth %v", opts["depth"])
	}
	if got["name"] != "x" {
		t.Errorf("top-level base keys must survive, got name %v", got["name"])
	}
}

func TestMerge_TypeMismatchReplaces(t *testing.T) {
	base := map[string]any{"k": map[string]any{"a": 1}}
	overlay := map[string]any{"k": "scalar"}

	got := Merge(base, overlay)
	if got["k"] != "scalar" {
		t.Errorf("a non-object overlay value must replace, got %v", got["k"])
	}
}

func TestMerge_InputsNotMutated(t *testing.T) {
	base := map[string]any{"shared": map[string]any{"a": 1}}
	overlay := map[string]any{"shared": map[string]any{"b": 2}}

	Merge(base, overlay)

	if _, ok := base["shared"].(map[string]any)["b"]; ok {
		t.Error("base must not be mutated by the merge")
	}
	if _, ok := overlay["shared"].(map[string]any)["a"]; ok {
		t.Error("overlay must not be mutated by the merge")
	}
}
