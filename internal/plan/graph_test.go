package plan

import (
	"errors"
	"strings"
	"testing"
)

func TestGraphAddValidatesInputs(t *testing.T) {
	g := NewGraph(1)

	if _, err := g.Add(KindVideoTransform, "scale", "w=1920:h=1080", []string{"0:v"}, "v0"); err != nil {
		t.Fatalf("Add with raw input: %v", err)
	}
	if _, err := g.Add(KindVideoTransform, "fps", "30", []string{"v0"}, ""); err != nil {
		t.Fatalf("Add with produced label: %v", err)
	}

	_, err := g.Add(KindVideoTransform, "fps", "30", []string{"missing"}, "")
	var unknown *UnknownLabelError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownLabelError, got %v", err)
	}
	if unknown.Label != "missing" {
		t.Fatalf("error names label %q; want %q", unknown.Label, "missing")
	}
}

func TestGraphRejectsDuplicateOutput(t *testing.T) {
	g := NewGraph(1)
	if _, err := g.Add(KindVideoTransform, "scale", "w=64:h=64", []string{"0:v"}, "v0"); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	if _, err := g.Add(KindVideoTransform, "fps", "30", []string{"v0"}, "v0"); err == nil {
		t.Fatal("expected duplicate output label to fail")
	}
}

func TestSerializeNodes(t *testing.T) {
	g := NewGraph(2)
	if _, err := g.Add(KindVideoTransform, "setpts", "PTS-STARTPTS", []string{"0:v"}, "v0"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := g.Add(KindVideoTransform, "setpts", "PTS-STARTPTS", []string{"1:v"}, "v1"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := g.AddMulti(KindJoiner, "concat", "n=2:v=1:a=0", []string{"v0", "v1"}, []string{"outv"}); err != nil {
		t.Fatalf("AddMulti: %v", err)
	}

	got := serializeNodes(g.Nodes())
	want := "[0:v]setpts=PTS-STARTPTS[v0];[1:v]setpts=PTS-STARTPTS[v1];[v0][v1]concat=n=2:v=1:a=0[outv]"
	if got != want {
		t.Fatalf("serializeNodes = %q; want %q", got, want)
	}
}

func TestGraphAutoLabelsAreUnique(t *testing.T) {
	g := NewGraph(1)
	seen := map[string]bool{}
	cur := "0:v"
	for i := 0; i < 5; i++ {
		label, err := g.Add(KindVideoTransform, "null", "", []string{cur}, "")
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if seen[label] {
			t.Fatalf("auto label %q repeated", label)
		}
		seen[label] = true
		cur = label
	}
}

func TestSerializeNodeWithoutArgs(t *testing.T) {
	g := NewGraph(1)
	if _, err := g.Add(KindVideoTransform, "null", "", []string{"0:v"}, "v0"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got := serializeNodes(g.Nodes())
	if strings.Contains(got, "null=") {
		t.Fatalf("argless filter serialized with '=': %q", got)
	}
}
