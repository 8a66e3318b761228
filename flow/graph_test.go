package flow

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type testState struct {
	Visited []string `json:"visited"`
	Route   string   `json:"route"`
}

func visit(name string) NodeFunc[testState] {
	return func(_ context.Context, s testState) (testState, error) {
		s.Visited = append(s.Visited, name)
		return s, nil
	}
}

func TestCompile_MissingEntry(t *testing.T) {
	_, err := NewGraph[testState]().
		AddNode("a", visit("a")).
		AddEdge("a", End).
		Compile()
	if !errors.Is(err, ErrNoEntry) {
		t.Errorf("Compile() error = %v, want ErrNoEntry", err)
	}
}

func TestCompile_UnknownEntry(t *testing.T) {
	_, err := NewGraph[testState]().
		AddNode("a", visit("a")).
		AddEdge("a", End).
		SetEntry("missing").
		Compile()
	if !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Compile() error = %v, want ErrUnknownNode", err)
	}
}

func TestCompile_DuplicateNode(t *testing.T) {
	_, err := NewGraph[testState]().
		AddNode("a", visit("a")).
		AddNode("a", visit("a")).
		AddEdge("a", End).
		SetEntry("a").
		Compile()
	if !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("Compile() error = %v, want ErrDuplicateNode", err)
	}
}

func TestCompile_ReservedNodeName(t *testing.T) {
	_, err := NewGraph[testState]().
		AddNode(End, visit("end")).
		SetEntry(End).
		Compile()
	if err == nil || !strings.Contains(err.Error(), "reserved") {
		t.Errorf("Compile() error = %v, want reserved-name error", err)
	}
}

func TestCompile_DanglingEdge(t *testing.T) {
	_, err := NewGraph[testState]().
		AddNode("a", visit("a")).
		AddEdge("a", "ghost").
		SetEntry("a").
		Compile()
	if !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Compile() error = %v, want ErrUnknownNode", err)
	}
}

func TestCompile_NodeWithoutOutgoingEdge(t *testing.T) {
	_, err := NewGraph[testState]().
		AddNode("a", visit("a")).
		AddNode("b", visit("b")).
		AddEdge("a", "b").
		SetEntry("a").
		Compile()
	if !errors.Is(err, ErrNoRoute) {
		t.Errorf("Compile() error = %v, want ErrNoRoute", err)
	}
}

func TestCompile_ConflictingEdges(t *testing.T) {
	_, err := NewGraph[testState]().
		AddNode("a", visit("a")).
		AddEdge("a", End).
		AddConditionalEdges("a", func(testState) string { return End }, End).
		SetEntry("a").
		Compile()
	if err == nil || !strings.Contains(err.Error(), "conflicting") {
		t.Errorf("Compile() error = %v, want conflicting-edges error", err)
	}
}

func TestCompile_ConditionalTargetUnknown(t *testing.T) {
	_, err := NewGraph[testState]().
		AddNode("a", visit("a")).
		AddConditionalEdges("a", func(testState) string { return "ghost" }, "ghost").
		SetEntry("a").
		Compile()
	if !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Compile() error = %v, want ErrUnknownNode", err)
	}
}

func TestCompile_Valid(t *testing.T) {
	compiled, err := NewGraph[testState]().
		AddNode("a", visit("a")).
		AddNode("b", visit("b")).
		AddEdge("a", "b").
		AddEdge("b", End).
		SetEntry("a").
		Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	names := compiled.NodeNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("NodeNames() = %v, want [a b]", names)
	}
}
