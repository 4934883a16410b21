package plan

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeKind classifies the atomic operations a graph may contain.
type NodeKind int

const (
	KindVideoTransform NodeKind = iota
	KindAudioTransform
	KindSilenceSource
	KindJoiner
	KindOverlay
)

// Node is one atomic media operation. Inputs name labels produced by
// earlier nodes or raw input streams such as "0:v". Once appended to a
// graph a node is never edited, only referenced by later nodes.
type Node struct {
	ID      string
	Kind    NodeKind
	Filter  string
	Args    string
	Inputs  []string
	Outputs []string
}

// Graph accumulates nodes in emission order. Adding a node validates that
// all of its inputs already exist, so the node list is a topological order
// of the DAG by construction.
type Graph struct {
	nodes    []Node
	produced map[string]bool
	seq      int
}

// NewGraph creates a graph with the raw video/audio stream labels for
// inputCount clips pre-registered.
func NewGraph(inputCount int) *Graph {
	g := &Graph{produced: make(map[string]bool, inputCount*2)}
	for i := 0; i < inputCount; i++ {
		g.produced[strconv.Itoa(i)+":v"] = true
		g.produced[strconv.Itoa(i)+":a"] = true
	}
	return g
}

// Add appends a single-output node and returns its output label. An empty
// output label requests a generated one.
func (g *Graph) Add(kind NodeKind, filter, args string, inputs []string, output string) (string, error) {
	if output == "" {
		output = g.autoLabel()
	}
	outputs, err := g.add(kind, filter, args, inputs, []string{output})
	if err != nil {
		return "", err
	}
	return outputs[0], nil
}

// AddMulti appends a node with multiple output labels, such as a concat
// that yields a video and an audio stream.
func (g *Graph) AddMulti(kind NodeKind, filter, args string, inputs, outputs []string) ([]string, error) {
	return g.add(kind, filter, args, inputs, outputs)
}

func (g *Graph) add(kind NodeKind, filter, args string, inputs, outputs []string) ([]string, error) {
	g.seq++
	id := fmt.Sprintf("%s#%d", filter, g.seq)

	for _, in := range inputs {
		if !g.produced[in] {
			return nil, &UnknownLabelError{Node: id, Label: in}
		}
	}
	for _, out := range outputs {
		if g.produced[out] {
			return nil, fmt.Errorf("node %s: label %q already produced", id, out)
		}
	}

	node := Node{
		ID:      id,
		Kind:    kind,
		Filter:  filter,
		Args:    args,
		Inputs:  append([]string(nil), inputs...),
		Outputs: append([]string(nil), outputs...),
	}
	g.nodes = append(g.nodes, node)
	for _, out := range outputs {
		g.produced[out] = true
	}
	return node.Outputs, nil
}

func (g *Graph) autoLabel() string {
	return fmt.Sprintf("n%d", g.seq+1)
}

// Nodes returns the accumulated node list in emission order.
func (g *Graph) Nodes() []Node {
	return append([]Node(nil), g.nodes...)
}

// serializeNodes renders the node list as an ffmpeg filter_complex string.
// Every stream edge carries an explicit label; ffmpeg joins the chains with
// semicolons.
func serializeNodes(nodes []Node) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		var b strings.Builder
		for _, in := range n.Inputs {
			b.WriteByte('[')
			b.WriteString(in)
			b.WriteByte(']')
		}
		b.WriteString(n.Filter)
		if n.Args != "" {
			b.WriteByte('=')
			b.WriteString(n.Args)
		}
		for _, out := range n.Outputs {
			b.WriteByte('[')
			b.WriteString(out)
			b.WriteByte(']')
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, ";")
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
