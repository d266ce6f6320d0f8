package rictest

import (
	"fmt"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/71/ricochet/pkg/dom"
	"github.com/71/ricochet/pkg/list"
	"github.com/71/ricochet/pkg/observe"
	"github.com/71/ricochet/pkg/render"
)

// Script is a declarative rendering scenario loaded from YAML. It declares
// named observable sources and lists, a nested value to mount, and a
// sequence of steps mixing mutations with expectations about the container's
// text content.
//
// Example:
//
//	name: replace observable content
//	sources:
//	  greeting: hello
//	render:
//	  - { source: greeting }
//	  - "!"
//	steps:
//	  - expect: ["hello", "!"]
//	  - emit: { source: greeting, value: goodbye }
//	  - expect: ["goodbye", "!"]
type Script struct {
	Name    string           `yaml:"name"`
	Sources map[string]any   `yaml:"sources"`
	Lists   map[string][]any `yaml:"lists"`
	Render  []any            `yaml:"render"`
	Steps   []map[string]any `yaml:"steps"`
}

// LoadScript parses a scenario file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("rictest: parsing %s: %w", path, err)
	}
	return &s, nil
}

// RunScript loads and runs every step of a scenario file as a subtest.
func RunScript(t *testing.T, path string) {
	t.Helper()
	s, err := LoadScript(path)
	if err != nil {
		t.Fatal(err)
	}
	name := s.Name
	if name == "" {
		name = path
	}
	t.Run(name, s.Run)
}

// Run mounts the scenario and executes its steps.
func (s *Script) Run(t *testing.T) {
	t.Helper()
	sources := make(map[string]*observe.Value[any], len(s.Sources))
	for name, initial := range s.Sources {
		sources[name] = observe.NewValue[any](initial)
	}
	lists := make(map[string]*list.List[any], len(s.Lists))
	for name, items := range s.Lists {
		lists[name] = list.New[any](items...)
	}

	tester := NewTesterWithT(t)
	tester.Mount(s.resolve(t, s.Render, sources, lists))

	for i, step := range s.Steps {
		for op, arg := range step {
			s.runStep(t, i, op, arg, tester, sources, lists)
		}
	}
}

// resolve turns the YAML value AST into a renderer input. Scalars render as
// themselves, sequences recurse, and single-key maps reference a declared
// source or list by name.
func (s *Script) resolve(t *testing.T, value any, sources map[string]*observe.Value[any], lists map[string]*list.List[any]) render.NodeValue {
	switch v := value.(type) {
	case []any:
		out := make([]render.NodeValue, len(v))
		for i, item := range v {
			out[i] = s.resolve(t, item, sources, lists)
		}
		return out
	case map[string]any:
		if name, ok := v["source"].(string); ok {
			src, exists := sources[name]
			if !exists {
				t.Fatalf("script references undeclared source %q", name)
			}
			return src
		}
		if name, ok := v["list"].(string); ok {
			l, exists := lists[name]
			if !exists {
				t.Fatalf("script references undeclared list %q", name)
			}
			return list.Bind(l)
		}
		if tag, ok := v["element"].(string); ok {
			children, _ := v["children"].([]any)
			values := make([]render.NodeValue, len(children))
			for i, c := range children {
				values[i] = s.resolve(t, c, sources, lists)
			}
			return render.H(tag, values...)
		}
		t.Fatalf("script value %v is not a source, list, or element reference", v)
		return nil
	default:
		return v
	}
}

func (s *Script) runStep(t *testing.T, index int, op string, arg any, tester *Tester, sources map[string]*observe.Value[any], lists map[string]*list.List[any]) {
	t.Helper()
	args, _ := arg.(map[string]any)
	switch op {
	case "expect":
		want := toStrings(arg)
		if diff := cmp.Diff(want, tester.Texts()); diff != "" {
			t.Errorf("step %d: container text mismatch (-want +got):\n%s", index, diff)
		}
	case "expect_children":
		want, _ := arg.(int)
		if got := tester.ChildCount(); got != want {
			t.Errorf("step %d: child count = %d, want %d", index, got, want)
		}
	case "emit":
		s.source(t, args, sources).Set(args["value"])
	case "complete":
		s.source(t, args, sources).Complete()
	case "set":
		s.list(t, args, lists).Set(toInt(args["index"]), args["value"])
	case "push":
		s.list(t, args, lists).Push(toSlice(args["values"])...)
	case "pop":
		s.list(t, args, lists).Pop()
	case "shift":
		s.list(t, args, lists).Shift()
	case "unshift":
		s.list(t, args, lists).Unshift(toSlice(args["values"])...)
	case "splice":
		s.list(t, args, lists).Splice(toInt(args["start"]), toInt(args["delete"]), toSlice(args["values"])...)
	case "reverse":
		s.list(t, args, lists).Reverse()
	case "fill":
		s.list(t, args, lists).Fill(args["value"], toInt(args["start"]), toInt(args["end"]))
	case "swap":
		s.list(t, args, lists).Swap(toInt(args["i"]), toInt(args["j"]))
	default:
		t.Fatalf("step %d: unknown operation %q", index, op)
	}
}

func (s *Script) source(t *testing.T, args map[string]any, sources map[string]*observe.Value[any]) *observe.Value[any] {
	t.Helper()
	name, _ := args["source"].(string)
	src, ok := sources[name]
	if !ok {
		t.Fatalf("script references undeclared source %q", name)
	}
	return src
}

func (s *Script) list(t *testing.T, args map[string]any, lists map[string]*list.List[any]) *list.List[any] {
	t.Helper()
	name, _ := args["list"].(string)
	l, ok := lists[name]
	if !ok {
		t.Fatalf("script references undeclared list %q", name)
	}
	return l
}

func toStrings(v any) []string {
	items, _ := v.([]any)
	out := make([]string, len(items))
	for i, item := range items {
		if s, ok := item.(string); ok {
			out[i] = s
		} else {
			out[i] = fmt.Sprint(item)
		}
	}
	return out
}

func toSlice(v any) []any {
	items, _ := v.([]any)
	return items
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// TextOf returns the text content of a node, for script-adjacent tests that
// assert on nodes directly.
func TextOf(n *dom.Node) string {
	return n.Text()
}
