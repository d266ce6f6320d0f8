// Package main provides the ricochet demo application.
// It demonstrates idiomatic patterns for building reactive trees with
// ricochet: observable values, bound lists, and derived lists.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/71/ricochet/pkg/dom"
	"github.com/71/ricochet/pkg/list"
	"github.com/71/ricochet/pkg/observe"
	"github.com/71/ricochet/pkg/render"
)

// task is one entry of the demo todo list.
type task struct {
	label string
	done  bool
}

func (t task) String() string {
	if t.done {
		return "[x] " + t.label
	}
	return "[ ] " + t.label
}

func main() {
	title := observe.NewValue[any]("todo")
	tasks := list.New(
		task{label: "write the readme"},
		task{label: "cut a release"},
	)
	remaining := observe.NewValue[any](countRemaining(tasks))
	tasks.Observe(list.Observer[task]{
		Set:    func(int, task) { remaining.Set(countRemaining(tasks)) },
		Resize: func(int) { remaining.Set(countRemaining(tasks)) },
	}, false)

	// Each task renders as its own line element; mutations of the list
	// re-render only the affected lines.
	lines := list.Sync(tasks, func(t task, _ int) *dom.Node {
		return render.H("li", t.String())
	}, nil)

	root := render.H("main",
		render.H("h1", title),
		render.H("ul", list.Bind(lines)),
		render.H("footer", remaining, " remaining"),
	)
	defer root.Destroy()

	fmt.Println(root)
	repl(root, tasks, title)
}

func countRemaining(tasks *list.List[task]) int {
	open := 0
	tasks.ForEach(func(_ int, t task) {
		if !t.done {
			open++
		}
	})
	return open
}

// repl reads commands from stdin and applies them to the task list,
// printing the re-rendered tree after each mutation.
func repl(root *dom.Node, tasks *list.List[task], title *observe.Value[any]) {
	fmt.Println("commands: add <label> | done <n> | drop <n> | swap <i> <j> | reverse | title <text> | quit")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		cmd, rest, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		switch cmd {
		case "add":
			if rest == "" {
				fmt.Println("add needs a label")
				continue
			}
			tasks.Push(task{label: rest})
		case "done":
			i, ok := taskIndex(tasks, rest)
			if !ok {
				continue
			}
			t := tasks.Get(i)
			t.done = !t.done
			tasks.Set(i, t)
		case "drop":
			i, ok := taskIndex(tasks, rest)
			if !ok {
				continue
			}
			tasks.Splice(i, 1)
		case "swap":
			i, j, ok := taskPair(tasks, rest)
			if !ok {
				continue
			}
			tasks.Swap(i, j)
		case "reverse":
			tasks.Reverse()
		case "title":
			title.Set(rest)
		case "quit":
			return
		case "":
			continue
		default:
			fmt.Printf("unknown command %q\n", cmd)
			continue
		}
		fmt.Println(root)
	}
}

// taskIndex parses a single index argument and validates it against the
// list's current length.
func taskIndex(tasks *list.List[task], arg string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || i < 0 || i >= tasks.Len() {
		fmt.Printf("expected an index between 0 and %d\n", tasks.Len()-1)
		return 0, false
	}
	return i, true
}

// taskPair parses two index arguments.
func taskPair(tasks *list.List[task], arg string) (int, int, bool) {
	fields := strings.Fields(arg)
	if len(fields) != 2 {
		fmt.Println("swap needs two indices")
		return 0, 0, false
	}
	i, ok := taskIndex(tasks, fields[0])
	if !ok {
		return 0, 0, false
	}
	j, ok := taskIndex(tasks, fields[1])
	if !ok {
		return 0, 0, false
	}
	return i, j, true
}
