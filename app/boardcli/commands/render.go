package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jrazmi/taskboard/core/board"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
)

const (
	columnWidth = 30
	shortIDLen  = 8
	gutter      = "  "
)

var columnTitles = map[tasksrepo.Status]string{
	tasksrepo.StatusTodo:       "To Do",
	tasksrepo.StatusInProgress: "In Progress",
	tasksrepo.StatusCompleted:  "Completed",
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

func cell(s string) string {
	return runewidth.FillRight(runewidth.Truncate(s, columnWidth, "…"), columnWidth)
}

// RenderBoard prints the three columns side by side, one card per row.
func RenderBoard(out io.Writer, b board.Buckets) {
	columns := [][]tasksrepo.Task{b.Todo, b.InProgress, b.Completed}

	header := make([]string, len(columns))
	rule := make([]string, len(columns))
	rows := 0
	for i, st := range tasksrepo.Statuses {
		header[i] = cell(fmt.Sprintf("%s (%d)", columnTitles[st], len(columns[i])))
		rule[i] = strings.Repeat("─", columnWidth)
		rows = max(rows, len(columns[i]))
	}
	fmt.Fprintln(out, strings.TrimRight(strings.Join(header, gutter), " "))
	fmt.Fprintln(out, strings.Join(rule, gutter))

	for r := range rows {
		line := make([]string, len(columns))
		for c, tasks := range columns {
			if r < len(tasks) {
				line[c] = cell(shortID(tasks[r].ID) + " " + tasks[r].Title)
			} else {
				line[c] = cell("")
			}
		}
		fmt.Fprintln(out, strings.TrimRight(strings.Join(line, gutter), " "))
	}

	if b.Len() == 0 {
		fmt.Fprintln(out, "no tasks")
	}
}

// RenderTask prints one task in full.
func RenderTask(out io.Writer, t tasksrepo.Task) {
	fmt.Fprintf(out, "%s  [%s]  %s\n", t.ID, t.Status, t.Title)
	if t.Description != "" {
		fmt.Fprintf(out, "  %s\n", t.Description)
	}
}
