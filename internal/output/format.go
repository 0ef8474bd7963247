// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskdock/internal/model"
)

const (
	// ListSeparator is the separator line for list sections.
	ListSeparator = "------------"
)

// FormatTree prints every list with its tasks.
func FormatTree(w io.Writer, lists []*model.List) {
	for _, list := range lists {
		FormatList(w, list)
	}
}

// FormatList prints one list section. A list whose tasks failed to
// load renders an error line; an empty list renders a placeholder so
// the two cases stay distinguishable.
func FormatList(w io.Writer, list *model.List) {
	FormatListHeader(w, list.Title)
	switch {
	case list.Failed():
		fmt.Fprintf(w, "    ! tasks unavailable: %v\n", list.LoadErr)
	case len(list.Tasks) == 0:
		fmt.Fprintln(w, "    (no tasks)")
	default:
		for i, task := range list.Tasks {
			FormatTask(w, i+1, task)
		}
	}
}

// FormatTask formats a task line.
// Format: "    {N:>3} {[x]|[ ]} {TITLE}\n"
func FormatTask(w io.Writer, num int, task *model.Task) {
	marker := "[ ]"
	if task.Completed() {
		marker = "[x]"
	}
	fmt.Fprintf(w, "    %3d %s %s\n", num, marker, normalizeTitle(task.Title))
}

// FormatListHeader formats a list section header.
func FormatListHeader(w io.Writer, title string) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, normalizeTitle(title))
	fmt.Fprintln(w, ListSeparator)
}

// FormatListName formats a list name for the lists command.
func FormatListName(w io.Writer, list *model.List) {
	name := normalizeTitle(list.Title)
	if list.Failed() {
		name += " (tasks unavailable)"
	}
	fmt.Fprintln(w, name)
}

// normalizeTitle normalizes a title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
