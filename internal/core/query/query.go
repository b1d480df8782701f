// Package query filters, sorts and summarises a user's task set. Every
// function is pure: inputs are never modified and results are fresh slices.
package query

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/taskdesk/task-manager/internal/core/domain"
)

// Filter and sort values accepted by Options.
const (
	All = "all"

	// StatusOverdue selects tasks that are past due and not done.
	StatusOverdue = "overdue"

	SortByDueDate  = "dueDate"
	SortByPriority = "priority"
	SortByStatus   = "status"
	SortByTitle    = "title"

	Asc  = "asc"
	Desc = "desc"
)

// Options configures a view over a task collection. Empty fields behave like
// their DefaultOptions counterpart.
type Options struct {
	Search    string `json:"search" query:"search"`
	Status    string `json:"status" query:"status" validate:"omitempty,oneof=all todo 'in progress' done overdue"`
	Priority  string `json:"priority" query:"priority" validate:"omitempty,oneof=all low medium high"`
	SortBy    string `json:"sortBy" query:"sortBy" validate:"omitempty,oneof=dueDate priority status title"`
	SortOrder string `json:"sortOrder" query:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

// DefaultOptions shows everything ordered by due date, earliest first.
func DefaultOptions() Options {
	return Options{Status: All, Priority: All, SortBy: SortByDueDate, SortOrder: Asc}
}

// Stats are aggregate counts over a task collection.
type Stats struct {
	Total      int `json:"total"`
	Todo       int `json:"todo"`
	InProgress int `json:"inProgress"`
	Done       int `json:"done"`
	Overdue    int `json:"overdue"`
	Filtered   int `json:"filtered"`
}

// Result is the filtered, sorted task sequence together with its stats.
type Result struct {
	Tasks []domain.Task `json:"tasks"`
	Stats Stats         `json:"stats"`
}

// Apply filters and sorts tasks and computes stats over the whole input.
func Apply(tasks []domain.Task, opts Options, now time.Time) Result {
	filtered := Sort(Filter(tasks, opts, now), opts)
	return Result{
		Tasks: filtered,
		Stats: ComputeStats(tasks, filtered, now),
	}
}

// Filter returns the tasks matching the search text and the status and
// priority filters, in input order.
func Filter(tasks []domain.Task, opts Options, now time.Time) []domain.Task {
	search := strings.ToLower(opts.Search)
	out := make([]domain.Task, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		if !matchesSearch(t, search) || !matchesStatus(t, opts.Status, now) || !matchesPriority(t, opts.Priority) {
			continue
		}
		out = append(out, *t)
	}
	return out
}

func matchesSearch(t *domain.Task, lowered string) bool {
	if lowered == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), lowered) ||
		strings.Contains(strings.ToLower(t.Description), lowered)
}

func matchesStatus(t *domain.Task, status string, now time.Time) bool {
	switch status {
	case "", All:
		return true
	case StatusOverdue:
		return t.IsOverdue(now)
	}
	return string(t.Status) == status
}

func matchesPriority(t *domain.Task, priority string) bool {
	if priority == "" || priority == All {
		return true
	}
	p := t.Priority
	if p == "" {
		p = domain.PriorityMedium
	}
	return string(p) == priority
}

// Sort returns a stably sorted copy of tasks. Descending order negates the
// comparator, so tasks with equal keys keep their input order either way.
func Sort(tasks []domain.Task, opts Options) []domain.Task {
	out := slices.Clone(tasks)
	if out == nil {
		out = []domain.Task{}
	}

	compare := comparator(opts.SortBy)
	if opts.SortOrder == Desc {
		asc := compare
		compare = func(a, b domain.Task) int { return -asc(a, b) }
	}
	slices.SortStableFunc(out, compare)
	return out
}

func comparator(sortBy string) func(a, b domain.Task) int {
	switch sortBy {
	case SortByTitle:
		return func(a, b domain.Task) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	case SortByPriority:
		return func(a, b domain.Task) int {
			return cmp.Compare(priorityRank(a.Priority), priorityRank(b.Priority))
		}
	case SortByStatus:
		return func(a, b domain.Task) int {
			return cmp.Compare(statusRank(a.Status), statusRank(b.Status))
		}
	default:
		return compareDue
	}
}

func priorityRank(p domain.TaskPriority) int {
	switch p {
	case domain.PriorityHigh:
		return 3
	case domain.PriorityLow:
		return 1
	}
	return 2
}

func statusRank(s domain.TaskStatus) int {
	switch s {
	case domain.StatusInProgress:
		return 2
	case domain.StatusDone:
		return 3
	}
	return 1
}

// compareDue orders by due date with a missing date after every real one.
func compareDue(a, b domain.Task) int {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return 0
	case a.DueDate == nil:
		return 1
	case b.DueDate == nil:
		return -1
	}
	return a.DueDate.Compare(*b.DueDate)
}

// ComputeStats counts all tasks by status and overdue state. Filtered is the
// size of the filtered view.
func ComputeStats(all, filtered []domain.Task, now time.Time) Stats {
	stats := Stats{Total: len(all), Filtered: len(filtered)}
	for i := range all {
		t := &all[i]
		switch t.Status {
		case domain.StatusInProgress:
			stats.InProgress++
		case domain.StatusDone:
			stats.Done++
		case domain.StatusTodo:
			stats.Todo++
		}
		if t.IsOverdue(now) {
			stats.Overdue++
		}
	}
	return stats
}
