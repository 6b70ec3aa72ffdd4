package domain

import "time"

// Block is the result of a blocking-status lookup.
type Block struct {
	Blocked       bool
	BlockingTasks []Task
}

// IsBlocked reports whether the task has at least one dependency whose
// prerequisite exists and is not completed. Dependencies pointing at deleted
// tasks are ignored rather than counted as blocking.
func IsBlocked(task Task, tasks []Task) Block {
	byID := indexTasks(tasks)
	var blocking []Task
	for _, dep := range task.Dependencies {
		pre, ok := byID[dep.DependsOnTaskID]
		if !ok {
			continue
		}
		if !pre.Completed() {
			blocking = append(blocking, pre)
		}
	}
	return Block{Blocked: len(blocking) > 0, BlockingTasks: blocking}
}

// WouldCreateCycle reports whether adding an edge taskID → dependsOnID would
// close a cycle in the dependency graph. A self-reference is always a cycle.
// The traversal marks visited nodes so pre-existing cycles and diamonds
// terminate in O(V+E).
func WouldCreateCycle(tasks []Task, taskID, dependsOnID string) bool {
	if taskID == dependsOnID {
		return true
	}
	byID := indexTasks(tasks)
	visited := make(map[string]bool, len(tasks))
	stack := []string{dependsOnID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == taskID {
			return true
		}
		if visited[id] {
			continue
		}
		visited[id] = true
		t, ok := byID[id]
		if !ok {
			continue
		}
		for _, dep := range t.Dependencies {
			stack = append(stack, dep.DependsOnTaskID)
		}
	}
	return false
}

// Edge is one materialized dependency edge, prerequisite → dependent.
type Edge struct {
	FromTaskID string `json:"fromTaskId"`
	ToTaskID   string `json:"toTaskId"`
}

// DependencyEdges enumerates every prerequisite → dependent pair for
// visualization. Edges whose prerequisite no longer exists are omitted.
func DependencyEdges(tasks []Task) []Edge {
	byID := indexTasks(tasks)
	var edges []Edge
	for _, t := range tasks {
		for _, dep := range t.Dependencies {
			if _, ok := byID[dep.DependsOnTaskID]; !ok {
				continue
			}
			edges = append(edges, Edge{FromTaskID: dep.DependsOnTaskID, ToTaskID: t.ID})
		}
	}
	return edges
}

// UpgradeLegacyDependencies converts a flat list of prerequisite task ids
// into structured dependency records, assigning fresh ids, finish-to-start
// type and the given timestamp.
func UpgradeLegacyDependencies(ids []string, gen IDGen, now time.Time) []TaskDependency {
	if len(ids) == 0 {
		return nil
	}
	out := make([]TaskDependency, 0, len(ids))
	for _, id := range ids {
		out = append(out, TaskDependency{
			ID:              gen.Next(),
			Type:            DependencyFinishToStart,
			DependsOnTaskID: id,
			CreatedAt:       now,
		})
	}
	return out
}

func indexTasks(tasks []Task) map[string]Task {
	byID := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	return byID
}
