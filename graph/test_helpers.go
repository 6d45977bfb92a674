package graph

import "fmt"

// NewChain builds "Task 1" -> "Task 2" -> ... -> "Task n".
func NewChain(n int) *Graph {
	g := New()
	prev := ""
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("Task %d", i)
		g.AddNodeWithID(id, "Task "+numberWord(i), "#ffffff")
		if prev != "" {
			g.AddEdge(prev, id)
		}
		prev = id
	}
	return g
}

func numberWord(i int) string {
	words := []string{"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	if i < len(words) {
		return words[i]
	}
	return fmt.Sprint(i)
}
