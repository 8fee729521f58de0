// Package knowledge models a curriculum as a prerequisite graph of skills.
// Iteration order is the graph's insertion order; the sequencer relies on
// it as the tie-break between eligible skills, so it is preserved
// explicitly rather than left to map iteration.
package knowledge

// Skill is a single learnable unit in the curriculum.
type Skill struct {
	ID            string
	Name          string
	Prerequisites []string
}

// Graph is an ordered collection of skills keyed by ID.
// It is immutable after construction.
type Graph struct {
	order  []string
	skills map[string]Skill
}

// NewGraph builds a Graph from skills in the given order.
// It rejects empty graphs, duplicate or empty IDs, empty names, and
// prerequisite references to IDs not present in the skill set.
//
// Prerequisite cycles are NOT rejected: skills trapped in a cycle are
// simply never eligible for selection. Use CycleIDs to detect them.
func NewGraph(skills []Skill) (*Graph, error) {
	if err := validateSkills(skills); err != nil {
		return nil, err
	}

	g := &Graph{
		order:  make([]string, 0, len(skills)),
		skills: make(map[string]Skill, len(skills)),
	}
	for _, s := range skills {
		g.order = append(g.order, s.ID)
		g.skills[s.ID] = s
	}
	return g, nil
}

// Len returns the number of skills in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}

// Skill returns the skill with the given ID.
func (g *Graph) Skill(id string) (Skill, bool) {
	s, ok := g.skills[id]
	return s, ok
}

// IDs returns all skill IDs in insertion order.
func (g *Graph) IDs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Skills returns all skills in insertion order.
func (g *Graph) Skills() []Skill {
	out := make([]Skill, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.skills[id])
	}
	return out
}

// CycleIDs returns the IDs of skills involved in (or blocked behind)
// prerequisite cycles, in insertion order. These skills can never become
// eligible for selection. The result is empty for an acyclic graph.
func (g *Graph) CycleIDs() []string {
	// Kahn's algorithm: whatever never reaches in-degree zero is cyclic
	// or downstream of a cycle.
	inDegree := make(map[string]int, len(g.order))
	dependents := make(map[string][]string)
	for _, id := range g.order {
		s := g.skills[id]
		inDegree[id] = len(s.Prerequisites)
		for _, prereqID := range s.Prerequisites {
			dependents[prereqID] = append(dependents[prereqID], id)
		}
	}

	var queue []string
	for _, id := range g.order {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, depID := range dependents[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	var stuck []string
	for _, id := range g.order {
		if inDegree[id] > 0 {
			stuck = append(stuck, id)
		}
	}
	return stuck
}
