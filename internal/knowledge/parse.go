package knowledge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// skillRecord is the wire format for a single skill entry.
type skillRecord struct {
	Name          string   `json:"name"`
	Prerequisites []string `json:"prerequisites"`
}

// ParseJSON decodes a knowledge graph from its wire format:
//
//	{"skill_1": {"name": "...", "prerequisites": []},
//	 "skill_2": {"name": "...", "prerequisites": ["skill_1"]}}
//
// Key order in the document becomes the graph's insertion order, so the
// decode walks the token stream instead of unmarshalling into a map.
func ParseJSON(r io.Reader) (*Graph, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse knowledge graph: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parse knowledge graph: expected JSON object, got %v", tok)
	}

	var skills []Skill
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse knowledge graph: %w", err)
		}
		id, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("parse knowledge graph: non-string key %v", keyTok)
		}

		var rec skillRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("parse knowledge graph: skill %q: %w", id, err)
		}

		skills = append(skills, Skill{
			ID:            id,
			Name:          rec.Name,
			Prerequisites: rec.Prerequisites,
		})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse knowledge graph: %w", err)
	}

	return NewGraph(skills)
}

// EncodeJSON writes the graph in its wire format, preserving insertion
// order. Output round-trips through ParseJSON.
func (g *Graph) EncodeJSON(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, id := range g.order {
		s := g.skills[id]
		rec := skillRecord{Name: s.Name, Prerequisites: s.Prerequisites}
		if rec.Prerequisites == nil {
			rec.Prerequisites = []string{}
		}

		key, err := json.Marshal(id)
		if err != nil {
			return fmt.Errorf("encode knowledge graph: %w", err)
		}
		val, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode knowledge graph: skill %q: %w", id, err)
		}

		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)
		if i < len(g.order)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	_, err := w.Write(buf.Bytes())
	return err
}
