// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/comalice/pg2hda/internal/input"
)

// GenRingDocument describes procs processes, each cycling through locs
// locations. Process i increments its own counter xi modulo locs, so every
// pair of moves commutes and the model is a discrete torus.
func GenRingDocument(procs, locs int) input.Document {
	if procs < 1 {
		procs = 1
	}
	if locs < 2 {
		locs = 2
	}
	doc := input.Document{Name: fmt.Sprintf("ring_%dx%d", procs, locs)}
	domain := make([]int, locs)
	for v := range domain {
		domain[v] = v
	}
	names := make([]string, locs)
	for l := range names {
		names[l] = fmt.Sprintf("l%d", l)
	}
	for i := 0; i < procs; i++ {
		x := fmt.Sprintf("x%d", i)
		doc.Variables = append(doc.Variables, input.VariableDoc{Name: x, Domain: domain})
		p := input.ProcessDoc{Name: fmt.Sprintf("P%d", i), Locations: names, Initial: names[0]}
		for l := range names {
			p.Transitions = append(p.Transitions, input.TransitionDoc{
				From:   names[l],
				To:     names[(l+1)%locs],
				Action: "step",
				Effect: fmt.Sprintf("%s = (%s + 1) %% %d", x, x, locs),
			})
		}
		doc.Processes = append(doc.Processes, p)
	}
	return doc
}

// GenSharedDocument describes procs processes that each add one to the
// shared variable total once.
func GenSharedDocument(procs int) input.Document {
	doc := input.Document{
		Name:      fmt.Sprintf("shared_%d", procs),
		Variables: []input.VariableDoc{{Name: "total"}},
	}
	for i := 0; i < procs; i++ {
		doc.Processes = append(doc.Processes, input.ProcessDoc{
			Name:        fmt.Sprintf("P%d", i),
			Locations:   []string{"start", "done"},
			Initial:     "start",
			Final:       "done",
			Transitions: []input.TransitionDoc{{From: "start", To: "done", Action: "add", Effect: "total = total + 1"}},
		})
	}
	return doc
}

// MarshalDocument renders doc in the YAML input format.
func MarshalDocument(doc input.Document) ([]byte, error) {
	return yaml.Marshal(doc)
}
