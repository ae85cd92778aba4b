// Package dsl loads a Petri net (or a long-job-bearing nested net) from a
// YAML document, the Go-native equivalent of the teacher's
// dsl.Parser.Parse/ParseFile. See NetSpec for the schema.
package dsl

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ivanprosh/Mod-Petri/env"
	"github.com/ivanprosh/Mod-Petri/petrinet"
)

// Parser builds petrinet.Content from NetSpec documents. Jobs resolves a
// "long" transition's Job name to the callable it should run; ThreadEnv is
// required whenever a spec contains at least one "long" transition.
type Parser struct {
	Jobs      map[string]env.LongJob
	ThreadEnv *env.ThreadEnvironment
}

// NewParser returns a parser with an empty job registry.
func NewParser() *Parser {
	return &Parser{Jobs: make(map[string]env.LongJob)}
}

// RegisterJob adds a named callable to the registry so "long" transitions in
// parsed YAML can reference it.
func (p *Parser) RegisterJob(name string, job env.LongJob) {
	p.Jobs[name] = job
}

// ParseFile reads and parses a YAML net document from path.
func (p *Parser) ParseFile(path string) (*petrinet.Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dsl: reading %s: %w", path, err)
	}
	return p.Parse(data)
}

// Parse decodes data as a NetSpec and builds the corresponding
// petrinet.Content. Places and transitions given no explicit ID are assigned
// one via uuid.NewString.
func (p *Parser) Parse(data []byte) (*petrinet.Content, error) {
	var spec NetSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("dsl: parsing YAML: %w", err)
	}
	content, _, err := p.build(&spec)
	return content, err
}

// build compiles one NetSpec level into a petrinet.Content, also returning a
// lookup of place ID -> handle; both current callers (Parse and the compound
// case of buildTransition) discard that lookup.
func (p *Parser) build(spec *NetSpec) (*petrinet.Content, map[string]*petrinet.Place, error) {
	content := petrinet.NewContent()
	places := make(map[string]*petrinet.Place, len(spec.Places))
	transitions := make(map[string]petrinet.Transition, len(spec.Transitions))

	for _, ps := range spec.Places {
		id := ps.ID
		if id == "" {
			id = uuid.NewString()
		}
		place := petrinet.NewPlace(id, ps.Name)
		if err := content.AddPlace(place); err != nil {
			return nil, nil, err
		}
		places[id] = place
	}

	for _, ts := range spec.Transitions {
		id := ts.ID
		if id == "" {
			id = uuid.NewString()
		}
		t, err := p.buildTransition(id, ts)
		if err != nil {
			return nil, nil, err
		}
		if err := content.AddTransition(t); err != nil {
			return nil, nil, err
		}
		transitions[id] = t
	}

	for _, as := range spec.Arcs {
		weight := as.Weight
		var arcWeight []int
		if weight > 0 {
			arcWeight = []int{weight}
		}

		if place, ok := places[as.From]; ok {
			t, ok := transitions[as.To]
			if !ok {
				return nil, nil, fmt.Errorf("dsl: arc %s->%s: unknown transition %s", as.From, as.To, as.To)
			}
			if err := content.AddInputArc(place, t, arcWeight...); err != nil {
				return nil, nil, err
			}
			continue
		}
		if t, ok := transitions[as.From]; ok {
			place, ok := places[as.To]
			if !ok {
				return nil, nil, fmt.Errorf("dsl: arc %s->%s: unknown place %s", as.From, as.To, as.To)
			}
			if err := content.AddOutputArc(t, place, arcWeight...); err != nil {
				return nil, nil, err
			}
			continue
		}
		return nil, nil, fmt.Errorf("dsl: arc %s->%s: neither endpoint is a known place", as.From, as.To)
	}

	for placeID, n := range spec.Tokens {
		place, ok := places[placeID]
		if !ok {
			return nil, nil, fmt.Errorf("dsl: tokens: unknown place %s", placeID)
		}
		if err := content.AddToken(place, n); err != nil {
			return nil, nil, err
		}
	}

	return content, places, nil
}

func (p *Parser) buildTransition(id string, ts TransitionSpec) (petrinet.Transition, error) {
	switch ts.Kind {
	case "", "atomic":
		return petrinet.NewAtomicTransition(id, ts.Name), nil

	case "long":
		if p.ThreadEnv == nil {
			return nil, fmt.Errorf("dsl: transition %s is \"long\" but no ThreadEnvironment was configured", id)
		}
		job, ok := p.Jobs[ts.Job]
		if !ok {
			return nil, fmt.Errorf("dsl: transition %s references unregistered job %q", id, ts.Job)
		}
		return p.ThreadEnv.NewLongTransition(id, ts.Name, job), nil

	case "compound":
		if ts.Net == nil {
			return nil, fmt.Errorf("dsl: transition %s is \"compound\" but has no net", id)
		}
		sub, _, err := p.build(ts.Net)
		if err != nil {
			return nil, fmt.Errorf("dsl: transition %s: %w", id, err)
		}
		return petrinet.FromContent(id, ts.Name, sub), nil

	default:
		return nil, fmt.Errorf("dsl: transition %s: unknown kind %q", id, ts.Kind)
	}
}
