package tutorial

import (
	"fmt"
	"sort"

	"pipelined.dev/tutorial/media"
)

// Built is a pipeline created from a layout.
type Built struct {
	Pipeline *media.Pipeline
	elements map[string]*media.Element
}

// Element returns the element with provided name.
func (b *Built) Element(name string) *media.Element {
	return b.elements[name]
}

// Build creates the pipeline described by the layout. Framework must be
// initialized. If any step fails, the pipeline is disposed.
func Build(l Layout) (*Built, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	p, err := media.NewPipeline(l.Name)
	if err != nil {
		return nil, fmt.Errorf("could not create pipeline: %w", err)
	}
	b := &Built{
		Pipeline: p,
		elements: make(map[string]*media.Element, len(l.Elements)),
	}
	if err := b.build(l); err != nil {
		p.Dispose()
		return nil, err
	}
	return b, nil
}

func (b *Built) build(l Layout) error {
	elements := make([]*media.Element, 0, len(l.Elements))
	for _, spec := range l.Elements {
		e, err := media.MakeElement(spec.Factory, spec.Name)
		if err != nil {
			return fmt.Errorf("could not create %s element: %w", spec.Name, err)
		}
		b.elements[spec.Name] = e
		elements = append(elements, e)
	}
	if err := b.Pipeline.Add(elements...); err != nil {
		return fmt.Errorf("could not add elements: %w", err)
	}
	for _, chain := range l.Links {
		linked := make([]*media.Element, 0, len(chain))
		for _, name := range chain {
			linked = append(linked, b.elements[name])
		}
		if err := media.LinkMany(linked...); err != nil {
			return fmt.Errorf("elements could not be linked: %w", err)
		}
	}
	for _, spec := range l.Elements {
		if err := setProperties(b.elements[spec.Name], spec.Properties); err != nil {
			return err
		}
	}
	return nil
}

// setProperties sets properties in the order of their names.
func setProperties(e *media.Element, props map[string]string) error {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := e.SetProperty(name, props[name]); err != nil {
			return fmt.Errorf("can't set property: %w", err)
		}
	}
	return nil
}
