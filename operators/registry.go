// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package operators indexes the generated operator bindings. The bindings
// themselves live in one package per category, e.g. operators/math.
package operators

import (
	"cmp"
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/TheGoldfish01/dpf-go/dpf"
	"github.com/TheGoldfish01/dpf-go/operators/averaging"
	"github.com/TheGoldfish01/dpf-go/operators/logic"
	"github.com/TheGoldfish01/dpf-go/operators/math"
	"github.com/TheGoldfish01/dpf-go/operators/mesh"
	"github.com/TheGoldfish01/dpf-go/operators/metadata"
	"github.com/TheGoldfish01/dpf-go/operators/scoping"
	"github.com/TheGoldfish01/dpf-go/operators/serialization"
)

// CatalogHCL is the catalog the bindings were generated from.
//
//go:embed catalog.hcl
var CatalogHCL []byte

// Entry describes one registered operator.
type Entry struct {
	// Name is the engine name.
	Name string
	// ScriptingName is the name the Go binding is generated from.
	ScriptingName string
	Category      string
	Specification *dpf.Specification
}

// Registry maps engine operator names to their specifications.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

type category struct {
	name    string
	specs   func() map[string]*dpf.Specification
	scripts func() map[string]string
}

var categories = []category{
	{"averaging", averaging.Specifications, averaging.ScriptingNames},
	{"logic", logic.Specifications, logic.ScriptingNames},
	{"math", math.Specifications, math.ScriptingNames},
	{"mesh", mesh.Specifications, mesh.ScriptingNames},
	{"metadata", metadata.Specifications, metadata.ScriptingNames},
	{"scoping", scoping.Specifications, scoping.ScriptingNames},
	{"serialization", serialization.Specifications, serialization.ScriptingNames},
}

// NewRegistry returns a registry holding every generated operator.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]Entry)}
	for _, c := range categories {
		scripts := c.scripts()
		for name, spec := range c.specs() {
			if err := r.Register(Entry{Name: name, ScriptingName: scripts[name], Category: c.name, Specification: spec}); err != nil {
				panic(err)
			}
		}
	}
	return r
}

// Register adds an operator. Names are unique.
func (r *Registry) Register(e Entry) error {
	if e.Name == "" || e.Specification == nil {
		return errors.New("operators: entry needs a name and a specification")
	}
	if e.ScriptingName == "" {
		e.ScriptingName = e.Name
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.entries[e.Name]; dup {
		return fmt.Errorf("operators: %q is already registered", e.Name)
	}
	r.entries[e.Name] = e
	return nil
}

// Lookup finds an operator by engine or scripting name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.entries[name]; ok {
		return e, true
	}
	for _, e := range r.entries {
		if e.ScriptingName == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Names returns the engine names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.entries))
}

// Entries returns every entry ordered by category then scripting name.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	out := slices.Collect(maps.Values(r.entries))
	r.mu.RUnlock()
	slices.SortFunc(out, func(a, b Entry) int {
		return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.ScriptingName, b.ScriptingName))
	})
	return out
}
