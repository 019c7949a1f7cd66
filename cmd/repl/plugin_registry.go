package main

import (
	"github.com/bawdo/selql/nodes"
	"github.com/bawdo/selql/plugins"
	"github.com/bawdo/selql/visitors"
)

// pluginConfigurer is a plugin the "plugin" command knows how to enable.
type pluginConfigurer struct {
	name      string
	configure func(s *Session, args string) error
}

// pluginEntry is an enabled plugin. A fresh transformer is built from
// factory each time the query is rendered.
type pluginEntry struct {
	name    string
	factory func() plugins.Transformer
	status  func() string
	color   string // DOT cluster fill
}

// pluginRegistry holds the enabled plugins in the order they run.
type pluginRegistry struct {
	entries []pluginEntry
}

// enable adds a plugin, replacing an enabled one of the same name in place.
func (r *pluginRegistry) enable(entry pluginEntry) {
	if i := r.index(entry.name); i >= 0 {
		r.entries[i] = entry
		return
	}
	r.entries = append(r.entries, entry)
}

// disable removes the named plugin and reports whether it was enabled.
func (r *pluginRegistry) disable(name string) bool {
	i := r.index(name)
	if i < 0 {
		return false
	}
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	return true
}

func (r *pluginRegistry) reset() { r.entries = nil }

func (r *pluginRegistry) index(name string) int {
	for i, e := range r.entries {
		if e.name == name {
			return i
		}
	}
	return -1
}

func (r *pluginRegistry) lookup(name string) (pluginEntry, bool) {
	if i := r.index(name); i >= 0 {
		return r.entries[i], true
	}
	return pluginEntry{}, false
}

func (r *pluginRegistry) names() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.name
	}
	return out
}

func (r *pluginRegistry) transformers() []plugins.Transformer {
	out := make([]plugins.Transformer, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.factory()
	}
	return out
}

// traced applies the plugins one at a time and records which plugin added
// each top-level WHERE predicate.
func (r *pluginRegistry) traced(q *nodes.SelectQuery) (*nodes.SelectQuery, *visitors.PluginProvenance, error) {
	prov := visitors.NewPluginProvenance()
	for _, e := range r.entries {
		before := len(q.Wheres)
		next, err := e.factory().TransformSelect(q)
		if err != nil {
			return nil, nil, err
		}
		for i := before; i < len(next.Wheres); i++ {
			prov.AddWhere(e.name, e.color, i)
		}
		q = next
	}
	return q, prov, nil
}
