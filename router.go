/*
   Copyright 2026 The effect-orpc Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package effectorpc

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/utopyin/effect-orpc/internal/pathtrie"
	"github.com/utopyin/effect-orpc/registry"
)

// Routes is a router tree: values are *Procedure, nested Routes, *Router
// or *Lazy subtrees.
type Routes = map[string]any

// Router indexes procedures by dotted path. Building a router from a
// configured builder applies that configuration across the whole tree:
// errors merge right-biased (procedure registrations win), meta and route
// merge shallowly, router middlewares are prepended with optional
// leading-dedupe, and every procedure learns its path segments.
type Router struct {
	mu    sync.Mutex
	base  Definition
	index *pathtrie.Trie[any]
}

// lazyMount defers a subtree; expanded guards against re-expansion.
type lazyMount struct {
	lazy     *Lazy
	prefix   []string
	expanded bool
}

// Router finalizes the builder into a router over the given tree. Invalid
// path segments are a usage error and panic.
func (b Builder) Router(routes Routes) *Router {
	r := &Router{base: b.def, index: pathtrie.New[any]()}
	r.mountNode(nil, routes)
	return r
}

// Resolve finds the procedure registered at a dotted path, expanding lazy
// subtrees on demand. Safe for concurrent use.
func (r *Router) Resolve(path string) (*Procedure, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		if v, ok := r.index.Lookup(path); ok {
			switch v := v.(type) {
			case *Procedure:
				return v, true
			case *lazyMount:
				if r.expand(v) {
					continue
				}
				return nil, false
			}
		}
		v, _, ok := r.index.Match(path)
		if !ok {
			return nil, false
		}
		lm, isMount := v.(*lazyMount)
		if !isMount || !r.expand(lm) {
			return nil, false
		}
	}
}

// Procedures visits every currently-mounted procedure. Lazy subtrees that
// were never resolved are not expanded.
func (r *Router) Procedures(visit func(path string, p *Procedure)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index.Walk(func(pattern string, v any) {
		if p, ok := v.(*Procedure); ok {
			visit(pattern, p)
		}
	})
}

func (r *Router) expand(lm *lazyMount) bool {
	if lm.expanded {
		return false
	}
	lm.expanded = true
	r.mountNode(lm.prefix, lm.lazy.Resolve())
	return true
}

func (r *Router) mountNode(prefix []string, node any) {
	switch node := node.(type) {
	case *Procedure:
		r.insert(prefix, r.applyBase(node, prefix))
	case Routes:
		for name, child := range node {
			r.mountNode(append(append([]string{}, prefix...), name), child)
		}
	case *Lazy:
		r.insert(prefix, &lazyMount{lazy: node, prefix: prefix})
	case *Router:
		node.index.Walk(func(pattern string, v any) {
			rel := strings.Split(pattern, ".")
			full := append(append([]string{}, prefix...), rel...)
			switch v := v.(type) {
			case *Procedure:
				r.insert(full, r.applyBase(v, full))
			case *lazyMount:
				r.insert(full, &lazyMount{lazy: v.lazy, prefix: full})
			}
		})
	default:
		panic(fmt.Sprintf("effectorpc: unsupported router node %T", node))
	}
}

func (r *Router) insert(path []string, v any) {
	if len(path) == 0 {
		panic("effectorpc: router node mounted at empty path")
	}
	if err := r.index.Insert(strings.Join(path, "."), v); err != nil {
		panic(fmt.Sprintf("effectorpc: invalid router path %q: %v", strings.Join(path, "."), err))
	}
}

// applyBase composes the router's configuration under the procedure's own:
// the procedure's registrations win on collision, router middlewares run
// first, and validation indices shift past the prepended run.
func (r *Router) applyBase(p *Procedure, path []string) *Procedure {
	def := p.def.clone()

	def.EffectErrorMap = registry.Merge(r.base.EffectErrorMap, def.EffectErrorMap)
	def.ErrorMap = registry.Project(def.EffectErrorMap)

	if len(r.base.Meta) > 0 {
		merged := cloneMeta(r.base.Meta)
		for k, v := range def.Meta {
			merged[k] = v
		}
		def.Meta = merged
	}
	def.Route = mergeRoute(r.base.Route, def.Route)

	dedupe := r.base.Config.DedupeLeadingMiddlewares || def.Config.DedupeLeadingMiddlewares
	def.Config.DedupeLeadingMiddlewares = dedupe
	merged, prepended := mergeMiddlewares(r.base.Middlewares, def.Middlewares, dedupe)
	def.Middlewares = merged
	def.InputValidationIndex += prepended
	def.OutputValidationIndex += prepended

	if def.Runtime == nil {
		def.Runtime = r.base.Runtime
	}
	def.PathSegments = append([]string{}, path...)

	return &Procedure{def: def, body: p.body, capture: p.capture}
}

// mergeMiddlewares prepends the router chain to the procedure chain. With
// dedupe enabled, the procedure's leading middlewares that are identical
// (by function identity) to the router chain's trailing run are dropped so
// composition never executes the same middleware twice. It reports how many
// middlewares ended up prepended before the procedure's own.
func mergeMiddlewares(router, proc []Middleware, dedupe bool) ([]Middleware, int) {
	if len(router) == 0 {
		return proc, 0
	}
	shared := 0
	if dedupe {
		for shared < len(router) && shared < len(proc) && sameFunc(router[shared], proc[shared]) {
			shared++
		}
	}
	merged := make([]Middleware, 0, len(router)+len(proc)-shared)
	merged = append(merged, router...)
	merged = append(merged, proc[shared:]...)
	return merged, len(router) - shared
}

func sameFunc(a, b Middleware) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
