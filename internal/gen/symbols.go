package gen

import (
	"github.com/vk/bridgegen/internal/bridge"
	"github.com/vk/bridgegen/internal/namepath"
)

type symbolKind int

const (
	kindStruct symbolKind = iota
	kindEnum
	kindExtern
	kindOpaque
)

type symbol struct {
	item *bridge.Item
	kind symbolKind
}

// symbols indexes the types a bridge declares.
type symbols struct {
	ns     *namepath.NamePath
	byPath map[string]*symbol
	byName map[string][]*symbol
}

func newSymbols(b *bridge.Bridge) *symbols {
	s := &symbols{
		ns:     b.Namespace,
		byPath: make(map[string]*symbol),
		byName: make(map[string][]*symbol),
	}
	for _, it := range b.ExternTypes {
		s.add(it, kindExtern)
	}
	for _, it := range b.OpaqueTypes {
		s.add(it, kindOpaque)
	}
	for _, e := range b.Enums {
		s.add(&e.Item, kindEnum)
	}
	for _, st := range b.Structs {
		s.add(&st.Item, kindStruct)
	}
	return s
}

func (s *symbols) add(it *bridge.Item, kind symbolKind) {
	sym := &symbol{item: it, kind: kind}
	s.byPath[it.Path().String()] = sym
	s.byName[it.Name] = append(s.byName[it.Name], sym)
}

// lookup resolves a type path. A qualified path must match exactly. A bare
// name is looked up in the bridge namespace first and then among all items
// by name, where it must be unambiguous.
func (s *symbols) lookup(path *namepath.NamePath) (sym *symbol, ambiguous bool) {
	if len(path.Segments) > 1 {
		return s.byPath[path.String()], false
	}
	name := path.Last()
	if sym, ok := s.byPath[s.ns.Append(name).String()]; ok {
		return sym, false
	}
	switch candidates := s.byName[name]; len(candidates) {
	case 0:
		return nil, false
	case 1:
		return candidates[0], false
	default:
		return nil, true
	}
}
