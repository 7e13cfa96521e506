package model

import (
	"context"
	"log/slog"
	"sort"
)

// typeOccurrence is one sighting of a named type inside a class: an inherited
// base, a return type, a parameter, or a data member. Only the pointer-ness
// matters for classification.
type typeOccurrence struct {
	pointer bool
}

// ResolveDependencies computes, for every class, the disjoint header, source
// and unknown dependency sets. The classification mirrors what a translation
// unit really needs: any concrete-value use of a target (base class, value
// member, by-value parameter or return) forces the target's full definition
// into the header set; pointer-only use is satisfied by a forward
// declaration and lands in the source set. That split is what lets two
// mutually pointer-referencing classes each forward-declare the other
// instead of including each other. Names matching no class go to the unknown
// set and are emitted as opaque placeholders later.
//
// Occurrences are bucketed per target name and buckets reduced in sorted
// name order, so set ordering is independent of discovery order.
func ResolveDependencies(ctx context.Context, m *Model) {
	for _, id := range m.SortedIDs() {
		cls := m.Class(id)
		if cls.IsGlobalBucket() {
			continue
		}
		resolveClass(ctx, m, cls)
	}
}

func resolveClass(ctx context.Context, m *Model, cls *ParsedClass) {
	occurrences := collectOccurrences(m, cls)

	names := make([]string, 0, len(occurrences))
	for name := range occurrences {
		names = append(names, name)
	}
	sort.Strings(names)

	cls.HeaderDeps = cls.HeaderDeps[:0]
	cls.SourceDeps = cls.SourceDeps[:0]
	cls.UnknownDeps = cls.UnknownDeps[:0]

	for _, name := range names {
		needConcreteDef := false
		for _, occ := range occurrences[name] {
			if !occ.pointer {
				needConcreteDef = true
			}
		}

		target, known := m.Lookup(name)
		switch {
		case known && needConcreteDef:
			cls.HeaderDeps = append(cls.HeaderDeps, target)
		case known:
			cls.SourceDeps = append(cls.SourceDeps, target)
		default:
			cls.UnknownDeps = append(cls.UnknownDeps, name)
		}
	}

	if len(cls.UnknownDeps) > 0 {
		slog.DebugContext(ctx, "class references unknown types",
			"class", cls.Name, "unknown", cls.UnknownDeps)
	}
}

// collectOccurrences builds the multimap target name -> occurrence list.
// Base types carry no dependency by definition; self-references and the
// variadic marker need no include either.
func collectOccurrences(m *Model, cls *ParsedClass) map[string][]typeOccurrence {
	occurrences := make(map[string][]typeOccurrence)

	add := func(name string, pointer bool) {
		if name == "" || name == cls.Name || name == VariadicMarker {
			return
		}
		occurrences[name] = append(occurrences[name], typeOccurrence{pointer: pointer})
	}

	addType := func(t CppType) {
		if t.IsBase {
			return
		}
		add(t.Name, t.IsPointer)
	}

	for _, baseID := range cls.Bases {
		// A base class is always a concrete-definition requirement.
		add(m.Class(baseID).Name, false)
	}
	for _, fn := range cls.Functions {
		if fn.ReturnType != nil {
			addType(*fn.ReturnType)
		}
		for _, param := range fn.Parameters {
			addType(param)
		}
	}
	for _, member := range cls.Members {
		addType(member.Type)
	}

	return occurrences
}
