package model

import (
	"context"
	"log/slog"

	"gitlab.com/tozd/go/errors"

	"github.com/reforge-mod/sdkgen/parser"
)

// ErrMalformedInput marks an internal-consistency fault in the struct dump:
// the input is assumed self-consistent, so a base name resolving to no class
// aborts the run.
var ErrMalformedInput = errors.Base("malformed struct input")

// MergeStructs folds struct-layout records into the class model. Members are
// appended in the first pass, class records being created on demand for
// struct-only types. Inheritance is resolved in a second pass, once every
// class the input can name exists, so structs may reference each other in any
// order.
func MergeStructs(ctx context.Context, m *Model, structs []parser.StructRecord) error {
	type pendingBases struct {
		id    ClassID
		bases []string
	}

	pending := make([]pendingBases, 0, len(structs))

	for i := range structs {
		rec := &structs[i]

		name := MangleTemplates(rec.Name)
		if name == GlobalFunctionsName {
			slog.WarnContext(ctx, "ignoring struct shadowing the free-standing bucket", "struct", rec.Name)
			continue
		}

		id := m.FindOrCreate(name)
		cls := m.Class(id)
		for _, member := range rec.Members {
			cls.Members = append(cls.Members, Member{
				Name: member.Name,
				Type: NormalizeType(member.Type),
			})
		}
		if len(rec.BaseNames) > 0 {
			pending = append(pending, pendingBases{id: id, bases: rec.BaseNames})
		}
	}

	for _, p := range pending {
		cls := m.Class(p.id)
		for _, baseName := range p.bases {
			baseID, ok := m.Lookup(MangleTemplates(baseName))
			if !ok {
				return errors.Errorf("struct %q inherits unknown base %q: %w",
					cls.Name, baseName, ErrMalformedInput)
			}
			cls.Bases = append(cls.Bases, baseID)
		}
	}

	return nil
}
