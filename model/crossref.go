package model

import (
	"context"
	"log/slog"
)

// CrossReference fills metadata missing from the primary model with values
// from a second, independently built model of the same binary. For every
// class present by exact name in both models, and every function name present
// in both classes, an absent return type or access level on the primary side
// is copied from the secondary. Nothing else merges and nothing is created.
//
// Matching is by function name only. When either side has overloads, every
// name-matching pair is processed, so a later pair may observe the write of
// an earlier one. Known limitation, kept as observed behavior.
func CrossReference(ctx context.Context, primary, secondary *Model) {
	for _, id := range primary.SortedIDs() {
		cls := primary.Class(id)
		otherID, ok := secondary.Lookup(cls.Name)
		if !ok {
			continue
		}
		other := secondary.Class(otherID)

		filled := 0
		for _, fn := range cls.Functions {
			for _, donor := range other.Functions {
				if donor.Name != fn.Name {
					continue
				}
				if fn.ReturnType == nil && donor.ReturnType != nil {
					ret := *donor.ReturnType
					fn.ReturnType = &ret
					filled++
				}
				if fn.Access == AccessNone && donor.Access != AccessNone {
					fn.Access = donor.Access
					filled++
				}
			}
		}
		if filled > 0 {
			slog.DebugContext(ctx, "cross-referenced class", "class", cls.Name, "fields", filled)
		}
	}
}
