package parser

import (
	"context"
	"log/slog"
	"strings"
)

// Blacklist drops dump noise: compiler-generated thunks, CRT internals and
// similar symbols that must never reach the model. Matching is by substring
// against the dumped function and class names.
type Blacklist struct {
	fragments []string
}

func NewBlacklist(fragments []string) *Blacklist {
	b := &Blacklist{}
	for _, fragment := range fragments {
		if fragment != "" {
			b.fragments = append(b.fragments, fragment)
		}
	}
	return b
}

// Drops reports whether a record is noise.
func (b *Blacklist) Drops(rec *SymbolRecord) bool {
	for _, fragment := range b.fragments {
		if strings.Contains(rec.FunctionName, fragment) || strings.Contains(rec.ClassName, fragment) {
			return true
		}
	}
	return false
}

// Filter returns the records that survive the blacklist, order preserved.
func (b *Blacklist) Filter(ctx context.Context, records []SymbolRecord) []SymbolRecord {
	if len(b.fragments) == 0 {
		return records
	}
	kept := make([]SymbolRecord, 0, len(records))
	dropped := 0
	for i := range records {
		if b.Drops(&records[i]) {
			dropped++
			continue
		}
		kept = append(kept, records[i])
	}
	if dropped > 0 {
		slog.DebugContext(ctx, "blacklist dropped symbols", "dropped", dropped, "kept", len(kept))
	}
	return kept
}
