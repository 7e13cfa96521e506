package parser

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// The struct-layout dump is a sequence of blocks:
//
//	struct Name : Base1, Base2 {
//	    float x;
//	    zVEC3 *next;
//	    char name[64];
//	};
//
// Member order is the binary's layout order and is preserved.

// ParseStructs reads a struct-layout dump into ordered records. The pass is
// line oriented and single threaded; layout dumps are small compared to the
// symbol dump.
func ParseStructs(ctx context.Context, r io.Reader) ([]StructRecord, error) {
	var (
		records []StructRecord
		current *StructRecord
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || isComment(line) {
			continue
		}

		if current == nil {
			rec, ok := parseStructHeader(line)
			if !ok {
				slog.DebugContext(ctx, "skipping line outside struct block", "line", lineNo)
				continue
			}
			records = append(records, rec)
			current = &records[len(records)-1]
			continue
		}

		if line == "};" || line == "}" {
			current = nil
			continue
		}

		if member, ok := parseStructMember(line); ok {
			current.Members = append(current.Members, member)
		} else {
			slog.DebugContext(ctx, "skipping unparseable member line", "line", lineNo, "text", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("reading struct dump: %w", err)
	}

	return records, nil
}

// parseStructHeader decodes "struct Name [: Base, Base] {".
func parseStructHeader(line string) (StructRecord, bool) {
	var rec StructRecord

	rest, ok := strings.CutPrefix(line, "struct ")
	if !ok {
		if rest, ok = strings.CutPrefix(line, "class "); !ok {
			return rec, false
		}
	}
	rest = strings.TrimSuffix(strings.TrimSpace(rest), "{")
	rest = strings.TrimSpace(rest)

	name := rest
	if colon := indexTopLevelColon(rest); colon >= 0 {
		name = strings.TrimSpace(rest[:colon])
		for _, base := range splitTopLevel(rest[colon+1:], ',') {
			base = strings.TrimSpace(base)
			base = strings.TrimSpace(strings.TrimPrefix(base, "public "))
			if base != "" {
				rec.BaseNames = append(rec.BaseNames, base)
			}
		}
	}
	if name == "" {
		return rec, false
	}
	rec.Name = name
	return rec, true
}

// parseStructMember decodes "type name;" with the pointer star attaching to
// the type and a trailing array length decaying to "[]".
func parseStructMember(line string) (StructMember, bool) {
	var member StructMember

	line = strings.TrimSuffix(line, ";")
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return member, false
	}

	name := fields[len(fields)-1]
	typeFields := fields[:len(fields)-1]

	for strings.HasPrefix(name, "*") {
		name = name[1:]
		typeFields = append(typeFields, "*")
	}
	if bracket := strings.IndexByte(name, '['); bracket >= 0 {
		typeFields = append(typeFields, "[]")
		name = name[:bracket]
	}
	if name == "" {
		return member, false
	}

	member.Name = name
	member.Type = strings.Join(typeFields, " ")
	return member, true
}

// indexTopLevelColon finds a single ':' outside template brackets, skipping
// "::" scope separators.
func indexTopLevelColon(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ':':
			if depth != 0 {
				continue
			}
			if i+1 < len(s) && s[i+1] == ':' {
				i++
				continue
			}
			return i
		}
	}
	return -1
}

func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
