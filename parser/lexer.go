package parser

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// The symbol dump is line oriented, one exported function per line:
//
//	[access:] [static] [virtual] [return-type] [__convention] [Class::]Name(params) [const] @ HEXADDR
//
// Constructors and destructors carry no return type. An empty parameter list
// is spelled "void". Lines starting with '#' or "//" are comments.

// Lex reads a whole symbol dump into ordered records. Lines are decoded on
// parallel workers, but the result preserves source order exactly: every
// downstream pass assumes records in source order, so workers write into
// per-line slots and the slots are compacted afterwards.
func Lex(ctx context.Context, r io.Reader) ([]SymbolRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("reading symbol dump: %w", err)
	}

	records := make([]SymbolRecord, len(lines))
	keep := make([]bool, len(lines))

	g, ctx := errgroup.WithContext(ctx)
	workers := runtime.GOMAXPROCS(0)
	chunk := (len(lines) + workers) / workers
	for start := 0; start < len(lines); start += chunk {
		start := start
		end := min(start+chunk, len(lines))
		g.Go(func() error {
			for i := start; i < end; i++ {
				rec, ok := LexLine(lines[i])
				if !ok {
					if trimmed := strings.TrimSpace(lines[i]); trimmed != "" && !isComment(trimmed) {
						slog.DebugContext(ctx, "skipping unparseable dump line",
							"line", i+1, "text", trimmed)
					}
					continue
				}
				records[i] = rec
				keep[i] = true
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]SymbolRecord, 0, len(lines))
	for i, rec := range records {
		if keep[i] {
			out = append(out, rec)
		}
	}
	return out, nil
}

// LexLine decodes a single dump line. ok is false for blanks, comments and
// lines not matching the grammar; unparseable lines are never fatal.
func LexLine(line string) (SymbolRecord, bool) {
	var rec SymbolRecord

	line = strings.TrimSpace(line)
	if line == "" || isComment(line) {
		return rec, false
	}

	at := strings.LastIndexByte(line, '@')
	if at < 0 {
		return rec, false
	}
	rec.Address = strings.TrimPrefix(strings.TrimSpace(line[at+1:]), "0x")
	if rec.Address == "" || !isHex(rec.Address) {
		return rec, false
	}

	sig := strings.TrimSpace(line[:at])
	if rest, ok := strings.CutSuffix(sig, "const"); ok && strings.HasSuffix(strings.TrimSpace(rest), ")") {
		rec.IsConst = true
		sig = strings.TrimSpace(rest)
	}

	open := matchParamParen(sig)
	if open < 0 {
		return rec, false
	}
	rec.Parameters = strings.TrimSpace(sig[open+1 : len(sig)-1])

	decl := strings.TrimSpace(sig[:open])
	nameStart := functionNameStart(decl)
	qualified := decl[nameStart:]
	rec.ClassName, rec.FunctionName = splitQualified(qualified)
	if rec.FunctionName == "" {
		return rec, false
	}

	var returnTokens []string
	for _, tok := range strings.Fields(decl[:nameStart]) {
		switch tok {
		case "public:", "public":
			rec.Access = "public"
		case "protected:", "protected":
			rec.Access = "protected"
		case "private:", "private":
			rec.Access = "private"
		case "static":
			rec.IsStatic = true
		case "virtual":
			rec.IsVirtual = true
		case "__cdecl":
			rec.Convention = "cdecl"
		case "__thiscall":
			rec.Convention = "thiscall"
		case "__stdcall":
			rec.Convention = "stdcall"
		case "__fastcall":
			rec.Convention = "fastcall"
		default:
			returnTokens = append(returnTokens, tok)
		}
	}
	rec.ReturnType = strings.Join(returnTokens, " ")

	return rec, true
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//")
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

// matchParamParen returns the index of the '(' opening the parameter list,
// which is the one matching the trailing ')'. Scanning backwards keeps names
// like "operator()" intact.
func matchParamParen(sig string) int {
	if !strings.HasSuffix(sig, ")") {
		return -1
	}
	depth := 0
	for i := len(sig) - 1; i >= 0; i-- {
		switch sig[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// lastTopLevelSpace scans backwards for the last space outside template
// brackets. Operator names can carry lone '<' or '>' characters, so the
// reverse depth never goes below zero.
func lastTopLevelSpace(s string) int {
	depth := 0
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case '>':
			depth++
		case '<':
			if depth > 0 {
				depth--
			}
		case ' ':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// functionNameStart finds where the qualified function name begins: after the
// last space outside template brackets. Operator names need care twice over:
// their symbol characters must not count as brackets, and "operator new" /
// "operator delete" contain a space of their own.
func functionNameStart(decl string) int {
	if oi := strings.LastIndex(decl, "::operator"); oi >= 0 {
		return lastTopLevelSpace(decl[:oi]) + 1
	}
	start := lastTopLevelSpace(decl) + 1
	prefix := strings.TrimRight(decl[:start], " ")
	if strings.HasSuffix(prefix, "operator") {
		return lastTopLevelSpace(prefix[:len(prefix)-len("operator")]) + 1
	}
	return start
}

// splitQualified splits "Class::Name" at the last "::" outside template
// brackets. Class-less symbols return an empty class name.
func splitQualified(qualified string) (class, name string) {
	if i := strings.LastIndex(qualified, "::operator"); i >= 0 {
		return qualified[:i], qualified[i+2:]
	}
	depth := 0
	for i := len(qualified) - 1; i > 0; i-- {
		switch qualified[i] {
		case '>':
			depth++
		case '<':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 && qualified[i-1] == ':' {
				return qualified[:i-1], qualified[i+1:]
			}
		}
	}
	return "", qualified
}
