package generator

import (
	"fmt"
	"strings"

	"github.com/reforge-mod/sdkgen/model"
)

// declaredAccess defaults functions without dumped access information to
// public, so generated classes stay usable even when neither dump knew.
func declaredAccess(fn *model.ParsedFunction) model.AccessLevel {
	if fn.Access == model.AccessNone {
		return model.AccessPublic
	}
	return fn.Access
}

func memberDeclaration(member model.Member) string {
	t := member.Type
	spelling := t.Spelling()
	if strings.HasSuffix(spelling, "*") {
		return spelling + member.Name
	}
	return spelling + " " + member.Name
}

// parameterList renders the dump's parameter types. The single-void
// convention for "no parameters" renders as an explicit (void).
func parameterList(fn *model.ParsedFunction) string {
	if fn.HasNoParameters() {
		return "void"
	}
	parts := make([]string, 0, len(fn.Parameters))
	for _, param := range fn.Parameters {
		if param.Name == model.VariadicMarker {
			parts = append(parts, model.VariadicMarker)
			continue
		}
		parts = append(parts, param.Spelling())
	}
	return strings.Join(parts, ", ")
}

// functionDeclaration renders one in-class declaration line, without the
// trailing semicolon.
func functionDeclaration(cls *model.ParsedClass, fn *model.ParsedFunction) string {
	var b strings.Builder

	if fn.IsStatic {
		b.WriteString("static ")
	}
	if fn.IsVirtual {
		b.WriteString("virtual ")
	}

	switch {
	case fn.IsConstructor:
		b.WriteString(cls.Name)
	case fn.IsDestructor:
		b.WriteString("~" + cls.Name)
	default:
		if fn.ReturnType != nil {
			b.WriteString(fn.ReturnType.Spelling())
			b.WriteByte(' ')
		}
		if kw := fn.Convention.Keyword(); kw != "" {
			b.WriteString(kw)
			b.WriteByte(' ')
		}
		b.WriteString(fn.Name)
	}

	fmt.Fprintf(&b, "(%s)", parameterList(fn))
	if fn.IsConst {
		b.WriteString(" const")
	}
	return b.String()
}

// functionDefinitionHead renders the out-of-class definition head, everything
// before the body's opening brace.
func functionDefinitionHead(cls *model.ParsedClass, fn *model.ParsedFunction) string {
	var b strings.Builder

	switch {
	case fn.IsConstructor:
		fmt.Fprintf(&b, "%s::%s", cls.Name, cls.Name)
	case fn.IsDestructor:
		fmt.Fprintf(&b, "%s::~%s", cls.Name, cls.Name)
	default:
		if fn.ReturnType != nil {
			b.WriteString(fn.ReturnType.Spelling())
			b.WriteByte(' ')
		}
		if kw := fn.Convention.Keyword(); kw != "" {
			b.WriteString(kw)
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s::%s", cls.Name, fn.Name)
	}

	fmt.Fprintf(&b, "(%s)", parameterList(fn))
	if fn.IsConst {
		b.WriteString(" const")
	}
	return b.String()
}

// freeFunctionSignature renders a comment-only signature for a free-standing
// function, the shape callers cast the address constant to.
func freeFunctionSignature(fn *model.ParsedFunction) string {
	var b strings.Builder
	if fn.ReturnType != nil {
		b.WriteString(fn.ReturnType.Spelling())
	} else {
		b.WriteString("void")
	}
	if kw := fn.Convention.Keyword(); kw != "" {
		b.WriteString(" " + kw)
	}
	fmt.Fprintf(&b, " %s(%s)", fn.MangledName, parameterList(fn))
	return b.String()
}
