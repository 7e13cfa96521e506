// Package generator renders the resolved class model into C++ header and
// implementation text. Function bodies are address trampolines: the generated
// function tears down its own stack frame and jumps to the fixed address of
// the compiled code, so declaring the original calling convention makes the
// call site ABI-compatible with the binary.
package generator

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"gitlab.com/tozd/go/errors"

	"github.com/reforge-mod/sdkgen/model"
)

type Generator struct {
	namespace   string
	guardPrefix string
	platforms   []string
	model       *model.Model
}

func New(namespace, guardPrefix string, platforms []string, m *model.Model) *Generator {
	return &Generator{
		namespace:   namespace,
		guardPrefix: guardPrefix,
		platforms:   platforms,
		model:       m,
	}
}

// Generate renders every output file as filename -> content. Writing them to
// disk is the caller's business.
func (g *Generator) Generate() (map[string]string, error) {
	files := make(map[string]string)

	unknowns := make(map[string]bool)
	var classFiles []string

	for _, id := range g.model.SortedIDs() {
		cls := g.model.Class(id)
		if cls.IsGlobalBucket() {
			continue
		}
		files[fileName(cls.Name)+".h"] = g.generateClassHeader(cls)
		files[fileName(cls.Name)+".cpp"] = g.generateClassSource(cls)
		classFiles = append(classFiles, fileName(cls.Name))

		for _, unknown := range cls.UnknownDeps {
			unknowns[unknown] = true
		}
	}

	for name := range unknowns {
		content, err := g.generatePlaceholder(name)
		if err != nil {
			return nil, errors.Errorf("generating placeholder for %s: %w", name, err)
		}
		files[fileName(name)+".h"] = content
	}

	if id, ok := g.model.Lookup(model.GlobalFunctionsName); ok {
		bucket := g.model.Class(id)
		if len(bucket.Functions) > 0 {
			for _, platform := range g.platforms {
				header, source, err := g.generateGlobalPair(bucket, platform)
				if err != nil {
					return nil, errors.Errorf("generating free-standing files for %s: %w", platform, err)
				}
				files[fmt.Sprintf("%s_%s.h", model.GlobalFunctionsName, platform)] = header
				files[fmt.Sprintf("%s_%s.cpp", model.GlobalFunctionsName, platform)] = source
			}
		}
	}

	unknownNames := make([]string, 0, len(unknowns))
	for name := range unknowns {
		unknownNames = append(unknownNames, name)
	}
	sort.Strings(unknownNames)
	files["AllClasses.h"] = g.generateUnityHeader(classFiles, unknownNames)
	files["UnityBuild.cpp"] = g.generateUnitySource(classFiles)

	return files, nil
}

func (g *Generator) generateClassHeader(cls *model.ParsedClass) string {
	var buf bytes.Buffer

	guard := g.guard(cls.Name)
	fmt.Fprintf(&buf, "#ifndef %s\n#define %s\n\n", guard, guard)

	// The full definition of every header dependency must be visible here;
	// unknown types resolve to their opaque placeholder headers.
	for _, dep := range cls.HeaderDeps {
		fmt.Fprintf(&buf, "#include \"%s.h\"\n", fileName(g.model.Class(dep).Name))
	}
	for _, unknown := range cls.UnknownDeps {
		fmt.Fprintf(&buf, "#include \"%s.h\"\n", fileName(unknown))
	}
	if len(cls.HeaderDeps) > 0 || len(cls.UnknownDeps) > 0 {
		buf.WriteByte('\n')
	}

	fmt.Fprintf(&buf, "namespace %s {\n\n", g.namespace)

	// Pointer-only targets need a name, not a layout.
	for _, dep := range cls.SourceDeps {
		fmt.Fprintf(&buf, "class %s;\n", g.model.Class(dep).Name)
	}
	if len(cls.SourceDeps) > 0 {
		buf.WriteByte('\n')
	}

	fmt.Fprintf(&buf, "class %s", cls.Name)
	for i, base := range cls.Bases {
		sep := " :"
		if i > 0 {
			sep = ","
		}
		fmt.Fprintf(&buf, "%s public %s", sep, g.model.Class(base).Name)
	}
	fmt.Fprintf(&buf, " {\n")

	if len(cls.Members) > 0 {
		fmt.Fprintf(&buf, "public:\n")
		for _, member := range cls.Members {
			fmt.Fprintf(&buf, "\t%s;\n", memberDeclaration(member))
		}
		buf.WriteByte('\n')
	}

	access := model.AccessNone
	for _, fn := range cls.Functions {
		if level := declaredAccess(fn); level != access {
			fmt.Fprintf(&buf, "%s:\n", level)
			access = level
		}
		fmt.Fprintf(&buf, "\t%s;\n", functionDeclaration(cls, fn))
	}

	fmt.Fprintf(&buf, "};\n\n")
	fmt.Fprintf(&buf, "} // namespace %s\n\n", g.namespace)
	fmt.Fprintf(&buf, "#endif // %s\n", guard)

	return buf.String()
}

func (g *Generator) generateClassSource(cls *model.ParsedClass) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "#include \"%s.h\"\n\n", fileName(cls.Name))
	fmt.Fprintf(&buf, "namespace %s {\n\n", g.namespace)

	for _, fn := range cls.Functions {
		fmt.Fprintf(&buf, "%s {\n", functionDefinitionHead(cls, fn))
		if fn.Address != 0 {
			writeTrampoline(&buf, fn.Address)
		}
		fmt.Fprintf(&buf, "}\n\n")
	}

	fmt.Fprintf(&buf, "} // namespace %s\n", g.namespace)

	return buf.String()
}

// writeTrampoline emits the body that abandons the generated function's own
// frame and transfers control to the compiled code. The declared calling
// convention already made the caller set the arguments up the way the code at
// the target address expects, so nothing may run in between.
func writeTrampoline(buf *bytes.Buffer, address uint32) {
	fmt.Fprintf(buf, "\t__asm {\n")
	fmt.Fprintf(buf, "\t\tmov esp, ebp\n")
	fmt.Fprintf(buf, "\t\tpop ebp\n")
	fmt.Fprintf(buf, "\t\tmov eax, 0x%08X\n", address)
	fmt.Fprintf(buf, "\t\tjmp eax\n")
	fmt.Fprintf(buf, "\t}\n")
}

var placeholderTemplate = template.Must(template.New("placeholder").Parse(`#ifndef {{.Guard}}
#define {{.Guard}}

// Placeholder for a type the symbol dump references but never defines.
namespace {{.Namespace}} {

struct {{.Name}} {
};

} // namespace {{.Namespace}}

#endif // {{.Guard}}
`))

func (g *Generator) generatePlaceholder(name string) (string, error) {
	var buf bytes.Buffer
	err := placeholderTemplate.Execute(&buf, map[string]string{
		"Guard":     g.guard(name),
		"Namespace": g.namespace,
		"Name":      name,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

var globalHeaderTemplate = template.Must(template.New("globalHeader").Parse(`#ifndef {{.Guard}}
#define {{.Guard}}

// Exported functions belonging to no class, {{.Platform}} build. No
// trampolines here: cast an address to the matching function-pointer type.
namespace {{.Namespace}} {
{{range .Functions}}
// {{.Signature}}
extern const unsigned int {{.Name}}_Address;
{{end}}
} // namespace {{.Namespace}}

#endif // {{.Guard}}
`))

var globalSourceTemplate = template.Must(template.New("globalSource").Parse(`#include "{{.File}}.h"

namespace {{.Namespace}} {
{{range .Functions}}
const unsigned int {{.Name}}_Address = 0x{{.Address}};
{{end}}
} // namespace {{.Namespace}}
`))

func (g *Generator) generateGlobalPair(bucket *model.ParsedClass, platform string) (string, string, error) {
	type globalFunc struct {
		Name      string
		Signature string
		Address   string
	}

	file := fmt.Sprintf("%s_%s", model.GlobalFunctionsName, platform)

	funcs := make([]globalFunc, 0, len(bucket.Functions))
	for _, fn := range bucket.Functions {
		funcs = append(funcs, globalFunc{
			Name:      fn.Name,
			Signature: freeFunctionSignature(fn),
			Address:   fmt.Sprintf("%08X", fn.Address),
		})
	}

	data := map[string]any{
		"Guard":     g.guard(file),
		"Namespace": g.namespace,
		"Platform":  platform,
		"File":      file,
		"Functions": funcs,
	}

	var header, source bytes.Buffer
	if err := globalHeaderTemplate.Execute(&header, data); err != nil {
		return "", "", err
	}
	if err := globalSourceTemplate.Execute(&source, data); err != nil {
		return "", "", err
	}
	return header.String(), source.String(), nil
}

func (g *Generator) generateUnityHeader(classFiles, unknowns []string) string {
	var buf bytes.Buffer
	guard := g.guard("AllClasses")
	fmt.Fprintf(&buf, "#ifndef %s\n#define %s\n\n", guard, guard)
	for _, name := range unknowns {
		fmt.Fprintf(&buf, "#include \"%s.h\"\n", fileName(name))
	}
	for _, name := range classFiles {
		fmt.Fprintf(&buf, "#include \"%s.h\"\n", name)
	}
	fmt.Fprintf(&buf, "\n#endif // %s\n", guard)
	return buf.String()
}

func (g *Generator) generateUnitySource(classFiles []string) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Unity build: compile this one file instead of the per-class sources.\n")
	for _, name := range classFiles {
		fmt.Fprintf(&buf, "#include \"%s.cpp\"\n", name)
	}
	return buf.String()
}

func (g *Generator) guard(name string) string {
	return fmt.Sprintf("%s_%s_H", g.guardPrefix, strings.ToUpper(fileName(name)))
}

// fileName maps a type name to a file-system-safe stem.
func fileName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
