package model

import (
	"strings"
)

// Operator is the closed set of C++ operators the dump tool can export, plus
// an explicit variant for spellings we do not recognize. Unrecognized
// operators surface as "OperatorUnrecognized" in generated identifiers
// instead of silently passing the raw spelling through.
type Operator int

const (
	OpUnrecognized Operator = iota
	OpAssign
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpAddAssign
	OpSubtractAssign
	OpMultiplyAssign
	OpDivideAssign
	OpEqual
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpNot
	OpAnd
	OpOr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpBitNot
	OpShiftLeft
	OpShiftRight
	OpIncrement
	OpDecrement
	OpIndex
	OpCall
	OpArrow
	OpNew
	OpDelete
)

var operatorSpellings = map[string]Operator{
	"=":      OpAssign,
	"+":      OpAdd,
	"-":      OpSubtract,
	"*":      OpMultiply,
	"/":      OpDivide,
	"%":      OpModulo,
	"+=":     OpAddAssign,
	"-=":     OpSubtractAssign,
	"*=":     OpMultiplyAssign,
	"/=":     OpDivideAssign,
	"==":     OpEqual,
	"!=":     OpNotEqual,
	"<":      OpLess,
	"<=":     OpLessEqual,
	">":      OpGreater,
	">=":     OpGreaterEqual,
	"!":      OpNot,
	"&&":     OpAnd,
	"||":     OpOr,
	"&":      OpBitAnd,
	"|":      OpBitOr,
	"^":      OpBitXor,
	"~":      OpBitNot,
	"<<":     OpShiftLeft,
	">>":     OpShiftRight,
	"++":     OpIncrement,
	"--":     OpDecrement,
	"[]":     OpIndex,
	"()":     OpCall,
	"->":     OpArrow,
	"new":    OpNew,
	"delete": OpDelete,
}

// operatorIdentifiers is total over Operator.
var operatorIdentifiers = map[Operator]string{
	OpUnrecognized:   "OperatorUnrecognized",
	OpAssign:         "OperatorAssign",
	OpAdd:            "OperatorAdd",
	OpSubtract:       "OperatorSubtract",
	OpMultiply:       "OperatorMultiply",
	OpDivide:         "OperatorDivide",
	OpModulo:         "OperatorModulo",
	OpAddAssign:      "OperatorAddAssign",
	OpSubtractAssign: "OperatorSubtractAssign",
	OpMultiplyAssign: "OperatorMultiplyAssign",
	OpDivideAssign:   "OperatorDivideAssign",
	OpEqual:          "OperatorEqual",
	OpNotEqual:       "OperatorNotEqual",
	OpLess:           "OperatorLess",
	OpLessEqual:      "OperatorLessEqual",
	OpGreater:        "OperatorGreater",
	OpGreaterEqual:   "OperatorGreaterEqual",
	OpNot:            "OperatorNot",
	OpAnd:            "OperatorAnd",
	OpOr:             "OperatorOr",
	OpBitAnd:         "OperatorBitAnd",
	OpBitOr:          "OperatorBitOr",
	OpBitXor:         "OperatorBitXor",
	OpBitNot:         "OperatorBitNot",
	OpShiftLeft:      "OperatorShiftLeft",
	OpShiftRight:     "OperatorShiftRight",
	OpIncrement:      "OperatorIncrement",
	OpDecrement:      "OperatorDecrement",
	OpIndex:          "OperatorIndex",
	OpCall:           "OperatorCall",
	OpArrow:          "OperatorArrow",
	OpNew:            "OperatorNew",
	OpDelete:         "OperatorDelete",
}

// Identifier returns the identifier-safe spelling of the operator.
func (o Operator) Identifier() string {
	return operatorIdentifiers[o]
}

// FriendlyName turns a dumped function name into an identifier-safe one:
// operator spellings map through the closed operator table, template argument
// lists are flattened. Non-operator names pass through mangling only.
func FriendlyName(mangled string) string {
	if rest, ok := strings.CutPrefix(mangled, "operator"); ok {
		if op, known := operatorSpellings[strings.TrimSpace(rest)]; known {
			return op.Identifier()
		}
		if rest != "" && !isIdentifierByte(rest[0]) && rest[0] != ' ' {
			// An operator symbol outside the closed table.
			return OpUnrecognized.Identifier()
		}
	}
	return MangleTemplates(mangled)
}

func isIdentifierByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
