package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexUnknownChar  Code = 1001
	LexBadNumber    Code = 1002
	LexTokenTooLong Code = 1003

	// Синтаксические
	SynUnexpectedToken    Code = 2001
	SynExpectIdentifier   Code = 2002
	SynExpectExpression   Code = 2003
	SynExpectRBrace       Code = 2004
	SynExpectRParen       Code = 2005
	SynUnexpectedTopLevel Code = 2006
	SynBadAssignTarget    Code = 2007

	// Семантические: разрешение имён и вызовов
	SemaUnresolvedModule    Code = 3001
	SemaDuplicateDefinition Code = 3002
	SemaUnresolvedSymbol    Code = 3003
	SemaArityMismatch       Code = 3004
	SemaDuplicateSymbol     Code = 3005
	SemaMisplacedReturn     Code = 3006
	SemaVoidValue           Code = 3007
	SemaDuplicateParam      Code = 3008
	SemaReservedName        Code = 3009

	// Кодогенерация
	GenStackTooDeep  Code = 4001
	GenInconsistency Code = 4002

	// Ассемблер / линковщик
	AsmSyntax Code = 5001
	AsmLink   Code = 5002

	// Входные данные
	InputInvalidLiteral Code = 6001

	// Доказательство
	ProveFailed Code = 7001

	// Проект / манифест
	ProjectManifest Code = 8001
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	LexUnknownChar:          "Unknown character",
	LexBadNumber:            "Malformed number literal",
	LexTokenTooLong:         "Token too long",
	SynUnexpectedToken:      "Unexpected token",
	SynExpectIdentifier:     "Expected identifier",
	SynExpectExpression:     "Expected expression",
	SynExpectRBrace:         "Expected '}'",
	SynExpectRParen:         "Expected ')'",
	SynUnexpectedTopLevel:   "Unexpected top-level construct",
	SynBadAssignTarget:      "Invalid assignment target",
	SemaUnresolvedModule:    "Unresolved module",
	SemaDuplicateDefinition: "Duplicate function definition",
	SemaUnresolvedSymbol:    "Unresolved symbol",
	SemaArityMismatch:       "Arity mismatch",
	SemaDuplicateSymbol:     "Duplicate local symbol",
	SemaMisplacedReturn:     "Misplaced return",
	SemaVoidValue:           "Void value used as expression",
	SemaDuplicateParam:      "Duplicate parameter",
	SemaReservedName:        "Reserved name",
	GenStackTooDeep:         "Stack too deep",
	GenInconsistency:        "Internal consistency fault",
	AsmSyntax:               "Assembly syntax error",
	AsmLink:                 "Assembly link error",
	InputInvalidLiteral:     "Invalid input literal",
	ProveFailed:             "Proving failed",
	ProjectManifest:         "Invalid project manifest",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("ASM%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("INP%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("PRV%04d", ic)
	case ic >= 8000 && ic < 9000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
