package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnterminatedString Code = 1002
	LexMalformedWord      Code = 1003

	// Структурные (разделы, объявления, операторы)
	SynInfo                 Code = 2000
	SynMissingSection       Code = 2001
	SynMalformedLevel       Code = 2002
	SynUnsupportedConstruct Code = 2003
	SynMalformedPicture     Code = 2004
	SynUnknownVerb          Code = 2005
	SynUnknownCondition     Code = 2006
	SynUnterminatedBlock    Code = 2007
	SynNestingTooDeep       Code = 2008
	SynMalformedStatement   Code = 2009
	SynIgnoredClause        Code = 2010

	// Семантические
	SemaInfo                 Code = 3000
	SemaUndeclaredIdentifier Code = 3001
	SemaDuplicateDeclaration Code = 3002

	// Ввод-вывод
	IOInfo            Code = 4000
	IOLoadFileError   Code = 4001
	IOWriteFileError  Code = 4002
	IOFormatterFailed Code = 4003

	// Проект
	ProjInfo          Code = 5000
	ProjInvalidConfig Code = 5001
	ProjUnsafeOutDir  Code = 5002

	ObsInfo    Code = 6000
	ObsTimings Code = 6001

	// Интерпретатор
	RunInfo              Code = 9000
	RunStepLimitExceeded Code = 9001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:              "Unknown error",
		LexInfo:                  "Lexical information",
		LexUnterminatedString:    "Unterminated string literal",
		LexMalformedWord:         "Malformed word",
		SynInfo:                  "Syntax information",
		SynMissingSection:        "Missing section header",
		SynMalformedLevel:        "Malformed level number",
		SynUnsupportedConstruct:  "Unsupported construct",
		SynMalformedPicture:      "Malformed picture clause",
		SynUnknownVerb:           "Unknown verb",
		SynUnknownCondition:      "Unknown condition",
		SynUnterminatedBlock:     "Unterminated perform block",
		SynNestingTooDeep:        "Perform nesting too deep",
		SynMalformedStatement:    "Malformed statement",
		SynIgnoredClause:         "Clause ignored",
		SemaInfo:                 "Semantic information",
		SemaUndeclaredIdentifier: "Undeclared identifier",
		SemaDuplicateDeclaration: "Duplicate declaration",
		IOInfo:                   "I/O information",
		IOLoadFileError:          "Failed to load file",
		IOWriteFileError:         "Failed to write output",
		IOFormatterFailed:        "Formatter failed",
		ProjInfo:                 "Project information",
		ProjInvalidConfig:        "Invalid project configuration",
		ProjUnsafeOutDir:         "Unsafe output directory",
		ObsInfo:                  "Observability information",
		ObsTimings:               "Pipeline timings",
		RunInfo:                  "Interpreter information",
		RunStepLimitExceeded:     "Step limit exceeded",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("RUN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
