package driver

import (
	"context"

	"cobrust/internal/diag"
	"cobrust/internal/lexer"
	"cobrust/internal/source"
	"cobrust/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize splits every line of path into words. A lexical error is
// reported into the bag and the split continues with the next line, so one
// run shows all broken lines. Only a load failure is returned as error.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	file, err := Load(ctx, fs, path)
	if err != nil {
		return &TokenizeResult{FileSet: fs, Bag: diag.NewBag(opts.MaxDiagnostics)}, err
	}
	return TokenizeFile(fs, file, opts), nil
}

// TokenizeFile is Tokenize over an already loaded file.
func TokenizeFile(fs *source.FileSet, file *source.File, opts Options) *TokenizeResult {
	bag := diag.NewBag(opts.MaxDiagnostics)
	lexOpts := lexer.Options{Reporter: diag.BagReporter{Bag: bag}}

	var tokens []token.Token
	for line := 1; line <= file.LineCount(); line++ {
		lx := lexer.New(file, file.LineSpan(uint32(line)), lexOpts) //nolint:gosec // line <= LineCount
		for {
			tok, ok := lx.Next()
			if !ok {
				break
			}
			tokens = append(tokens, tok)
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
}
