// Package parser reads Java source files down to the declaration level.
//
// The lexer produces every token of the input, including whitespace and
// comments. The parser keeps the structure a stub generator needs: the
// package and import declarations, type declarations with their type
// parameters and supertypes, and members with modifiers, types, parameters
// and field initializers. Method and initializer bodies are skipped as
// balanced blocks.
//
//	p := parser.ParseCompilationUnit(r, parser.WithFile(path))
//	tree := p.Finish()
//	if err := p.Err(); err != nil {
//	    // tree is partial; err is the first *SyntaxError
//	}
//
// Doc comments ("/** ... */") are attached to the node of the declaration
// they precede through Node.Doc.
package parser
