package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithComments() Option {
	return func(p *Parser) {
		p.includeComments = true
	}
}

// SyntaxError describes the first problem found while parsing a
// compilation unit.
type SyntaxError struct {
	Pos     Position
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

type Parser struct {
	file            string
	includeComments bool
	reader          io.Reader
	input           []byte
	readErr         error
	lexer           *Lexer
	tokens          []Token
	comments        []Token
	pos             int
	errors          []*SyntaxError
}

func (p *Parser) Comments() []Token {
	return p.comments
}

// Errors returns every syntax problem recorded by Finish.
func (p *Parser) Errors() []*SyntaxError {
	return p.errors
}

// Err returns the first syntax error, the read error, or nil.
func (p *Parser) Err() error {
	if p.readErr != nil {
		return p.readErr
	}
	if len(p.errors) > 0 {
		return p.errors[0]
	}
	return nil
}

func ParseCompilationUnit(r io.Reader, opts ...Option) *Parser {
	p := &Parser{reader: r}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse is a shorthand for ParseCompilationUnit followed by Finish.
func Parse(source []byte, opts ...Option) (*Node, error) {
	p := ParseCompilationUnit(bytes.NewReader(source), opts...)
	node := p.Finish()
	return node, p.Err()
}

func (p *Parser) readAll() error {
	if p.input != nil {
		return nil
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		return err
	}
	p.input = data
	return nil
}

// Finish reads the whole input and parses it. It returns nil only when
// reading fails. A tree is returned even when syntax errors were found;
// check Err before trusting it.
func (p *Parser) Finish() *Node {
	if err := p.readAll(); err != nil {
		p.readErr = err
		return nil
	}
	p.lexer = NewLexer(p.input, p.file)
	p.tokens = nil
	p.comments = nil
	p.errors = nil
	p.pos = 0
	p.tokenize()
	return p.parseCompilationUnit()
}

func (p *Parser) tokenize() {
	var pendingDoc string
	for {
		tok := p.lexer.NextToken()
		switch tok.Kind {
		case TokenWhitespace:
			continue
		case TokenComment, TokenLineComment:
			if p.includeComments {
				p.comments = append(p.comments, tok)
			}
			if isDocComment(tok) {
				pendingDoc = tok.Literal
			}
			continue
		case TokenError:
			p.fail(tok.Span.Start, fmt.Sprintf("unexpected %s", describeBadToken(tok.Literal)))
			continue
		}
		tok.Doc = pendingDoc
		pendingDoc = ""
		p.tokens = append(p.tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
}

func isDocComment(tok Token) bool {
	return tok.Kind == TokenComment && strings.HasPrefix(tok.Literal, "/**") && tok.Literal != "/**/"
}

func describeBadToken(literal string) string {
	switch {
	case strings.HasPrefix(literal, "/*"):
		return "unterminated comment"
	case strings.HasPrefix(literal, `"`):
		return "unterminated string literal"
	case strings.HasPrefix(literal, "'"):
		return "unterminated character literal"
	}
	return fmt.Sprintf("character %q", literal)
}

func (p *Parser) fail(pos Position, msg string) {
	p.errors = append(p.errors, &SyntaxError{Pos: pos, Message: msg})
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		if len(p.tokens) > 0 {
			return p.tokens[len(p.tokens)-1]
		}
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) && tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

// expect consumes a token of the given kind or records an error and
// leaves the position unchanged.
func (p *Parser) expect(kind TokenKind) *Token {
	tok := p.peek()
	if tok.Kind == kind {
		p.advance()
		return &tok
	}
	p.fail(tok.Span.Start, fmt.Sprintf("expected %s, got %s", kind, describe(tok)))
	return nil
}

func (p *Parser) expectIdentifier() *Token {
	if p.isIdentifierLike() {
		tok := p.advance()
		return &tok
	}
	tok := p.peek()
	p.fail(tok.Span.Start, fmt.Sprintf("expected identifier, got %s", describe(tok)))
	return nil
}

func describe(tok Token) string {
	if tok.Kind == TokenEOF {
		return "end of file"
	}
	return fmt.Sprintf("%q", tok.Literal)
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

// mustProgress returns a function that checks if the parser has advanced.
// Call it at the start of a loop iteration, then call the returned function
// at the end to break if no progress was made.
func (p *Parser) mustProgress() func() bool {
	saved := p.pos
	return func() bool {
		if p.pos == saved {
			if !p.check(TokenEOF) {
				p.advance()
			}
			return false
		}
		return true
	}
}

func (p *Parser) isIdentifierLike() bool {
	return isIdentifierKind(p.peek().Kind)
}

func isIdentifierKind(kind TokenKind) bool {
	switch kind {
	case TokenIdent, TokenRecord, TokenSealed, TokenNonSealed, TokenPermits:
		return true
	}
	return false
}

func (p *Parser) startNode(kind NodeKind) *Node {
	return &Node{
		Kind: kind,
		Span: Span{Start: p.peek().Span.Start},
	}
}

func (p *Parser) finishNode(n *Node) *Node {
	if p.pos > 0 && p.pos <= len(p.tokens) {
		n.Span.End = p.tokens[p.pos-1].Span.End
	} else if len(p.tokens) > 0 {
		n.Span.End = p.tokens[len(p.tokens)-1].Span.End
	}
	return n
}

func (p *Parser) identNode(tok *Token) *Node {
	if tok == nil {
		return nil
	}
	return &Node{Kind: KindIdentifier, Token: tok, Span: tok.Span}
}

func (p *Parser) errorNode(msg string, recoverTo []TokenKind, expected ...TokenKind) *Node {
	tok := p.peek()
	p.fail(tok.Span.Start, fmt.Sprintf("%s, got %s", msg, describe(tok)))
	node := &Node{
		Kind: KindError,
		Span: Span{Start: tok.Span.Start, End: tok.Span.End},
		Error: &Error{
			Message:  msg,
			Expected: expected,
			Got:      &tok,
		},
	}
	p.recoverTo(recoverTo)
	return node
}

func (p *Parser) recoverTo(kinds []TokenKind) {
	if !p.check(TokenEOF) {
		p.advance()
	}
	if len(kinds) == 0 {
		return
	}
	for !p.check(TokenEOF) {
		if p.match(kinds...) {
			return
		}
		p.advance()
	}
}

func (p *Parser) parseCompilationUnit() *Node {
	node := p.startNode(KindCompilationUnit)

	if p.check(TokenPackage) || p.isAnnotatedPackage() {
		node.AddChild(p.parsePackageDecl())
	}

	for p.check(TokenImport) || p.check(TokenSemicolon) {
		if p.check(TokenSemicolon) {
			p.advance()
			continue
		}
		node.AddChild(p.parseImportDecl())
	}

	for !p.check(TokenEOF) {
		if p.check(TokenSemicolon) {
			p.advance()
			continue
		}
		node.AddChild(p.parseTypeDecl())
	}

	return p.finishNode(node)
}

func (p *Parser) isAnnotatedPackage() bool {
	if !p.check(TokenAt) || p.peekN(1).Kind == TokenInterface {
		return false
	}
	save := p.pos
	saveErrors := len(p.errors)
	for p.check(TokenAt) {
		p.parseAnnotation()
	}
	result := p.check(TokenPackage)
	p.pos = save
	p.errors = p.errors[:saveErrors]
	return result
}

func (p *Parser) parsePackageDecl() *Node {
	node := p.startNode(KindPackageDecl)
	node.Doc = p.peek().Doc

	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}

	p.expect(TokenPackage)
	node.AddChild(p.parseQualifiedName())
	p.expect(TokenSemicolon)

	return p.finishNode(node)
}

func (p *Parser) parseImportDecl() *Node {
	node := p.startNode(KindImportDecl)
	p.expect(TokenImport)

	if p.check(TokenStatic) {
		tok := p.advance()
		node.AddChild(p.identNode(&tok))
	}

	node.AddChild(p.parseQualifiedName())

	if p.check(TokenDot) && p.peekN(1).Literal == "*" {
		p.advance()
		tok := p.advance()
		node.AddChild(p.identNode(&tok))
	}

	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseQualifiedName() *Node {
	node := p.startNode(KindQualifiedName)

	tok := p.expectIdentifier()
	if tok == nil {
		return p.errorNode("expected qualified name", nil)
	}
	node.AddChild(p.identNode(tok))

	for p.check(TokenDot) && isIdentifierKind(p.peekN(1).Kind) {
		p.advance()
		tok := p.advance()
		node.AddChild(p.identNode(&tok))
	}

	return p.finishNode(node)
}

var typeDeclRecovery = []TokenKind{
	TokenAt, TokenPublic, TokenPrivate, TokenProtected,
	TokenAbstract, TokenStatic, TokenFinal, TokenStrictfp,
	TokenClass, TokenInterface, TokenEnum,
}

// isTypeDeclStart reports whether the current token, after modifiers,
// begins a class, interface, enum, record or annotation declaration.
func (p *Parser) isTypeDeclStart() bool {
	switch p.peek().Kind {
	case TokenClass, TokenInterface, TokenEnum:
		return true
	case TokenRecord:
		return isIdentifierKind(p.peekN(1).Kind)
	case TokenAt:
		return p.peekN(1).Kind == TokenInterface
	}
	return false
}

func (p *Parser) parseTypeDecl() *Node {
	doc := p.peek().Doc
	modifiers := p.parseModifiers()

	if !p.isTypeDeclStart() {
		return p.errorNode("expected class, interface, enum, record or @interface", typeDeclRecovery)
	}
	return p.parseTypeDeclBody(doc, modifiers)
}

func (p *Parser) parseTypeDeclBody(doc string, modifiers *Node) *Node {
	var node *Node
	switch p.peek().Kind {
	case TokenClass:
		node = p.parseClassDecl(modifiers)
	case TokenInterface:
		node = p.parseInterfaceDecl(modifiers)
	case TokenEnum:
		node = p.parseEnumDecl(modifiers)
	case TokenRecord:
		node = p.parseRecordDecl(modifiers)
	default:
		node = p.parseAnnotationDecl(modifiers)
	}
	node.Doc = doc
	return node
}

func (p *Parser) parseModifiers() *Node {
	node := p.startNode(KindModifiers)

	for {
		switch p.peek().Kind {
		case TokenAt:
			if p.peekN(1).Kind == TokenInterface {
				return p.finishNode(node)
			}
			node.AddChild(p.parseAnnotation())
		case TokenPublic, TokenProtected, TokenPrivate,
			TokenAbstract, TokenStatic, TokenFinal,
			TokenStrictfp, TokenNative, TokenSynchronized,
			TokenTransient, TokenVolatile, TokenDefault,
			TokenSealed, TokenNonSealed:
			if p.peek().Kind == TokenSealed || p.peek().Kind == TokenNonSealed {
				// "sealed" is only a modifier when a declaration follows.
				next := p.peekN(1).Kind
				if next == TokenLParen || next == TokenAssign || next == TokenSemicolon {
					return p.finishNode(node)
				}
			}
			tok := p.advance()
			node.AddChild(p.identNode(&tok))
		default:
			return p.finishNode(node)
		}
	}
}

// HasModifier reports whether a KindModifiers node carries the keyword.
func (n *Node) HasModifier(keyword string) bool {
	if n == nil {
		return false
	}
	for _, child := range n.Children {
		if child.Kind == KindIdentifier && child.TokenLiteral() == keyword {
			return true
		}
	}
	return false
}

func (p *Parser) parseAnnotation() *Node {
	node := p.startNode(KindAnnotation)
	p.expect(TokenAt)
	node.AddChild(p.parseQualifiedName())

	if p.check(TokenLParen) {
		p.skipBalanced(TokenLParen, TokenRParen)
	}

	return p.finishNode(node)
}

// skipBalanced consumes an open token and everything up to and including
// its matching close token.
func (p *Parser) skipBalanced(open, close TokenKind) {
	start := p.peek()
	p.expect(open)
	depth := 1
	for depth > 0 {
		switch p.peek().Kind {
		case TokenEOF:
			p.fail(start.Span.Start, fmt.Sprintf("unclosed %s", open))
			return
		case open:
			depth++
		case close:
			depth--
		}
		p.advance()
	}
}

func (p *Parser) parseTypeList(kind NodeKind, separator TokenKind) *Node {
	node := p.startNode(kind)
	p.advance()
	for {
		progress := p.mustProgress()
		node.AddChild(p.parseType())
		if !p.check(separator) {
			break
		}
		p.advance()
		if !progress() {
			break
		}
	}
	return p.finishNode(node)
}

func (p *Parser) parseClassDecl(modifiers *Node) *Node {
	node := p.startNode(KindClassDecl)
	node.AddChild(modifiers)

	p.expect(TokenClass)
	tok := p.expectIdentifier()
	node.AddChild(p.identNode(tok))

	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}
	if p.check(TokenExtends) {
		node.AddChild(p.parseTypeList(KindExtendsClause, TokenComma))
	}
	if p.check(TokenImplements) {
		node.AddChild(p.parseTypeList(KindImplementsClause, TokenComma))
	}
	if p.check(TokenPermits) {
		node.AddChild(p.parseTypeList(KindPermitsClause, TokenComma))
	}

	node.AddChild(p.parseClassBody(node.Name()))
	return p.finishNode(node)
}

func (p *Parser) parseInterfaceDecl(modifiers *Node) *Node {
	node := p.startNode(KindInterfaceDecl)
	node.AddChild(modifiers)

	p.expect(TokenInterface)
	tok := p.expectIdentifier()
	node.AddChild(p.identNode(tok))

	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}
	if p.check(TokenExtends) {
		node.AddChild(p.parseTypeList(KindExtendsClause, TokenComma))
	}
	if p.check(TokenPermits) {
		node.AddChild(p.parseTypeList(KindPermitsClause, TokenComma))
	}

	node.AddChild(p.parseClassBody(node.Name()))
	return p.finishNode(node)
}

func (p *Parser) parseEnumDecl(modifiers *Node) *Node {
	node := p.startNode(KindEnumDecl)
	node.AddChild(modifiers)

	p.expect(TokenEnum)
	tok := p.expectIdentifier()
	node.AddChild(p.identNode(tok))

	if p.check(TokenImplements) {
		node.AddChild(p.parseTypeList(KindImplementsClause, TokenComma))
	}

	body := p.startNode(KindClassBody)
	p.expect(TokenLBrace)

	for p.isIdentifierLike() || p.check(TokenAt) {
		progress := p.mustProgress()
		body.AddChild(p.parseEnumConstant())
		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !progress() {
			break
		}
	}

	if p.check(TokenSemicolon) {
		p.advance()
		p.parseMembers(body, node.Name())
	}

	p.expect(TokenRBrace)
	node.AddChild(p.finishNode(body))
	return p.finishNode(node)
}

func (p *Parser) parseEnumConstant() *Node {
	node := p.startNode(KindEnumConstant)
	node.Doc = p.peek().Doc

	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}

	tok := p.expectIdentifier()
	node.AddChild(p.identNode(tok))

	if p.check(TokenLParen) {
		p.skipBalanced(TokenLParen, TokenRParen)
	}
	if p.check(TokenLBrace) {
		node.AddChild(p.parseClassBody(""))
	}

	return p.finishNode(node)
}

func (p *Parser) parseRecordDecl(modifiers *Node) *Node {
	node := p.startNode(KindRecordDecl)
	node.AddChild(modifiers)

	p.expect(TokenRecord)
	tok := p.expectIdentifier()
	node.AddChild(p.identNode(tok))

	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}

	node.AddChild(p.parseParameters())

	if p.check(TokenImplements) {
		node.AddChild(p.parseTypeList(KindImplementsClause, TokenComma))
	}

	node.AddChild(p.parseClassBody(node.Name()))
	return p.finishNode(node)
}

func (p *Parser) parseAnnotationDecl(modifiers *Node) *Node {
	node := p.startNode(KindAnnotationDecl)
	node.AddChild(modifiers)

	p.expect(TokenAt)
	p.expect(TokenInterface)
	tok := p.expectIdentifier()
	node.AddChild(p.identNode(tok))

	node.AddChild(p.parseClassBody(node.Name()))
	return p.finishNode(node)
}

func (p *Parser) parseTypeParameters() *Node {
	node := p.startNode(KindTypeParameters)
	p.expect(TokenLT)

	for {
		progress := p.mustProgress()
		node.AddChild(p.parseTypeParameter())
		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !progress() {
			break
		}
	}

	p.expect(TokenGT)
	return p.finishNode(node)
}

func (p *Parser) parseTypeParameter() *Node {
	node := p.startNode(KindTypeParameter)

	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}

	tok := p.expectIdentifier()
	node.AddChild(p.identNode(tok))

	if p.check(TokenExtends) {
		node.AddChild(p.parseTypeList(KindExtendsClause, TokenAmp))
	}

	return p.finishNode(node)
}

// parseType parses a primitive or reference type with optional type
// arguments and array dimensions. Each "[]" wraps the result in a
// KindArrayType node.
func (p *Parser) parseType() *Node {
	node := p.startNode(KindType)

	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}

	switch {
	case p.peek().Kind.IsPrimitive() || p.check(TokenVoid):
		tok := p.advance()
		node.AddChild(p.identNode(&tok))
	case p.isIdentifierLike():
		node.AddChild(p.parseQualifiedName())
		if p.check(TokenLT) {
			node.AddChild(p.parseTypeArguments())
		}
		// Outer<T>.Inner<U>
		for p.check(TokenDot) && isIdentifierKind(p.peekN(1).Kind) {
			p.advance()
			node.AddChild(p.parseQualifiedName())
			if p.check(TokenLT) {
				node.AddChild(p.parseTypeArguments())
			}
		}
	default:
		return p.errorNode("expected type", []TokenKind{TokenIdent, TokenSemicolon, TokenRParen, TokenComma, TokenRBrace})
	}

	return p.parseDims(p.finishNode(node))
}

// parseDims wraps typ once for every following "[]".
func (p *Parser) parseDims(typ *Node) *Node {
	for p.check(TokenLBracket) || (p.check(TokenAt) && p.hasAnnotatedDim()) {
		progress := p.mustProgress()
		wrapper := &Node{Kind: KindArrayType, Span: Span{Start: typ.Span.Start}}
		for p.check(TokenAt) {
			wrapper.AddChild(p.parseAnnotation())
		}
		p.expect(TokenLBracket)
		p.expect(TokenRBracket)
		wrapper.AddChild(typ)
		typ = p.finishNode(wrapper)
		if !progress() {
			break
		}
	}
	return typ
}

func (p *Parser) hasAnnotatedDim() bool {
	save := p.pos
	saveErrors := len(p.errors)
	for p.check(TokenAt) {
		p.parseAnnotation()
	}
	result := p.check(TokenLBracket)
	p.pos = save
	p.errors = p.errors[:saveErrors]
	return result
}

func (p *Parser) parseTypeArguments() *Node {
	node := p.startNode(KindTypeArguments)
	p.expect(TokenLT)

	if p.check(TokenGT) {
		p.advance()
		return p.finishNode(node)
	}

	for {
		progress := p.mustProgress()
		node.AddChild(p.parseTypeArgument())
		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !progress() {
			break
		}
	}

	p.expect(TokenGT)
	return p.finishNode(node)
}

func (p *Parser) parseTypeArgument() *Node {
	if p.check(TokenQuestion) {
		return p.parseWildcard()
	}
	return p.parseType()
}

func (p *Parser) parseWildcard() *Node {
	node := p.startNode(KindWildcard)
	p.expect(TokenQuestion)

	if p.check(TokenExtends) || p.check(TokenSuper) {
		tok := p.advance()
		node.AddChild(p.identNode(&tok))
		node.AddChild(p.parseType())
	}

	return p.finishNode(node)
}

func (p *Parser) parseClassBody(className string) *Node {
	node := p.startNode(KindClassBody)
	p.expect(TokenLBrace)
	p.parseMembers(node, className)
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseMembers(body *Node, className string) {
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		body.AddChild(p.parseClassMember(className))
		if !progress() {
			break
		}
	}
}

var memberRecovery = []TokenKind{
	TokenAt, TokenPublic, TokenPrivate, TokenProtected,
	TokenAbstract, TokenStatic, TokenFinal, TokenNative,
	TokenSynchronized, TokenTransient, TokenVolatile,
	TokenStrictfp, TokenDefault, TokenClass, TokenInterface, TokenEnum,
	TokenVoid, TokenBoolean, TokenByte, TokenChar, TokenShort,
	TokenInt, TokenLong, TokenFloat, TokenDouble, TokenRBrace, TokenSemicolon,
}

func (p *Parser) parseClassMember(className string) *Node {
	if p.check(TokenSemicolon) {
		p.advance()
		return nil
	}

	if p.check(TokenLBrace) || (p.check(TokenStatic) && p.peekN(1).Kind == TokenLBrace) {
		node := p.startNode(KindInitializer)
		if p.check(TokenStatic) {
			tok := p.advance()
			node.AddChild(p.identNode(&tok))
		}
		node.AddChild(p.parseBlock())
		return p.finishNode(node)
	}

	doc := p.peek().Doc
	modifiers := p.parseModifiers()

	if p.isTypeDeclStart() {
		return p.parseTypeDeclBody(doc, modifiers)
	}

	var node *Node
	switch {
	case p.check(TokenLT):
		typeParams := p.parseTypeParameters()
		if p.isIdentifierLike() && p.peekN(1).Kind == TokenLParen {
			node = p.parseConstructor(modifiers, typeParams)
		} else {
			node = p.parseMethod(modifiers, typeParams, p.parseType())
		}
	case p.isIdentifierLike() && p.peekN(1).Kind == TokenLParen:
		node = p.parseConstructor(modifiers, nil)
	case p.isIdentifierLike() && p.peekN(1).Kind == TokenLBrace && p.peek().Literal == className:
		node = p.parseCompactConstructor(modifiers)
	default:
		if !p.isIdentifierLike() && !p.peek().Kind.IsPrimitive() && !p.check(TokenVoid) {
			return p.errorNode("expected member declaration", memberRecovery)
		}
		typ := p.parseType()
		if !p.isIdentifierLike() {
			return p.errorNode("expected member name", memberRecovery)
		}
		if p.peekN(1).Kind == TokenLParen {
			node = p.parseMethod(modifiers, nil, typ)
		} else {
			node = p.parseField(modifiers, typ)
		}
	}

	node.Doc = doc
	return node
}

func (p *Parser) parseConstructor(modifiers *Node, typeParams *Node) *Node {
	node := p.startNode(KindConstructorDecl)
	node.AddChild(modifiers)
	node.AddChild(typeParams)

	tok := p.expectIdentifier()
	node.AddChild(p.identNode(tok))
	node.AddChild(p.parseParameters())

	if p.check(TokenThrows) {
		node.AddChild(p.parseTypeList(KindThrowsList, TokenComma))
	}

	node.AddChild(p.parseBlock())
	return p.finishNode(node)
}

func (p *Parser) parseCompactConstructor(modifiers *Node) *Node {
	node := p.startNode(KindConstructorDecl)
	node.AddChild(modifiers)

	tok := p.expectIdentifier()
	node.AddChild(p.identNode(tok))
	node.AddChild(p.parseBlock())
	return p.finishNode(node)
}

func (p *Parser) parseMethod(modifiers *Node, typeParams *Node, returnType *Node) *Node {
	node := p.startNode(KindMethodDecl)
	node.AddChild(modifiers)
	node.AddChild(typeParams)

	tok := p.expectIdentifier()
	name := p.identNode(tok)
	params := p.parseParameters()

	// int foo()[] declares an array return type
	returnType = p.parseDims(returnType)
	node.AddChild(returnType)
	node.AddChild(name)
	node.AddChild(params)

	if p.check(TokenThrows) {
		node.AddChild(p.parseTypeList(KindThrowsList, TokenComma))
	}

	switch {
	case p.check(TokenLBrace):
		node.AddChild(p.parseBlock())
	case p.check(TokenDefault):
		// annotation element default value
		p.advance()
		p.parseInitializer()
		p.expect(TokenSemicolon)
	default:
		p.expect(TokenSemicolon)
	}

	return p.finishNode(node)
}

func (p *Parser) parseField(modifiers *Node, typ *Node) *Node {
	node := p.startNode(KindFieldDecl)
	node.AddChild(modifiers)
	node.AddChild(typ)

	for {
		progress := p.mustProgress()
		decl := p.startNode(KindVarDeclarator)
		tok := p.expectIdentifier()
		decl.AddChild(p.identNode(tok))

		if p.check(TokenLBracket) {
			// int a[] declares its own array type
			decl.AddChild(p.parseDims(typ))
		}

		if p.check(TokenAssign) {
			p.advance()
			decl.AddChild(p.parseInitializer())
		}
		node.AddChild(p.finishNode(decl))

		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !progress() {
			break
		}
	}

	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

// parseInitializer consumes a variable initializer up to the next
// top-level ',' or ';'. Literals (optionally negated) become KindLiteral,
// dotted names become KindQualifiedName, and anything else is kept as an
// opaque KindExpr holding the source text.
func (p *Parser) parseInitializer() *Node {
	start := p.pos
	startTok := p.peek()
	depth := 0
loop:
	for {
		switch p.peek().Kind {
		case TokenEOF:
			break loop
		case TokenLParen, TokenLBrace, TokenLBracket:
			depth++
		case TokenRParen, TokenRBrace, TokenRBracket:
			if depth == 0 {
				break loop
			}
			depth--
		case TokenComma, TokenSemicolon:
			if depth == 0 {
				break loop
			}
		case TokenLT:
			if n := p.typeArgumentsLength(); n > 0 {
				p.pos += n
				continue
			}
		}
		p.advance()
	}

	toks := p.tokens[start:p.pos]
	if len(toks) == 0 {
		return p.errorNode("expected initializer", nil)
	}
	if depth > 0 {
		p.fail(startTok.Span.Start, "unbalanced initializer")
	}

	span := Span{Start: toks[0].Span.Start, End: toks[len(toks)-1].Span.End}

	switch {
	case len(toks) == 1 && toks[0].Kind.IsLiteral():
		tok := toks[0]
		return &Node{Kind: KindLiteral, Token: &tok, Span: span}
	case len(toks) == 2 && toks[0].Kind == TokenMinus &&
		(toks[1].Kind == TokenIntLiteral || toks[1].Kind == TokenFloatLiteral):
		tok := Token{Kind: toks[1].Kind, Span: span, Literal: "-" + toks[1].Literal}
		return &Node{Kind: KindLiteral, Token: &tok, Span: span}
	case isDottedName(toks):
		node := &Node{Kind: KindQualifiedName, Span: span}
		for i := 0; i < len(toks); i += 2 {
			tok := toks[i]
			node.AddChild(p.identNode(&tok))
		}
		return node
	}

	text := string(p.input[span.Start.Offset:span.End.Offset])
	tok := Token{Kind: TokenOperator, Span: span, Literal: text}
	return &Node{Kind: KindExpr, Token: &tok, Span: span}
}

// typeArgumentsLength returns how many tokens the '<' at the current
// position spans if it opens type arguments such as "new HashMap<K, V>",
// or zero when it reads as a comparison.
func (p *Parser) typeArgumentsLength() int {
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		tok := p.tokens[i]
		switch {
		case tok.Kind == TokenLT:
			depth++
		case tok.Kind == TokenGT:
			depth--
			if depth == 0 {
				return i - p.pos + 1
			}
		case isIdentifierKind(tok.Kind), tok.Kind.IsPrimitive():
		case tok.Kind == TokenDot, tok.Kind == TokenComma, tok.Kind == TokenQuestion,
			tok.Kind == TokenExtends, tok.Kind == TokenSuper, tok.Kind == TokenAmp,
			tok.Kind == TokenLBracket, tok.Kind == TokenRBracket, tok.Kind == TokenAt:
		default:
			return 0
		}
	}
	return 0
}

func isDottedName(toks []Token) bool {
	if len(toks)%2 == 0 {
		return false
	}
	for i, tok := range toks {
		if i%2 == 0 && !isIdentifierKind(tok.Kind) {
			return false
		}
		if i%2 == 1 && tok.Kind != TokenDot {
			return false
		}
	}
	return true
}

func (p *Parser) parseParameters() *Node {
	node := p.startNode(KindParameters)
	p.expect(TokenLParen)

	for !p.check(TokenRParen) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseParameter())
		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !progress() {
			break
		}
	}

	p.expect(TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parseParameter() *Node {
	node := p.startNode(KindParameter)
	node.AddChild(p.parseModifiers())

	typ := p.parseType()
	var ellipsis *Node
	if p.check(TokenEllipsis) {
		tok := p.advance()
		ellipsis = &Node{Kind: KindIdentifier, Token: &tok, Span: tok.Span}
	}

	tok := p.expectIdentifier()
	if tok != nil && tok.Literal == "this" {
		node.Kind = KindReceiverParameter
	}
	if tok != nil && p.check(TokenDot) && p.peekN(1).Literal == "this" {
		// Outer.this receiver
		p.advance()
		t := p.advance()
		tok = &t
		node.Kind = KindReceiverParameter
	}

	node.AddChild(p.parseDims(typ))
	node.AddChild(p.identNode(tok))
	node.AddChild(ellipsis)
	return p.finishNode(node)
}

// IsVarargs reports whether a KindParameter node was declared with "...".
func (n *Node) IsVarargs() bool {
	for _, child := range n.Children {
		if child.Kind == KindIdentifier && child.TokenLiteral() == "..." {
			return true
		}
	}
	return false
}

// parseBlock skips a brace-delimited body. Bodies are not needed for stub
// generation, so only their span is kept.
func (p *Parser) parseBlock() *Node {
	node := p.startNode(KindBlock)
	if !p.check(TokenLBrace) {
		p.expect(TokenLBrace)
		return p.finishNode(node)
	}
	p.skipBalanced(TokenLBrace, TokenRBrace)
	return p.finishNode(node)
}
