package parser

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment
	TokenLineComment

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral
	TokenCharLiteral
	TokenStringLiteral
	TokenTextBlock
	TokenTrue
	TokenFalse
	TokenNull

	// Keywords that matter at the declaration level. Statement keywords
	// only occur inside bodies, which are skipped, and lex as identifiers.
	TokenAbstract
	TokenBoolean
	TokenByte
	TokenChar
	TokenClass
	TokenDefault
	TokenDouble
	TokenEnum
	TokenExtends
	TokenFinal
	TokenFloat
	TokenImplements
	TokenImport
	TokenInt
	TokenInterface
	TokenLong
	TokenNative
	TokenPackage
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenShort
	TokenStatic
	TokenStrictfp
	TokenSuper
	TokenSynchronized
	TokenThrows
	TokenTransient
	TokenVoid
	TokenVolatile

	// Contextual keywords
	TokenRecord
	TokenSealed
	TokenNonSealed
	TokenPermits

	// Punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenEllipsis
	TokenAt
	TokenLT
	TokenGT
	TokenAssign
	TokenQuestion
	TokenAmp
	TokenMinus

	// Any other operator. Only seen inside initializers and bodies.
	TokenOperator
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:           "EOF",
	TokenError:         "Error",
	TokenWhitespace:    "Whitespace",
	TokenComment:       "Comment",
	TokenLineComment:   "LineComment",
	TokenIdent:         "Identifier",
	TokenIntLiteral:    "IntLiteral",
	TokenFloatLiteral:  "FloatLiteral",
	TokenCharLiteral:   "CharLiteral",
	TokenStringLiteral: "StringLiteral",
	TokenTextBlock:     "TextBlock",
	TokenTrue:          "true",
	TokenFalse:         "false",
	TokenNull:          "null",
	TokenAbstract:      "abstract",
	TokenBoolean:       "boolean",
	TokenByte:          "byte",
	TokenChar:          "char",
	TokenClass:         "class",
	TokenDefault:       "default",
	TokenDouble:        "double",
	TokenEnum:          "enum",
	TokenExtends:       "extends",
	TokenFinal:         "final",
	TokenFloat:         "float",
	TokenImplements:    "implements",
	TokenImport:        "import",
	TokenInt:           "int",
	TokenInterface:     "interface",
	TokenLong:          "long",
	TokenNative:        "native",
	TokenPackage:       "package",
	TokenPrivate:       "private",
	TokenProtected:     "protected",
	TokenPublic:        "public",
	TokenShort:         "short",
	TokenStatic:        "static",
	TokenStrictfp:      "strictfp",
	TokenSuper:         "super",
	TokenSynchronized:  "synchronized",
	TokenThrows:        "throws",
	TokenTransient:     "transient",
	TokenVoid:          "void",
	TokenVolatile:      "volatile",
	TokenRecord:        "record",
	TokenSealed:        "sealed",
	TokenNonSealed:     "non-sealed",
	TokenPermits:       "permits",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLBracket:      "[",
	TokenRBracket:      "]",
	TokenSemicolon:     ";",
	TokenComma:         ",",
	TokenDot:           ".",
	TokenEllipsis:      "...",
	TokenAt:            "@",
	TokenLT:            "<",
	TokenGT:            ">",
	TokenAssign:        "=",
	TokenQuestion:      "?",
	TokenAmp:           "&",
	TokenMinus:         "-",
	TokenOperator:      "Operator",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is a lexical token. Doc holds the text of the closest "/**"
// comment that precedes the token with nothing but whitespace, other
// comments or annotations in between. It is only filled in by the parser.
type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
	Doc     string
}

var keywords = map[string]TokenKind{
	"abstract":     TokenAbstract,
	"boolean":      TokenBoolean,
	"byte":         TokenByte,
	"char":         TokenChar,
	"class":        TokenClass,
	"default":      TokenDefault,
	"double":       TokenDouble,
	"enum":         TokenEnum,
	"extends":      TokenExtends,
	"final":        TokenFinal,
	"float":        TokenFloat,
	"implements":   TokenImplements,
	"import":       TokenImport,
	"int":          TokenInt,
	"interface":    TokenInterface,
	"long":         TokenLong,
	"native":       TokenNative,
	"package":      TokenPackage,
	"private":      TokenPrivate,
	"protected":    TokenProtected,
	"public":       TokenPublic,
	"short":        TokenShort,
	"static":       TokenStatic,
	"strictfp":     TokenStrictfp,
	"super":        TokenSuper,
	"synchronized": TokenSynchronized,
	"throws":       TokenThrows,
	"transient":    TokenTransient,
	"void":         TokenVoid,
	"volatile":     TokenVolatile,
	"true":         TokenTrue,
	"false":        TokenFalse,
	"null":         TokenNull,
	"record":       TokenRecord,
	"sealed":       TokenSealed,
	"permits":      TokenPermits,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

// IsPrimitive reports whether k names one of the eight primitive types.
func (k TokenKind) IsPrimitive() bool {
	switch k {
	case TokenBoolean, TokenByte, TokenChar, TokenShort,
		TokenInt, TokenLong, TokenFloat, TokenDouble:
		return true
	}
	return false
}

// IsLiteral reports whether k is a literal token.
func (k TokenKind) IsLiteral() bool {
	switch k {
	case TokenIntLiteral, TokenFloatLiteral, TokenCharLiteral,
		TokenStringLiteral, TokenTextBlock, TokenTrue, TokenFalse, TokenNull:
		return true
	}
	return false
}
