package parser

import "strings"

type NodeKind int

const (
	KindError NodeKind = iota

	// Compilation unit level
	KindCompilationUnit
	KindPackageDecl
	KindImportDecl

	// Type declarations
	KindClassDecl
	KindInterfaceDecl
	KindEnumDecl
	KindRecordDecl
	KindAnnotationDecl
	KindClassBody

	// Type clauses
	KindExtendsClause
	KindImplementsClause
	KindPermitsClause

	// Members
	KindFieldDecl
	KindVarDeclarator
	KindEnumConstant
	KindMethodDecl
	KindConstructorDecl
	KindInitializer

	// Type and modifiers
	KindModifiers
	KindAnnotation
	KindTypeParameters
	KindTypeParameter
	KindTypeArguments
	KindType
	KindArrayType
	KindWildcard

	// Method components
	KindParameters
	KindParameter
	KindReceiverParameter
	KindThrowsList
	KindBlock

	// Initializer values
	KindLiteral
	KindExpr
	KindIdentifier
	KindQualifiedName
)

var nodeKindNames = map[NodeKind]string{
	KindError:             "Error",
	KindCompilationUnit:   "CompilationUnit",
	KindPackageDecl:       "PackageDecl",
	KindImportDecl:        "ImportDecl",
	KindClassDecl:         "ClassDecl",
	KindInterfaceDecl:     "InterfaceDecl",
	KindEnumDecl:          "EnumDecl",
	KindRecordDecl:        "RecordDecl",
	KindAnnotationDecl:    "AnnotationDecl",
	KindClassBody:         "ClassBody",
	KindExtendsClause:     "ExtendsClause",
	KindImplementsClause:  "ImplementsClause",
	KindPermitsClause:     "PermitsClause",
	KindFieldDecl:         "FieldDecl",
	KindVarDeclarator:     "VarDeclarator",
	KindEnumConstant:      "EnumConstant",
	KindMethodDecl:        "MethodDecl",
	KindConstructorDecl:   "ConstructorDecl",
	KindInitializer:       "Initializer",
	KindModifiers:         "Modifiers",
	KindAnnotation:        "Annotation",
	KindTypeParameters:    "TypeParameters",
	KindTypeParameter:     "TypeParameter",
	KindTypeArguments:     "TypeArguments",
	KindType:              "Type",
	KindArrayType:         "ArrayType",
	KindWildcard:          "Wildcard",
	KindParameters:        "Parameters",
	KindParameter:         "Parameter",
	KindReceiverParameter: "ReceiverParameter",
	KindThrowsList:        "ThrowsList",
	KindBlock:             "Block",
	KindLiteral:           "Literal",
	KindExpr:              "Expr",
	KindIdentifier:        "Identifier",
	KindQualifiedName:     "QualifiedName",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsTypeDecl reports whether k is one of the top-level declaration kinds.
func (k NodeKind) IsTypeDecl() bool {
	switch k {
	case KindClassDecl, KindInterfaceDecl, KindEnumDecl, KindRecordDecl, KindAnnotationDecl:
		return true
	}
	return false
}

type Error struct {
	Message  string
	Expected []TokenKind
	Got      *Token
}

// Node is a syntax tree node. Doc is the raw doc comment attached to a
// declaration node, including its "/**" and "*/" delimiters.
type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
	Error    *Error
	Doc      string
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Name returns the first identifier child of n, which for declarations
// is the declared name.
func (n *Node) Name() string {
	if id := n.FirstChildOfKind(KindIdentifier); id != nil {
		return id.TokenLiteral()
	}
	return ""
}

// QualifiedName joins the identifiers of a KindQualifiedName node.
func (n *Node) QualifiedName() string {
	var parts []string
	for _, child := range n.Children {
		if child.Kind == KindIdentifier && child.Token != nil {
			parts = append(parts, child.Token.Literal)
		}
	}
	return strings.Join(parts, ".")
}

// Walk calls fn for n and every descendant in depth-first order until fn
// returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

func (n *Node) String() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0)
	return sb.String()
}

func (n *Node) writeIndent(sb *strings.Builder, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.Kind.String())
	if n.Token != nil {
		sb.WriteString(" ")
		sb.WriteString(n.Token.Literal)
	}
	if n.Error != nil {
		sb.WriteString(" ERROR: ")
		sb.WriteString(n.Error.Message)
	}
	sb.WriteString("\n")
	for _, child := range n.Children {
		child.writeIndent(sb, indent+1)
	}
}
