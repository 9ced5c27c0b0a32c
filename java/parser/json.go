package parser

import "encoding/json"

// jsonNode is the shape of a syntax tree dumped by "java2py inspect --tree".
type jsonNode struct {
	Kind     string      `json:"kind"`
	Line     int         `json:"line,omitempty"`
	Token    string      `json:"token,omitempty"`
	Doc      bool        `json:"doc,omitempty"`
	Error    string      `json:"error,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		Kind: n.Kind.String(),
		Line: n.Span.Start.Line,
		Doc:  n.Doc != "",
	}

	// Blocks and opaque expressions carry no structure worth dumping.
	if n.Token != nil && n.Kind != KindExpr {
		jn.Token = n.Token.Literal
	}

	if n.Error != nil {
		jn.Error = n.Error.Message
	}

	for _, child := range n.Children {
		jn.Children = append(jn.Children, child.toJSON())
	}

	return jn
}
