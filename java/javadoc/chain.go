// Package javadoc decodes doc comments into plain text plus the
// @param, @return and @exception hints a Python stub can use.
//
// Decoding runs a Chain of stages. Decode uses the declaration chain
// (marker stripping, tag neutralization, entity unescaping); DecodeMethod
// adds hint absorption and blank-run collapse.
package javadoc

// Hint is the text attached to a block tag. Name is the parameter or
// exception name and is empty for @return.
type Hint struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Text string `json:"text" yaml:"text"`
}

type Documentation struct {
	Raw        string `json:"-" yaml:"-"`
	Text       string `json:"text" yaml:"text"`
	Params     []Hint `json:"params,omitempty" yaml:"params,omitempty"`
	Return     *Hint  `json:"return,omitempty" yaml:"return,omitempty"`
	Exceptions []Hint `json:"exceptions,omitempty" yaml:"exceptions,omitempty"`
}

// IsEmpty reports whether there is neither text nor any hint.
func (d *Documentation) IsEmpty() bool {
	return d == nil || (d.Text == "" && len(d.Params) == 0 && d.Return == nil && len(d.Exceptions) == 0)
}

// Param returns the first hint for the named parameter.
func (d *Documentation) Param(name string) (Hint, bool) {
	if d == nil {
		return Hint{}, false
	}
	for _, h := range d.Params {
		if h.Name == name {
			return h, true
		}
	}
	return Hint{}, false
}

// Stage transforms the text produced by the previous stage. Stages that
// extract hints record them on doc.
type Stage func(text string, doc *Documentation) (string, error)

type Chain struct {
	stages []Stage
}

func NewChain() *Chain {
	return &Chain{}
}

// Then appends stages and returns c.
func (c *Chain) Then(stages ...Stage) *Chain {
	c.stages = append(c.stages, stages...)
	return c
}

func (c *Chain) Len() int {
	return len(c.stages)
}

// Decode runs every stage over raw in order. The first failing stage
// aborts decoding.
func (c *Chain) Decode(raw string) (*Documentation, error) {
	doc := &Documentation{Raw: raw}
	text := raw
	for _, stage := range c.stages {
		var err error
		text, err = stage(text, doc)
		if err != nil {
			return nil, err
		}
	}
	doc.Text = text
	return doc, nil
}

// DeclarationChain returns the chain used for type, field and package
// documentation.
func DeclarationChain() *Chain {
	return NewChain().Then(StripMarkers, Untag, Unescape)
}

// MethodChain returns the chain used for method documentation.
func MethodChain() *Chain {
	return DeclarationChain().Then(AbsorbParams, AbsorbReturn, AbsorbExceptions, CollapseBlankRuns)
}

var (
	declarationChain = DeclarationChain()
	methodChain      = MethodChain()
)

func Decode(raw string) (*Documentation, error) {
	return declarationChain.Decode(raw)
}

func DecodeMethod(raw string) (*Documentation, error) {
	return methodChain.Decode(raw)
}
