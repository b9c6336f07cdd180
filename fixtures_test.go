package inject

import "errors"

// Test types shared by the registry and resolver tests.

type IBasic interface {
	Kind() string
}

type Basic struct {
	kind string
}

func (b *Basic) Kind() string { return b.kind }

func NewBasic() *Basic {
	return &Basic{kind: "basic"}
}

// BasicSub derives from Basic by embedding it.
type BasicSub struct {
	Basic

	Level int
}

func NewBasicSub() *BasicSub {
	return &BasicSub{Basic: Basic{kind: "sub"}, Level: 2}
}

// ASecondBasic implements IBasic but does not derive from Basic.
type ASecondBasic struct {
	kind string
}

func (b *ASecondBasic) Kind() string { return b.kind }

func NewASecondBasic() *ASecondBasic {
	return &ASecondBasic{kind: "second"}
}

type IComplex interface {
	Basic() IBasic
}

type Complex struct {
	MyBasic IBasic
}

func (c *Complex) Basic() IBasic { return c.MyBasic }

func NewComplex(basic IBasic) *Complex {
	return &Complex{MyBasic: basic}
}

type IMoreComplex interface {
	Basic() IBasic
	Complex() IComplex
}

type MoreComplex struct {
	MyBasic   IBasic
	MyComplex IComplex
}

func (m *MoreComplex) Basic() IBasic     { return m.MyBasic }
func (m *MoreComplex) Complex() IComplex { return m.MyComplex }

func NewMoreComplex(basic IBasic, complex IComplex) *MoreComplex {
	return &MoreComplex{MyBasic: basic, MyComplex: complex}
}

type IMultiConstructor interface {
	Source() string
}

type MultiConstructor struct {
	source string
}

func (m *MultiConstructor) Source() string { return m.source }

func NewMultiConstructor() *MultiConstructor {
	return &MultiConstructor{source: "none"}
}

func NewMultiConstructorWithDeps(_ IBasic, _ IComplex) *MultiConstructor {
	return &MultiConstructor{source: "basic+complex"}
}

func NewMultiConstructorFromBasic(_ IBasic) *MultiConstructor {
	return &MultiConstructor{source: "basic"}
}

func NewMultiConstructorFromComplex(_ IComplex) *MultiConstructor {
	return &MultiConstructor{source: "complex"}
}

// Report is assembled from its tagged fields.
type Report struct {
	Basic   IBasic   `inject:""`
	Complex IComplex `inject:""`
	Title   string
}

// Ping and Pong depend on each other.
type Ping struct {
	Pong *Pong
}

type Pong struct {
	Ping *Ping
}

func NewPing(p *Pong) *Ping { return &Ping{Pong: p} }
func NewPong(p *Ping) *Pong { return &Pong{Ping: p} }

// Loop depends on itself.
type Loop struct {
	Next *Loop `inject:""`
}

var errBoom = errors.New("boom")

func NewFailingComplex(_ IBasic) (*Complex, error) {
	return nil, errBoom
}
