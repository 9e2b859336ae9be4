package di_test

import (
	"sync/atomic"

	"github.com/sghaida/wired/di"
)

// Reader / Parser / Service mirror a small file-processing app:
// Service needs Parser and Reader, Parser needs Reader.
type Reader interface{ Read() string }

type Parser interface{ Parse() string }

type Service interface{ Run() string }

type ReaderImpl struct {
	di.Managed
}

func (r *ReaderImpl) Read() string { return "line" }

type ParserImpl struct {
	di.Managed
	Reader Reader
}

func (p *ParserImpl) SetReader(r Reader) { p.Reader = r }

func (p *ParserImpl) Parse() string { return "parsed(" + p.Reader.Read() + ")" }

type ServiceImpl struct {
	di.Managed
	Parser Parser
	Reader Reader
}

func (s *ServiceImpl) SetParser(p Parser) { s.Parser = p }

func (s *ServiceImpl) SetReader(r Reader) { s.Reader = r }

func (s *ServiceImpl) Run() string { return s.Parser.Parse() }

// RogueReader implements Reader but lacks the component marker.
type RogueReader struct{}

func (*RogueReader) Read() string { return "rogue" }

// ValueReader is a marked value type with no dependencies.
type ValueReader struct{ di.Managed }

func (ValueReader) Read() string { return "value" }

// counts records how often each constructor ran.
type counts struct {
	reader  atomic.Int32
	parser  atomic.Int32
	service atomic.Int32
}

func (c *counts) newReader() *ReaderImpl {
	c.reader.Add(1)
	return &ReaderImpl{}
}

func (c *counts) newParser() *ParserImpl {
	c.parser.Add(1)
	return &ParserImpl{}
}

func (c *counts) newService() *ServiceImpl {
	c.service.Add(1)
	return &ServiceImpl{}
}

func readerBinding(c *counts) di.Binding {
	return di.Bind[Reader](di.Provide(c.newReader))
}

func parserBinding(c *counts) di.Binding {
	return di.Bind[Parser](di.Provide(c.newParser,
		di.Setter("Reader", (*ParserImpl).SetReader),
	))
}

func serviceBinding(c *counts) di.Binding {
	return di.Bind[Service](di.Provide(c.newService,
		di.Setter("Parser", (*ServiceImpl).SetParser),
		di.Setter("Reader", (*ServiceImpl).SetReader),
	))
}

// scenarioTable is {Reader->ReaderImpl, Parser->ParserImpl, Service->ServiceImpl}.
func scenarioTable(c *counts) *di.Table {
	return di.MustTable(readerBinding(c), parserBinding(c), serviceBinding(c))
}

// A and B depend on each other.
type A interface{ B() B }

type B interface{ A() A }

type AImpl struct {
	di.Managed
	b B
}

func (a *AImpl) SetB(b B) { a.b = b }
func (a *AImpl) B() B     { return a.b }

type BImpl struct {
	di.Managed
	a A
}

func (b *BImpl) SetA(a A) { b.a = a }
func (b *BImpl) A() A     { return b.a }

func cycleTable() *di.Table {
	return di.MustTable(
		di.Bind[A](di.Provide(func() *AImpl { return &AImpl{} }, di.Setter("B", (*AImpl).SetB))),
		di.Bind[B](di.Provide(func() *BImpl { return &BImpl{} }, di.Setter("A", (*BImpl).SetA))),
	)
}

// Runner is a second interface implemented by ServiceImpl.
type Runner interface{ Run() string }
