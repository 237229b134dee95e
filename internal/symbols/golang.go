package symbols

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/scanner"
	"go/token"
	"go/types"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/dshills/quickdoc/internal/hover"
)

// GoIndex indexes a single Go source file. Identifiers resolve to their
// declarations using go/types; imports that cannot be loaded leave their
// selectors unresolved but do not fail the index.
type GoIndex struct {
	path  string
	text  string
	spans spans

	fset   *token.FileSet
	file   *token.File
	pkg    *types.Package
	idents map[int]*ast.Ident
	info   *types.Info

	// docs holds title and body per target element ID.
	docs map[string]docEntry
}

type docEntry struct {
	title string
	body  string
}

type goConfig struct {
	importer types.Importer
}

// GoOption configures ParseGo.
type GoOption func(*goConfig)

// WithImporter sets the importer used for type checking. The default reads
// compiler export data.
func WithImporter(imp types.Importer) GoOption {
	return func(c *goConfig) {
		c.importer = imp
	}
}

// ParseGo parses and type-checks text. Syntax errors are tolerated as long
// as a package clause can be read.
func ParseGo(path, text string, opts ...GoOption) (*GoIndex, error) {
	var cfg goConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	fset := token.NewFileSet()
	if cfg.importer == nil {
		cfg.importer = importer.ForCompiler(fset, "gc", nil)
	}
	f, err := parser.ParseFile(fset, path, text, parser.ParseComments)
	if f == nil || f.Name == nil || f.Name.Name == "" || f.Name.Name == "_" {
		if err == nil {
			err = errors.New("missing package clause")
		}
		return nil, errors.Errorf("parsing %s: %w", path, err)
	}

	info := &types.Info{
		Defs:      make(map[*ast.Ident]types.Object),
		Uses:      make(map[*ast.Ident]types.Object),
		Implicits: make(map[ast.Node]types.Object),
	}
	conf := types.Config{
		Importer: cfg.importer,
		Error:    func(error) {},
	}
	pkg, _ := conf.Check(f.Name.Name, fset, []*ast.File{f}, info)

	idx := &GoIndex{
		path:   path,
		text:   text,
		fset:   fset,
		file:   fset.File(f.Pos()),
		pkg:    pkg,
		idents: make(map[int]*ast.Ident),
		info:   info,
		docs:   make(map[string]docEntry),
	}
	idx.spans = scanSpans(path, text)

	ast.Inspect(f, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok {
			idx.idents[idx.file.Offset(id.Pos())] = id
		}
		return true
	})
	idx.collectDocs(f)
	return idx, nil
}

// scanSpans tokenizes text. Positions come from the scanner; ends are
// measured in the source because the scanner strips carriage returns from
// comments and raw strings.
func scanSpans(path, text string) spans {
	fset := token.NewFileSet()
	file := fset.AddFile(path, -1, len(text))

	var s scanner.Scanner
	s.Init(file, []byte(text), nil, scanner.ScanComments)

	var found []span
	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}
		start := file.Offset(pos)
		found = append(found, span{start: start, end: tokenEnd(text, start, tok, lit), kind: tokenKind(tok)})
	}
	return fillGaps(found, len(text))
}

func tokenEnd(text string, start int, tok token.Token, lit string) int {
	rest := text[start:]
	switch {
	case tok == token.COMMENT && strings.HasPrefix(rest, "/*"):
		if i := strings.Index(rest[2:], "*/"); i >= 0 {
			return start + i + 4
		}
		return len(text)
	case tok == token.STRING && strings.HasPrefix(rest, "`"):
		if i := strings.IndexByte(rest[1:], '`'); i >= 0 {
			return start + i + 2
		}
		return len(text)
	case lit != "":
		return min(start+len(lit), len(text))
	default:
		return min(start+len(tok.String()), len(text))
	}
}

func tokenKind(tok token.Token) string {
	switch {
	case tok == token.IDENT:
		return KindIdent
	case tok == token.COMMENT:
		return KindComment
	case tok.IsKeyword():
		return KindKeyword
	case tok.IsLiteral():
		return KindLiteral
	default:
		return KindOperator
	}
}

// Path implements Index.
func (g *GoIndex) Path() string { return g.path }

// ElementAt implements hover.ElementResolver.
func (g *GoIndex) ElementAt(offset int) (hover.Element, bool) {
	s, ok := g.spans.find(offset)
	if !ok {
		return hover.Element{}, false
	}
	return makeElement(g.path, g.text, s), true
}

// ResolveTarget implements hover.ElementResolver. A declared name is its
// own target; a use resolves to its declaration, which for imported and
// predeclared names lives outside the file.
func (g *GoIndex) ResolveTarget(_ int, element hover.Element) (hover.Element, bool) {
	if element.Kind != KindIdent {
		return hover.Element{}, false
	}
	id := g.idents[element.Start]
	if id == nil {
		return hover.Element{}, false
	}
	if obj := g.info.Defs[id]; obj != nil {
		return element, true
	}
	obj := g.info.Uses[id]
	if obj == nil {
		return hover.Element{}, false
	}
	if off, ok := g.localOffset(obj); ok {
		if s, ok := g.spans.find(off); ok {
			return makeElement(g.path, g.text, s), true
		}
		return hover.Element{}, false
	}
	return externalElement(obj), true
}

// Documentation implements Index.
func (g *GoIndex) Documentation(target hover.Element) (string, string, bool) {
	d, ok := g.docs[target.ID]
	if !ok {
		return "", "", false
	}
	return d.title, d.body, true
}

func (g *GoIndex) localOffset(obj types.Object) (int, bool) {
	if obj.Pkg() == nil || obj.Pkg() != g.pkg || !obj.Pos().IsValid() || g.fset.File(obj.Pos()) != g.file {
		return 0, false
	}
	return g.file.Offset(obj.Pos()), true
}

func externalElement(obj types.Object) hover.Element {
	qualified := "builtin." + obj.Name()
	if obj.Pkg() != nil {
		qualified = obj.Pkg().Path() + "." + obj.Name()
	}
	return hover.Element{ID: qualified, Text: obj.Name(), Kind: KindExternal}
}

func (g *GoIndex) collectDocs(f *ast.File) {
	qualifier := types.RelativeTo(g.pkg)
	comments := declComments(f, g.file)

	local := func(obj types.Object) {
		off, ok := g.localOffset(obj)
		if !ok {
			return
		}
		s, ok := g.spans.find(off)
		if !ok {
			return
		}
		g.docs[elementID(g.path, s.start)] = docEntry{
			title: types.ObjectString(obj, qualifier),
			body:  comments[off],
		}
	}

	for _, obj := range g.info.Defs {
		if obj != nil {
			local(obj)
		}
	}
	for _, obj := range g.info.Implicits {
		local(obj)
	}
	for _, obj := range g.info.Uses {
		if _, ok := g.localOffset(obj); ok {
			continue
		}
		ext := externalElement(obj)
		body := "Predeclared by the language."
		if obj.Pkg() != nil {
			body = "Declared in package " + obj.Pkg().Path() + "."
		}
		g.docs[ext.ID] = docEntry{title: types.ObjectString(obj, qualifier), body: body}
	}
}

// declComments maps the offset of each declared name to its doc comment.
// Trailing line comments stand in when there is no doc comment.
func declComments(f *ast.File, file *token.File) map[int]string {
	out := make(map[int]string)
	add := func(names []*ast.Ident, groups ...*ast.CommentGroup) {
		for _, g := range groups {
			if g == nil {
				continue
			}
			text := strings.TrimSpace(g.Text())
			for _, n := range names {
				out[file.Offset(n.Pos())] = text
			}
			return
		}
	}

	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			add([]*ast.Ident{d.Name}, d.Doc)
		case *ast.GenDecl:
			var outer *ast.CommentGroup
			if len(d.Specs) == 1 || d.Lparen == token.NoPos {
				outer = d.Doc
			}
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					add([]*ast.Ident{s.Name}, s.Doc, outer, s.Comment)
				case *ast.ValueSpec:
					add(s.Names, s.Doc, outer, s.Comment)
				}
			}
		}
	}

	ast.Inspect(f, func(n ast.Node) bool {
		if fl, ok := n.(*ast.FieldList); ok {
			for _, field := range fl.List {
				add(field.Names, field.Doc, field.Comment)
			}
		}
		return true
	})
	return out
}
