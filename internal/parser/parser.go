package parser

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"log/slog"
	"reflect"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/cmmoran/apidocgen/internal/model"
	ir "github.com/cmmoran/apidocgen/pkg/model"
	options "github.com/cmmoran/apidocgen/pkg/parser"
)

// ErrLoad is returned when packages cannot be loaded or type-checked.
var ErrLoad = errors.New("load packages")

// Parser loads Go packages and turns their declarations into the
// annotation-bearing declaration view consumed by the extractor.
type Parser struct {
	Opts options.Options

	// Decls holds every collected declaration in source order: types
	// followed by their properties, then functions.
	Decls []*model.Declaration

	log  *slog.Logger
	fset *token.FileSet

	types     map[string]*model.Declaration // qualified name → type declaration
	excluded  map[string]bool               // qualified names skipped by options
	constDocs map[token.Pos]string          // const name position → doc
}

// New builds a Parser from functional options.
func New(opts ...options.Option) (*Parser, error) {
	o := options.NewOptions()
	o.Patterns = nil
	for _, fn := range opts {
		fn(o)
	}
	return NewWithOpts(o)
}

func NewWithOpts(opts *options.Options) (*Parser, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}

	p := &Parser{
		Opts:      *opts,
		log:       slog.Default(),
		fset:      token.NewFileSet(),
		types:     make(map[string]*model.Declaration),
		excluded:  make(map[string]bool),
		constDocs: make(map[token.Pos]string),
	}

	return p, nil
}

// WithLogger replaces the parser's logger.
func (p *Parser) WithLogger(log *slog.Logger) *Parser {
	if log != nil {
		p.log = log
	}
	return p
}

// Parse loads every package matching Opts.Patterns under Opts.InDir.
func (p *Parser) Parse(ctx context.Context) error {
	pkgs, err := packages.Load(&packages.Config{
		Context: ctx,
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
			packages.NeedTypes | packages.NeedTypesInfo,
		Dir:  p.Opts.InDir,
		Fset: p.fset,
	}, p.Opts.Patterns...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if len(pkgs) == 0 {
		return fmt.Errorf("%w: no packages match %v in %s", ErrLoad, p.Opts.Patterns, p.Opts.InDir)
	}
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].PkgPath < pkgs[j].PkgPath })

	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return fmt.Errorf("%w: %s: %v", ErrLoad, pkg.PkgPath, pkg.Errors[0])
		}
	}

	for _, pkg := range pkgs {
		if err = p.collectPackage(pkg); err != nil {
			return err
		}
	}
	p.log.Debug("parsed packages", "packages", len(pkgs), "declarations", len(p.Decls))
	return nil
}

// collectPackage collects declarations of one package in three passes so
// that enum constants have docs and methods find their receiver types
// regardless of file order.
func (p *Parser) collectPackage(pkg *packages.Package) error {
	pkgDecl := &model.Declaration{
		Kind:          model.KindPackage,
		Name:          pkg.Name,
		QualifiedName: pkg.PkgPath,
	}
	for _, file := range pkg.Syntax {
		if file.Doc == nil {
			continue
		}
		dirs, err := parseDirectives(p.fset, file.Doc)
		if err != nil {
			return err
		}
		if err = applyTypeDirectives(pkgDecl, dirs); err != nil {
			return err
		}
		if pkgDecl.Doc == nil {
			pkgDecl.Doc = ir.StringPtr(docText(file.Doc))
		}
	}

	for _, file := range pkg.Syntax {
		p.collectConstDocs(file)
	}
	for _, file := range pkg.Syntax {
		if err := p.collectTypes(pkg, file); err != nil {
			return err
		}
	}
	for _, file := range pkg.Syntax {
		if err := p.collectFuncs(pkg, pkgDecl, file); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) collectConstDocs(file *ast.File) {
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.CONST {
			continue
		}
		for _, spec := range gen.Specs {
			vs := spec.(*ast.ValueSpec)
			doc := docText(vs.Doc)
			if doc == "" {
				doc = docText(vs.Comment)
			}
			if doc == "" {
				continue
			}
			for _, name := range vs.Names {
				p.constDocs[name.Pos()] = doc
			}
		}
	}
}

// -----------------------------------------------------------------------------
// Types
// -----------------------------------------------------------------------------

func (p *Parser) collectTypes(pkg *packages.Package, file *ast.File) error {
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			if ts.Assign.IsValid() {
				// aliases document through their target
				continue
			}
			cg := ts.Doc
			if cg == nil && len(gen.Specs) == 1 {
				cg = gen.Doc
			}
			if err := p.collectType(pkg, ts, cg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Parser) collectType(pkg *packages.Package, ts *ast.TypeSpec, cg *ast.CommentGroup) error {
	tn, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return nil
	}
	named, ok := tn.Type().(*types.Named)
	if !ok {
		return nil
	}
	qualified := QualifiedName(tn)
	doc := docText(cg)

	if p.Opts.IsExcludedType(tn.Name()) || (p.Opts.ExcludeDeprecated && isDeprecated(doc)) {
		p.log.Debug("excluding type", "type", qualified)
		p.excluded[qualified] = true
		return nil
	}

	dirs, err := parseDirectives(p.fset, cg)
	if err != nil {
		return err
	}

	d := &model.Declaration{
		Kind:          model.KindNamed,
		Name:          tn.Name(),
		QualifiedName: qualified,
		Doc:           ir.StringPtr(doc),
		Type:          Describe(named),
		Pos:           p.fset.Position(ts.Pos()).String(),
	}
	p.types[qualified] = d

	switch u := named.Underlying().(type) {
	case *types.Struct:
		d.Kind = model.KindStruct
		if err = applyTypeDirectives(d, dirs); err != nil {
			return err
		}
		p.Decls = append(p.Decls, d)
		p.collectProperties(d, u, map[*types.Named]bool{named: true})
		return nil
	case *types.Basic:
		if consts := EnumConstants(pkg.Types, named); len(consts) > 0 {
			d.Kind = model.KindEnum
			for _, c := range consts {
				d.Enclosed = append(d.Enclosed, &model.Declaration{
					Kind:          model.KindEnumConstant,
					Name:          EnumValueName(c),
					QualifiedName: QualifiedName(c),
					Doc:           ir.StringPtr(p.constDocs[c.Pos()]),
					Type:          d.Type,
					Enclosing:     d,
					Pos:           p.fset.Position(c.Pos()).String(),
				})
			}
		}
	}

	if err = applyTypeDirectives(d, dirs); err != nil {
		return err
	}
	p.Decls = append(p.Decls, d)
	return nil
}

// collectProperties appends one property declaration per json-tagged,
// exported field of st. Untagged embedded structs are flattened into owner.
func (p *Parser) collectProperties(owner *model.Declaration, st *types.Struct, seen map[*types.Named]bool) {
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		tag := reflect.StructTag(st.Tag(i))
		if !f.Exported() && !f.Embedded() {
			continue
		}
		if options.ShouldOmitField(tag, &p.Opts) {
			continue
		}

		name, tagged := options.JSONName(tag, f.Name())
		if !tagged {
			if _, hasTag := tag.Lookup("json"); hasTag {
				// json:"-"
				continue
			}
			if f.Embedded() {
				p.flattenEmbedded(owner, f.Type(), seen)
			}
			continue
		}
		if !f.Exported() {
			continue
		}

		prop := &model.Declaration{
			Kind:      model.KindProperty,
			Name:      f.Name(),
			Type:      Describe(f.Type()),
			Enclosing: owner,
			Pos:       p.fset.Position(f.Pos()).String(),
		}
		prop.Annotate(model.AnnotationProperty, name)
		p.Decls = append(p.Decls, prop)
	}
}

func (p *Parser) flattenEmbedded(owner *model.Declaration, t types.Type, seen map[*types.Named]bool) {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	named, ok := types.Unalias(t).(*types.Named)
	if !ok || seen[named] {
		return
	}
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return
	}
	seen[named] = true
	p.collectProperties(owner, st, seen)
}

// EnumConstants returns the package-level constants of exactly type named,
// in declaration order.
func EnumConstants(pkg *types.Package, named *types.Named) []*types.Const {
	var consts []*types.Const
	scope := pkg.Scope()
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok || !types.Identical(c.Type(), named) {
			continue
		}
		consts = append(consts, c)
	}
	sort.Slice(consts, func(i, j int) bool { return consts[i].Pos() < consts[j].Pos() })
	return consts
}

// EnumValueName is the serialized form of a constant: its value for string
// constants, its identifier otherwise.
func EnumValueName(c *types.Const) string {
	if c.Val().Kind() == constant.String {
		return constant.StringVal(c.Val())
	}
	return c.Name()
}

func isDeprecated(doc string) bool {
	for _, line := range strings.Split(doc, "\n") {
		if strings.HasPrefix(line, "Deprecated:") {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------
// Functions
// -----------------------------------------------------------------------------

func (p *Parser) collectFuncs(pkg *packages.Package, pkgDecl *model.Declaration, file *ast.File) error {
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Doc == nil {
			continue
		}
		dirs, err := parseDirectives(p.fset, fn.Doc)
		if err != nil {
			return err
		}
		if len(dirs) == 0 {
			continue
		}
		obj, ok := pkg.TypesInfo.Defs[fn.Name].(*types.Func)
		if !ok {
			continue
		}
		sig := obj.Type().(*types.Signature)

		enclosing := pkgDecl
		if recv := sig.Recv(); recv != nil {
			rt := recv.Type()
			if ptr, isPtr := rt.(*types.Pointer); isPtr {
				rt = ptr.Elem()
			}
			named, isNamed := types.Unalias(rt).(*types.Named)
			if !isNamed {
				continue
			}
			qualified := QualifiedName(named.Obj())
			if p.excluded[qualified] {
				continue
			}
			enclosing = p.types[qualified]
			if enclosing == nil {
				continue
			}
		}

		d := &model.Declaration{
			Kind:      model.KindMethod,
			Name:      fn.Name.Name,
			Doc:       ir.StringPtr(docText(fn.Doc)),
			Type:      returnType(sig),
			Enclosing: enclosing,
			Pos:       p.fset.Position(fn.Pos()).String(),
		}
		params := sig.Params()
		for i := 0; i < params.Len(); i++ {
			v := params.At(i)
			param := &model.Declaration{
				Kind:      model.KindParameter,
				Name:      v.Name(),
				Type:      Describe(v.Type()),
				Enclosing: d,
				Pos:       p.fset.Position(v.Pos()).String(),
			}
			if isContextParam(v.Type()) {
				param.Annotate(model.AnnotationContext)
			}
			d.Enclosed = append(d.Enclosed, param)
		}
		if err = applyFuncDirectives(d, dirs); err != nil {
			return err
		}
		p.Decls = append(p.Decls, d)
	}
	return nil
}

// returnType is the first non-error result, or "void".
func returnType(sig *types.Signature) ir.TypeDescriptor {
	results := sig.Results()
	for i := 0; i < results.Len(); i++ {
		if t := results.At(i).Type(); !isError(t) {
			return Describe(t)
		}
	}
	return ir.NewType("void")
}
