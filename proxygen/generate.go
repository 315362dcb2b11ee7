package proxygen

import (
	"fmt"
	"go/types"
	"strings"

	"github.com/dave/jennifer/jen"
)

// Header is the first line of every generated file.
const Header = "Code generated by proxygen. DO NOT EDIT."

// Generate renders the shell described by model as a formatted Go file.
func Generate(model *ShellModel) (string, error) {
	g := &generator{model: model}

	f := jen.NewFilePathName(model.PkgPath, model.PkgName)
	f.HeaderComment(Header)
	f.ImportName(ProxyPath, "proxy")

	g.shellType(f)
	g.register(f)
	g.constructor(f)
	for _, m := range model.Methods {
		if err := g.method(f, m); err != nil {
			return "", err
		}
	}

	var b strings.Builder
	if err := f.Render(&b); err != nil {
		return "", fmt.Errorf("rendering %s: %w", model.TypeName, err)
	}
	return b.String(), nil
}

type generator struct {
	model *ShellModel
}

func (g *generator) shellType(f *jen.File) {
	m := g.model
	covered := m.Base
	if len(m.Interfaces) > 0 {
		names := append([]string{m.Base}, m.Interfaces...)
		covered = strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
	f.Commentf("%s routes the methods of %s through a proxy.Handler.", m.TypeName, covered)

	var fields []jen.Code
	if !m.IsInterface {
		fields = append(fields, jen.Op("*").Id(m.Base))
	}
	fields = append(fields, jen.Qual(ProxyPath, "Core"))
	f.Type().Id(m.TypeName).Struct(fields...)
}

func (g *generator) register(f *jen.File) {
	m := g.model
	f.Func().Id("init").Params().Block(
		jen.Qual(ProxyPath, "Register").Call(jen.Qual(ProxyPath, "Shell").Values(jen.Dict{
			jen.Id("Base"): jen.Qual("reflect", "TypeFor").Types(jen.Id(m.Base)).Call(),
			jen.Id("Type"): jen.Qual("reflect", "TypeFor").Types(jen.Op("*").Id(m.TypeName)).Call(),
			jen.Id("New"):  jen.Id(g.constructorName()),
		})),
	)
}

func (g *generator) constructorName() string {
	name := g.model.TypeName
	return "new" + strings.ToUpper(name[:1]) + name[1:]
}

func (g *generator) constructor(f *jen.File) {
	m := g.model
	sig := f.Func().Id(g.constructorName()).Params(
		jen.Id("core").Qual(ProxyPath, "Core"),
		jen.Id("base").Id("any"),
	).Id("any")

	if m.IsInterface {
		sig.Block(jen.Return(jen.Op("&").Id(m.TypeName).Values(jen.Dict{
			jen.Id("Core"): jen.Id("core"),
		})))
		return
	}
	sig.Block(
		jen.List(jen.Id("b"), jen.Id("_")).Op(":=").Id("base").Assert(jen.Op("*").Id(m.Base)),
		jen.Return(jen.Op("&").Id(m.TypeName).Values(jen.Dict{
			jen.Id("Core"): jen.Id("core"),
			jen.Id(m.Base): jen.Id("b"),
		})),
	)
}

func (g *generator) method(f *jen.File, m MethodModel) error {
	params := make([]jen.Code, len(m.Params))
	args := []jen.Code{jen.Id("p").Dot("Core"), jen.Id("p"), jen.Lit(m.Name)}
	for i, p := range m.Params {
		t, err := g.typeCode(p.GoType)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", g.model.Base, m.Name, err)
		}
		if m.Variadic && i == len(m.Params)-1 {
			t = jen.Op("...").Add(g.mustElem(p.GoType))
		}
		params[i] = jen.Id(paramName(i)).Add(t)
		args = append(args, jen.Id(paramName(i)))
	}

	results := make([]jen.Code, len(m.Results))
	for i, r := range m.Results {
		t, err := g.typeCode(r.GoType)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", g.model.Base, m.Name, err)
		}
		results[i] = t
	}

	decl := f.Func().Params(jen.Id("p").Op("*").Id(g.model.TypeName)).Id(m.Name).Params(params...)
	switch len(results) {
	case 0:
	case 1:
		decl.Add(results[0])
	default:
		decl.Parens(jen.List(results...))
	}

	dispatch := jen.Qual(ProxyPath, "Dispatch").Call(args...)
	if len(results) == 0 {
		decl.Block(dispatch)
		return nil
	}
	returns := make([]jen.Code, len(results))
	for i, r := range results {
		returns[i] = jen.Qual(ProxyPath, "Result").Types(r).Call(jen.Id("out"), jen.Lit(i))
	}
	decl.Block(
		jen.Id("out").Op(":=").Add(dispatch),
		jen.Return(returns...),
	)
	return nil
}

// mustElem renders the element type of a variadic parameter's slice type.
func (g *generator) mustElem(t types.Type) jen.Code {
	c, err := g.typeCode(t.(*types.Slice).Elem())
	if err != nil {
		return jen.Id("any")
	}
	return c
}

// typeCode renders t, qualifying named types from other packages.
func (g *generator) typeCode(t types.Type) (jen.Code, error) {
	switch t := t.(type) {
	case *types.Basic:
		if t.Kind() == types.UnsafePointer {
			return jen.Qual("unsafe", "Pointer"), nil
		}
		return jen.Id(t.Name()), nil
	case *types.Alias:
		obj := t.Obj()
		if obj.Pkg() == nil {
			return jen.Id(obj.Name()), nil
		}
		return g.qual(obj)
	case *types.Named:
		obj := t.Obj()
		if obj.Pkg() == nil {
			return jen.Id(obj.Name()), nil
		}
		s, err := g.qual(obj)
		if err != nil {
			return nil, err
		}
		if args := t.TypeArgs(); args != nil && args.Len() > 0 {
			codes := make([]jen.Code, args.Len())
			for i := 0; i < args.Len(); i++ {
				c, err := g.typeCode(args.At(i))
				if err != nil {
					return nil, err
				}
				codes[i] = c
			}
			s = s.Types(codes...)
		}
		return s, nil
	case *types.Pointer:
		return g.wrap(jen.Op("*"), t.Elem())
	case *types.Slice:
		return g.wrap(jen.Index(), t.Elem())
	case *types.Array:
		return g.wrap(jen.Index(jen.Lit(int(t.Len()))), t.Elem())
	case *types.Map:
		k, err := g.typeCode(t.Key())
		if err != nil {
			return nil, err
		}
		return g.wrap(jen.Map(k), t.Elem())
	case *types.Chan:
		var prefix *jen.Statement
		switch t.Dir() {
		case types.SendRecv:
			prefix = jen.Chan()
		case types.SendOnly:
			prefix = jen.Chan().Op("<-")
		case types.RecvOnly:
			prefix = jen.Op("<-").Chan()
		}
		return g.wrap(prefix, t.Elem())
	case *types.Signature:
		sig, err := g.signature(t)
		if err != nil {
			return nil, err
		}
		return jen.Func().Add(sig), nil
	case *types.Interface:
		if t.Empty() {
			return jen.Id("any"), nil
		}
		methods := make([]jen.Code, 0, t.NumExplicitMethods())
		for i := 0; i < t.NumExplicitMethods(); i++ {
			m := t.ExplicitMethod(i)
			sig, err := g.signature(m.Type().(*types.Signature))
			if err != nil {
				return nil, err
			}
			methods = append(methods, jen.Id(m.Name()).Add(sig))
		}
		for i := 0; i < t.NumEmbeddeds(); i++ {
			c, err := g.typeCode(t.EmbeddedType(i))
			if err != nil {
				return nil, err
			}
			methods = append(methods, c)
		}
		return jen.Interface(methods...), nil
	case *types.Struct:
		fields := make([]jen.Code, t.NumFields())
		for i := 0; i < t.NumFields(); i++ {
			fv := t.Field(i)
			c, err := g.typeCode(fv.Type())
			if err != nil {
				return nil, err
			}
			field := jen.Id(fv.Name()).Add(c)
			if fv.Embedded() {
				field = jen.Add(c)
			}
			if tag := t.Tag(i); tag != "" {
				field.Lit(tag)
			}
			fields[i] = field
		}
		return jen.Struct(fields...), nil
	}
	return nil, fmt.Errorf("unsupported type %s", t)
}

func (g *generator) qual(obj *types.TypeName) (*jen.Statement, error) {
	if obj.Pkg().Path() == g.model.PkgPath {
		return jen.Id(obj.Name()), nil
	}
	if !obj.Exported() {
		return nil, fmt.Errorf("type %s.%s is not visible from %s", obj.Pkg().Path(), obj.Name(), g.model.PkgPath)
	}
	return jen.Qual(obj.Pkg().Path(), obj.Name()), nil
}

func (g *generator) wrap(prefix *jen.Statement, elem types.Type) (jen.Code, error) {
	c, err := g.typeCode(elem)
	if err != nil {
		return nil, err
	}
	return prefix.Add(c), nil
}

// signature renders the parameter and result lists of sig, without the func
// keyword, as used by interface methods.
func (g *generator) signature(sig *types.Signature) (jen.Code, error) {
	params := make([]jen.Code, sig.Params().Len())
	for i := range params {
		pt := sig.Params().At(i).Type()
		if sig.Variadic() && i == len(params)-1 {
			c, err := g.typeCode(pt.(*types.Slice).Elem())
			if err != nil {
				return nil, err
			}
			params[i] = jen.Op("...").Add(c)
			continue
		}
		c, err := g.typeCode(pt)
		if err != nil {
			return nil, err
		}
		params[i] = c
	}
	results := make([]jen.Code, sig.Results().Len())
	for i := range results {
		c, err := g.typeCode(sig.Results().At(i).Type())
		if err != nil {
			return nil, err
		}
		results[i] = c
	}
	s := jen.Params(params...)
	switch len(results) {
	case 0:
	case 1:
		s.Add(results[0])
	default:
		s.Parens(jen.List(results...))
	}
	return s, nil
}
