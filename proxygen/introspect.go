package proxygen

import (
	"errors"
	"fmt"
	"go/types"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

// ErrIllegalBase is returned for base types no shell can be generated for.
var ErrIllegalBase = errors.New("proxygen: illegal base type")

// Introspect loads the package named by req and resolves the proxy surface of
// its base type: the exported methods of the base (its pointer method set for
// structs), the methods of every requested interface and the proxy.Object
// methods the base does not declare itself.
func Introspect(req Request) (*ShellModel, error) {
	if req.Package == "" || req.Base == "" {
		return nil, fmt.Errorf("proxygen: request needs a package and a base type")
	}

	ifacePkgs, err := interfacePackages(req.Interfaces)
	if err != nil {
		return nil, err
	}
	patterns := append([]string{req.Package, ProxyPath}, ifacePkgs...)

	// Dependencies are type-checked from source so that every package shares one
	// set of type objects and signatures compare with types.Identical.
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedFiles |
			packages.NeedImports | packages.NeedDeps,
		Dir: req.Dir,
	}
	roots, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", req.Package, err)
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("no packages found for %s", req.Package)
	}

	var loadErrs []packages.Error
	byPath := make(map[string]*packages.Package)
	packages.Visit(roots, nil, func(p *packages.Package) {
		byPath[p.PkgPath] = p
	})
	var pkg *packages.Package
	for _, p := range roots {
		loadErrs = append(loadErrs, p.Errors...)
		if pkg == nil && matchesPattern(p, req) {
			pkg = p
		}
	}
	if len(loadErrs) > 0 {
		return nil, fmt.Errorf("package errors: %v", loadErrs)
	}
	if pkg == nil || pkg.Types == nil || len(pkg.GoFiles) == 0 {
		return nil, fmt.Errorf("type information not available for %s", req.Package)
	}
	proxyPkg, ok := byPath[ProxyPath]
	if !ok || proxyPkg.Types == nil {
		return nil, fmt.Errorf("cannot load %s", ProxyPath)
	}

	named, err := lookupNamed(pkg.Types, req.Base)
	if err != nil {
		return nil, err
	}

	model := &ShellModel{
		PkgPath:    pkg.PkgPath,
		PkgName:    pkg.Name,
		Dir:        filepath.Dir(pkg.GoFiles[0]),
		Base:       req.Base,
		TypeName:   req.Name,
		Interfaces: req.Interfaces,
	}
	if model.TypeName == "" {
		model.TypeName = ShellName(req.Base)
	}
	output := req.Output
	if output == "" {
		output = OutputFile(req.Base)
	}
	model.Output = filepath.Join(model.Dir, output)

	s := newSurface()
	switch u := named.Underlying().(type) {
	case *types.Struct:
		if isFinal(named, proxyPkg.Types) {
			return nil, fmt.Errorf("%w: %s embeds proxy.Final", ErrIllegalBase, req.Base)
		}
		mset := types.NewMethodSet(types.NewPointer(named))
		for i := 0; i < mset.Len(); i++ {
			fn, ok := mset.At(i).Obj().(*types.Func)
			if !ok || !fn.Exported() {
				continue
			}
			if err := s.add(fn.Name(), fn.Type().(*types.Signature), req.Base); err != nil {
				return nil, err
			}
		}
	case *types.Interface:
		model.IsInterface = true
		if err := s.addInterface(u, req.Base); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s is neither a struct nor an interface", ErrIllegalBase, req.Base)
	}

	for _, ref := range req.Interfaces {
		iface, err := resolveInterface(ref, pkg, byPath)
		if err != nil {
			return nil, err
		}
		if err := s.addInterface(iface, ref); err != nil {
			return nil, err
		}
	}

	object, err := lookupNamed(proxyPkg.Types, "Object")
	if err != nil {
		return nil, err
	}
	objectIface := object.Underlying().(*types.Interface)
	for i := 0; i < objectIface.NumMethods(); i++ {
		m := objectIface.Method(i)
		if !s.has(m.Name()) {
			_ = s.add(m.Name(), m.Type().(*types.Signature), "Object")
		}
	}

	model.Methods = s.methods()
	return model, nil
}

// matchesPattern reports whether p is the package req.Package names, either by
// import path or, for relative and absolute patterns, by directory.
func matchesPattern(p *packages.Package, req Request) bool {
	if p.PkgPath == req.Package {
		return true
	}
	if !strings.HasPrefix(req.Package, ".") && !filepath.IsAbs(req.Package) {
		return false
	}
	if len(p.GoFiles) == 0 {
		return false
	}
	want, err := filepath.Abs(filepath.Join(req.Dir, req.Package))
	if filepath.IsAbs(req.Package) {
		want, err = filepath.Clean(req.Package), nil
	}
	return err == nil && filepath.Dir(p.GoFiles[0]) == want
}

func lookupNamed(pkg *types.Package, name string) (*types.Named, error) {
	obj := pkg.Scope().Lookup(name)
	if obj == nil {
		return nil, fmt.Errorf("%s has no type %s", pkg.Path(), name)
	}
	tn, ok := obj.(*types.TypeName)
	if !ok || tn.IsAlias() {
		return nil, fmt.Errorf("%w: %s.%s is not a defined type", ErrIllegalBase, pkg.Path(), name)
	}
	named, ok := tn.Type().(*types.Named)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s is not a defined type", ErrIllegalBase, pkg.Path(), name)
	}
	if named.TypeParams().Len() > 0 {
		return nil, fmt.Errorf("%w: %s.%s is generic", ErrIllegalBase, pkg.Path(), name)
	}
	return named, nil
}

// isFinal reports whether the pointer method set of named contains the marker
// method promoted from proxy.Final.
func isFinal(named *types.Named, proxyPkg *types.Package) bool {
	mset := types.NewMethodSet(types.NewPointer(named))
	return mset.Lookup(proxyPkg, "finalTarget") != nil
}

// interfacePackages returns the import paths named by qualified interface
// references.
func interfacePackages(refs []string) ([]string, error) {
	var paths []string
	for _, ref := range refs {
		path, _, err := splitRef(ref)
		if err != nil {
			return nil, err
		}
		if path != "" {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// splitRef splits "import/path.Name" into its path and name. Unqualified
// references return an empty path.
func splitRef(ref string) (path, name string, err error) {
	i := strings.LastIndex(ref, ".")
	if i < 0 {
		return "", ref, nil
	}
	if i == 0 || i == len(ref)-1 || strings.LastIndex(ref, "/") > i {
		return "", "", fmt.Errorf("proxygen: malformed interface reference %q", ref)
	}
	return ref[:i], ref[i+1:], nil
}

func resolveInterface(ref string, base *packages.Package, byPath map[string]*packages.Package) (*types.Interface, error) {
	path, name, err := splitRef(ref)
	if err != nil {
		return nil, err
	}
	pkg := base
	if path != "" {
		if pkg = byPath[path]; pkg == nil {
			return nil, fmt.Errorf("cannot load %s for %s", path, ref)
		}
	}
	named, err := lookupNamed(pkg.Types, name)
	if err != nil {
		return nil, err
	}
	iface, ok := named.Underlying().(*types.Interface)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an interface", ErrIllegalBase, ref)
	}
	return iface, nil
}

// surface collects methods by name, rejecting conflicting signatures.
type surface struct {
	byName map[string]*MethodModel
	sigs   map[string]*types.Signature
}

func newSurface() *surface {
	return &surface{
		byName: make(map[string]*MethodModel),
		sigs:   make(map[string]*types.Signature),
	}
}

func (s *surface) has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

func (s *surface) add(name string, sig *types.Signature, declarer string) error {
	if prev, ok := s.sigs[name]; ok {
		if !types.Identical(dropRecv(prev), dropRecv(sig)) {
			return fmt.Errorf("%w: method %s of %s conflicts with %s", ErrIllegalBase, name, declarer, s.byName[name].Declarer)
		}
		return nil
	}
	m := &MethodModel{Name: name, Variadic: sig.Variadic(), Declarer: declarer}
	for i := 0; i < sig.Params().Len(); i++ {
		m.Params = append(m.Params, ParamModel{GoType: sig.Params().At(i).Type()})
	}
	for i := 0; i < sig.Results().Len(); i++ {
		m.Results = append(m.Results, ParamModel{GoType: sig.Results().At(i).Type()})
	}
	s.byName[name] = m
	s.sigs[name] = sig
	return nil
}

// addInterface adds every method of iface. Interfaces with unexported methods
// are sealed and rejected.
func (s *surface) addInterface(iface *types.Interface, declarer string) error {
	for i := 0; i < iface.NumMethods(); i++ {
		m := iface.Method(i)
		if !m.Exported() {
			return fmt.Errorf("%w: %s is sealed by unexported method %s", ErrIllegalBase, declarer, m.Name())
		}
		if err := s.add(m.Name(), m.Type().(*types.Signature), declarer); err != nil {
			return err
		}
	}
	return nil
}

func (s *surface) methods() []MethodModel {
	out := make([]MethodModel, 0, len(s.byName))
	for _, m := range s.byName {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func dropRecv(sig *types.Signature) *types.Signature {
	return types.NewSignatureType(nil, nil, nil, sig.Params(), sig.Results(), sig.Variadic())
}
