// Package proxygen introspects Go packages and generates proxy shells: the
// method adapters that let package proxy create proxies of a base type.
package proxygen

import "go/types"

// ProxyPath is the import path of the runtime package generated shells depend on.
const ProxyPath = "github.com/chazu/interpose/proxy"

// Request names one shell to generate.
type Request struct {
	// Package is the import path (or a package pattern relative to Dir) of the
	// package that defines Base. The shell is written into the same package.
	Package string
	// Base is the name of the struct or interface type to proxy.
	Base string
	// Name overrides the shell type name. Defaults to ShellName(Base).
	Name string
	// Interfaces are additional interfaces the shell implements, written as
	// "Name" for the base package or "import/path.Name" otherwise.
	Interfaces []string
	// Output overrides the file name, relative to the package directory.
	// Defaults to OutputFile(Base).
	Output string
	// Dir is the directory package patterns are resolved from.
	Dir string
}

// ShellModel is everything the generator needs to emit a shell.
type ShellModel struct {
	PkgPath     string
	PkgName     string
	Dir         string // directory holding the package's Go files
	Base        string
	IsInterface bool
	TypeName    string // name of the generated shell type
	Interfaces  []string
	Methods     []MethodModel // sorted by name
	Output      string        // absolute path of the generated file
}

// MethodModel is one method of the proxy surface.
type MethodModel struct {
	Name     string
	Params   []ParamModel
	Results  []ParamModel
	Variadic bool
	Declarer string // base type or interface the method came from
}

// ParamModel is a parameter or result of a method.
type ParamModel struct {
	GoType types.Type
}
