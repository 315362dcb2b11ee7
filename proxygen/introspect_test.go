package proxygen

import (
	"errors"
	"testing"
)

const fixtures = "github.com/chazu/interpose/proxy/proxytest"

func methodNames(model *ShellModel) []string {
	var names []string
	for _, m := range model.Methods {
		names = append(names, m.Name)
	}
	return names
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestIntrospect_Target(t *testing.T) {
	model, err := Introspect(Request{Package: fixtures, Base: "Target"})
	if err != nil {
		t.Fatalf("Introspect(Target): %v", err)
	}

	if model.PkgName != "proxytest" {
		t.Errorf("expected package name 'proxytest', got %q", model.PkgName)
	}
	if model.TypeName != "targetProxy" {
		t.Errorf("expected shell name 'targetProxy', got %q", model.TypeName)
	}
	if model.IsInterface {
		t.Error("Target is a struct")
	}

	want := []string{"Add", "DivMod", "Divide", "Equal", "Exception", "Hash", "IsSameProxy", "NoArgMethod", "String", "Sum", "VoidMethod"}
	if got := methodNames(model); !equalStrings(got, want) {
		t.Errorf("methods = %v, want %v", got, want)
	}

	for _, m := range model.Methods {
		switch m.Name {
		case "Sum":
			if !m.Variadic {
				t.Error("Sum should be variadic")
			}
		case "Equal":
			if m.Declarer != "Object" {
				t.Errorf("Equal declared by %q, want Object", m.Declarer)
			}
		case "Hash":
			if m.Declarer != "Target" {
				t.Errorf("Hash declared by %q, want Target", m.Declarer)
			}
		case "DivMod":
			if len(m.Results) != 2 {
				t.Errorf("DivMod: expected 2 results, got %d", len(m.Results))
			}
		}
	}
}

func TestIntrospect_Interfaces(t *testing.T) {
	model, err := Introspect(Request{
		Package:    fixtures,
		Base:       "Empty",
		Interfaces: []string{"I1", "I2", "I3", "fmt.Stringer"},
	})
	if err != nil {
		t.Fatalf("Introspect(Empty): %v", err)
	}

	want := []string{"Equal", "Hash", "M1", "M2", "M3", "String"}
	if got := methodNames(model); !equalStrings(got, want) {
		t.Errorf("methods = %v, want %v", got, want)
	}
	for _, m := range model.Methods {
		if m.Name == "String" && m.Declarer != "fmt.Stringer" {
			t.Errorf("String declared by %q, want fmt.Stringer", m.Declarer)
		}
	}
}

func TestIntrospect_InterfaceBase(t *testing.T) {
	model, err := Introspect(Request{Package: fixtures, Base: "Greeter", Name: "greeterShell", Output: "greeter_shell.go"})
	if err != nil {
		t.Fatalf("Introspect(Greeter): %v", err)
	}
	if !model.IsInterface {
		t.Error("Greeter is an interface")
	}
	if model.TypeName != "greeterShell" {
		t.Errorf("expected shell name override, got %q", model.TypeName)
	}
	if got := model.Output; got[len(got)-len("greeter_shell.go"):] != "greeter_shell.go" {
		t.Errorf("expected output override, got %q", got)
	}
}

func TestIntrospect_Illegal(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"final", Request{Package: fixtures, Base: "Frozen"}},
		{"sealed", Request{Package: fixtures, Base: "Sealed"}},
		{"sealed interface", Request{Package: fixtures, Base: "Target", Interfaces: []string{"Sealed"}}},
		{"not an interface", Request{Package: fixtures, Base: "Target", Interfaces: []string{"Adder"}}},
		{"not a type", Request{Package: fixtures, Base: "ErrTarget"}},
		{"conflict", Request{Package: fixtures, Base: "Target", Interfaces: []string{"hash.Hash"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Introspect(tt.req)
			if !errors.Is(err, ErrIllegalBase) {
				t.Errorf("expected ErrIllegalBase, got %v", err)
			}
		})
	}
}

func TestIntrospect_BadRequests(t *testing.T) {
	for _, req := range []Request{
		{},
		{Package: fixtures, Base: "Missing"},
		{Package: "nonexistent/package/path", Base: "T"},
		{Package: fixtures, Base: "Target", Interfaces: []string{"bad."}},
	} {
		if _, err := Introspect(req); err == nil {
			t.Errorf("expected error for %+v", req)
		}
	}
}

func TestSplitRef(t *testing.T) {
	tests := []struct {
		ref, path, name string
		wantErr         bool
	}{
		{"I1", "", "I1", false},
		{"io.Reader", "io", "Reader", false},
		{"github.com/a/b.C", "github.com/a/b", "C", false},
		{"a/b.c/d", "", "", true},
		{".X", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			path, name, err := splitRef(tt.ref)
			if (err != nil) != tt.wantErr {
				t.Fatalf("splitRef(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			}
			if path != tt.path || name != tt.name {
				t.Errorf("splitRef(%q) = %q, %q, want %q, %q", tt.ref, path, name, tt.path, tt.name)
			}
		})
	}
}
