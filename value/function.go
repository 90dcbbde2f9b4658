/*
File    : lox/value/function.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package value

import (
	"github.com/akashmaji946/lox/ast"
)

// Callable is implemented by every Value that can appear as a call
// target: user-defined functions, native functions, and classes.
type Callable interface {
	Value
	Arity() int
}

// Function is the UserDefined FunctionDescriptor variant: name, params,
// body, captured enclosing environment (closure), and IsInitializer.
// Grounded on the teacher's function/function.go Function{Name,Params,
// Body,Scp}, with IsInitializer added per spec §3.
type Function struct {
	Decl          *ast.Function
	Closure       *Environment
	IsInitializer bool
}

func (*Function) Kind() Kind { return KindFunction }
func (f *Function) String() string {
	return "<fn " + f.Decl.Name.Lexeme + ">"
}
func (f *Function) Arity() int { return len(f.Decl.Params) }

// Bind produces a new Function whose closure is a fresh frame defining
// `this` = instance, enclosing the original closure — grounded on
// original_source/interpreter/src/class.rs's LoxInstance::get binding
// call site.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.Closure)
	env.Define("this", instance)
	return &Function{Decl: f.Decl, Closure: env, IsInitializer: f.IsInitializer}
}

// NativeFunction wraps a host-provided callable, e.g. clock.
type NativeFunction struct {
	Name string
	Arty int
	Fn   func(args []Value) (Value, error)
}

func (*NativeFunction) Kind() Kind { return KindFunction }
func (n *NativeFunction) String() string {
	return "<native fn " + n.Name + ">"
}
func (n *NativeFunction) Arity() int { return n.Arty }
func (n *NativeFunction) Call(args []Value) (Value, error) {
	return n.Fn(args)
}
