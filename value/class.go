/*
File    : lox/value/class.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package value

import "fmt"

// Class is the ClassDescriptor: name, optional superclass, and a
// method-name → Function table. Grounded on the teacher's
// objects/struct.go GoMixStruct{Name,Methods,FieldNodes} (FieldNodes is
// dropped: Lox classes declare no fields outside of ad hoc `this.x = ...`
// assignment in methods), generalized with a Superclass chain per
// original_source/interpreter/src/class.rs's LoxClass.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (*Class) Kind() Kind      { return KindClass }
func (c *Class) String() string { return c.Name }

// Arity is the initializer's arity, or 0 if the class has none.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// FindMethod searches this class then recursively the superclass chain,
// returning the first match.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if fn, ok := c.Methods[name]; ok {
		return fn, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Instance is a class reference plus a mutable field-name → Value
// mapping. Grounded on teacher's objects/struct.go
// GoMixObjectInstance{Struct,Fields}.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Value)}
}

func (*Instance) Kind() Kind      { return KindInstance }
func (i *Instance) String() string { return i.Class.Name + " instance" }

// Get consults fields first, then falls back to a bound method.
// Missing -> "Undefined property '<name>'."
func (i *Instance) Get(name string) (Value, error) {
	if v, ok := i.Fields[name]; ok {
		return v, nil
	}
	if method, ok := i.Class.FindMethod(name); ok {
		return method.Bind(i), nil
	}
	return nil, fmt.Errorf("Undefined property '%s'.", name)
}

func (i *Instance) Set(name string, v Value) {
	i.Fields[name] = v
}
