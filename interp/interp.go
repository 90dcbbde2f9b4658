/*
File    : lox/interp/interp.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package interp implements the tree-walking backend (spec §4.5),
// grounded on the teacher's eval/evaluator.go Evaluator{Scp,Writer,
// Builtins} dispatch idiom, with the environment-restore discipline
// upgraded from the teacher's plain sequential restore to a deferred
// restore so it fires on every exit path including panics converted to
// runtime errors, matching
// original_source/interpreter/src/interpreter.rs::execute_block.
package interp

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/akashmaji946/lox/ast"
	"github.com/akashmaji946/lox/resolver"
	"github.com/akashmaji946/lox/value"
)

// Interpreter evaluates a resolved program against a chain of
// Environments, writing `print` output to Writer.
type Interpreter struct {
	globals     *value.Environment
	environment *value.Environment
	locals      map[ast.Expr]int
	Writer      io.Writer
}

func New() *Interpreter {
	globals := value.NewEnvironment(nil)
	it := &Interpreter{globals: globals, environment: globals, Writer: os.Stdout}
	it.defineNatives()
	return it
}

func (it *Interpreter) SetWriter(w io.Writer) { it.Writer = w }

// defineNatives registers the single required native: clock.
func (it *Interpreter) defineNatives() {
	it.globals.Define("clock", &value.NativeFunction{
		Name: "clock",
		Arty: 0,
		Fn: func(args []value.Value) (value.Value, error) {
			return value.Number(float64(time.Now().UnixMilli())), nil
		},
	})
}

// Resolve runs the static resolver and wires its side-table into this
// interpreter. Returns the resolver so the caller can inspect errors.
func (it *Interpreter) Resolve(statements []ast.Stmt) *resolver.Resolver {
	r := resolver.NewResolver()
	r.Resolve(statements)
	it.locals = r.Locals
	return r
}

// Interpret executes a fully parsed-and-resolved program. It returns a
// *runtimeError on failure (exit code 70 at the CLI layer).
func (it *Interpreter) Interpret(statements []ast.Stmt) error {
	for _, s := range statements {
		if err := it.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) execute(s ast.Stmt) error {
	return s.AcceptStmt(it)
}

func (it *Interpreter) evaluate(e ast.Expr) (value.Value, error) {
	v, err := e.AcceptExpr(it)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return value.Nil{}, nil
	}
	return v.(value.Value), nil
}

func (it *Interpreter) lookUpVariable(name string, expr ast.Expr) (value.Value, error) {
	if distance, ok := it.locals[expr]; ok {
		return it.environment.GetAt(distance, name)
	}
	return it.globals.Get(name)
}

// executeBlock runs statements against a fresh child environment,
// restoring the caller's environment on every exit path via defer — the
// spec §5 "scoped restoration idiom, not ad-hoc control flow" requirement.
func (it *Interpreter) executeBlock(statements []ast.Stmt, env *value.Environment) error {
	previous := it.environment
	it.environment = env
	defer func() { it.environment = previous }()

	for _, s := range statements {
		if err := it.execute(s); err != nil {
			return err
		}
	}
	return nil
}

// --- StmtVisitor ---

func (it *Interpreter) VisitBlockStmt(s *ast.Block) error {
	return it.executeBlock(s.Statements, value.NewEnvironment(it.environment))
}

func (it *Interpreter) VisitClassStmt(s *ast.Class) error {
	var superclass *value.Class
	if s.Superclass != nil {
		sv, err := it.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := sv.(*value.Class)
		if !ok {
			return newRuntimeError(s.Superclass.Name.Line, "Superclass must be a class.")
		}
		superclass = sc
	}

	it.environment.Define(s.Name.Lexeme, value.Nil{})

	if s.Superclass != nil {
		it.environment = value.NewEnvironment(it.environment)
		it.environment.Define("super", superclass)
	}

	methods := make(map[string]*value.Function)
	for _, m := range s.Methods {
		fn := &value.Function{
			Decl:          m,
			Closure:       it.environment,
			IsInitializer: m.Name.Lexeme == "init",
		}
		methods[m.Name.Lexeme] = fn
	}

	class := &value.Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}

	if s.Superclass != nil {
		it.environment = it.environment.Enclosing
	}

	return it.environment.Assign(s.Name.Lexeme, class)
}

func (it *Interpreter) VisitExpressionStmt(s *ast.Expression) error {
	_, err := it.evaluate(s.Expr)
	return err
}

func (it *Interpreter) VisitFunctionStmt(s *ast.Function) error {
	fn := &value.Function{Decl: s, Closure: it.environment, IsInitializer: false}
	it.environment.Define(s.Name.Lexeme, fn)
	return nil
}

func (it *Interpreter) VisitIfStmt(s *ast.If) error {
	cond, err := it.evaluate(s.Condition)
	if err != nil {
		return err
	}
	if value.IsTruthy(cond) {
		return it.execute(s.ThenBranch)
	}
	if s.ElseBranch != nil {
		return it.execute(s.ElseBranch)
	}
	return nil
}

func (it *Interpreter) VisitPrintStmt(s *ast.Print) error {
	v, err := it.evaluate(s.Expr)
	if err != nil {
		return err
	}
	fmt.Fprintln(it.Writer, value.Stringify(v))
	return nil
}

func (it *Interpreter) VisitReturnStmt(s *ast.Return) error {
	var v value.Value = value.Nil{}
	if s.Value != nil {
		var err error
		v, err = it.evaluate(s.Value)
		if err != nil {
			return err
		}
	}
	return &returnUnwind{Value: v}
}

func (it *Interpreter) VisitVarStmt(s *ast.Var) error {
	var v value.Value = value.Nil{}
	if s.Initializer != nil {
		var err error
		v, err = it.evaluate(s.Initializer)
		if err != nil {
			return err
		}
	}
	it.environment.Define(s.Name.Lexeme, v)
	return nil
}

func (it *Interpreter) VisitWhileStmt(s *ast.While) error {
	for {
		cond, err := it.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if !value.IsTruthy(cond) {
			return nil
		}
		if err := it.execute(s.Body); err != nil {
			return err
		}
	}
}

// --- ExprVisitor ---

func (it *Interpreter) VisitAssignExpr(e *ast.Assign) (interface{}, error) {
	v, err := it.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if distance, ok := it.locals[e]; ok {
		it.environment.AssignAt(distance, e.Name.Lexeme, v)
	} else if err := it.globals.Assign(e.Name.Lexeme, v); err != nil {
		return nil, newRuntimeError(e.Name.Line, "%s", err.Error())
	}
	return v, nil
}

func (it *Interpreter) VisitBinaryExpr(e *ast.Binary) (interface{}, error) {
	left, err := it.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case "BANG_EQUAL":
		return value.Bool(!value.Equal(left, right)), nil
	case "EQUAL_EQUAL":
		return value.Bool(value.Equal(left, right)), nil
	case "GREATER":
		l, r, err := it.numberOperands(e.Operator.Line, left, right)
		if err != nil {
			return nil, err
		}
		return value.Bool(l > r), nil
	case "GREATER_EQUAL":
		l, r, err := it.numberOperands(e.Operator.Line, left, right)
		if err != nil {
			return nil, err
		}
		return value.Bool(l >= r), nil
	case "LESS":
		l, r, err := it.numberOperands(e.Operator.Line, left, right)
		if err != nil {
			return nil, err
		}
		return value.Bool(l < r), nil
	case "LESS_EQUAL":
		l, r, err := it.numberOperands(e.Operator.Line, left, right)
		if err != nil {
			return nil, err
		}
		return value.Bool(l <= r), nil
	case "MINUS":
		l, r, err := it.numberOperands(e.Operator.Line, left, right)
		if err != nil {
			return nil, err
		}
		return value.Number(l - r), nil
	case "SLASH":
		l, r, err := it.numberOperands(e.Operator.Line, left, right)
		if err != nil {
			return nil, err
		}
		return value.Number(l / r), nil
	case "STAR":
		l, r, err := it.numberOperands(e.Operator.Line, left, right)
		if err != nil {
			return nil, err
		}
		return value.Number(l * r), nil
	case "PLUS":
		if ln, ok := left.(value.Number); ok {
			if rn, ok := right.(value.Number); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(value.String); ok {
			if rs, ok := right.(value.String); ok {
				return ls + rs, nil
			}
		}
		return nil, newRuntimeError(e.Operator.Line, "Operands must be two numbers or two strings.")
	}
	return nil, newRuntimeError(e.Operator.Line, "Unknown operator '%s'.", e.Operator.Lexeme)
}

func (it *Interpreter) numberOperands(line int, left, right value.Value) (float64, float64, error) {
	ln, lok := left.(value.Number)
	rn, rok := right.(value.Number)
	if !lok || !rok {
		return 0, 0, newRuntimeError(line, "Operand must be a number.")
	}
	return float64(ln), float64(rn), nil
}

func (it *Interpreter) VisitCallExpr(e *ast.Call) (interface{}, error) {
	callee, err := it.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]value.Value, len(e.Arguments))
	for i, a := range e.Arguments {
		v, err := it.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	return it.call(callee, args, e.Paren.Line)
}

func (it *Interpreter) call(callee value.Value, args []value.Value, line int) (value.Value, error) {
	switch fn := callee.(type) {
	case *value.Class:
		if fn.Arity() != len(args) {
			return nil, newRuntimeError(line, "Expected %d arguments but got %d.", fn.Arity(), len(args))
		}
		instance := value.NewInstance(fn)
		if init, ok := fn.FindMethod("init"); ok {
			if _, err := it.callFunction(init.Bind(instance), args, line); err != nil {
				return nil, err
			}
		}
		return instance, nil
	case *value.Function:
		if fn.Arity() != len(args) {
			return nil, newRuntimeError(line, "Expected %d arguments but got %d.", fn.Arity(), len(args))
		}
		return it.callFunction(fn, args, line)
	case *value.NativeFunction:
		if fn.Arity() != len(args) {
			return nil, newRuntimeError(line, "Expected %d arguments but got %d.", fn.Arity(), len(args))
		}
		return fn.Call(args)
	default:
		return nil, newRuntimeError(line, "Can only call functions and classes.")
	}
}

// callFunction invokes a UserDefined function: push a fresh environment
// whose parent is the function's captured closure, bind parameters,
// execute the body, restore on every exit path. Initializers always
// yield the bound `this` regardless of the return expression.
func (it *Interpreter) callFunction(fn *value.Function, args []value.Value, line int) (value.Value, error) {
	env := value.NewEnvironment(fn.Closure)
	for i, p := range fn.Decl.Params {
		env.Define(p.Lexeme, args[i])
	}

	err := it.executeBlock(fn.Decl.Body, env)
	if err != nil {
		if ret, ok := err.(*returnUnwind); ok {
			if fn.IsInitializer {
				return fn.Closure.GetAt(0, "this")
			}
			return ret.Value, nil
		}
		return nil, err
	}

	if fn.IsInitializer {
		return fn.Closure.GetAt(0, "this")
	}
	return value.Nil{}, nil
}

func (it *Interpreter) VisitGetExpr(e *ast.Get) (interface{}, error) {
	obj, err := it.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*value.Instance)
	if !ok {
		return nil, newRuntimeError(e.Name.Line, "Only instances have properties.")
	}
	v, err := instance.Get(e.Name.Lexeme)
	if err != nil {
		return nil, newRuntimeError(e.Name.Line, "%s", err.Error())
	}
	return v, nil
}

func (it *Interpreter) VisitGroupingExpr(e *ast.Grouping) (interface{}, error) {
	return it.evaluate(e.Expression)
}

func (it *Interpreter) VisitLiteralExpr(e *ast.Literal) (interface{}, error) {
	switch v := e.Value.(type) {
	case nil:
		return value.Nil{}, nil
	case bool:
		return value.Bool(v), nil
	case float64:
		return value.Number(v), nil
	case string:
		return value.String(v), nil
	default:
		return value.Nil{}, nil
	}
}

func (it *Interpreter) VisitLogicalExpr(e *ast.Logical) (interface{}, error) {
	left, err := it.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator.Type == "OR" {
		if value.IsTruthy(left) {
			return left, nil
		}
	} else { // AND
		if !value.IsTruthy(left) {
			return left, nil
		}
	}
	return it.evaluate(e.Right)
}

func (it *Interpreter) VisitSetExpr(e *ast.Set) (interface{}, error) {
	obj, err := it.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*value.Instance)
	if !ok {
		return nil, newRuntimeError(e.Name.Line, "Only instances have fields.")
	}
	v, err := it.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(e.Name.Lexeme, v)
	return v, nil
}

func (it *Interpreter) VisitSuperExpr(e *ast.Super) (interface{}, error) {
	distance := it.locals[e]
	superVal, err := it.environment.GetAt(distance, "super")
	if err != nil {
		return nil, newRuntimeError(e.Keyword.Line, "%s", err.Error())
	}
	superclass := superVal.(*value.Class)

	thisVal, err := it.environment.GetAt(distance-1, "this")
	if err != nil {
		return nil, newRuntimeError(e.Keyword.Line, "%s", err.Error())
	}
	instance := thisVal.(*value.Instance)

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		return nil, newRuntimeError(e.Method.Line, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.Bind(instance), nil
}

func (it *Interpreter) VisitThisExpr(e *ast.This) (interface{}, error) {
	return it.lookUpVariable("this", e)
}

func (it *Interpreter) VisitUnaryExpr(e *ast.Unary) (interface{}, error) {
	right, err := it.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Type {
	case "BANG":
		return value.Bool(!value.IsTruthy(right)), nil
	case "MINUS":
		n, ok := right.(value.Number)
		if !ok {
			return nil, newRuntimeError(e.Operator.Line, "Operand must be a number.")
		}
		return -n, nil
	}
	return nil, newRuntimeError(e.Operator.Line, "Unknown operator '%s'.", e.Operator.Lexeme)
}

func (it *Interpreter) VisitVariableExpr(e *ast.Variable) (interface{}, error) {
	v, err := it.lookUpVariable(e.Name.Lexeme, e)
	if err != nil {
		return nil, newRuntimeError(e.Name.Line, "%s", err.Error())
	}
	return v, nil
}
