/*
File    : lox/resolver/resolver.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package resolver implements the static pass that decorates the AST with
// scope-distance information (spec §4.4), grounded structurally on the
// teacher's scope/scope.go chain-of-maps shape, repurposed from a runtime
// value store into a stack of declared/defined flags, and on
// original_source/interpreter/src/resolver.rs for the exact diagnostics.
package resolver

import (
	"github.com/akashmaji946/lox/ast"
	"github.com/akashmaji946/lox/parser"
)

type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnMethod
	fnInitializer
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Resolver walks a parsed program once and returns the scope-distance
// side-table keyed by AST-node identity (spec §9's suggested fix for the
// token-identity key's fragility).
type Resolver struct {
	scopes          []map[string]bool
	currentFunction functionType
	currentClass    classType
	Locals          map[ast.Expr]int
	Errors          []parser.ParseError
}

func NewResolver() *Resolver {
	return &Resolver{Locals: make(map[ast.Expr]int)}
}

func (r *Resolver) HasErrors() bool { return len(r.Errors) > 0 }

func (r *Resolver) Resolve(statements []ast.Stmt) {
	r.resolveStmts(statements)
}

func (r *Resolver) resolveStmts(statements []ast.Stmt) {
	for _, s := range statements {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) { _ = s.AcceptStmt(r) }

func (r *Resolver) resolveExpr(e ast.Expr) { _, _ = e.AcceptExpr(r) }

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, map[string]bool{}) }
func (r *Resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) declare(name string, line int) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name]; ok {
		r.error(line, name, "Already a variable with this name in this scope.")
	}
	scope[name] = false
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

func (r *Resolver) resolveLocal(expr ast.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.Locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found in any local scope: treated as global.
}

func (r *Resolver) resolveFunction(fn *ast.Function, kind functionType) {
	enclosing := r.currentFunction
	r.currentFunction = kind
	r.beginScope()
	for _, p := range fn.Params {
		r.declare(p.Lexeme, p.Line)
		r.define(p.Lexeme)
	}
	r.resolveStmts(fn.Body)
	r.endScope()
	r.currentFunction = enclosing
}

func (r *Resolver) error(line int, lexeme, message string) {
	where := ""
	if lexeme != "" {
		where = " at '" + lexeme + "'"
	}
	r.Errors = append(r.Errors, parser.ParseError{Line: line, Where: where, Message: message})
}

// --- StmtVisitor ---

func (r *Resolver) VisitBlockStmt(s *ast.Block) error {
	r.beginScope()
	r.resolveStmts(s.Statements)
	r.endScope()
	return nil
}

func (r *Resolver) VisitClassStmt(s *ast.Class) error {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	r.declare(s.Name.Lexeme, s.Name.Line)
	r.define(s.Name.Lexeme)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.error(s.Superclass.Name.Line, s.Superclass.Name.Lexeme, "A class cannot inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpr(s.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range s.Methods {
		kind := fnMethod
		if method.Name.Lexeme == "init" {
			kind = fnInitializer
		}
		r.resolveFunction(method, kind)
	}

	r.endScope()
	if s.Superclass != nil {
		r.endScope()
	}
	r.currentClass = enclosingClass
	return nil
}

func (r *Resolver) VisitExpressionStmt(s *ast.Expression) error {
	r.resolveExpr(s.Expr)
	return nil
}

func (r *Resolver) VisitFunctionStmt(s *ast.Function) error {
	r.declare(s.Name.Lexeme, s.Name.Line)
	r.define(s.Name.Lexeme)
	r.resolveFunction(s, fnFunction)
	return nil
}

func (r *Resolver) VisitIfStmt(s *ast.If) error {
	r.resolveExpr(s.Condition)
	r.resolveStmt(s.ThenBranch)
	if s.ElseBranch != nil {
		r.resolveStmt(s.ElseBranch)
	}
	return nil
}

func (r *Resolver) VisitPrintStmt(s *ast.Print) error {
	r.resolveExpr(s.Expr)
	return nil
}

func (r *Resolver) VisitReturnStmt(s *ast.Return) error {
	if r.currentFunction == fnNone {
		r.error(s.Keyword.Line, "", "Cannot return from top-level code.")
	}
	if s.Value != nil {
		if r.currentFunction == fnInitializer {
			r.error(s.Keyword.Line, "", "Cannot return value from initializer.")
		}
		r.resolveExpr(s.Value)
	}
	return nil
}

func (r *Resolver) VisitVarStmt(s *ast.Var) error {
	r.declare(s.Name.Lexeme, s.Name.Line)
	if s.Initializer != nil {
		r.resolveExpr(s.Initializer)
	}
	r.define(s.Name.Lexeme)
	return nil
}

func (r *Resolver) VisitWhileStmt(s *ast.While) error {
	r.resolveExpr(s.Condition)
	r.resolveStmt(s.Body)
	return nil
}

// --- ExprVisitor ---

func (r *Resolver) VisitAssignExpr(e *ast.Assign) (interface{}, error) {
	r.resolveExpr(e.Value)
	r.resolveLocal(e, e.Name.Lexeme)
	return nil, nil
}

func (r *Resolver) VisitBinaryExpr(e *ast.Binary) (interface{}, error) {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil, nil
}

func (r *Resolver) VisitCallExpr(e *ast.Call) (interface{}, error) {
	r.resolveExpr(e.Callee)
	for _, a := range e.Arguments {
		r.resolveExpr(a)
	}
	return nil, nil
}

func (r *Resolver) VisitGetExpr(e *ast.Get) (interface{}, error) {
	r.resolveExpr(e.Object)
	return nil, nil
}

func (r *Resolver) VisitGroupingExpr(e *ast.Grouping) (interface{}, error) {
	r.resolveExpr(e.Expression)
	return nil, nil
}

func (r *Resolver) VisitLiteralExpr(e *ast.Literal) (interface{}, error) {
	return nil, nil
}

func (r *Resolver) VisitLogicalExpr(e *ast.Logical) (interface{}, error) {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil, nil
}

func (r *Resolver) VisitSetExpr(e *ast.Set) (interface{}, error) {
	r.resolveExpr(e.Value)
	r.resolveExpr(e.Object)
	return nil, nil
}

func (r *Resolver) VisitSuperExpr(e *ast.Super) (interface{}, error) {
	if r.currentClass == classNone {
		r.error(e.Keyword.Line, "", "Cannot use 'super' outside of a class.")
	} else if r.currentClass != classSubclass {
		r.error(e.Keyword.Line, "", "Cannot use 'super' in a class with no superclass.")
	}
	r.resolveLocal(e, "super")
	return nil, nil
}

func (r *Resolver) VisitThisExpr(e *ast.This) (interface{}, error) {
	if r.currentClass == classNone {
		r.error(e.Keyword.Line, "", "Cannot use 'this' outside of a class.")
		return nil, nil
	}
	r.resolveLocal(e, "this")
	return nil, nil
}

func (r *Resolver) VisitUnaryExpr(e *ast.Unary) (interface{}, error) {
	r.resolveExpr(e.Right)
	return nil, nil
}

func (r *Resolver) VisitVariableExpr(e *ast.Variable) (interface{}, error) {
	if len(r.scopes) > 0 {
		if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
			r.error(e.Name.Line, e.Name.Lexeme, "Cannot read local variable in its own initializer.")
		}
	}
	r.resolveLocal(e, e.Name.Lexeme)
	return nil, nil
}
