/*
File    : lox/ast/expr.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package ast defines the syntax tree produced by the recursive-descent
// parser and consumed by the resolver and tree interpreter. It follows
// the teacher's NodeVisitor/Accept dispatch idiom: the tree is a closed
// sum type, and double-dispatch via Accept replaces type switches at the
// call sites.
package ast

import "github.com/akashmaji946/lox/lexer"

// Expr is any expression node. Each concrete type is a distinct pointer
// identity, used directly as the resolver side-table's key.
type Expr interface {
	AcceptExpr(v ExprVisitor) (interface{}, error)
}

// ExprVisitor dispatches over every concrete Expr variant.
type ExprVisitor interface {
	VisitAssignExpr(e *Assign) (interface{}, error)
	VisitBinaryExpr(e *Binary) (interface{}, error)
	VisitCallExpr(e *Call) (interface{}, error)
	VisitGetExpr(e *Get) (interface{}, error)
	VisitGroupingExpr(e *Grouping) (interface{}, error)
	VisitLiteralExpr(e *Literal) (interface{}, error)
	VisitLogicalExpr(e *Logical) (interface{}, error)
	VisitSetExpr(e *Set) (interface{}, error)
	VisitSuperExpr(e *Super) (interface{}, error)
	VisitThisExpr(e *This) (interface{}, error)
	VisitUnaryExpr(e *Unary) (interface{}, error)
	VisitVariableExpr(e *Variable) (interface{}, error)
}

type Assign struct {
	Name  lexer.Token
	Value Expr
}

func (e *Assign) AcceptExpr(v ExprVisitor) (interface{}, error) { return v.VisitAssignExpr(e) }

type Binary struct {
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (e *Binary) AcceptExpr(v ExprVisitor) (interface{}, error) { return v.VisitBinaryExpr(e) }

type Call struct {
	Callee    Expr
	Paren     lexer.Token // used for its line, in error reporting
	Arguments []Expr
}

func (e *Call) AcceptExpr(v ExprVisitor) (interface{}, error) { return v.VisitCallExpr(e) }

type Get struct {
	Object Expr
	Name   lexer.Token
}

func (e *Get) AcceptExpr(v ExprVisitor) (interface{}, error) { return v.VisitGetExpr(e) }

type Grouping struct {
	Expression Expr
}

func (e *Grouping) AcceptExpr(v ExprVisitor) (interface{}, error) { return v.VisitGroupingExpr(e) }

// Literal wraps a constant value: nil, bool, float64, or string.
type Literal struct {
	Value interface{}
}

func (e *Literal) AcceptExpr(v ExprVisitor) (interface{}, error) { return v.VisitLiteralExpr(e) }

type Logical struct {
	Left     Expr
	Operator lexer.Token // AND or OR
	Right    Expr
}

func (e *Logical) AcceptExpr(v ExprVisitor) (interface{}, error) { return v.VisitLogicalExpr(e) }

type Set struct {
	Object Expr
	Name   lexer.Token
	Value  Expr
}

func (e *Set) AcceptExpr(v ExprVisitor) (interface{}, error) { return v.VisitSetExpr(e) }

type Super struct {
	Keyword lexer.Token
	Method  lexer.Token
}

func (e *Super) AcceptExpr(v ExprVisitor) (interface{}, error) { return v.VisitSuperExpr(e) }

type This struct {
	Keyword lexer.Token
}

func (e *This) AcceptExpr(v ExprVisitor) (interface{}, error) { return v.VisitThisExpr(e) }

type Unary struct {
	Operator lexer.Token
	Right    Expr
}

func (e *Unary) AcceptExpr(v ExprVisitor) (interface{}, error) { return v.VisitUnaryExpr(e) }

type Variable struct {
	Name lexer.Token
}

func (e *Variable) AcceptExpr(v ExprVisitor) (interface{}, error) { return v.VisitVariableExpr(e) }
