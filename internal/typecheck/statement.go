package typecheck

import (
	"github.com/nyxlang/nyxc/internal/ast"
	"github.com/nyxlang/nyxc/internal/diagnostics"
	"github.com/nyxlang/nyxc/internal/items"
)

func (c *Checker) visitBlock(scope *items.Scope[Scoped], block *ast.Block) error {
	inner := scope.Nest()
	for _, st := range block.Statements {
		if err := c.visitStatement(inner, st); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) visitStatement(scope *items.Scope[Scoped], st ast.Statement) error {
	switch n := st.(type) {
	case *ast.VariableDecl:
		return c.visitVariableDecl(scope, n)

	case *ast.AssignStatement:
		targetVar, err := c.visitExpr(scope, n.Target)
		if err != nil {
			return err
		}
		valueVar, err := c.visitExpr(scope, n.Value)
		if err != nil {
			return err
		}
		return c.problem.Equal(targetVar, valueVar)

	case *ast.IfStatement:
		condVar, err := c.visitExpr(scope, n.Cond)
		if err != nil {
			return err
		}
		if err := c.problem.Known(condVar, c.store.Bool()); err != nil {
			return err
		}
		if err := c.visitBlock(scope, n.Then); err != nil {
			return err
		}
		if n.Else != nil {
			if err := c.visitBlock(scope, n.Else); err != nil {
				return err
			}
		}
		return nil

	case *ast.WhileStatement:
		condVar, err := c.visitExpr(scope, n.Cond)
		if err != nil {
			return err
		}
		if err := c.problem.Known(condVar, c.store.Bool()); err != nil {
			return err
		}
		return c.visitBlock(scope, n.Body)

	case *ast.ForStatement:
		return c.visitForStatement(scope, n)

	case *ast.BlockStatement:
		return c.visitBlock(scope, n.Block)

	case *ast.ExprStatement:
		_, err := c.visitExpr(scope, n.Expr)
		return err

	default:
		diagnostics.Bug("unhandled statement kind %T", st)
		return nil
	}
}

func (c *Checker) visitVariableDecl(scope *items.Scope[Scoped], n *ast.VariableDecl) error {
	v := c.problem.NewVar(n.Sp)
	if n.Type != nil {
		ty, err := c.resolveType(n.Type)
		if err != nil {
			return err
		}
		if err := c.problem.Known(v, ty); err != nil {
			return err
		}
	}
	if n.Init != nil {
		initVar, err := c.visitExpr(scope, n.Init)
		if err != nil {
			return err
		}
		if err := c.problem.Equal(v, initVar); err != nil {
			return err
		}
	}
	c.declVar[n] = v
	return scope.MaybeDeclare(n.Name, localVar(v))
}

func (c *Checker) visitForStatement(scope *items.Scope[Scoped], n *ast.ForStatement) error {
	startVar, err := c.visitExpr(scope, n.Start)
	if err != nil {
		return err
	}
	endVar, err := c.visitExpr(scope, n.End)
	if err != nil {
		return err
	}

	indexVar := c.problem.NewUnknownInt(n.Sp)
	if n.IndexType != nil {
		ty, err := c.resolveType(n.IndexType)
		if err != nil {
			return err
		}
		if err := c.problem.Known(indexVar, ty); err != nil {
			return err
		}
	}
	if err := c.problem.Equal(indexVar, startVar); err != nil {
		return err
	}
	if err := c.problem.Equal(indexVar, endVar); err != nil {
		return err
	}
	c.forVar[n] = indexVar

	inner := scope.Nest()
	if err := inner.MaybeDeclare(n.Index, localVar(indexVar)); err != nil {
		return err
	}
	return c.visitBlock(inner, n.Body)
}
