package lower

import (
	"math"
	"reflect"

	"github.com/nyxlang/nyxc/internal/ast"
	"github.com/nyxlang/nyxc/internal/config"
	"github.com/nyxlang/nyxc/internal/diagnostics"
	"github.com/nyxlang/nyxc/internal/infer"
	"github.com/nyxlang/nyxc/internal/ir"
	"github.com/nyxlang/nyxc/internal/items"
	"github.com/nyxlang/nyxc/internal/source"
	"github.com/nyxlang/nyxc/internal/typecheck"
	"github.com/nyxlang/nyxc/internal/types"
)

// identityOf returns the stable identity of a struct declaration, used
// both as the types.Store struct key and as the key into a Problem's
// struct field-name table.
func identityOf(decl *ast.Struct) uintptr {
	return reflect.ValueOf(decl).Pointer()
}

// Lower is the two-pass driver: first every function and const gets
// its signature/initializer mapped (so references between items never
// depend on visitation order), then each function with a body is
// type-checked, solved, and lowered into IR blocks.
func Lower(mod *ast.Module, store *items.Store, srcTypes *types.Store, settings config.Settings) (*ir.Program, error) {
	prog := ir.NewProgram()
	mapping := newMappingStore(srcTypes, prog)

	d := &driver{prog: prog, mapping: mapping, store: store, srcTypes: srcTypes, settings: settings,
		module:       items.NewScope[typecheck.Scoped](),
		funcValue:    make(map[*ast.Function]LRValue),
		funcIR:       make(map[*ast.Function]ir.Function),
		constValue:   make(map[*ast.Const]LRValue),
		funcParamTys: make(map[*ast.Function][]types.Type),
		funcRetTy:    make(map[*ast.Function]types.Type),
	}

	for _, fn := range store.Functions() {
		if err := d.mapFunction(fn); err != nil {
			return nil, err
		}
	}
	for _, c := range store.Consts() {
		if err := d.mapConstant(c); err != nil {
			return nil, err
		}
	}

	mainFn, hasMain := store.Main()
	if hasMain {
		irFn, ok := d.funcIR[mainFn]
		if !ok {
			return nil, diagnostics.New(diagnostics.MainFunctionMustHaveBody, mainFn.Sp,
				"function 'main' must have a body")
		}
		prog.Main = irFn
	}

	for _, fn := range store.Functions() {
		if fn.Body == nil {
			continue
		}
		if err := d.lowerFunctionBody(fn); err != nil {
			return nil, err
		}
	}

	return prog, nil
}

type driver struct {
	prog       *ir.Program
	mapping    *mappingStore
	store      *items.Store
	srcTypes   *types.Store
	settings   config.Settings
	module     *items.Scope[typecheck.Scoped]
	funcValue  map[*ast.Function]LRValue
	funcIR     map[*ast.Function]ir.Function
	constValue map[*ast.Const]LRValue

	funcParamTys map[*ast.Function][]types.Type
	funcRetTy    map[*ast.Function]types.Type
}

func (d *driver) resolveType(t ast.Type) (types.Type, error) {
	return resolveTopLevelType(d.srcTypes, d.store, t)
}

// mapFunction computes a function's IR type and declares it at module
// scope. A function may be declared `extern` and still carry a body:
// that combination marks it exported/globally-named rather than a pure
// declaration, which is reserved for `extern` without a body.
func (d *driver) mapFunction(decl *ast.Function) error {
	paramTys := make([]types.Type, len(decl.Params))
	for i, p := range decl.Params {
		ty, err := d.resolveType(p.Type)
		if err != nil {
			return err
		}
		paramTys[i] = ty
	}
	retTy, err := d.resolveType(decl.Ret)
	if err != nil {
		return err
	}
	srcFuncTy := d.srcTypes.Function(paramTys, retTy)
	d.module.Declare(decl.Name, typecheck.ModuleBinding(srcFuncTy))
	d.funcParamTys[decl] = paramTys
	d.funcRetTy[decl] = retTy

	switch {
	case !decl.Extern && decl.Body == nil:
		return diagnostics.Newf(diagnostics.MissingFunctionBody, decl.Sp,
			"function %q has no body and is not declared extern", decl.Name.Name)

	case decl.Extern && decl.Body == nil:
		irParams := make([]ir.Type, len(paramTys))
		for i, t := range paramTys {
			irParams[i] = d.mapping.Map(t)
		}
		irTy := d.prog.DefineTypeFunc(irParams, d.mapping.Map(retTy))
		ext := d.prog.DefineExtern(ir.ExternInfo{Name: decl.Name.Name, Ty: irTy})
		d.funcValue[decl] = right(TypedValue{Ty: srcFuncTy, IR: ir.Value{Kind: ir.ValExtern, Ext: ext}})
		return nil

	default: // has a body; decl.Extern marks it exported/globally-named
		irParams := make([]ir.Type, len(paramTys))
		for i, t := range paramTys {
			irParams[i] = d.mapping.Map(t)
		}
		irRetTy := d.mapping.Map(retTy)
		irFuncTy := d.prog.DefineTypeFunc(irParams, irRetTy)

		debugName := decl.Name.Name
		info := ir.FunctionInfo{Ty: irFuncTy, FuncTy: ir.FunctionType{Params: irParams, Ret: irRetTy}, DebugName: &debugName}
		if decl.Extern {
			info.GlobalName = &debugName
		}
		fnHandle := d.prog.DefineFunction(info)
		d.funcIR[decl] = fnHandle
		d.funcValue[decl] = right(TypedValue{Ty: srcFuncTy, IR: ir.Value{Kind: ir.ValFunc, Func: fnHandle}})
		return nil
	}
}

// mapConstant lowers a const declaration's initializer, which must be
// a literal (IntLit, BoolLit, StringLit, or Null): constant folding of
// arbitrary expressions is out of scope.
func (d *driver) mapConstant(decl *ast.Const) error {
	var declaredTy types.Type
	hasDeclaredTy := decl.Type != nil
	if hasDeclaredTy {
		ty, err := d.resolveType(decl.Type)
		if err != nil {
			return err
		}
		declaredTy = ty
	}

	switch init := decl.Init.(type) {
	case *ast.IntLit:
		ty := declaredTy
		if !hasDeclaredTy {
			ty = d.srcTypes.Int()
		}
		if err := checkIntegerType(d.srcTypes, ty, decl.Sp); err != nil {
			return err
		}
		if init.Value < math.MinInt32 || init.Value > math.MaxInt32 {
			return diagnostics.Newf(diagnostics.InvalidLiteral, init.Sp, "integer literal %d out of range", init.Value)
		}
		irTy := d.mapping.Map(ty)
		val := ir.Value{Kind: ir.ValConst, ConstTy: irTy, ConstValue: int32(init.Value)}
		d.module.Declare(decl.Name, typecheck.ModuleBinding(ty))
		d.constValue[decl] = right(TypedValue{Ty: ty, IR: val})
		return nil

	case *ast.BoolLit:
		if err := checkTypeMatch(d.srcTypes, hasDeclaredTy, declaredTy, d.srcTypes.Bool(), decl.Sp); err != nil {
			return err
		}
		n := int32(0)
		if init.Value {
			n = 1
		}
		val := ir.Value{Kind: ir.ValConst, ConstTy: d.prog.TyBool, ConstValue: n}
		d.module.Declare(decl.Name, typecheck.ModuleBinding(d.srcTypes.Bool()))
		d.constValue[decl] = right(TypedValue{Ty: d.srcTypes.Bool(), IR: val})
		return nil

	case *ast.StringLit:
		strTy := d.srcTypes.Pointer(d.srcTypes.Byte())
		if err := checkTypeMatch(d.srcTypes, hasDeclaredTy, declaredTy, strTy, decl.Sp); err != nil {
			return err
		}
		byteTy := d.prog.DefineTypeInteger(8)
		dat := d.prog.DefineData(ir.DataInfo{Ty: d.prog.TyPtr, InnerTy: byteTy, Bytes: []byte(init.Value)})
		val := ir.Value{Kind: ir.ValData, Dat: dat}
		d.module.Declare(decl.Name, typecheck.ModuleBinding(strTy))
		d.constValue[decl] = right(TypedValue{Ty: strTy, IR: val})
		return nil

	case *ast.NullLit:
		ptrTy := declaredTy
		if !hasDeclaredTy {
			ptrTy = d.srcTypes.Pointer(d.srcTypes.Placeholder())
		}
		if err := checkPointerType(d.srcTypes, ptrTy, decl.Sp); err != nil {
			return err
		}
		val := ir.Value{Kind: ir.ValConst, ConstTy: d.prog.TyPtr, ConstValue: 0}
		d.module.Declare(decl.Name, typecheck.ModuleBinding(ptrTy))
		d.constValue[decl] = right(TypedValue{Ty: ptrTy, IR: val})
		return nil

	default:
		return diagnostics.Newf(diagnostics.InvalidLiteral, decl.Sp,
			"const initializer must be a literal; only simple literal constants are supported")
	}
}

// registerStructFieldsDeep walks ty's structure and registers every
// struct it reaches on problem, so StructIndex constraints encountered
// while checking a function whose only mention of the struct is via a
// parameter or return type (never written out as a type annotation
// inside the body) can still resolve field names to positions.
func registerStructFieldsDeep(problem *infer.Problem, store *types.Store, itemStore *items.Store, ty types.Type, seen map[types.Type]bool) error {
	if seen[ty] {
		return nil
	}
	seen[ty] = true
	info := store.Get(ty)
	switch info.Kind {
	case types.KPointer:
		return registerStructFieldsDeep(problem, store, itemStore, info.Pointee, seen)
	case types.KArray:
		return registerStructFieldsDeep(problem, store, itemStore, info.Inner, seen)
	case types.KTuple:
		for _, f := range info.Fields {
			if err := registerStructFieldsDeep(problem, store, itemStore, f, seen); err != nil {
				return err
			}
		}
	case types.KFunction:
		for _, p := range info.Params {
			if err := registerStructFieldsDeep(problem, store, itemStore, p, seen); err != nil {
				return err
			}
		}
		return registerStructFieldsDeep(problem, store, itemStore, info.Ret, seen)
	case types.KStruct:
		decl, err := itemStore.Struct(ast.Identifier{Name: info.StructName})
		if err != nil {
			return err
		}
		names := make([]string, len(decl.Fields))
		for i, f := range decl.Fields {
			names[i] = f.Name.Name
		}
		problem.RegisterStructFields(info.StructDecl, names)
		for _, f := range info.StructFields {
			if err := registerStructFieldsDeep(problem, store, itemStore, f, seen); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkTypeMatch(store *types.Store, hasDeclared bool, declared, actual types.Type, span source.Span) error {
	if !hasDeclared {
		return nil
	}
	if declared != actual {
		return diagnostics.Newf(diagnostics.TypeMismatch, span,
			"expected %s, found %s", store.String(declared), store.String(actual))
	}
	return nil
}

func checkIntegerType(store *types.Store, ty types.Type, span source.Span) error {
	kind := store.Get(ty).Kind
	if kind != types.KInt && kind != types.KByte {
		return diagnostics.Newf(diagnostics.ExpectIntegerType, span, "expected an integer type, found %s", store.String(ty))
	}
	return nil
}

func checkPointerType(store *types.Store, ty types.Type, span source.Span) error {
	if store.Get(ty).Kind != types.KPointer {
		return diagnostics.Newf(diagnostics.ExpectPointerType, span, "expected a pointer type, found %s", store.String(ty))
	}
	return nil
}

// resolveTopLevelType converts a parameter/return/field ast.Type
// (nil meaning void, used for omitted return types) to a source Type.
func resolveTopLevelType(store *types.Store, itemStore *items.Store, t ast.Type) (types.Type, error) {
	r := &typeResolver{store: store, itemStore: itemStore}
	return r.resolve(t)
}

type typeResolver struct {
	store     *types.Store
	itemStore *items.Store
}

func (r *typeResolver) resolve(t ast.Type) (types.Type, error) {
	switch n := t.(type) {
	case nil:
		return r.store.Void(), nil
	case *ast.TypeVoid:
		return r.store.Void(), nil
	case *ast.TypeBool:
		return r.store.Bool(), nil
	case *ast.TypeByte:
		return r.store.Byte(), nil
	case *ast.TypeInt:
		return r.store.Int(), nil
	case *ast.TypeWildcard:
		return r.store.Wildcard(), nil
	case *ast.TypeRef:
		inner, err := r.resolve(n.Inner)
		if err != nil {
			return 0, err
		}
		return r.store.Pointer(inner), nil
	case *ast.TypeTuple:
		fields := make([]types.Type, len(n.Elements))
		for i, e := range n.Elements {
			f, err := r.resolve(e)
			if err != nil {
				return 0, err
			}
			fields[i] = f
		}
		return r.store.Tuple(fields), nil
	case *ast.TypeFunc:
		params := make([]types.Type, len(n.Params))
		for i, e := range n.Params {
			p, err := r.resolve(e)
			if err != nil {
				return 0, err
			}
			params[i] = p
		}
		ret, err := r.resolve(n.Ret)
		if err != nil {
			return 0, err
		}
		return r.store.Function(params, ret), nil
	case *ast.TypeArray:
		inner, err := r.resolve(n.Inner)
		if err != nil {
			return 0, err
		}
		return r.store.Array(inner, n.Length), nil
	case *ast.TypeNamed:
		last := n.Path.Parts[len(n.Path.Parts)-1]
		decl, err := r.itemStore.Struct(last)
		if err != nil {
			return 0, err
		}
		fields := make([]types.Type, len(decl.Fields))
		for i, f := range decl.Fields {
			ft, err := r.resolve(f.Type)
			if err != nil {
				return 0, err
			}
			fields[i] = ft
		}
		return r.store.Struct(identityOf(decl), decl.Name.Name, fields), nil
	default:
		diagnostics.Bug("unhandled type syntax %T", t)
		return 0, nil
	}
}
