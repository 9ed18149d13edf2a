package api

import (
	"api-commonizer/internal/pkg/common"
	"fmt"
)

type TypeKind int

const (
	KindClass TypeKind = iota
	KindTypeAlias
	KindTypeParameter
)

func (k TypeKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindTypeAlias:
		return "typealias"
	case KindTypeParameter:
		return "typeparameter"
	default:
		panic(common.SystemError{Message: "invalid type kind"})
	}
}

type Variance int

const (
	Invariant Variance = iota
	In
	Out
)

func (v Variance) String() string {
	switch v {
	case Invariant:
		return "invariant"
	case In:
		return "in"
	case Out:
		return "out"
	default:
		panic(common.SystemError{Message: "invalid variance"})
	}
}

type Type interface {
	_type()
	String() string
}

type SimpleType struct {
	Name              FullName
	Kind              TypeKind
	Arguments         []TypeArgument
	MarkedNullable    bool
	DefinitelyNotNull bool
}

func (*SimpleType) _type() {}

func (t *SimpleType) IsClassOrTypeAlias() bool {
	return t.Kind == KindClass || t.Kind == KindTypeAlias
}

func (t *SimpleType) String() string {
	args := common.Fold(func(x TypeArgument, s string) string {
		if s != "" {
			s += ", "
		}
		return s + x.String()
	}, "", t.Arguments)
	if args != "" {
		args = "[" + args + "]"
	}
	suffix := ""
	if t.MarkedNullable {
		suffix = "?"
	} else if t.DefinitelyNotNull {
		suffix = "!!"
	}
	return fmt.Sprintf("%s%s%s", t.Name, args, suffix)
}

type TypeArgument struct {
	IsStar   bool
	Variance Variance
	Type     Type
}

func StarProjection() TypeArgument {
	return TypeArgument{IsStar: true}
}

func (a TypeArgument) String() string {
	if a.IsStar {
		return "*"
	}
	if a.Variance == Invariant {
		return a.Type.String()
	}
	return fmt.Sprintf("%s %s", a.Variance, a.Type)
}

type FlexibleType struct {
	Lower *SimpleType
	Upper *SimpleType
}

func (*FlexibleType) _type() {}

func (t *FlexibleType) String() string {
	return fmt.Sprintf("%s..%s", t.Lower, t.Upper)
}
