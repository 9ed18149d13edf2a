package api

import (
	"api-commonizer/internal/pkg/common"
	"fmt"
)

// Root is the complete API description of one target platform.
type Root struct {
	Target  TargetName
	Modules []*Module
}

type Module struct {
	Name     ModuleName
	Packages []*Package
}

type Package struct {
	Name        PackageName
	Properties  []*Property
	Functions   []*Function
	Classes     []*Class
	TypeAliases []*TypeAlias
}

type Property struct {
	Name  Identifier
	IsVar bool
	Type  Type
}

func (p *Property) String() string {
	kw := "val"
	if p.IsVar {
		kw = "var"
	}
	return fmt.Sprintf("%s %s: %s", kw, p.Name, p.Type)
}

type Parameter struct {
	Name Identifier
	Type Type
}

type Function struct {
	Name           Identifier
	TypeParameters []*TypeParameter
	Parameters     []*Parameter
	ReturnType     Type
}

func (f *Function) String() string {
	params := common.Fold(func(p *Parameter, s string) string {
		if s != "" {
			s += ", "
		}
		return s + fmt.Sprintf("%s: %s", p.Name, p.Type)
	}, "", f.Parameters)
	return fmt.Sprintf("fun %s(%s): %s", f.Name, params, f.ReturnType)
}

type ClassKind int

const (
	ClassKindClass ClassKind = iota
	ClassKindInterface
	ClassKindObject
	ClassKindEnum
)

func (k ClassKind) String() string {
	switch k {
	case ClassKindClass:
		return "class"
	case ClassKindInterface:
		return "interface"
	case ClassKindObject:
		return "object"
	case ClassKindEnum:
		return "enum"
	default:
		panic(common.SystemError{Message: "invalid class kind"})
	}
}

type Modality int

const (
	ModalityFinal Modality = iota
	ModalityOpen
	ModalityAbstract
	ModalitySealed
)

func (m Modality) String() string {
	switch m {
	case ModalityFinal:
		return "final"
	case ModalityOpen:
		return "open"
	case ModalityAbstract:
		return "abstract"
	case ModalitySealed:
		return "sealed"
	default:
		panic(common.SystemError{Message: "invalid modality"})
	}
}

type Class struct {
	Name           FullName
	Kind           ClassKind
	Modality       Modality
	TypeParameters []*TypeParameter
	Supertypes     []Type
	Constructors   []*Constructor
}

type Constructor struct {
	Parameters []*Parameter
}

type TypeAlias struct {
	Name           FullName
	TypeParameters []*TypeParameter
	Underlying     Type
}

type TypeParameter struct {
	Name        Identifier
	Variance    Variance
	UpperBounds []Type
}
