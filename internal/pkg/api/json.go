package api

import (
	"api-commonizer/internal/pkg/common"
	"encoding/json"
	"fmt"
	"io"
)

// Serialized form of a target API description. The model itself stays free of
// wire concerns; these DTOs are the only place the file format is known.

type manifestDTO struct {
	Target  string      `json:"target"`
	Modules []moduleDTO `json:"modules"`
}

type moduleDTO struct {
	Name     string       `json:"name"`
	Packages []packageDTO `json:"packages"`
}

type packageDTO struct {
	Name        string         `json:"name"`
	Properties  []propertyDTO  `json:"properties,omitempty"`
	Functions   []functionDTO  `json:"functions,omitempty"`
	Classes     []classDTO     `json:"classes,omitempty"`
	TypeAliases []typeAliasDTO `json:"typeAliases,omitempty"`
}

type propertyDTO struct {
	Name  string   `json:"name"`
	IsVar bool     `json:"var,omitempty"`
	Type  *typeDTO `json:"type"`
}

type parameterDTO struct {
	Name string   `json:"name"`
	Type *typeDTO `json:"type"`
}

type functionDTO struct {
	Name           string             `json:"name"`
	TypeParameters []typeParameterDTO `json:"typeParameters,omitempty"`
	Parameters     []parameterDTO     `json:"parameters,omitempty"`
	ReturnType     *typeDTO           `json:"returnType"`
}

type classDTO struct {
	Name           string             `json:"name"`
	Kind           string             `json:"kind"`
	Modality       string             `json:"modality"`
	TypeParameters []typeParameterDTO `json:"typeParameters,omitempty"`
	Supertypes     []*typeDTO         `json:"supertypes,omitempty"`
	Constructors   []constructorDTO   `json:"constructors,omitempty"`
}

type constructorDTO struct {
	Parameters []parameterDTO `json:"parameters,omitempty"`
}

type typeAliasDTO struct {
	Name           string             `json:"name"`
	TypeParameters []typeParameterDTO `json:"typeParameters,omitempty"`
	Underlying     *typeDTO           `json:"underlying"`
}

type typeParameterDTO struct {
	Name        string     `json:"name"`
	Variance    string     `json:"variance,omitempty"`
	UpperBounds []*typeDTO `json:"upperBounds,omitempty"`
}

// typeDTO covers both sides of the Type union: a flexible type carries
// lower/upper, a simple type everything else.
type typeDTO struct {
	Name              string   `json:"name,omitempty"`
	Kind              string   `json:"kind,omitempty"`
	Arguments         []argDTO `json:"arguments,omitempty"`
	Nullable          bool     `json:"nullable,omitempty"`
	DefinitelyNotNull bool     `json:"definitelyNotNull,omitempty"`
	Lower             *typeDTO `json:"lower,omitempty"`
	Upper             *typeDTO `json:"upper,omitempty"`
}

type argDTO struct {
	Star     bool     `json:"star,omitempty"`
	Variance string   `json:"variance,omitempty"`
	Type     *typeDTO `json:"type,omitempty"`
}

func DecodeManifest(r io.Reader) (*Root, error) {
	var dto manifestDTO
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&dto); err != nil {
		return nil, err
	}
	modules, err := common.MapError(decodeModule, dto.Modules)
	if err != nil {
		return nil, err
	}
	return &Root{Target: TargetName(dto.Target), Modules: modules}, nil
}

func EncodeManifest(w io.Writer, root *Root) error {
	dto := manifestDTO{
		Target:  string(root.Target),
		Modules: common.Map(encodeModule, root.Modules),
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(dto)
}

func decodeModule(dto moduleDTO) (*Module, error) {
	packages, err := common.MapError(decodePackage, dto.Packages)
	if err != nil {
		return nil, err
	}
	return &Module{Name: ModuleName(dto.Name), Packages: packages}, nil
}

func decodePackage(dto packageDTO) (*Package, error) {
	properties, err := common.MapError(decodeProperty, dto.Properties)
	if err != nil {
		return nil, err
	}
	functions, err := common.MapError(decodeFunction, dto.Functions)
	if err != nil {
		return nil, err
	}
	classes, err := common.MapError(decodeClass, dto.Classes)
	if err != nil {
		return nil, err
	}
	aliases, err := common.MapError(decodeTypeAlias, dto.TypeAliases)
	if err != nil {
		return nil, err
	}
	return &Package{
		Name:        PackageName(dto.Name),
		Properties:  properties,
		Functions:   functions,
		Classes:     classes,
		TypeAliases: aliases,
	}, nil
}

func decodeProperty(dto propertyDTO) (*Property, error) {
	t, err := decodeType(dto.Type)
	if err != nil {
		return nil, err
	}
	return &Property{Name: Identifier(dto.Name), IsVar: dto.IsVar, Type: t}, nil
}

func decodeParameter(dto parameterDTO) (*Parameter, error) {
	t, err := decodeType(dto.Type)
	if err != nil {
		return nil, err
	}
	return &Parameter{Name: Identifier(dto.Name), Type: t}, nil
}

func decodeFunction(dto functionDTO) (*Function, error) {
	typeParams, err := common.MapError(decodeTypeParameter, dto.TypeParameters)
	if err != nil {
		return nil, err
	}
	params, err := common.MapError(decodeParameter, dto.Parameters)
	if err != nil {
		return nil, err
	}
	ret, err := decodeType(dto.ReturnType)
	if err != nil {
		return nil, err
	}
	return &Function{
		Name:           Identifier(dto.Name),
		TypeParameters: typeParams,
		Parameters:     params,
		ReturnType:     ret,
	}, nil
}

func decodeClass(dto classDTO) (*Class, error) {
	kind, err := decodeClassKind(dto.Kind)
	if err != nil {
		return nil, err
	}
	modality, err := decodeModality(dto.Modality)
	if err != nil {
		return nil, err
	}
	typeParams, err := common.MapError(decodeTypeParameter, dto.TypeParameters)
	if err != nil {
		return nil, err
	}
	supertypes, err := common.MapError(decodeType, dto.Supertypes)
	if err != nil {
		return nil, err
	}
	constructors, err := common.MapError(decodeConstructor, dto.Constructors)
	if err != nil {
		return nil, err
	}
	return &Class{
		Name:           FullName(dto.Name),
		Kind:           kind,
		Modality:       modality,
		TypeParameters: typeParams,
		Supertypes:     supertypes,
		Constructors:   constructors,
	}, nil
}

func decodeConstructor(dto constructorDTO) (*Constructor, error) {
	params, err := common.MapError(decodeParameter, dto.Parameters)
	if err != nil {
		return nil, err
	}
	return &Constructor{Parameters: params}, nil
}

func decodeTypeAlias(dto typeAliasDTO) (*TypeAlias, error) {
	typeParams, err := common.MapError(decodeTypeParameter, dto.TypeParameters)
	if err != nil {
		return nil, err
	}
	underlying, err := decodeType(dto.Underlying)
	if err != nil {
		return nil, err
	}
	return &TypeAlias{
		Name:           FullName(dto.Name),
		TypeParameters: typeParams,
		Underlying:     underlying,
	}, nil
}

func decodeTypeParameter(dto typeParameterDTO) (*TypeParameter, error) {
	variance, err := decodeVariance(dto.Variance)
	if err != nil {
		return nil, err
	}
	bounds, err := common.MapError(decodeType, dto.UpperBounds)
	if err != nil {
		return nil, err
	}
	return &TypeParameter{Name: Identifier(dto.Name), Variance: variance, UpperBounds: bounds}, nil
}

func decodeType(dto *typeDTO) (Type, error) {
	if dto == nil {
		return nil, fmt.Errorf("missing type")
	}
	if dto.Lower != nil || dto.Upper != nil {
		lower, err := decodeSimpleType(dto.Lower)
		if err != nil {
			return nil, err
		}
		upper, err := decodeSimpleType(dto.Upper)
		if err != nil {
			return nil, err
		}
		return &FlexibleType{Lower: lower, Upper: upper}, nil
	}
	return decodeSimpleType(dto)
}

func decodeSimpleType(dto *typeDTO) (*SimpleType, error) {
	if dto == nil {
		return nil, fmt.Errorf("missing type bound")
	}
	if dto.Name == "" {
		return nil, fmt.Errorf("type without a name")
	}
	kind, err := decodeTypeKind(dto.Kind)
	if err != nil {
		return nil, err
	}
	args, err := common.MapError(decodeArgument, dto.Arguments)
	if err != nil {
		return nil, err
	}
	return &SimpleType{
		Name:              FullName(dto.Name),
		Kind:              kind,
		Arguments:         args,
		MarkedNullable:    dto.Nullable,
		DefinitelyNotNull: dto.DefinitelyNotNull,
	}, nil
}

func decodeArgument(dto argDTO) (TypeArgument, error) {
	if dto.Star {
		return StarProjection(), nil
	}
	variance, err := decodeVariance(dto.Variance)
	if err != nil {
		return TypeArgument{}, err
	}
	t, err := decodeType(dto.Type)
	if err != nil {
		return TypeArgument{}, err
	}
	return TypeArgument{Variance: variance, Type: t}, nil
}

func decodeTypeKind(s string) (TypeKind, error) {
	switch s {
	case "class", "":
		return KindClass, nil
	case "typealias":
		return KindTypeAlias, nil
	case "typeparameter":
		return KindTypeParameter, nil
	default:
		return 0, fmt.Errorf("unknown type kind `%s`", s)
	}
}

func decodeVariance(s string) (Variance, error) {
	switch s {
	case "invariant", "":
		return Invariant, nil
	case "in":
		return In, nil
	case "out":
		return Out, nil
	default:
		return 0, fmt.Errorf("unknown variance `%s`", s)
	}
}

func decodeClassKind(s string) (ClassKind, error) {
	switch s {
	case "class", "":
		return ClassKindClass, nil
	case "interface":
		return ClassKindInterface, nil
	case "object":
		return ClassKindObject, nil
	case "enum":
		return ClassKindEnum, nil
	default:
		return 0, fmt.Errorf("unknown class kind `%s`", s)
	}
}

func decodeModality(s string) (Modality, error) {
	switch s {
	case "final", "":
		return ModalityFinal, nil
	case "open":
		return ModalityOpen, nil
	case "abstract":
		return ModalityAbstract, nil
	case "sealed":
		return ModalitySealed, nil
	default:
		return 0, fmt.Errorf("unknown modality `%s`", s)
	}
}

func encodeModule(m *Module) moduleDTO {
	return moduleDTO{
		Name:     string(m.Name),
		Packages: common.Map(encodePackage, m.Packages),
	}
}

func encodePackage(p *Package) packageDTO {
	return packageDTO{
		Name:        string(p.Name),
		Properties:  common.Map(encodeProperty, p.Properties),
		Functions:   common.Map(encodeFunction, p.Functions),
		Classes:     common.Map(encodeClass, p.Classes),
		TypeAliases: common.Map(encodeTypeAlias, p.TypeAliases),
	}
}

func encodeProperty(p *Property) propertyDTO {
	return propertyDTO{Name: string(p.Name), IsVar: p.IsVar, Type: encodeType(p.Type)}
}

func encodeParameter(p *Parameter) parameterDTO {
	return parameterDTO{Name: string(p.Name), Type: encodeType(p.Type)}
}

func encodeFunction(f *Function) functionDTO {
	return functionDTO{
		Name:           string(f.Name),
		TypeParameters: common.Map(encodeTypeParameter, f.TypeParameters),
		Parameters:     common.Map(encodeParameter, f.Parameters),
		ReturnType:     encodeType(f.ReturnType),
	}
}

func encodeClass(c *Class) classDTO {
	return classDTO{
		Name:           string(c.Name),
		Kind:           c.Kind.String(),
		Modality:       c.Modality.String(),
		TypeParameters: common.Map(encodeTypeParameter, c.TypeParameters),
		Supertypes:     common.Map(encodeType, c.Supertypes),
		Constructors:   common.Map(encodeConstructor, c.Constructors),
	}
}

func encodeConstructor(c *Constructor) constructorDTO {
	return constructorDTO{Parameters: common.Map(encodeParameter, c.Parameters)}
}

func encodeTypeAlias(a *TypeAlias) typeAliasDTO {
	return typeAliasDTO{
		Name:           string(a.Name),
		TypeParameters: common.Map(encodeTypeParameter, a.TypeParameters),
		Underlying:     encodeType(a.Underlying),
	}
}

func encodeTypeParameter(p *TypeParameter) typeParameterDTO {
	return typeParameterDTO{
		Name:        string(p.Name),
		Variance:    p.Variance.String(),
		UpperBounds: common.Map(encodeType, p.UpperBounds),
	}
}

func encodeType(t Type) *typeDTO {
	switch x := t.(type) {
	case *SimpleType:
		return encodeSimpleType(x)
	case *FlexibleType:
		return &typeDTO{Lower: encodeSimpleType(x.Lower), Upper: encodeSimpleType(x.Upper)}
	default:
		panic(common.SystemError{Message: "invalid type case"})
	}
}

func encodeSimpleType(t *SimpleType) *typeDTO {
	return &typeDTO{
		Name:              string(t.Name),
		Kind:              t.Kind.String(),
		Arguments:         common.Map(encodeArgument, t.Arguments),
		Nullable:          t.MarkedNullable,
		DefinitelyNotNull: t.DefinitelyNotNull,
	}
}

func encodeArgument(a TypeArgument) argDTO {
	if a.IsStar {
		return argDTO{Star: true}
	}
	return argDTO{Variance: a.Variance.String(), Type: encodeType(a.Type)}
}
