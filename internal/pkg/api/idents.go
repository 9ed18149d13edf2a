package api

import (
	"strings"
)

type Identifier string

type ModuleName string

type PackageName string

type TargetName string

type FullName string

func (f FullName) String() string {
	return string(f)
}

func (f FullName) Package() PackageName {
	i := strings.LastIndex(string(f), ".")
	if i < 0 {
		return ""
	}
	return PackageName(f[:i])
}

func (f FullName) Identifier() Identifier {
	i := strings.LastIndex(string(f), ".")
	return Identifier(f[i+1:])
}
