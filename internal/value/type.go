package value

import "strings"

// Type is one of the closed set of scalar, vector and matrix kinds PSL knows.
type Type uint8

const (
	Null Type = iota
	Int
	Uint
	Bool
	Float
	Vector2
	Vector3
	Vector4
	Matrix2
	Matrix3
	Matrix4
)

type typeInfo struct {
	name       string
	spelling   string
	components int
	aliases    []string
}

var typeTable = [...]typeInfo{
	Null:    {name: "null", spelling: "void", aliases: []string{"null", "void"}},
	Int:     {name: "int32", spelling: "int", components: 1, aliases: []string{"int", "int32", "i32"}},
	Uint:    {name: "uint32", spelling: "uint", components: 1, aliases: []string{"uint", "uint32", "u32"}},
	Bool:    {name: "bool", spelling: "bool", components: 1, aliases: []string{"bool", "boolean"}},
	Float:   {name: "float32", spelling: "float", components: 1, aliases: []string{"float", "float32", "f32"}},
	Vector2: {name: "vector2f32", spelling: "vec2", components: 2, aliases: []string{"vector2", "vector2f32", "vec2"}},
	Vector3: {name: "vector3f32", spelling: "vec3", components: 3, aliases: []string{"vector3", "vector3f32", "vec3"}},
	Vector4: {name: "vector4f32", spelling: "vec4", components: 4, aliases: []string{"vector4", "vector4f32", "vec4"}},
	Matrix2: {name: "matrix2f32", spelling: "mat2", components: 4, aliases: []string{"matrix2", "matrix2f32", "mat2"}},
	Matrix3: {name: "matrix3f32", spelling: "mat3", components: 9, aliases: []string{"matrix3", "matrix3f32", "mat3"}},
	Matrix4: {name: "matrix4f32", spelling: "mat4", components: 16, aliases: []string{"matrix4", "matrix4f32", "mat4"}},
}

// aliasIndex maps lower-cased source aliases to their type.
var aliasIndex = func() map[string]Type {
	m := make(map[string]Type)
	for t, info := range typeTable {
		for _, a := range info.aliases {
			m[a] = Type(t)
		}
	}
	return m
}()

// LookupType resolves a source-text alias, ignoring case.
func LookupType(alias string) (Type, bool) {
	t, ok := aliasIndex[strings.ToLower(alias)]
	return t, ok
}

// Name returns the canonical name.
func (t Type) Name() string { return t.info().name }

// Spelling returns the target-language spelling (GLSL).
func (t Type) Spelling() string { return t.info().spelling }

// Components is the number of scalar components a constructor of t accepts at
// most; 0 for Null.
func (t Type) Components() int { return t.info().components }

// Aliases lists the source-text spellings accepted for t.
func (t Type) Aliases() []string {
	out := make([]string, len(t.info().aliases))
	copy(out, t.info().aliases)
	return out
}

// IsScalar reports whether t holds a single component.
func (t Type) IsScalar() bool { return t.Components() == 1 }

func (t Type) IsVector() bool { return t >= Vector2 && t <= Vector4 }
func (t Type) IsMatrix() bool { return t >= Matrix2 && t <= Matrix4 }

func (t Type) String() string { return t.Name() }

func (t Type) info() typeInfo {
	if int(t) >= len(typeTable) {
		return typeTable[Null]
	}
	return typeTable[t]
}
