// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"
	"reflect"
	"strings"
	"unsafe"
)

// LayoutOf derives a vertex buffer layout from the exported fields
// of the struct v. Fields tagged `gpu:"-"` are skipped.
//
// Supported field types are float32, uint8, int8, int16, int32 and
// uint32 and arrays of 2 to 4 of them, plus [9]float32 and
// [16]float32 matrices (such as mgl32.Mat4).
func LayoutOf(v any) (VertexBufferLayout, error) {
	t := structType(v)
	if t == nil {
		return VertexBufferLayout{}, fmt.Errorf("gpu: layout of %T: not a struct", v)
	}
	l := VertexBufferLayout{Stride: int(t.Size())}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("gpu") == "-" {
			continue
		}
		vf, ok := vertexFormatOf(f.Type)
		if !ok {
			return VertexBufferLayout{}, fmt.Errorf("gpu: layout of %T: unsupported field %s %v", v, f.Name, f.Type)
		}
		l.Attributes = append(l.Attributes, VertexAttribute{Format: vf, Offset: int(f.Offset)})
	}
	return l, nil
}

// MustLayoutOf is like LayoutOf but panics on error.
func MustLayoutOf(v any) VertexBufferLayout {
	l, err := LayoutOf(v)
	if err != nil {
		panic(err)
	}
	return l
}

// UniformsOf derives uniform descriptors from the exported fields of
// the struct v. The uniform name is the `gpu` tag, or the field
// name. Arrays of supported types become uniform arrays.
func UniformsOf(v any) ([]UniformDesc, error) {
	t := structType(v)
	if t == nil {
		return nil, fmt.Errorf("gpu: uniforms of %T: not a struct", v)
	}
	var us []UniformDesc
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("gpu")
		if !f.IsExported() || tag == "-" {
			continue
		}
		name := f.Name
		if tag != "" {
			name = tag
		}
		u := UniformDesc{Name: name, Count: 1, Offset: int(f.Offset)}
		typ, ok := uniformTypeOf(f.Type)
		if !ok && f.Type.Kind() == reflect.Array {
			typ, ok = uniformTypeOf(f.Type.Elem())
			u.Count = f.Type.Len()
		}
		if !ok {
			return nil, fmt.Errorf("gpu: uniforms of %T: unsupported field %s %v", v, f.Name, f.Type)
		}
		u.Type = typ
		us = append(us, u)
	}
	return us, nil
}

// MustUniformsOf is like UniformsOf but panics on error.
func MustUniformsOf(v any) []UniformDesc {
	us, err := UniformsOf(v)
	if err != nil {
		panic(err)
	}
	return us
}

// UniformNames returns the names of us, for ShaderDesc.Uniforms.
func UniformNames(us []UniformDesc) []string {
	names := make([]string, len(us))
	for i, u := range us {
		names[i] = u.Name
	}
	return names
}

// AttributeNames returns the lower-cased field names of the struct v
// in layout order, prefixed by prefix.
func AttributeNames(v any, prefix string) []string {
	t := structType(v)
	if t == nil {
		return nil
	}
	var names []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("gpu") == "-" {
			continue
		}
		names = append(names, prefix+strings.ToLower(f.Name))
	}
	return names
}

// Bytes returns the memory of v as bytes. v is a slice, a pointer
// or a value of fixed size types. Slices and pointers are viewed in
// place; other values are copied.
func Bytes(v any) []byte {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		n := rv.Len()
		if n == 0 {
			return nil
		}
		size := int(rv.Type().Elem().Size())
		return unsafe.Slice((*byte)(rv.UnsafePointer()), n*size)
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return unsafe.Slice((*byte)(rv.UnsafePointer()), int(rv.Type().Elem().Size()))
	default:
		p := reflect.New(rv.Type())
		p.Elem().Set(rv)
		return unsafe.Slice((*byte)(p.UnsafePointer()), int(rv.Type().Size()))
	}
}

func structType(v any) reflect.Type {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	return t
}

func vertexFormatOf(t reflect.Type) (VertexFormat, bool) {
	base, n := t, 1
	if t.Kind() == reflect.Array {
		base, n = t.Elem(), t.Len()
	}
	if base.Kind() == reflect.Float32 {
		switch n {
		case 9:
			return Float3x3, true
		case 16:
			return Float4x4, true
		}
	}
	if n < 1 || n > 4 {
		return 0, false
	}
	var first VertexFormat
	switch base.Kind() {
	case reflect.Uint8:
		first = Byte
	case reflect.Int8:
		first = SByte
	case reflect.Int16:
		first = Short
	case reflect.Int32:
		first = Int
	case reflect.Uint32:
		first = UInt
	case reflect.Float32:
		first = Float
	default:
		return 0, false
	}
	return first + VertexFormat(n-1), true
}

func uniformTypeOf(t reflect.Type) (UniformType, bool) {
	base, n := t, 1
	if t.Kind() == reflect.Array {
		base, n = t.Elem(), t.Len()
	}
	if base.Kind() == reflect.Float32 {
		switch n {
		case 9:
			return UniformFloat3x3, true
		case 16:
			return UniformFloat4x4, true
		}
	}
	if n < 1 || n > 4 {
		return 0, false
	}
	var first UniformType
	switch base.Kind() {
	case reflect.Uint32:
		first = UniformUInt
	case reflect.Int32:
		first = UniformInt
	case reflect.Float32:
		first = UniformFloat
	default:
		return 0, false
	}
	return first + UniformType(n-1), true
}
