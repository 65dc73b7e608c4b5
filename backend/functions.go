// Package backend describes the set of entry points the renderer needs from a
// stateful, handle-based graphics API.
//
// A Functions table is resolved once per context (see backend/gogl for the
// OpenGL loader). A nil entry means the capability is absent, and any
// operation needing it fails with an *UnsupportedError instead of silently
// doing nothing.
//
// The table carries no state of its own. Bound objects, the current program
// and the active texture unit live in the context the table was loaded for,
// which must be current on the calling thread before any entry is called.
package backend

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

type Functions struct {
	// Shaders and programs
	CreateShader      func(xtype uint32) uint32
	ShaderSource      func(shader uint32, src string)
	CompileShader     func(shader uint32)
	GetShaderiv       func(shader uint32, pname uint32) int32
	GetShaderInfoLog  func(shader uint32, bufSize int32) string
	DeleteShader      func(shader uint32)
	CreateProgram     func() uint32
	AttachShader      func(program, shader uint32)
	LinkProgram       func(program uint32)
	GetProgramiv      func(program uint32, pname uint32) int32
	GetProgramInfoLog func(program uint32, bufSize int32) string
	UseProgram        func(program uint32)
	DeleteProgram     func(program uint32)

	// Buffers and vertex arrays
	GenVertexArray          func() uint32
	BindVertexArray         func(array uint32)
	DeleteVertexArray       func(array uint32)
	GenBuffer               func() uint32
	BindBuffer              func(target, buffer uint32)
	BufferData              func(target uint32, data []float32, usage uint32)
	DeleteBuffer            func(buffer uint32)
	VertexAttribPointer     func(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	EnableVertexAttribArray func(index uint32)

	// Textures
	GenTexture     func() uint32
	ActiveTexture  func(unit uint32)
	BindTexture    func(target, texture uint32)
	TexParameteri  func(target, pname uint32, param int32)
	TexImage2D     func(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte)
	GenerateMipmap func(target uint32)
	DeleteTexture  func(texture uint32)

	// Drawing
	DrawArrays func(mode uint32, first, count int32)
	ClearColor func(r, g, b, a float32)
	Clear      func(mask uint32)
}

var (
	ShaderFuncs = []string{
		"CreateShader", "ShaderSource", "CompileShader", "GetShaderiv", "GetShaderInfoLog", "DeleteShader",
	}

	ProgramFuncs = []string{
		"CreateProgram", "AttachShader", "LinkProgram", "GetProgramiv", "GetProgramInfoLog", "UseProgram", "DeleteProgram",
	}

	DrawFuncs = []string{
		"UseProgram",
		"GenVertexArray", "BindVertexArray", "DeleteVertexArray",
		"GenBuffer", "BindBuffer", "BufferData", "DeleteBuffer",
		"VertexAttribPointer", "EnableVertexAttribArray",
		"GenTexture", "ActiveTexture", "BindTexture", "TexParameteri", "TexImage2D", "GenerateMipmap", "DeleteTexture",
		"DrawArrays",
	}

	ClearFuncs = []string{"ClearColor", "Clear"}
)

var ErrUnsupported = errors.New("unsupported backend operation")

// UnsupportedError is returned when an operation needs backend entry points
// that the current context does not provide.
type UnsupportedError struct {
	Op      string
	Missing []string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: backend is missing required functions: %s", e.Op, strings.Join(e.Missing, ", "))
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// Missing returns the names from the list whose entry is nil. Unknown names
// are reported as missing.
func (f *Functions) Missing(names ...string) []string {

	if f == nil {
		return append([]string(nil), names...)
	}

	v := reflect.ValueOf(f).Elem()

	var missing []string
	for _, name := range names {

		fv := v.FieldByName(name)
		if !fv.IsValid() || fv.Kind() != reflect.Func || fv.IsNil() {
			missing = append(missing, name)
		}
	}

	return missing
}

// Supports reports whether every named entry point is present
func (f *Functions) Supports(names ...string) bool {
	return len(f.Missing(names...)) == 0
}

// Require returns an *UnsupportedError naming op if any entry point is absent
func (f *Functions) Require(op string, names ...string) error {

	missing := f.Missing(names...)
	if len(missing) == 0 {
		return nil
	}

	return &UnsupportedError{Op: op, Missing: missing}
}
