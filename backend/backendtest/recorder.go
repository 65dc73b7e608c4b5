// Package backendtest provides a recording fake of backend.Functions so
// dispatch sequences can be checked without a GPU or a window.
package backendtest

import (
	"github.com/bloeys/libgraphics/backend"
)

type Call struct {
	Name string
	Args []any
}

// Recorder logs every backend call in order. Handles are handed out from a
// single counter starting at 1, so 0 always means "no object".
type Recorder struct {
	Calls []Call

	FailCompile bool
	CompileLog  string
	FailLink    bool
	LinkLog     string

	lastHandle uint32
	deleted    map[uint32]int
}

func New() *Recorder {
	return &Recorder{deleted: make(map[uint32]int)}
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) handle(name string) uint32 {
	r.lastHandle++
	r.record(name, r.lastHandle)
	return r.lastHandle
}

func (r *Recorder) remove(name string, id uint32) {
	r.deleted[id]++
	r.record(name, id)
}

// Count returns how many times the named function was called
func (r *Recorder) Count(name string) int {

	n := 0
	for i := 0; i < len(r.Calls); i++ {
		if r.Calls[i].Name == name {
			n++
		}
	}

	return n
}

// Find returns every call of the named function in call order
func (r *Recorder) Find(name string) []Call {

	var out []Call
	for i := 0; i < len(r.Calls); i++ {
		if r.Calls[i].Name == name {
			out = append(out, r.Calls[i])
		}
	}

	return out
}

// Last returns the most recent call of the named function
func (r *Recorder) Last(name string) (Call, bool) {

	for i := len(r.Calls) - 1; i >= 0; i-- {
		if r.Calls[i].Name == name {
			return r.Calls[i], true
		}
	}

	return Call{}, false
}

// Names returns the call names in order
func (r *Recorder) Names() []string {

	names := make([]string, len(r.Calls))
	for i := 0; i < len(r.Calls); i++ {
		names[i] = r.Calls[i].Name
	}

	return names
}

// DeleteCount returns how many times the handle was passed to any Delete* call
func (r *Recorder) DeleteCount(id uint32) int {
	return r.deleted[id]
}

func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// Functions returns a table with every entry point wired to the recorder
func (r *Recorder) Functions() *backend.Functions {

	return &backend.Functions{
		CreateShader: func(xtype uint32) uint32 {
			r.lastHandle++
			r.record("CreateShader", xtype, r.lastHandle)
			return r.lastHandle
		},
		ShaderSource:  func(shader uint32, src string) { r.record("ShaderSource", shader, src) },
		CompileShader: func(shader uint32) { r.record("CompileShader", shader) },
		GetShaderiv: func(shader, pname uint32) int32 {
			r.record("GetShaderiv", shader, pname)
			return r.status(pname, r.FailCompile, r.CompileLog)
		},
		GetShaderInfoLog: func(shader uint32, bufSize int32) string {
			r.record("GetShaderInfoLog", shader, bufSize)
			return r.CompileLog
		},
		DeleteShader:  func(shader uint32) { r.remove("DeleteShader", shader) },
		CreateProgram: func() uint32 { return r.handle("CreateProgram") },
		AttachShader:  func(program, shader uint32) { r.record("AttachShader", program, shader) },
		LinkProgram:   func(program uint32) { r.record("LinkProgram", program) },
		GetProgramiv: func(program, pname uint32) int32 {
			r.record("GetProgramiv", program, pname)
			return r.status(pname, r.FailLink, r.LinkLog)
		},
		GetProgramInfoLog: func(program uint32, bufSize int32) string {
			r.record("GetProgramInfoLog", program, bufSize)
			return r.LinkLog
		},
		UseProgram:    func(program uint32) { r.record("UseProgram", program) },
		DeleteProgram: func(program uint32) { r.remove("DeleteProgram", program) },

		GenVertexArray:    func() uint32 { return r.handle("GenVertexArray") },
		BindVertexArray:   func(array uint32) { r.record("BindVertexArray", array) },
		DeleteVertexArray: func(array uint32) { r.remove("DeleteVertexArray", array) },
		GenBuffer:         func() uint32 { return r.handle("GenBuffer") },
		BindBuffer:        func(target, buffer uint32) { r.record("BindBuffer", target, buffer) },
		BufferData: func(target uint32, data []float32, usage uint32) {
			r.record("BufferData", target, append([]float32(nil), data...), usage)
		},
		DeleteBuffer: func(buffer uint32) { r.remove("DeleteBuffer", buffer) },
		VertexAttribPointer: func(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
			r.record("VertexAttribPointer", index, size, xtype, normalized, stride, offset)
		},
		EnableVertexAttribArray: func(index uint32) { r.record("EnableVertexAttribArray", index) },

		GenTexture:    func() uint32 { return r.handle("GenTexture") },
		ActiveTexture: func(unit uint32) { r.record("ActiveTexture", unit) },
		BindTexture:   func(target, texture uint32) { r.record("BindTexture", target, texture) },
		TexParameteri: func(target, pname uint32, param int32) { r.record("TexParameteri", target, pname, param) },
		TexImage2D: func(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte) {
			r.record("TexImage2D", target, level, internalFormat, width, height, format, xtype, append([]byte(nil), pixels...))
		},
		GenerateMipmap: func(target uint32) { r.record("GenerateMipmap", target) },
		DeleteTexture:  func(texture uint32) { r.remove("DeleteTexture", texture) },

		DrawArrays: func(mode uint32, first, count int32) { r.record("DrawArrays", mode, first, count) },
		ClearColor: func(red, green, blue, alpha float32) { r.record("ClearColor", red, green, blue, alpha) },
		Clear:      func(mask uint32) { r.record("Clear", mask) },
	}
}

// status answers compile/link status and info log length queries
func (r *Recorder) status(pname uint32, fail bool, log string) int32 {

	switch pname {
	case backend.CompileStatus, backend.LinkStatus:
		if fail {
			return int32(backend.False)
		}
		return int32(backend.True)

	case backend.InfoLogLength:
		if log == "" {
			return 0
		}
		// Lengths include the null terminator
		return int32(len(log) + 1)
	}

	return 0
}
