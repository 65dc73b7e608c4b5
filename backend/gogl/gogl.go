// Package gogl loads backend.Functions from OpenGL through go-gl.
//
// The 3.3 compatibility profile is used because the renderer draws quads.
package gogl

import (
	"strings"

	"github.com/bloeys/libgraphics/backend"
	"github.com/go-gl/gl/v3.3-compatibility/gl"
)

// Load initializes go-gl for the context current on the calling thread.
// It fails if the driver does not expose the 3.3 entry points.
func Load() (*backend.Functions, error) {

	if err := gl.Init(); err != nil {
		return nil, err
	}

	// Texture rows are tightly packed RGB, which is rarely 4 byte aligned
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	return &backend.Functions{
		CreateShader: gl.CreateShader,
		ShaderSource: func(shader uint32, src string) {
			shaderCStr, shaderFree := gl.Strs(src + "\x00")
			defer shaderFree()
			gl.ShaderSource(shader, 1, shaderCStr, nil)
		},
		CompileShader: gl.CompileShader,
		GetShaderiv: func(shader, pname uint32) int32 {
			var v int32
			gl.GetShaderiv(shader, pname, &v)
			return v
		},
		GetShaderInfoLog: func(shader uint32, bufSize int32) string {
			log := gl.Str(strings.Repeat("\x00", int(bufSize)))
			gl.GetShaderInfoLog(shader, bufSize, nil, log)
			return gl.GoStr(log)
		},
		DeleteShader:  gl.DeleteShader,
		CreateProgram: gl.CreateProgram,
		AttachShader:  gl.AttachShader,
		LinkProgram:   gl.LinkProgram,
		GetProgramiv: func(program, pname uint32) int32 {
			var v int32
			gl.GetProgramiv(program, pname, &v)
			return v
		},
		GetProgramInfoLog: func(program uint32, bufSize int32) string {
			log := gl.Str(strings.Repeat("\x00", int(bufSize)))
			gl.GetProgramInfoLog(program, bufSize, nil, log)
			return gl.GoStr(log)
		},
		UseProgram:    gl.UseProgram,
		DeleteProgram: gl.DeleteProgram,

		GenVertexArray: func() uint32 {
			var id uint32
			gl.GenVertexArrays(1, &id)
			return id
		},
		BindVertexArray: gl.BindVertexArray,
		DeleteVertexArray: func(array uint32) {
			gl.DeleteVertexArrays(1, &array)
		},
		GenBuffer: func() uint32 {
			var id uint32
			gl.GenBuffers(1, &id)
			return id
		},
		BindBuffer: gl.BindBuffer,
		BufferData: func(target uint32, data []float32, usage uint32) {
			if len(data) == 0 {
				gl.BufferData(target, 0, gl.Ptr(nil), usage)
			} else {
				gl.BufferData(target, len(data)*4, gl.Ptr(&data[0]), usage)
			}
		},
		DeleteBuffer: func(buffer uint32) {
			gl.DeleteBuffers(1, &buffer)
		},
		VertexAttribPointer:     gl.VertexAttribPointerWithOffset,
		EnableVertexAttribArray: gl.EnableVertexAttribArray,

		GenTexture: func() uint32 {
			var id uint32
			gl.GenTextures(1, &id)
			return id
		},
		ActiveTexture: gl.ActiveTexture,
		BindTexture:   gl.BindTexture,
		TexParameteri: gl.TexParameteri,
		TexImage2D: func(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte) {
			if len(pixels) == 0 {
				gl.TexImage2D(target, level, internalFormat, width, height, 0, format, xtype, gl.Ptr(nil))
			} else {
				gl.TexImage2D(target, level, internalFormat, width, height, 0, format, xtype, gl.Ptr(&pixels[0]))
			}
		},
		GenerateMipmap: gl.GenerateMipmap,
		DeleteTexture: func(texture uint32) {
			gl.DeleteTextures(1, &texture)
		},

		DrawArrays: gl.DrawArrays,
		ClearColor: gl.ClearColor,
		Clear:      gl.Clear,
	}, nil
}
