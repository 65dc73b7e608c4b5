package shaders

import (
	"errors"

	"github.com/bloeys/libgraphics/backend"
	"github.com/bloeys/libgraphics/logging"
)

// ShaderProgram owns a linked backend program. Delete releases it exactly once.
type ShaderProgram struct {
	Id  uint32
	fns *backend.Functions
}

// NewShaderProgram links the given compiled stages into a program.
// The stages stay owned by the caller.
func NewShaderProgram(fns *backend.Functions, stages ...Shader) (*ShaderProgram, error) {

	if err := fns.Require("shaders.NewShaderProgram", backend.ProgramFuncs...); err != nil {
		return nil, err
	}

	if len(stages) == 0 {
		return nil, errors.New("a shader program needs at least one shader stage")
	}

	id := fns.CreateProgram()
	if id == 0 {
		return nil, errors.New("failed to create shader program")
	}

	for i := 0; i < len(stages); i++ {
		fns.AttachShader(id, stages[i].Id)
	}

	fns.LinkProgram(id)
	if err := getProgramLinkErrors(fns, id); err != nil {
		fns.DeleteProgram(id)
		return nil, err
	}

	return &ShaderProgram{Id: id, fns: fns}, nil
}

func (sp *ShaderProgram) Bind() {
	sp.fns.UseProgram(sp.Id)
}

func (sp *ShaderProgram) UnBind() {
	sp.fns.UseProgram(0)
}

func (sp *ShaderProgram) Delete() {

	if sp.Id == 0 {
		return
	}

	sp.fns.DeleteProgram(sp.Id)
	sp.Id = 0
}

func getProgramLinkErrors(fns *backend.Functions, progId uint32) error {

	if uint32(fns.GetProgramiv(progId, backend.LinkStatus)) == backend.True {
		return nil
	}

	errMsg := readInfoLog(fns.GetProgramiv(progId, backend.InfoLogLength), func(length int32) string {
		return fns.GetProgramInfoLog(progId, length)
	})

	logging.ErrLog.Println("Linking of shader program with id ", progId, " failed. Err: ", errMsg)
	return &LinkError{Log: errMsg}
}

// readInfoLog fetches a log of the reported length. Backends may report zero
// when they have nothing to say.
func readInfoLog(logLength int32, get func(length int32) string) string {

	if logLength <= 0 {
		return ""
	}

	log := get(logLength)
	for len(log) > 0 && log[len(log)-1] == 0 {
		log = log[:len(log)-1]
	}

	return log
}
