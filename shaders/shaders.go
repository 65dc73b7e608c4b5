package shaders

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/bloeys/libgraphics/backend"
	"github.com/bloeys/libgraphics/logging"
)

type Shader struct {
	Id   uint32
	Type ShaderType
	fns  *backend.Functions
}

func (s *Shader) Delete() {

	if s.Id == 0 {
		return
	}

	s.fns.DeleteShader(s.Id)
	s.Id = 0
}

// Sources holds the stages of one program. Geometry is optional.
type Sources struct {
	Vertex   []byte
	Fragment []byte
	Geometry []byte
}

// LoadSources reads a vertex and fragment shader from two files
func LoadSources(vertPath, fragPath string) (Sources, error) {

	vert, err := os.ReadFile(vertPath)
	if err != nil {
		logging.ErrLog.Println("Failed to read shader. Err: ", err)
		return Sources{}, err
	}

	frag, err := os.ReadFile(fragPath)
	if err != nil {
		logging.ErrLog.Println("Failed to read shader. Err: ", err)
		return Sources{}, err
	}

	return Sources{Vertex: vert, Fragment: frag}, nil
}

// LoadCombinedSources reads a single file holding every stage, see ParseCombinedSources
func LoadCombinedSources(shaderPath string) (Sources, error) {

	combinedSource, err := os.ReadFile(shaderPath)
	if err != nil {
		logging.ErrLog.Println("Failed to read shader. Err: ", err)
		return Sources{}, err
	}

	return ParseCombinedSources(combinedSource)
}

// ParseCombinedSources splits a single source holding multiple stages,
// each starting with '//shader:vertex', '//shader:fragment' or '//shader:geometry'
func ParseCombinedSources(shaderSrc []byte) (Sources, error) {

	shaderSources := bytes.Split(shaderSrc, []byte("//shader:"))
	if len(shaderSources) < 2 {
		return Sources{}, errors.New("failed to read combined shader. The minimum shader types to have are '//shader:vertex' and '//shader:fragment'")
	}

	out := Sources{}
	for i := 0; i < len(shaderSources); i++ {

		src := shaderSources[i]

		//This can happen when the shader type is at the start of the file
		if len(bytes.TrimSpace(src)) == 0 {
			continue
		}

		if bytes.HasPrefix(src, []byte("vertex")) {
			out.Vertex = src[6:]
		} else if bytes.HasPrefix(src, []byte("fragment")) {
			out.Fragment = src[8:]
		} else if bytes.HasPrefix(src, []byte("geometry")) {
			out.Geometry = src[8:]
		} else {
			return Sources{}, errors.New("unknown shader type. Must be '//shader:vertex' or '//shader:fragment' or '//shader:geometry'")
		}
	}

	if out.Vertex == nil {
		return Sources{}, errors.New("no valid vertex shader found. Please put '//shader:vertex' before your vertex shader")
	}

	if out.Fragment == nil {
		return Sources{}, errors.New("no valid fragment shader found. Please put '//shader:fragment' before your fragment shader")
	}

	return out, nil
}

// CompileProgram compiles every stage and links them. The stages are deleted
// once linking is done whether it succeeded or not.
func CompileProgram(fns *backend.Functions, src Sources) (*ShaderProgram, error) {

	vert, err := CompileShaderOfType(fns, src.Vertex, ShaderType_Vertex)
	if err != nil {
		return nil, err
	}
	defer vert.Delete()

	frag, err := CompileShaderOfType(fns, src.Fragment, ShaderType_Fragment)
	if err != nil {
		return nil, err
	}
	defer frag.Delete()

	if len(src.Geometry) == 0 {
		return NewShaderProgram(fns, vert, frag)
	}

	geom, err := CompileShaderOfType(fns, src.Geometry, ShaderType_Geometry)
	if err != nil {
		return nil, err
	}
	defer geom.Delete()

	return NewShaderProgram(fns, vert, frag, geom)
}

func CompileShaderOfType(fns *backend.Functions, shaderSource []byte, shaderType ShaderType) (Shader, error) {

	if err := fns.Require("shaders.CompileShaderOfType", backend.ShaderFuncs...); err != nil {
		return Shader{}, err
	}

	shaderId := fns.CreateShader(shaderType.ToGl())
	if shaderId == 0 {
		return Shader{}, fmt.Errorf("failed to create %s shader", shaderType)
	}

	fns.ShaderSource(shaderId, string(shaderSource))
	fns.CompileShader(shaderId)
	if err := getShaderCompileErrors(fns, shaderId, shaderType); err != nil {
		fns.DeleteShader(shaderId)
		return Shader{}, err
	}

	return Shader{Id: shaderId, Type: shaderType, fns: fns}, nil
}

func getShaderCompileErrors(fns *backend.Functions, shaderId uint32, shaderType ShaderType) error {

	if uint32(fns.GetShaderiv(shaderId, backend.CompileStatus)) == backend.True {
		return nil
	}

	errMsg := readInfoLog(fns.GetShaderiv(shaderId, backend.InfoLogLength), func(length int32) string {
		return fns.GetShaderInfoLog(shaderId, length)
	})

	logging.ErrLog.Println("Compilation of shader with id ", shaderId, " failed. Err: ", errMsg)
	return &CompileError{Type: shaderType, Log: errMsg}
}
