package shaders

import "fmt"

// CompileError carries the backend's compile log, which may be empty
type CompileError struct {
	Type ShaderType
	Log  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Type, e.Log)
}

// LinkError carries the backend's link log, which may be empty
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "failed to link shader program: " + e.Log
}
