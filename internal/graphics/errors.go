package graphics

import (
	"errors"
	"fmt"

	"github.com/GurayOrg/voxigen/internal/gpu"
)

var (
	ErrNoShaderAttached    = errors.New("no shader attached")
	ErrUnknownUniformBlock = errors.New("unknown uniform block")
	ErrUnknownBlockMember  = errors.New("unknown uniform block member")
	ErrUniformTypeMismatch = errors.New("uniform type mismatch")
)

// CompileError reports a shader stage that failed to compile.
type CompileError struct {
	Stage gpu.ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

// LinkError reports a program whose stages compiled but failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", e.Log)
}
