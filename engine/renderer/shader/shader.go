package shader

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	vertexEntryRegex   = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)
	lineCommentRegex   = regexp.MustCompile(`//[^\n]*`)
)

type shader struct {
	key           string
	source        string
	vertexEntry   string
	fragmentEntry string
	bindings      []Binding
	module        *wgpu.ShaderModuleDescriptor
}

// Shader is a pre-processed WGSL module holding a vertex and a fragment entry point.
type Shader interface {
	// Key returns the shader's unique identifier.
	Key() string

	// Source returns the expanded WGSL source.
	Source() string

	// VertexEntryPoint returns the name of the @vertex function.
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the @fragment function, or "" for a depth-only shader.
	FragmentEntryPoint() string

	// Bindings returns the declarations generated from //@nova:group directives.
	Bindings() []Binding

	// Module returns the descriptor used to create the GPU shader module.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader pre-processes source and locates its entry points.
//
// Parameters:
//   - key: a unique identifier for the shader, used as the GPU label
//   - source: raw WGSL, typically embedded from an asset file
//
// Returns:
//   - Shader: the processed shader
//   - error: an error if a directive is malformed or the source has no @vertex function
func NewShader(key string, source string) (Shader, error) {
	pp := NewPreProcessor()
	processed, err := pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}

	s := &shader{
		key:      key,
		source:   processed,
		bindings: append([]Binding(nil), pp.Bindings()...),
	}
	cleaned := lineCommentRegex.ReplaceAllString(processed, "")
	if m := vertexEntryRegex.FindStringSubmatch(cleaned); m != nil {
		s.vertexEntry = m[1]
	}
	if m := fragmentEntryRegex.FindStringSubmatch(cleaned); m != nil {
		s.fragmentEntry = m[1]
	}
	if s.vertexEntry == "" {
		return nil, errors.New("shader " + key + ": no @vertex entry point")
	}

	s.module = &wgpu.ShaderModuleDescriptor{
		Label: key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	return s, nil
}

// MustShader is NewShader for embedded engine shaders. It panics on error.
func MustShader(key string, source string) Shader {
	s, err := NewShader(key, source)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntry
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntry
}

func (s *shader) Bindings() []Binding {
	return s.bindings
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

// String returns the key with a count of generated bindings, for logs.
func (s *shader) String() string {
	return fmt.Sprintf("%s (%d bindings, %s)", s.key, len(s.bindings), strings.Join([]string{s.vertexEntry, s.fragmentEntry}, "/"))
}
