// pre_processor.go implements the WGSL pre-processor. It expands //@nova: directive lines
// into injected struct sources or generated binding declarations, so every shader shares
// one definition of each GPU struct with the Go types that marshal it.
//
// Directives, one per line:
//
//	//@nova:include <struct>
//	//@nova:group <group> <binding> <address_space> <var_name> <struct>
//
// address_space is uniform, read or read_write.
package shader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/nova-showcase/engine/camera"
	"github.com/Carmen-Shannon/nova-showcase/engine/light"
	"github.com/Carmen-Shannon/nova-showcase/engine/model"
	"github.com/Carmen-Shannon/nova-showcase/engine/renderer/material"
	"github.com/Carmen-Shannon/nova-showcase/engine/scene"
)

const directivePrefix = "//@nova:"

// registryEntry pairs a WGSL struct source with the type name used in generated declarations.
type registryEntry struct {
	Source string
	Type   string
}

// Binding is one declaration generated from an //@nova:group directive.
type Binding struct {
	Group   int
	Binding int
	Name    string
	Type    string
}

type preProcessor struct {
	structRegistry       map[string]registryEntry
	addressSpaceRegistry map[string]string
	bindings             []Binding
}

// PreProcessor expands //@nova: directives in WGSL source.
type PreProcessor interface {
	// Process expands every directive line in source. Each struct is injected at most once,
	// so shaders can include a struct that another included struct also depends on.
	//
	// Parameters:
	//   - source: the raw WGSL source
	//
	// Returns:
	//   - string: the expanded source
	//   - error: an error naming the line of a malformed directive or unknown struct
	Process(source string) (string, error)

	// Bindings returns the declarations generated by the last Process call, in source order.
	Bindings() []Binding
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor that knows every engine GPU struct.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		structRegistry: map[string]registryEntry{
			"camera":   {Source: camera.GPUCameraUniformSource, Type: "CameraUniform"},
			"vertex":   {Source: model.GPUVertexSource, Type: "VertexInput"},
			"light":    {Source: light.GPULightSource, Type: "LightUniform"},
			"material": {Source: material.GPUMaterialSource, Type: "MaterialUniform"},
			"scene":    {Source: scene.GPUSceneUniformSource, Type: "SceneUniform"},
			"object":   {Source: scene.GPUObjectUniformSource, Type: "ObjectUniform"},
		},
		addressSpaceRegistry: map[string]string{
			"uniform":    "var<uniform>",
			"read":       "var<storage, read>",
			"read_write": "var<storage, read_write>",
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.bindings = p.bindings[:0]
	included := make(map[string]bool)

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), directivePrefix)
		if !ok {
			out = append(out, line)
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return "", fmt.Errorf("line %d: empty directive", i+1)
		}

		switch fields[0] {
		case "include":
			if len(fields) != 2 {
				return "", fmt.Errorf("line %d: include takes one struct name", i+1)
			}
			entry, ok := p.structRegistry[fields[1]]
			if !ok {
				return "", fmt.Errorf("line %d: unknown struct %q", i+1, fields[1])
			}
			if !included[fields[1]] {
				included[fields[1]] = true
				out = append(out, entry.Source)
			}
		case "group":
			decl, b, err := p.declaration(fields[1:])
			if err != nil {
				return "", fmt.Errorf("line %d: %w", i+1, err)
			}
			out = append(out, decl)
			p.bindings = append(p.bindings, b)
		default:
			return "", fmt.Errorf("line %d: unknown directive %q", i+1, fields[0])
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) declaration(args []string) (string, Binding, error) {
	if len(args) != 5 {
		return "", Binding{}, fmt.Errorf("group takes 5 arguments, got %d", len(args))
	}
	group, err := strconv.Atoi(args[0])
	if err != nil {
		return "", Binding{}, fmt.Errorf("bad group index %q", args[0])
	}
	binding, err := strconv.Atoi(args[1])
	if err != nil {
		return "", Binding{}, fmt.Errorf("bad binding index %q", args[1])
	}
	space, ok := p.addressSpaceRegistry[args[2]]
	if !ok {
		return "", Binding{}, fmt.Errorf("unknown address space %q", args[2])
	}
	entry, ok := p.structRegistry[args[4]]
	if !ok {
		return "", Binding{}, fmt.Errorf("unknown struct %q", args[4])
	}
	b := Binding{Group: group, Binding: binding, Name: args[3], Type: entry.Type}
	return fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;", group, binding, space, b.Name, b.Type), b, nil
}

func (p *preProcessor) Bindings() []Binding {
	return p.bindings
}
