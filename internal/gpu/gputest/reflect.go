package gputest

import (
	"regexp"
	"strconv"

	"github.com/GurayOrg/voxigen/internal/gpu"
)

type reflection struct {
	attributes []gpu.ActiveAttribute
	uniforms   []gpu.ActiveUniform
	blocks     []gpu.ActiveBlock
}

var (
	commentRe   = regexp.MustCompile(`(?s)//[^\n]*|/\*.*?\*/`)
	attributeRe = regexp.MustCompile(`(?m)^\s*(?:layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*)?in\s+(\w+)\s+(\w+)\s*;`)
	uniformRe   = regexp.MustCompile(`(?m)^\s*uniform\s+(\w+)\s+(\w+)\s*(?:\[\s*(\d+)\s*\])?\s*;`)
	blockRe     = regexp.MustCompile(`(?s)(?:layout\s*\(([^)]*)\)\s*)?uniform\s+(\w+)\s*\{(.*?)\}\s*(\w*)\s*;`)
	memberRe    = regexp.MustCompile(`(\w+)\s+(\w+)\s*;`)
	bindingRe   = regexp.MustCompile(`binding\s*=\s*(\d+)`)
)

// scan derives what a GL implementation would report for a program built from
// sources. Attributes come from the vertex stage only. Block members are also
// listed as active uniforms, prefixed with the block name when the block has an
// instance name, with location -1, the way GL reports them.
func scan(vertex string, sources []string, bound map[string]uint32) reflection {
	var r reflection

	next := int32(0)
	used := make(map[int32]bool)
	for _, m := range attributeRe.FindAllStringSubmatch(commentRe.ReplaceAllString(vertex, ""), -1) {
		loc := int32(-1)
		if m[1] != "" {
			n, _ := strconv.Atoi(m[1])
			loc = int32(n)
		} else if b, ok := bound[m[3]]; ok {
			loc = int32(b)
		}
		if loc < 0 {
			for used[next] {
				next++
			}
			loc = next
		}
		used[loc] = true
		r.attributes = append(r.attributes, gpu.ActiveAttribute{
			Name:     m[3],
			Type:     gpu.ParseUniformType(m[2]),
			Location: loc,
		})
	}

	seen := make(map[string]bool)
	location := int32(0)
	for _, src := range sources {
		src = commentRe.ReplaceAllString(src, "")
		for _, m := range blockRe.FindAllStringSubmatch(src, -1) {
			name := m[2]
			if seen["{"+name] {
				continue
			}
			seen["{"+name] = true

			block := gpu.ActiveBlock{Name: name, Index: uint32(len(r.blocks))}
			if b := bindingRe.FindStringSubmatch(m[1]); b != nil {
				n, _ := strconv.Atoi(b[1])
				block.Binding = uint32(n)
			}
			offset := 0
			for _, mm := range memberRe.FindAllStringSubmatch(m[3], -1) {
				t := gpu.ParseUniformType(mm[1])
				align, size := t.Std140()
				offset = (offset + align - 1) / align * align
				memberName := mm[2]
				if m[4] != "" {
					memberName = name + "." + memberName
				}
				block.Members = append(block.Members, gpu.BlockMember{Name: memberName, Type: t, Offset: int32(offset)})
				r.uniforms = append(r.uniforms, gpu.ActiveUniform{Name: memberName, Type: t, Size: 1, Location: -1})
				offset += size
			}
			block.DataSize = int32((offset + 15) / 16 * 16)
			r.blocks = append(r.blocks, block)
		}

		src = blockRe.ReplaceAllString(src, "")
		for _, m := range uniformRe.FindAllStringSubmatch(src, -1) {
			if seen[m[2]] {
				continue
			}
			seen[m[2]] = true
			size := int32(1)
			if m[3] != "" {
				n, _ := strconv.Atoi(m[3])
				size = int32(n)
			}
			name := m[2]
			if size > 1 {
				name += "[0]"
			}
			r.uniforms = append(r.uniforms, gpu.ActiveUniform{
				Name:     name,
				Type:     gpu.ParseUniformType(m[1]),
				Size:     size,
				Location: location,
			})
			location += size
		}
	}
	return r
}
