package gfx

import (
	"github.com/kilnengine/kiln/engine/colors"
	"github.com/kilnengine/kiln/engine/core"
)

// Vertex: pos3 + uv2 + color4. Immutable once pushed into a batch.
type Vertex struct {
	Pos   [3]float32
	UV    [2]float32
	Color colors.Color
}

// floats per interleaved vertex in the GPU stream (pos3 uv2 color4)
const vertexStride = 9

func V(x, y, z, u, v float32, c colors.Color) Vertex {
	return Vertex{Pos: [3]float32{x, y, z}, UV: [2]float32{u, v}, Color: c}
}

// Mesh is host-side geometry for DrawMesh: positions/uvs/colors plus
// 16-bit indices, drawn with an optional texture.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint16
	Texture  core.Texture // nil = solid white
}

// appendInterleaved packs vertices into the flat float stream the GPU
// backend consumes.
func appendInterleaved(dst []float32, verts []Vertex) []float32 {
	for _, v := range verts {
		dst = append(dst,
			v.Pos[0], v.Pos[1], v.Pos[2],
			v.UV[0], v.UV[1],
			v.Color[0], v.Color[1], v.Color[2], v.Color[3],
		)
	}
	return dst
}
