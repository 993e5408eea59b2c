package chunks

// floats per mesh vertex: position(3) normal(3) uv(2)
const (
	meshStride      = 8
	cubeVertexCount = 36
)

type face struct {
	normal  [3]float32
	corners [4][3]float32 // counter-clockwise seen from outside
}

var cubeFaces = [6]face{
	{normal: [3]float32{0, 0, 1}, corners: [4][3]float32{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
	{normal: [3]float32{0, 0, -1}, corners: [4][3]float32{{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}}},
	{normal: [3]float32{-1, 0, 0}, corners: [4][3]float32{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
	{normal: [3]float32{1, 0, 0}, corners: [4][3]float32{{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}}},
	{normal: [3]float32{0, 1, 0}, corners: [4][3]float32{{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}}},
	{normal: [3]float32{0, -1, 0}, corners: [4][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
}

var quadUVs = [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// cubeMesh returns a box spanning [0,size] on each axis as 36 triangle vertices.
func cubeMesh(sx, sy, sz float32) []float32 {
	out := make([]float32, 0, cubeVertexCount*meshStride)
	for _, f := range cubeFaces {
		for _, c := range [6]int{0, 1, 2, 2, 3, 0} {
			p := f.corners[c]
			uv := quadUVs[c]
			out = append(out,
				p[0]*sx, p[1]*sy, p[2]*sz,
				f.normal[0], f.normal[1], f.normal[2],
				uv[0], uv[1],
			)
		}
	}
	return out
}
