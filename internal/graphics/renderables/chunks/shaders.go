package chunks

import "github.com/GurayOrg/voxigen/internal/graphics"

// Vertex layout shared by both programs: cube corner, normal and uv from the
// shared mesh, per-instance cell position with the cell type in w.
const (
	attribVertex   = 0
	attribNormal   = 1
	attribTexCoord = 2
	attribOffset   = 3
)

// MainShaders draws every solid cell of a chunk as an instanced unit cube with
// ambient plus diffuse lighting from a point light at the camera.
var MainShaders = graphics.ShaderSources{
	Vertex: `#version 410 core
layout (location = 0) in vec3 blockVertex;
layout (location = 1) in vec3 blockNormal;
layout (location = 2) in vec2 blockTexCoord;
layout (location = 3) in vec4 blockOffset;

out vec3 position;
out vec3 normal;
out vec3 texCoords;

uniform mat4 projectionView;

void main()
{
	position = blockOffset.xyz + blockVertex;
	normal = blockNormal;
	texCoords = vec3(blockTexCoord, blockOffset.w);
	gl_Position = projectionView * vec4(position, 1.0);
}
`,
	Fragment: `#version 410 core
in vec3 position;
in vec3 normal;
in vec3 texCoords;
out vec4 color;

uniform vec3 lightPos;
uniform vec3 lightColor;

void main()
{
	float value = texCoords.z / 10.0;
	float ambientStrength = 0.5;
	vec3 ambient = ambientStrength * lightColor;

	vec3 lightDir = normalize(lightPos - position);
	float diff = max(dot(normal, lightDir), 0.0);
	vec3 diffuse = diff * lightColor;
	color = vec4((ambient + diffuse) * vec3(value, value, value), 1.0);
}
`,
}

// OutlineShaders draws a translucent red box around each bound chunk.
var OutlineShaders = graphics.ShaderSources{
	Vertex: `#version 410 core
layout (location = 0) in vec3 inputVertex;
layout (location = 1) in vec3 inputNormal;
layout (location = 2) in vec2 inputTexCoord;
layout (location = 3) in vec4 inputOffset;

out vec3 position;
out vec3 normal;

uniform mat4 projectionView;

void main()
{
	position = inputOffset.xyz + inputVertex;
	normal = inputNormal;
	gl_Position = projectionView * vec4(position, 1.0);
}
`,
	Fragment: `#version 410 core
in vec3 position;
in vec3 normal;
out vec4 color;

uniform vec3 lightPos;

void main()
{
	float ambientStrength = 0.5;
	vec3 lightDir = normalize(lightPos - position);
	float diff = max(dot(normal, lightDir), 0.0);
	color = vec4(ambientStrength + diff, 0.0, 0.0, 0.1);
}
`,
}
