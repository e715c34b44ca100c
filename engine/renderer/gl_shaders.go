package renderer

// DefaultVertexShader transforms position (location 0) by projection * view * model
// and forwards the texture coordinate (location 2).
const DefaultVertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 2) in vec2 aTexCoord;

out vec2 TexCoord;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main() {
    gl_Position = projection * view * model * vec4(aPos, 1.0);
    TexCoord = aTexCoord;
}
`

// DefaultFragmentShader shades faces with a procedural checkerboard in place of
// sampled textures.
const DefaultFragmentShader = `#version 410 core
in vec2 TexCoord;
out vec4 FragColor;

void main() {
    vec2 cell = floor(TexCoord * 4.0);
    float checker = mod(cell.x + cell.y, 2.0);
    vec3 wood = vec3(0.62, 0.43, 0.24);
    vec3 light = vec3(0.93, 0.86, 0.66);
    FragColor = vec4(mix(wood, light, checker), 1.0);
}
`
