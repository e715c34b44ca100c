package renderer

// DefaultWGSLShader is the WebGPU counterpart of DefaultVertexShader and
// DefaultFragmentShader. It reads the uniform block written by the WebGPU uniform
// sink at a per-draw dynamic offset.
const DefaultWGSLShader = `
struct Uniforms {
    view: mat4x4<f32>,
    projection: mat4x4<f32>,
    model: mat4x4<f32>,
};

@group(0) @binding(0) var<uniform> u: Uniforms;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
};

@vertex
fn vs_main(@location(0) position: vec3<f32>, @location(2) uv: vec2<f32>) -> VertexOutput {
    var out: VertexOutput;
    out.position = u.projection * u.view * u.model * vec4<f32>(position, 1.0);
    out.uv = uv;
    return out;
}

@fragment
fn fs_main(frag: VertexOutput) -> @location(0) vec4<f32> {
    let cell = floor(frag.uv * 4.0);
    let sum = cell.x + cell.y;
    let checker = sum - 2.0 * floor(sum / 2.0);
    let wood = vec3<f32>(0.62, 0.43, 0.24);
    let light = vec3<f32>(0.93, 0.86, 0.66);
    return vec4<f32>(mix(wood, light, checker), 1.0);
}
`

// Entry points and vertex inputs of DefaultWGSLShader.
const (
	wgslVertexEntry   = "vs_main"
	wgslFragmentEntry = "fs_main"

	wgslPositionLocation uint32 = 0
	wgslTexCoordLocation uint32 = 2
)
