package gfx

// Default pipelines share one shader: positions are already in world space
// (the model matrix is applied host-side), only the camera projection runs
// on the GPU.

const defaultVertexShader = `
#version 330 core
layout(location=0) in vec3 aPos;
layout(location=1) in vec2 aUV;
layout(location=2) in vec4 aColor;
uniform mat4 uProjection;
out vec2 vUV;
out vec4 vColor;
void main() {
    gl_Position = uProjection * vec4(aPos, 1.0);
    vUV = aUV;
    vColor = aColor;
}
` + "\x00"

const defaultFragmentShader = `
#version 330 core
in vec2 vUV;
in vec4 vColor;
uniform sampler2D uTexture;
out vec4 FragColor;
void main() {
    FragColor = vColor * texture(uTexture, vUV);
}
` + "\x00"
