// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gears

// Attribute locations bound before linking.
const (
	attribPosition = 0
	attribNormal   = 1
	attribTexcoord = 1
)

const gearVertexShader = `
attribute vec3 position;
attribute vec3 normal;

uniform mat4 ModelViewProjectionMatrix;
uniform mat4 NormalMatrix;
uniform vec4 LightSourcePosition;
uniform vec4 MaterialColor;

varying vec4 Color;

void main(void)
{
    vec3 N = normalize(vec3(NormalMatrix * vec4(normal, 1.0)));

    vec3 L = normalize(LightSourcePosition.xyz);

    float diffuse = max(dot(N, L), 0.0);
    Color = diffuse * MaterialColor;

    gl_Position = ModelViewProjectionMatrix * vec4(position, 1.0);
}
`

const gearFragmentShader = `
precision mediump float;
varying vec4 Color;

void main(void)
{
    gl_FragColor = Color;
}
`

const hudVertexShader = `
attribute vec2 position;
attribute vec2 texcoord;

varying vec2 uv;

void main(void)
{
    uv = texcoord;
    gl_Position = vec4(position, 0.0, 1.0);
}
`

const hudFragmentShader = `
precision mediump float;
uniform sampler2D label;
varying vec2 uv;

void main(void)
{
    gl_FragColor = texture2D(label, uv);
}
`
