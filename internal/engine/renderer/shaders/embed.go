// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// ModelVertexShader is the vertex shader for textured scene models.
//
//go:embed model.vert
var ModelVertexShader string

// ModelFragmentShader is the fragment shader for textured scene models.
//
//go:embed model.frag
var ModelFragmentShader string

// LightVertexShader is the vertex shader for the light marker cube.
//
//go:embed light.vert
var LightVertexShader string

// LightFragmentShader is the fragment shader for the light marker cube.
//
//go:embed light.frag
var LightFragmentShader string
