package furshell

import _ "embed"

// Shader sources are embedded so the render modules work from any working
// directory. The AssetServer can still shadow them with an on-disk copy for hot
// reload during shader work.

//go:embed shaders/fur.wgsl
var furShaderSource string

//go:embed shaders/debug.wgsl
var debugShaderSource string
