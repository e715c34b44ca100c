package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithUniformMirror adds a sink that receives a copy of every uniform upload.
//
// Parameters:
//   - sink: the mirror sink
//
// Returns:
//   - RendererBuilderOption: a function that applies the mirror option to a renderer
func WithUniformMirror(sink UniformSink) RendererBuilderOption {
	return func(r *renderer) {
		if sink != nil {
			r.mirrors = append(r.mirrors, sink)
		}
	}
}
