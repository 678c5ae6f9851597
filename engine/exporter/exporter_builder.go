package exporter

// ExporterBuilderOption is a functional option for configuring an Exporter via NewExporter.
type ExporterBuilderOption func(*exporter)

// WithName sets the material and node name; the mesh is named after it plus the order.
//
// Parameters:
//   - name: the object name
//
// Returns:
//   - ExporterBuilderOption: option function to apply
func WithName(name string) ExporterBuilderOption {
	return func(e *exporter) {
		if name != "" {
			e.name = name
		}
	}
}

// WithGenerator sets the asset generator string.
//
// Parameters:
//   - generator: the generator written to the asset header
//
// Returns:
//   - ExporterBuilderOption: option function to apply
func WithGenerator(generator string) ExporterBuilderOption {
	return func(e *exporter) {
		e.generator = generator
	}
}

// WithColor sets the opaque base color of the material.
//
// Parameters:
//   - rgb: red, green and blue in [0, 1]
//
// Returns:
//   - ExporterBuilderOption: option function to apply
func WithColor(rgb [3]float32) ExporterBuilderOption {
	return func(e *exporter) {
		e.color = [4]float32{rgb[0], rgb[1], rgb[2], 1}
	}
}

// WithLogging enables a log line per written file.
//
// Parameters:
//   - enabled: true to log
//
// Returns:
//   - ExporterBuilderOption: option function to apply
func WithLogging(enabled bool) ExporterBuilderOption {
	return func(e *exporter) {
		e.logging = enabled
	}
}
