package bind_group_provider

// BufferWrite is one queued upload into the buffer a provider holds at Binding.
// Writes to a binding the provider has no buffer for are skipped by the renderer.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// UniformWrite returns the write that replaces the whole uniform block at binding 0.
//
// Parameters:
//   - provider: the provider holding the uniform buffer
//   - data: the marshalled uniform block
//
// Returns:
//   - BufferWrite: the write, at offset 0
func UniformWrite(provider BindGroupProvider, data []byte) BufferWrite {
	return BufferWrite{Provider: provider, Binding: 0, Data: data}
}
