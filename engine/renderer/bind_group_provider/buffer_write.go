package bind_group_provider

// BufferWrite is one queued upload into the buffer at Binding of Provider, starting at Offset bytes.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// Size returns the number of bytes the write covers.
func (w BufferWrite) Size() uint64 {
	return uint64(len(w.Data))
}

// Fits reports whether the write lands inside the allocated buffer.
func (w BufferWrite) Fits() bool {
	return w.Provider != nil && w.Offset+w.Size() <= w.Provider.BufferSize(w.Binding)
}
