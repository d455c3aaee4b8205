package sync

// SyncResult is the single outcome value every orchestrator action returns.
// Actions aggregate per-item failures here and never let errors escape their
// own boundary.
type SyncResult struct {
	Success  bool                   `json:"success"`
	Message  string                 `json:"message"`
	Data     map[string]interface{} `json:"data,omitempty"`
	Errors   []string               `json:"errors,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

func Ok(message string, data map[string]interface{}) SyncResult {
	return SyncResult{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func Fail(message string, errs ...string) SyncResult {
	return SyncResult{
		Success: false,
		Message: message,
		Errors:  errs,
	}
}

// WithMeta attaches a metadata entry, allocating the map lazily.
func (r SyncResult) WithMeta(key string, value interface{}) SyncResult {
	if r.Metadata == nil {
		r.Metadata = make(map[string]interface{})
	}
	r.Metadata[key] = value
	return r
}

// WithData attaches a data entry, allocating the map lazily.
func (r SyncResult) WithData(key string, value interface{}) SyncResult {
	if r.Data == nil {
		r.Data = make(map[string]interface{})
	}
	r.Data[key] = value
	return r
}
