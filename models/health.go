package models

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status           string `json:"status"`
	VectorStoreReady bool   `json:"vector_store_ready"`
	IndexedDocuments int    `json:"indexed_documents"`
}

// IndexResponse is the body of POST /api/index.
type IndexResponse struct {
	Success          bool     `json:"success"`
	DocumentsIndexed int      `json:"documents_indexed"`
	ServicesIndexed  []string `json:"services_indexed"`
	Message          string   `json:"message"`
}

// ServiceInfo describes one documentation service in the source catalog.
type ServiceInfo struct {
	Name        string `json:"name"`
	ID          string `json:"id"`
	Description string `json:"description"`
	DocsURL     string `json:"docs_url"`
}

// SourcesResponse is the body of GET /api/sources.
type SourcesResponse struct {
	Sources []ServiceInfo `json:"sources"`
}
