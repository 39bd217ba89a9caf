package models

// ServiceFilter scopes retrieval to one documentation set.
type ServiceFilter string

const (
	FilterAll       ServiceFilter = "all"
	FilterLangChain ServiceFilter = "langchain"
	FilterLangGraph ServiceFilter = "langgraph"
	FilterLangSmith ServiceFilter = "langsmith"
)

// Service identifiers used in chunk metadata and the indexing API.
const (
	ServiceLangChain = "langchain"
	ServiceLangGraph = "langgraph"
	ServiceLangSmith = "langsmith"

	// ServiceLocal tags chunks indexed from the optional local docs directory.
	ServiceLocal = "local"
)

// AllServices lists the documentation services with an online catalog.
func AllServices() []string {
	return []string{ServiceLangChain, ServiceLangGraph, ServiceLangSmith}
}

// KnownService reports whether id names an indexable documentation service.
func KnownService(id string) bool {
	switch id {
	case ServiceLangChain, ServiceLangGraph, ServiceLangSmith:
		return true
	}
	return false
}

// Valid reports whether f is one of the known filter values.
func (f ServiceFilter) Valid() bool {
	switch f {
	case FilterAll, FilterLangChain, FilterLangGraph, FilterLangSmith:
		return true
	}
	return false
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Question      string        `json:"question" binding:"required"`
	ServiceFilter ServiceFilter `json:"service_filter,omitempty"`
}

// Source is a cited documentation snippet returned alongside an answer.
type Source struct {
	Title          string `json:"title"`
	URL            string `json:"url"`
	ContentPreview string `json:"content_preview"`
	Service        string `json:"service"`
}

// ChatResponse is the body of a successful POST /api/chat.
type ChatResponse struct {
	Answer         string   `json:"answer"`
	Sources        []Source `json:"sources"`
	ProcessingTime float64  `json:"processing_time"`
}
