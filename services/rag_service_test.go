package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langdocs/assistant/store"
)

func TestBuildSourcesDeduplicatesByURL(t *testing.T) {
	docs := []store.Document{
		{Title: "Chains", SourceURL: "https://example.com/chains", Content: "chunk one", Service: "langchain"},
		{Title: "Chains", SourceURL: "https://example.com/chains", Content: "chunk two", Service: "langchain"},
		{Title: "Agents", SourceURL: "https://example.com/agents", Content: "chunk three", Service: "langchain"},
	}

	sources := buildSources(docs)

	require.Len(t, sources, 2)
	assert.Equal(t, "https://example.com/chains", sources[0].URL)
	assert.Equal(t, "https://example.com/agents", sources[1].URL)
}

func TestBuildSourcesCapsAtFive(t *testing.T) {
	var docs []store.Document
	for i := 0; i < 8; i++ {
		docs = append(docs, store.Document{
			Title:     "Doc",
			SourceURL: "https://example.com/" + string(rune('a'+i)),
			Content:   "content",
			Service:   "langgraph",
		})
	}

	sources := buildSources(docs)

	assert.Len(t, sources, maxSources)
}

func TestBuildSourcesPreview(t *testing.T) {
	long := strings.Repeat("x", previewLength+50)
	docs := []store.Document{
		{Title: "Long", SourceURL: "https://example.com/long", Content: long, Service: "langsmith"},
		{Title: "Short", SourceURL: "https://example.com/short", Content: "short text", Service: "langsmith"},
	}

	sources := buildSources(docs)

	require.Len(t, sources, 2)
	assert.Len(t, sources[0].ContentPreview, previewLength+3)
	assert.True(t, strings.HasSuffix(sources[0].ContentPreview, "..."))
	assert.Equal(t, "short text", sources[1].ContentPreview)
}

func TestBuildSourcesFillsDefaults(t *testing.T) {
	docs := []store.Document{
		{SourceURL: "https://example.com/untitled", Content: "content"},
	}

	sources := buildSources(docs)

	require.Len(t, sources, 1)
	assert.Equal(t, "Documentation", sources[0].Title)
	assert.Equal(t, "langchain", sources[0].Service)
}

func TestFormatContextSeparatesChunks(t *testing.T) {
	docs := []store.Document{
		{Title: "Chains", Content: "Chains are sequences of calls."},
		{Title: "Agents", Content: "Agents decide which tools to use."},
	}

	got := formatContext(docs)

	assert.Contains(t, got, "Source: Chains\nChains are sequences of calls.")
	assert.Contains(t, got, "Source: Agents\nAgents decide which tools to use.")
	assert.Contains(t, got, "\n\n---\n\n")
}

func TestFormatContextUnknownTitle(t *testing.T) {
	got := formatContext([]store.Document{{Content: "text"}})
	assert.True(t, strings.HasPrefix(got, "Source: Unknown\n"))
}

func TestServiceCatalog(t *testing.T) {
	catalog := ServiceCatalog()

	require.Len(t, catalog, 3)
	for _, info := range catalog {
		assert.NotEmpty(t, info.Name)
		assert.NotEmpty(t, info.ID)
		assert.NotEmpty(t, info.Description)
		assert.NotEmpty(t, info.DocsURL)
	}
}

func TestSampleDocumentsFilterByService(t *testing.T) {
	docs := SampleDocuments([]string{"langgraph"})

	require.NotEmpty(t, docs)
	for _, doc := range docs {
		assert.Equal(t, "langgraph", doc.Service)
	}
}

func TestSampleDocumentsAllServices(t *testing.T) {
	docs := SampleDocuments(nil)

	seen := map[string]bool{}
	for _, doc := range docs {
		seen[doc.Service] = true
	}
	assert.True(t, seen["langchain"])
	assert.True(t, seen["langgraph"])
	assert.True(t, seen["langsmith"])
}
