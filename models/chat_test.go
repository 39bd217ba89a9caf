package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceFilterValid(t *testing.T) {
	assert.True(t, FilterAll.Valid())
	assert.True(t, FilterLangChain.Valid())
	assert.True(t, FilterLangGraph.Valid())
	assert.True(t, FilterLangSmith.Valid())

	assert.False(t, ServiceFilter("").Valid())
	assert.False(t, ServiceFilter("local").Valid())
	assert.False(t, ServiceFilter("everything").Valid())
}

func TestKnownService(t *testing.T) {
	for _, id := range AllServices() {
		assert.True(t, KnownService(id), id)
	}
	assert.False(t, KnownService("all"))
	assert.False(t, KnownService("local"))
	assert.False(t, KnownService(""))
}

func TestChatRequestJSON(t *testing.T) {
	var req ChatRequest
	err := json.Unmarshal([]byte(`{"question":"How do chains work?","service_filter":"langchain"}`), &req)
	require.NoError(t, err)

	assert.Equal(t, "How do chains work?", req.Question)
	assert.Equal(t, FilterLangChain, req.ServiceFilter)
}

func TestChatResponseJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(ChatResponse{
		Answer: "yes",
		Sources: []Source{
			{Title: "t", URL: "u", ContentPreview: "p", Service: "langchain"},
		},
		ProcessingTime: 1.5,
	})
	require.NoError(t, err)

	body := string(data)
	assert.Contains(t, body, `"answer"`)
	assert.Contains(t, body, `"sources"`)
	assert.Contains(t, body, `"processing_time"`)
	assert.Contains(t, body, `"content_preview"`)
}
