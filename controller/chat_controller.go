package controller

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/langdocs/assistant/models"
	"github.com/langdocs/assistant/services"
)

// maxQuestionLength bounds the accepted question size.
const maxQuestionLength = 2000

// Indexer is the slice of the indexing service the controller needs.
type Indexer interface {
	IndexServices(ctx context.Context, services []string) (int, []string, error)
}

// ChatController handles the HTTP requests for the assistant API. It depends
// on the service layer to perform the actual work.
type ChatController struct {
	ragService services.RAGService
	indexer    Indexer
}

// NewChatController creates a new ChatController. Called from main.go to
// inject the service dependencies.
func NewChatController(ragService services.RAGService, indexer Indexer) *ChatController {
	return &ChatController{
		ragService: ragService,
		indexer:    indexer,
	}
}

// Chat is the gin handler for POST /api/chat. It validates the question,
// runs the RAG pipeline, and returns the answer with its sources.
func (c *ChatController) Chat(ctx *gin.Context) {
	var req models.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Question must not be empty"})
		return
	}
	if len(question) > maxQuestionLength {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Question must be at most %d characters", maxQuestionLength)})
		return
	}

	filter := req.ServiceFilter
	if filter == "" {
		filter = models.FilterAll
	}
	if !filter.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service_filter: " + string(req.ServiceFilter)})
		return
	}

	response, err := c.ragService.Ask(ctx.Request.Context(), question, filter)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process question: " + err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// Health is the gin handler for GET /api/health.
func (c *ChatController) Health(ctx *gin.Context) {
	count, err := c.ragService.DocumentCount(ctx.Request.Context())
	if err != nil {
		count = 0
	}

	ctx.JSON(http.StatusOK, models.HealthResponse{
		Status:           "healthy",
		VectorStoreReady: c.ragService.Ready(),
		IndexedDocuments: count,
	})
}

// Sources is the gin handler for GET /api/sources.
func (c *ChatController) Sources(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, models.SourcesResponse{
		Sources: services.ServiceCatalog(),
	})
}

// Index is the gin handler for POST /api/index. The optional "services" query
// parameter is a comma-separated list of service IDs to re-index.
func (c *ChatController) Index(ctx *gin.Context) {
	var serviceList []string
	if raw := ctx.Query("services"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			if !models.KnownService(s) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unknown service: " + s})
				return
			}
			serviceList = append(serviceList, s)
		}
	}

	count, indexed, err := c.indexer.IndexServices(ctx.Request.Context(), serviceList)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to index documents: " + err.Error()})
		return
	}
	c.ragService.MarkReady()

	ctx.JSON(http.StatusOK, models.IndexResponse{
		Success:          true,
		DocumentsIndexed: count,
		ServicesIndexed:  indexed,
		Message:          fmt.Sprintf("Successfully indexed %d document chunks", count),
	})
}
