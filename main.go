package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/genai"

	"github.com/langdocs/assistant/config"
	"github.com/langdocs/assistant/controller"
	"github.com/langdocs/assistant/models"
	"github.com/langdocs/assistant/services"
	"github.com/langdocs/assistant/store"
)

func main() {
	cfg := config.Load()

	if cfg.GeminiAPIKey == "" {
		log.Println("WARNING: GEMINI_API_KEY not set. API calls will fail without it.")
	}
	services.SetupPDFLicense(cfg.UnidocLicenseKey)

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	geminiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to create Gemini client: %v. Make sure GEMINI_API_KEY is set.", err)
	}
	log.Println("Successfully connected to Google Gemini.")

	embedder := services.NewEmbeddingService(geminiClient, cfg.GeminiEmbeddingModel)

	vectorStore, err := openVectorStore(cfg, embedder)
	if err != nil {
		log.Fatalf("FATAL: Failed to open vector store: %v", err)
	}
	defer func() {
		if err := vectorStore.Close(); err != nil {
			log.Printf("Warning: failed to close vector store: %v", err)
		}
	}()

	loader := services.NewDocumentLoader(httpClient, cfg.ChunkSize, cfg.ChunkOverlap)
	indexer := services.NewIndexingService(vectorStore, embedder, loader, cfg.LocalDocsDir)
	ragService := services.NewRAGService(vectorStore, embedder, geminiClient, cfg.GeminiChatModel)
	chatController := controller.NewChatController(ragService, indexer)

	// Reuse an existing index when the store already holds documents,
	// otherwise build one in the background so the server comes up fast.
	go bootstrapIndex(context.Background(), vectorStore, indexer, ragService)

	if cfg.LocalDocsDir != "" {
		go indexer.WatchLocalDocs(context.Background())
	}

	router := gin.Default()
	router.Use(corsMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "LangChain RAG Assistant API",
			"version":     "1.0.0",
			"description": "Ask questions about LangChain, LangGraph, and LangSmith",
			"endpoints": gin.H{
				"chat":    "POST /api/chat",
				"health":  "GET /api/health",
				"index":   "POST /api/index",
				"sources": "GET /api/sources",
			},
		})
	})

	api := router.Group("/api")
	{
		api.POST("/chat", chatController.Chat)
		api.GET("/health", chatController.Health)
		api.GET("/sources", chatController.Sources)
		api.POST("/index", chatController.Index)
	}

	log.Printf("LangDocs assistant server starting on http://localhost:%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("FATAL: Failed to start server: %v", err)
	}
}

// openVectorStore picks the Chroma server when CHROMA_URL is set and the
// embedded store otherwise.
func openVectorStore(cfg *config.Config, embedder *services.EmbeddingService) (store.VectorStore, error) {
	if cfg.ChromaURL != "" {
		log.Printf("Using Chroma server at %s", cfg.ChromaURL)
		return store.NewChromaStore(context.Background(), cfg.ChromaURL, cfg.CollectionName)
	}
	log.Printf("No CHROMA_URL set, using embedded vector store at %s", cfg.DataDir)
	return store.NewChromemStore(cfg.DataDir, cfg.CollectionName, embedder.Embed)
}

// bootstrapIndex makes sure the store has something to retrieve from before
// marking the service ready.
func bootstrapIndex(ctx context.Context, vectorStore store.VectorStore, indexer *services.IndexingService, ragService services.RAGService) {
	count, err := vectorStore.Count(ctx)
	if err != nil {
		log.Printf("INDEXER ERROR: Could not count existing documents: %v", err)
		return
	}
	if count > 0 {
		log.Printf("INDEXER: Found %d existing chunks, reusing index.", count)
		ragService.MarkReady()
		return
	}

	if _, _, err := indexer.IndexServices(ctx, models.AllServices()); err != nil {
		log.Printf("INDEXER ERROR: Initial indexing failed: %v", err)
		return
	}
	if _, err := indexer.IndexLocalDocs(ctx); err != nil {
		log.Printf("INDEXER ERROR: Local docs indexing failed: %v", err)
	}
	ragService.MarkReady()
}

// corsMiddleware allows the browser frontend to call the API from any origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
