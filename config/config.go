package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	// Server
	Port string

	// Gemini
	GeminiAPIKey         string
	GeminiChatModel      string
	GeminiEmbeddingModel string

	// Vector store. When ChromaURL is empty the server falls back to the
	// embedded store persisted under DataDir.
	ChromaURL      string
	DataDir        string
	CollectionName string

	// Chunking
	ChunkSize    int
	ChunkOverlap int

	// Optional directory of local notes indexed alongside the online docs.
	LocalDocsDir string

	UnidocLicenseKey string
}

// Load reads the configuration from a .env file (if present) and the
// process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	return &Config{
		Port:                 getEnvOrDefault("PORT", "3005"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiChatModel:      getEnvOrDefault("GEMINI_CHAT_MODEL", "gemini-2.5-flash"),
		GeminiEmbeddingModel: getEnvOrDefault("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
		ChromaURL:            os.Getenv("CHROMA_URL"),
		DataDir:              getEnvOrDefault("DATA_DIR", "./data"),
		CollectionName:       getEnvOrDefault("COLLECTION_NAME", "langchain_docs"),
		ChunkSize:            getEnvAsIntOrDefault("CHUNK_SIZE", 1000),
		ChunkOverlap:         getEnvAsIntOrDefault("CHUNK_OVERLAP", 200),
		LocalDocsDir:         os.Getenv("LOCAL_DOCS_DIR"),
		UnidocLicenseKey:     os.Getenv("UNIDOC_LICENSE_KEY"),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
