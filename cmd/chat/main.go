// Command chat is a terminal frontend for the assistant API.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/langdocs/assistant/client"
	"github.com/langdocs/assistant/models"
)

var examplePrompts = []string{
	"How do I create a chain in LangChain?",
	"What is a StateGraph in LangGraph?",
	"How do I trace my LLM calls with LangSmith?",
	"How does retrieval-augmented generation work?",
}

func main() {
	baseURL := flag.String("server", "http://localhost:3005", "assistant API base URL")
	flag.Parse()

	api := client.New(*baseURL)
	session := client.NewSession(api)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create renderer: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("LangDocs assistant. Type a question, or /help for commands.")
	printExamples(session)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("\n[%s] > ", session.Filter())
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := runCommand(session, api, line); quit {
				return
			}
			continue
		}

		ask(session, renderer, line)
	}
}

// ask submits one question and renders the exchange.
func ask(session *client.Session, renderer *glamour.TermRenderer, question string) {
	fmt.Println("thinking...")

	if err := session.Submit(context.Background(), question); err != nil {
		fmt.Printf("error: %s\n", session.LastError())
		return
	}

	messages := session.Messages()
	if len(messages) == 0 {
		return
	}
	last := messages[len(messages)-1]

	rendered, err := renderer.Render(last.Content)
	if err != nil {
		// Fall back to the raw markdown.
		rendered = last.Content
	}
	fmt.Print(rendered)

	if len(last.Sources) > 0 {
		fmt.Println("Sources:")
		for _, src := range last.Sources {
			fmt.Printf("  - %s (%s)\n    %s\n", src.Title, src.Service, src.URL)
		}
	}
	fmt.Printf("answered in %.2fs\n", last.ProcessingTime)
}

// runCommand handles slash commands; returns true when the loop should exit.
func runCommand(session *client.Session, api *client.Client, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true

	case "/help":
		fmt.Println("commands: /filter <all|langchain|langgraph|langsmith>, /sources, /health, /reindex, /quit")

	case "/filter":
		if len(fields) < 2 {
			fmt.Printf("active filter: %s\n", session.Filter())
			break
		}
		filter := models.ServiceFilter(fields[1])
		if !filter.Valid() {
			fmt.Printf("unknown filter %q\n", fields[1])
			break
		}
		session.SetFilter(filter)
		fmt.Printf("filter set to %s\n", filter)

	case "/sources":
		sources, err := api.GetSources(context.Background())
		if err != nil {
			fmt.Printf("error: %v\n", err)
			break
		}
		for _, src := range sources {
			fmt.Printf("  %-10s %s\n             %s\n", src.ID, src.Description, src.DocsURL)
		}

	case "/health":
		health, err := api.CheckHealth(context.Background())
		if err != nil {
			fmt.Printf("error: %v\n", err)
			break
		}
		fmt.Printf("status: %s, ready: %v, indexed chunks: %d\n",
			health.Status, health.VectorStoreReady, health.IndexedDocuments)

	case "/reindex":
		if err := api.ReindexDocuments(context.Background(), fields[1:]...); err != nil {
			fmt.Printf("error: %v\n", err)
			break
		}
		fmt.Println("reindex triggered")

	default:
		fmt.Printf("unknown command %s\n", fields[0])
	}
	return false
}

// printExamples shows example prompts only while the conversation is empty.
func printExamples(session *client.Session) {
	if len(session.Messages()) > 0 {
		return
	}
	fmt.Println("\nTry one of these:")
	for _, prompt := range examplePrompts {
		fmt.Printf("  - %s\n", prompt)
	}
}
