package services

import (
	"github.com/langdocs/assistant/models"
	"github.com/langdocs/assistant/store"
)

// SampleDocuments returns a small built-in corpus used when the online
// documentation cannot be fetched, so the assistant still answers something
// sensible on a fresh install without network access.
func SampleDocuments(services []string) []store.Document {
	if len(services) == 0 {
		services = models.AllServices()
	}

	var docs []store.Document
	for _, service := range services {
		docs = append(docs, sampleCorpus[service]...)
	}
	return docs
}

var sampleCorpus = map[string][]store.Document{
	models.ServiceLangChain: {
		{
			Title:     "LangChain Introduction",
			SourceURL: "https://python.langchain.com/docs",
			Service:   models.ServiceLangChain,
			Content: `# LangChain Introduction

LangChain is a framework for developing applications powered by large language models (LLMs).

## Key Concepts

### Chains
Chains are sequences of calls - whether to an LLM, a tool, or a data preprocessing step. LangChain provides a standard interface for chains, allowing you to create sequences of calls and integrate them with other tools.

` + "```python" + `
from langchain.chains import LLMChain
from langchain_openai import ChatOpenAI
from langchain.prompts import PromptTemplate

llm = ChatOpenAI(model="gpt-4o-mini")
prompt = PromptTemplate.from_template("Tell me about {topic}")
chain = LLMChain(llm=llm, prompt=prompt)
result = chain.invoke({"topic": "LangChain"})
` + "```" + `

### LCEL (LangChain Expression Language)
LCEL is a declarative way to compose chains. It supports streaming, async, and batch operations out of the box.

` + "```python" + `
from langchain_openai import ChatOpenAI
from langchain.prompts import ChatPromptTemplate

prompt = ChatPromptTemplate.from_template("Tell me about {topic}")
model = ChatOpenAI()
chain = prompt | model
response = chain.invoke({"topic": "AI"})
` + "```" + `

### Agents
Agents use LLMs to determine which actions to take and in what order. An agent has access to a suite of tools, and it decides which tool to use based on user input.

### Memory
Memory allows a chain or agent to remember previous interactions with the user.

` + "```python" + `
from langchain.memory import ConversationBufferMemory
memory = ConversationBufferMemory()
memory.save_context({"input": "hi"}, {"output": "hello"})
` + "```",
		},
		{
			Title:     "RAG with LangChain",
			SourceURL: "https://python.langchain.com/docs/use_cases/rag",
			Service:   models.ServiceLangChain,
			Content: `# RAG with LangChain

Retrieval-Augmented Generation (RAG) is a technique that combines retrieval of relevant documents with LLM generation.

## Building a RAG Pipeline

### 1. Load Documents
` + "```python" + `
from langchain.document_loaders import WebBaseLoader
loader = WebBaseLoader("https://example.com/docs")
docs = loader.load()
` + "```" + `

### 2. Split Documents
` + "```python" + `
from langchain.text_splitter import RecursiveCharacterTextSplitter
splitter = RecursiveCharacterTextSplitter(chunk_size=1000, chunk_overlap=200)
chunks = splitter.split_documents(docs)
` + "```" + `

### 3. Create Embeddings and Store
` + "```python" + `
from langchain_openai import OpenAIEmbeddings
from langchain.vectorstores import Chroma

embeddings = OpenAIEmbeddings()
vectorstore = Chroma.from_documents(chunks, embeddings)
` + "```" + `

### 4. Create Retrieval Chain
` + "```python" + `
from langchain.chains import RetrievalQA
from langchain_openai import ChatOpenAI

llm = ChatOpenAI(model="gpt-4o-mini")
qa_chain = RetrievalQA.from_chain_type(
    llm=llm,
    chain_type="stuff",
    retriever=vectorstore.as_retriever()
)
result = qa_chain.invoke("What is this about?")
` + "```",
		},
	},
	models.ServiceLangGraph: {
		{
			Title:     "LangGraph Introduction",
			SourceURL: "https://langchain-ai.github.io/langgraph/",
			Service:   models.ServiceLangGraph,
			Content: `# LangGraph Introduction

LangGraph is a library for building stateful, multi-actor applications with LLMs. It extends LangChain to enable cyclic computational graphs.

## Key Concepts

### StateGraph
A StateGraph is the main abstraction in LangGraph. It defines a graph of nodes and edges.

` + "```python" + `
from langgraph.graph import StateGraph, END
from typing import TypedDict

class State(TypedDict):
    messages: list
    next_step: str

graph = StateGraph(State)
` + "```" + `

### Nodes
Nodes are functions that take the current state and return updates to apply.

` + "```python" + `
def chatbot(state: State) -> dict:
    response = llm.invoke(state["messages"])
    return {"messages": state["messages"] + [response]}

graph.add_node("chatbot", chatbot)
` + "```" + `

### Edges
Edges define the flow between nodes. They can be conditional or unconditional.

### Compiling and Running
` + "```python" + `
app = graph.compile()
result = app.invoke({"messages": ["Hello!"], "next_step": "continue"})
` + "```" + `

## Building Agents with LangGraph

LangGraph is ideal for building agents because it allows for:
- Cycles (agents can loop back to reconsider)
- State persistence
- Human-in-the-loop workflows
- Multi-agent orchestration`,
		},
	},
	models.ServiceLangSmith: {
		{
			Title:     "LangSmith Introduction",
			SourceURL: "https://docs.smith.langchain.com/",
			Service:   models.ServiceLangSmith,
			Content: `# LangSmith Introduction

LangSmith is a platform for debugging, testing, evaluating, and monitoring LLM applications.

## Key Features

### Tracing
Automatically trace all LLM calls, chain executions, and agent steps.

` + "```python" + `
import os
os.environ["LANGCHAIN_TRACING_V2"] = "true"
os.environ["LANGCHAIN_API_KEY"] = "your-api-key"
os.environ["LANGCHAIN_PROJECT"] = "my-project"

# All LangChain operations are now traced automatically
from langchain_openai import ChatOpenAI
llm = ChatOpenAI()
response = llm.invoke("Hello!")  # This call is traced
` + "```" + `

### Evaluation
Create datasets and run evaluations on your LLM applications.

` + "```python" + `
from langsmith import Client
client = Client()

dataset = client.create_dataset("my-dataset")
client.create_example(
    inputs={"question": "What is LangChain?"},
    outputs={"answer": "A framework for LLM applications"},
    dataset_id=dataset.id
)
` + "```" + `

### Prompt Management
Manage and version your prompts in LangSmith.

### Monitoring
Monitor your production LLM applications:
- Track latency, token usage, and costs
- Set up alerts for errors or anomalies
- View traces in real-time`,
		},
	},
}
