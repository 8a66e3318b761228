// Package llm defines the text-generation service consumed by workflow
// nodes: the Client interface, request/response types, an error taxonomy
// keyed by failure kind, an OpenAI chat-completions implementation, and a
// concurrency-capped wrapper for bounding in-flight requests per process.
package llm
