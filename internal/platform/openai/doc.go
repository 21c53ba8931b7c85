// Package openai implements generation.Generator on top of the OpenAI Chat
// Completions API. Requests ask for a JSON object reply; retries are left to
// the generation orchestrator.
package openai
