// Package gemini implements generation.Generator on top of the Google Gemini
// API using the google.golang.org/genai client. Replies are requested as
// application/json and the system prompt is sent as a system instruction.
package gemini
