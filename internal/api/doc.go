// Package api exposes lesson generation, the lesson feeds and upvoting over
// HTTP. Handlers translate requests into service calls and map service and
// pipeline errors onto status codes; raw error text never reaches clients.
package api
