// Package service contains the application use cases: generating and saving
// lessons, reading lesson feeds and recording upvotes. It coordinates the
// generation pipeline with the stores defined in internal/store and
// translates store errors into service sentinels the API layer maps to HTTP
// status codes.
package service
