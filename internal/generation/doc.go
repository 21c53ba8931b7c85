// Package generation turns a difficulty profile into a validated lesson. It
// builds a deterministic prompt, calls a language model through the Generator
// port, parses the untrusted reply, applies hard and soft validation and
// retries failed attempts under a bounded policy. Nothing in this package
// performs network or storage I/O directly; model adapters live under
// internal/platform.
package generation
