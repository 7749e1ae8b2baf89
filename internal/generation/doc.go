// Package generation turns a free-form paragraph into a short list of task
// titles with a single call to a generative-AI text endpoint.
//
// The Converter owns the pipeline: credential check, prompt construction,
// the remote call through a Client port, fence stripping, JSON parsing,
// validation and normalization. Every failure is a *Error whose Kind is
// assigned where the failure happens; Kind.Category maps it onto one of four
// user-facing categories with an exhaustive switch.
//
// Transports implementing Client live in internal/platform/gemini.
package generation
