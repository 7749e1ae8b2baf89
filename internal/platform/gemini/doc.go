// Package gemini provides the transports that carry generation requests to
// Google's Gemini API, and a constructor wiring them into a
// generation.Converter.
//
// This package is an infrastructure adapter: it translates between the
// application's generation.Client port and the external service without
// exposing wire details to the core.
//
// Two transports are available, selected by llm.transport:
//
//  1. RESTClient ("rest", default):
//     - POSTs the documented generateContent JSON body to the configured
//     endpoint with the API key as the key query parameter
//     - Uses an injectable HTTPDoer so tests can substitute a fake transport
//
//  2. SDKClient ("sdk"):
//     - Calls the same endpoint through the google.golang.org/genai client
//
// Both classify failures at the point they occur: transport failures are
// generation.KindNetwork, non-2xx answers are generation.KindRequestFailed
// carrying the status code, and a response without text is
// generation.KindEmptyGeneration. Neither retries.
package gemini
