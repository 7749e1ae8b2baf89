// Package mocks provides shared function-field mocks for the interfaces that
// cross package boundaries: the task generator and the JWT service.
//
// Each mock calls its Fn field when set and otherwise returns the default
// values stored on the struct:
//
//	gen := &mocks.MockGenerator{Credential: true, Titles: []string{"Call the bank"}}
//	titles, err := gen.ConvertParagraph(ctx, "call the bank")
package mocks
