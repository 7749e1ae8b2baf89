package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/dailyplan-api/internal/generation"
	"github.com/phrazzld/dailyplan-api/internal/mocks"
	"github.com/phrazzld/dailyplan-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, gen *mocks.MockGenerator, stdin string, args ...string) (string, error) {
	t.Helper()
	factory := func(*rootOptions, io.Writer) (generation.Generator, *slog.Logger, error) {
		log, _ := logger.NewTestLogger(t)
		return gen, log, nil
	}

	cmd := newRootCmd(factory)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestConvertFromArgument(t *testing.T) {
	gen := &mocks.MockGenerator{Credential: true, Titles: []string{"Call the bank", "Buy groceries"}}

	out, err := runCLI(t, gen, "", "convert", "call the bank, then buy groceries")

	require.NoError(t, err)
	assert.JSONEq(t, `["Call the bank","Buy groceries"]`, out)
	assert.Equal(t, []string{"call the bank, then buy groceries"}, gen.Paragraphs())
}

func TestConvertFromStdin(t *testing.T) {
	gen := &mocks.MockGenerator{Credential: true, Titles: []string{"Water plants"}}

	out, err := runCLI(t, gen, "water the plants\n", "convert", "--pretty")

	require.NoError(t, err)
	assert.JSONEq(t, `["Water plants"]`, out)
	assert.Equal(t, []string{"water the plants\n"}, gen.Paragraphs())
}

func TestConvertRejectsBlankInput(t *testing.T) {
	gen := &mocks.MockGenerator{Credential: true}

	_, err := runCLI(t, gen, "   \n", "convert")

	require.Error(t, err)
	assert.Empty(t, gen.Paragraphs())
}

func TestConvertReportsCategory(t *testing.T) {
	gen := &mocks.MockGenerator{
		Credential: true,
		Err:        generation.NewError(generation.KindNetwork, errors.New("dial tcp: lookup failed")),
	}

	out, err := runCLI(t, gen, "", "convert", "anything")

	require.Error(t, err)
	assert.Empty(t, out)
	assert.Equal(t, "Internet connection error. (network)", err.Error())
}

func TestCheck(t *testing.T) {
	out, err := runCLI(t, &mocks.MockGenerator{Credential: true}, "", "check")
	require.NoError(t, err)
	assert.Equal(t, "task generation: available\n", out)

	out, err = runCLI(t, &mocks.MockGenerator{}, "", "check")
	assert.ErrorIs(t, err, errNoCredential)
	assert.Equal(t, "task generation: unavailable\n", out)
}
