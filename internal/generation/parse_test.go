package generation_test

import (
	"strings"
	"testing"

	"github.com/phrazzld/dailyplan-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `["a"]`, `["a"]`},
		{"json fence", "```json\n[\"a\", \"b\"]\n```", `["a", "b"]`},
		{"bare fence", "```\n[\"a\"]\n```", `["a"]`},
		{"surrounding whitespace", "  \n```json\n[\"a\"]\n```\n\n", `["a"]`},
		{"fence without newline", "```json[\"a\"]```", `["a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, generation.CleanResponse(tt.in))
		})
	}
}

func TestFencedAndPlainParseIdentically(t *testing.T) {
	t.Parallel()

	plain, err := generation.ParseTaskTitles(generation.CleanResponse(`["Wake up", "Stretch"]`))
	require.NoError(t, err)

	fenced, err := generation.ParseTaskTitles(generation.CleanResponse("```json\n[\"Wake up\", \"Stretch\"]\n```"))
	require.NoError(t, err)

	assert.Equal(t, plain, fenced)
}

func TestParseTaskTitlesNormalization(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 150)

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "trims and keeps order",
			in:   `["  Wake up at 7 ", "Have breakfast", "Go to the gym"]`,
			want: []string{"Wake up at 7", "Have breakfast", "Go to the gym"},
		},
		{
			name: "drops non-strings",
			in:   `[1, "a", null, {"t": "x"}, ["y"], true, "b"]`,
			want: []string{"a", "b"},
		},
		{
			name: "truncates long titles",
			in:   `["` + long + `"]`,
			want: []string{strings.Repeat("x", 100)},
		},
		{
			name: "caps at ten",
			in:   `["1","2","3","4","5","6","7","8","9","10","11","12"]`,
			want: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"},
		},
		{
			name: "cap counts surviving elements only",
			in:   `["", "1", 2, "2", "3", "4", "5", "6", "7", "8", "9", " ", "10", "11"]`,
			want: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"},
		},
		{
			name: "single item accepted",
			in:   `["Only one"]`,
			want: []string{"Only one"},
		},
		{
			name: "only blank strings yields empty list",
			in:   `["", "   ", "\t\n"]`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := generation.ParseTaskTitles(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotNil(t, got)
		})
	}
}

func TestParseTaskTitlesTruncatesByCharacter(t *testing.T) {
	t.Parallel()

	title := strings.Repeat("ğ", 120)
	got, err := generation.ParseTaskTitles(`["` + title + `"]`)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, strings.Repeat("ğ", 100), got[0])
}

func TestParseTaskTitlesFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		kind generation.Kind
	}{
		{"trailing comma", `["a", "b",]`, generation.KindMalformedResponse},
		{"unescaped quote", `["say "hi""]`, generation.KindMalformedResponse},
		{"prose", `Here are your tasks: a, b`, generation.KindMalformedResponse},
		{"empty text", ``, generation.KindMalformedResponse},
		{"object", `{"tasks": ["a"]}`, generation.KindInvalidTaskList},
		{"string", `"a"`, generation.KindInvalidTaskList},
		{"empty array", `[]`, generation.KindInvalidTaskList},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := generation.ParseTaskTitles(tt.in)
			require.Error(t, err)
			assert.Nil(t, got)

			kind, ok := generation.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, generation.CategoryMalformedResponse, generation.CategoryOf(err))
		})
	}
}
