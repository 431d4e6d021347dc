package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSolution_DocstringIndentation(t *testing.T) {
	layout := Layout{
		Signature: "def load(path):",
		Body:      []BodyLine{{Number: 5, Text: "    return path"}},
	}

	tests := []struct {
		name      string
		docstring string
		want      string
	}{
		{
			name:      "one line",
			docstring: "Load.",
			want:      "def load(path):\n    \"\"\"\n    Load.\n    \"\"\"\n    return path",
		},
		{
			name:      "nested lines keep their relative indent",
			docstring: "Load.\n\nArgs:\n    path: file",
			want:      "def load(path):\n    \"\"\"\n    Load.\n\n    Args:\n        path: file\n    \"\"\"\n    return path",
		},
		{
			name:      "common indent is removed",
			docstring: "Load.\n    Args:\n        path: file",
			want:      "def load(path):\n    \"\"\"\n    Load.\n    Args:\n        path: file\n    \"\"\"\n    return path",
		},
		{
			name:      "trailing spaces are dropped",
			docstring: "Load.  \n   \nDone.",
			want:      "def load(path):\n    \"\"\"\n    Load.\n\n    Done.\n    \"\"\"\n    return path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderSolution(layout, tt.docstring, nil))
		})
	}
}

func TestRenderSolution_CommentsAboveTheirLine(t *testing.T) {
	layout := Layout{
		Signature: "def load(path):",
		Body: []BodyLine{
			{Number: 2, Text: "    data = read(path)"},
			{Number: 3, Text: "    return data"},
		},
	}

	got := RenderSolution(layout, "", map[int]string{3: "  # Hand the data back. "})

	assert.Equal(t, "def load(path):\n    data = read(path)\n    # Hand the data back.\n    return data", got)
}
