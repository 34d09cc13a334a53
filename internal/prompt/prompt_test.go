package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAffirmative(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y", true},
		{"Y", true},
		{"yes", true},
		{" YES \n", true},
		{"n", false},
		{"no", false},
		{"", false},
		{"yep", false},
		{"да", false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAffirmative(tt.answer))
		})
	}
}

func TestReaderConfirm(t *testing.T) {
	var out bytes.Buffer
	r := NewReader(strings.NewReader("y\nn\n"), &out)

	ok, err := r.Confirm("Remove myblog_backend?")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Remove myblog_backend? (y/N): ", out.String())

	ok, err = r.Confirm("Again?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReaderConfirm_EOFDeclines(t *testing.T) {
	r := NewReader(strings.NewReader(""), &bytes.Buffer{})

	ok, err := r.Confirm("Remove?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReaderConfirm_AnswerWithoutNewline(t *testing.T) {
	r := NewReader(strings.NewReader("yes"), &bytes.Buffer{})

	ok, err := r.Confirm("Remove?")
	require.NoError(t, err)
	assert.True(t, ok)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestReaderConfirm_ReadError(t *testing.T) {
	r := NewReader(failingReader{}, &bytes.Buffer{})

	ok, err := r.Confirm("Remove?")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestAlways(t *testing.T) {
	ok, err := Always(true).Confirm("anything")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Always(false).Confirm("anything")
	require.NoError(t, err)
	assert.False(t, ok)
}
