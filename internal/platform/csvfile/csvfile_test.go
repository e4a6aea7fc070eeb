package csvfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_VariableFieldCountsAndBlankLines(t *testing.T) {
	in := "a,b,c\n\n1,2\nx,\"y,z\",w\n"

	rows, err := Read(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"a", "b", "c"},
		{"1", "2"},
		{"x", "y,z", "w"},
	}, rows)
}

func TestReadStrict_KeepsBlankLinesInPlace(t *testing.T) {
	in := "\na,b\n\n\"multi\nline\",c\nx,y\n\n"

	rows, err := ReadStrict(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{},
		{"a", "b"},
		{},
		{"multi\nline", "c"},
		{"x", "y"},
		{},
	}, rows)
}

func TestReadStrict_NoBlankLines(t *testing.T) {
	for _, in := range []string{"", "a,b\n", "a,b", "a,b\r\nc,d\r\n"} {
		rows, err := ReadStrict(strings.NewReader(in))
		require.NoError(t, err, in)
		for _, row := range rows {
			assert.NotEmpty(t, row, "input %q", in)
		}
	}
}

func TestWriteFile_ThenReadFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")
	rows := [][]string{
		{"1", "Rex", "has, comma"},
		{"2", "Mia", "line\nbreak"},
		{"3", "Tom", `say "hi"`},
	}

	require.NoError(t, WriteFile(path, rows))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestWriteFile_ReplacesExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, os.WriteFile(path, []byte("old,data\nmore,old\n"), 0o600))

	require.NoError(t, WriteFile(path, [][]string{{"new"}}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(b))

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), st.Mode().Perm())
}

func TestWriteFile_MissingDirectoryFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "rows.csv")

	err := WriteFile(path, [][]string{{"a"}})
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestAppendFile_CreatesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")

	require.NoError(t, AppendFile(path, []string{"1", "a"}))
	require.NoError(t, AppendFile(path, []string{"2", "b"}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1,a\n2,b\n", string(b))
}

func TestAppendFile_AddsMissingTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,a"), 0o644))

	require.NoError(t, AppendFile(path, []string{"2", "b"}))

	rows, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "a"}, {"2", "b"}}, rows)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
