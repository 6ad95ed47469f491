package metadata

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMetadata_PreservesInsertionOrder(t *testing.T) {
	m := New()
	require.NoError(t, m.Set("title", "A"))
	require.NoError(t, m.Set("description", "B"))
	require.NoError(t, m.Set("author", "C"))

	require.Equal(t, []string{"title", "description", "author"}, m.Keys())
	require.Equal(t, 3, m.Len())
}

func TestMetadata_DuplicateKeyLastWriteWins(t *testing.T) {
	m := New()
	require.NoError(t, m.Set("title", "first"))
	require.NoError(t, m.Set("slug", "s"))
	require.NoError(t, m.Set("title", "second"))

	v, ok := m.Get("title")
	require.True(t, ok)
	require.Equal(t, "second", v)
	require.Equal(t, []string{"title", "slug"}, m.Keys())
}

func TestMetadata_FreezeRejectsWrites(t *testing.T) {
	m := FromMap(map[string]string{"b": "2", "a": "1"})
	require.Equal(t, []string{"a", "b"}, m.Keys())

	m.Freeze()
	require.True(t, m.Frozen())
	err := m.Set("c", "3")
	require.True(t, errors.Is(err, ErrFrozen))
	require.False(t, m.Has("c"))

	clone := m.Clone()
	require.False(t, clone.Frozen())
	require.NoError(t, clone.Set("c", "3"))
	require.False(t, m.Has("c"))
}

func TestFieldOrDefault(t *testing.T) {
	m := FromMap(map[string]string{"lang": "fr", "empty": ""})

	require.Equal(t, "fr", FieldOrDefault(m, "lang", "en"))
	require.Equal(t, "", FieldOrDefault(m, "empty", "x"))
	require.Equal(t, "weekly", FieldOrDefault(m, "changefreq", "weekly"))
	require.Equal(t, "d", FieldOrDefault(nil, "anything", "d"))
}

func TestRequire(t *testing.T) {
	m := FromMap(map[string]string{"title": "Hi", "blank": "  "})

	v, err := Require(m, "title")
	require.NoError(t, err)
	require.Equal(t, "Hi", v)

	for _, key := range []string{"blank", "missing"} {
		_, err = Require(m, key)
		var mfe *MissingFieldError
		require.ErrorAs(t, err, &mfe)
		require.Equal(t, key, mfe.Field)
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-03-05T10:20:30Z", time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC)},
		{"Tue, 05 Mar 2024 10:20:30 +0000", time.Date(2024, 3, 5, 10, 20, 30, 0, time.FixedZone("", 0))},
		{"05 Mar 2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			require.NoError(t, err)
			require.True(t, tc.want.Equal(got), "got %v", got)
		})
	}

	_, err := ParseDate("yesterday")
	require.Error(t, err)
	_, err = ParseDate("")
	require.Error(t, err)
}
