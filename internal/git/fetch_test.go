package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/pagesmith/internal/foundation/errors"
	"git.home.luguber.info/inful/pagesmith/internal/retry"
)

// initRepo creates a repository with two commits on the default branch and
// a tag v1 on the first one.
func initRepo(t *testing.T) (string, *git.Repository, plumbing.Hash, plumbing.Hash) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	commit := func(content string) plumbing.Hash {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(content), 0o600))
		_, err := wt.Add("index.html")
		require.NoError(t, err)
		h, err := wt.Commit(content, &git.CommitOptions{
			Author: &object.Signature{Name: "t", Email: "t@example.com", When: time.Unix(0, 0)},
		})
		require.NoError(t, err)
		return h
	}

	first := commit("<p>{{content}} v1</p>")
	_, err = repo.CreateTag("v1", first, nil)
	require.NoError(t, err)
	second := commit("<p>{{content}} v2</p>")
	return dir, repo, first, second
}

func TestCheckout_Refs(t *testing.T) {
	dir, repo, first, second := initRepo(t)
	head, err := repo.Head()
	require.NoError(t, err)
	branch := head.Name().Short()

	tests := []struct {
		ref  string
		want plumbing.Hash
		body string
	}{
		{"v1", first, "<p>{{content}} v1</p>"},
		{branch, second, "<p>{{content}} v2</p>"},
		{"", second, "<p>{{content}} v2</p>"},
		{first.String(), first, "<p>{{content}} v1</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := checkout(repo, tt.ref)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			data, err := os.ReadFile(filepath.Join(dir, "index.html"))
			require.NoError(t, err)
			require.Equal(t, tt.body, string(data))
		})
	}
}

func TestCheckout_UnknownRef(t *testing.T) {
	_, repo, _, _ := initRepo(t)
	_, err := checkout(repo, "no-such-branch")
	require.ErrorIs(t, err, plumbing.ErrReferenceNotFound)

	classified := ClassifyError(err, "checkout", "https://example.com/t.git")
	ce, ok := ferrors.AsClassified(classified)
	require.True(t, ok)
	require.Equal(t, ferrors.CategoryTemplateSource, ce.Category())
	reason, _ := ce.Context().GetString("reason")
	require.Equal(t, ReasonRef, reason)
}

func TestCloneReferences(t *testing.T) {
	require.Equal(t, []plumbing.ReferenceName{"refs/heads/main", "refs/tags/main"}, cloneReferences("main"))
	require.Equal(t, []plumbing.ReferenceName{""}, cloneReferences(""))
	require.Equal(t, []plumbing.ReferenceName{""}, cloneReferences("0123456789abcdef0123456789abcdef01234567"))
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err    string
		reason string
	}{
		{"authentication required", ReasonAuth},
		{"repository not found", ReasonNotFound},
		{"dial tcp: i/o timeout", ReasonNetwork},
		{"unsupported protocol scheme", ReasonProtocol},
		{"something else", ""},
	}
	for _, tt := range tests {
		t.Run(tt.err, func(t *testing.T) {
			err := ClassifyError(errors.New(tt.err), "clone", "u")
			ce, ok := ferrors.AsClassified(err)
			require.True(t, ok)
			reason, _ := ce.Context().GetString("reason")
			require.Equal(t, tt.reason, reason)
			op, _ := ce.Context().GetString("op")
			require.Equal(t, "clone", op)
		})
	}

	require.NoError(t, ClassifyError(nil, "clone", "u"))
	already := ferrors.ConfigError("x").Build()
	require.Same(t, already, ClassifyError(already, "clone", "u"))
}

func TestAuthFor(t *testing.T) {
	f := &Fetcher{token: "secret"}
	auth, err := f.authFor("https://example.com/t.git")
	require.NoError(t, err)
	require.NotNil(t, auth)

	f.token = ""
	auth, err = f.authFor("https://example.com/t.git")
	require.NoError(t, err)
	require.Nil(t, auth)

	auth, err = f.authFor("/local/path")
	require.NoError(t, err)
	require.Nil(t, auth)
}

func TestFetch_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dest := filepath.Join(t.TempDir(), "checkout")

	_, err := NewFetcher(nil).Fetch(ctx, dest, Source{URL: "https://example.invalid/t.git", Ref: "main"})
	require.Error(t, err)
	require.Equal(t, ferrors.CategoryTemplateSource, ferrors.GetCategory(err))
	require.NoDirExists(t, dest)
}

func TestIsTransient(t *testing.T) {
	require.True(t, IsTransient(ClassifyError(errors.New("read: connection reset by peer"), "clone", "u")))
	require.False(t, IsTransient(ClassifyError(errors.New("repository not found"), "clone", "u")))
	require.False(t, IsTransient(errors.New("timeout")))
}

func TestFetch_RetriesOnlyTransientFailures(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "checkout")
	missing := filepath.Join(t.TempDir(), "missing")

	f := NewFetcher(nil, WithRetry(retry.NewPolicy(retry.BackoffFixed, time.Hour, time.Hour, 3)))
	start := time.Now()
	_, err := f.Fetch(context.Background(), dest, Source{URL: missing, Ref: "main"})
	require.Error(t, err)
	require.Less(t, time.Since(start), time.Minute, "a missing repository is not retried")
}
