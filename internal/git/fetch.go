package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"git.home.luguber.info/inful/pagesmith/internal/logfields"
	"git.home.luguber.info/inful/pagesmith/internal/metrics"
	"git.home.luguber.info/inful/pagesmith/internal/retry"
)

// EnvToken supplies an HTTPS token for private template repositories.
const EnvToken = "PAGESMITH_TEMPLATE_TOKEN"

// Source identifies a template inside a repository.
type Source struct {
	URL string
	// Ref is a branch, tag or full commit hash.
	Ref string
	// Subdir is the template directory relative to the repository root.
	Subdir string
}

// Result is a completed checkout.
type Result struct {
	// Dir is the template directory (checkout root joined with Subdir).
	Dir    string
	Commit string
}

// Fetcher clones or updates template checkouts.
type Fetcher struct {
	recorder metrics.Recorder
	token    string
	policy   retry.Policy
}

// FetcherOption customizes a Fetcher.
type FetcherOption func(*Fetcher)

// WithRetry retries network failures according to p.
func WithRetry(p retry.Policy) FetcherOption {
	return func(f *Fetcher) { f.policy = p }
}

// NewFetcher returns a Fetcher reporting to rec (NoopRecorder when nil).
// The HTTPS token is read from PAGESMITH_TEMPLATE_TOKEN. Without WithRetry
// a failed fetch is not retried.
func NewFetcher(rec metrics.Recorder, opts ...FetcherOption) *Fetcher {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	f := &Fetcher{recorder: rec, token: os.Getenv(EnvToken), policy: retry.None()}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Fetch makes dir a checkout of src at src.Ref. An existing clone in dir is
// fetched and checked out in place; anything else is replaced by a fresh
// shallow clone.
func (f *Fetcher) Fetch(ctx context.Context, dir string, src Source) (*Result, error) {
	start := time.Now()
	var res *Result
	err := retry.Do(ctx, f.policy, IsTransient, func(ctx context.Context) error {
		var ferr error
		res, ferr = f.fetch(ctx, dir, src)
		return ferr
	})
	f.recorder.ObserveTemplateFetch(time.Since(start), err == nil)
	if err != nil {
		return nil, ClassifyError(err, "fetch", src.URL)
	}
	slog.Info("Template repository ready",
		logfields.Repository(src.URL),
		slog.String("ref", src.Ref),
		slog.String("commit", shortHash(res.Commit)),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return res, nil
}

func (f *Fetcher) fetch(ctx context.Context, dir string, src Source) (*Result, error) {
	auth, err := f.authFor(src.URL)
	if err != nil {
		return nil, ClassifyError(err, "auth", src.URL)
	}

	var repo *git.Repository
	if _, statErr := os.Stat(filepath.Join(dir, ".git")); statErr == nil {
		repo, err = f.update(ctx, dir, src, auth)
	} else {
		repo, err = f.clone(ctx, dir, src, auth)
	}
	if err != nil {
		return nil, err
	}

	hash, err := checkout(repo, src.Ref)
	if err != nil {
		return nil, ClassifyError(err, "checkout", src.URL)
	}
	return &Result{Dir: filepath.Join(dir, filepath.FromSlash(src.Subdir)), Commit: hash.String()}, nil
}

func (f *Fetcher) clone(ctx context.Context, dir string, src Source, auth transport.AuthMethod) (*git.Repository, error) {
	slog.Debug("Cloning template repository", logfields.Repository(src.URL), logfields.Path(dir))

	var lastErr error
	for _, ref := range cloneReferences(src.Ref) {
		if err := os.RemoveAll(dir); err != nil {
			return nil, fmt.Errorf("failed to remove existing directory: %w", err)
		}
		opts := &git.CloneOptions{URL: src.URL, Auth: auth, Tags: git.NoTags}
		if ref != "" {
			opts.ReferenceName = ref
			opts.SingleBranch = true
			opts.Depth = 1
		}
		repo, err := git.PlainCloneContext(ctx, dir, false, opts)
		if err == nil {
			return repo, nil
		}
		lastErr = err
		if !isMissingRef(err) {
			break
		}
	}
	_ = os.RemoveAll(dir)
	return nil, ClassifyError(lastErr, "clone", src.URL)
}

func (f *Fetcher) update(ctx context.Context, dir string, src Source, auth transport.AuthMethod) (*git.Repository, error) {
	slog.Debug("Updating template repository", logfields.Repository(src.URL), logfields.Path(dir))

	repo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, ClassifyError(err, "open", src.URL)
	}
	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil || len(remote.Config().URLs) == 0 || remote.Config().URLs[0] != src.URL {
		// A checkout of another repository is replaced wholesale.
		return f.clone(ctx, dir, src, auth)
	}

	err = repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: git.DefaultRemoteName,
		Auth:       auth,
		Force:      true,
		Tags:       git.AllTags,
		RefSpecs: []config.RefSpec{
			"+refs/heads/*:refs/remotes/origin/*",
			"+refs/tags/*:refs/tags/*",
		},
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil, ClassifyError(err, "fetch", src.URL)
	}
	return repo, nil
}

// cloneReferences lists the references a shallow clone tries for ref, in
// order. A commit hash needs a full clone, signalled by the empty name.
func cloneReferences(ref string) []plumbing.ReferenceName {
	switch {
	case ref == "":
		return []plumbing.ReferenceName{""}
	case plumbing.IsHash(ref):
		return []plumbing.ReferenceName{""}
	default:
		return []plumbing.ReferenceName{plumbing.NewBranchReferenceName(ref), plumbing.NewTagReferenceName(ref)}
	}
}

// checkout resolves ref and force-checks it out. An empty ref keeps HEAD.
func checkout(repo *git.Repository, ref string) (plumbing.Hash, error) {
	hash, err := resolve(repo, ref)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	if err := wt.Checkout(&git.CheckoutOptions{Hash: hash, Force: true}); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("checkout %s: %w", shortHash(hash.String()), err)
	}
	return hash, nil
}

func resolve(repo *git.Repository, ref string) (plumbing.Hash, error) {
	if ref == "" {
		head, err := repo.Head()
		if err != nil {
			return plumbing.ZeroHash, err
		}
		return head.Hash(), nil
	}
	if plumbing.IsHash(ref) {
		return plumbing.NewHash(ref), nil
	}
	for _, name := range []plumbing.ReferenceName{
		plumbing.NewRemoteReferenceName(git.DefaultRemoteName, ref),
		plumbing.NewBranchReferenceName(ref),
		plumbing.NewTagReferenceName(ref),
	} {
		h, err := repo.ResolveRevision(plumbing.Revision(name))
		if err == nil {
			return *h, nil
		}
	}
	return plumbing.ZeroHash, fmt.Errorf("%w: %s", plumbing.ErrReferenceNotFound, ref)
}

func (f *Fetcher) authFor(url string) (transport.AuthMethod, error) {
	switch {
	case strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://"):
		if f.token == "" {
			return nil, nil
		}
		return &http.BasicAuth{Username: "x-access-token", Password: f.token}, nil
	case strings.HasPrefix(url, "ssh://") || strings.HasPrefix(url, "git@"):
		user := "git"
		if at := strings.Index(strings.TrimPrefix(url, "ssh://"), "@"); at > 0 {
			user = strings.TrimPrefix(url, "ssh://")[:at]
		}
		return ssh.NewSSHAgentAuth(user)
	default:
		return nil, nil
	}
}

func isMissingRef(err error) bool {
	var noMatch git.NoMatchingRefSpecError
	return errors.Is(err, plumbing.ErrReferenceNotFound) || errors.As(err, &noMatch) ||
		strings.Contains(strings.ToLower(err.Error()), "couldn't find remote ref")
}

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}
