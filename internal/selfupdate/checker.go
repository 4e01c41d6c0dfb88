// Package selfupdate compares the running build with the latest GitHub
// release.
package selfupdate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultBaseURL = "https://api.github.com"
	defaultOwner   = "abhisek"
	defaultRepo    = "quizdeck"
	defaultTimeout = 10 * time.Second

	// DevVersion is the version string of builds made without -ldflags.
	DevVersion = "(devel)"
)

var (
	ErrDevBuild    = errors.New("development build has no release version")
	ErrNoRelease   = errors.New("no published release")
	ErrBadVersion  = errors.New("version is not valid semver")
	errRateLimited = errors.New("GitHub API rate limit reached")
)

// Checker queries the GitHub releases API.
type Checker struct {
	client  *http.Client
	baseURL string
	owner   string
	repo    string
}

// Option configures a Checker.
type Option func(*Checker)

// WithBaseURL points the checker at a different API host.
func WithBaseURL(u string) Option {
	return func(c *Checker) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

// WithRepository selects the owner/repo whose releases are checked. Empty
// values keep the defaults.
func WithRepository(owner, repo string) Option {
	return func(c *Checker) {
		if owner != "" {
			c.owner = owner
		}
		if repo != "" {
			c.repo = repo
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Checker) {
		if hc != nil {
			c.client = hc
		}
	}
}

// NewChecker creates a Checker for the quizdeck repository.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		client:  &http.Client{Timeout: defaultTimeout},
		baseURL: defaultBaseURL,
		owner:   defaultOwner,
		repo:    defaultRepo,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type CheckInput struct {
	Version string
}

type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	ReleaseURL      string
	UpdateAvailable bool
}

type release struct {
	TagName    string `json:"tag_name"`
	HTMLURL    string `json:"html_url"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
}

// Check fetches the latest release and reports whether it is newer than
// input.Version.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	current := input.Version
	if current == "" || current == DevVersion {
		return nil, ErrDevBuild
	}
	current = canonical(current)
	if !semver.IsValid(current) {
		return nil, fmt.Errorf("%w: %q", ErrBadVersion, input.Version)
	}

	rel, err := c.latest(ctx)
	if err != nil {
		return nil, err
	}

	latest := canonical(rel.TagName)
	if !semver.IsValid(latest) {
		return nil, fmt.Errorf("latest release tag %q: %w", rel.TagName, ErrBadVersion)
	}

	return &CheckResult{
		CurrentVersion:  current,
		LatestVersion:   latest,
		ReleaseURL:      rel.HTMLURL,
		UpdateAvailable: semver.Compare(latest, current) > 0,
	}, nil
}

func (c *Checker) latest(ctx context.Context) (*release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNoRelease
	case http.StatusForbidden, http.StatusTooManyRequests:
		return nil, errRateLimited
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch latest release: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if rel.TagName == "" {
		return nil, ErrNoRelease
	}
	return &rel, nil
}

// canonical adds the "v" prefix semver expects.
func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
