package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// isGitURL checks if the input looks like a Git repository URL: a .git
// suffix or the scp-like git@ form.
func isGitURL(input string) bool {
	return strings.HasSuffix(input, ".git") || strings.HasPrefix(input, "git@")
}

// cloneGitRepo shallow-clones url into a new temporary directory and returns
// its path. The caller removes the directory.
func cloneGitRepo(ctx context.Context, url string, progress io.Writer) (string, error) {
	tempDir, err := os.MkdirTemp("", "tally-git-")
	if err != nil {
		return "", serr.Wrap(err, "failed to create temporary directory")
	}

	logger.Info("Cloning Git repository", "url", url, "dir", tempDir)

	_, err = git.PlainCloneContext(ctx, tempDir, false, &git.CloneOptions{
		URL:           url,
		Progress:      progress,
		Depth:         1,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
	})
	if err != nil {
		_ = os.RemoveAll(tempDir)
		return "", serr.Wrap(err, "failed to clone repository "+url)
	}
	return tempDir, nil
}
