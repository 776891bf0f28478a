// Package gitops applies a rewritten source file through a git
// branch/commit/push workflow, shelling out to the git binary.
package gitops

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/exec"
	"strings"
)

var (
	// ErrNotARepository indicates the working directory has no .git.
	ErrNotARepository = errors.New("not a git repository")
	// ErrDirtyWorktree indicates uncommitted changes block the workflow.
	ErrDirtyWorktree = errors.New("worktree is not clean")
	// ErrPushFailed indicates the branch was committed locally but could not
	// be pushed, usually an authentication problem.
	ErrPushFailed = errors.New("push to remote failed")
)

const branchSuffixLen = 6

// Apply writes the updated module source, commits it on a fresh
// refactor/<func>-<suffix> branch and pushes it to origin using the given
// token for https GitHub remotes. It returns the commit URL on the remote.
func Apply(ctx context.Context, dir, sourcePath, funcName string, updated []byte, token string) (string, error) {
	if _, err := git(ctx, dir, nil, "rev-parse", "--git-dir"); err != nil {
		return "", ErrNotARepository
	}
	status, err := git(ctx, dir, nil, "status", "--porcelain")
	if err != nil {
		return "", fmt.Errorf("git status: %w", err)
	}
	if strings.TrimSpace(status) != "" {
		return "", ErrDirtyWorktree
	}

	if err := os.WriteFile(sourcePath, updated, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", sourcePath, err)
	}

	branch := fmt.Sprintf("refactor/%s-%s", funcName, randSuffix(branchSuffixLen))
	slog.Info("creating refactor branch", "branch", branch)
	if _, err := git(ctx, dir, nil, "checkout", "-b", branch); err != nil {
		return "", fmt.Errorf("creating branch %s: %w", branch, err)
	}
	if _, err := git(ctx, dir, nil, "add", sourcePath); err != nil {
		return "", fmt.Errorf("staging %s: %w", sourcePath, err)
	}
	if _, err := git(ctx, dir, nil, "commit", "-m", fmt.Sprintf("Refactor function '%s'", funcName)); err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}
	sha, err := git(ctx, dir, nil, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("resolving commit: %w", err)
	}
	sha = strings.TrimSpace(sha)

	originURL, err := git(ctx, dir, nil, "remote", "get-url", "origin")
	if err != nil {
		return "", fmt.Errorf("resolving origin: %w", err)
	}
	originURL = strings.TrimSpace(originURL)

	authenticated := token != "" && strings.HasPrefix(originURL, "https://github.com/")
	if authenticated {
		authURL := strings.Replace(originURL, "https://github.com/",
			fmt.Sprintf("https://%s@github.com/", token), 1)
		if _, err := git(ctx, dir, nil, "remote", "set-url", "origin", authURL); err != nil {
			return "", fmt.Errorf("setting authenticated remote: %w", err)
		}
		defer func() {
			if _, err := git(ctx, dir, nil, "remote", "set-url", "origin", originURL); err != nil {
				slog.Warn("failed to restore origin url", "error", err)
			}
		}()
	}

	env := []string{"GIT_TERMINAL_PROMPT=0", "GCM_INTERACTIVE=Never"}
	if _, err := git(ctx, dir, env, "push", "origin", branch); err != nil {
		return "", fmt.Errorf("%w: changes remain on local branch %s", ErrPushFailed, branch)
	}

	return CommitURL(originURL, sha), nil
}

// CommitURL derives the web URL of a commit from the remote URL, normalizing
// ssh-style remotes to https://github.com.
func CommitURL(remote, sha string) string {
	url := strings.TrimSuffix(remote, ".git")
	if strings.HasPrefix(url, "git@") {
		if _, path, ok := strings.Cut(url, ":"); ok {
			url = "https://github.com/" + path
		}
	}
	return url + "/commit/" + sha
}

func git(ctx context.Context, dir string, extraEnv []string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return string(b)
}
