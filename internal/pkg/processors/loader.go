package processors

import (
	"api-commonizer/internal/pkg/api"
	"api-commonizer/internal/pkg/common"
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

const Version = "0.3.0"

// ManifestFileName is the API description file inside a target directory.
const ManifestFileName = "api.json"

// LoadedTarget is one platform-specific API description together with the
// directory it was read from.
type LoadedTarget struct {
	Url  string
	Dir  string
	Root *api.Root
}

// LoadTargets resolves each url to a target description: a local manifest
// file, a local directory holding one, or a remote repository that is cloned
// into the cache directory (and pulled when upgrade is set).
func LoadTargets(urls []string, cacheDir string, log *common.LogWriter, upgrade bool) ([]*LoadedTarget, error) {
	return common.MapError(func(url string) (*LoadedTarget, error) {
		return loadTarget(url, cacheDir, log, upgrade)
	}, urls)
}

func loadTarget(url string, cacheDir string, log *common.LogWriter, upgrade bool) (*LoadedTarget, error) {
	dir, err := resolveTargetDir(url, cacheDir, log, upgrade)
	if err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(dir, ManifestFileName)
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		manifestPath = dir
		dir = filepath.Dir(dir)
	}

	f, err := os.Open(manifestPath)
	if err != nil {
		return nil, common.NewSystemError(
			fmt.Errorf("failed to read target description `%s`: %w", url, err))
	}
	defer f.Close()

	root, err := api.DecodeManifest(f)
	if err != nil {
		return nil, common.NewSystemError(
			fmt.Errorf("failed to parse target description `%s`: %w", url, err))
	}
	log.Trace(fmt.Sprintf("loaded target `%s` from `%s`", root.Target, manifestPath))
	return &LoadedTarget{Url: url, Dir: dir, Root: root}, nil
}

func resolveTargetDir(url string, cacheDir string, log *common.LogWriter, upgrade bool) (string, error) {
	if _, err := os.Stat(url); err == nil {
		return filepath.Clean(url), nil
	}

	absPath := filepath.Clean(filepath.Join(cacheDir, url))
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		log.Trace(fmt.Sprintf("downloading target description `%s`", url))
		w := bytes.NewBufferString("")
		_, err := git.PlainClone(absPath, false, &git.CloneOptions{
			URL:      fmt.Sprintf("https://%s", url),
			Progress: w,
		})
		if err != nil {
			return "", common.NewSystemError(fmt.Errorf("%s\n%w", w.String(), err))
		}
		log.Trace(fmt.Sprintf("target description `%s` downloaded", url))
	} else if upgrade {
		r, err := git.PlainOpen(absPath)
		if err == nil {
			worktree, err := r.Worktree()
			if err != nil {
				return "", common.NewSystemError(
					fmt.Errorf("failed to update target description `%s`\n%w", url, err))
			}
			w := bytes.NewBufferString("")
			err = worktree.Pull(&git.PullOptions{Progress: w})
			if err != nil && err != git.NoErrAlreadyUpToDate {
				return "", common.NewSystemError(
					fmt.Errorf("failed to update target description `%s`\n%w\n%s", url, err, w.String()))
			}
			log.Trace(fmt.Sprintf("target description `%s` updated", url))
		}
	}
	return absPath, nil
}
