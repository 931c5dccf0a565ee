package gen

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

var (
	// FeatureNonnull annotates the return type of blocking single-result
	// finders with @Nonnull.
	FeatureNonnull = Feature{
		Name:        "nonnull",
		Stage:       Stable,
		Default:     false,
		Description: "Annotates single-result finder return types with jakarta.annotation.Nonnull",
	}

	// FeatureDataExceptions translates persistence exceptions in every
	// repository, not only in Jakarta Data repositories.
	FeatureDataExceptions = Feature{
		Name:        "data/exceptions",
		Stage:       Beta,
		Default:     false,
		Description: "Translates persistence exceptions to Jakarta Data exceptions in all repositories",
	}

	// FeatureIncremental skips writing units whose content did not change
	// since the previous run.
	FeatureIncremental = Feature{
		Name:        "incremental",
		Stage:       Alpha,
		Default:     false,
		Description: "Keeps a cache of generated content and rewrites changed units only",
		cleanup: func(c *Config) error {
			if c.Target == "" {
				return nil
			}
			return remove(c.Target, cacheFile)
		},
	}

	// AllFeatures lists every known feature.
	AllFeatures = []Feature{
		FeatureNonnull,
		FeatureDataExceptions,
		FeatureIncremental,
	}
)

// FeatureStage is the maturity of a feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development.
	Experimental

	// Alpha features are complete but their output may still change.
	Alpha

	// Beta features are documented and not expected to change.
	Beta

	// Stable features are Beta features that were running for a while.
	Stable
)

// A Feature is an optional behavior of finder generation, off unless enabled
// in the Config or marked Default.
type Feature struct {
	Name        string
	Stage       FeatureStage
	Default     bool
	Description string

	// cleanup undoes what the feature left in the target directory. It runs
	// on every pass where the feature is disabled.
	cleanup func(*Config) error
}

// FeatureByName returns the feature with the given name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// remove deletes dir/file and then dir itself when nothing else is left in it.
// A missing file is not an error.
func remove(dir, file string) error {
	err := os.Remove(filepath.Join(dir, file))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return err
	}
	return os.Remove(dir)
}
