// Package bundlelint checks message bundle directories for consistency.
//
// A bundle directory holds a default messages file plus per-locale
// overrides (messages.yaml, messages_fr.yaml, ...). Every error key is
// expected to carry a code, a title and a detail entry, and locale
// overrides should not drift from the default bundle.
package bundlelint

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/viper"

	"github.com/hakantaylan/problem-handler/pkg/problem"
)

// Config holds the linter options.
type Config struct {
	// BundleDir is the directory containing the message bundles.
	BundleDir string
	// Strict treats incomplete triples as errors instead of warnings.
	Strict bool
	// Verbose prints every checked bundle and key count.
	Verbose bool
}

// Severity classifies a reported issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single finding in a bundle file.
type Issue struct {
	Bundle   string
	Key      string
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s: %s", i.Bundle, i.Severity, i.Key, i.Message)
}

// Report collects the findings of a lint run.
type Report struct {
	Bundles []string
	Issues  []Issue
}

// HasErrors reports whether any issue has error severity.
func (r Report) HasErrors() bool {
	return lo.SomeBy(r.Issues, func(i Issue) bool { return i.Severity == SeverityError })
}

// Linter validates message bundle directories.
type Linter struct {
	cfg Config
}

// New creates a Linter for the given configuration.
func New(cfg Config) (*Linter, error) {
	if cfg.BundleDir == "" {
		return nil, fmt.Errorf("bundle directory is required")
	}
	info, err := os.Stat(cfg.BundleDir)
	if err != nil {
		return nil, fmt.Errorf("bundle directory [%s]: %w", cfg.BundleDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("bundle directory [%s] is not a directory", cfg.BundleDir)
	}
	return &Linter{cfg: cfg}, nil
}

// Run lints all bundles in the directory and returns the report.
func (l *Linter) Run() (Report, error) {
	entries, err := os.ReadDir(l.cfg.BundleDir)
	if err != nil {
		return Report{}, fmt.Errorf("failed to read bundle directory: %w", err)
	}

	var report Report
	bundles := make(map[string][]string)

	for _, entry := range entries {
		if entry.IsDir() || !isBundleFile(entry.Name()) {
			continue
		}
		path := filepath.Join(l.cfg.BundleDir, entry.Name())
		keys, err := loadKeys(path)
		if err != nil {
			return Report{}, err
		}
		bundles[entry.Name()] = keys
		report.Bundles = append(report.Bundles, entry.Name())
	}
	sort.Strings(report.Bundles)

	if len(report.Bundles) == 0 {
		return Report{}, fmt.Errorf("no message bundles found in [%s]", l.cfg.BundleDir)
	}

	// Partial locale translations are fine, so only the default bundle
	// must carry complete triples.
	defaultName := "messages.yaml"
	defaultKeys, hasDefault := bundles[defaultName]
	if !hasDefault {
		defaultName = "messages.yml"
		defaultKeys, hasDefault = bundles[defaultName]
	}
	if hasDefault {
		report.Issues = append(report.Issues, l.checkTriples(defaultName, defaultKeys)...)
	}

	for _, name := range report.Bundles {
		if !strings.HasPrefix(name, "messages_") {
			continue
		}
		report.Issues = append(report.Issues, checkPrefixes(name, bundles[name])...)
		if hasDefault {
			report.Issues = append(report.Issues, checkAgainstDefault(name, bundles[name], defaultKeys)...)
		}
	}

	return report, nil
}

// checkTriples verifies that each error key present under any of the
// code/title/detail prefixes is present under all three.
func (l *Linter) checkTriples(bundle string, keys []string) []Issue {
	severity := SeverityWarning
	if l.cfg.Strict {
		severity = SeverityError
	}

	byErrorKey := make(map[string][]string)
	var issues []Issue

	for _, key := range keys {
		prefix, errorKey, ok := splitPrefix(key)
		if !ok {
			issues = append(issues, Issue{
				Bundle:   bundle,
				Key:      key,
				Severity: SeverityWarning,
				Message:  "unknown prefix, expected code/title/detail",
			})
			continue
		}
		byErrorKey[errorKey] = append(byErrorKey[errorKey], prefix)
	}

	errorKeys := lo.Keys(byErrorKey)
	sort.Strings(errorKeys)

	for _, errorKey := range errorKeys {
		missing, _ := lo.Difference(
			[]string{problem.CodeKeyPrefix, problem.TitleKeyPrefix, problem.DetailKeyPrefix},
			byErrorKey[errorKey],
		)
		for _, prefix := range missing {
			issues = append(issues, Issue{
				Bundle:   bundle,
				Key:      errorKey,
				Severity: severity,
				Message:  fmt.Sprintf("missing %s entry", strings.TrimSuffix(prefix, problem.Dot)),
			})
		}
	}

	return issues
}

// checkPrefixes flags keys whose prefix is not one of code/title/detail.
func checkPrefixes(bundle string, keys []string) []Issue {
	var issues []Issue
	for _, key := range keys {
		if _, _, ok := splitPrefix(key); !ok {
			issues = append(issues, Issue{
				Bundle:   bundle,
				Key:      key,
				Severity: SeverityWarning,
				Message:  "unknown prefix, expected code/title/detail",
			})
		}
	}
	return issues
}

// checkAgainstDefault flags locale keys with no default-bundle counterpart.
// Partial translations are fine, stray keys usually mean a typo.
func checkAgainstDefault(bundle string, keys, defaultKeys []string) []Issue {
	orphans, _ := lo.Difference(keys, defaultKeys)
	sort.Strings(orphans)

	return lo.Map(orphans, func(key string, _ int) Issue {
		return Issue{
			Bundle:   bundle,
			Key:      key,
			Severity: SeverityWarning,
			Message:  "key not present in default bundle",
		}
	})
}

func isBundleFile(name string) bool {
	ext := filepath.Ext(name)
	if ext != ".yaml" && ext != ".yml" {
		return false
	}
	base := strings.TrimSuffix(name, ext)
	return base == "messages" || strings.HasPrefix(base, "messages_")
}

func loadKeys(path string) ([]string, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read bundle [%s]: %w", path, err)
	}
	keys := v.AllKeys()
	sort.Strings(keys)
	return keys, nil
}

// splitPrefix splits a bundle key into its resolver prefix and error key.
func splitPrefix(key string) (prefix, errorKey string, ok bool) {
	for _, p := range []string{problem.CodeKeyPrefix, problem.TitleKeyPrefix, problem.DetailKeyPrefix} {
		if strings.HasPrefix(key, p) {
			return p, strings.TrimPrefix(key, p), true
		}
	}
	return "", "", false
}
