package message

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// BundleSource is a Source backed by per-locale viper bundles, with a
// default bundle consulted when a key is missing from the matched locale.
// Bundles are read-only after construction, so lookups need no locking.
type BundleSource struct {
	def     *viper.Viper
	bundles map[language.Tag]*viper.Viper
	tags    []language.Tag
	matcher language.Matcher
}

// NewBundleSource returns a source with only a default bundle. A nil bundle
// yields a source that misses on every key.
func NewBundleSource(def *viper.Viper) *BundleSource {
	s := &BundleSource{
		def:     def,
		bundles: make(map[language.Tag]*viper.Viper),
	}
	s.rebuildMatcher()
	return s
}

// WithLocale registers a locale-specific bundle and returns the source for
// chaining. Must be called before the source is handed to handlers.
func (s *BundleSource) WithLocale(tag language.Tag, bundle *viper.Viper) *BundleSource {
	if _, exists := s.bundles[tag]; !exists {
		s.tags = append(s.tags, tag)
	}
	s.bundles[tag] = bundle
	s.rebuildMatcher()
	return s
}

func (s *BundleSource) rebuildMatcher() {
	if len(s.tags) == 0 {
		s.matcher = nil
		return
	}
	s.matcher = language.NewMatcher(s.tags)
}

// Lookup implements Source. The best-matching locale bundle is consulted
// first, then the default bundle.
func (s *BundleSource) Lookup(locale language.Tag, key string) (string, bool) {
	if s.matcher != nil {
		if _, idx, conf := s.matcher.Match(locale); conf > language.No {
			if v, ok := lookupBundle(s.bundles[s.tags[idx]], key); ok {
				return v, true
			}
		}
	}
	return lookupBundle(s.def, key)
}

func lookupBundle(v *viper.Viper, key string) (string, bool) {
	if v == nil || !v.IsSet(key) {
		return "", false
	}
	return v.GetString(key), true
}

// LoadBundleDir builds a BundleSource from a directory of message bundles.
// messages.yaml (or .properties, .json) is the default bundle; files named
// messages_<locale>.<ext> register that locale, e.g. messages_fr.yaml.
func LoadBundleDir(dir string) (*BundleSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read message bundle dir [%s]: %w", dir, err)
	}

	source := NewBundleSource(nil)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		base := strings.TrimSuffix(name, filepath.Ext(name))
		if base != "messages" && !strings.HasPrefix(base, "messages_") {
			continue
		}

		bundle, err := loadBundle(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}

		if base == "messages" {
			source.def = bundle
			continue
		}

		tag, err := language.Parse(strings.TrimPrefix(base, "messages_"))
		if err != nil {
			return nil, fmt.Errorf("invalid locale in bundle file name [%s]: %w", name, err)
		}
		source.WithLocale(tag, bundle)
	}

	return source, nil
}

func loadBundle(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read message bundle [%s]: %w", path, err)
	}
	return v, nil
}
