// Package tags loads the user-maintained tag allow-list and constrains
// model-proposed tags against it.
package tags

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
)

// DefaultNamespace is prepended to every accepted tag so generated tags are
// distinguishable from hand-written ones.
const DefaultNamespace = "voicenote"

var tagPattern = regexp.MustCompile(`#[\w/-]+`)

// Set is the ordered allow-list of tags, read-only after Load.
type Set struct {
	namespace string
	ordered   []string
	byFold    map[string]string // case-folded tag -> canonical form
}

// Load reads the allow-list from a Markdown file of #tag lines. Hierarchical
// tags (a/b/c) are kept as written. A namespace prefix already present in the
// file is stripped so it is never doubled. A missing file yields an empty set.
func Load(path, namespace string) (*Set, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	s := &Set{
		namespace: namespace,
		byFold:    make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("Tags: allow-list %s not found, all proposed tags will be dropped", path)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read allowed tags file: %w", err)
	}

	for _, raw := range tagPattern.FindAllString(string(data), -1) {
		tag := normalize(raw, namespace)
		if tag == "" {
			continue
		}
		fold := strings.ToLower(tag)
		if _, dup := s.byFold[fold]; dup {
			continue
		}
		s.byFold[fold] = tag
		s.ordered = append(s.ordered, tag)
	}

	log.Printf("Tags: loaded %d allowed tags from %s", len(s.ordered), path)
	return s, nil
}

// NewSet builds a set from an explicit list of allowed tags. Used by tests
// and by callers that manage the list themselves.
func NewSet(allowed []string, namespace string) *Set {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	s := &Set{
		namespace: namespace,
		byFold:    make(map[string]string),
	}
	for _, raw := range allowed {
		tag := normalize(raw, namespace)
		if tag == "" {
			continue
		}
		fold := strings.ToLower(tag)
		if _, dup := s.byFold[fold]; dup {
			continue
		}
		s.byFold[fold] = tag
		s.ordered = append(s.ordered, tag)
	}
	return s
}

// Namespace returns the namespace prefix applied to accepted tags.
func (s *Set) Namespace() string { return s.namespace }

// Len returns the number of allowed tags.
func (s *Set) Len() int { return len(s.ordered) }

// All returns the allowed tags in file order, without the namespace prefix.
func (s *Set) All() []string {
	out := make([]string, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Constrain filters proposed tags against the allow-list. A proposal is kept
// only on an exact, case-insensitive match; everything else is dropped. Kept
// tags come back as <namespace>/<canonical-tag>, with the prefix applied
// exactly once no matter how the model spelled the proposal.
func (s *Set) Constrain(proposed []string) []string {
	var final []string
	seen := make(map[string]bool)
	for _, raw := range proposed {
		tag := normalize(raw, s.namespace)
		if tag == "" {
			continue
		}
		canonical, ok := s.byFold[strings.ToLower(tag)]
		if !ok {
			log.Printf("Tags: dropping disallowed tag %q", raw)
			continue
		}
		namespaced := s.namespace + "/" + canonical
		if seen[namespaced] {
			continue
		}
		seen[namespaced] = true
		final = append(final, namespaced)
	}
	return final
}

// normalize strips a leading '#', surrounding whitespace and any existing
// namespace prefix from a tag.
func normalize(raw, namespace string) string {
	tag := strings.TrimSpace(raw)
	tag = strings.TrimPrefix(tag, "#")
	tag = strings.Trim(tag, "/")
	if fold := strings.ToLower(tag); strings.HasPrefix(fold, strings.ToLower(namespace)+"/") {
		tag = tag[len(namespace)+1:]
	}
	return strings.Trim(tag, "/")
}
