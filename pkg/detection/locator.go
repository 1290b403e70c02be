package detection

import (
	"strings"

	"github.com/lucas-albers-lz4/jsonimg/pkg/log"
	"github.com/lucas-albers-lz4/jsonimg/pkg/walk"
)

// Locator finds image values in a document. A Locator is immutable after
// construction and safe for concurrent use.
type Locator struct {
	rules []Rule
	skip  map[string]struct{}
}

// Option configures a Locator.
type Option func(*Locator)

// WithRules replaces the rule list. Rules are evaluated in slice order.
func WithRules(rules ...Rule) Option {
	return func(l *Locator) {
		l.rules = append([]Rule(nil), rules...)
	}
}

// WithExtraSkipKeys adds keys to the skip-list. Comparison ignores case.
func WithExtraSkipKeys(keys ...string) Option {
	return func(l *Locator) {
		for _, k := range keys {
			if k = strings.TrimSpace(k); k != "" {
				l.skip[strings.ToLower(k)] = struct{}{}
			}
		}
	}
}

// NewLocator returns a Locator using DefaultRules and SkipKeys unless
// options say otherwise.
func NewLocator(opts ...Option) *Locator {
	l := &Locator{
		rules: DefaultRules(),
		skip:  make(map[string]struct{}, len(SkipKeys)),
	}
	for _, k := range SkipKeys {
		l.skip[k] = struct{}{}
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Rules returns the rule list in evaluation order.
func (l *Locator) Rules() []Rule {
	return append([]Rule(nil), l.rules...)
}

// Find walks root and returns the classified string members in document
// order. A value is reported once, at the first path where it appears.
func (l *Locator) Find(root any, suggested []string) []FoundImage {
	hints := make(map[string]struct{}, len(suggested))
	for _, s := range suggested {
		hints[s] = struct{}{}
	}

	images := []FoundImage{}
	seen := make(map[string]struct{})

	walk.Walk(root, func(n walk.Node) walk.Action {
		if !n.IsMember() {
			return walk.Continue
		}
		value, isString := n.Value.(string)
		if !isString {
			return walk.Continue
		}
		lowerKey := strings.ToLower(n.Key)
		if _, skipped := l.skip[lowerKey]; skipped {
			return walk.Continue
		}

		_, isSuggested := hints[n.Key]
		c := Candidate{Key: n.Key, LowerKey: lowerKey, Value: value, Suggested: isSuggested}
		for _, rule := range l.rules {
			recorded, kind, ok := rule.Match(c)
			if !ok {
				continue
			}
			if _, dup := seen[recorded]; !dup {
				seen[recorded] = struct{}{}
				images = append(images, FoundImage{Path: n.Path, Value: recorded, Kind: kind})
				log.Debug("Image value found", "path", n.Path, "rule", rule.Name(), "type", kind)
			}
			break
		}
		return walk.Continue
	})

	return images
}

// FindImages runs a default Locator over root.
func FindImages(root any, suggested ...string) []FoundImage {
	return NewLocator().Find(root, suggested)
}
