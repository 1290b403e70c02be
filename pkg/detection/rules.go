package detection

import (
	"regexp"
	"strings"
)

// dataURIPattern matches an image data URI anywhere in a string. A compiled
// regexp holds no match state, so it is shared by all callers.
var dataURIPattern = regexp.MustCompile(`(?i)data:image/[a-z0-9.+*-]+;base64,[a-z0-9+/=]+`)

// Rule classifies a candidate. Rules run in order and the first match wins.
type Rule interface {
	// Name returns the unique name of this rule
	Name() string

	// Description returns a human-readable description of this rule
	Description() string

	// Match returns the value to record and its kind when the rule applies
	Match(c Candidate) (value string, kind Kind, ok bool)
}

// BaseRule provides the name and description shared by all rules.
type BaseRule struct {
	name        string
	description string
}

// NewBaseRule creates a new BaseRule
func NewBaseRule(name, description string) BaseRule {
	return BaseRule{name: name, description: description}
}

// Name returns the rule name
func (r BaseRule) Name() string {
	return r.name
}

// Description returns the rule description
func (r BaseRule) Description() string {
	return r.description
}

// DataURIContentRule matches values containing a well-formed image data URI.
// Only the matched portion is recorded.
type DataURIContentRule struct {
	BaseRule
}

// NewDataURIContentRule creates the data-URI-by-content rule.
func NewDataURIContentRule() *DataURIContentRule {
	return &DataURIContentRule{
		BaseRule: NewBaseRule("data-uri-content", "value contains data:image/<type>;base64,<payload>"),
	}
}

// Match implements Rule.
func (r *DataURIContentRule) Match(c Candidate) (string, Kind, bool) {
	m := dataURIPattern.FindString(strings.TrimSpace(c.Value))
	if m == "" {
		return "", "", false
	}
	return strings.TrimSpace(m), KindDataURI, true
}

// KeywordRule matches when the lowercased key contains any keyword, or, if
// IncludeSuggested is set, when the key was suggested by the caller.
type KeywordRule struct {
	BaseRule
	Keywords         []string
	Kind             Kind
	IncludeSuggested bool
}

// NewLiteralDataURIKeyRule matches keys that say the value is image data,
// accepting prefix-less or malformed base64.
func NewLiteralDataURIKeyRule() *KeywordRule {
	return &KeywordRule{
		BaseRule: NewBaseRule("literal-data-uri-key", "key names embedded image data"),
		Keywords: LiteralDataURIKeywords,
		Kind:     KindDataURI,
	}
}

// NewKeyHintRule matches suggested keys and keys with generic image keywords.
func NewKeyHintRule() *KeywordRule {
	return &KeywordRule{
		BaseRule:         NewBaseRule("key-hint", "key is suggested or names an image location"),
		Keywords:         GenericImageKeywords,
		Kind:             KindURL,
		IncludeSuggested: true,
	}
}

// Match implements Rule.
func (r *KeywordRule) Match(c Candidate) (string, Kind, bool) {
	if r.IncludeSuggested && c.Suggested {
		return strings.TrimSpace(c.Value), r.Kind, true
	}
	if containsAny(c.LowerKey, r.Keywords) {
		return strings.TrimSpace(c.Value), r.Kind, true
	}
	return "", "", false
}

// AbsoluteURLRule matches http and https URLs.
type AbsoluteURLRule struct {
	BaseRule
}

// NewAbsoluteURLRule creates the absolute URL rule.
func NewAbsoluteURLRule() *AbsoluteURLRule {
	return &AbsoluteURLRule{
		BaseRule: NewBaseRule("absolute-url", "value starts with http:// or https://"),
	}
}

// Match implements Rule.
func (r *AbsoluteURLRule) Match(c Candidate) (string, Kind, bool) {
	v := strings.TrimSpace(c.Value)
	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		return v, KindURL, true
	}
	return "", "", false
}

// DefaultRules returns the classification rules in precedence order.
func DefaultRules() []Rule {
	return []Rule{
		NewDataURIContentRule(),
		NewLiteralDataURIKeyRule(),
		NewAbsoluteURLRule(),
		NewKeyHintRule(),
	}
}

// IsDataURI reports whether s contains an image data URI.
func IsDataURI(s string) bool {
	return dataURIPattern.MatchString(s)
}

// HasLiteralDataURIKeyword reports whether key names embedded image data.
func HasLiteralDataURIKeyword(key string) bool {
	return containsAny(strings.ToLower(key), LiteralDataURIKeywords)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
