// Package detection finds string values in a document that look like image
// references: absolute URLs, data URIs, or values whose key names suggest an
// image.
package detection

// Kind classifies a found image value.
type Kind string

const (
	// KindURL is an absolute URL, a relative path, or any value flagged by key name.
	KindURL Kind = "url"
	// KindDataURI is an embedded image (data URI or bare base64).
	KindDataURI Kind = "dataUri"
)

// FoundImage is one classified string value.
type FoundImage struct {
	Path  string `json:"path" yaml:"path"`   // Path expression of the value, e.g. "user.photos[2].url"
	Value string `json:"value" yaml:"value"` // Trimmed value, or the matched data URI
	Kind  Kind   `json:"type" yaml:"type"`   // url or dataUri
}

// Candidate is an object member with a string value, as offered to the rules.
type Candidate struct {
	// Key is the member key as written in the document.
	Key string
	// LowerKey is Key lowercased.
	LowerKey string
	// Value is the raw string value.
	Value string
	// Suggested is set when Key is one of the caller's suggested fields.
	Suggested bool
}

// Keyword lists used by the default rules and the skip-list. All entries are
// lowercase and compared against lowercased keys.
var (
	// SkipKeys name metadata members that are never classified themselves.
	// Their object or array values are still searched.
	SkipKeys = []string{
		"filename",
		"style",
		"aspectratio",
		"imagequality",
		"suggestedprompt",
		"originalfilename",
	}

	// LiteralDataURIKeywords mark keys whose value is the image data itself.
	LiteralDataURIKeywords = []string{
		"datauri",
		"base64",
		"imagedata",
		"embeddedimage",
		"inlineimage",
		"imagedatauri",
		"photodatauri",
		"imagefile",
		"base64image",
		"filedata",
		"attachmentdata",
	}

	// GenericImageKeywords mark keys whose value is likely an image location.
	GenericImageKeywords = []string{
		"image",
		"url",
		"path",
		"uri",
		"foto",
		"img",
		"icon",
		"avatar",
		"thumbnail",
		"picture",
	}
)
