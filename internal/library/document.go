package library

import (
	"encoding/json"
	"strings"
)

// Document is the unit persisted to the library: one bibliographic
// entry with normalized tags, its category, and the organized file
// paths (relative to the library root). Unmapped source fields are
// preserved under Extra and serialized as extra_<field> keys so no
// data is silently lost.
type Document struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Authors   string   `json:"authors"`
	Year      string   `json:"year"`
	Journal   string   `json:"journal"`
	Booktitle string   `json:"booktitle"`
	Publisher string   `json:"publisher"`
	Volume    string   `json:"volume"`
	Number    string   `json:"number"`
	Pages     string   `json:"pages"`
	DOI       string   `json:"doi"`
	URL       string   `json:"url"`
	ISBN      string   `json:"isbn"`
	ISSN      string   `json:"issn"`
	Abstract  string   `json:"abstract"`
	Note      string   `json:"note"`
	Tags      []string `json:"tags"`
	Category  string   `json:"category"`
	EntryType string   `json:"entry_type"`
	FilePaths []string `json:"file_paths"`
	HasPDF    bool     `json:"has_pdf"`
	PDFCount  int      `json:"pdf_count"`

	// Extra holds unmapped source fields, keyed by original field name.
	Extra map[string]string `json:"-"`
}

// extraPrefix namespaces preserved unmapped fields in the JSON schema.
const extraPrefix = "extra_"

// docAlias breaks the MarshalJSON/UnmarshalJSON recursion.
type docAlias Document

// MarshalJSON flattens Extra into top-level extra_<field> keys.
func (d Document) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(docAlias(d))
	if err != nil {
		return nil, err
	}
	if len(d.Extra) == 0 {
		return base, nil
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(base, &m); err != nil {
		return nil, err
	}
	for field, value := range d.Extra {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		m[extraPrefix+field] = raw
	}
	return json.Marshal(m)
}

// UnmarshalJSON restores extra_<field> keys into Extra.
func (d *Document) UnmarshalJSON(data []byte) error {
	var alias docAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*d = Document(alias)

	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	for key, raw := range m {
		if !strings.HasPrefix(key, extraPrefix) {
			continue
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			continue // Non-string extras are not produced by this tool
		}
		if d.Extra == nil {
			d.Extra = make(map[string]string)
		}
		d.Extra[strings.TrimPrefix(key, extraPrefix)] = value
	}
	return nil
}

// Field returns a metadata field by its JSON schema name, covering the
// fields the keyword classifier scans. Extra fields are addressed with
// their extra_ prefix. Unknown names return "".
func (d Document) Field(name string) string {
	switch name {
	case "id":
		return d.ID
	case "title":
		return d.Title
	case "authors":
		return d.Authors
	case "year":
		return d.Year
	case "journal":
		return d.Journal
	case "booktitle":
		return d.Booktitle
	case "publisher":
		return d.Publisher
	case "abstract":
		return d.Abstract
	case "note":
		return d.Note
	}
	if strings.HasPrefix(name, extraPrefix) {
		return d.Extra[strings.TrimPrefix(name, extraPrefix)]
	}
	return ""
}
