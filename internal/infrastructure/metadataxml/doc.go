// Package metadataxml converts resource metadata between XML and JSON.
//
// Attributes are keyed with an "@" prefix and mixed text with "#text".
// Values stay strings. Elements named in the list-field set are always
// encoded as JSON arrays, even when the document holds a single occurrence,
// so consumers see a stable shape for repeatable elements.
package metadataxml
