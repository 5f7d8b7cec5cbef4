// Package web serves the public HTML pages of the relay station: the list of
// published resources and the per-resource browse page. Pages are rendered
// from embedded templates in the language negotiated for the request.
package web
