package tm

// TranslationUnit is one aligned segment pair of a translation memory
type TranslationUnit struct {
	ID         string `json:"id" xml:"id,attr"`
	SourceLang string `json:"source_lang" xml:"-"`
	TargetLang string `json:"target_lang" xml:"-"`
	Source     string `json:"source" xml:"src"`
	Target     string `json:"target" xml:"tgt"`
}

// Document summarizes a TMX file stored in the database
type Document struct {
	Path       string   `json:"path"`
	Units      int      `json:"units"`
	Languages  []string `json:"languages"`
	SourceLang string   `json:"source_lang"`
}
