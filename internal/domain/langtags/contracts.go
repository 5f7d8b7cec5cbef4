// Package langtags defines lookups over IETF BCP47 language subtags.
package langtags

// VariantLookup finds registered variant subtags by their prefix.
// Results are variant descriptions in registry order. Unknown or empty
// subtags yield an empty result.
type VariantLookup interface {
	// LanguageVariants returns variants whose prefix is exactly the language subtag.
	LanguageVariants(lang string) []string

	// ScriptVariants returns variants registered for lang-script, or the
	// language variants when none is registered for the script.
	ScriptVariants(lang, script string) []string

	// VariantVariants returns variants whose prefix extends lang with the given variant.
	VariantVariants(lang, variant string) []string
}
