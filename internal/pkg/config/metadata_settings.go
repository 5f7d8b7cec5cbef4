package config

// DefaultListFields are metadata elements that may repeat in the resource schema.
// They are always exported as JSON arrays.
var DefaultListFields = []string{
	"identifier",
	"url",
	"resourceCreator",
	"personInfo",
	"organizationInfo",
	"contactPerson",
	"email",
	"telephoneNumber",
	"languageInfo",
	"languageVarietyInfo",
	"sizeInfo",
	"textFormatInfo",
	"characterEncodingInfo",
	"annotationInfo",
	"domainInfo",
	"textClassificationInfo",
	"licenceInfo",
	"distributionMedium",
	"downloadLocation",
	"executionLocation",
	"attributionText",
	"iprHolder",
	"relationInfo",
	"metadataCreator",
	"metadataLanguageName",
	"metadataLanguageId",
	"keywords",
	"description",
	"resourceName",
	"resourceShortName",
	"documentation",
	"fundingProject",
	"projectName",
}

// MetadataSettings configures the XML/JSON metadata transform
type MetadataSettings struct {
	ListFields []string `mapstructure:"list_fields"`
}

// EffectiveListFields returns the configured list fields or the defaults when none are set
func (s *MetadataSettings) EffectiveListFields() []string {
	if len(s.ListFields) == 0 {
		return DefaultListFields
	}
	return s.ListFields
}

// BCP47Settings points at an optional full IANA language subtag registry file
type BCP47Settings struct {
	RegistryPath string `mapstructure:"registry_path"`
}
