package v1

// BasePath is the prefix of every JSON API route of version 1
const BasePath = "/api/v1"

// XHRPath is the prefix of the form-posting lookup routes used by the metadata editor
const XHRPath = "/xhr"
