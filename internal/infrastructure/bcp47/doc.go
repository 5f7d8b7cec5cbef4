// Package bcp47 reads the IANA language subtag registry and answers
// variant lookups. A subset of the registry is embedded; a full copy of
// the registry file can be loaded from disk instead.
package bcp47
