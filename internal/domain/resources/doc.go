// Package resources defines language resource metadata records, their
// publication lifecycle and the service and repository contracts around them.
package resources
