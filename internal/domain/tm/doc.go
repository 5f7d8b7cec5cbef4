// Package tm defines translation memory management on top of an XML database.
package tm
