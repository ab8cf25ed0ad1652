// Package file provides the file-based configuration of exclint.
//
// Configuration is read from a TOML file (.exclint.toml by default). A missing
// file yields the defaults; a malformed file or an incomplete suppression rule
// is an error. The Maven token may be supplied through the EXCLINT_MAVEN_TOKEN
// environment variable instead of the file.
package file
