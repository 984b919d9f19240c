// Package marker persists the identifier of the last installed build.
//
// The marker is a plain text file holding the build number and nothing else.
// A missing file means nothing has been installed yet.
package marker
