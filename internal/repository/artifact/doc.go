// Package artifact manages the installed server jar.
//
// Remove deletes the previous jar and treats a missing file as a no-op.
// Install swaps new contents into place with go-update so the target path
// never holds a half-written file.
package artifact
