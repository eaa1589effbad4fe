// Package plex triggers a scan of one Plex library section after files are
// placed. The section key is looked up by library title once per service.
package plex
