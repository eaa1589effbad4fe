// Package jellyfin triggers Jellyfin library scans after files are placed.
package jellyfin
