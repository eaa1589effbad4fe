// Package placement locates the arc directory a resolved episode belongs in.
//
// The target root holds one subdirectory per arc, named freely as long as the
// arc name appears somewhere in it (for example "05 - Alabasta"). A file is
// placed only when exactly one subdirectory contains the arc name.
package placement
