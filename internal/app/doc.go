// Package app is the ebiten window shell. It is only functional when built
// with the ebiten tag; otherwise Run reports ErrNotBuilt.
package app
