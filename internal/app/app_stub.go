//go:build !ebiten

package app

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/san-kum/lifesim/internal/config"
)

// ErrNotBuilt is returned by Run in builds without the ebiten tag.
var ErrNotBuilt = errors.New("app: the ebiten shell requires building with -tags ebiten")

// Run always fails in the headless build.
func Run(*config.Config, *log.Logger) error { return ErrNotBuilt }
