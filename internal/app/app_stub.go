//go:build !ebiten

package app

import (
	"errors"

	"github.com/sirupsen/logrus"

	"mazes/internal/session"
)

// ErrHeadless is returned when the viewer is requested without the ebiten tag.
var ErrHeadless = errors.New("app: the viewer requires building with the 'ebiten' tag")

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New returns a placeholder in the headless build.
func New(*session.Session, *Config, *logrus.Logger) *Game { return &Game{} }

// Run always fails in the headless build.
func Run(*Game, *Config) error { return ErrHeadless }
