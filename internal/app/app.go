//go:build ebiten

package app

import (
	"errors"
	"time"

	"mazes/internal/core"
	"mazes/internal/render"
	"mazes/internal/rules"
	"mazes/internal/session"
	"mazes/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"
)

// Game adapts a session to the ebiten.Game interface.
type Game struct {
	s       *session.Session
	painter *render.GridPainter
	hud     *ui.HUD
	clock   *core.FixedStep
	palette render.Palette
	markers render.Markers
	log     *logrus.Logger

	scale   int
	running bool
	seed    int64
}

// New constructs a Game for the provided session.
func New(s *session.Session, cfg *Config, log *logrus.Logger) *Game {
	size := s.Size()
	return &Game{
		s:       s,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     ui.NewHUD(s, cfg.HUD),
		clock:   core.NewFixedStep(cfg.Rate),
		palette: render.DefaultPalette(),
		log:     log,
		scale:   max(cfg.Scale, 1),
		seed:    cfg.Seed,
	}
}

var ruleKeys = map[ebiten.Key]rules.Rule{
	ebiten.KeySpace: rules.Seeds,
	ebiten.KeyUp:    rules.Life,
	ebiten.KeyRight: rules.Mazecetric,
	ebiten.KeyLeft:  rules.NewDynamic([]uint8{3}, []uint8{1, 2, 3, 5}),
	ebiten.KeyDown:  rules.Maze,
}

// Update handles per-frame input and advances the grid.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for key, r := range ruleKeys {
		if inpututil.IsKeyJustPressed(key) {
			if err := g.s.Apply(r); err != nil {
				return err
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.running = !g.running
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if err := g.s.Step(1); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.s.Randomize(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.seed = time.Now().UnixNano()
		g.s.Randomize(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.s.ToggleFinder()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.s.ClearPath()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.findPath()
	}

	gridW := g.s.Size().W * g.scale
	if !g.hud.Update(gridW) {
		g.handleClicks()
	}

	if g.running && g.clock.ShouldStep() {
		return g.s.Step(1)
	}
	return nil
}

// handleClicks converts mouse clicks into path endpoints.
func (g *Game) handleClicks() {
	left := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	right := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	if !left && !right {
		return
	}
	mx, my := ebiten.CursorPosition()
	p := core.Pt(mx/g.scale, my/g.scale)
	if !g.s.Grid().InBounds(p) {
		return
	}
	if left {
		g.markers.Start, g.markers.HasStart = p, true
	}
	if right {
		g.markers.End, g.markers.HasEnd = p, true
	}
}

func (g *Game) findPath() {
	if !g.markers.HasStart || !g.markers.HasEnd {
		g.log.Info("pick a start (left click) and an end (right click) first")
		return
	}
	found, err := g.s.FindPath(g.markers.Start, g.markers.End)
	if err != nil {
		// Rejected requests are already logged by the session.
		return
	}
	if !found {
		g.log.WithField("finder", g.s.Finder()).Info("no path")
	}
}

// Draw renders the grid, the route and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	buf := render.Frame(g.painter.Buffer(), g.s.Grid(), g.s.Path(), g.markers, g.palette)
	g.painter.Blit(screen, buf, g.scale)
	size := g.s.Size()
	g.hud.Draw(screen, size.W*g.scale, size.H*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := g.s.Size()
	return size.W*g.scale + g.hud.Width(), size.H * g.scale
}

// Run opens the window and blocks until it closes.
func Run(g *Game, cfg *Config) error {
	size := g.s.Size()
	ebiten.SetWindowTitle("mazes: " + rules.Format(g.s.Rule()))
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*g.scale+g.hud.Width(), size.H*g.scale)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
