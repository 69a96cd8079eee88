//go:build ebiten

package app

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/metrics"
	"github.com/san-kum/lifesim/internal/sim"
)

var hudColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}

// Game adapts a simulator to the ebiten.Game interface.
type Game struct {
	sim     *sim.Simulator
	logger  *log.Logger
	history *metrics.History

	img   *ebiten.Image
	pix   []byte
	dirty bool

	gridW, gridH int
	scale        int
	showHUD      bool
}

func New(cfg *config.Config, logger *log.Logger) (*Game, error) {
	w, h := cfg.GridSize()
	history := metrics.NewHistory(sim.DefaultHistory)
	s, err := sim.New(w, h, cfg.ToSim(),
		sim.WithLogger(logger),
		sim.WithBackend(cfg.Backend()),
		sim.WithMetric(history),
	)
	if err != nil {
		return nil, err
	}
	return &Game{
		sim:     s,
		logger:  logger,
		history: history,
		img:     ebiten.NewImage(w, h),
		pix:     make([]byte, w*h*4),
		dirty:   true,
		gridW:   w,
		gridH:   h,
		scale:   cfg.Display.Scale,
		showHUD: true,
	}, nil
}

// Run opens the window and blocks until it is closed or the user quits.
func Run(cfg *config.Config, logger *log.Logger) error {
	game, err := New(cfg, logger)
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle(cfg.Display.Title)
	ebiten.SetWindowSize(game.gridW*game.scale, game.gridH*game.scale)
	if cfg.Display.FPS > 0 {
		ebiten.SetTPS(cfg.Display.FPS)
	}
	logger.Info("window open",
		"grid", fmt.Sprintf("%dx%d", game.gridW, game.gridH),
		"scale", game.scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sim.Reset(0)
		g.dirty = true
	}

	res := g.sim.Frame(time.Now(), g.readInput())
	if res.Quit {
		return ebiten.Termination
	}
	if res.Ticked {
		g.dirty = true
	}
	return nil
}

func (g *Game) readInput() sim.Input {
	view := sim.Viewport{
		ScreenW: float64(g.gridW * g.scale),
		ScreenH: float64(g.gridH * g.scale),
		GridW:   g.gridW,
		GridH:   g.gridH,
	}
	cx, cy := ebiten.CursorPosition()
	gx, gy := view.ToGrid(float64(cx), float64(cy))

	scroll := 0
	switch _, dy := ebiten.Wheel(); {
	case dy > 0:
		scroll = 1
	case dy < 0:
		scroll = -1
	}

	return sim.Input{
		PointerX:    gx,
		PointerY:    gy,
		Primary:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Secondary:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		Scroll:      scroll,
		CycleShape:  inpututil.IsKeyJustPressed(ebiten.KeyTab),
		Clear:       inpututil.IsKeyJustPressed(ebiten.KeyC),
		ClearHeld:   ebiten.IsKeyPressed(ebiten.KeyX),
		TogglePause: inpututil.IsKeyJustPressed(ebiten.KeySpace),
		StepOnce:    inpututil.IsKeyJustPressed(ebiten.KeyN),
		Quit:        inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.dirty {
		g.sim.Buffer().WriteRGBA(g.pix)
		g.img.WritePixels(g.pix)
		g.dirty = false
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.img, op)

	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	face := basicfont.Face7x13
	lines := []string{
		"gameoflife",
		g.sim.Brush().String(),
		fmt.Sprintf("gen %d  pop %d  peak %.0f", g.sim.Generation(), g.sim.Grid().Population(), g.history.Value()),
		fmt.Sprintf("%.0f FPS", ebiten.ActualFPS()),
	}
	if g.sim.Paused() {
		lines = append(lines, "PAUSED")
	}
	for i, line := range lines {
		text.Draw(screen, line, face, 8, 16+i*15, hudColor)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.gridW * g.scale, g.gridH * g.scale
}
