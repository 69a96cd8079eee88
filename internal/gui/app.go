package gui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/metrics"
	"github.com/san-kum/lifesim/internal/sim"
)

var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColPanel   = rl.NewColor(10, 10, 10, 200)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

type App struct {
	Sim     *sim.Simulator
	Config  *config.Config
	Logger  *log.Logger
	Tex     rl.Texture2D
	Font    rl.Font
	History *metrics.History
	Cycle   *metrics.CycleDetector
	ShowHUD bool

	gridW, gridH int
}

func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Display.Width), int32(cfg.Display.Height), cfg.Display.Title)
	if cfg.Display.FPS > 0 {
		rl.SetTargetFPS(int32(cfg.Display.FPS))
	}
	rl.SetExitKey(0)
}

// NewApp builds the simulator and the texture it is drawn through. The window
// must already be open.
func NewApp(cfg *config.Config, logger *log.Logger) (*App, error) {
	w, h := cfg.GridSize()
	history := metrics.NewHistory(sim.DefaultHistory)
	cycle := metrics.NewCycleDetector(16)

	s, err := sim.New(w, h, cfg.ToSim(),
		sim.WithLogger(logger),
		sim.WithBackend(cfg.Backend()),
		sim.WithMetric(history),
		sim.WithMetric(cycle),
	)
	if err != nil {
		return nil, err
	}

	img := rl.GenImageColor(w, h, rl.Black)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(tex, rl.FilterPoint)

	a := &App{
		Sim:     s,
		Config:  cfg,
		Logger:  logger,
		Tex:     tex,
		Font:    rl.GetFontDefault(),
		History: history,
		Cycle:   cycle,
		ShowHUD: true,
		gridW:   w,
		gridH:   h,
	}
	a.upload()

	logger.Info("window open",
		"display", fmt.Sprintf("%dx%d", cfg.Display.Width, cfg.Display.Height),
		"grid", fmt.Sprintf("%dx%d", w, h),
		"scale", cfg.Display.Scale)
	return a, nil
}

// Run opens a window and blocks until it is closed or the user quits.
func Run(cfg *config.Config, logger *log.Logger) error {
	initWindow(cfg)
	defer rl.CloseWindow()

	app, err := NewApp(cfg, logger)
	if err != nil {
		return err
	}
	defer rl.UnloadTexture(app.Tex)

	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update feeds one frame of input to the simulator. It reports false once the
// user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Sim.Reset(0)
		a.upload()
	}

	res := a.Sim.Frame(time.Now(), a.readInput())
	if res.Quit {
		return false
	}
	if res.Ticked {
		a.upload()
	}
	return true
}

func (a *App) readInput() sim.Input {
	view := sim.Viewport{
		ScreenW: float64(rl.GetScreenWidth()),
		ScreenH: float64(rl.GetScreenHeight()),
		GridW:   a.gridW,
		GridH:   a.gridH,
	}
	mp := rl.GetMousePosition()
	gx, gy := view.ToGrid(float64(mp.X), float64(mp.Y))

	scroll := 0
	switch wheel := rl.GetMouseWheelMove(); {
	case wheel > 0:
		scroll = 1
	case wheel < 0:
		scroll = -1
	}

	return sim.Input{
		PointerX:    gx,
		PointerY:    gy,
		Primary:     rl.IsMouseButtonDown(rl.MouseButtonLeft),
		Secondary:   rl.IsMouseButtonDown(rl.MouseButtonRight),
		Scroll:      scroll,
		CycleShape:  rl.IsKeyPressed(rl.KeyTab),
		Clear:       rl.IsKeyPressed(rl.KeyC),
		ClearHeld:   rl.IsKeyDown(rl.KeyX),
		TogglePause: rl.IsKeyPressed(rl.KeySpace),
		StepOnce:    rl.IsKeyPressed(rl.KeyN),
		Quit:        rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape),
	}
}

func (a *App) upload() {
	rl.UpdateTexture(a.Tex, a.Sim.Buffer().Pixels())
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	src := rl.NewRectangle(0, 0, float32(a.gridW), float32(a.gridH))
	dst := rl.NewRectangle(0, 0, float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	rl.DrawTexturePro(a.Tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)

	if a.ShowHUD {
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	sw, sh := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
	rl.DrawRectangle(20, 20, 330, 110, ColPanel)

	a.drawText("gameoflife", 30, 30, 20, ColSelect)
	a.drawText(a.Sim.Brush().String(), 30, 56, 14, ColAccent)
	a.drawText(fmt.Sprintf("gen %d  pop %d", a.Sim.Generation(), a.Sim.Grid().Population()), 30, 76, 14, ColText)

	if p := a.Cycle.Period(); p > 0 {
		a.drawText(fmt.Sprintf("period %d since gen %d", p, a.Cycle.Since()), 30, 96, 14, ColText)
	}

	status := "RUNNING"
	col := ColSelect
	if a.Sim.Paused() {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, sw-120, 30, 16, col)

	a.DrawTelemetry(sw, sh)

	a.drawText("[LMB] DRAW  [RMB] ERASE  [WHEEL] SIZE  [TAB] SHAPE  [C] CLEAR  [SPACE] PAUSE  [N] STEP  [R] RESET  [Q] QUIT",
		30, sh-24, 12, ColAccent)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), sw-80, sh-24, 12, ColAccent)
}

// DrawTelemetry plots recent population as a line strip above the help bar.
func (a *App) DrawTelemetry(sw, sh int) {
	samples := a.History.Samples()
	if len(samples) < 2 {
		return
	}

	width, height := 400, 60
	rectX, rectY := 30, sh-40-height
	rl.DrawRectangle(int32(rectX-10), int32(rectY-10), int32(width+20), int32(height+20), ColPanel)

	minVal, maxVal := samples[0], samples[0]
	for _, v := range samples {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(samples))
	for i, val := range samples {
		px := float32(rectX) + (float32(i)/float32(len(samples)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("pop %.0f", samples[len(samples)-1]), rectX+width+16, rectY+height-10, 14, ColText)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
