package app

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/davidchappy/pathman/internal/entities"
	"github.com/davidchappy/pathman/internal/game"
	tm "github.com/davidchappy/pathman/internal/tilemap"
)

const (
	wallWidth     = 2
	glyphWidth    = 7 // basicfont.Face7x13
	statsPadding  = 20
	statsWidth    = 120
	statsHeight   = 140
	lifeIconGap   = 30
	lifeIconMouth = -0.5
	frightFlash   = 500 // ms
)

var (
	colorPrimary    = color.RGBA{R: 255, G: 255, A: 255}
	colorWall       = color.RGBA{B: 255, A: 255}
	colorFrightened = color.RGBA{R: 211, G: 211, B: 211, A: 255}
	colorOverlay    = color.RGBA{A: 128}
	colorDebug      = color.RGBA{R: 255, A: 255}

	ghostColors = []color.RGBA{
		{R: 255, A: 255},                 // red
		{B: 255, A: 255},                 // blue
		{R: 255, G: 192, B: 203, A: 255}, // pink
		{R: 255, G: 165, A: 255},         // orange
	}

	// whitePixel is the source texture for filled paths.
	whitePixel *ebiten.Image
)

func whiteSource() *ebiten.Image {
	if whitePixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whitePixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whitePixel
}

// view maps maze space to screen space.
type view struct {
	bounds tm.Rect
	scale  float64
}

func (v view) pt(p tm.Point) (float32, float32) {
	return float32((v.bounds.X + p.X) * v.scale), float32((v.bounds.Y + p.Y) * v.scale)
}

func (v view) len(l float64) float32 { return float32(l * v.scale) }

func (s *Session) render(screen *ebiten.Image) {
	st := s.game.State()
	settings := s.game.Settings()
	v := view{bounds: st.Maze.Bounds, scale: st.Scale}

	screen.Fill(color.Black)
	drawMaze(screen, v, st.Maze, s.debug)
	drawPellets(screen, v, st, settings)
	drawPlayer(screen, v, st.Player.Pos, st.Player.Dir, st.Player.MouthAngle, settings.PlayerSize)
	drawGhosts(screen, v, st, settings)
	drawScore(screen, v, st)
	drawLives(screen, v, st, settings)
	drawStats(screen, st, s.width)
	if s.debug {
		drawDebug(screen, v, st)
	}
	drawOverlay(screen, st, s.width, s.height)
}

// drawMaze strokes each wall variant through the middle of its cell.
func drawMaze(dst *ebiten.Image, v view, m *tm.Maze, debug bool) {
	cs := float64(m.CellSize)
	half := cs / 2
	w := v.len(wallWidth)
	line := func(x0, y0, x1, y1 float64) {
		ax, ay := v.pt(tm.Point{X: x0, Y: y0})
		bx, by := v.pt(tm.Point{X: x1, Y: y1})
		vector.StrokeLine(dst, ax, ay, bx, by, w, colorWall, true)
	}

	for y, row := range m.Cells {
		for x, cell := range row {
			left := float64(x) * cs
			top := float64(y) * cs
			cx, cy := left+half, top+half
			switch cell {
			case tm.WallHorizontal:
				line(left, cy, left+cs, cy)
			case tm.WallVertical:
				line(cx, top, cx, top+cs)
			case tm.WallCornerTopLeft:
				line(cx, cy, left+cs, cy)
				line(cx, cy, cx, top+cs)
			case tm.WallCornerTopRight:
				line(left, cy, cx, cy)
				line(cx, cy, cx, top+cs)
			case tm.WallCornerBottomLeft:
				line(cx, top, cx, cy)
				line(cx, cy, left+cs, cy)
			case tm.WallCornerBottomRight:
				line(left, cy, cx, cy)
				line(cx, top, cx, cy)
			}
			if debug {
				px, py := v.pt(tm.Point{X: left, Y: top})
				vector.StrokeRect(dst, px, py, v.len(cs), v.len(cs), 1, color.RGBA{G: 128, A: 255}, false)
			}
		}
	}
}

func drawPellets(dst *ebiten.Image, v view, st *game.State, settings game.Settings) {
	for _, p := range st.Pellets {
		x, y := v.pt(p.Pos)
		vector.DrawFilledCircle(dst, x, y, v.len(settings.PelletSize), colorPrimary, true)
	}
	for _, p := range st.PowerPellets {
		if !p.FlashOn {
			continue
		}
		x, y := v.pt(p.Pos)
		vector.DrawFilledCircle(dst, x, y, v.len(settings.PowerPelletSize), colorPrimary, true)
	}
}

func heading(d entities.Direction) float64 {
	switch d {
	case entities.DirDown:
		return math.Pi / 2
	case entities.DirLeft:
		return math.Pi
	case entities.DirUp:
		return -math.Pi / 2
	default:
		return 0
	}
}

// drawPlayer fills a circle with a wedge cut out around the heading.
// mouth is the current mouth angle, zero when closed.
func drawPlayer(dst *ebiten.Image, v view, pos tm.Point, d entities.Direction, mouth, size float64) {
	cx, cy := v.pt(pos)
	r := v.len(size / 2)
	open := math.Abs(mouth)
	if open == 0 {
		vector.DrawFilledCircle(dst, cx, cy, r, colorPrimary, true)
		return
	}
	rot := heading(d)

	var path vector.Path
	path.MoveTo(cx, cy)
	path.Arc(cx, cy, r, float32(rot+open), float32(rot+2*math.Pi-open), vector.Clockwise)
	path.Close()
	fillPath(dst, &path, colorPrimary)
}

func fillPath(dst *ebiten.Image, path *vector.Path, clr color.RGBA) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255, float32(clr.A)/255
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = r, g, b, a
	}
	dst.DrawTriangles(vs, is, whiteSource(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// ghostColor picks the body colour. Ghosts turn grey while a power pellet
// is active and flash back to their colour as it runs out.
func ghostColor(i int, st *game.State, settings game.Settings) color.RGBA {
	c := ghostColors[i%len(ghostColors)]
	if !st.Powered() {
		return c
	}
	if st.PowerWarning(settings) && st.PrevFrame.Milliseconds()%frightFlash < frightFlash/2 {
		return c
	}
	return colorFrightened
}

func drawGhosts(dst *ebiten.Image, v view, st *game.State, settings game.Settings) {
	radius := settings.GhostSize / 2
	for i, gh := range st.Ghosts {
		c := ghostColor(i, st, settings)
		x, y := v.pt(gh.Pos)
		r := v.len(radius)

		// Dome over a square skirt.
		vector.DrawFilledCircle(dst, x, y, r, c, true)
		vector.DrawFilledRect(dst, x-r, y, 2*r, r, c, true)

		// Skirt notches.
		var notch vector.Path
		bottom := y + r
		notch.MoveTo(x-v.len(6), bottom)
		notch.LineTo(x-v.len(4), bottom-v.len(6))
		notch.LineTo(x, bottom)
		notch.LineTo(x+v.len(4), bottom-v.len(6))
		notch.LineTo(x+v.len(6), bottom)
		notch.Close()
		fillPath(dst, &notch, color.RGBA{A: 255})

		for _, dx := range []float64{-4, 4} {
			ex, ey := x+v.len(dx), y-v.len(3)
			vector.DrawFilledCircle(dst, ex, ey, v.len(3), color.White, true)
			vector.DrawFilledCircle(dst, ex, ey-v.len(0.5), v.len(1.5), color.Black, true)
		}
	}
}

// drawScore writes the score above the top-left corner of the maze.
func drawScore(dst *ebiten.Image, v view, st *game.State) {
	x, y := v.pt(tm.Point{X: 10, Y: -15})
	text.Draw(dst, fmt.Sprintf("%d", st.Score), basicfont.Face7x13, int(x), int(y), color.White)
}

// drawLives draws one icon per extra life under the maze.
func drawLives(dst *ebiten.Image, v view, st *game.State, settings game.Settings) {
	for i := 0; i < st.Player.ExtraLives; i++ {
		pos := tm.Point{X: 20 + float64(i*lifeIconGap), Y: st.Maze.Bounds.Height + 20}
		drawPlayer(dst, v, pos, entities.DirLeft, lifeIconMouth, settings.PlayerSize)
	}
}

// drawStats is the sidebar box in the top-right corner with the reset
// button under the counters.
func drawStats(dst *ebiten.Image, st *game.State, width int) {
	boxX := float32(width - statsWidth - statsPadding)
	boxY := float32(statsPadding)
	vector.StrokeRect(dst, boxX, boxY, statsWidth, statsHeight, 2, colorPrimary, false)

	tx := int(boxX) + statsPadding
	ty := int(boxY) + statsPadding
	lines := []string{
		fmt.Sprintf("FPS: %.0f", st.Debug.FPS),
		fmt.Sprintf("Pellets: %d", len(st.Pellets)+len(st.PowerPellets)),
		fmt.Sprintf("Power: %.1fs", st.PowerRemaining.Seconds()),
	}
	for i, l := range lines {
		text.Draw(dst, l, basicfont.Face7x13, tx, ty+i*statsPadding, colorPrimary)
	}

	b := resetButton(width)
	vector.DrawFilledRect(dst, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), colorPrimary, false)
	label := "Reset"
	text.Draw(dst, label, basicfont.Face7x13,
		int(b.X+(b.Width-float64(len(label)*glyphWidth))/2), int(b.Y+b.Height/2)+4, color.Black)
}

func drawDebug(dst *ebiten.Image, v view, st *game.State) {
	if c := st.Debug.ClickLocation; c != nil {
		vector.DrawFilledCircle(dst, float32(c.X), float32(c.Y), 4, colorDebug, true)
	}
	cs := float64(st.Maze.CellSize)
	cell := st.Player.Cell
	x, y := v.pt(tm.Point{X: float64(cell.X) * cs, Y: float64(cell.Y) * cs})
	vector.StrokeRect(dst, x, y, v.len(cs), v.len(cs), 2, colorDebug, false)
}

// drawOverlay dims the screen and centres the overlay text whenever the
// game is not playing.
func drawOverlay(dst *ebiten.Image, st *game.State, width, height int) {
	if st.Phase == game.PhasePlaying {
		return
	}
	vector.DrawFilledRect(dst, 0, 0, float32(width), float32(height), colorOverlay, false)
	if st.Overlay == "" {
		return
	}
	x := (width - len(st.Overlay)*glyphWidth) / 2
	text.Draw(dst, st.Overlay, basicfont.Face7x13, x, height/2, color.White)
}
