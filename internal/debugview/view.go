// Package debugview draws a top-down overlay of the encounter in a terminal.
package debugview

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/nightwarden/darkhunt/internal/world"
)

// Zone is a darkness zone as drawn.
type Zone struct {
	ID       string
	Center   world.Point
	Radius   float64
	Darkness float64
	Light    float64
}

// Room is a timed room light.
type Room struct {
	ID     string
	Bounds world.Box
	On     bool
}

// Lamp is an area lamp.
type Lamp struct {
	ID     string
	Center world.Point
	Radius float64
	On     bool
}

// Player is a simulated player.
type Player struct {
	ID         world.PlayerID
	Position   world.Point
	InDarkness bool
	Beam       bool // carrying a lit flashlight
}

// Enemy is one agent.
type Enemy struct {
	ID       world.EnemyID
	Position world.Point
	State    string
	Visible  bool
}

// Frame is everything drawn in one refresh.
type Frame struct {
	Tick    int64
	Elapsed time.Duration
	Danger  bool
	Chasing int
	Zones   []Zone
	Rooms   []Room
	Lamps   []Lamp
	Players []Player
	Enemies []Enemy
}

var (
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleRoomOn = tcell.StyleDefault.Background(tcell.ColorOlive)
	styleLamp   = tcell.StyleDefault.Background(tcell.ColorDarkGoldenrod)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleEnemy  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// shade maps darkness (0..1) to a fill rune, light to dark.
var shade = []rune{' ', '·', '░', '▒', '▓'}

// View renders frames onto a tcell screen. World X maps to columns (two per
// unit by default) and world Z to rows.
type View struct {
	screen tcell.Screen
	bounds world.Box
	cellsX float64 // columns per world unit
	cellsZ float64 // rows per world unit
}

// New returns a view of the given world region.
func New(screen tcell.Screen, bounds world.Box) *View {
	return &View{screen: screen, bounds: bounds.Canon(), cellsX: 2, cellsZ: 1}
}

// Bounds returns a region covering every zone, room and spawn, padded by
// one unit.
func Bounds(zones []Zone, rooms []Room, extra []world.Point) world.Box {
	minX, minZ := math.Inf(1), math.Inf(1)
	maxX, maxZ := math.Inf(-1), math.Inf(-1)
	grow := func(x0, z0, x1, z1 float64) {
		minX, minZ = math.Min(minX, x0), math.Min(minZ, z0)
		maxX, maxZ = math.Max(maxX, x1), math.Max(maxZ, z1)
	}
	for _, z := range zones {
		grow(z.Center.X-z.Radius, z.Center.Z-z.Radius, z.Center.X+z.Radius, z.Center.Z+z.Radius)
	}
	for _, r := range rooms {
		b := r.Bounds.Canon()
		grow(b.Min.X, b.Min.Z, b.Max.X, b.Max.Z)
	}
	for _, p := range extra {
		grow(p.X, p.Z, p.X, p.Z)
	}
	if math.IsInf(minX, 1) {
		return world.Box{Min: world.Pt(-10, 0, -10), Max: world.Pt(10, 0, 10)}
	}
	return world.Box{Min: world.Pt(minX-1, 0, minZ-1), Max: world.Pt(maxX+1, 0, maxZ+1)}
}

// Cell projects a world point to a screen cell below the HUD line. ok is
// false when the point falls outside the screen.
func (v *View) Cell(p world.Point) (x, y int, ok bool) {
	w, h := v.screen.Size()
	x = int(math.Floor((p.X - v.bounds.Min.X) * v.cellsX))
	y = 1 + int(math.Floor((p.Z-v.bounds.Min.Z)*v.cellsZ))
	return x, y, x >= 0 && y >= 1 && x < w && y < h
}

// center returns the world point under a screen cell.
func (v *View) center(x, y int) world.Point {
	return world.Pt(
		v.bounds.Min.X+(float64(x)+0.5)/v.cellsX,
		0,
		v.bounds.Min.Z+(float64(y-1)+0.5)/v.cellsZ,
	)
}

// Draw renders one frame and shows it.
func (v *View) Draw(f Frame) {
	v.screen.Clear()
	w, h := v.screen.Size()

	for y := 1; y < h; y++ {
		for x := 0; x < w; x++ {
			p := v.center(x, y)
			st := styleText
			for _, r := range f.Rooms {
				if r.On && r.Bounds.Canon().Contains(world.Pt(p.X, r.Bounds.Canon().Min.Y, p.Z)) {
					st = styleRoomOn
				}
			}
			for _, l := range f.Lamps {
				if l.On && math.Hypot(p.X-l.Center.X, p.Z-l.Center.Z) <= l.Radius {
					st = styleLamp
				}
			}
			v.screen.SetContent(x, y, shade[shadeIndex(darknessAt(f.Zones, p))], nil, st)
		}
	}

	for _, p := range f.Players {
		if x, y, ok := v.Cell(p.Position); ok {
			r := '@'
			if p.Beam {
				r = '☼'
			}
			v.screen.SetContent(x, y, r, nil, stylePlayer)
		}
	}
	for _, e := range f.Enemies {
		if !e.Visible {
			continue
		}
		if x, y, ok := v.Cell(e.Position); ok {
			v.screen.SetContent(x, y, enemyRune(e.State), nil, styleEnemy)
		}
	}

	danger := "safe"
	if f.Danger {
		danger = "DANGER"
	}
	putText(v.screen, 0, 0, fmt.Sprintf("t=%6.1fs tick=%d  %s  chasing=%d  [q]uit",
		f.Elapsed.Seconds(), f.Tick, danger, f.Chasing), styleHUD)
	v.screen.Show()
}

func darknessAt(zones []Zone, p world.Point) float64 {
	if len(zones) == 0 {
		return 1
	}
	best := 0.0
	for _, z := range zones {
		d := math.Hypot(p.X-z.Center.X, p.Z-z.Center.Z)
		if d > z.Radius {
			continue
		}
		v := world.Lerp(z.Darkness, 0, d/z.Radius) * (1 - z.Light)
		best = math.Max(best, v)
	}
	return best
}

func shadeIndex(d float64) int {
	i := int(world.Clamp01(d) * float64(len(shade)))
	return min(i, len(shade)-1)
}

func enemyRune(state string) rune {
	switch state {
	case "chasing":
		return 'X'
	case "repelled", "escape":
		return '!'
	}
	return 'E'
}

// putText writes a string to the screen starting at (x, y). Wide runes take
// two columns. It stops at the right edge of the screen (sw).
func putText(scr tcell.Screen, x, y int, s string, st tcell.Style) {
	sw, _ := scr.Size()
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > sw {
			break
		}
		scr.SetContent(x, y, r, nil, st)
		x += w
	}
}
