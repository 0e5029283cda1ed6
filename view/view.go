// Package view shows solver and strategy overlays in the terminal.
package view

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/mazega/maze"
)

// Frame is one overlay to display
type Frame struct {
	Title   string
	Overlay *maze.Overlay
}

// gridTop is the first screen row of the grid, below the title
const gridTop = 1

type glyph struct {
	r     rune
	style tcell.Style
}

var glyphs = map[maze.Cell]glyph{
	maze.Empty:   {' ', tcell.StyleDefault},
	maze.Wall:    {'█', tcell.StyleDefault.Foreground(tcell.ColorGray)},
	maze.Start:   {'S', tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)},
	maze.Exit:    {'E', tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)},
	maze.OnPath:  {'•', tcell.StyleDefault.Foreground(tcell.ColorYellow)},
	maze.Visited: {'·', tcell.StyleDefault.Foreground(tcell.ColorBlue)},
}

// Draw clears the screen and draws the title line and the overlay, clipped to the screen
func Draw(screen tcell.Screen, frame Frame) {
	screen.Clear()
	width, height := screen.Size()

	drawText(screen, 0, 0, width, frame.Title, tcell.StyleDefault.Bold(true))

	o := frame.Overlay
	if o == nil {
		return
	}
	for y := 0; y < o.Height() && gridTop+y < height; y++ {
		for x := 0; x < o.Width() && x < width; x++ {
			g, ok := glyphs[o.At(maze.Point{X: x, Y: y})]
			if !ok {
				g = glyph{'?', tcell.StyleDefault}
			}
			screen.SetContent(x, gridTop+y, g.r, nil, g.style)
		}
	}
}

func drawText(screen tcell.Screen, x, y, maxWidth int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= maxWidth {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Viewer pages through frames until the user quits
type Viewer struct {
	screen  tcell.Screen
	frames  []Frame
	current int
}

// New creates a viewer; the screen must already be initialised
func New(screen tcell.Screen, frames []Frame) *Viewer {
	return &Viewer{screen: screen, frames: frames}
}

// Current is the index of the displayed frame
func (v *Viewer) Current() int { return v.current }

func (v *Viewer) draw() {
	if len(v.frames) == 0 {
		v.screen.Clear()
		drawText(v.screen, 0, 0, 80, "nothing to show, q to quit", tcell.StyleDefault)
		v.screen.Show()
		return
	}

	frame := v.frames[v.current]
	frame.Title = fmt.Sprintf("[%d/%d] %s", v.current+1, len(v.frames), frame.Title)
	Draw(v.screen, frame)

	width, height := v.screen.Size()
	if frame.Overlay != nil && gridTop+frame.Overlay.Height() < height {
		help := fmt.Sprintf("path %d  visited %d  ←/→ switch  q quit",
			frame.Overlay.Count(maze.OnPath), frame.Overlay.Count(maze.Visited))
		drawText(v.screen, 0, gridTop+frame.Overlay.Height(), width, help, tcell.StyleDefault.Dim(true))
	}
	v.screen.Show()
}

// handleInput returns false when the viewer should exit
func (v *Viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			v.step(-1)
		case tcell.KeyRight:
			v.step(1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'h':
				v.step(-1)
			case 'l':
				v.step(1)
			}
		}
		v.draw()

	case *tcell.EventResize:
		v.screen.Sync()
		v.draw()
	}

	return true
}

func (v *Viewer) step(d int) {
	if len(v.frames) == 0 {
		return
	}
	v.current = (v.current + d + len(v.frames)) % len(v.frames)
}

// Run draws the first frame and handles events until quit or screen shutdown
func (v *Viewer) Run() error {
	v.draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !v.handleInput(ev) {
			return nil
		}
	}
}

// Run shows frames on screen until the user quits
func Run(screen tcell.Screen, frames []Frame) error {
	return New(screen, frames).Run()
}

// Open initialises the terminal screen; the caller must Fini it
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}
