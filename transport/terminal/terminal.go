// Package terminal previews flipdisc frames in a terminal with tcell.
//
// The vertical grid is drawn on the left and the horizontal grid to its
// right, one character per cell.
package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/flipdisc"
)

// Glyphs used for cells.
const (
	On  = '█'
	Off = '·'
)

// gap is the number of blank columns between the two grids.
const gap = 2

// Terminal is a flipdisc.Transport that draws frames on a tcell screen.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
	on     tcell.Style
	off    tcell.Style
	owned  bool
}

// New wraps an initialized screen. The caller keeps ownership of it.
func New(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen: screen,
		on:     tcell.StyleDefault.Foreground(tcell.ColorYellow),
		off:    tcell.StyleDefault.Foreground(tcell.ColorGray),
	}
}

// Open creates and initializes a screen on the controlling terminal.
// Close restores the terminal.
func Open() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	t := New(screen)
	t.owned = true
	return t, nil
}

// Screen returns the underlying screen.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Dispatch implements flipdisc.Transport.
func (t *Terminal) Dispatch(vertical, horizontal *flipdisc.Grid) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
	t.drawGrid(0, vertical)
	t.drawGrid(vertical.Width()+gap, horizontal)
	t.screen.Show()
	flipdisc.Logger().Debug("terminal: frame shown")
}

func (t *Terminal) drawGrid(left int, g *flipdisc.Grid) {
	width, height := t.screen.Size()
	for y := 0; y < g.Height() && y < height; y++ {
		for x := 0; x < g.Width() && left+x < width; x++ {
			if g.Get(x, y) != 0 {
				t.screen.SetContent(left+x, y, On, nil, t.on)
			} else {
				t.screen.SetContent(left+x, y, Off, nil, t.off)
			}
		}
	}
}

// PollQuit blocks until the user presses Escape, q or Ctrl-C, or the
// screen is finalized.
func (t *Terminal) PollQuit() {
	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return
			}
		case *tcell.EventResize:
			t.mu.Lock()
			t.screen.Sync()
			t.mu.Unlock()
		}
	}
}

// Close finalizes a screen created by Open. Screens passed to New are left
// alone.
func (t *Terminal) Close() {
	if t.owned {
		t.screen.Fini()
	}
}
