// Package render draws game frames into a terminal with termbox and turns
// terminal input into game events.
package render

import (
	"fmt"

	"github.com/battlesnakeio/snake/rules"
	runewidth "github.com/mattn/go-runewidth"
	termbox "github.com/nsf/termbox-go"
)

const (
	defaultColor = termbox.ColorDefault
	bgColor      = termbox.ColorDefault
	snakeColor   = termbox.ColorGreen
	headColor    = termbox.ColorCyan
	foodColor    = termbox.ColorRed
	overlayColor = termbox.ColorWhite | termbox.AttrBold

	// A grid cell is two terminal columns wide so the board looks square.
	cellWidth = 2

	left = 2
	top  = 2
)

var controlsText = []string{
	"Controls:",
	"W or ↑ : Move Up",
	"S or ↓ : Move Down",
	"A or ← : Move Left",
	"D or → : Move Right",
}

const gameOverText = "Game Over! Press any key to restart"

// canvas is the part of termbox the painter needs.
type canvas interface {
	SetCell(x, y int, ch rune, fg, bg termbox.Attribute)
}

type termboxCanvas struct{}

func (termboxCanvas) SetCell(x, y int, ch rune, fg, bg termbox.Attribute) {
	termbox.SetCell(x, y, ch, fg, bg)
}

// Frame clears the terminal, paints f under the given title and flushes.
func Frame(title string, f *rules.Frame) error {
	if f == nil {
		return fmt.Errorf("received nil frame")
	}
	if err := termbox.Clear(defaultColor, bgColor); err != nil {
		return err
	}
	paint(termboxCanvas{}, title, f)
	return termbox.Flush()
}

// Message prints a single line above the board and flushes.
func Message(msg string) error {
	tbprint(termboxCanvas{}, left, 0, defaultColor, bgColor, msg)
	return termbox.Flush()
}

func paint(c canvas, title string, f *rules.Frame) {
	renderTitle(c, title, f)
	renderBoard(c, f.Width, f.Height)
	renderFood(c, f.Food)
	renderSnake(c, f.Snake)
	if f.ShowControls {
		renderControls(c, f.Width, f.Height)
	}
	if f.GameOver() {
		renderCentered(c, f.Width, top+1+f.Height/2, gameOverText)
	}
}

func renderTitle(c canvas, title string, f *rules.Frame) {
	tbprint(c, left, top-1, defaultColor, bgColor, fmt.Sprintf("%s - Score: %d", title, f.Score))
	turn := fmt.Sprintf("Turn %d", f.Turn)
	tbprint(c, left+f.Width*cellWidth-runewidth.StringWidth(turn), top-1, defaultColor, bgColor, turn)
}

func renderBoard(c canvas, width, height int) {
	var (
		right  = left + width*cellWidth
		bottom = top + height + 1
	)
	for i := top + 1; i < bottom; i++ {
		c.SetCell(left-1, i, '│', defaultColor, bgColor)
		c.SetCell(right, i, '│', defaultColor, bgColor)
	}

	c.SetCell(left-1, top, '┌', defaultColor, bgColor)
	c.SetCell(left-1, bottom, '└', defaultColor, bgColor)
	c.SetCell(right, top, '┐', defaultColor, bgColor)
	c.SetCell(right, bottom, '┘', defaultColor, bgColor)

	fill(c, left, top, width*cellWidth, 1, termbox.Cell{Ch: '─'})
	fill(c, left, bottom, width*cellWidth, 1, termbox.Cell{Ch: '─'})
}

func renderSnake(c canvas, body []rules.Point) {
	for i := len(body) - 1; i >= 0; i-- {
		color := snakeColor
		if i == 0 {
			color = headColor
		}
		setGridCell(c, body[i], color)
	}
}

func renderFood(c canvas, food rules.Point) {
	setGridCell(c, food, foodColor)
}

func renderControls(c canvas, width, height int) {
	y := top + 1 + height/2 - len(controlsText)
	for i, line := range controlsText {
		renderCentered(c, width, y+i, line)
	}
}

func renderCentered(c canvas, width, y int, msg string) {
	x := left + (width*cellWidth-runewidth.StringWidth(msg))/2
	if x < left {
		x = left
	}
	tbprint(c, x, y, overlayColor, bgColor, msg)
}

func setGridCell(c canvas, p rules.Point, color termbox.Attribute) {
	x := left + p.X*cellWidth
	y := top + 1 + p.Y
	fill(c, x, y, cellWidth, 1, termbox.Cell{Ch: ' ', Fg: color, Bg: color})
}

func fill(c canvas, x, y, w, h int, cell termbox.Cell) {
	for ly := 0; ly < h; ly++ {
		for lx := 0; lx < w; lx++ {
			c.SetCell(x+lx, y+ly, cell.Ch, cell.Fg, cell.Bg)
		}
	}
}

func tbprint(c canvas, x, y int, fg, bg termbox.Attribute, msg string) {
	for _, r := range msg {
		c.SetCell(x, y, r, fg, bg)
		x += runewidth.RuneWidth(r)
	}
}
