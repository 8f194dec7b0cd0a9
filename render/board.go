// Package render draws board positions and status banners, both ANSI-styled
// for the terminal and plain for transcript files.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"krk/game"
)

const cellWidth = 6

var (
	lightSquare = lipgloss.NewStyle().
			Background(lipgloss.Color("252")).
			Foreground(lipgloss.Color("235")).
			Width(cellWidth).
			Align(lipgloss.Center)
	darkSquare = lipgloss.NewStyle().
			Background(lipgloss.Color("242")).
			Foreground(lipgloss.Color("231")).
			Width(cellWidth).
			Align(lipgloss.Center)
	rankLabel = lipgloss.NewStyle().Faint(true).PaddingLeft(1)
	fileLabel = lipgloss.NewStyle().Faint(true).Width(cellWidth).Align(lipgloss.Center)
)

// grid lays the piece labels out row-major, rank 8 first.
func grid(s *game.GameState) [8][8]string {
	var cells [8][8]string
	for _, piece := range []game.Piece{s.KingAttacker, s.RookAttacker, s.KingDefender} {
		pos := piece.Pos()
		cells[8-pos.Rank][pos.File-1] = piece.String()
	}
	return cells
}

// Board renders the position as a checkered ANSI board with rank labels on
// the right and file labels underneath.
func Board(s *game.GameState) string {
	cells := grid(s)
	var b strings.Builder
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			style := darkSquare
			if (row+col)%2 == 0 {
				style = lightSquare
			}
			b.WriteString(style.Render(cells[row][col]))
		}
		b.WriteString(rankLabel.Render(fmt.Sprintf("%d", 8-row)))
		b.WriteByte('\n')
	}
	for col := 0; col < 8; col++ {
		b.WriteString(fileLabel.Render(fmt.Sprintf("%d", col+1)))
	}
	b.WriteByte('\n')
	return b.String()
}

// PlainBoard renders the position without ANSI sequences, suitable for a
// transcript file.
func PlainBoard(s *game.GameState) string {
	cells := grid(s)
	var b strings.Builder
	border := strings.Repeat("-", 8*(cellWidth+1)+1)
	b.WriteString(border)
	b.WriteByte('\n')
	for row := 0; row < 8; row++ {
		b.WriteByte('|')
		for col := 0; col < 8; col++ {
			b.WriteString(fmt.Sprintf("%*s%*s", (cellWidth+len(cells[row][col]))/2,
				cells[row][col], cellWidth-(cellWidth+len(cells[row][col]))/2, ""))
			b.WriteByte('|')
		}
		b.WriteString(fmt.Sprintf(" %d\n", 8-row))
		b.WriteString(border)
		b.WriteByte('\n')
	}
	b.WriteByte(' ')
	for col := 0; col < 8; col++ {
		b.WriteString(fmt.Sprintf("%*s%*s", (cellWidth+1)/2, fmt.Sprintf("%d", col+1), cellWidth/2+1, ""))
	}
	b.WriteByte('\n')
	return b.String()
}

// Banner composes the status lines printed above a board: moves completed,
// whose turn it is, and any check or game-over notices.
func Banner(s *game.GameState) string {
	var lines []string
	status := s.Status()
	lines = append(lines, fmt.Sprintf("Number of turns completed: %d", s.Ply/2))
	switch {
	case status == game.Checkmate:
		lines = append(lines, "Checkmate! The attacker wins!")
	case status == game.Check:
		lines = append(lines, "The defender is in check!")
		lines = append(lines, fmt.Sprintf("It is currently the %s's turn.", s.CurrentPlayer()))
	case status.Ongoing():
		lines = append(lines, fmt.Sprintf("It is currently the %s's turn.", s.CurrentPlayer()))
	default:
		lines = append(lines, fmt.Sprintf("Game has reached a draw due to: %s.", status))
	}
	if s.IsLeaf() {
		lines = append(lines, fmt.Sprintf("A total of %d moves were made out of %d.", s.Ply/2, s.MaxPly/2))
		lines = append(lines, "Game over!")
	}
	return strings.Join(lines, "\n")
}
