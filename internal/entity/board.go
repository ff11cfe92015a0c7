package entity

import "strconv"

const (
	BoardSize = 9
	EmptyCell = ""

	// Placeholder is shown for empty cells when the board is rendered.
	Placeholder = "⭐"

	WinningSum = 15
)

var (
	// MagicSquare holds the weight of each cell, row-major. Every row, column and
	// diagonal sums to WinningSum and no other three cells do.
	MagicSquare = [BoardSize]int{
		8, 1, 6,
		3, 5, 7,
		4, 9, 2,
	}

	WinCombos = [][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Board - 9 cells in row-major order, each empty or holding a player's piece.
type Board [BoardSize]string

func (that Board) IsEmpty(position int) bool {
	return that[position] == EmptyCell
}

// Filled - number of non-empty cells.
func (that Board) Filled() int {
	filled := 0
	for _, cell := range that {
		if cell != EmptyCell {
			filled++
		}
	}

	return filled
}

// Tokens - display projection of the board, empty cells replaced by Placeholder.
func (that Board) Tokens() [BoardSize]string {
	var tokens [BoardSize]string
	for i, cell := range that {
		if cell == EmptyCell {
			tokens[i] = Placeholder
			continue
		}
		tokens[i] = cell
	}

	return tokens
}

// HelpGrid - the position numbers players type to address each cell.
func HelpGrid() [BoardSize]string {
	var grid [BoardSize]string
	for i := range grid {
		grid[i] = strconv.Itoa(i)
	}

	return grid
}
