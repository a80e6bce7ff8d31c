package domain

import (
	"fmt"
	"strings"
)

// String は盤面全体を罫線付きの表として返す。未設定セルと fill と等しいセルは空白になる。
//
//	    |  0|  1|
//	    +---+---+
//	 99 |  A|   |
//	    +---+---+
//	100 |   |  B|
//	    +---+---+
func (b *Board[T]) String() string {
	rows, cols := b.PhysicalRows(), b.PhysicalCols()

	rule := "    " + strings.Repeat("+---", cols) + "+\n"

	var sb strings.Builder
	sb.Grow((rows*2 + 2) * len(rule))

	sb.WriteString("    ")
	for c := 0; c < cols; c++ {
		fmt.Fprintf(&sb, "|%3d", b.minCol+c)
	}
	sb.WriteString("|\n")
	sb.WriteString(rule)

	for r := 0; r < rows; r++ {
		row := b.minRow + r
		fmt.Fprintf(&sb, "%3d |", row)
		for c := 0; c < cols; c++ {
			v := b.Get(row, b.minCol+c)
			if v == b.fill {
				sb.WriteString("   |")
				continue
			}
			fmt.Fprintf(&sb, "%3v|", v)
		}
		sb.WriteString("\n")
		sb.WriteString(rule)
	}

	return sb.String()
}
