// SPDX-License-Identifier: Unlicense OR MIT

package pango

// byteToCharTable returns a lookup table mapping every byte offset in text
// (including the one-past-the-end offset) to its character index, so that
// byte-offset-based ranges computed by segmenters and the bidi algorithm can
// be reported in the character-offset terms Item and LogAttr use.
func byteToCharTable(text string) []int {
	table := make([]int, len(text)+1)
	c := 0
	for i := range text {
		table[i] = c
		c++
	}
	table[len(text)] = c
	return table
}
