package utils

import "fmt"

// Returns the (truncated) average of the given channel values
func Average(values ...byte) byte {
	if len(values) == 0 {
		return 0
	}

	var sum int
	for _, v := range values {
		sum += int(v)
	}
	return byte(sum / len(values))
}

// Colored Block for a terminal supporting 24-bit ANSI colors
func ColoredBlock(block string, red int, green int, blue int) string {
	return fmt.Sprintf("\033[48;2;%d;%d;%dm%s\033[0m", red, green, blue, block)
}
