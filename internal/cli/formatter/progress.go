package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderUtilization renders a capacity bar like [████░░░░]  45%.
// Green up to full capacity, yellow inside the overcommit slack, red beyond.
func RenderUtilization(pct int, width int) string {
	if width < 2 {
		width = 2
	}
	filled := min(max(pct, 0)*width/100, width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct > 120:
		style = StyleRed
	case pct > 100:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}
