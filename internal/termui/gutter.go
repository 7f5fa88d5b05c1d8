package termui

import "strings"

// gutter renders a one column scroll indicator exactly height rows tall for a
// window of height rows at offset into content rows.
func gutter(content, height, offset int) string {
	if height <= 0 {
		return ""
	}
	top, size := 0, height
	if content > height {
		maxOffset := content - height
		offset = max(0, min(offset, maxOffset))

		// thumb size tracks the visible fraction of the content
		size = max(1, min(height, height*height/content))
		if maxTop := height - size; maxTop > 0 {
			top = offset * maxTop / maxOffset
		}
	}

	var s strings.Builder
	for i := range height {
		if i > 0 {
			s.WriteByte('\n')
		}
		if i >= top && i < top+size {
			// non-breaking, so the background survives rendering
			s.WriteString(thumbStyle.Render("\u00a0"))
		} else {
			s.WriteString(trackStyle.Render("│"))
		}
	}
	return s.String()
}
