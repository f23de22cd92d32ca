package formatter

import (
	"fmt"

	"github.com/alexanderramin/cmsdash/internal/domain"
)

// FormatSlideList renders slides in display order.
func FormatSlideList(slides []domain.Slide) string {
	if len(slides) == 0 {
		return Dim("No slides.") + "\n"
	}
	rows := make([][]string, 0, len(slides))
	for i, s := range slides {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			TruncID(s.ID),
			Bold(Truncate(s.Title, 40)),
			ActivePill(s.Active),
			CoalesceDash(s.LinkURL),
		})
	}
	return RenderTable([]string{"#", "ID", "TITLE", "STATUS", "LINK"}, rows)
}
