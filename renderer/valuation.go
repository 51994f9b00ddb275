package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mintfolio/collection"
	md "github.com/nao1215/markdown"
)

// ValuationMarkdown renders the day-by-day valuation curve.
func ValuationMarkdown(points []collection.ValuationPoint) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Valuation")
	if len(points) == 0 {
		doc.PlainText("No transactions or price observations in range.")
		return doc.String()
	}

	rows := make([][]string, 0, len(points))
	var unpriced []string
	for _, pt := range points {
		rows = append(rows, []string{
			pt.Date.String(),
			pt.CostBasis.String(),
			pt.MarketValue.String(),
			pt.Spent.String(),
			pt.Revenue.String(),
			pt.UnrealizedPL.SignedString(),
			Percent(pt.ROI),
		})
		unpriced = pt.Unpriced
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "Cost Basis", "Market Value", "Spent", "Revenue", "Unrealized P&L", "ROI"},
		Rows:   rows,
	})

	// Warn about held products the last point could not value.
	if len(unpriced) > 0 {
		doc.PlainText(fmt.Sprintf("Unpriced products (no observation yet): %s", strings.Join(unpriced, ", ")))
	}
	return doc.String()
}
