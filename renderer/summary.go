package renderer

import (
	"bytes"
	"fmt"

	"github.com/mintfolio/collection"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the at-a-glance overview of the collection.
func SummaryMarkdown(s *collection.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Collection Summary on %s", s.Date))
	doc.PlainText(fmt.Sprintf("Market Value: %s across %d products", s.MarketValue, s.Products))

	doc.H2("Inventory")
	doc.Table(md.TableSet{
		Header: []string{"State", "Units"},
		Rows: [][]string{
			{"Sealed", fmt.Sprintf("%d", s.SealedQty)},
			{"Opened", fmt.Sprintf("%d", s.OpenedQty)},
			{"Sold", fmt.Sprintf("%d", s.SoldQty)},
		},
	})

	doc.H2("Performance")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Cost Basis", s.CostBasis.String()},
			{"Market Value", s.MarketValue.String()},
			{"Total Spent", s.Spent.String()},
			{"Total Revenue", s.Revenue.String()},
			{"Unrealized P&L", s.UnrealizedPL.SignedString()},
			{"ROI", Percent(s.ROI)},
		},
	})

	return doc.String()
}
