package collection

import (
	"fmt"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// DefaultFeedURL is the public price service serving daily TCGplayer price
// dumps per product group.
const DefaultFeedURL = "https://tcgcsv.com/tcgplayer/3"

// PriceFeed fetches daily market prices for sealed product groups from the
// remote price service. It is the collaborator that populates the price
// table; the core never depends on it being live.
type PriceFeed struct {
	BaseURL string
	client  *http.Client
}

// NewPriceFeed creates a feed against the default service, with responses
// cached on disk until the end of the day.
func NewPriceFeed() *PriceFeed {
	return &PriceFeed{BaseURL: DefaultFeedURL, client: dailyClient()}
}

// FetchGroup fetches the current prices of every product in a group and
// returns one observation per product carrying a market price, dated today.
//
// The endpoint answers a JSON document of the form:
//
//	{"results": [{"productId": 42, "marketPrice": 123.45, "subTypeName": "Normal"}, ...]}
//
// Products without a market price (unpriced variants, singles without sales)
// are skipped. Transport failures surface as ErrDependencyUnavailable.
func (f *PriceFeed) FetchGroup(groupID string) ([]Observation, error) {
	addr := fmt.Sprintf("%s/%s/prices", f.BaseURL, groupID)
	var jobj any
	if err := jwget(f.client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("fetching group %q: %w", groupID, err)
	}

	jval, err := jsonpath.Get("$.results[*]", jobj)
	if err != nil {
		return nil, fmt.Errorf("group %q: no results in feed answer: %w", groupID, err)
	}
	rows, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("group %q: unexpected feed answer shape %T", groupID, jval)
	}

	today := Today()
	var observations []Observation
	for _, row := range rows {
		id, err := jsonpath.Get("$.productId", row)
		if err != nil {
			continue
		}
		price, err := jsonpath.Get("$.marketPrice", row)
		if err != nil {
			continue
		}
		idNum, ok := id.(float64)
		if !ok {
			continue
		}
		priceNum, ok := price.(float64)
		if !ok || priceNum <= 0 {
			continue // product listed without a market price
		}
		observations = append(observations, Observation{
			Product: fmt.Sprintf("%.0f", idNum),
			Date:    today,
			Price:   M(decimal.NewFromFloat(priceNum).Round(2)),
		})
	}
	return observations, nil
}

// FetchInto fetches one or more groups and merges the observations into the
// price table. It returns the number of observations added.
func (f *PriceFeed) FetchInto(table *PriceTable, groupIDs ...string) (int, error) {
	var count int
	for _, group := range groupIDs {
		observations, err := f.FetchGroup(group)
		if err != nil {
			return count, err
		}
		for _, obs := range observations {
			table.Add(obs.Product, obs.Date, obs.Price)
			count++
		}
	}
	return count, nil
}
