package smsparser

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"sms_invoicer/internal/domain/entities"
)

const (
	quantityPattern = `(\d+(?:\.\d+)?)`
	amountPattern   = `(\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?)`
	hoursPattern    = `(?:hrs?|hours?)\b`
)

// lineItemRule is one entry of the extraction grammar. Rules run in slice
// order; each accepted match is masked out of the text so later rules never
// price the same substring twice.
type lineItemRule struct {
	name    string
	pattern *regexp.Regexp
	build   func(groups []string) (entities.ParsedLineItem, bool)
	// fallbackOnly rules run only when no earlier rule produced an item.
	fallbackOnly bool
}

var lineItemRules = []lineItemRule{
	{
		// "2 hrs @ $120", "2 hours at 120", "2 hrs $120"
		name:    "hourly_at_rate",
		pattern: regexp.MustCompile(`(?i)` + quantityPattern + `\s*` + hoursPattern + `\s*(?:(?:@|\bat\b)\s*\$?|\$)` + amountPattern),
		build:   buildLabor(1, 2),
	},
	{
		// "4 hrs 120/hr", "4 hours $120 per hr"
		name:    "hourly_per_hour",
		pattern: regexp.MustCompile(`(?i)` + quantityPattern + `\s*` + hoursPattern + `\s*\$?` + amountPattern + `\s*(?:/\s*(?:hr|hour)|per\s*(?:hr|hour))\b`),
		build:   buildLabor(1, 2),
	},
	{
		// "$200 2 hrs"
		name:    "hourly_rate_first",
		pattern: regexp.MustCompile(`(?i)\$` + amountPattern + `\s+` + quantityPattern + `\s*` + hoursPattern),
		build:   buildLabor(2, 1),
	},
	{
		// "labor 100", "parts: $50", "materials - 200"
		name:    "category_amount",
		pattern: regexp.MustCompile(`(?i)\b(labou?r|materials?|parts?)\b\s*[:\-]?\s*\$?` + amountPattern),
		build:   buildCategory,
	},
	{
		// "3 boxes of nails $50", "3 boxes @ $5"
		name:    "quantity_item",
		pattern: regexp.MustCompile(`(?i)` + quantityPattern + `\s+([a-z][a-z\s]*?)\s+(?:(?:@|\bat\b)\s*)?\$` + amountPattern),
		build:   buildQuantityItem,
	},
	{
		// "$200"
		name:         "standalone_dollar",
		pattern:      regexp.MustCompile(`\$` + amountPattern),
		build:        buildStandalone,
		fallbackOnly: true,
	},
}

var hourWord = regexp.MustCompile(`(?i)\b(?:hrs?|hours?)\b`)

type positionedItem struct {
	start int
	item  entities.ParsedLineItem
}

// ExtractLineItems scans free text for priced line items and returns them in
// order of appearance. It returns an empty slice when nothing is priced.
func ExtractLineItems(text string) []entities.ParsedLineItem {
	buf := []byte(text)
	var found []positionedItem

	for _, rule := range lineItemRules {
		if rule.fallbackOnly && len(found) > 0 {
			continue
		}
		for _, loc := range rule.pattern.FindAllSubmatchIndex(buf, -1) {
			item, ok := rule.build(submatches(buf, loc))
			if !ok {
				continue
			}
			found = append(found, positionedItem{start: loc[0], item: item})
			mask(buf, loc[0], loc[1])
		}
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].start < found[j].start })

	items := make([]entities.ParsedLineItem, 0, len(found))
	for _, f := range found {
		items = append(items, f.item)
	}
	return items
}

// NewLineItem builds an item from a decimal quantity and a dollar price.
// The unit price is rounded to cents first and the total derived from it, so
// Total == round(Quantity*UnitPrice) always holds. This is round(qty*price*100)
// whenever price is a whole number of cents: "2 hrs @ $120.50" gives a unit
// of 12050 and a total of 24100. Sub-cent rates are rounded before multiplying.
func NewLineItem(description string, quantity, price float64) (entities.ParsedLineItem, bool) {
	if quantity <= 0 || price < 0 || math.IsNaN(quantity) || math.IsNaN(price) || math.IsInf(quantity, 0) || math.IsInf(price, 0) {
		return entities.ParsedLineItem{}, false
	}
	unit := toCents(price)
	return entities.ParsedLineItem{
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unit,
		Total:       int64(math.Round(quantity * float64(unit))),
	}, true
}

func buildLabor(qtyGroup, rateGroup int) func([]string) (entities.ParsedLineItem, bool) {
	return func(g []string) (entities.ParsedLineItem, bool) {
		qty, err := parseNumber(g[qtyGroup])
		if err != nil {
			return entities.ParsedLineItem{}, false
		}
		rate, err := parseNumber(g[rateGroup])
		if err != nil {
			return entities.ParsedLineItem{}, false
		}
		return NewLineItem(fmt.Sprintf("Labor (%s hrs)", FormatQuantity(qty)), qty, rate)
	}
}

func buildCategory(g []string) (entities.ParsedLineItem, bool) {
	amount, err := parseNumber(g[2])
	if err != nil {
		return entities.ParsedLineItem{}, false
	}
	return NewLineItem(categoryDescription(g[1]), 1, amount)
}

func buildQuantityItem(g []string) (entities.ParsedLineItem, bool) {
	desc := strings.Join(strings.Fields(g[2]), " ")
	if desc == "" || hourWord.MatchString(desc) {
		return entities.ParsedLineItem{}, false
	}
	qty, err := parseNumber(g[1])
	if err != nil {
		return entities.ParsedLineItem{}, false
	}
	price, err := parseNumber(g[3])
	if err != nil {
		return entities.ParsedLineItem{}, false
	}
	return NewLineItem(capitalize(desc), qty, price)
}

func buildStandalone(g []string) (entities.ParsedLineItem, bool) {
	amount, err := parseNumber(g[1])
	if err != nil {
		return entities.ParsedLineItem{}, false
	}
	return NewLineItem("Service", 1, amount)
}

func categoryDescription(word string) string {
	w := strings.ToLower(word)
	switch {
	case strings.HasPrefix(w, "lab"):
		return "Labor"
	case strings.HasPrefix(w, "material"):
		return "Materials"
	default:
		return "Parts"
	}
}

// FormatQuantity renders a quantity without trailing zeros ("2", "1.5").
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func toCents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func submatches(buf []byte, loc []int) []string {
	out := make([]string, len(loc)/2)
	for i := range out {
		start, end := loc[2*i], loc[2*i+1]
		if start >= 0 && end >= 0 {
			out[i] = string(buf[start:end])
		}
	}
	return out
}

// maskByte is neither space nor a word character, so no pattern can match
// across a consumed span.
const maskByte = 0x00

func mask(buf []byte, start, end int) {
	for i := start; i < end; i++ {
		buf[i] = maskByte
	}
}
