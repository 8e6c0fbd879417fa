package currency

import (
	"fmt"
	"math"
	"strings"
)

type style struct {
	prefix string
	sep    string
}

var styles = map[string]style{
	"USD": {prefix: "$", sep: ","},
	"CAD": {prefix: "CA$", sep: ","},
	"AUD": {prefix: "A$", sep: ","},
	"EUR": {prefix: "€", sep: ","},
	"GBP": {prefix: "£", sep: ","},
	"JPY": {prefix: "¥", sep: ","},
	"INR": {prefix: "₹", sep: ","},
	"IDR": {prefix: "IDR ", sep: "."},
}

// Format renders a whole-unit amount with the currency's symbol and grouping.
// Unknown codes fall back to "<CODE> 1,234".
func Format(amount float64, code string) string {
	code = strings.ToUpper(code)
	st, ok := styles[code]
	if !ok {
		st = style{prefix: code + " ", sep: ","}
	}

	rounded := math.Round(amount)

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	intStr := fmt.Sprintf("%.0f", rounded)
	result := st.prefix + addThousandsSeparator(intStr, st.sep)
	if negative {
		result = "-" + result
	}

	return result
}

func FormatIDR(amount float64) string {
	return Format(amount, "IDR")
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
