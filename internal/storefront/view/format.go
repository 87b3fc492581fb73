package view

import "strconv"

// FormatPrice renders a price in synapses with spaces between thousands.
// A nil price is priceless merchandise.
func FormatPrice(price *int64) string {
	if price == nil {
		return "Бесценно"
	}
	return groupDigits(*price) + " синапсов"
}

// FormatTotal is FormatPrice for an already-computed total.
func FormatTotal(total int64) string {
	return groupDigits(total) + " синапсов"
}

func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, ch := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, ch)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
