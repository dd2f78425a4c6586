package order

import "strings"

// SplitAddress turns the checkout's freeform address into structured fields.
// The first line is the street; the rest is comma separated city, state and
// postal code. Missing segments come back empty.
func SplitAddress(raw string) AddressInput {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), "\r\n", "\n")

	line1, rest, _ := strings.Cut(raw, "\n")
	rest = strings.Join(strings.Fields(strings.ReplaceAll(rest, "\n", " ")), " ")

	out := AddressInput{
		Line1: strings.TrimSpace(line1),
		Line2: rest,
	}
	if rest == "" {
		return out
	}

	parts := strings.Split(rest, ",")
	seg := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}
	out.City = seg(0)
	out.State = seg(1)
	out.PostalCode = seg(2)
	return out
}

func buildAddress(c CustomerInput, customerID int64) Address {
	in := SplitAddress(c.Address)
	if c.ShippingAddress != nil && strings.TrimSpace(c.ShippingAddress.Line1) != "" {
		in = *c.ShippingAddress
		if in.Line2 == "" {
			in.Line2 = joinNonEmpty(", ", in.City, in.State, in.PostalCode)
		}
	}
	country := strings.TrimSpace(in.Country)
	if country == "" {
		country = DefaultCountry
	}
	return Address{
		CustomerID: customerID,
		Type:       AddressShipping,
		FullName:   strings.TrimSpace(c.Name),
		Line1:      strings.TrimSpace(in.Line1),
		Line2:      strings.TrimSpace(in.Line2),
		City:       strings.TrimSpace(in.City),
		State:      strings.TrimSpace(in.State),
		PostalCode: strings.TrimSpace(in.PostalCode),
		Country:    country,
		Phone:      strings.TrimSpace(c.Phone),
		IsDefault:  true,
	}
}

func joinNonEmpty(sep string, vals ...string) string {
	var out []string
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, sep)
}
