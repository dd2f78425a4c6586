package payment

import (
	"regexp"
	"strings"
)

var (
	reProvider = regexp.MustCompile(`From : ([^\n]*)`)
	reAmount   = regexp.MustCompile(`received Tk ([0-9][0-9,]*(?:\.[0-9]+)?)`)
	reSender   = regexp.MustCompile(`from ([0-9]+)`)
	reTrxID    = regexp.MustCompile(`TrxID ([A-Z0-9]+)`)
	reTime     = regexp.MustCompile(`\bat ([^\n]+)`)
)

// Parse extracts the structured fields of a forwarded payment SMS.
// A rule that does not match leaves its field empty.
func Parse(text string) Notification {
	return Notification{
		Provider:    firstGroup(reProvider, text),
		Amount:      firstGroup(reAmount, text),
		Sender:      firstGroup(reSender, text),
		TrxID:       firstGroup(reTrxID, text),
		PaymentTime: firstGroup(reTime, text),
		RawMessage:  text,
	}
}

func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}
