package order

import (
	"fmt"
	"strconv"
	"strings"
)

// Item numbers travel zero-padded to six digits on the SAP wire ("000010")
// and are held unpadded internally ("10").

const itemNoWireWidth = 6

func NormalizeItemNo(itemNo string) string {
	trimmed := strings.TrimLeft(strings.TrimSpace(itemNo), "0")
	if trimmed == "" && strings.TrimSpace(itemNo) != "" {
		return "0"
	}
	return trimmed
}

func FormatItemNo(n int) string {
	return strconv.Itoa(n)
}

func PadItemNo(itemNo string) string {
	return fmt.Sprintf("%0*s", itemNoWireWidth, NormalizeItemNo(itemNo))
}

// ItemNoValue parses an item number for ordering and counter arithmetic.
// Malformed numbers sort first.
func ItemNoValue(itemNo string) int {
	n, err := strconv.Atoi(NormalizeItemNo(itemNo))
	if err != nil {
		return 0
	}
	return n
}

// LessItemNo orders item numbers numerically, not lexically.
func LessItemNo(a, b string) bool {
	return ItemNoValue(a) < ItemNoValue(b)
}
