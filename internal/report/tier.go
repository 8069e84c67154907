package report

import (
	"fmt"
	"strings"
)

// Tier gates reporting richness only; it never changes which violations are
// found or whether the scan passes.
type Tier int

const (
	TierCommunity Tier = iota
	TierPro
)

// communityOccurrenceCap limits how many occurrences per group the community
// tier prints in human output.
const communityOccurrenceCap = 5

func (t Tier) String() string {
	if t == TierPro {
		return "pro"
	}
	return "community"
}

func ParseTier(name string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "community":
		return TierCommunity, nil
	case "pro":
		return TierPro, nil
	}
	return TierCommunity, fmt.Errorf("unknown tier %q (expected community or pro)", name)
}
