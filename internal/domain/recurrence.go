package domain

import (
	"fmt"
	"strings"
)

// RecurrenceRule defines how a series repeats
type RecurrenceRule string

const (
	RuleNone     RecurrenceRule = "none"
	RuleWeekly   RecurrenceRule = "weekly"
	RuleBiweekly RecurrenceRule = "biweekly"
	RuleMonthly  RecurrenceRule = "monthly"
)

// ParseRule converts a rule token into RecurrenceRule. Empty input means RuleNone.
func ParseRule(raw string) (RecurrenceRule, error) {
	switch RecurrenceRule(strings.ToLower(strings.TrimSpace(raw))) {
	case "", RuleNone:
		return RuleNone, nil
	case RuleWeekly:
		return RuleWeekly, nil
	case RuleBiweekly:
		return RuleBiweekly, nil
	case RuleMonthly:
		return RuleMonthly, nil
	default:
		return "", fmt.Errorf("unknown recurrence rule %q", raw)
	}
}
