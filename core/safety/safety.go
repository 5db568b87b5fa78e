// Package safety turns off-target hits, shield state, and structure into a
// single verdict.
package safety

import (
	"fmt"

	"guidesafe-core/offtarget"
)

type Recommendation string

const (
	Approve Recommendation = "APPROVE"
	Warning Recommendation = "WARNING"
	Reject  Recommendation = "REJECT"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// Verdict is final; callers must not mutate Issues.
type Verdict struct {
	Score          int            `json:"score"`
	RiskLevel      RiskLevel      `json:"risk_level"`
	Recommendation Recommendation `json:"recommendation"`
	Issues         []string       `json:"issues"`
}

const (
	ApproveMin = 80
	WarningMin = 60

	penaltyNearExact   = 50 // coding non-target hit with <=1 mismatch
	penaltyTwoMismatch = 30
	penaltyUnclear     = 20
	penaltyHighStruct  = 30
	penaltyModStruct   = 15

	// essentialMaxMismatches is the tolerance under which an essential
	// off-target hit rejects outright.
	essentialMaxMismatches = 2
)

// Score applies the decision ladder. Rules are evaluated in order; the
// essential-hit and unshielded rules reject immediately with score 0.
func Score(hits []offtarget.Hit, shield ShieldStatus, structural StructuralRisk, target string) Verdict {
	for _, h := range hits {
		if h.Essential && h.Entity != target && h.Mismatches <= essentialMaxMismatches {
			return reject(fmt.Sprintf("essential off-target %s at %d with %d mismatches", h.Entity, h.Position, h.Mismatches))
		}
	}
	if shield == Unshielded {
		return reject("template leaves an active recognition motif (re-cutting risk)")
	}

	score := 100
	issues := []string{}
	for _, h := range hits {
		if !h.Region.Coding() || h.Entity == target {
			continue
		}
		switch {
		case h.Mismatches <= 1:
			score -= penaltyNearExact
			issues = append(issues, fmt.Sprintf("%s hit in %s at %d with %d mismatches (-%d)", h.Region, h.Entity, h.Position, h.Mismatches, penaltyNearExact))
		case h.Mismatches == 2:
			score -= penaltyTwoMismatch
			issues = append(issues, fmt.Sprintf("%s hit in %s at %d with 2 mismatches (-%d)", h.Region, h.Entity, h.Position, penaltyTwoMismatch))
		}
	}
	if shield == Unclear {
		score -= penaltyUnclear
		issues = append(issues, fmt.Sprintf("shield edit could not be verified (-%d)", penaltyUnclear))
	}
	switch structural {
	case StructHigh:
		score -= penaltyHighStruct
		issues = append(issues, fmt.Sprintf("high structural risk (-%d)", penaltyHighStruct))
	case StructModerate:
		score -= penaltyModStruct
		issues = append(issues, fmt.Sprintf("moderate structural risk (-%d)", penaltyModStruct))
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	rec, risk := band(score)
	return Verdict{Score: score, RiskLevel: risk, Recommendation: rec, Issues: issues}
}

func band(score int) (Recommendation, RiskLevel) {
	switch {
	case score >= ApproveMin:
		return Approve, RiskLow
	case score >= WarningMin:
		return Warning, RiskModerate
	default:
		return Reject, RiskHigh
	}
}

func reject(issue string) Verdict {
	return Verdict{Score: 0, RiskLevel: RiskCritical, Recommendation: Reject, Issues: []string{issue}}
}

// CodingHits counts non-target hits in exons or CDS.
func CodingHits(hits []offtarget.Hit, target string) int {
	n := 0
	for _, h := range hits {
		if h.Region.Coding() && h.Entity != target {
			n++
		}
	}
	return n
}
