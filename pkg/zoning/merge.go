package zoning

// MergeZoning unifies the zoning rules of an assemblage into the most
// restrictive set: minimum of each upper bound, maximum of each setback and
// of the parking requirement. A zero MaxDensityDUAcre means uncapped and
// never wins the minimum.
func MergeZoning(rules ...ZoningRules) ZoningRules {
	if len(rules) == 0 {
		return ZoningRules{}
	}
	merged := rules[0]
	for _, r := range rules[1:] {
		merged.MaxFAR = minPositive(merged.MaxFAR, r.MaxFAR)
		merged.MaxHeightFt = minPositive(merged.MaxHeightFt, r.MaxHeightFt)
		merged.MaxCoveragePct = minPositive(merged.MaxCoveragePct, r.MaxCoveragePct)
		merged.MaxDensityDUAcre = minPositive(merged.MaxDensityDUAcre, r.MaxDensityDUAcre)
		merged.FrontSetbackFt = max(merged.FrontSetbackFt, r.FrontSetbackFt)
		merged.SideSetbackFt = max(merged.SideSetbackFt, r.SideSetbackFt)
		merged.RearSetbackFt = max(merged.RearSetbackFt, r.RearSetbackFt)
		merged.MinParkingRatio = max(merged.MinParkingRatio, r.MinParkingRatio)
	}
	return merged
}

func minPositive(a, b float64) float64 {
	if a <= 0 {
		return b
	}
	if b <= 0 {
		return a
	}
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
