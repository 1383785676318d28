package fuzzy

// Inputs maps input variable names to crisp values.
type Inputs map[string]float64

// Degrees maps variable name to set name to membership degree.
type Degrees map[string]map[string]float64

// Degree returns the degree of the named set, or 0 when either name is unknown.
func (d Degrees) Degree(variable, set string) float64 {
	return d[variable][set]
}

// AntecedentDegree explains one antecedent clause of a fired rule.
type AntecedentDegree struct {
	Variable string  `json:"variable"`
	Set      string  `json:"set"`
	Value    float64 `json:"value"`
	Degree   float64 `json:"degree"`
}

// ActiveRule is a rule whose firing strength is above zero.
type ActiveRule struct {
	Rule        Rule               `json:"rule"`
	Antecedents []AntecedentDegree `json:"antecedents"`
	Index       int                `json:"index"`
	Strength    float64            `json:"strength"`
}

// Result is the complete outcome of one evaluation. Every field is freshly allocated.
type Result struct {
	// Fuzzified holds the degree of every input in every set of its variable.
	Fuzzified Degrees `json:"fuzzified"`
	// RuleStrengths is parallel to the rule base.
	RuleStrengths []float64 `json:"rule_strengths"`
	// ActiveRules lists the rules with strength > 0, in rule base order.
	ActiveRules []ActiveRule `json:"active_rules"`
	// AggregatedCurve holds one value per output sample; sample i sits at CurveOrigin+i.
	AggregatedCurve []float64 `json:"aggregated_curve"`
	CurveOrigin     float64   `json:"curve_origin"`
	// Score is the centroid of AggregatedCurve, or 0 when no rule fired.
	Score float64 `json:"score"`
}

// Fired reports whether at least one rule fired.
func (r Result) Fired() bool {
	return len(r.ActiveRules) > 0
}
