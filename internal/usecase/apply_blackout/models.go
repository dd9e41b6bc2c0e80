package apply_blackout

// Request creates one blackout rule. StartMinutes/EndMinutes bound the
// blocked window as minutes of the local day; a zero EndMinutes means the
// whole day from StartMinutes on.
type Request struct {
	ConfigID     int64
	Date         string // "YYYY-MM-DD", workshop-local
	StartMinutes int
	EndMinutes   int
	Reason       string
}

// Response reports the created rule and the enforcement outcome
type Response struct {
	RuleID             int64  `json:"ruleId"`
	ConfigID           int64  `json:"configId"`
	Date               string `json:"date"`
	StartMinutes       int    `json:"startMinutes"`
	EndMinutes         int    `json:"endMinutes"`
	Reason             string `json:"reason"`
	FullyCancelled     int    `json:"fullyCancelled"`
	PartiallyCancelled int    `json:"partiallyCancelled"`
}
