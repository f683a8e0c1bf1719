package catch

// Snapshot is a read-only view of a round, published to renderers on every tick.
type Snapshot struct {
	Phase             Phase         `json:"phase"`
	Score             int           `json:"score"`
	RemainingSeconds  int           `json:"remainingSeconds"`
	SpeedMultiplier   float64       `json:"speedMultiplier"`
	BonusItemsSpawned int           `json:"bonusItemsSpawned"`
	Items             []FallingItem `json:"items"`
	Catcher           CatcherState  `json:"catcher"`
	Feedback          *Feedback     `json:"feedback,omitempty"`
	Field             Field         `json:"field"`
	Stats             Stats         `json:"stats"`
	ItemSize          float64       `json:"itemSize"`
	CatcherSize       float64       `json:"catcherSize"`
}

// Ended reports whether the round is over.
func (s Snapshot) Ended() bool {
	return s.Phase == PhaseEnded
}
