package entity

// MerchItem is one entry of the gacha wheel catalog. Stock is owned by
// Firestore and re-read on every spin; an item with zero stock is never
// selectable.
type MerchItem struct {
	ID    string `json:"id" firestore:"id"`
	Name  string `json:"name" firestore:"name"`
	Stock int    `json:"stock" firestore:"stock"`
	Image string `json:"image" firestore:"image"`
}

// SpinAnimation describes the slide animation for one spin as data: a strip
// of slots, the fixed center slot the pointer lands on, and the translation
// that puts that slot under the pointer. Any rendering layer can consume it.
type SpinAnimation struct {
	Slots       []MerchItem `json:"slots"`
	CenterIndex int         `json:"center_index"`
	ItemWidth   int         `json:"item_width"`
	TranslateX  float64     `json:"translate_x"`
	DurationMs  int         `json:"duration_ms"`
	Easing      string      `json:"easing"`
}

// SpinResult is the outcome of one spin. The item at the animation's center
// index is always Item: the visual outcome is the logical outcome.
type SpinResult struct {
	SpinID    string        `json:"spin_id"`
	Item      MerchItem     `json:"item"`
	Animation SpinAnimation `json:"animation"`
}
