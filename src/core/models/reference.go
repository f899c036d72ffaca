package models

// Reference is a catalog search result. It is never persisted on its
// own; the client copies it into a Tag when attaching it to a post.
type Reference struct {
	ClothingName  string   `json:"clothing_name"`
	Link          string   `json:"link"`
	CurrentPrice  float64  `json:"current_price"`
	OriginalPrice *float64 `json:"original_price"`
	Brand         string   `json:"brand"`
}
