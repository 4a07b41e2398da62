package common

type LocationDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
	Address   *string `json:"address,omitempty"`
	MapLink   string  `json:"mapLink"`
}
