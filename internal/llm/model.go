package llm

// Item is one line of the list the model is asked to produce.
type Item struct {
	Item  string  `json:"item"`
	Price float64 `json:"price"`
}

// Receipt is the shape requested from the model. It is only a typed view for
// logging; responses are passed through without schema checks.
type Receipt struct {
	Items []Item `json:"items"`
}

// Total sums the item prices.
func (r Receipt) Total() float64 {
	var total float64
	for _, it := range r.Items {
		total += it.Price
	}
	return total
}
