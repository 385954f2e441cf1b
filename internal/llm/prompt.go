package llm

import "fmt"

const itemsTemplate = `json
    {
      "items": [
        {"item": "", "price": float},
        {"item": "", "price": float}
        .
        .
        .and more
      ]
    }
    `

// BuildItemsPrompt embeds the OCR text verbatim into the fixed extraction prompt.
func BuildItemsPrompt(ocrText string) string {
	return fmt.Sprintf(
		"use this template exactly %s and from %s extract item and its price as json",
		itemsTemplate,
		ocrText,
	)
}
