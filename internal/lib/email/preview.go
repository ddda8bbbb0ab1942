package email

import "fmt"

// PreviewData holds sample values for every template, keyed by template
// variable.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserFirstName": "Иван",
		"Username":      "ivanov.ii",
	},
	TemplateTransferReceived: {
		"RecipientName": "Пётр Петров",
		"SenderName":    "Иван Иванов",
		"Amount":        "12.5",
		"Description":   "За конспекты",
	},
	TemplateOfferReceived: {
		"RecipientName": "Пётр Петров",
		"SenderName":    "Иван Иванов",
		"Amount":        "50",
		"Description":   "Помощь с лабораторной",
	},
}

// Preview renders t with its sample data.
func Preview(t Template) (string, error) {
	data, ok := PreviewData[t]
	if !ok {
		return "", fmt.Errorf("no preview data for template %q", t)
	}
	return Render(t, data)
}
