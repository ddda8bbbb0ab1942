package email

// Template names an embedded template under templates/.
type Template string

const (
	TemplateWelcome          Template = "welcome"
	TemplateTransferReceived Template = "transfer_received"
	TemplateOfferReceived    Template = "offer_received"
)

func (t Template) file() string {
	return string(t) + ".html"
}
