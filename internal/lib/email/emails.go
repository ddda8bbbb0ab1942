package email

// SendWelcomeEmail greets a newly registered account.
func (c *Client) SendWelcomeEmail(to, firstName, username string) error {
	return c.SendEmail(to, "Добро пожаловать на студенческую биржу!", TemplateWelcome, map[string]string{
		"UserFirstName": firstName,
		"Username":      username,
	})
}

// SendTransferReceivedEmail tells the recipient of a confirmed transfer
// that the funds arrived.
func (c *Client) SendTransferReceivedEmail(to, recipientName, senderName, amount, description string) error {
	return c.SendEmail(to, "Вам перевели средства", TemplateTransferReceived, map[string]string{
		"RecipientName": recipientName,
		"SenderName":    senderName,
		"Amount":        amount,
		"Description":   description,
	})
}

// SendOfferReceivedEmail tells the counterparty of an offer that they were
// asked to pay.
func (c *Client) SendOfferReceivedEmail(to, recipientName, requesterName, amount, description string) error {
	return c.SendEmail(to, "Вам предложили перевести средства", TemplateOfferReceived, map[string]string{
		"RecipientName": recipientName,
		"SenderName":    requesterName,
		"Amount":        amount,
		"Description":   description,
	})
}
