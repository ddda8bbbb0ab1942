// Package forms describes the site's data-entry forms: which fields they
// have, which of them are required in each variant, and how the client
// should render them.
//
// Rendering is up to the client. The descriptors only carry hints (rows of
// a textarea, the step of a number input, autofocus) and help texts.
package forms

import (
	"fmt"
	"sort"
)

// Variant distinguishes the creation and the editing flavour of a form.
type Variant string

const (
	Registration Variant = "registration"
	Editing      Variant = "editing"
)

// Widget is the input control hint for a field.
type Widget string

const (
	WidgetText     Widget = "text"
	WidgetEmail    Widget = "email"
	WidgetTextarea Widget = "textarea"
	WidgetCheckbox Widget = "checkbox"
	WidgetSelect   Widget = "select"
	WidgetRadio    Widget = "radio"
	WidgetNumber   Widget = "number"
	WidgetCaptcha  Widget = "captcha"
)

// Choice is one option of a select or radio field.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field describes one input of a form.
type Field struct {
	Name      string   `json:"name"`
	Label     string   `json:"label"`
	Widget    Widget   `json:"widget"`
	Required  bool     `json:"required"`
	Autofocus bool     `json:"autofocus,omitempty"`
	Rows      int      `json:"rows,omitempty"`
	Step      string   `json:"step,omitempty"`
	HelpText  string   `json:"help_text,omitempty"`
	Choices   []Choice `json:"choices,omitempty"`
	// Source names the endpoint listing the choices of a dynamic selector.
	Source string `json:"source,omitempty"`
}

// Form is the descriptor served by GET /api/v1/forms/:name.
type Form struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Form names.
const (
	AccountRegistration      = "account_registration"
	AccountEditing           = "account_editing"
	ProfileRegistration      = "profile_registration"
	ProfileEditing           = "profile_editing"
	TransferRequest          = "transfer_request"
	ExternalMailRegistration = "external_mail_registration"
	TaskBid                  = "task_bid"
)

// TransactionTypeChoices are the options of the transfer form's type radio.
var TransactionTypeChoices = []Choice{
	{Value: "transfer", Label: "Перевести средства пользователю"},
	{Value: "offer", Label: "Предложить пользователю перевести средства вам"},
}

// Get returns the descriptor of the named form.
func Get(name string, domain string) (Form, error) {
	switch name {
	case AccountRegistration:
		return accountForm(name, Registration), nil
	case AccountEditing:
		return accountForm(name, Editing), nil
	case ProfileRegistration:
		return profileForm(name, Registration), nil
	case ProfileEditing:
		return profileForm(name, Editing), nil
	case TransferRequest:
		return transferForm(), nil
	case ExternalMailRegistration:
		return mailClaimForm(domain), nil
	case TaskBid:
		return taskBidForm(), nil
	default:
		return Form{}, fmt.Errorf("unknown form %q", name)
	}
}

// Names lists every form Get knows about, sorted.
func Names() []string {
	names := []string{
		AccountRegistration,
		AccountEditing,
		ProfileRegistration,
		ProfileEditing,
		TransferRequest,
		ExternalMailRegistration,
		TaskBid,
	}
	sort.Strings(names)
	return names
}

func profileForm(name string, variant Variant) Form {
	aboutHelp := "Этот текст отобразится на вашей странице, его можно будет изменить позже."
	if variant == Editing {
		aboutHelp = "Этот текст отображается на вашей странице."
	}

	fields := []Field{
		{Name: "notify_by_email", Label: "Уведомлять по email", Widget: WidgetCheckbox},
		{Name: "notify_about_new_tasks", Label: "Уведомлять о новых заданиях", Widget: WidgetCheckbox},
		{Name: "notify_about_new_services", Label: "Уведомлять о новых услугах", Widget: WidgetCheckbox},
		{Name: "about", Label: "О себе", Widget: WidgetTextarea, Rows: 5, HelpText: aboutHelp},
		{Name: "group", Label: "Группа", Widget: WidgetSelect, Source: "/api/v1/groups"},
	}
	if variant == Registration {
		fields = append(fields, Field{
			Name: "captcha", Label: "Проверочный код", Widget: WidgetCaptcha, Required: true, Source: "/api/v1/captcha",
		})
	}

	return Form{Name: name, Fields: fields}
}

func transferForm() Form {
	return Form{
		Name: TransferRequest,
		Fields: []Field{
			{Name: "type", Label: "Тип", Widget: WidgetRadio, Required: true, Choices: TransactionTypeChoices},
			{Name: "user", Label: "Пользователь", Widget: WidgetSelect, Required: true, Source: "/api/v1/transactions/counterparties"},
			{Name: "description", Label: "Описание", Widget: WidgetTextarea, Rows: 3, HelpText: "Описание причины перевода."},
			{Name: "amount", Label: "Сумма", Widget: WidgetNumber, Required: true, HelpText: "Может быть не целым числом."},
		},
	}
}

func mailClaimForm(domain string) Form {
	return Form{
		Name: ExternalMailRegistration,
		Fields: []Field{
			{
				Name: "email", Label: "Email", Widget: WidgetEmail, Required: true,
				HelpText: fmt.Sprintf("Email должен быть в домене %s.", domain),
			},
		},
	}
}

func taskBidForm() Form {
	return Form{
		Name: TaskBid,
		Fields: []Field{
			{Name: "description", Label: "Описание", Widget: WidgetTextarea, Rows: 2},
			{Name: "price", Label: "Цена", Widget: WidgetNumber, Required: true, Step: "0.25"},
		},
	}
}
