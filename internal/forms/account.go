package forms

// Account field names. Registration and editing share this field set.
const (
	FieldUsername  = "username"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"
)

var accountFields = []Field{
	{
		Name: FieldUsername, Label: "Имя пользователя", Widget: WidgetText,
		HelpText: "Не более 150 символов. Только буквы, цифры и символы @/./+/-/_.",
	},
	{Name: FieldFirstName, Label: "Имя", Widget: WidgetText},
	{Name: FieldLastName, Label: "Фамилия", Widget: WidgetText},
	{
		Name: FieldEmail, Label: "Адрес электронной почты", Widget: WidgetEmail,
		HelpText: "Используется для рассылки уведомлений, восстановления пароля.",
	},
}

// accountFormatRules are the format constraints of each account field,
// independent of whether the field is required.
var accountFormatRules = map[string]string{
	FieldUsername:  "max=150,username",
	FieldFirstName: "max=150",
	FieldLastName:  "max=150",
	FieldEmail:     "max=254,email",
}

// accountRequired is the required set per variant. The user model leaves
// names and e-mail optional; the site requires all four in both variants.
var accountRequired = map[Variant][]string{
	Registration: {FieldUsername, FieldFirstName, FieldLastName, FieldEmail},
	Editing:      {FieldUsername, FieldFirstName, FieldLastName, FieldEmail},
}

// accountAutofocus is the field focused when the variant's form opens.
var accountAutofocus = map[Variant]string{
	Registration: FieldUsername,
}

// IsAccountFieldRequired reports whether field is required in variant.
func IsAccountFieldRequired(variant Variant, field string) bool {
	for _, name := range accountRequired[variant] {
		if name == field {
			return true
		}
	}
	return false
}

// AccountRules returns the validator rule table for variant: every account
// field mapped to its tag, prefixed with "required" or "omitempty".
func AccountRules(variant Variant) map[string]string {
	rules := make(map[string]string, len(accountFormatRules))
	for field, format := range accountFormatRules {
		prefix := "omitempty,"
		if IsAccountFieldRequired(variant, field) {
			prefix = "required,"
		}
		rules[field] = prefix + format
	}
	return rules
}

func accountForm(name string, variant Variant) Form {
	fields := make([]Field, len(accountFields))
	copy(fields, accountFields)

	for i := range fields {
		fields[i].Required = IsAccountFieldRequired(variant, fields[i].Name)
		fields[i].Autofocus = accountAutofocus[variant] == fields[i].Name
	}

	return Form{Name: name, Fields: fields}
}
