package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldByName(t *testing.T, f Form, name string) Field {
	t.Helper()
	for _, fld := range f.Fields {
		if fld.Name == name {
			return fld
		}
	}
	t.Fatalf("form %s has no field %s", f.Name, name)
	return Field{}
}

func TestAccountRules_AllFieldsRequiredInBothVariants(t *testing.T) {
	for _, v := range []Variant{Registration, Editing} {
		rules := AccountRules(v)
		require.Len(t, rules, 4)
		assert.Equal(t, "required,max=150,username", rules[FieldUsername])
		assert.Equal(t, "required,max=254,email", rules[FieldEmail])
		assert.Equal(t, "required,max=150", rules[FieldFirstName])
		assert.Equal(t, "required,max=150", rules[FieldLastName])
	}
}

func TestAccountForm_AutofocusOnlyOnRegistration(t *testing.T) {
	reg, err := Get(AccountRegistration, "students.dvfu.ru")
	require.NoError(t, err)
	assert.True(t, fieldByName(t, reg, FieldUsername).Autofocus)
	assert.True(t, fieldByName(t, reg, FieldEmail).Required)

	edit, err := Get(AccountEditing, "students.dvfu.ru")
	require.NoError(t, err)
	assert.False(t, fieldByName(t, edit, FieldUsername).Autofocus)

	// the shared field table is not mutated by building a form
	assert.False(t, accountFields[0].Autofocus)
}

func TestProfileForm_CaptchaOnlyOnRegistration(t *testing.T) {
	reg, _ := Get(ProfileRegistration, "")
	edit, _ := Get(ProfileEditing, "")

	assert.Equal(t, WidgetCaptcha, fieldByName(t, reg, "captcha").Widget)
	assert.Len(t, edit.Fields, len(reg.Fields)-1)
	assert.Equal(t, 5, fieldByName(t, edit, "about").Rows)
	assert.NotEqual(t, fieldByName(t, reg, "about").HelpText, fieldByName(t, edit, "about").HelpText)
}

func TestTransferAndBidHints(t *testing.T) {
	tr, _ := Get(TransferRequest, "")
	assert.Equal(t, TransactionTypeChoices, fieldByName(t, tr, "type").Choices)
	assert.Equal(t, 3, fieldByName(t, tr, "description").Rows)

	bid, _ := Get(TaskBid, "")
	assert.Equal(t, "0.25", fieldByName(t, bid, "price").Step)
	assert.Equal(t, 2, fieldByName(t, bid, "description").Rows)
}

func TestMailClaimHelpNamesDomain(t *testing.T) {
	f, _ := Get(ExternalMailRegistration, "students.dvfu.ru")
	assert.Equal(t, "Email должен быть в домене students.dvfu.ru.", fieldByName(t, f, "email").HelpText)
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("nope", "")
	assert.Error(t, err)
	assert.Len(t, Names(), 7)
}
