package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/deppfellow/fefu-exchange/internal/forms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runForms(t *testing.T, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	cmd := formsCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return out, cmd.Execute()
}

func TestFormsCmd_ListsNames(t *testing.T) {
	out, err := runForms(t)
	require.NoError(t, err)

	var names []string
	require.NoError(t, json.Unmarshal(out.Bytes(), &names))
	assert.Equal(t, forms.Names(), names)
}

func TestFormsCmd_PrintsDescriptor(t *testing.T) {
	out, err := runForms(t, forms.ExternalMailRegistration, "--domain", "example.edu")
	require.NoError(t, err)

	var form forms.Form
	require.NoError(t, json.Unmarshal(out.Bytes(), &form))
	require.Len(t, form.Fields, 1)
	assert.Equal(t, "Email должен быть в домене example.edu.", form.Fields[0].HelpText)
}

func TestFormsCmd_UnknownForm(t *testing.T) {
	_, err := runForms(t, "missing")
	assert.Error(t, err)
}

func TestEmailPreviewCmd(t *testing.T) {
	cmd := emailPreviewCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"welcome"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "ivanov.ii")
}
