package email

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplates_RenderCode(t *testing.T) {
	tm, err := NewDefaultTemplateManager("")
	require.NoError(t, err)

	html, err := tm.Render(TemplateConfirmationCode, TemplateData{"Name": "Amine", "AppName": "7ela9", "Code": "042133"})

	require.NoError(t, err)
	assert.Contains(t, html, "042133")
	assert.Contains(t, html, "Hello Amine")
	assert.ElementsMatch(t, []string{TemplateConfirmationCode, TemplatePasswordReset}, tm.TemplateNames())
}

func TestDefaultTemplates_DirectoryOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, TemplatePasswordReset+".html"), []byte("code={{.Code}}"), 0o600))

	tm, err := NewDefaultTemplateManager(dir)
	require.NoError(t, err)

	html, err := tm.Render(TemplatePasswordReset, TemplateData{"Code": "111111"})
	require.NoError(t, err)
	assert.Equal(t, "code=111111", html)

	_, err = tm.Render("missing", nil)
	assert.EqualError(t, err, "template not found: missing")
}

func TestSMTPProvider_ValidateAndBuild(t *testing.T) {
	p := NewSMTPProvider(&SMTPConfig{Host: "", Port: 587}, nil)
	assert.EqualError(t, p.Validate(), "SMTP host is required")

	p = NewSMTPProvider(&SMTPConfig{Host: "smtp.test", Port: 587, FromEmail: "no-reply@7ela9.test", FromName: "7ela9"}, nil)
	require.NoError(t, p.Validate())

	msg := p.buildMessage(&Email{To: []string{"client@test.com"}, Subject: "Your 7ela9 Account Confirmation Code", HTMLBody: "<b>123456</b>"})
	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "Subject: Your 7ela9 Account Confirmation Code")
	assert.Contains(t, raw, "To: client@test.com")
	assert.Contains(t, raw, "no-reply@7ela9.test")
	assert.Contains(t, raw, "123456")
}

func TestSMTPProvider_TemplateMailHasTextAlternative(t *testing.T) {
	// 1. Подготовка
	p := NewSMTPProvider(&SMTPConfig{Host: "smtp.test", Port: 587, FromEmail: "no-reply@7ela9.test"}, nil)
	data := TemplateData{"Code": "654321"}

	// 2. Действие
	msg := p.buildMessage(&Email{
		To:       []string{"client@test.com"},
		Subject:  "Password Reset Code",
		Body:     plainText("Password Reset Code", data),
		HTMLBody: "<b>654321</b>",
	})
	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)

	// 3. Проверка
	require.NoError(t, err)
	raw := buf.String()
	assert.Contains(t, raw, "multipart/alternative")
	assert.Contains(t, raw, "Code: 654321")
	assert.Empty(t, plainText("Welcome", TemplateData{"Name": "Amine"}))
}

func TestSMTPProvider_SendTemplateWithoutRenderer(t *testing.T) {
	p := NewSMTPProvider(&SMTPConfig{Host: "smtp.test", Port: 587, FromEmail: "a@b.c"}, nil)
	err := p.SendTemplate([]string{"x@y.z"}, "s", TemplateConfirmationCode, nil)
	assert.EqualError(t, err, "template renderer is not configured")
}

func TestLogProvider_RendersTemplate(t *testing.T) {
	tm, err := NewDefaultTemplateManager("")
	require.NoError(t, err)
	p := NewLogProvider(tm)

	assert.NoError(t, p.SendTemplate([]string{"x@y.z"}, "s", TemplateConfirmationCode, TemplateData{"Code": "1"}))
	assert.Error(t, p.SendTemplate([]string{"x@y.z"}, "s", "unknown", nil))
	assert.NoError(t, p.Send(&Email{To: []string{"x@y.z"}}))
}
