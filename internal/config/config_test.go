package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateProduction(t *testing.T) {
	t.Parallel()

	valid := Config{AppEnv: "production", ResendAPIKey: "re_123", AdminEmails: []string{"owner@example.com"}}
	assert.NoError(t, valid.validateProduction())

	noKey := valid
	noKey.ResendAPIKey = ""
	assert.ErrorContains(t, noKey.validateProduction(), "RESEND_API_KEY")

	noAdmins := valid
	noAdmins.AdminEmails = nil
	assert.ErrorContains(t, noAdmins.validateProduction(), "ADMIN_EMAILS")
}

func TestEnvList(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", " Owner@Example.com, ,second@example.com ")
	assert.Equal(t, []string{"owner@example.com", "second@example.com"}, envList("ADMIN_EMAILS"))

	t.Setenv("ADMIN_EMAILS", "")
	assert.Nil(t, envList("ADMIN_EMAILS"))
}
