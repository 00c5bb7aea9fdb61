package collab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountProperties(t *testing.T) {
	account := NewAccount(map[string]any{
		"accountId":         "12341234",
		"email":             "test@email.com",
		"name":              "Real Name",
		"givenName":         "Test Name",
		"pictureUrl":        "picture-url",
		"idpConfigUrl":      "idp-config-url",
		"loginState":        "login-state",
		"termsOfServiceUrl": "terms-of-service-url",
		"privacyPolicyUrl":  "privacy-policy-url",
	})

	assert.Equal(t, "12341234", account.AccountID)
	assert.Equal(t, "test@email.com", account.Email)
	assert.Equal(t, "Real Name", account.Name)
	assert.Equal(t, "Test Name", account.GivenName)
	assert.Equal(t, "picture-url", account.PictureURL)
	assert.Equal(t, "idp-config-url", account.IDPConfigURL)
	assert.Equal(t, "login-state", account.LoginState)
	assert.Equal(t, "terms-of-service-url", account.TermsOfServiceURL)
	assert.Equal(t, "privacy-policy-url", account.PrivacyPolicyURL)
}

func TestAccountIgnoresMalformedFields(t *testing.T) {
	account := NewAccount(map[string]any{"email": 42, "name": "n"})

	assert.Empty(t, account.Email)
	assert.Equal(t, "n", account.Name)
	assert.Equal(t, Account{}, NewAccount(nil))
}
