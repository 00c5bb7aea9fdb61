package collab

// Login states reported in Account.LoginState.
const (
	LoginStateSignIn = "SignIn"
	LoginStateSignUp = "SignUp"
)

// Account is one identity offered by a FedCM dialog.
type Account struct {
	AccountID         string
	Email             string
	Name              string
	GivenName         string
	PictureURL        string
	IDPConfigURL      string
	LoginState        string
	TermsOfServiceURL string
	PrivacyPolicyURL  string
}

// NewAccount reads an account object as sent by the driver. Missing or
// non-string fields are left empty.
func NewAccount(raw map[string]any) Account {
	get := func(key string) string {
		s, _ := raw[key].(string)
		return s
	}
	return Account{
		AccountID:         get("accountId"),
		Email:             get("email"),
		Name:              get("name"),
		GivenName:         get("givenName"),
		PictureURL:        get("pictureUrl"),
		IDPConfigURL:      get("idpConfigUrl"),
		LoginState:        get("loginState"),
		TermsOfServiceURL: get("termsOfServiceUrl"),
		PrivacyPolicyURL:  get("privacyPolicyUrl"),
	}
}
