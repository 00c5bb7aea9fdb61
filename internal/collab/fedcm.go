package collab

import "context"

// FedCM is the driver-side view of a FedCM dialog.
type FedCM interface {
	Accept(ctx context.Context) error
	Dismiss(ctx context.Context) error
	SelectAccount(ctx context.Context, index int) error
	DialogType(ctx context.Context) (string, error)
	Title(ctx context.Context) (string, error)
	// Subtitle returns the raw title object, which carries "subtitle" when
	// the dialog has one.
	Subtitle(ctx context.Context) (map[string]any, error)
	AccountList(ctx context.Context) ([]map[string]any, error)
}

// Dialog types reported by DialogType.
const (
	DialogAccountList = "AccountChooser"
	DialogAutoReauth  = "AutoReauthn"
)

// Dialog is the FedCM dialog of the current session.
type Dialog struct {
	fedcm FedCM
}

// NewDialog wraps f.
func NewDialog(f FedCM) *Dialog {
	return &Dialog{fedcm: f}
}

// Accept clicks the continue button.
func (d *Dialog) Accept(ctx context.Context) error {
	return d.fedcm.Accept(ctx)
}

// Dismiss cancels the dialog.
func (d *Dialog) Dismiss(ctx context.Context) error {
	return d.fedcm.Dismiss(ctx)
}

// SelectAccount picks the account at index.
func (d *Dialog) SelectAccount(ctx context.Context, index int) error {
	return d.fedcm.SelectAccount(ctx, index)
}

// Type returns the dialog type, such as DialogAccountList.
func (d *Dialog) Type(ctx context.Context) (string, error) {
	return d.fedcm.DialogType(ctx)
}

func (d *Dialog) Title(ctx context.Context) (string, error) {
	return d.fedcm.Title(ctx)
}

// Subtitle returns the subtitle, or "" when there is none.
func (d *Dialog) Subtitle(ctx context.Context) (string, error) {
	raw, err := d.fedcm.Subtitle(ctx)
	if err != nil {
		return "", err
	}
	s, _ := raw["subtitle"].(string)
	return s, nil
}

// Accounts returns the accounts shown in the dialog.
func (d *Dialog) Accounts(ctx context.Context) ([]Account, error) {
	list, err := d.fedcm.AccountList(ctx)
	if err != nil {
		return nil, err
	}
	accounts := make([]Account, 0, len(list))
	for _, raw := range list {
		accounts = append(accounts, NewAccount(raw))
	}
	return accounts, nil
}
