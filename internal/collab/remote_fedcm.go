package collab

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/wdremote/internal/remote"
)

// Executor runs a named command. *remote.Connection implements it.
type Executor interface {
	Execute(ctx context.Context, name string, params map[string]any) (*remote.Response, error)
}

// RemoteFedCM implements FedCM with the fedcm commands of one session.
type RemoteFedCM struct {
	exec      Executor
	sessionID string
}

var _ FedCM = (*RemoteFedCM)(nil)

// NewRemoteFedCM binds the fedcm commands to sessionID.
func NewRemoteFedCM(exec Executor, sessionID string) *RemoteFedCM {
	return &RemoteFedCM{exec: exec, sessionID: sessionID}
}

func (f *RemoteFedCM) call(ctx context.Context, name string, params map[string]any) (any, error) {
	p := map[string]any{"sessionId": f.sessionID}
	for k, v := range params {
		p[k] = v
	}
	resp, err := f.exec.Execute(ctx, name, p)
	if err != nil {
		return nil, err
	}
	return resp.Unwrap()
}

// Accept implements FedCM.
func (f *RemoteFedCM) Accept(ctx context.Context) error {
	_, err := f.call(ctx, "clickFedcmDialogButton", map[string]any{"dialogButton": "ConfirmIdpLoginContinue"})
	return err
}

// Dismiss implements FedCM.
func (f *RemoteFedCM) Dismiss(ctx context.Context) error {
	_, err := f.call(ctx, "cancelFedcmDialog", nil)
	return err
}

// SelectAccount implements FedCM.
func (f *RemoteFedCM) SelectAccount(ctx context.Context, index int) error {
	_, err := f.call(ctx, "selectFedcmAccount", map[string]any{"accountIndex": index})
	return err
}

// DialogType implements FedCM.
func (f *RemoteFedCM) DialogType(ctx context.Context) (string, error) {
	v, err := f.call(ctx, "getFedcmDialogType", nil)
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}

// Title implements FedCM.
func (f *RemoteFedCM) Title(ctx context.Context) (string, error) {
	obj, err := f.Subtitle(ctx)
	if err != nil {
		return "", err
	}
	s, _ := obj["title"].(string)
	return s, nil
}

// Subtitle implements FedCM.
func (f *RemoteFedCM) Subtitle(ctx context.Context) (map[string]any, error) {
	v, err := f.call(ctx, "getFedcmTitle", nil)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("fedcm title: unexpected value %T", v)
	}
	return obj, nil
}

// AccountList implements FedCM.
func (f *RemoteFedCM) AccountList(ctx context.Context) ([]map[string]any, error) {
	v, err := f.call(ctx, "getFedcmAccountList", nil)
	if err != nil {
		return nil, err
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("fedcm account list: unexpected value %T", v)
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// SetDelay turns the promise rejection delay on or off.
func (f *RemoteFedCM) SetDelay(ctx context.Context, enabled bool) error {
	_, err := f.call(ctx, "setFedcmDelay", map[string]any{"enabled": enabled})
	return err
}

// ResetCooldown clears the cooldown that follows a dismissed dialog.
func (f *RemoteFedCM) ResetCooldown(ctx context.Context) error {
	_, err := f.call(ctx, "resetFedcmCooldown", nil)
	return err
}
