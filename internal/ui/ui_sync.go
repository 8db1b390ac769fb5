package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/lomazzo/birthkeep/internal/config"
	"github.com/lomazzo/birthkeep/internal/sync"
)

// ShowSyncWindow displays the device transfer dialog: push the local state
// under a short code, or enter a code to replace the local state with a
// snapshot from another device.
func (app *BirthKeepApp) ShowSyncWindow() {
	if app.syncWindow != nil {
		app.syncWindow.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSync))
	app.syncWindow = w

	log := slog.With(config.LogKeyComponent, config.CompSync)

	// --- Push side ---

	codeLabel := widget.NewLabel("")
	codeLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	codeLabel.Alignment = fyne.TextAlignCenter

	btnGenerate := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnGenCode), theme.UploadIcon(), func() {
		client, err := app.syncClient()
		if err != nil {
			dialog.ShowError(err, w)
			return
		}

		people, err := app.Store.ListPeople(app.Ctx)
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		ledger, err := app.Store.ListLedger(app.Ctx)
		if err != nil {
			dialog.ShowError(err, w)
			return
		}

		code, err := client.Push(app.Ctx, people, ledger, app.Clock.Now())
		if err != nil {
			log.Error(config.TKeySyncFailed, config.LogKeyError, err)
			dialog.ShowError(err, w)
			return
		}

		codeLabel.SetText(code)
		app.notifyTemplated(config.TKeySyncPushed, map[string]interface{}{"Code": code})
	})

	// --- Pull side ---

	codeEntry := widget.NewEntry()
	codeEntry.PlaceHolder = strings.Repeat("X", config.SyncCodeLength)
	codeEntry.Validator = func(s string) error {
		if len(s) != config.SyncCodeLength {
			return errors.New(app.GetMsg(config.TKeyErrCodeLen))
		}
		return nil
	}

	btnApply := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnApplyCode), theme.DownloadIcon(), func() {
		if err := codeEntry.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}

		client, err := app.syncClient()
		if err != nil {
			dialog.ShowError(err, w)
			return
		}

		code := strings.ToUpper(strings.TrimSpace(codeEntry.Text))
		snap, err := client.Pull(app.Ctx, code, app.Clock.Now())
		if err != nil {
			log.Error(config.TKeySyncFailed, config.LogKeyError, err, config.LogKeyCode, code)
			dialog.ShowError(err, w)
			return
		}

		// Restoring overwrites everything local; make that explicit.
		message := fmt.Sprintf("%s: %d", app.GetMsg(config.TKeyBtnApplyCode), len(snap.People))
		if app.Localizer != nil {
			msg, lerr := app.Localizer.Localize(&i18n.LocalizeConfig{
				MessageID:    config.TKeySyncConfirm,
				TemplateData: map[string]interface{}{"Count": len(snap.People)},
			})
			if lerr == nil && msg != "" {
				message = msg
			}
		}

		dialog.ShowConfirm(app.GetMsg(config.TKeyWinSync), message, func(confirmed bool) {
			if !confirmed {
				return
			}
			if err := app.Store.Restore(app.Ctx, snap.People, snap.Ledger); err != nil {
				dialog.ShowError(err, w)
				return
			}
			app.notifyTemplated(config.TKeySyncDone, map[string]interface{}{"Count": len(snap.People)})
			go app.performCheck(false)
			w.Close()
		}, w)
	})

	content := container.NewPadded(container.NewVBox(
		widget.NewCard("", "", container.NewVBox(btnGenerate, codeLabel)),
		widget.NewCard("", "", container.NewVBox(
			widget.NewForm(widget.NewFormItem(app.GetMsg(config.TKeyLblSyncCode), codeEntry)),
			btnApply,
		)),
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.SyncWindowWidth, content.MinSize().Height))
	w.SetOnClosed(func() { app.syncWindow = nil })
	w.Show()
}

// syncClient builds a relay client from the configured URL.
func (app *BirthKeepApp) syncClient() (*sync.Client, error) {
	baseURL := app.Preferences.String(config.PrefSyncURL)
	if baseURL == "" {
		return nil, errors.New(config.ErrSyncURLEmpty)
	}
	return sync.NewClient(sync.NewHTTPRemoteStore(baseURL)), nil
}
