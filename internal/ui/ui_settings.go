package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/zalando/go-keyring"

	"github.com/lomazzo/birthkeep/internal/config"
	"github.com/lomazzo/birthkeep/internal/sync"
)

// settingsWidgets holds references to UI elements to simplify data retrieval
// during save.
type settingsWidgets struct {
	langSelect    *widget.Select
	entryInterval *NumericalEntry
	entryPort     *NumericalEntry
	checkMaster   *widget.Check
	checkOnDay    *widget.Check
	checkTomorrow *widget.Check
	check3Days    *widget.Check
	checkWeek     *widget.Check
	check2Weeks   *widget.Check
	checkMonth    *widget.Check
	urlEntry      *widget.Entry
	tokenEntry    *widget.Entry
}

// ShowSettingsWindow displays the configuration dialog.
func (app *BirthKeepApp) ShowSettingsWindow() {
	if app.Window != nil {
		slog.Debug("Settings window already open, requesting focus", config.LogKeyComponent, config.CompUISet)
		app.Window.RequestFocus()
		return
	}

	slog.Info("Opening settings window", config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w

	sw := &settingsWidgets{}

	// refreshLayout triggers a window resize based on content visibility.
	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	// --- 1. General Section (Language, Interval & Port) ---

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	// Interval: Numerical only. "0" or "empty" are handled in save logic.
	sw.entryInterval = NewNumericalEntry()
	sw.entryInterval.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultIntervalMin)))

	// Port: Numerical only, but requires strict validation (range 1-65535).
	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = func(s string) error {
		if s == "" {
			return errors.New(app.GetMsg(config.TKeyErrPortReq))
		}
		port, err := strconv.Atoi(s)
		if err != nil {
			return errors.New(app.GetMsg(config.TKeyErrPortNum))
		}
		if port < config.MinPort || port > config.MaxPort {
			return errors.New(app.GetMsg(config.TKeyErrPortRange))
		}
		return nil
	}

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	widInterval := container.NewBorder(nil, nil, nil, widget.NewLabel(app.GetMsg(config.TKeyLblMinutes)), sw.entryInterval)
	itemInterval := widget.NewFormItem(app.GetMsg(config.TKeyLblInterval), widInterval)
	itemInterval.HintText = app.GetMsg(config.TKeyHelpInterval)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	generalForm := widget.NewForm(itemLang, itemInterval, itemPort)
	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", generalForm)

	// --- 2. Reminder Section ---

	remindersCard := app.buildRemindersCard(sw, onLayoutChange)

	// --- 3. Sync Section ---

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.String(config.PrefSyncURL))
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.tokenEntry = widget.NewPasswordEntry()
	// Attempt to pre-fill the relay token from secure storage
	if token, err := keyring.Get(config.KeyringService, config.KeyringSyncToken); err == nil {
		sw.tokenEntry.SetText(token)
	}

	itemSyncURL := widget.NewFormItem(app.GetMsg(config.TKeyLblSyncURL), sw.urlEntry)
	itemSyncURL.HintText = app.GetMsg(config.TKeyHelpSyncURL)
	itemToken := widget.NewFormItem(app.GetMsg(config.TKeyLblSyncToken), sw.tokenEntry)

	syncForm := widget.NewForm(itemSyncURL, itemToken)
	syncCard := widget.NewCard(app.GetMsg(config.TKeyLblSync), "", syncForm)

	// --- Actions ---
	saveAction := func() {
		// Only the port field has a strict requirement that blocks saving.
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw, w)
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	// --- Footer ---
	footerText := fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version)
	footerLabel := widget.NewLabel(footerText)
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	// Assembly
	paddedContent := container.NewPadded(container.NewVBox(
		generalCard,
		remindersCard,
		syncCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	refreshLayout = func() {
		paddedContent.Refresh()
		minSize := paddedContent.MinSize()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, minSize.Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.Window = nil })

	refreshLayout()
	w.Show()
}

// buildRemindersCard constructs the notification threshold UI. The per
// threshold toggles collapse when the master switch is off.
func (app *BirthKeepApp) buildRemindersCard(sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	s := app.LoadSettings()

	sw.checkMaster = widget.NewCheck(app.GetMsg(config.TKeyLblRemMaster), nil)
	sw.checkMaster.Checked = s.Enabled

	sw.checkOnDay = widget.NewCheck(app.GetMsg(config.TKeyLblRemToday), nil)
	sw.checkOnDay.Checked = s.OnDay
	sw.checkTomorrow = widget.NewCheck(app.GetMsg(config.TKeyLblRemTomrw), nil)
	sw.checkTomorrow.Checked = s.DayBefore
	sw.check3Days = widget.NewCheck(app.GetMsg(config.TKeyLblRem3Days), nil)
	sw.check3Days.Checked = s.ThreeDaysBefore
	sw.checkWeek = widget.NewCheck(app.GetMsg(config.TKeyLblRemWeek), nil)
	sw.checkWeek.Checked = s.WeekBefore
	sw.check2Weeks = widget.NewCheck(app.GetMsg(config.TKeyLblRem2Weeks), nil)
	sw.check2Weeks.Checked = s.TwoWeeksBefore
	sw.checkMonth = widget.NewCheck(app.GetMsg(config.TKeyLblRemMonth), nil)
	sw.checkMonth.Checked = s.MonthBefore

	thresholds := container.NewVBox(
		sw.checkOnDay,
		sw.checkTomorrow,
		sw.check3Days,
		sw.checkWeek,
		sw.check2Weeks,
		sw.checkMonth,
	)

	sw.checkMaster.OnChanged = func(b bool) {
		if b {
			thresholds.Show()
		} else {
			thresholds.Hide()
		}
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}

	if sw.checkMaster.Checked {
		thresholds.Show()
	} else {
		thresholds.Hide()
	}

	return widget.NewCard(app.GetMsg(config.TKeyLblReminders), "", container.NewVBox(sw.checkMaster, thresholds))
}

// saveSettings persists the data and triggers a fresh reminder check.
func (app *BirthKeepApp) saveSettings(sw *settingsWidgets, w fyne.Window) {
	slog.Info("Saving preferences", config.LogKeyComponent, config.CompUISet)

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefSyncURL, sw.urlEntry.Text)

	// Save the relay token to the keyring only if provided
	if sw.tokenEntry.Text != "" {
		if err := sync.SaveToken(sw.tokenEntry.Text); err != nil {
			slog.Error("Failed to save sync token to keyring", config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	// Logic: Interval. Empty or 0 disables the periodic check; the midnight
	// timer still runs.
	intervalText := sw.entryInterval.Text
	if intervalText == "" || intervalText == "0" {
		app.Preferences.SetInt(config.PrefInterval, config.DisabledInterval)
		slog.Info("Periodic check disabled via settings", config.LogKeyComponent, config.CompUISet)
	} else {
		if i, err := strconv.Atoi(intervalText); err == nil {
			app.Preferences.SetInt(config.PrefInterval, i)
		}
	}

	// Port
	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	// Reminder toggles
	app.Preferences.SetBool(config.PrefRemEnabled, sw.checkMaster.Checked)
	app.Preferences.SetBool(config.PrefNotifyOnDay, sw.checkOnDay.Checked)
	app.Preferences.SetBool(config.PrefNotifyTomorrw, sw.checkTomorrow.Checked)
	app.Preferences.SetBool(config.PrefNotify3Days, sw.check3Days.Checked)
	app.Preferences.SetBool(config.PrefNotifyWeek, sw.checkWeek.Checked)
	app.Preferences.SetBool(config.PrefNotify2Weeks, sw.check2Weeks.Checked)
	app.Preferences.SetBool(config.PrefNotifyMonth, sw.checkMonth.Checked)

	// Trigger system-wide updates
	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	go app.performCheck(false)

	w.Close()
}
