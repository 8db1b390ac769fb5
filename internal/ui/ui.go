package ui

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/lomazzo/birthkeep/internal/config"
	"github.com/lomazzo/birthkeep/internal/engine"
	"github.com/lomazzo/birthkeep/internal/server"
	"github.com/lomazzo/birthkeep/internal/store"
)

//go:embed Icon.png
var appIconData []byte

// BirthKeepApp encapsulates the UI state, preferences, and background logic.
type BirthKeepApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server *server.FeedServer
	Store  *store.Store
	Clock  engine.Clock // Injected clock for testability (e.g. mocking time travel)

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayCheckItem    *fyne.MenuItem
	TrayPeopleItem   *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem
	TraySyncItem     *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string

	// checkMut serializes reminder checks so a manual trigger cannot race
	// the scheduled one over the shared ledger.
	checkMut     sync.Mutex
	peopleWindow fyne.Window
	syncWindow   fyne.Window
}

// NewBirthKeepApp constructs the application and wires dependencies.
func NewBirthKeepApp(a fyne.App, ctx context.Context, srv *server.FeedServer, st *store.Store) *BirthKeepApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	return &BirthKeepApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Store:              st,
		Clock:              engine.RealClock{}, // Default to real clock in production
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan string, config.ChannelBufferSize),
	}
}

// Run launches the application services and the main UI loop.
func (app *BirthKeepApp) Run() {
	app.SetupI18n()
	app.watchPreferences()

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyPort, app.Server.Port,
			config.LogKeyComponent, config.CompUI)

		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayMissing,
			config.LogKeyComponent, config.CompUI)
	}

	go app.backgroundWorker()
	app.App.Run()
}

// watchPreferences monitors changes to settings to trigger schedule updates.
func (app *BirthKeepApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.PrefInterval:
		default:
		}
	})
}

// setupTrayMenu constructs the system tray menu.
func (app *BirthKeepApp) setupTrayMenu() {
	// The status item doubles as a shortcut to the people window.
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.ShowPeopleWindow()
	})
	app.TrayStatusItem.Disabled = false

	app.TrayCheckItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuCheck), func() {
		go app.performCheck(true)
	})

	app.TrayPeopleItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuPeople), func() {
		app.ShowPeopleWindow()
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.TraySyncItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSync), func() {
		app.ShowSyncWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayCheckItem,
		app.TrayPeopleItem,
		app.TraySettingsItem,
		app.TraySyncItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *BirthKeepApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayCheckItem.Label = app.GetMsg(config.TKeyMenuCheck)
	app.TrayPeopleItem.Label = app.GetMsg(config.TKeyMenuPeople)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.TraySyncItem.Label = app.GetMsg(config.TKeyMenuSync)
	app.Menu.Refresh()
}

// backgroundWorker manages the periodic reminder check schedule. Besides the
// regular interval, a dedicated timer fires just after local midnight so the
// day rollover is observed even when the interval is long.
func (app *BirthKeepApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	app.performCheck(false)

	currentDuration := app.checkInterval()

	// A nil channel blocks forever, which is how a zero interval parks the
	// periodic check without tearing the loop down.
	ticker := time.NewTicker(time.Minute)
	ticker.Stop()
	var tick <-chan time.Time
	armTicker := func(d time.Duration) {
		if d > 0 {
			ticker.Reset(d)
			tick = ticker.C
		} else {
			ticker.Stop()
			tick = nil
		}
	}
	armTicker(currentDuration)
	defer ticker.Stop()

	midnight := time.NewTimer(app.untilNextMidnight())
	defer midnight.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, currentDuration)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-app.configChan:
			newDuration := app.checkInterval()
			if newDuration != currentDuration {
				log.Info(config.MsgUpdateInterval, config.LogKeyOld, currentDuration, config.LogKeyNew, newDuration)
				currentDuration = newDuration
				armTicker(currentDuration)
			}
			// Settings changes also alter which reminders are due.
			app.performCheck(false)

		case <-midnight.C:
			app.performCheck(false)
			d := app.untilNextMidnight()
			midnight.Reset(d)
			log.Debug(config.MsgMidnightArmed, config.LogKeyInterval, d)

		case <-tick:
			app.performCheck(false)
		}
	}
}

// checkInterval returns the configured periodic check interval. Zero means
// the periodic check is disabled; the midnight rollover check still runs.
func (app *BirthKeepApp) checkInterval() time.Duration {
	val := app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultIntervalMin)
	if val <= 0 {
		return 0
	}
	return time.Duration(val) * time.Minute
}

// untilNextMidnight returns the duration to shortly after the next local
// day rollover. The extra minute keeps the check on the new day even with
// modest timer drift.
func (app *BirthKeepApp) untilNextMidnight() time.Duration {
	now := app.Clock.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return next.Sub(now) + time.Minute
}

// performCheck executes the reminder pipeline: evaluate the policy, deliver
// due notifications, record them in the ledger, and refresh the served feed.
func (app *BirthKeepApp) performCheck(manual bool) {
	app.checkMut.Lock()
	defer app.checkMut.Unlock()

	log := slog.With(config.LogKeyComponent, config.CompUI)
	log.Info(config.MsgCheckStarted, config.LogKeyManual, manual)

	people, err := app.Store.ListPeople(app.Ctx)
	if err != nil {
		log.Error(config.MsgCheckFailed, config.LogKeyError, err)
		app.updateTrayStatus(-1)
		return
	}

	now := app.Clock.Now()
	today := engine.Today(app.Clock)

	reminders, entries := engine.Evaluate(people, today, app.wasNotified, app.LoadSettings(), app.buildMessageFormatter())

	for _, r := range reminders {
		app.App.SendNotification(fyne.NewNotification(app.notifTitle(), r.Message))
	}
	if err := app.Store.MarkNotified(app.Ctx, entries); err != nil {
		log.Error(config.MsgCheckFailed, config.LogKeyError, err)
	}

	icsData, countToday, err := engine.BuildCalendar(people, now, app.buildSummaryFormatter())
	if err != nil {
		log.Error(config.MsgCheckFailed, config.LogKeyError, err)
		app.updateTrayStatus(-1)
		return
	}
	upcomingData, err := server.BuildUpcoming(people, today)
	if err != nil {
		log.Error(config.MsgCheckFailed, config.LogKeyError, err)
		app.updateTrayStatus(-1)
		return
	}

	app.Server.Update(icsData, upcomingData)
	app.updateTrayStatus(countToday)

	log.Info(config.MsgCheckDone,
		config.LogKeyTotal, len(people),
		config.LogKeyFired, len(reminders),
		config.LogKeyToday, countToday)
}

// wasNotified adapts the store ledger to the policy's SeenFunc. Lookup
// failures count as not-seen; the worst case is a duplicate notification,
// which beats silently dropping one.
func (app *BirthKeepApp) wasNotified(personID, dayKey string) bool {
	seen, err := app.Store.WasNotified(app.Ctx, personID, dayKey)
	if err != nil {
		slog.Warn(config.MsgCheckFailed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return false
	}
	return seen
}

// LoadSettings assembles the reminder configuration from UI preferences.
// Every toggle defaults to enabled on first run.
func (app *BirthKeepApp) LoadSettings() engine.Settings {
	return engine.Settings{
		Enabled:         app.Preferences.BoolWithFallback(config.PrefRemEnabled, true),
		OnDay:           app.Preferences.BoolWithFallback(config.PrefNotifyOnDay, true),
		DayBefore:       app.Preferences.BoolWithFallback(config.PrefNotifyTomorrw, true),
		ThreeDaysBefore: app.Preferences.BoolWithFallback(config.PrefNotify3Days, true),
		WeekBefore:      app.Preferences.BoolWithFallback(config.PrefNotifyWeek, true),
		TwoWeeksBefore:  app.Preferences.BoolWithFallback(config.PrefNotify2Weeks, true),
		MonthBefore:     app.Preferences.BoolWithFallback(config.PrefNotifyMonth, true),
	}
}

// updateTrayStatus updates the top menu item to show how many birthdays are today.
func (app *BirthKeepApp) updateTrayStatus(count int) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	var label string
	if count < 0 {
		label = config.FallbackTrayError
	} else if count == 0 {
		label = app.GetMsg(config.TKeyTrayNone)
		if label == config.TKeyTrayNone {
			label = fmt.Sprintf(config.FallbackTrayDefault, 0)
		}
	} else {
		if app.Localizer != nil {
			msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
				MessageID:    config.TKeyTrayStatus,
				TemplateData: map[string]interface{}{"Count": count},
				PluralCount:  count,
			})
			if err == nil {
				label = msg
			}
		}
		if label == "" {
			label = fmt.Sprintf(config.FallbackTrayDefault, count)
		}
	}

	app.TrayStatusItem.Label = label
	app.Menu.Refresh()
}

// notifTitle returns the localized notification title.
func (app *BirthKeepApp) notifTitle() string {
	title := app.GetMsg(config.TKeyNotifTitle)
	if title == config.TKeyNotifTitle {
		return config.FallbackNotifTitle
	}
	return title
}

// buildMessageFormatter returns a closure that localizes reminder messages
// per threshold distance. Empty results fall back to the built-in English
// templates inside the policy.
func (app *BirthKeepApp) buildMessageFormatter() engine.MessageFunc {
	keys := map[int]string{
		config.ThresholdToday:    config.TKeyNotifToday,
		config.ThresholdTomorrow: config.TKeyNotifTomorrow,
		config.Threshold3Days:    config.TKeyNotif3Days,
		config.ThresholdWeek:     config.TKeyNotifWeek,
		config.Threshold2Weeks:   config.TKeyNotif2Weeks,
		config.ThresholdMonth:    config.TKeyNotifMonth,
	}

	return func(name string, thresholdDays int) string {
		if app.Localizer == nil {
			return ""
		}
		key, ok := keys[thresholdDays]
		if !ok {
			return ""
		}
		msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
			MessageID:    key,
			TemplateData: map[string]interface{}{"Name": name},
		})
		if err != nil {
			return ""
		}
		return msg
	}
}

// buildSummaryFormatter returns a closure that localizes calendar event
// summaries.
func (app *BirthKeepApp) buildSummaryFormatter() engine.SummaryFunc {
	return func(name string, age int) string {
		var msg string
		var err error

		if app.Localizer != nil {
			if age == 0 {
				msg, err = app.Localizer.Localize(&i18n.LocalizeConfig{
					MessageID:    config.TKeyEvtSummaryBirth,
					TemplateData: map[string]interface{}{"Name": name},
				})
			} else {
				msg, err = app.Localizer.Localize(&i18n.LocalizeConfig{
					MessageID:    config.TKeyEvtSummaryAge,
					TemplateData: map[string]interface{}{"Name": name, "Age": age},
				})
			}
		} else {
			err = fmt.Errorf(config.ErrLocNotInit)
		}

		if err != nil || msg == "" {
			return "" // the engine applies its own fallback
		}
		return msg
	}
}

// DaysLeftLabel renders a localized days-left phrase for the people window.
func (app *BirthKeepApp) DaysLeftLabel(days int) string {
	p := engine.ClassifyDaysLeft(days)
	if app.Localizer == nil {
		return engine.DaysLeftText(days)
	}

	var key string
	data := map[string]interface{}{"Days": p.Days, "Months": p.Months}
	switch p.Kind {
	case engine.PhraseToday:
		key = config.TKeyPhraseToday
	case engine.PhraseTomorrow:
		key = config.TKeyPhraseTomorrow
	case engine.PhraseDays:
		key = config.TKeyPhraseDays
	case engine.PhraseMonth:
		key = config.TKeyPhraseMonth
	case engine.PhraseMonthDays:
		key = config.TKeyPhraseMonthDays
	case engine.PhraseMonths:
		key = config.TKeyPhraseMonths
	default:
		key = config.TKeyPhraseMonthsDay
	}

	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil || msg == "" {
		return engine.DaysLeftText(days)
	}
	return msg
}
