package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/lomazzo/birthkeep/internal/config"
	"github.com/lomazzo/birthkeep/internal/engine"
	"github.com/lomazzo/birthkeep/internal/store"
)

// personRow pairs a stored person with their resolved next occurrence for
// display and sorting.
type personRow struct {
	Person engine.Person
	Occ    engine.Occurrence
}

// matchesFilter reports whether a day distance falls inside the selected
// band. The bands are disjoint: urgent covers the next week, upcoming the
// rest of the month.
func matchesFilter(days int, filter string) bool {
	switch filter {
	case config.FilterUrgent:
		return days <= config.UrgentWindowDays
	case config.FilterUpcoming:
		return days > config.UrgentWindowDays && days <= config.UpcomingWindowDays
	default:
		return true
	}
}

// ShowPeopleWindow displays the tracked people sorted by next occurrence.
// It implements a singleton pattern: if the window is already open, it
// requests focus.
func (app *BirthKeepApp) ShowPeopleWindow() {
	if app.peopleWindow != nil {
		app.peopleWindow.RequestFocus()
		return
	}

	title := app.GetMsg(config.TKeyWinPeople)
	app.peopleWindow = app.App.NewWindow(title)
	app.peopleWindow.Resize(fyne.NewSize(config.PeopleWinWidth, config.PeopleWinHeight))

	var allRows, displayRows []personRow

	// Internal sorting and filtering state
	currentSortCol := config.ColIDDate
	sortAsc := true
	currentFilter := config.FilterAll

	var refreshTable func()

	loadRows := func() {
		people, err := app.Store.ListPeople(app.Ctx)
		if err != nil {
			slog.Error(config.MsgCheckFailed,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyError, err)
			people = nil
		}

		today := engine.Today(app.Clock)
		allRows = allRows[:0]
		for _, p := range people {
			occ, err := engine.ResolveISO(p.BirthDate, today)
			if err != nil {
				slog.Warn(config.MsgSkippedPerson,
					config.LogKeyComponent, config.CompUI,
					config.LogKeyPersonID, p.ID,
					config.LogKeyError, err)
				continue
			}
			allRows = append(allRows, personRow{Person: p, Occ: occ})
		}
	}

	applyFilter := func() {
		displayRows = displayRows[:0]
		for _, r := range allRows {
			if matchesFilter(r.Occ.DaysUntil, currentFilter) {
				displayRows = append(displayRows, r)
			}
		}
	}

	// performSort applies the sorting logic based on the selected column.
	performSort := func() {
		sort.Slice(displayRows, func(i, j int) bool {
			a, b := displayRows[i], displayRows[j]
			var less bool
			switch currentSortCol {
			case config.ColIDName:
				less = strings.ToLower(a.Person.Name) < strings.ToLower(b.Person.Name)
			case config.ColIDAge:
				less = a.Occ.AgeAtNext < b.Occ.AgeAtNext
			default: // config.ColIDDate, config.ColIDLeft share the same order
				if a.Occ.DaysUntil == b.Occ.DaysUntil {
					// Secondary sort key: Name
					less = a.Person.Name < b.Person.Name
				} else {
					less = a.Occ.DaysUntil < b.Occ.DaysUntil
				}
			}

			if !sortAsc {
				return !less
			}
			return less
		})

		slog.Debug(config.LogMsgSorted,
			config.LogKeyComponent, config.CompUI,
			config.LogKeySortCol, currentSortCol,
			config.LogKeySortAsc, sortAsc)
	}

	loadRows()
	applyFilter()
	performSort()

	slog.Info(config.LogMsgOpenWin,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(allRows))

	// --- Stats line ---

	statsLabel := widget.NewLabel("")
	updateStats := func() {
		urgent := 0
		for _, r := range allRows {
			if r.Occ.DaysUntil <= config.UrgentWindowDays {
				urgent++
			}
		}

		text := fmt.Sprintf("%d / %d", len(allRows), urgent)
		if app.Localizer != nil {
			msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
				MessageID:    config.TKeyStatsLine,
				TemplateData: map[string]interface{}{"Total": len(allRows), "Urgent": urgent},
			})
			if err == nil && msg != "" {
				text = msg
			}
		}
		statsLabel.SetText(text)
	}
	updateStats()

	// --- UI Table Component ---

	selectedRow := -1

	table := widget.NewTable(
		func() (int, int) {
			return len(displayRows), config.TableColumns
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(displayRows) {
				return
			}
			r := displayRows[id.Row]

			switch id.Col {
			case config.ColIDName:
				label.SetText(r.Person.Name)
			case config.ColIDDate:
				label.SetText(r.Occ.NextDisplay)
			case config.ColIDLeft:
				label.SetText(app.DaysLeftLabel(r.Occ.DaysUntil))
			case config.ColIDAge:
				// Show transition: "24 → 25"
				label.SetText(fmt.Sprintf("%d → %d", r.Occ.CurrentAge, r.Occ.AgeAtNext))
			}
		},
	)

	table.OnSelected = func(id widget.TableCellID) {
		selectedRow = id.Row
	}
	table.OnUnselected = func(widget.TableCellID) {
		selectedRow = -1
	}

	// --- Header Configuration (Fyne Native) ---

	table.ShowHeaderRow = true

	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("Header", func() {})
	}

	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)

		var titleKey string
		switch id.Col {
		case config.ColIDName:
			titleKey = config.TKeyColName
		case config.ColIDDate:
			titleKey = config.TKeyColDate
		case config.ColIDLeft:
			titleKey = config.TKeyColLeft
		case config.ColIDAge:
			titleKey = config.TKeyColAge
		}

		text := app.GetMsg(titleKey)

		if id.Col == currentSortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}

		btn.SetText(text)

		btn.OnTapped = func() {
			if currentSortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				currentSortCol = id.Col
				sortAsc = true
			}
			refreshTable()
		}
	}

	table.SetColumnWidth(config.ColIDName, config.ColWidthName)
	table.SetColumnWidth(config.ColIDDate, config.ColWidthDate)
	table.SetColumnWidth(config.ColIDLeft, config.ColWidthLeft)
	table.SetColumnWidth(config.ColIDAge, config.ColWidthAge)

	refreshTable = func() {
		applyFilter()
		performSort()
		table.Refresh()
		updateStats()
	}

	reload := func() {
		loadRows()
		refreshTable()
	}

	// --- Filter selection ---

	filterLabels := []string{
		app.GetMsg(config.TKeyFilterAll),
		app.GetMsg(config.TKeyFilterUrgent),
		app.GetMsg(config.TKeyFilterSoon),
	}
	filterSelect := widget.NewSelect(filterLabels, func(selected string) {
		switch selected {
		case app.GetMsg(config.TKeyFilterUrgent):
			currentFilter = config.FilterUrgent
		case app.GetMsg(config.TKeyFilterSoon):
			currentFilter = config.FilterUpcoming
		default:
			currentFilter = config.FilterAll
		}
		refreshTable()
	})
	filterSelect.SetSelected(filterLabels[0])

	// --- Action buttons ---

	btnAdd := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnAdd), theme.ContentAddIcon(), func() {
		app.showAddPersonDialog(reload)
	})

	btnImport := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImport), theme.FolderOpenIcon(), func() {
		app.showImportDialog(reload)
	})

	btnDelete := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnDelete), theme.DeleteIcon(), func() {
		if selectedRow < 0 || selectedRow >= len(displayRows) {
			return
		}
		app.confirmDeletePerson(displayRows[selectedRow].Person, reload)
	})

	toolbar := container.NewBorder(nil, nil,
		container.NewHBox(btnAdd, btnImport, btnDelete),
		filterSelect,
	)

	// Layout Assembly
	content := container.NewBorder(toolbar, statsLabel, nil, nil, table)
	app.peopleWindow.SetContent(content)

	// Cleanup on close
	app.peopleWindow.SetOnClosed(func() {
		app.peopleWindow = nil
	})

	app.peopleWindow.Show()
}

// showAddPersonDialog collects and validates a new person's details.
func (app *BirthKeepApp) showAddPersonDialog(onDone func()) {
	nameEntry := widget.NewEntry()
	dateEntry := widget.NewEntry()
	dateEntry.PlaceHolder = config.PlaceholderDate
	descEntry := widget.NewEntry()

	items := []*widget.FormItem{
		widget.NewFormItem(app.GetMsg(config.TKeyLblName), nameEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblBirthDate), dateEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblDesc), descEntry),
	}

	d := dialog.NewForm(app.GetMsg(config.TKeyBtnAdd), app.GetMsg(config.TKeyBtnAdd),
		app.GetMsg(config.TKeyBtnCancel), items,
		func(confirmed bool) {
			if !confirmed {
				return
			}

			p, err := engine.NewPerson(nameEntry.Text, dateEntry.Text, descEntry.Text)
			if err != nil {
				app.showPersonError(err)
				return
			}

			if err := app.Store.AddPerson(app.Ctx, p); err != nil {
				app.showPersonError(err)
				return
			}

			app.notifyTemplated(config.TKeyAddedOK, map[string]interface{}{"Name": p.Name})
			go app.performCheck(false)
			onDone()
		}, app.peopleWindow)

	d.Resize(fyne.NewSize(config.AddDialogWidth, d.MinSize().Height))
	d.Show()
}

// showImportDialog imports people from a vCard file.
func (app *BirthKeepApp) showImportDialog(onDone func()) {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		defer r.Close()

		drafts, err := engine.ImportVCards(r)
		if err != nil {
			dialog.ShowError(err, app.peopleWindow)
			return
		}

		imported := 0
		for _, p := range drafts {
			if err := app.Store.AddPerson(app.Ctx, p); err != nil {
				// Duplicates are expected on re-import; keep going.
				slog.Warn(config.MsgSkippedPerson,
					config.LogKeyComponent, config.CompUI,
					config.LogKeyName, p.Name,
					config.LogKeyError, err)
				continue
			}
			imported++
		}

		app.notifyTemplated(config.TKeyImportedOK, map[string]interface{}{"Count": imported})
		go app.performCheck(false)
		onDone()
	}, app.peopleWindow)

	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
	d.Show()
}

// confirmDeletePerson asks before removing a person and their ledger history.
func (app *BirthKeepApp) confirmDeletePerson(p engine.Person, onDone func()) {
	message := fmt.Sprintf("%s: %s", app.GetMsg(config.TKeyBtnDelete), p.Name)
	if app.Localizer != nil {
		msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
			MessageID:    config.TKeyConfirmDel,
			TemplateData: map[string]interface{}{"Name": p.Name},
		})
		if err == nil && msg != "" {
			message = msg
		}
	}

	dialog.ShowConfirm(app.GetMsg(config.TKeyBtnDelete), message, func(confirmed bool) {
		if !confirmed {
			return
		}
		if err := app.Store.DeletePerson(app.Ctx, p.ID); err != nil {
			dialog.ShowError(err, app.peopleWindow)
			return
		}
		app.notifyTemplated(config.TKeyDeletedOK, map[string]interface{}{"Name": p.Name})
		go app.performCheck(false)
		onDone()
	}, app.peopleWindow)
}

// showPersonError maps store and validation errors onto localized dialogs.
func (app *BirthKeepApp) showPersonError(err error) {
	var key string
	switch {
	case errors.Is(err, engine.ErrNameRequired):
		key = config.TKeyErrNameReq
	case errors.Is(err, store.ErrDuplicateName):
		key = config.TKeyErrDuplicate
	default:
		key = config.TKeyErrDateBad
	}

	msg := app.GetMsg(key)
	if msg == key {
		msg = err.Error()
	}
	dialog.ShowError(errors.New(msg), app.peopleWindow)
}

// notifyTemplated sends a localized notification with template data, falling
// back to a plain label when the key is missing.
func (app *BirthKeepApp) notifyTemplated(key string, data map[string]interface{}) {
	text := app.GetMsg(key)
	if app.Localizer != nil {
		msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
			MessageID:    key,
			TemplateData: data,
		})
		if err == nil && msg != "" {
			text = msg
		}
	}
	app.App.SendNotification(fyne.NewNotification(config.AppName, text))
}
