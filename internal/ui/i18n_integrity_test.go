package ui_test

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lomazzo/birthkeep/internal/config"
)

// i18nKeys lists every translation key referenced from Go code.
var i18nKeys = []string{
	config.TKeyWinTitle,
	config.TKeyWinPeople,
	config.TKeyMenuCheck,
	config.TKeyMenuPeople,
	config.TKeyMenuSettings,
	config.TKeyMenuSync,
	config.TKeyTrayStatus,
	config.TKeyTrayNone,
	config.TKeyNotifTitle,
	config.TKeyNotifToday,
	config.TKeyNotifTomorrow,
	config.TKeyNotif3Days,
	config.TKeyNotifWeek,
	config.TKeyNotif2Weeks,
	config.TKeyNotifMonth,
	config.TKeyEvtSummaryAge,
	config.TKeyEvtSummaryBirth,
	config.TKeyPhraseToday,
	config.TKeyPhraseTomorrow,
	config.TKeyPhraseDays,
	config.TKeyPhraseMonth,
	config.TKeyPhraseMonthDays,
	config.TKeyPhraseMonths,
	config.TKeyPhraseMonthsDay,
	config.TKeyColName,
	config.TKeyColDate,
	config.TKeyColLeft,
	config.TKeyColAge,
	config.TKeyAgeBirth,
	config.TKeyLblName,
	config.TKeyLblBirthDate,
	config.TKeyLblDesc,
	config.TKeyBtnAdd,
	config.TKeyBtnImport,
	config.TKeyBtnDelete,
	config.TKeyFilterAll,
	config.TKeyFilterUrgent,
	config.TKeyFilterSoon,
	config.TKeyStatsLine,
	config.TKeyStatsUrgent,
	config.TKeyConfirmDel,
	config.TKeyAddedOK,
	config.TKeyDeletedOK,
	config.TKeyImportedOK,
	config.TKeyLblLanguage,
	config.TKeyHelpLanguage,
	config.TKeyLblGeneral,
	config.TKeyLblMinutes,
	config.TKeyLblInterval,
	config.TKeyHelpInterval,
	config.TKeyLblPort,
	config.TKeyHelpPort,
	config.TKeyLblReminders,
	config.TKeyLblRemMaster,
	config.TKeyLblRemToday,
	config.TKeyLblRemTomrw,
	config.TKeyLblRem3Days,
	config.TKeyLblRemWeek,
	config.TKeyLblRem2Weeks,
	config.TKeyLblRemMonth,
	config.TKeyLblSync,
	config.TKeyLblSyncURL,
	config.TKeyHelpSyncURL,
	config.TKeyLblSyncToken,
	config.TKeyBtnSave,
	config.TKeyBtnCancel,
	config.TKeyLblFooter,
	config.TKeyWinSync,
	config.TKeyBtnGenCode,
	config.TKeyBtnApplyCode,
	config.TKeyLblSyncCode,
	config.TKeySyncConfirm,
	config.TKeySyncDone,
	config.TKeySyncPushed,
	config.TKeySyncFailed,
	config.TKeyErrNameReq,
	config.TKeyErrDateReq,
	config.TKeyErrDateBad,
	config.TKeyErrDuplicate,
	config.TKeyErrPortReq,
	config.TKeyErrPortNum,
	config.TKeyErrPortRange,
	config.TKeyErrCodeLen,
}

// TestI18nIntegrity ensures that every translation key defined in config.go
// actually exists in each locale JSON file.
func TestI18nIntegrity(t *testing.T) {
	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			path := "locales/active." + lang + ".json"
			content, err := os.ReadFile(path)
			require.NoErrorf(t, err, "Must load %s", path)

			var jsonMap map[string]interface{}
			err = json.Unmarshal(content, &jsonMap)
			require.NoError(t, err, "JSON must be valid")

			defined := make(map[string]bool, len(i18nKeys))
			for _, key := range i18nKeys {
				defined[key] = true
				_, exists := jsonMap[key]
				assert.Truef(t, exists, "Key '%s' defined in config.go is missing in %s", key, path)
			}

			// Check for orphan keys in JSON (present in JSON but never used in Go)
			for jsonKey := range jsonMap {
				if strings.HasPrefix(jsonKey, "_") {
					continue
				}
				if !defined[jsonKey] {
					t.Logf("Warning: Key '%s' exists in %s but is not referenced from Go", jsonKey, path)
				}
			}
		})
	}
}
