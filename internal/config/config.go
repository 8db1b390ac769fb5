package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "BirthKeep/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "BirthKeep"
	AppID             = "com.github.lomazzo.birthkeep"
	KeyringService    = "com.github.lomazzo.birthkeep"
	KeyringSyncToken  = "sync_token"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "Icon.png"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs and the database.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure data and cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Preferences
// -----------------------------------------------------------------------------

const (
	PrefLanguage      = "language"
	PrefInterval      = "check_interval_min"
	PrefServerPort    = "server_port"
	PrefSyncURL       = "sync_url"
	PrefLastRun       = "last_run_version"
	PrefRemEnabled    = "reminders_enabled"
	PrefNotifyOnDay   = "notify_on_day"
	PrefNotifyTomorrw = "notify_day_before"
	PrefNotify3Days   = "notify_3_days_before"
	PrefNotifyWeek    = "notify_week_before"
	PrefNotify2Weeks  = "notify_2_weeks_before"
	PrefNotifyMonth   = "notify_month_before"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "pt"}

// -----------------------------------------------------------------------------
// Reminder Thresholds
// -----------------------------------------------------------------------------

const (
	ThresholdToday    = 0
	ThresholdTomorrow = 1
	Threshold3Days    = 3
	ThresholdWeek     = 7
	Threshold2Weeks   = 14
	ThresholdMonth    = 30

	// Windows used by list filters and the stats line.
	UrgentWindowDays   = 7
	UpcomingWindowDays = 30

	// Phrase boundaries: literal day counts are used up to this distance,
	// month-and-remainder phrasing beyond it.
	LiteralDaysCutoff  = 60
	DaysPerMonthApprox = 30
)

// -----------------------------------------------------------------------------
// Calendar Arithmetic
// -----------------------------------------------------------------------------

const (
	// EpochYear anchors the linear day scale. Only differences between two
	// linear values are ever consumed, so the anchor itself is arbitrary;
	// it must simply be applied uniformly and lie at or before any stored year.
	EpochYear = 2000

	MinMonth = 1
	MaxMonth = 12
	MinDay   = 1

	DaysCommonYear = 365
	DaysLeapYear   = 366
)

// -----------------------------------------------------------------------------
// People Window Constants
// -----------------------------------------------------------------------------

const (
	PeopleWinWidth  = 680
	PeopleWinHeight = 460

	// Table Column IDs
	ColIDName = 0
	ColIDDate = 1
	ColIDLeft = 2
	ColIDAge  = 3

	TableColumns = 4

	// Table Layout
	ColWidthName = 220
	ColWidthDate = 120
	ColWidthLeft = 160
	ColWidthAge  = 110

	// Display Formats & Placeholders
	TablePlaceholder = "Cell Content"
	LogMsgOpenWin    = "Opening People Window"
	LogMsgSorted     = "People sorted"

	// Sorting Indicators
	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"
)

// List filters mirror the three views of the reminder list.
const (
	FilterAll      = "all"
	FilterUrgent   = "urgent"
	FilterUpcoming = "upcoming"
)

// -----------------------------------------------------------------------------
// Settings Window Constants
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 600
	AddDialogWidth      = 420
	SyncWindowWidth     = 380
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle     = "win_title"
	TKeyWinPeople    = "win_people_title"
	TKeyMenuCheck    = "menu_check_now"
	TKeyMenuPeople   = "menu_people"
	TKeyMenuSettings = "menu_settings"
	TKeyMenuSync     = "menu_sync"
	TKeyTrayStatus   = "tray_status"      // Requires Count > 0
	TKeyTrayNone     = "tray_status_zero" // Explicit key for 0

	// Notification messages per threshold. All require Name.
	TKeyNotifTitle    = "notif_title"
	TKeyNotifToday    = "notif_today"
	TKeyNotifTomorrow = "notif_tomorrow"
	TKeyNotif3Days    = "notif_3_days"
	TKeyNotifWeek     = "notif_week"
	TKeyNotif2Weeks   = "notif_2_weeks"
	TKeyNotifMonth    = "notif_month"

	// Calendar event summaries.
	TKeyEvtSummaryAge   = "evt_summary_age"   // Requires Name, Age
	TKeyEvtSummaryBirth = "evt_summary_birth" // Requires Name

	// Days-left phrases.
	TKeyPhraseToday     = "phrase_today"
	TKeyPhraseTomorrow  = "phrase_tomorrow"
	TKeyPhraseDays      = "phrase_days"        // Requires Days
	TKeyPhraseMonth     = "phrase_month"       // "1 month"
	TKeyPhraseMonthDays = "phrase_month_days"  // Requires Days
	TKeyPhraseMonths    = "phrase_months"      // Requires Months
	TKeyPhraseMonthsDay = "phrase_months_days" // Requires Months, Days

	// People window.
	TKeyColName      = "col_name"
	TKeyColDate      = "col_next_date"
	TKeyColLeft      = "col_days_left"
	TKeyColAge       = "col_age"
	TKeyAgeBirth     = "age_birth"
	TKeyLblName      = "lbl_name"
	TKeyLblBirthDate = "lbl_birth_date"
	TKeyLblDesc      = "lbl_description"
	TKeyBtnAdd       = "btn_add"
	TKeyBtnImport    = "btn_import_vcf"
	TKeyBtnDelete    = "btn_delete"
	TKeyFilterAll    = "filter_all"
	TKeyFilterUrgent = "filter_urgent"
	TKeyFilterSoon   = "filter_upcoming"
	TKeyStatsLine    = "stats_line"         // Requires Total
	TKeyStatsUrgent  = "stats_urgent"       // Requires Count
	TKeyConfirmDel   = "confirm_delete"     // Requires Name
	TKeyAddedOK      = "msg_person_added"   // Requires Name
	TKeyDeletedOK    = "msg_person_deleted" // Requires Name
	TKeyImportedOK   = "msg_imported"       // Requires Count

	// Settings window.
	TKeyLblLanguage  = "lbl_language"
	TKeyHelpLanguage = "help_language"
	TKeyLblGeneral   = "lbl_general"
	TKeyLblMinutes   = "lbl_minutes_suffix"
	TKeyLblInterval  = "lbl_check_interval"
	TKeyHelpInterval = "help_interval"
	TKeyLblPort      = "lbl_server_port"
	TKeyHelpPort     = "help_port"
	TKeyLblReminders = "lbl_reminders"
	TKeyLblRemMaster = "lbl_enable_reminders"
	TKeyLblRemToday  = "lbl_notify_on_day"
	TKeyLblRemTomrw  = "lbl_notify_day_before"
	TKeyLblRem3Days  = "lbl_notify_3_days"
	TKeyLblRemWeek   = "lbl_notify_week"
	TKeyLblRem2Weeks = "lbl_notify_2_weeks"
	TKeyLblRemMonth  = "lbl_notify_month"
	TKeyLblSync      = "lbl_sync"
	TKeyLblSyncURL   = "lbl_sync_url"
	TKeyHelpSyncURL  = "help_sync_url"
	TKeyLblSyncToken = "lbl_sync_token"
	TKeyBtnSave      = "btn_save"
	TKeyBtnCancel    = "btn_cancel"
	TKeyLblFooter    = "lbl_footer"

	// Sync window.
	TKeyWinSync      = "win_sync_title"
	TKeyBtnGenCode   = "btn_generate_code"
	TKeyBtnApplyCode = "btn_apply_code"
	TKeyLblSyncCode  = "lbl_sync_code"
	TKeySyncConfirm  = "sync_confirm"    // Requires Count
	TKeySyncDone     = "msg_sync_done"   // Requires Count
	TKeySyncPushed   = "msg_sync_pushed" // Requires Code
	TKeySyncFailed   = "msg_sync_failed"

	// Validation Errors (UI)
	TKeyErrNameReq   = "err_name_required"
	TKeyErrDateReq   = "err_date_required"
	TKeyErrDateBad   = "err_date_invalid"
	TKeyErrDuplicate = "err_duplicate_person"
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
	TKeyErrCodeLen   = "err_code_length"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultPort        = "18080"
	DefaultIntervalMin = 60
	DefaultLanguage    = "en"
	DisabledInterval   = 0
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//BirthKeep//Engine//EN"
	ICalCalName   = "Birthdays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "birthkeep"
	ICalTrigger   = "-P1D"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY  = "BDAY"
	VCardFN    = "FN"
	VCardN     = "N"
	VCardNote  = "NOTE"
	VCardPhoto = "PHOTO"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// DateFormatISO is the canonical stored form of a birth date and the
	// canonical ledger day key. Always zero-padded.
	DateFormatISO = "2006-01-02"

	// Date layouts accepted when importing vCard BDAY fields.
	DateFormatFullBasic = "20060102"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// FallbackBirthYear substitutes for vCards without a year. A leap year
	// so that --02-29 survives the import.
	FallbackBirthYear = 2000

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	FormatUID = "%s-%d@%s"

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"

	// Inline photo payloads in vCard 4.0 use a data URI.
	DataURIPrefix = "data:"
	Base64Marker  = "base64,"
)

// -----------------------------------------------------------------------------
// Storage
// -----------------------------------------------------------------------------

const (
	DataDirName = ".birthkeep"
	DBFileName  = "birthkeep.db"
	DBDriver    = "sqlite"
	DBOpenArgs  = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
)

// -----------------------------------------------------------------------------
// Sync
// -----------------------------------------------------------------------------

const (
	SyncCodeLength     = 6
	SyncCodeAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	SyncCodeTTL        = 15 * time.Minute
	SyncSnapshotFormat = 1
	MaxSyncPayloadSize = 8 * 1024 * 1024 // 8MB
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout        = 30 * time.Second
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	SchemeHTTP         = "http"
	SchemeHTTPS        = "https"
	RouteFeed          = "/feed.ics"
	RouteUpcoming      = "/upcoming"
	AddrSeparator      = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"
	HeaderAuthorization   = "Authorization"
	BearerPrefix          = "Bearer "

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrDateParse      = "invalid date"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrHomeDir        = "could not determine user home dir"
	ErrCreateDir      = "could not create app data dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrLocaleLoad     = "failed to load locale file"
	ErrTrayMissing    = "system tray not supported on this platform/driver"
	ErrLocNotInit     = "localizer not initialized"
	ErrOpenDB         = "failed to open database"
	ErrSchema         = "failed to apply database schema"
	ErrDuplicateName  = "a person with this name already exists"
	ErrPersonMissing  = "person not found"
	ErrNameRequired   = "person name is required"
	ErrSyncURLEmpty   = "configuration error: sync service URL is empty"
	ErrSyncCode       = "sync code not found or expired"
	ErrSyncExpired    = "sync snapshot has expired"
	ErrSyncFormat     = "unsupported sync snapshot format"
	ErrSyncEncode     = "failed to encode sync snapshot"
	ErrSyncDecode     = "failed to decode sync snapshot"
	ErrNotNumeric     = "only digits are allowed"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgNotFound     = "Not Found"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackSummary     = "Birthday: %s"
	FallbackSummaryAge  = "Birthday: %s (%d)"
	FallbackNotifTitle  = "Birthday Reminder"
	FallbackTrayError   = "BirthKeep: Check Error"
	FallbackTrayDefault = "BirthKeep (%d today)"
	FallbackTrayLabel   = "BirthKeep"
	FallbackName        = "Unknown"

	// Fallback reminder messages, one per threshold distance.
	FallbackNotifToday    = "Today is %s's birthday!"
	FallbackNotifTomorrow = "Tomorrow is %s's birthday!"
	FallbackNotif3Days    = "3 days until %s's birthday!"
	FallbackNotifWeek     = "One week until %s's birthday!"
	FallbackNotif2Weeks   = "14 days until %s's birthday!"
	FallbackNotifMonth    = "One month until %s's birthday!"

	// Fallback days-left phrases.
	FallbackPhraseToday     = "The birthday is today!"
	FallbackPhraseTomorrow  = "The birthday is tomorrow!"
	FallbackPhraseDays      = "%d days left"
	FallbackPhraseMonth     = "1 month left"
	FallbackPhraseMonthDays = "1 month and %d days left"
	FallbackPhraseMonths    = "%d months left"
	FallbackPhraseMonthsDay = "%d months and %d days left"

	// StubVCalendar is the minimal valid iCalendar object used when no events
	// are found, so feed clients never see an invalid body.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"
	TitleCheckError   = "Check Error"

	MsgPortBusy       = "Port %s is busy or unavailable."
	MsgCheckStarted   = "Reminder check started"
	MsgCheckDone      = "Reminder check finished"
	MsgCheckFailed    = "Reminder check failed"
	MsgCheckReq       = "Check requested"
	MsgWorkerStart    = "Background worker started"
	MsgWorkerStop     = "Worker stopping due to context cancellation"
	MsgMidnightArmed  = "Midnight check armed"
	MsgUpdateInterval = "Updating check interval"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgSkippedPerson  = "Skipping person with invalid birth date"
	MsgAppStarting    = "Starting application"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgFeedUpdated    = "Feed cache updated"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgTokenFail      = "Sync token retrieval failed (might be empty)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgBdayToday      = "Birthday found today"
	MsgReminderFired  = "Reminder fired"
	MsgStoreOpened    = "Database opened"
	MsgPersonAdded    = "Person added"
	MsgPersonDeleted  = "Person deleted"
	MsgLedgerMarked   = "Ledger entries recorded"
	MsgSnapshotPushed = "Snapshot pushed to sync store"
	MsgSnapshotPulled = "Snapshot pulled from sync store"
	MsgStateRestored  = "Local state replaced from snapshot"

	PlaceholderURL  = "https://..."
	PlaceholderDate = "YYYY-MM-DD"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyInterval  = "interval"
	LogKeyOld       = "old"
	LogKeyNew       = "new"
	LogKeyTotal     = "total_people"
	LogKeyFired     = "reminders_fired"
	LogKeyToday     = "birthdays_today"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyManual    = "manual"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyPersonID  = "person_id"
	LogKeyDOB       = "date_of_birth"
	LogKeyDaysUntil = "days_until"
	LogKeyThreshold = "threshold_days"
	LogKeyDayKey    = "day_key"
	LogKeyCode      = "code"
	LogKeyPath      = "path"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI     = "ui"
	CompUISet  = "ui_settings"
	CompEngine = "engine"
	CompPolicy = "policy"
	CompStore  = "store"
	CompSync   = "sync"
	CompServer = "server"
	CompWorker = "worker"
	CompMain   = "main"
	CompI18n   = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
