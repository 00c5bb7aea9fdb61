package remote

import "net/http"

// Command names understood by every connection.
const (
	CmdStatus            = "status"
	CmdNewSession        = "newSession"
	CmdQuit              = "quit"
	CmdGet               = "get"
	CmdGetCurrentURL     = "getCurrentUrl"
	CmdGoBack            = "goBack"
	CmdGoForward         = "goForward"
	CmdRefresh           = "refresh"
	CmdGetTitle          = "getTitle"
	CmdFindElement       = "findElement"
	CmdFindElements      = "findElements"
	CmdScreenshot        = "screenshot"
	CmdExecuteScript     = "w3cExecuteScript"
	CmdGetTimeouts       = "getTimeouts"
	CmdSetTimeouts       = "setTimeouts"
	CmdGetPageSource     = "getPageSource"
	CmdGetWindowHandle   = "w3cGetCurrentWindowHandle"
	CmdCloseWindow       = "close"
	CmdClickElement      = "clickElement"
	CmdSendKeysToElement = "sendKeysToElement"
)

// BuiltinCommands returns the W3C WebDriver commands registered on every
// new connection.
func BuiltinCommands() []CommandEntry {
	get, post, del := http.MethodGet, http.MethodPost, http.MethodDelete
	return []CommandEntry{
		{CmdStatus, get, "/status"},
		{CmdNewSession, post, "/session"},
		{CmdQuit, del, "/session/$sessionId"},

		{"getAllSessions", get, "/sessions"},
		{CmdGetTimeouts, get, "/session/$sessionId/timeouts"},
		{CmdSetTimeouts, post, "/session/$sessionId/timeouts"},

		{CmdGet, post, "/session/$sessionId/url"},
		{CmdGetCurrentURL, get, "/session/$sessionId/url"},
		{CmdGoBack, post, "/session/$sessionId/back"},
		{CmdGoForward, post, "/session/$sessionId/forward"},
		{CmdRefresh, post, "/session/$sessionId/refresh"},
		{CmdGetTitle, get, "/session/$sessionId/title"},
		{CmdGetPageSource, get, "/session/$sessionId/source"},

		{CmdGetWindowHandle, get, "/session/$sessionId/window"},
		{"w3cGetWindowHandles", get, "/session/$sessionId/window/handles"},
		{CmdCloseWindow, del, "/session/$sessionId/window"},
		{"switchToWindow", post, "/session/$sessionId/window"},
		{"newWindow", post, "/session/$sessionId/window/new"},
		{"switchToFrame", post, "/session/$sessionId/frame"},
		{"switchToParentFrame", post, "/session/$sessionId/frame/parent"},
		{"getWindowRect", get, "/session/$sessionId/window/rect"},
		{"setWindowRect", post, "/session/$sessionId/window/rect"},
		{"w3cMaximizeWindow", post, "/session/$sessionId/window/maximize"},
		{"minimizeWindow", post, "/session/$sessionId/window/minimize"},
		{"fullscreenWindow", post, "/session/$sessionId/window/fullscreen"},

		{CmdFindElement, post, "/session/$sessionId/element"},
		{CmdFindElements, post, "/session/$sessionId/elements"},
		{"findChildElement", post, "/session/$sessionId/element/$id/element"},
		{"findChildElements", post, "/session/$sessionId/element/$id/elements"},
		{"getShadowRoot", get, "/session/$sessionId/element/$id/shadow"},
		{"findElementFromShadowRoot", post, "/session/$sessionId/shadow/$shadowId/element"},
		{"findElementsFromShadowRoot", post, "/session/$sessionId/shadow/$shadowId/elements"},
		{"w3cGetActiveElement", get, "/session/$sessionId/element/active"},

		{"isElementSelected", get, "/session/$sessionId/element/$id/selected"},
		{"getElementAttribute", get, "/session/$sessionId/element/$id/attribute/$name"},
		{"getElementProperty", get, "/session/$sessionId/element/$id/property/$name"},
		{"getElementValueOfCssProperty", get, "/session/$sessionId/element/$id/css/$propertyName"},
		{"getElementText", get, "/session/$sessionId/element/$id/text"},
		{"getElementTagName", get, "/session/$sessionId/element/$id/name"},
		{"getElementRect", get, "/session/$sessionId/element/$id/rect"},
		{"isElementEnabled", get, "/session/$sessionId/element/$id/enabled"},
		{"getElementAriaRole", get, "/session/$sessionId/element/$id/computedrole"},
		{"getElementAriaLabel", get, "/session/$sessionId/element/$id/computedlabel"},
		{CmdClickElement, post, "/session/$sessionId/element/$id/click"},
		{"clearElement", post, "/session/$sessionId/element/$id/clear"},
		{CmdSendKeysToElement, post, "/session/$sessionId/element/$id/value"},
		{"elementScreenshot", get, "/session/$sessionId/element/$id/screenshot"},

		{CmdExecuteScript, post, "/session/$sessionId/execute/sync"},
		{"w3cExecuteScriptAsync", post, "/session/$sessionId/execute/async"},

		{"getCookies", get, "/session/$sessionId/cookie"},
		{"getCookie", get, "/session/$sessionId/cookie/$name"},
		{"addCookie", post, "/session/$sessionId/cookie"},
		{"deleteCookie", del, "/session/$sessionId/cookie/$name"},
		{"deleteAllCookies", del, "/session/$sessionId/cookie"},

		{"actions", post, "/session/$sessionId/actions"},
		{"clearActionState", del, "/session/$sessionId/actions"},

		{"w3cDismissAlert", post, "/session/$sessionId/alert/dismiss"},
		{"w3cAcceptAlert", post, "/session/$sessionId/alert/accept"},
		{"w3cGetAlertText", get, "/session/$sessionId/alert/text"},
		{"w3cSetAlertValue", post, "/session/$sessionId/alert/text"},

		{CmdScreenshot, get, "/session/$sessionId/screenshot"},
		{"printPage", post, "/session/$sessionId/print"},
		{"uploadFile", post, "/session/$sessionId/se/file"},

		{"addVirtualAuthenticator", post, "/session/$sessionId/webauthn/authenticator"},
		{"removeVirtualAuthenticator", del, "/session/$sessionId/webauthn/authenticator/$authenticatorId"},
		{"addCredential", post, "/session/$sessionId/webauthn/authenticator/$authenticatorId/credential"},
		{"getCredentials", get, "/session/$sessionId/webauthn/authenticator/$authenticatorId/credentials"},
		{"removeCredential", del, "/session/$sessionId/webauthn/authenticator/$authenticatorId/credentials/$credentialId"},
		{"removeAllCredentials", del, "/session/$sessionId/webauthn/authenticator/$authenticatorId/credentials"},
		{"setUserVerified", post, "/session/$sessionId/webauthn/authenticator/$authenticatorId/uv"},

		{"getFedcmTitle", get, "/session/$sessionId/fedcm/gettitle"},
		{"getFedcmDialogType", get, "/session/$sessionId/fedcm/getdialogtype"},
		{"getFedcmAccountList", get, "/session/$sessionId/fedcm/accountlist"},
		{"selectFedcmAccount", post, "/session/$sessionId/fedcm/selectaccount"},
		{"clickFedcmDialogButton", post, "/session/$sessionId/fedcm/clickdialogbutton"},
		{"cancelFedcmDialog", post, "/session/$sessionId/fedcm/canceldialog"},
		{"setFedcmDelay", post, "/session/$sessionId/fedcm/setdelayenabled"},
		{"resetFedcmCooldown", post, "/session/$sessionId/fedcm/resetcooldown"},
	}
}
