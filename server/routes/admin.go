package routes

const (
	AdminPrefix = "/admin/api"

	sessionsPath      = "/sessions"
	sessionPath       = "/sessions/%s"
	sessionActionPath = "/sessions/%s/%s"
)

// Session actions, one POST endpoint each.
const (
	ActionBegin   = "begin"
	ActionMeasure = "measure"
	ActionNatural = "natural"
	ActionDevice  = "device"
	ActionPointer = "pointer"
	ActionWheel   = "wheel"
	ActionSlider  = "slider"
	ActionSource  = "source"
	ActionSave    = "save"
	ActionCancel  = "cancel"
)

func GetSessionsPath() string {
	return sessionsPath
}
func CreateSessionsPath() string {
	return AdminPrefix + sessionsPath
}

func GetSessionPath() string {
	return getPath(sessionPath, ":id")
}
func CreateSessionPath(id string) string {
	return createPath(AdminPrefix, sessionPath, id)
}

func GetSessionActionPath(action string) string {
	return getPath(sessionActionPath, ":id", action)
}
func CreateSessionActionPath(id, action string) string {
	return AdminPrefix + getPath(sessionActionPath, createPath("", "%s", id), action)
}
