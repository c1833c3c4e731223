package routes

const (
	PublicPrefix  = "/api"
	viewportPath  = "/viewports/%s"
	placementPath = "/placement"
)

func GetViewportPath() string {
	return getPath(viewportPath, ":key")
}
func CreateViewportPath(key string) string {
	return createPath(PublicPrefix, viewportPath, key)
}

func GetPlacementPath() string {
	return placementPath
}
func CreatePlacementPath() string {
	return PublicPrefix + placementPath
}
